package routes

import (
	"time"

	"buildbidz-api/config"
	"buildbidz-api/controllers"
	"buildbidz-api/middleware"
	"buildbidz-api/services"
	"buildbidz-api/supabase"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Deps carries everything the route handlers need. Built once in main.
type Deps struct {
	DB       *gorm.DB
	Auth     *supabase.Client
	Settings *config.Settings
	Notifier *services.Notifier
}

func SetupRoutes(router *gin.Engine, deps Deps) {
	auth := controllers.NewAuthController(deps.DB, deps.Auth)
	projects := controllers.NewProjectController(deps.DB, deps.Notifier)
	bids := controllers.NewBidController(deps.DB, deps.Notifier)
	messages := controllers.NewMessageController(deps.DB)
	documents := controllers.NewDocumentController(deps.DB, deps.Settings.UploadPath)
	payments := controllers.NewPaymentController(deps.DB)
	dashboard := controllers.NewDashboardController(deps.DB)

	// Service banner and liveness probe
	router.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "BuildBidz API - Premium Construction Procurement Platform",
			"version": "1.0.0",
			"status":  "operational",
		})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":    "healthy",
			"timestamp": time.Now().Format(time.RFC3339),
			"service":   "BuildBidz API",
		})
	})

	api := router.Group(deps.Settings.APIPrefix)
	{
		// Public routes
		public := api.Group("")
		{
			public.POST("/auth/register", auth.Register)
			public.POST("/auth/login", auth.Login)

			// Token validation happens against the provider inside the handlers
			public.GET("/auth/me", auth.Me)
			public.POST("/auth/logout", auth.Logout)

			// The gateway calls back without a user token; signature
			// verification happens upstream of this service.
			public.POST("/payments/webhook", payments.Webhook)
		}

		// Protected routes (require authentication)
		protected := api.Group("")
		protected.Use(middleware.AuthMiddleware(deps.DB, deps.Settings.JWTSecret))
		{
			// Projects
			protected.GET("/projects", projects.GetProjects)
			protected.POST("/projects", middleware.RequireRole("company", "ngo"), projects.CreateProject)
			protected.GET("/projects/:id", projects.GetProject)
			protected.PUT("/projects/:id", projects.UpdateProject)
			protected.POST("/projects/:id/publish", projects.PublishProject)
			protected.POST("/projects/:id/cancel", projects.CancelProject)
			protected.POST("/projects/:id/status", projects.ChangeProjectStatus)
			protected.POST("/projects/:id/award", projects.AwardProject)

			// Bids
			protected.POST("/projects/:id/bids", middleware.RequireRole("supplier"), bids.CreateBid)
			protected.GET("/projects/:id/bids", bids.GetProjectBids)
			protected.GET("/bids", bids.GetMyBids)
			protected.POST("/bids/:id/reject", bids.RejectBid)

			// Messages
			protected.POST("/messages", messages.SendMessage)
			protected.GET("/messages", messages.GetMessages)
			protected.POST("/messages/:id/read", messages.MarkMessageRead)

			// Documents
			protected.POST("/documents/upload", documents.UploadDocument)
			protected.GET("/documents", documents.GetDocuments)
			protected.GET("/documents/:id/download", documents.DownloadDocument)
			protected.DELETE("/documents/:id", documents.DeleteDocument)

			// Payments
			protected.POST("/payments", middleware.RequireRole("company", "ngo"), payments.CreatePayment)
			protected.GET("/payments", payments.GetPayments)

			// Dashboard
			protected.GET("/dashboard/stats", dashboard.GetDashboardStats)
		}
	}
}
