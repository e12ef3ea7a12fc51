package main

import (
	"log"
	"os"

	"buildbidz-api/config"
	"buildbidz-api/middleware"
	"buildbidz-api/models"
	"buildbidz-api/routes"
	"buildbidz-api/services"
	"buildbidz-api/supabase"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config.InitLogging()

	// Fail fast on missing configuration instead of deferring to first use
	settings, err := config.Load()
	if err != nil {
		log.Fatal("Invalid configuration: ", err)
	}

	db, err := config.InitDB(settings)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}
	log.Println("Database connected successfully")

	if err := db.AutoMigrate(
		&models.User{},
		&models.Project{},
		&models.Bid{},
		&models.Message{},
		&models.Document{},
		&models.Payment{},
	); err != nil {
		log.Printf("Warning: could not create database tables: %v", err)
	}

	authClient := supabase.NewClient(settings.SupabaseURL, settings.SupabaseKey, settings.SupabaseServiceKey)
	mailer := config.NewMailer(settings)
	notifier := services.NewNotifier(db, mailer)

	// Set Gin mode
	if !settings.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Security headers
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	router.Use(middleware.CORSMiddleware(settings.AllowedOrigins))

	routes.SetupRoutes(router, routes.Deps{
		DB:       db,
		Auth:     authClient,
		Settings: settings,
		Notifier: notifier,
	})

	// Create upload directory if not exists
	if err := os.MkdirAll(settings.UploadPath, os.ModePerm); err != nil {
		log.Printf("Warning: Failed to create upload directory: %v", err)
	}

	log.Printf("Server starting on port %s", settings.ServerPort)
	if settings.Debug {
		log.Printf("Running in development mode")
	} else {
		log.Printf("Running in production mode")
	}

	if err := router.Run(":" + settings.ServerPort); err != nil {
		log.Fatal("Failed to start server: ", err)
	}
}
