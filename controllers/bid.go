package controllers

import (
	"net/http"

	"buildbidz-api/models"
	"buildbidz-api/services"
	"buildbidz-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BidController handles supplier offers on projects.
type BidController struct {
	DB       *gorm.DB
	Notifier *services.Notifier
}

func NewBidController(db *gorm.DB, notifier *services.Notifier) *BidController {
	return &BidController{DB: db, Notifier: notifier}
}

type BidCreateRequest struct {
	Amount       float64 `json:"amount" binding:"required,gt=0"`
	Currency     string  `json:"currency"`
	DeliveryTime int     `json:"delivery_time" binding:"required,gt=0"`
	Message      *string `json:"message"`
	Attachments  *string `json:"attachments"`
}

// CreateBid submits an offer on an open project. The first bid moves a
// published project into bidding.
func (bc *BidController) CreateBid(c *gin.Context) {
	var req BidCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Currency != "" && !utils.ValidateCurrency(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid currency code"})
		return
	}

	var project models.Project
	if err := bc.DB.Where("id = ?", c.Param("id")).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	if project.Status != models.ProjectPublished && project.Status != models.ProjectBidding {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Project is not open for bidding"})
		return
	}

	userID := c.GetString("userID")

	var existing int64
	bc.DB.Model(&models.Bid{}).
		Where("project_id = ? AND supplier_id = ? AND status = ?", project.ID, userID, models.BidPending).
		Count(&existing)
	if existing > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "You already have a pending bid on this project"})
		return
	}

	bid := models.Bid{
		ProjectID:    project.ID,
		SupplierID:   userID,
		Amount:       req.Amount,
		Currency:     req.Currency,
		DeliveryTime: req.DeliveryTime,
		Message:      req.Message,
		Attachments:  req.Attachments,
		Status:       models.BidPending,
	}

	err := bc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&bid).Error; err != nil {
			return err
		}
		if project.Status == models.ProjectPublished {
			project.Status = models.ProjectBidding
			return tx.Save(&project).Error
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to submit bid"})
		return
	}

	if bc.Notifier != nil {
		var supplier models.User
		if err := bc.DB.Where("id = ?", userID).First(&supplier).Error; err == nil {
			bc.Notifier.BidSubmitted(&project, &bid, &supplier)
		}
	}

	c.JSON(http.StatusCreated, bid)
}

// GetProjectBids lists bids on a project: all of them for its owner,
// only the caller's own otherwise.
func (bc *BidController) GetProjectBids(c *gin.Context) {
	var project models.Project
	if err := bc.DB.Where("id = ?", c.Param("id")).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)

	bids := []models.Bid{}
	query := bc.DB.Where("project_id = ?", project.ID).Order("created_at ASC")
	if project.CompanyID != userID && role != models.RoleAdmin {
		query = query.Where("supplier_id = ?", userID)
	}

	if err := query.Find(&bids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list bids"})
		return
	}

	c.JSON(http.StatusOK, bids)
}

// GetMyBids lists the calling supplier's bids.
func (bc *BidController) GetMyBids(c *gin.Context) {
	bids := []models.Bid{}
	if err := bc.DB.Where("supplier_id = ?", c.GetString("userID")).
		Order("created_at DESC").Find(&bids).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list bids"})
		return
	}

	c.JSON(http.StatusOK, bids)
}

// RejectBid lets the project owner turn down a pending bid without
// awarding anyone.
func (bc *BidController) RejectBid(c *gin.Context) {
	var bid models.Bid
	if err := bc.DB.Where("id = ?", c.Param("id")).First(&bid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Bid not found"})
		return
	}

	var project models.Project
	if err := bc.DB.Where("id = ?", bid.ProjectID).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)
	if project.CompanyID != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not the project owner"})
		return
	}

	if !bid.Status.CanTransitionTo(models.BidRejected) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Bid is no longer pending"})
		return
	}

	bid.Status = models.BidRejected
	if err := bc.DB.Save(&bid).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to reject bid"})
		return
	}

	c.JSON(http.StatusOK, bid)
}
