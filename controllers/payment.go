package controllers

import (
	"net/http"

	"buildbidz-api/models"
	"buildbidz-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentController records transactions on awarded projects and applies
// gateway webhook updates.
type PaymentController struct {
	DB *gorm.DB
}

func NewPaymentController(db *gorm.DB) *PaymentController {
	return &PaymentController{DB: db}
}

type PaymentCreateRequest struct {
	ProjectID       string   `json:"project_id" binding:"required"`
	Amount          *float64 `json:"amount"`
	Currency        string   `json:"currency"`
	PaymentMethod   *string  `json:"payment_method"`
	RazorpayOrderID *string  `json:"razorpay_order_id"`
}

// CreatePayment opens a pending payment from the project's company to the
// awarded supplier. The amount defaults to the awarded bid's amount.
func (pc *PaymentController) CreatePayment(c *gin.Context) {
	var req PaymentCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Currency != "" && !utils.ValidateCurrency(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid currency code"})
		return
	}

	var project models.Project
	if err := pc.DB.Where("id = ?", req.ProjectID).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)
	if project.CompanyID != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not the project owner"})
		return
	}

	if project.AwardedBidID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Project has no awarded bid"})
		return
	}

	var awardedBid models.Bid
	if err := pc.DB.Where("id = ?", *project.AwardedBidID).First(&awardedBid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Awarded bid not found"})
		return
	}

	amount := awardedBid.Amount
	if req.Amount != nil {
		if *req.Amount <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "Amount must be positive"})
			return
		}
		amount = *req.Amount
	}
	currency := req.Currency
	if currency == "" {
		currency = awardedBid.Currency
	}

	payment := models.Payment{
		ProjectID:       project.ID,
		PayerID:         project.CompanyID,
		PayeeID:         awardedBid.SupplierID,
		Amount:          amount,
		Currency:        currency,
		Status:          models.PaymentPending,
		PaymentMethod:   req.PaymentMethod,
		RazorpayOrderID: req.RazorpayOrderID,
	}

	if err := pc.DB.Create(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create payment"})
		return
	}

	c.JSON(http.StatusCreated, payment)
}

// GetPayments lists payments where the caller is payer or payee.
func (pc *PaymentController) GetPayments(c *gin.Context) {
	userID := c.GetString("userID")

	payments := []models.Payment{}
	if err := pc.DB.Where("payer_id = ? OR payee_id = ?", userID, userID).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list payments"})
		return
	}

	c.JSON(http.StatusOK, payments)
}

type WebhookRequest struct {
	RazorpayOrderID   string  `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID *string `json:"razorpay_payment_id"`
	Status            string  `json:"status" binding:"required"`
}

// Webhook applies a gateway status update. Replayed deliveries are
// swallowed: an update into the payment's current status is acknowledged
// without touching the row again. Signature verification happens upstream.
func (pc *PaymentController) Webhook(c *gin.Context) {
	var req WebhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	next := models.PaymentStatus(req.Status)
	if !models.ValidPaymentStatus(next) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown payment status"})
		return
	}

	var payment models.Payment
	if err := pc.DB.Where("razorpay_order_id = ?", req.RazorpayOrderID).First(&payment).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Payment not found"})
		return
	}

	if payment.Status == next {
		c.JSON(http.StatusOK, gin.H{"message": "Already processed"})
		return
	}

	if !payment.Status.CanTransitionTo(next) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Illegal payment status transition"})
		return
	}

	payment.AppendAudit(payment.Status, next, "gateway webhook")
	payment.Status = next
	payment.WebhookProcessed = true
	if req.RazorpayPaymentID != nil {
		payment.RazorpayPaymentID = req.RazorpayPaymentID
	}

	if err := pc.DB.Save(&payment).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update payment"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Payment updated", "status": payment.Status})
}
