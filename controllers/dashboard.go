package controllers

import (
	"net/http"

	"buildbidz-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// DashboardController computes the aggregate counters shown on the
// landing dashboard, scoped to the calling user's role.
type DashboardController struct {
	DB *gorm.DB
}

func NewDashboardController(db *gorm.DB) *DashboardController {
	return &DashboardController{DB: db}
}

var activeProjectStatuses = []models.ProjectStatus{
	models.ProjectPublished,
	models.ProjectBidding,
	models.ProjectAwarded,
	models.ProjectInProgress,
}

var awardedOrLaterStatuses = []models.ProjectStatus{
	models.ProjectAwarded,
	models.ProjectInProgress,
	models.ProjectCompleted,
}

// GetDashboardStats returns active project count, pending bid count, total
// savings and success rate for the caller.
func (dc *DashboardController) GetDashboardStats(c *gin.Context) {
	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)

	var stats gin.H
	var err error
	if role == models.RoleSupplier {
		stats, err = dc.supplierStats(userID)
	} else {
		stats, err = dc.companyStats(userID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to compute dashboard stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// companyStats aggregates over the company's own listings. Savings are the
// budget left on the table per awarded project, never negative.
func (dc *DashboardController) companyStats(userID string) (gin.H, error) {
	var activeProjects int64
	if err := dc.DB.Model(&models.Project{}).
		Where("company_id = ? AND status IN ?", userID, activeProjectStatuses).
		Count(&activeProjects).Error; err != nil {
		return nil, err
	}

	var pendingBids int64
	if err := dc.DB.Model(&models.Bid{}).
		Where("status = ? AND project_id IN (?)", models.BidPending,
			dc.DB.Model(&models.Project{}).Select("id").Where("company_id = ?", userID)).
		Count(&pendingBids).Error; err != nil {
		return nil, err
	}

	var awardedRows []struct {
		Budget float64
		Amount float64
	}
	if err := dc.DB.Model(&models.Project{}).
		Select("projects.budget AS budget, bids.amount AS amount").
		Joins("JOIN bids ON bids.id = projects.awarded_bid_id").
		Where("projects.company_id = ? AND projects.budget IS NOT NULL", userID).
		Scan(&awardedRows).Error; err != nil {
		return nil, err
	}

	totalSavings := 0.0
	for _, row := range awardedRows {
		if saving := row.Budget - row.Amount; saving > 0 {
			totalSavings += saving
		}
	}

	var nonDraft, awarded int64
	if err := dc.DB.Model(&models.Project{}).
		Where("company_id = ? AND status <> ?", userID, models.ProjectDraft).
		Count(&nonDraft).Error; err != nil {
		return nil, err
	}
	if err := dc.DB.Model(&models.Project{}).
		Where("company_id = ? AND status IN ?", userID, awardedOrLaterStatuses).
		Count(&awarded).Error; err != nil {
		return nil, err
	}

	successRate := 0.0
	if nonDraft > 0 {
		successRate = float64(awarded) / float64(nonDraft) * 100
	}

	return gin.H{
		"active_projects": activeProjects,
		"pending_bids":    pendingBids,
		"total_savings":   totalSavings,
		"success_rate":    successRate,
	}, nil
}

// supplierStats aggregates over the supplier's bids. Savings are a buyer
// metric and stay zero here.
func (dc *DashboardController) supplierStats(userID string) (gin.H, error) {
	var activeProjects int64
	if err := dc.DB.Model(&models.Bid{}).
		Where("supplier_id = ? AND status = ?", userID, models.BidPending).
		Distinct("project_id").
		Count(&activeProjects).Error; err != nil {
		return nil, err
	}

	var pendingBids int64
	if err := dc.DB.Model(&models.Bid{}).
		Where("supplier_id = ? AND status = ?", userID, models.BidPending).
		Count(&pendingBids).Error; err != nil {
		return nil, err
	}

	var totalBids, acceptedBids int64
	if err := dc.DB.Model(&models.Bid{}).
		Where("supplier_id = ?", userID).
		Count(&totalBids).Error; err != nil {
		return nil, err
	}
	if err := dc.DB.Model(&models.Bid{}).
		Where("supplier_id = ? AND status = ?", userID, models.BidAccepted).
		Count(&acceptedBids).Error; err != nil {
		return nil, err
	}

	successRate := 0.0
	if totalBids > 0 {
		successRate = float64(acceptedBids) / float64(totalBids) * 100
	}

	return gin.H{
		"active_projects": activeProjects,
		"pending_bids":    pendingBids,
		"total_savings":   0.0,
		"success_rate":    successRate,
	}, nil
}
