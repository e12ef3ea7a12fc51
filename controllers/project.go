package controllers

import (
	"net/http"
	"time"

	"buildbidz-api/models"
	"buildbidz-api/services"
	"buildbidz-api/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProjectController owns the procurement-listing lifecycle.
type ProjectController struct {
	DB       *gorm.DB
	Notifier *services.Notifier
}

func NewProjectController(db *gorm.DB, notifier *services.Notifier) *ProjectController {
	return &ProjectController{DB: db, Notifier: notifier}
}

type ProjectCreateRequest struct {
	Title        string     `json:"title" binding:"required"`
	Description  string     `json:"description" binding:"required"`
	Category     string     `json:"category"`
	Budget       *float64   `json:"budget"`
	Currency     string     `json:"currency"`
	Location     *string    `json:"location"`
	StartDate    *time.Time `json:"start_date"`
	Deadline     *time.Time `json:"deadline"`
	Requirements *string    `json:"requirements"`
}

// CreateProject creates a draft listing owned by the calling company.
func (pc *ProjectController) CreateProject(c *gin.Context) {
	var req ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Category == "" {
		req.Category = "general"
	}
	if req.Currency != "" && !utils.ValidateCurrency(req.Currency) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Invalid currency code"})
		return
	}

	userID := c.GetString("userID")
	project := models.Project{
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		Budget:       req.Budget,
		Currency:     req.Currency,
		Location:     req.Location,
		StartDate:    req.StartDate,
		Deadline:     req.Deadline,
		Requirements: req.Requirements,
		Status:       models.ProjectDraft,
		CompanyID:    userID,
	}

	if err := pc.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to create project"})
		return
	}

	c.JSON(http.StatusCreated, project)
}

// GetProjects lists the caller's own projects for companies, and open
// listings for everyone else.
func (pc *ProjectController) GetProjects(c *gin.Context) {
	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)

	projects := []models.Project{}
	query := pc.DB.Order("created_at DESC")
	if role == models.RoleCompany {
		query = query.Where("company_id = ?", userID)
	} else if role != models.RoleAdmin {
		query = query.Where("status IN ?", []models.ProjectStatus{models.ProjectPublished, models.ProjectBidding})
	}

	if err := query.Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list projects"})
		return
	}

	c.JSON(http.StatusOK, projects)
}

// GetProject returns one project visible to the caller.
func (pc *ProjectController) GetProject(c *gin.Context) {
	project, ok := pc.loadProject(c)
	if !ok {
		return
	}

	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)
	if project.Status == models.ProjectDraft && project.CompanyID != userID && role != models.RoleAdmin {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return
	}

	c.JSON(http.StatusOK, project)
}

type ProjectUpdateRequest struct {
	Title        *string    `json:"title"`
	Description  *string    `json:"description"`
	Category     *string    `json:"category"`
	Budget       *float64   `json:"budget"`
	Location     *string    `json:"location"`
	StartDate    *time.Time `json:"start_date"`
	Deadline     *time.Time `json:"deadline"`
	Requirements *string    `json:"requirements"`
}

// UpdateProject edits listing fields. Only the owner may edit, and only
// before bidding closes.
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	project, ok := pc.loadOwnedProject(c)
	if !ok {
		return
	}

	switch project.Status {
	case models.ProjectDraft, models.ProjectPublished, models.ProjectBidding:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Project can no longer be edited"})
		return
	}

	var req ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.Title != nil {
		project.Title = *req.Title
	}
	if req.Description != nil {
		project.Description = *req.Description
	}
	if req.Category != nil {
		project.Category = *req.Category
	}
	if req.Budget != nil {
		project.Budget = req.Budget
	}
	if req.Location != nil {
		project.Location = req.Location
	}
	if req.StartDate != nil {
		project.StartDate = req.StartDate
	}
	if req.Deadline != nil {
		project.Deadline = req.Deadline
	}
	if req.Requirements != nil {
		project.Requirements = req.Requirements
	}

	if err := pc.DB.Save(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update project"})
		return
	}

	c.JSON(http.StatusOK, project)
}

// PublishProject opens a draft for bidding.
func (pc *ProjectController) PublishProject(c *gin.Context) {
	pc.transition(c, models.ProjectPublished)
}

// CancelProject cancels any non-terminal project.
func (pc *ProjectController) CancelProject(c *gin.Context) {
	pc.transition(c, models.ProjectCancelled)
}

type StatusChangeRequest struct {
	Status models.ProjectStatus `json:"status" binding:"required"`
}

// ChangeProjectStatus applies an explicit lifecycle transition.
func (pc *ProjectController) ChangeProjectStatus(c *gin.Context) {
	var req StatusChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	if !models.ValidProjectStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown project status"})
		return
	}
	pc.transition(c, req.Status)
}

func (pc *ProjectController) transition(c *gin.Context, next models.ProjectStatus) {
	project, ok := pc.loadOwnedProject(c)
	if !ok {
		return
	}

	if next == models.ProjectAwarded {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Use the award endpoint to award a project"})
		return
	}
	if !project.Status.CanTransitionTo(next) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Illegal status transition"})
		return
	}

	project.Status = next
	if err := pc.DB.Save(project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update project status"})
		return
	}

	c.JSON(http.StatusOK, project)
}

type AwardRequest struct {
	BidID string `json:"bid_id" binding:"required"`
}

// AwardProject accepts the chosen bid, rejects the rest, and moves the
// project to awarded. The bid must belong to this project.
func (pc *ProjectController) AwardProject(c *gin.Context) {
	project, ok := pc.loadOwnedProject(c)
	if !ok {
		return
	}

	var req AwardRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if !project.Status.CanTransitionTo(models.ProjectAwarded) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Project is not open for awarding"})
		return
	}

	var bid models.Bid
	if err := pc.DB.Where("id = ?", req.BidID).First(&bid).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Bid not found"})
		return
	}
	if bid.ProjectID != project.ID {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Bid does not belong to this project"})
		return
	}
	if !bid.Status.CanTransitionTo(models.BidAccepted) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Bid is no longer pending"})
		return
	}

	err := pc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Bid{}).
			Where("id = ?", bid.ID).
			Update("status", models.BidAccepted).Error; err != nil {
			return err
		}
		if err := tx.Model(&models.Bid{}).
			Where("project_id = ? AND id <> ? AND status = ?", project.ID, bid.ID, models.BidPending).
			Update("status", models.BidRejected).Error; err != nil {
			return err
		}
		project.Status = models.ProjectAwarded
		project.AwardedBidID = &bid.ID
		return tx.Save(project).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to award project"})
		return
	}

	bid.Status = models.BidAccepted
	if pc.Notifier != nil {
		pc.Notifier.BidAccepted(project, &bid)
	}

	c.JSON(http.StatusOK, project)
}

func (pc *ProjectController) loadProject(c *gin.Context) (*models.Project, bool) {
	var project models.Project
	if err := pc.DB.Where("id = ?", c.Param("id")).First(&project).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
		return nil, false
	}
	return &project, true
}

func (pc *ProjectController) loadOwnedProject(c *gin.Context) (*models.Project, bool) {
	project, ok := pc.loadProject(c)
	if !ok {
		return nil, false
	}

	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)
	if project.CompanyID != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not the project owner"})
		return nil, false
	}
	return project, true
}
