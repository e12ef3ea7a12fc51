package controllers

import (
	"net/http"

	"buildbidz-api/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// MessageController handles direct and project-broadcast messages.
type MessageController struct {
	DB *gorm.DB
}

func NewMessageController(db *gorm.DB) *MessageController {
	return &MessageController{DB: db}
}

type MessageCreateRequest struct {
	RecipientID *string `json:"recipient_id"`
	ProjectID   *string `json:"project_id"`
	Content     string  `json:"content" binding:"required"`
	MessageType string  `json:"message_type"`
}

// SendMessage creates a message. Without a recipient it must carry a
// project and is treated as a broadcast to everyone involved in it.
func (mc *MessageController) SendMessage(c *gin.Context) {
	var req MessageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}

	if req.MessageType == "" {
		req.MessageType = string(models.MessageText)
	}
	if !models.ValidMessageType(models.MessageType(req.MessageType)) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unknown message type"})
		return
	}
	if req.RecipientID == nil && req.ProjectID == nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "A recipient or a project is required"})
		return
	}

	if req.RecipientID != nil {
		var recipient models.User
		if err := mc.DB.Where("id = ?", *req.RecipientID).First(&recipient).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Recipient not found"})
			return
		}
	}
	if req.ProjectID != nil {
		var project models.Project
		if err := mc.DB.Where("id = ?", *req.ProjectID).First(&project).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
			return
		}
	}

	msg := models.Message{
		SenderID:    c.GetString("userID"),
		RecipientID: req.RecipientID,
		ProjectID:   req.ProjectID,
		Content:     req.Content,
		MessageType: models.MessageType(req.MessageType),
	}

	if err := mc.DB.Create(&msg).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to send message"})
		return
	}

	c.JSON(http.StatusCreated, msg)
}

// GetMessages lists messages addressed to or sent by the caller, plus
// broadcasts on projects the caller owns or has bid on.
func (mc *MessageController) GetMessages(c *gin.Context) {
	userID := c.GetString("userID")

	var projectIDs []string
	mc.DB.Model(&models.Project{}).Where("company_id = ?", userID).Pluck("id", &projectIDs)
	var bidProjectIDs []string
	mc.DB.Model(&models.Bid{}).Where("supplier_id = ?", userID).Distinct().Pluck("project_id", &bidProjectIDs)
	projectIDs = append(projectIDs, bidProjectIDs...)
	if len(projectIDs) == 0 {
		projectIDs = []string{""}
	}

	messages := []models.Message{}
	err := mc.DB.
		Where("sender_id = ? OR recipient_id = ?", userID, userID).
		Or("recipient_id IS NULL AND project_id IN ?", projectIDs).
		Order("created_at DESC").
		Find(&messages).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list messages"})
		return
	}

	c.JSON(http.StatusOK, messages)
}

// MarkMessageRead flags a received message as read.
func (mc *MessageController) MarkMessageRead(c *gin.Context) {
	var msg models.Message
	if err := mc.DB.Where("id = ?", c.Param("id")).First(&msg).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Message not found"})
		return
	}

	userID := c.GetString("userID")
	if msg.RecipientID == nil || *msg.RecipientID != userID {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not the message recipient"})
		return
	}

	if !msg.IsRead {
		msg.IsRead = true
		if err := mc.DB.Save(&msg).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to update message"})
			return
		}
	}

	c.JSON(http.StatusOK, msg)
}
