package controllers

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"buildbidz-api/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxUploadSize = 10 << 20 // 10 MB

// DocumentController stores uploaded files on disk and tracks them in the
// documents table.
type DocumentController struct {
	DB         *gorm.DB
	UploadPath string
}

func NewDocumentController(db *gorm.DB, uploadPath string) *DocumentController {
	return &DocumentController{DB: db, UploadPath: uploadPath}
}

// UploadDocument accepts a multipart file plus category and optional
// project id form fields.
func (dc *DocumentController) UploadDocument(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "No file provided"})
		return
	}

	if file.Size > maxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "File exceeds the 10MB limit"})
		return
	}

	category := c.PostForm("category")
	if category == "" {
		category = "other"
	}

	var projectID *string
	if pid := c.PostForm("project_id"); pid != "" {
		var project models.Project
		if err := dc.DB.Where("id = ?", pid).First(&project).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"detail": "Project not found"})
			return
		}
		projectID = &pid
	}

	doc := models.Document{
		OriginalName: filepath.Base(file.Filename),
		FileSize:     file.Size,
		MimeType:     file.Header.Get("Content-Type"),
		UploadedBy:   c.GetString("userID"),
		ProjectID:    projectID,
		Category:     category,
	}

	if !doc.IsValidDocumentType() {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "Unsupported file type"})
		return
	}

	doc.Filename = uuid.NewString() + filepath.Ext(doc.OriginalName)
	storedPath := filepath.Join(dc.UploadPath, doc.Filename)

	if err := c.SaveUploadedFile(file, storedPath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to store file"})
		return
	}

	doc.URL = "/api/documents/" + doc.Filename

	if err := dc.DB.Create(&doc).Error; err != nil {
		os.Remove(storedPath)
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to record document"})
		return
	}

	c.JSON(http.StatusCreated, doc)
}

// GetDocuments lists the caller's uploads, optionally filtered by project.
func (dc *DocumentController) GetDocuments(c *gin.Context) {
	query := dc.DB.Where("uploaded_by = ?", c.GetString("userID"))
	if pid := c.Query("project_id"); pid != "" {
		query = query.Where("project_id = ?", pid)
	}

	documents := []models.Document{}
	if err := query.Order("created_at DESC").Find(&documents).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to list documents"})
		return
	}

	c.JSON(http.StatusOK, documents)
}

// DownloadDocument streams the stored file with its original name.
func (dc *DocumentController) DownloadDocument(c *gin.Context) {
	doc, ok := dc.loadDocument(c)
	if !ok {
		return
	}

	storedPath := filepath.Join(dc.UploadPath, doc.Filename)
	if _, err := os.Stat(storedPath); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "File missing from storage"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.OriginalName))
	c.Header("Content-Type", doc.MimeType)
	c.File(storedPath)
}

// DeleteDocument removes the record and the stored file. Uploader only.
func (dc *DocumentController) DeleteDocument(c *gin.Context) {
	doc, ok := dc.loadDocument(c)
	if !ok {
		return
	}

	userID := c.GetString("userID")
	role := c.MustGet("role").(models.UserRole)
	if doc.UploadedBy != userID && role != models.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not the document owner"})
		return
	}

	if err := dc.DB.Delete(doc).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to delete document"})
		return
	}

	if err := os.Remove(filepath.Join(dc.UploadPath, doc.Filename)); err != nil && !os.IsNotExist(err) {
		// Record is gone; a leftover file is only a cleanup concern.
		log.Printf("Warning: failed to remove stored file %s: %v", doc.Filename, err)
	}

	c.JSON(http.StatusOK, gin.H{"message": "Document deleted"})
}

func (dc *DocumentController) loadDocument(c *gin.Context) (*models.Document, bool) {
	var doc models.Document
	if err := dc.DB.Where("id = ?", c.Param("id")).First(&doc).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Document not found"})
		return nil, false
	}
	return &doc, true
}
