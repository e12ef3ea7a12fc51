package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document represents the documents table: an uploaded file stored on disk
// under a generated filename, keeping the original name for display.
type Document struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	Filename     string    `gorm:"column:filename" json:"filename"`
	OriginalName string    `gorm:"column:original_name" json:"original_name"`
	FileSize     int64     `gorm:"column:file_size" json:"file_size"`
	MimeType     string    `gorm:"column:mime_type" json:"mime_type"`
	URL          string    `gorm:"column:url" json:"url"`
	UploadedBy   string    `gorm:"column:uploaded_by" json:"uploaded_by"`
	ProjectID    *string   `gorm:"column:project_id" json:"project_id,omitempty"`
	Category     string    `gorm:"column:category" json:"category"` // contract, invoice, certificate, etc.
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
}

func (Document) TableName() string {
	return "documents"
}

func (d *Document) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// IsValidDocumentType reports whether the mime type is an accepted upload.
func (d *Document) IsValidDocumentType() bool {
	validTypes := []string{
		"application/pdf",
		"application/msword",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
		"application/vnd.ms-excel",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"image/jpeg",
		"image/png",
	}
	for _, validType := range validTypes {
		if d.MimeType == validType {
			return true
		}
	}
	return false
}

func (d *Document) GetFileSizeInMB() float64 {
	return float64(d.FileSize) / (1024 * 1024)
}
