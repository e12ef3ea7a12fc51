package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bid represents the bids table. Attachments is a JSON array of file URLs.
type Bid struct {
	ID           string    `gorm:"primaryKey;column:id" json:"id"`
	ProjectID    string    `gorm:"column:project_id" json:"project_id"`
	SupplierID   string    `gorm:"column:supplier_id" json:"supplier_id"`
	Amount       float64   `gorm:"column:amount" json:"amount"`
	Currency     string    `gorm:"column:currency;default:USD" json:"currency"`
	DeliveryTime int       `gorm:"column:delivery_time" json:"delivery_time"` // days
	Message      *string   `gorm:"column:message;type:text" json:"message,omitempty"`
	Attachments  *string   `gorm:"column:attachments;type:text" json:"attachments,omitempty"`
	Status       BidStatus `gorm:"column:status;default:pending" json:"status"`
	CreatedAt    time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at" json:"updated_at"`

	Supplier *User `gorm:"foreignKey:SupplierID" json:"supplier,omitempty"`
}

func (Bid) TableName() string {
	return "bids"
}

func (b *Bid) BeforeCreate(tx *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = BidPending
	}
	if b.Currency == "" {
		b.Currency = "USD"
	}
	return nil
}
