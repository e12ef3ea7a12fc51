package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project represents the projects table.
type Project struct {
	ID           string        `gorm:"primaryKey;column:id" json:"id"`
	Title        string        `gorm:"column:title" json:"title"`
	Description  string        `gorm:"column:description;type:text" json:"description"`
	Category     string        `gorm:"column:category" json:"category"`
	Budget       *float64      `gorm:"column:budget" json:"budget,omitempty"`
	Currency     string        `gorm:"column:currency;default:USD" json:"currency"`
	Location     *string       `gorm:"column:location" json:"location,omitempty"`
	StartDate    *time.Time    `gorm:"column:start_date" json:"start_date,omitempty"`
	Deadline     *time.Time    `gorm:"column:deadline" json:"deadline,omitempty"`
	Requirements *string       `gorm:"column:requirements;type:text" json:"requirements,omitempty"`
	Status       ProjectStatus `gorm:"column:status;default:draft" json:"status"`
	CompanyID    string        `gorm:"column:company_id" json:"company_id"`
	AwardedBidID *string       `gorm:"column:awarded_bid_id" json:"awarded_bid_id,omitempty"`
	CreatedAt    time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time     `gorm:"column:updated_at" json:"updated_at"`

	// Company and bids are loaded by explicit foreign-key lookups; no
	// back-reference object graph.
	Company *User `gorm:"foreignKey:CompanyID" json:"company,omitempty"`
	Bids    []Bid `gorm:"foreignKey:ProjectID" json:"bids,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = ProjectDraft
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return nil
}
