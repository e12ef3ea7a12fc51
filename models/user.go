package models

import (
	"time"
)

// User is the local profile row. The identity provider owns the credential
// record; the primary key here is the provider-assigned identifier, so no
// BeforeCreate hook generates one.
type User struct {
	ID            string    `gorm:"primaryKey;column:id" json:"id"`
	Username      string    `gorm:"column:username;unique" json:"username"`
	Email         string    `gorm:"column:email;unique" json:"email"`
	Role          UserRole  `gorm:"column:role" json:"role"`
	CompanyName   *string   `gorm:"column:company_name" json:"company_name,omitempty"`
	ContactPerson *string   `gorm:"column:contact_person" json:"contact_person,omitempty"`
	Phone         *string   `gorm:"column:phone" json:"phone,omitempty"`
	Address       *string   `gorm:"column:address;type:text" json:"address,omitempty"`
	Website       *string   `gorm:"column:website" json:"website,omitempty"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at" json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}
