package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message represents the messages table. A nil recipient with a project set
// means the message is broadcast to everyone involved in the project.
type Message struct {
	ID          string      `gorm:"primaryKey;column:id" json:"id"`
	SenderID    string      `gorm:"column:sender_id" json:"sender_id"`
	RecipientID *string     `gorm:"column:recipient_id" json:"recipient_id,omitempty"`
	ProjectID   *string     `gorm:"column:project_id" json:"project_id,omitempty"`
	Content     string      `gorm:"column:content;type:text" json:"content"`
	MessageType MessageType `gorm:"column:message_type;default:text" json:"message_type"`
	IsRead      bool        `gorm:"column:is_read;default:false" json:"is_read"`
	CreatedAt   time.Time   `gorm:"column:created_at" json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}

func (Message) TableName() string {
	return "messages"
}

func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	if m.MessageType == "" {
		m.MessageType = MessageText
	}
	return nil
}
