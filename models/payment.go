package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Payment represents the payments table. The gateway calls back through a
// webhook; WebhookProcessed keeps that handling idempotent and AuditTrail
// records every status change as a JSON array.
type Payment struct {
	ID                string        `gorm:"primaryKey;column:id" json:"id"`
	ProjectID         string        `gorm:"column:project_id" json:"project_id"`
	PayerID           string        `gorm:"column:payer_id" json:"payer_id"`
	PayeeID           string        `gorm:"column:payee_id" json:"payee_id"`
	Amount            float64       `gorm:"column:amount" json:"amount"`
	Currency          string        `gorm:"column:currency;default:USD" json:"currency"`
	Status            PaymentStatus `gorm:"column:status;default:pending" json:"status"`
	PaymentMethod     *string       `gorm:"column:payment_method" json:"payment_method,omitempty"`
	TransactionID     *string       `gorm:"column:transaction_id" json:"transaction_id,omitempty"`
	RazorpayOrderID   *string       `gorm:"column:razorpay_order_id" json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID *string       `gorm:"column:razorpay_payment_id" json:"razorpay_payment_id,omitempty"`
	WebhookProcessed  bool          `gorm:"column:webhook_processed;default:false" json:"webhook_processed"`
	AuditTrail        *string       `gorm:"column:audit_trail;type:text" json:"audit_trail,omitempty"`
	CreatedAt         time.Time     `gorm:"column:created_at" json:"created_at"`
	UpdatedAt         time.Time     `gorm:"column:updated_at" json:"updated_at"`
}

func (Payment) TableName() string {
	return "payments"
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = PaymentPending
	}
	if p.Currency == "" {
		p.Currency = "USD"
	}
	return nil
}

// StatusChange is one entry of a payment's audit trail.
type StatusChange struct {
	From PaymentStatus `json:"from"`
	To   PaymentStatus `json:"to"`
	At   time.Time     `json:"at"`
	Note string        `json:"note,omitempty"`
}

// AuditEntries decodes the stored audit trail. A missing or malformed
// trail decodes to an empty slice rather than an error; the trail is an
// append-only log, never a source of truth.
func (p *Payment) AuditEntries() []StatusChange {
	if p.AuditTrail == nil || *p.AuditTrail == "" {
		return []StatusChange{}
	}
	var entries []StatusChange
	if err := json.Unmarshal([]byte(*p.AuditTrail), &entries); err != nil {
		return []StatusChange{}
	}
	return entries
}

// AppendAudit records a status change on the trail.
func (p *Payment) AppendAudit(from, to PaymentStatus, note string) {
	entries := append(p.AuditEntries(), StatusChange{
		From: from,
		To:   to,
		At:   time.Now().UTC(),
		Note: note,
	})
	raw, err := json.Marshal(entries)
	if err != nil {
		return
	}
	trail := string(raw)
	p.AuditTrail = &trail
}
