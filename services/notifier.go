package services

import (
	"fmt"
	"log"

	"buildbidz-api/config"
	"buildbidz-api/models"

	"gorm.io/gorm"
)

// Notifier delivers best-effort notifications: a system message in the
// project thread plus an email when SMTP is configured. Failures are
// logged and never surfaced to the API caller.
type Notifier struct {
	DB     *gorm.DB
	Mailer *config.Mailer
}

func NewNotifier(db *gorm.DB, mailer *config.Mailer) *Notifier {
	return &Notifier{DB: db, Mailer: mailer}
}

// BidSubmitted notifies the project owner that a new bid arrived.
func (n *Notifier) BidSubmitted(project *models.Project, bid *models.Bid, supplier *models.User) {
	content := fmt.Sprintf("%s submitted a bid of %.2f %s on %q",
		supplier.Username, bid.Amount, bid.Currency, project.Title)
	n.systemMessage(bid.SupplierID, project.CompanyID, project.ID, content)

	n.email(project.CompanyID, "New bid on "+project.Title,
		fmt.Sprintf("<p>%s bid <b>%.2f %s</b> with a delivery time of %d days.</p>",
			supplier.Username, bid.Amount, bid.Currency, bid.DeliveryTime))
}

// BidAccepted notifies the supplier that their bid won the project.
func (n *Notifier) BidAccepted(project *models.Project, bid *models.Bid) {
	content := fmt.Sprintf("Your bid on %q was accepted", project.Title)
	n.systemMessage(project.CompanyID, bid.SupplierID, project.ID, content)

	n.email(bid.SupplierID, "Bid accepted: "+project.Title,
		fmt.Sprintf("<p>Your bid of <b>%.2f %s</b> on %q was accepted.</p>",
			bid.Amount, bid.Currency, project.Title))
}

func (n *Notifier) systemMessage(senderID, recipientID, projectID, content string) {
	msg := models.Message{
		SenderID:    senderID,
		RecipientID: &recipientID,
		ProjectID:   &projectID,
		Content:     content,
		MessageType: models.MessageSystem,
	}
	if err := n.DB.Create(&msg).Error; err != nil {
		log.Printf("Warning: failed to record notification message: %v", err)
	}
}

func (n *Notifier) email(userID, subject, html string) {
	if n.Mailer == nil || !n.Mailer.Configured() {
		return
	}

	var user models.User
	if err := n.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		log.Printf("Warning: notification recipient %s not found: %v", userID, err)
		return
	}

	if err := n.Mailer.Send([]string{user.Email}, subject, html); err != nil {
		log.Printf("Warning: failed to send notification email to %s: %v", user.Email, err)
	}
}
