package models

import (
	"time"

	"github.com/jinzhu/gorm"
)

const NOTIFICATION_STATUS_PENDING = 0
const NOTIFICATION_STATUS_PROCESSING = 1
const NOTIFICATION_STATUS_DONE = 2
const NOTIFICATION_STATUS_FAILED = 3

// Notification is an outbox row. Handlers queue mail here and a worker sends
// it after the request's own transaction has committed, so a mail failure can
// never roll back a data change.
type Notification struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Subject     string     `gorm:"not null" json:"subject"`
	Body        string     `gorm:"type:text" json:"body"`
	Recipient   string     `json:"recipient"` // empty means the configured ops group
	Status      int        `gorm:"not null;default:0;index" json:"status"`
	CreatedAt   *time.Time `json:"created_at"`
	ProcessedAt *time.Time `json:"processed_at"`
}

// QueueNotification enqueues mail for the configured recipient group.
func QueueNotification(db *gorm.DB, subject, body string) {
	QueueNotificationTo(db, "", subject, body)
}

// QueueNotificationTo enqueues mail for a single recipient. Failures are
// swallowed: notifications are best-effort by design.
func QueueNotificationTo(db *gorm.DB, recipient, subject, body string) {
	if db == nil {
		return
	}
	n := Notification{
		Subject:   subject,
		Body:      body,
		Recipient: recipient,
		Status:    NOTIFICATION_STATUS_PENDING,
	}
	db.Create(&n)
}
