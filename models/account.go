package models

import "time"

// Account is a customer organization. Opportunities reference accounts by
// name and create them on demand when the name is unseen.
type Account struct {
	AccountID   string     `gorm:"column:account_id;primary_key" json:"account_id"`
	AccountName string     `gorm:"not null;index" json:"account_name" form:"account_name"`
	CreatedAt   *time.Time `json:"created_at"`
}
