package models

import "time"

// Dealer is a machinery dealer. Opportunities hold a soft reference to a
// dealer: the composite (id, code, owner) is looked up but allowed to miss.
type Dealer struct {
	DealerID         string     `gorm:"column:dealer_id;primary_key" json:"dealer_id"`
	DealerCode       string     `gorm:"not null;index" json:"dealer_code" form:"dealer_code"`
	OpportunityOwner string     `gorm:"not null" json:"opportunity_owner" form:"opportunity_owner"`
	CreatedAt        *time.Time `json:"created_at"`
}

func (Dealer) TableName() string {
	return "dealers"
}

func (d Dealer) MissingFields() string {
	if d.DealerCode == "" {
		return "dealer_code"
	} else if d.OpportunityOwner == "" {
		return "opportunity_owner"
	}
	return ""
}
