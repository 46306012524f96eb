package models

import "time"

// Customer links a person to the opportunity, dealer and employee that closed
// the deal. All three references must resolve at write time.
type Customer struct {
	CustomerID    string     `gorm:"column:customer_id;primary_key" json:"customer_id"`
	Name          string     `gorm:"not null" json:"customer_name" form:"customer_name"`
	ContactInfo   string     `gorm:"not null" json:"customer_contact_info" form:"customer_contact_info"`
	Address       string     `gorm:"type:text;not null" json:"customer_address" form:"customer_address"`
	OpportunityID string     `gorm:"not null;index" json:"opportunity_id" form:"opportunity_id"`
	DealerID      string     `gorm:"not null;index" json:"dealer_id" form:"dealer_id"`
	EmployeeID    string     `gorm:"not null;index" json:"employee_id" form:"employee_id"`
	CreatedAt     *time.Time `json:"created_at"`
}

func (c Customer) MissingFields() string {
	if c.Name == "" {
		return "customer_name"
	} else if c.ContactInfo == "" {
		return "customer_contact_info"
	} else if c.Address == "" {
		return "customer_address"
	} else if c.OpportunityID == "" {
		return "opportunity_id"
	} else if c.DealerID == "" {
		return "dealer_id"
	} else if c.EmployeeID == "" {
		return "employee_id"
	}
	return ""
}
