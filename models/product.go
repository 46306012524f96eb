package models

import "time"

const PRODUCT_STATUS_AVAILABLE = "Available"
const PRODUCT_STATUS_UNAVAILABLE = "Unavailable"
const PRODUCT_STATUS_SOLD = "Sold"

// HeavyProduct is a machinery inventory row. The responsible employee's name
// and number are snapshotted into the row when it is written, not joined back
// at read time.
type HeavyProduct struct {
	ProductID         string     `gorm:"column:product_id;primary_key" json:"product_id"`
	Name              string     `gorm:"not null" json:"name" form:"name"`
	Type              string     `gorm:"not null" json:"type" form:"type"`
	Brand             string     `gorm:"not null" json:"brand" form:"brand"`
	Model             string     `gorm:"not null" json:"model" form:"model"`
	YearOfManufacture *int       `json:"year_of_manufacture" form:"year_of_manufacture"`
	Price             *float64   `gorm:"not null" json:"price" form:"price"`
	Weight            *float64   `json:"weight" form:"weight"`
	Dimensions        string     `json:"dimensions" form:"dimensions"`
	EngineType        string     `json:"engine_type" form:"engine_type"`
	Horsepower        *float64   `json:"horsepower" form:"horsepower"`
	FuelCapacity      *float64   `json:"fuel_capacity" form:"fuel_capacity"`
	OperationalHours  *int       `json:"operational_hours" form:"operational_hours"`
	WarrantyPeriod    *int       `json:"warranty_period" form:"warranty_period"`
	Status            string     `gorm:"not null" json:"status" form:"status"`
	Description       string     `gorm:"type:text" json:"description" form:"description"`
	ImageURL          string     `gorm:"column:image_url" json:"image_url" form:"image_url"`
	EmployeeID        string     `gorm:"not null;index" json:"employee_id" form:"employee_id"`
	EmployeeName      string     `gorm:"not null" json:"employee_name"`
	EmployeeNum       string     `gorm:"not null" json:"employee_num"`
	CreatedAt         *time.Time `json:"created_at"`
	UpdatedAt         *time.Time `json:"updated_at"`
}

func (HeavyProduct) TableName() string {
	return "heavy_products"
}

func IsValidProductStatus(status string) bool {
	switch status {
	case PRODUCT_STATUS_AVAILABLE, PRODUCT_STATUS_UNAVAILABLE, PRODUCT_STATUS_SOLD:
		return true
	}
	return false
}

func (p HeavyProduct) MissingFields() string {
	if p.Name == "" {
		return "name"
	} else if p.Type == "" {
		return "type"
	} else if p.Brand == "" {
		return "brand"
	} else if p.Model == "" {
		return "model"
	} else if p.Price == nil {
		return "price"
	} else if p.Status == "" {
		return "status"
	} else if p.EmployeeID == "" {
		return "employee_id"
	}
	return ""
}
