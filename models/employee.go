package models

import (
	"time"

	"machcrm/tools"
)

// Employee mirrors the HR-ish employee table. Opportunities and products keep
// a hard reference to an employee and must resolve it at write time.
type Employee struct {
	EmployeeID       string     `gorm:"column:employee_id;primary_key" json:"employee_id"`
	FirstName        string     `gorm:"not null" json:"first_name" form:"first_name"`
	LastName         string     `gorm:"not null" json:"last_name" form:"last_name"`
	Email            string     `gorm:"not null;unique" json:"email" form:"email"`
	EmpNum           string     `gorm:"column:emp_num;not null;unique" json:"emp_num" form:"emp_num"`
	Phone            string     `json:"phone" form:"phone"`
	HireDate         *time.Time `json:"hire_date"`
	Position         string     `json:"position" form:"position"`
	Salary           *float64   `json:"salary" form:"salary"`
	Department       string     `json:"department" form:"department"`
	Age              *int       `json:"age" form:"age"`
	Sex              string     `json:"sex" form:"sex"`
	BloodGroup       string     `json:"blood_group" form:"blood_group"`
	Height           *float64   `json:"height" form:"height"`
	Weight           *float64   `json:"weight" form:"weight"`
	Address          string     `gorm:"type:text" json:"address" form:"address"`
	EmergencyContact string     `json:"emergency_contact" form:"emergency_contact"`
	Nationality      string     `json:"nationality" form:"nationality"`
	DateOfBirth      *time.Time `json:"date_of_birth"`
	MaritalStatus    string     `json:"marital_status" form:"marital_status"`
	EmploymentStatus string     `json:"employment_status" form:"employment_status"`
	InsuranceNumber  string     `json:"insurance_number" form:"insurance_number"`
	CreatedAt        *time.Time `json:"created_at"`
}

func (e Employee) FullName() string {
	return e.FirstName + " " + e.LastName
}

func (e Employee) MissingFields() string {
	if e.FirstName == "" {
		return "first_name"
	} else if e.LastName == "" {
		return "last_name"
	} else if e.Email == "" {
		return "email"
	} else if !tools.ValidateEmail(e.Email) {
		return "email"
	} else if e.EmpNum == "" {
		return "emp_num"
	} else if e.Phone == "" {
		return "phone"
	} else if e.HireDate == nil {
		return "hire_date"
	} else if e.Position == "" {
		return "position"
	} else if e.Department == "" {
		return "department"
	}
	return ""
}
