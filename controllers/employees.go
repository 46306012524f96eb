package controllers

import (
	"fmt"
	"log"
	"net/http"
	"time"

	dbpkg "machcrm/db"
	"machcrm/models"
	"machcrm/tools"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type employeeCreateRequest struct {
	FirstName        string   `json:"first_name" form:"first_name"`
	LastName         string   `json:"last_name" form:"last_name"`
	Email            string   `json:"emp_email" form:"emp_email"`
	EmpNum           string   `json:"emp_num" form:"emp_num"`
	Phone            string   `json:"phone" form:"phone"`
	HireDate         string   `json:"hire_date" form:"hire_date"`
	Position         string   `json:"position" form:"position"`
	Salary           *float64 `json:"salary" form:"salary"`
	Department       string   `json:"department" form:"department"`
	Age              *int     `json:"age" form:"age"`
	Sex              string   `json:"sex" form:"sex"`
	BloodGroup       string   `json:"blood_group" form:"blood_group"`
	Height           *float64 `json:"height" form:"height"`
	Weight           *float64 `json:"weight" form:"weight"`
	Address          string   `json:"address" form:"address"`
	EmergencyContact string   `json:"emergency_contact" form:"emergency_contact"`
	Nationality      string   `json:"nationality" form:"nationality"`
	DateOfBirth      string   `json:"date_of_birth" form:"date_of_birth"`
	MaritalStatus    string   `json:"marital_status" form:"marital_status"`
	EmploymentStatus string   `json:"employment_status" form:"employment_status"`
	InsuranceNumber  string   `json:"insurance_number" form:"insurance_number"`
}

// POST /add-employee (gated)
func AddEmployee(c *gin.Context) {
	var req employeeCreateRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var hireDate *time.Time
	if req.HireDate != "" {
		parsed, err := time.Parse(dateLayout, req.HireDate)
		if err != nil {
			RespondError(c, "Invalid hire_date format. Use 'YYYY-MM-DD'.", http.StatusBadRequest)
			return
		}
		hireDate = &parsed
	}
	var dateOfBirth *time.Time
	if req.DateOfBirth != "" {
		parsed, err := time.Parse(dateLayout, req.DateOfBirth)
		if err != nil {
			RespondError(c, "Invalid date_of_birth format. Use 'YYYY-MM-DD'.", http.StatusBadRequest)
			return
		}
		dateOfBirth = &parsed
	}

	employee := models.Employee{
		EmployeeID:       uuid.New().String(),
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		Email:            req.Email,
		EmpNum:           req.EmpNum,
		Phone:            req.Phone,
		HireDate:         hireDate,
		Position:         req.Position,
		Salary:           req.Salary,
		Department:       req.Department,
		Age:              req.Age,
		Sex:              req.Sex,
		BloodGroup:       req.BloodGroup,
		Height:           req.Height,
		Weight:           req.Weight,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Nationality:      req.Nationality,
		DateOfBirth:      dateOfBirth,
		MaritalStatus:    req.MaritalStatus,
		EmploymentStatus: req.EmploymentStatus,
		InsuranceNumber:  req.InsuranceNumber,
	}

	if missing := employee.MissingFields(); missing != "" {
		msg := fmt.Sprintf("Invalid input data. '%s' is required.", missing)
		log.Print(msg)
		models.QueueNotification(db, "Add Employee Failed", msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	var existing models.Employee
	if err := db.Where("email = ? OR emp_num = ?", employee.Email, employee.EmpNum).
		First(&existing).Error; err == nil {
		msg := fmt.Sprintf("Employee with email %s or number %s already exists.", employee.Email, employee.EmpNum)
		log.Print(msg)
		models.QueueNotification(db, "Add Employee Failed", msg)
		RespondError(c, msg, http.StatusConflict)
		return
	}

	tx := db.Begin()
	if err := tx.Create(&employee).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error inserting employee: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Add Employee Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("add employee: %s (%s) added", employee.EmployeeID, employee.EmpNum)
	models.QueueNotification(db, "Add Employee Successful",
		fmt.Sprintf("Employee added successfully.\n\nEmployee ID: %s\nName: %s\nEmail: %s\nNumber: %s\nPosition: %s\nDepartment: %s",
			employee.EmployeeID, employee.FullName(), employee.Email,
			employee.EmpNum, employee.Position, employee.Department))

	RespondCreated(c, gin.H{
		"message":  "Employee added successfully",
		"employee": employee,
	})
}

// GET /get-employees (public)
func GetEmployees(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	query := db.Model(&models.Employee{})
	if v := c.Query("employee_id"); v != "" {
		query = query.Where("employee_id = ?", v)
	}
	if v := c.Query("name"); v != "" {
		pattern := containsPattern(v)
		query = query.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", pattern, pattern)
	}
	if v := c.Query("emp_email"); v != "" {
		query = query.Where("email = ?", v)
	}
	if v := c.Query("department"); v != "" {
		query = query.Where("department = ?", v)
	}
	if v := c.Query("position"); v != "" {
		query = query.Where("position = ?", v)
	}
	if v := c.Query("employment_status"); v != "" {
		query = query.Where("employment_status = ?", v)
	}

	var employees []models.Employee
	if err := query.Find(&employees).Error; err != nil {
		msg := fmt.Sprintf("Error retrieving employees: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Get Employees Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}

	log.Printf("get employees: fetched %d rows", len(employees))
	models.QueueNotification(db, "Get Employees Successful",
		fmt.Sprintf("Successfully retrieved %d employee(s).", len(employees)))

	RespondSuccess(c, gin.H{
		"employees":   employees,
		"total_count": len(employees),
	})
}

type employeeUpdateRequest struct {
	EmployeeID       string   `json:"employee_id"`
	FirstName        *string  `json:"first_name"`
	LastName         *string  `json:"last_name"`
	Email            *string  `json:"emp_email"`
	Phone            *string  `json:"phone"`
	Position         *string  `json:"position"`
	Salary           *float64 `json:"salary"`
	Department       *string  `json:"department"`
	Age              *int     `json:"age"`
	Address          *string  `json:"address"`
	EmergencyContact *string  `json:"emergency_contact"`
	MaritalStatus    *string  `json:"marital_status"`
	EmploymentStatus *string  `json:"employment_status"`
	InsuranceNumber  *string  `json:"insurance_number"`
}

// PUT /update-employee (gated)
func UpdateEmployee(c *gin.Context) {
	var req employeeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.EmployeeID == "" {
		RespondError(c, "Employee ID must be provided to update an employee.", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var employee models.Employee
	if err := db.Where("employee_id = ?", req.EmployeeID).First(&employee).Error; err != nil {
		models.QueueNotification(db, "Update Employee Failed",
			fmt.Sprintf("Employee not found: %s", req.EmployeeID))
		RespondError(c, "Employee not found", http.StatusNotFound)
		return
	}

	if req.Email != nil && !tools.ValidateEmail(*req.Email) {
		RespondError(c, "Invalid email address.", http.StatusBadRequest)
		return
	}

	if req.FirstName != nil {
		employee.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		employee.LastName = *req.LastName
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Position != nil {
		employee.Position = *req.Position
	}
	if req.Salary != nil {
		employee.Salary = req.Salary
	}
	if req.Department != nil {
		employee.Department = *req.Department
	}
	if req.Age != nil {
		employee.Age = req.Age
	}
	if req.Address != nil {
		employee.Address = *req.Address
	}
	if req.EmergencyContact != nil {
		employee.EmergencyContact = *req.EmergencyContact
	}
	if req.MaritalStatus != nil {
		employee.MaritalStatus = *req.MaritalStatus
	}
	if req.EmploymentStatus != nil {
		employee.EmploymentStatus = *req.EmploymentStatus
	}
	if req.InsuranceNumber != nil {
		employee.InsuranceNumber = *req.InsuranceNumber
	}

	tx := db.Begin()
	if err := tx.Save(&employee).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error updating employee: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Update Employee Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Update Employee Successful",
		fmt.Sprintf("Employee %s (%s) updated successfully.", employee.FullName(), employee.EmployeeID))

	RespondSuccess(c, gin.H{
		"message":  "Employee updated successfully.",
		"employee": employee,
	})
}

// DELETE /delete-employee (gated)
func DeleteEmployee(c *gin.Context) {
	employeeID := c.Query("employee_id")
	if employeeID == "" {
		RespondError(c, "Employee ID must be provided.", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var employee models.Employee
	if err := db.Where("employee_id = ?", employeeID).First(&employee).Error; err != nil {
		models.QueueNotification(db, "Delete Employee Failed",
			fmt.Sprintf("Employee not found: %s", employeeID))
		RespondError(c, "Employee not found", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Delete(&employee).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error deleting employee: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Delete Employee Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Delete Employee Successful",
		fmt.Sprintf("Deleted employee %s (%s).", employee.FullName(), employee.EmployeeID))

	RespondSuccess(c, gin.H{
		"message":             "Employee successfully deleted.",
		"deleted_employee_id": employee.EmployeeID,
		"employee_name":       employee.FullName(),
	})
}
