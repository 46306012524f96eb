package controllers

import (
	"fmt"
	"log"
	"net/http"

	dbpkg "machcrm/db"
	"machcrm/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// POST /add-customer (gated)
// The opportunity, dealer and employee references must all resolve before the
// row is written.
func AddCustomer(c *gin.Context) {
	var customer models.Customer
	if err := c.Bind(&customer); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	if missing := customer.MissingFields(); missing != "" {
		msg := fmt.Sprintf("Invalid input data. '%s' is required.", missing)
		log.Print(msg)
		models.QueueNotification(db, "Add Customer Failed", msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	var opportunity models.Opportunity
	if err := db.Where("opportunity_id = ?", customer.OpportunityID).First(&opportunity).Error; err != nil {
		msg := fmt.Sprintf("Opportunity not found: %s", customer.OpportunityID)
		log.Print(msg)
		models.QueueNotification(db, "Add Customer Failed", msg)
		RespondError(c, "Opportunity not found", http.StatusNotFound)
		return
	}
	var dealer models.Dealer
	if err := db.Where("dealer_id = ?", customer.DealerID).First(&dealer).Error; err != nil {
		msg := fmt.Sprintf("Dealer not found: %s", customer.DealerID)
		log.Print(msg)
		models.QueueNotification(db, "Add Customer Failed", msg)
		RespondError(c, "Dealer not found", http.StatusNotFound)
		return
	}
	var employee models.Employee
	if err := db.Where("employee_id = ?", customer.EmployeeID).First(&employee).Error; err != nil {
		msg := fmt.Sprintf("Employee not found: %s", customer.EmployeeID)
		log.Print(msg)
		models.QueueNotification(db, "Add Customer Failed", msg)
		RespondError(c, "Employee not found", http.StatusNotFound)
		return
	}

	customer.CustomerID = uuid.New().String()

	tx := db.Begin()
	if err := tx.Create(&customer).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error inserting customer: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Add Customer Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("add customer: %s added", customer.CustomerID)
	models.QueueNotification(db, "Add Customer Successful",
		fmt.Sprintf("Customer added successfully.\n\nCustomer ID: %s\nName: %s\nOpportunity: %s\nDealer: %s\nHandled by: %s (%s)",
			customer.CustomerID, customer.Name, opportunity.OpportunityName,
			dealer.DealerCode, employee.FullName(), employee.EmpNum))

	RespondCreated(c, gin.H{
		"message":  "Customer added successfully",
		"customer": customer,
	})
}

// GET /get-customers (public)
func GetCustomers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	query := db.Model(&models.Customer{})
	if v := c.Query("customer_id"); v != "" {
		query = query.Where("customer_id = ?", v)
	}
	if v := c.Query("customer_name"); v != "" {
		query = query.Where("LOWER(name) LIKE ?", containsPattern(v))
	}
	if v := c.Query("opportunity_id"); v != "" {
		query = query.Where("opportunity_id = ?", v)
	}
	if v := c.Query("dealer_id"); v != "" {
		query = query.Where("dealer_id = ?", v)
	}
	if v := c.Query("employee_id"); v != "" {
		query = query.Where("employee_id = ?", v)
	}

	var customers []models.Customer
	if err := query.Find(&customers).Error; err != nil {
		msg := fmt.Sprintf("Error retrieving customers: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Get Customers Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}

	log.Printf("get customers: fetched %d rows", len(customers))
	models.QueueNotification(db, "Get Customers Successful",
		fmt.Sprintf("Successfully retrieved %d customer(s).", len(customers)))

	RespondSuccess(c, gin.H{
		"customers":   customers,
		"total_count": len(customers),
	})
}

type customerUpdateRequest struct {
	CustomerID  string  `json:"customer_id"`
	Name        *string `json:"customer_name"`
	ContactInfo *string `json:"customer_contact_info"`
	Address     *string `json:"customer_address"`
	DealerID    *string `json:"dealer_id"`
	EmployeeID  *string `json:"employee_id"`
}

// PUT /update-customer (gated)
func UpdateCustomer(c *gin.Context) {
	var req customerUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.CustomerID == "" {
		RespondError(c, "Customer ID must be provided to update a customer.", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("customer_id = ?", req.CustomerID).First(&customer).Error; err != nil {
		models.QueueNotification(db, "Update Customer Failed",
			fmt.Sprintf("Customer not found: %s", req.CustomerID))
		RespondError(c, "Customer not found", http.StatusNotFound)
		return
	}

	if req.DealerID != nil && *req.DealerID != customer.DealerID {
		var dealer models.Dealer
		if err := db.Where("dealer_id = ?", *req.DealerID).First(&dealer).Error; err != nil {
			RespondError(c, "Dealer not found", http.StatusNotFound)
			return
		}
		customer.DealerID = dealer.DealerID
	}
	if req.EmployeeID != nil && *req.EmployeeID != customer.EmployeeID {
		var employee models.Employee
		if err := db.Where("employee_id = ?", *req.EmployeeID).First(&employee).Error; err != nil {
			RespondError(c, "Employee not found", http.StatusNotFound)
			return
		}
		customer.EmployeeID = employee.EmployeeID
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.ContactInfo != nil {
		customer.ContactInfo = *req.ContactInfo
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}

	tx := db.Begin()
	if err := tx.Save(&customer).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error updating customer: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Update Customer Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Update Customer Successful",
		fmt.Sprintf("Customer %s (%s) updated successfully.", customer.Name, customer.CustomerID))

	RespondSuccess(c, gin.H{
		"message":  "Customer updated successfully.",
		"customer": customer,
	})
}

// DELETE /delete-customer (gated)
func DeleteCustomer(c *gin.Context) {
	customerID := c.Query("customer_id")
	if customerID == "" {
		RespondError(c, "Customer ID must be provided.", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var customer models.Customer
	if err := db.Where("customer_id = ?", customerID).First(&customer).Error; err != nil {
		models.QueueNotification(db, "Delete Customer Failed",
			fmt.Sprintf("Customer not found: %s", customerID))
		RespondError(c, "Customer not found", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Delete(&customer).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error deleting customer: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Delete Customer Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Delete Customer Successful",
		fmt.Sprintf("Deleted customer %s (%s).", customer.Name, customer.CustomerID))

	RespondSuccess(c, gin.H{
		"message":             "Customer successfully deleted.",
		"deleted_customer_id": customer.CustomerID,
		"customer_name":       customer.Name,
	})
}
