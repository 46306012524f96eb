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

// POST /add-heavy-product (gated)
func AddHeavyProduct(c *gin.Context) {
	var product models.HeavyProduct
	if err := c.Bind(&product); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	if missing := product.MissingFields(); missing != "" {
		msg := fmt.Sprintf("Invalid input data. '%s' is required.", missing)
		log.Print(msg)
		models.QueueNotification(db, "Add Heavy Product Failed", msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}
	if !models.IsValidProductStatus(product.Status) {
		msg := fmt.Sprintf("Invalid status '%s'. Must be one of: %s, %s, %s.",
			product.Status, models.PRODUCT_STATUS_AVAILABLE,
			models.PRODUCT_STATUS_UNAVAILABLE, models.PRODUCT_STATUS_SOLD)
		log.Print(msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	var employee models.Employee
	if err := db.Where("employee_id = ?", product.EmployeeID).First(&employee).Error; err != nil {
		msg := fmt.Sprintf("Employee not found: %s", product.EmployeeID)
		log.Print(msg)
		models.QueueNotification(db, "Add Heavy Product Failed", msg)
		RespondError(c, "Employee not found", http.StatusNotFound)
		return
	}

	product.ProductID = uuid.New().String()
	product.EmployeeName = employee.FullName()
	product.EmployeeNum = employee.EmpNum

	tx := db.Begin()
	if err := tx.Create(&product).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error inserting heavy product: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Add Heavy Product Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("add product: %s (%s %s) added by %s", product.ProductID, product.Brand, product.Model, product.EmployeeNum)
	models.QueueNotification(db, "Add Heavy Product Successful",
		fmt.Sprintf("Heavy product added successfully.\n\nProduct ID: %s\nName: %s\nBrand: %s\nModel: %s\nPrice: %s\nStatus: %s\nHandled by: %s (%s)",
			product.ProductID, product.Name, product.Brand, product.Model,
			formatOptionalFloat(product.Price), product.Status,
			product.EmployeeName, product.EmployeeNum))

	RespondCreated(c, gin.H{
		"message": "Heavy product added successfully",
		"product": product,
	})
}

// GET /get-heavy-products (public)
func GetHeavyProducts(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	query := db.Model(&models.HeavyProduct{})
	if v := c.Query("product_id"); v != "" {
		query = query.Where("product_id = ?", v)
	}
	if v := c.Query("name"); v != "" {
		query = query.Where("LOWER(name) LIKE ?", containsPattern(v))
	}
	if v := c.Query("type"); v != "" {
		query = query.Where("type = ?", v)
	}
	if v := c.Query("brand"); v != "" {
		query = query.Where("LOWER(brand) LIKE ?", containsPattern(v))
	}
	if v := c.Query("model"); v != "" {
		query = query.Where("LOWER(model) LIKE ?", containsPattern(v))
	}
	if v := c.Query("status"); v != "" {
		if !models.IsValidProductStatus(v) {
			RespondError(c, fmt.Sprintf("Invalid status '%s'.", v), http.StatusBadRequest)
			return
		}
		query = query.Where("status = ?", v)
	}
	if v := c.Query("employee_id"); v != "" {
		query = query.Where("employee_id = ?", v)
	}
	minPrice, ok := queryFloat(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(c, "max_price")
	if !ok {
		return
	}
	if minPrice != nil {
		query = query.Where("price >= ?", *minPrice)
	}
	if maxPrice != nil {
		query = query.Where("price <= ?", *maxPrice)
	}

	var products []models.HeavyProduct
	if err := query.Find(&products).Error; err != nil {
		msg := fmt.Sprintf("Error retrieving heavy products: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Get Heavy Products Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}

	log.Printf("get products: fetched %d rows", len(products))
	models.QueueNotification(db, "Get Heavy Products Successful",
		fmt.Sprintf("Successfully retrieved %d heavy product(s).", len(products)))

	RespondSuccess(c, gin.H{
		"products":    products,
		"total_count": len(products),
	})
}

type productUpdateRequest struct {
	ProductID         string   `json:"product_id"`
	Name              *string  `json:"name"`
	Type              *string  `json:"type"`
	Brand             *string  `json:"brand"`
	Model             *string  `json:"model"`
	YearOfManufacture *int     `json:"year_of_manufacture"`
	Price             *float64 `json:"price"`
	Weight            *float64 `json:"weight"`
	Dimensions        *string  `json:"dimensions"`
	EngineType        *string  `json:"engine_type"`
	Horsepower        *float64 `json:"horsepower"`
	FuelCapacity      *float64 `json:"fuel_capacity"`
	OperationalHours  *int     `json:"operational_hours"`
	WarrantyPeriod    *int     `json:"warranty_period"`
	Status            *string  `json:"status"`
	Description       *string  `json:"description"`
	ImageURL          *string  `json:"image_url"`
	EmployeeID        *string  `json:"employee_id"`
}

// PUT /update-heavy-product (gated)
// Reassigning employee_id refreshes the snapshotted name and number.
func UpdateHeavyProduct(c *gin.Context) {
	var req productUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.ProductID == "" {
		RespondError(c, "Product ID must be provided to update a product.", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var product models.HeavyProduct
	if err := db.Where("product_id = ?", req.ProductID).First(&product).Error; err != nil {
		models.QueueNotification(db, "Update Heavy Product Failed",
			fmt.Sprintf("Product not found: %s", req.ProductID))
		RespondError(c, "Product not found", http.StatusNotFound)
		return
	}

	if req.Status != nil && !models.IsValidProductStatus(*req.Status) {
		msg := fmt.Sprintf("Invalid status '%s'. Must be one of: %s, %s, %s.",
			*req.Status, models.PRODUCT_STATUS_AVAILABLE,
			models.PRODUCT_STATUS_UNAVAILABLE, models.PRODUCT_STATUS_SOLD)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}
	if req.Price != nil && *req.Price <= 0 {
		RespondError(c, "Price must be greater than zero.", http.StatusBadRequest)
		return
	}

	if req.EmployeeID != nil && *req.EmployeeID != product.EmployeeID {
		var employee models.Employee
		if err := db.Where("employee_id = ?", *req.EmployeeID).First(&employee).Error; err != nil {
			models.QueueNotification(db, "Update Heavy Product Failed",
				fmt.Sprintf("Employee not found: %s", *req.EmployeeID))
			RespondError(c, "Employee not found", http.StatusNotFound)
			return
		}
		product.EmployeeID = employee.EmployeeID
		product.EmployeeName = employee.FullName()
		product.EmployeeNum = employee.EmpNum
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Type != nil {
		product.Type = *req.Type
	}
	if req.Brand != nil {
		product.Brand = *req.Brand
	}
	if req.Model != nil {
		product.Model = *req.Model
	}
	if req.YearOfManufacture != nil {
		product.YearOfManufacture = req.YearOfManufacture
	}
	if req.Price != nil {
		product.Price = req.Price
	}
	if req.Weight != nil {
		product.Weight = req.Weight
	}
	if req.Dimensions != nil {
		product.Dimensions = *req.Dimensions
	}
	if req.EngineType != nil {
		product.EngineType = *req.EngineType
	}
	if req.Horsepower != nil {
		product.Horsepower = req.Horsepower
	}
	if req.FuelCapacity != nil {
		product.FuelCapacity = req.FuelCapacity
	}
	if req.OperationalHours != nil {
		product.OperationalHours = req.OperationalHours
	}
	if req.WarrantyPeriod != nil {
		product.WarrantyPeriod = req.WarrantyPeriod
	}
	if req.Status != nil {
		product.Status = *req.Status
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}

	tx := db.Begin()
	if err := tx.Save(&product).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error updating heavy product: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Update Heavy Product Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Update Heavy Product Successful",
		fmt.Sprintf("Heavy product %s (%s %s) updated successfully.",
			product.ProductID, product.Brand, product.Model))

	RespondSuccess(c, gin.H{
		"message": "Heavy product updated successfully.",
		"product": product,
	})
}

// DELETE /delete-heavy-product (gated)
func DeleteHeavyProduct(c *gin.Context) {
	productID := c.Query("product_id")
	if productID == "" {
		RespondError(c, "Product ID must be provided.", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var product models.HeavyProduct
	if err := db.Where("product_id = ?", productID).First(&product).Error; err != nil {
		models.QueueNotification(db, "Delete Heavy Product Failed",
			fmt.Sprintf("Product not found: %s", productID))
		RespondError(c, "Product not found", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Delete(&product).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error deleting heavy product: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Delete Heavy Product Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Delete Heavy Product Successful",
		fmt.Sprintf("Deleted heavy product.\n\nProduct ID: %s\nName: %s\nBrand: %s\nModel: %s",
			product.ProductID, product.Name, product.Brand, product.Model))

	RespondSuccess(c, gin.H{
		"message":            "Heavy product successfully deleted.",
		"deleted_product_id": product.ProductID,
		"product_name":       product.Name,
	})
}
