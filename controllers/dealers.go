package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"

	dbpkg "machcrm/db"
	"machcrm/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

// POST /add-dealer (gated)
func AddDealer(c *gin.Context) {
	var dealer models.Dealer
	if err := c.Bind(&dealer); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if missing := dealer.MissingFields(); missing != "" {
		msg := fmt.Sprintf("Invalid input data. '%s' is required.", missing)
		log.Print(msg)
		models.QueueNotification(dbpkg.DBInstance(c), "Add Dealer Failed", msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	dealer.DealerID = uuid.New().String()

	tx := db.Begin()
	if err := tx.Create(&dealer).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error inserting dealer: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Add Dealer Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("add dealer: %s added", dealer.DealerID)
	models.QueueNotification(db, "Add Dealer Successful",
		fmt.Sprintf("Dealer added successfully.\n\nDealer ID: %s\n\nDealer Code: %s\n\nOpportunity Owner: %s",
			dealer.DealerID, dealer.DealerCode, dealer.OpportunityOwner))

	RespondCreated(c, gin.H{
		"message":           "Dealer added successfully",
		"dealer_id":         dealer.DealerID,
		"dealer_code":       dealer.DealerCode,
		"opportunity_owner": dealer.OpportunityOwner,
	})
}

// GET /get-all-dealers (public)
func GetAllDealers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var dealers []models.Dealer
	if err := db.Find(&dealers).Error; err != nil {
		msg := fmt.Sprintf("Error retrieving dealers: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Get All Dealers Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}

	if len(dealers) == 0 {
		log.Print("get dealers: no dealers found")
		RespondError(c, "No dealers found", http.StatusNotFound)
		return
	}

	models.QueueNotification(db, "Get All Dealers Successful",
		fmt.Sprintf("Dealers retrieved successfully. Count: %d", len(dealers)))

	RespondSuccess(c, gin.H{
		"message":     "Dealers retrieved successfully.",
		"total_count": len(dealers),
		"dealers":     dealers,
	})
}

func dealerQueryFilter(c *gin.Context, db *gorm.DB) (*gorm.DB, bool) {
	dealerID := c.Query("dealer_id")
	dealerCode := c.Query("dealer_code")
	opportunityOwner := c.Query("opportunity_owner")

	if dealerID == "" && dealerCode == "" && opportunityOwner == "" {
		return nil, false
	}

	query := db.Model(&models.Dealer{})
	if dealerID != "" {
		query = query.Where("dealer_id = ?", dealerID)
	}
	if dealerCode != "" {
		query = query.Where("dealer_code = ?", dealerCode)
	}
	if opportunityOwner != "" {
		query = query.Where("opportunity_owner = ?", opportunityOwner)
	}
	return query, true
}

// GET /get-particular-dealers (public)
func GetParticularDealers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	query, ok := dealerQueryFilter(c, db)
	if !ok {
		msg := "At least one of 'dealer_id', 'dealer_code', or 'opportunity_owner' must be provided."
		log.Print(msg)
		models.QueueNotification(db, "Get Dealers Failed", msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	var dealers []models.Dealer
	if err := query.Find(&dealers).Error; err != nil {
		msg := fmt.Sprintf("Error retrieving dealers: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Get Dealers Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if len(dealers) == 0 {
		msg := "No dealers found with the provided parameters."
		log.Print(msg)
		RespondError(c, msg, http.StatusNotFound)
		return
	}

	info := make([]string, 0, len(dealers))
	for _, dealer := range dealers {
		info = append(info, fmt.Sprintf("Dealer ID: %s\nDealer Code: %s\nOpportunity Owner: %s\n-------------------------",
			dealer.DealerID, dealer.DealerCode, dealer.OpportunityOwner))
	}
	models.QueueNotification(db, "Get Dealers Successful",
		fmt.Sprintf("Retrieved %d dealer(s) successfully.\n\nDealer Details:\n%s",
			len(dealers), strings.Join(info, "\n")))

	RespondSuccess(c, gin.H{
		"message": fmt.Sprintf("Retrieved total %d dealer(s) successfully.", len(dealers)),
		"dealers": dealers,
	})
}

// PUT /update-dealer (gated)
func UpdateDealer(c *gin.Context) {
	type Request struct {
		DealerID         string `json:"dealer_id" form:"dealer_id"`
		DealerCode       string `json:"dealer_code" form:"dealer_code"`
		OpportunityOwner string `json:"opportunity_owner" form:"opportunity_owner"`
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.DealerID == "" {
		msg := "Dealer ID must be provided to update a dealer."
		log.Print(msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var dealer models.Dealer
	if err := db.Where("dealer_id = ?", req.DealerID).First(&dealer).Error; err != nil {
		models.QueueNotification(db, "Update Dealer Failed",
			fmt.Sprintf("No dealer found with dealer_id: %s", req.DealerID))
		RespondError(c, "Dealer not found", http.StatusNotFound)
		return
	}

	if req.DealerCode != "" {
		dealer.DealerCode = req.DealerCode
	}
	if req.OpportunityOwner != "" {
		dealer.OpportunityOwner = req.OpportunityOwner
	}

	tx := db.Begin()
	if err := tx.Save(&dealer).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error updating dealer: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Update Dealer Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Dealer Updated Successfully",
		fmt.Sprintf("Dealer updated successfully.\n\nUpdated Dealer ID: %s\nUpdated Dealer Code: %s\nUpdated Opportunity Owner: %s",
			dealer.DealerID, dealer.DealerCode, dealer.OpportunityOwner))

	RespondSuccess(c, gin.H{
		"message": "Dealer updated successfully.",
		"dealer":  dealer,
	})
}

// DELETE /delete-single-dealer (gated)
func DeleteSingleDealer(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	query, ok := dealerQueryFilter(c, db)
	if !ok {
		msg := "At least one of 'dealer_id', 'dealer_code', or 'opportunity_owner' must be provided."
		log.Print(msg)
		models.QueueNotification(db, "Delete Dealer Failed", msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	var dealer models.Dealer
	if err := query.First(&dealer).Error; err != nil {
		msg := "Dealer not found with the given criteria."
		log.Print(msg)
		models.QueueNotification(db, "Delete Dealer Failed", msg)
		RespondError(c, msg, http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Delete(&dealer).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error deleting dealer: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Delete Dealer Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Delete Dealer Successful", "Deleted 1 dealer successfully.")
	RespondSuccess(c, gin.H{"message": "Deleted 1 dealer(s) successfully."})
}

// DELETE /delete-all-dealers (gated)
func DeleteAllDealers(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	query, ok := dealerQueryFilter(c, db)
	if !ok {
		msg := "At least one of 'dealer_id', 'dealer_code', or 'opportunity_owner' must be provided."
		log.Print(msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	var dealers []models.Dealer
	if err := query.Find(&dealers).Error; err != nil {
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}
	if len(dealers) == 0 {
		msg := "No dealers found with the given criteria."
		log.Print(msg)
		RespondError(c, msg, http.StatusNotFound)
		return
	}

	tx := db.Begin()
	for _, dealer := range dealers {
		if err := tx.Delete(&dealer).Error; err != nil {
			tx.Rollback()
			msg := fmt.Sprintf("Error deleting dealers: %v", err)
			log.Print(msg)
			models.QueueNotification(db, "Delete Dealers Failed", msg)
			RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	msg := fmt.Sprintf("Deleted %d dealer(s) successfully.", len(dealers))
	log.Print(msg)
	models.QueueNotification(db, "Delete Dealers Successful", msg)
	RespondSuccess(c, gin.H{"message": msg})
}
