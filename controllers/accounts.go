package controllers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	dbpkg "machcrm/db"
	"machcrm/models"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
)

// POST /add-account (gated)
func AddAccount(c *gin.Context) {
	var account models.Account
	if err := c.Bind(&account); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if account.AccountID == "" || account.AccountName == "" {
		msg := "Invalid input data. 'account_id' and 'account_name' are required."
		log.Print(msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var existing models.Account
	if err := db.Where("account_id = ?", account.AccountID).First(&existing).Error; err == nil {
		RespondError(c, fmt.Sprintf("Account already exists: %s", account.AccountID), http.StatusConflict)
		return
	}

	tx := db.Begin()
	if err := tx.Create(&account).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Database error while adding account: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Add Account Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	log.Printf("add account: %s added", account.AccountID)
	models.QueueNotification(db, "Add Account Successful",
		fmt.Sprintf("Account added successfully.\nAccount ID: %s\nAccount Name: %s\nTimestamp: %s",
			account.AccountID, account.AccountName, timestamp))

	RespondCreated(c, gin.H{
		"message":      "Account added successfully",
		"account_id":   account.AccountID,
		"account_name": account.AccountName,
		"timestamp":    timestamp,
	})
}

// GET /get-all-accounts (public)
func GetAllAccounts(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var accounts []models.Account
	if err := db.Find(&accounts).Error; err != nil {
		msg := fmt.Sprintf("Error in fetching accounts: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Get Accounts Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}

	log.Printf("get accounts: fetched %d rows", len(accounts))
	details := make([]string, 0, len(accounts))
	for _, account := range accounts {
		details = append(details, fmt.Sprintf("Account ID: %s\nAccount Name: %s",
			account.AccountID, account.AccountName))
	}
	models.QueueNotification(db, "Get All Accounts Successful",
		fmt.Sprintf("Successfully retrieved total %d accounts.\n\nAccount Details:\n%s",
			len(accounts), strings.Join(details, "\n\n")))

	RespondSuccess(c, gin.H{
		"accounts":    accounts,
		"total_count": len(accounts),
	})
}

// GET /get-single-account (public)
func GetSingleAccount(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		msg := "Account ID not provided or invalid. Please provide a valid Account ID."
		log.Print(msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var account models.Account
	if err := db.Where("account_id = ?", accountID).First(&account).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			log.Printf("get account: %s not found", accountID)
			models.QueueNotification(db, "Get Single Account Failed",
				fmt.Sprintf("Account not found: %s", accountID))
			RespondError(c, "Account not found", http.StatusNotFound)
			return
		}
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Get Single Account Success",
		fmt.Sprintf("Successfully fetched single account details -\n\nAccount ID: %s,\nName: %s",
			account.AccountID, account.AccountName))

	RespondSuccess(c, gin.H{"account": account})
}

// PUT /update-account (gated)
func UpdateAccount(c *gin.Context) {
	type Request struct {
		AccountID   string `json:"account_id" form:"account_id"`
		AccountName string `json:"account_name" form:"account_name"`
	}

	var req Request
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}
	if req.AccountID == "" || req.AccountName == "" {
		msg := "Account ID and new Account Name must be provided."
		log.Print(msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var account models.Account
	if err := db.Where("account_id = ?", req.AccountID).First(&account).Error; err != nil {
		models.QueueNotification(db, "Update Account Failed",
			fmt.Sprintf("Account not found: %s", req.AccountID))
		RespondError(c, "Account not found", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Model(&account).Update("account_name", req.AccountName).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error in updating account: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Update Account Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Update Account Success",
		fmt.Sprintf("Account ID:\n%s\n\nSuccessfully updated with new name:\n%s",
			req.AccountID, req.AccountName))

	RespondSuccess(c, gin.H{
		"message":          "Account details updated successfully.",
		"account_id":       req.AccountID,
		"new_account_name": req.AccountName,
	})
}

// DELETE /delete-account (gated)
func DeleteAccount(c *gin.Context) {
	accountID := c.Query("account_id")
	if accountID == "" {
		msg := "Account ID must be provided."
		log.Print(msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var account models.Account
	if err := db.Where("account_id = ?", accountID).First(&account).Error; err != nil {
		models.QueueNotification(db, "Delete Account Failed",
			fmt.Sprintf("Account not found: %s", accountID))
		RespondError(c, "Account not found", http.StatusNotFound)
		return
	}

	tx := db.Begin()
	if err := tx.Delete(&account).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error in deleting account: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Delete Account Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	models.QueueNotification(db, "Delete Account Success",
		fmt.Sprintf("Successfully deleted account.\nAccount ID: %s\nAccount Name: %s",
			account.AccountID, account.AccountName))

	RespondSuccess(c, gin.H{
		"message":            "Account successfully deleted.",
		"deleted_account_id": account.AccountID,
		"account_name":       account.AccountName,
	})
}
