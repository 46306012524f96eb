package controllers

import (
	"fmt"
	"log"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	dbpkg "machcrm/db"
	"machcrm/models"
	"machcrm/tools"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
)

const closeDateLayout = "2006-01-02 15:04:05"

type opportunityCreateRequest struct {
	OpportunityName  string   `json:"opportunity_name" form:"opportunity_name"`
	AccountName      string   `json:"account_name" form:"account_name"`
	CloseDate        string   `json:"close_date" form:"close_date"`
	Amount           *float64 `json:"amount" form:"amount"`
	Probability      *int     `json:"probability" form:"probability"`
	Stage            string   `json:"stage" form:"stage"`
	Description      string   `json:"description" form:"description"`
	NextStep         string   `json:"next_step" form:"next_step"`
	DealerID         string   `json:"dealer_id" form:"dealer_id"`
	DealerCode       string   `json:"dealer_code" form:"dealer_code"`
	OpportunityOwner string   `json:"opportunity_owner" form:"opportunity_owner"`
	EmployeeID       string   `json:"employee_id" form:"employee_id"`
	ProductID        string   `json:"product_id" form:"product_id"`
}

// POST /new-customer (gated)
// Runs the full opportunity write pipeline: account resolve-or-create, dealer
// soft lookup, close-date parse, stage derivation, currency derivation,
// employee/product hard lookups with product snapshot, then one atomic insert.
func CreateOpportunity(c *gin.Context) {
	var req opportunityCreateRequest
	if err := c.Bind(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	if strings.TrimSpace(req.AccountName) == "" {
		RespondError(c, "Account name is required.", http.StatusBadRequest)
		return
	}

	opportunityID := uuid.New().String()
	createdDate := time.Now()

	// Account is created on demand and committed independently of the
	// opportunity row, matching the observed two-step behavior.
	var account models.Account
	if err := db.Where("account_name = ?", req.AccountName).First(&account).Error; err != nil {
		if !gorm.IsRecordNotFoundError(err) {
			RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
			return
		}
		account = models.Account{
			AccountID:   uuid.New().String(),
			AccountName: req.AccountName,
		}
		if err := db.Create(&account).Error; err != nil {
			RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
			return
		}
		log.Printf("create opportunity: new account added: %s", req.AccountName)
		models.QueueNotification(db, "New Account Added",
			fmt.Sprintf("New account added to the database:\nAccount Name: %s", req.AccountName))
	}

	// Dealer is a soft reference: absence is logged, never fatal.
	var dealer models.Dealer
	err := db.Where("dealer_id = ? AND dealer_code = ? AND opportunity_owner = ?",
		req.DealerID, req.DealerCode, req.OpportunityOwner).First(&dealer).Error
	if err != nil {
		log.Printf("create opportunity: dealer (%s, %s, %s) not found, proceeding",
			req.DealerID, req.DealerCode, req.OpportunityOwner)
	} else {
		log.Printf("create opportunity: dealer found: %s", dealer.DealerID)
	}

	var closeDate *time.Time
	if req.CloseDate != "" {
		parsed, err := time.Parse(closeDateLayout, req.CloseDate)
		if err != nil {
			msg := fmt.Sprintf("Invalid date format for close_date: %v", err)
			log.Print(msg)
			models.QueueNotification(db, "Customer Creation Failed", msg)
			RespondError(c, msg, http.StatusBadRequest)
			return
		}
		closeDate = &parsed
	}

	stage := models.StageUnknown
	if req.Probability != nil {
		derived, err := models.StageForProbability(*req.Probability)
		if err != nil {
			msg := fmt.Sprintf("Invalid probability value: %v", err)
			log.Print(msg)
			models.QueueNotification(db, "Customer Creation Failed", msg)
			RespondError(c, msg, http.StatusBadRequest)
			return
		}
		stage = derived
	} else if req.Stage != "" {
		stage = req.Stage
	}

	var conversions map[string]float64
	if req.Amount != nil {
		conversions = models.ConvertCurrencies(*req.Amount, conf.CurrencyRates)
	}

	if req.EmployeeID == "" {
		msg := "Employee ID is required."
		models.QueueNotification(db, "Customer Creation Failed", msg)
		RespondError(c, msg, http.StatusBadRequest)
		return
	}
	var employee models.Employee
	if err := db.Where("employee_id = ?", req.EmployeeID).First(&employee).Error; err != nil {
		msg := fmt.Sprintf("Employee with ID %s not found.", req.EmployeeID)
		log.Print(msg)
		models.QueueNotification(db, "Customer Creation Failed", msg)
		RespondError(c, msg, http.StatusNotFound)
		return
	}

	if req.ProductID == "" {
		RespondError(c, "Product ID is required.", http.StatusBadRequest)
		return
	}
	var product models.HeavyProduct
	if err := db.Where("product_id = ?", req.ProductID).First(&product).Error; err != nil {
		log.Printf("create opportunity: product %s not found", req.ProductID)
		RespondError(c, "Product not found.", http.StatusNotFound)
		return
	}

	opportunity := models.Opportunity{
		OpportunityID:   opportunityID,
		OpportunityName: req.OpportunityName,
		AccountName:     req.AccountName,
		CloseDate:       closeDate,
		Amount:          req.Amount,
		Description:     req.Description,
		DealerID:        req.DealerID,
		DealerCode:      req.DealerCode,
		Stage:           stage,
		Probability:     req.Probability,
		NextStep:        req.NextStep,
		CreatedDate:     createdDate,
		EmployeeID:      req.EmployeeID,
		// Snapshot of the product identity at creation time; later product
		// edits must not rewrite history.
		ProductID:       product.ProductID,
		ProductName:     product.Name,
		ProductBrand:    product.Brand,
		ProductModel:    product.Model,
		ProductImageURL: product.ImageURL,
	}
	if req.Amount != nil {
		opportunity.AmountInWords = strconv.FormatFloat(*req.Amount, 'f', -1, 64)
		opportunity.ApplyConversions(conversions)
	}

	tx := db.Begin()
	if err := tx.Create(&opportunity).Error; err != nil {
		tx.Rollback()
		msg := fmt.Sprintf("Error in creating customer: %v", err)
		log.Print(msg)
		models.QueueNotification(db, "Customer Creation Failed", msg)
		RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("create opportunity: created %s", opportunityID)
	models.QueueNotification(db, "Customer Creation Successful",
		opportunityCreatedBody(opportunity, employee, conversions))

	RespondCreated(c, gin.H{
		"message":          "Created successfully",
		"customer_details": opportunity,
	})
}

func opportunityCreatedBody(o models.Opportunity, employee models.Employee, conversions map[string]float64) string {
	closeDate := "None"
	if o.CloseDate != nil {
		closeDate = o.CloseDate.Format(closeDateLayout)
	}
	return fmt.Sprintf("Customer created successfully.\n\n\n"+
		"Opportunity ID: %s\n\n"+
		"Opportunity Name: %s\n\n"+
		"Account Name: %s\n\n"+
		"Close Date: %s\n\n"+
		"Amount: %s\n\n"+
		"Stage: %s\n\n"+
		"Probability: %s\n\n"+
		"Currency Conversions:\n%s\n\n"+
		"Employee ID: %s\n\n"+
		"Employee Name: %s\n\n"+
		"Employee Number: %s\n\n"+
		"Product Id: %s\n\n"+
		"Product Name: %s\n\n"+
		"Product Brand: %s\n\n"+
		"Product Model: %s\n\n"+
		"Created Date: %s",
		o.OpportunityID, o.OpportunityName, o.AccountName, closeDate,
		formatOptionalFloat(o.Amount), o.Stage, formatOptionalInt(o.Probability),
		formatConversions(conversions),
		o.EmployeeID, employee.FullName(), employee.EmpNum,
		o.ProductID, o.ProductName, o.ProductBrand, o.ProductModel,
		o.CreatedDate.Format(closeDateLayout))
}

func formatConversions(conversions map[string]float64) string {
	if len(conversions) == 0 {
		return "None"
	}
	currencies := make([]string, 0, len(conversions))
	for currency := range conversions {
		currencies = append(currencies, currency)
	}
	sort.Strings(currencies)
	lines := make([]string, 0, len(currencies))
	for _, currency := range currencies {
		lines = append(lines, fmt.Sprintf("%s: %.2f", currency, conversions[currency]))
	}
	return strings.Join(lines, "\n")
}

func formatOptionalFloat(v *float64) string {
	if v == nil {
		return "None"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

func formatOptionalInt(v *int) string {
	if v == nil {
		return "None"
	}
	return strconv.Itoa(*v)
}

// GET /get-opportunities (public)
func GetOpportunities(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	opportunityName := strings.TrimSpace(c.Query("opportunity_name"))
	accountName := strings.TrimSpace(c.Query("account_name"))
	stage := strings.TrimSpace(c.Query("stage"))

	if len(opportunityName) > 255 {
		RespondErrorDetails(c, "Bad Request",
			"Opportunity name is too long. Maximum length is 255 characters.", http.StatusBadRequest)
		return
	}
	if len(accountName) > 255 {
		RespondErrorDetails(c, "Bad Request",
			"Account name is too long. Maximum length is 255 characters.", http.StatusBadRequest)
		return
	}
	if stage != "" && !tools.ValidateStageText(stage) {
		RespondErrorDetails(c, "Bad Request",
			"Invalid stage: must be letters and spaces, at most 100 characters.", http.StatusBadRequest)
		return
	}

	probabilityMin, ok := queryInt(c, "probability_min")
	if !ok {
		return
	}
	probabilityMax, ok := queryInt(c, "probability_max")
	if !ok {
		return
	}
	if probabilityMin != nil && (*probabilityMin < 0 || *probabilityMin > 100) {
		RespondErrorDetails(c, "Bad Request",
			fmt.Sprintf("Invalid minimum probability: %d. Must be between 0 and 100", *probabilityMin),
			http.StatusBadRequest)
		return
	}
	if probabilityMax != nil && (*probabilityMax < 0 || *probabilityMax > 100) {
		RespondErrorDetails(c, "Bad Request",
			fmt.Sprintf("Invalid maximum probability: %d. Must be between 0 and 100", *probabilityMax),
			http.StatusBadRequest)
		return
	}
	if probabilityMin != nil && probabilityMax != nil && *probabilityMin > *probabilityMax {
		RespondErrorDetails(c, "Bad Request",
			"Minimum probability cannot be greater than maximum probability", http.StatusBadRequest)
		return
	}

	amountMin, ok := queryFloat(c, "amount_min")
	if !ok {
		return
	}
	amountMax, ok := queryFloat(c, "amount_max")
	if !ok {
		return
	}

	query := db.Model(&models.Opportunity{})

	if v := c.Query("opportunity_id"); v != "" {
		query = query.Where("opportunity_id = ?", v)
	}
	if opportunityName != "" {
		query = query.Where("LOWER(opportunity_name) LIKE ?", containsPattern(opportunityName))
	}
	if accountName != "" {
		query = query.Where("LOWER(account_name) LIKE ?", containsPattern(accountName))
	}
	if stage != "" {
		query = query.Where("LOWER(stage) LIKE ?", containsPattern(stage))
	}
	if probabilityMin != nil {
		query = query.Where("probability >= ?", *probabilityMin)
	}
	if probabilityMax != nil {
		query = query.Where("probability <= ?", *probabilityMax)
	}
	if v := c.Query("created_date_start"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			parsed, err = time.Parse(closeDateLayout, v)
		}
		if err != nil {
			RespondErrorDetails(c, "Bad Request", "Invalid created_date_start", http.StatusBadRequest)
			return
		}
		query = query.Where("created_date >= ?", parsed)
	}
	if v := c.Query("close_date_end"); v != "" {
		parsed, err := time.Parse(time.RFC3339, v)
		if err != nil {
			parsed, err = time.Parse(closeDateLayout, v)
		}
		if err != nil {
			RespondErrorDetails(c, "Bad Request", "Invalid close_date_end", http.StatusBadRequest)
			return
		}
		query = query.Where("close_date <= ?", parsed)
	}
	if amountMin != nil {
		query = query.Where("amount >= ?", *amountMin)
	}
	if amountMax != nil {
		query = query.Where("amount <= ?", *amountMax)
	}
	if v := strings.TrimSpace(c.Query("employee_id")); v != "" {
		query = query.Where("employee_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("product_id")); v != "" {
		query = query.Where("product_id = ?", v)
	}
	if v := strings.TrimSpace(c.Query("product_name")); v != "" {
		query = query.Where("LOWER(product_name) LIKE ?", containsPattern(v))
	}
	if v := strings.TrimSpace(c.Query("product_brand")); v != "" {
		query = query.Where("LOWER(product_brand) LIKE ?", containsPattern(v))
	}
	if v := strings.TrimSpace(c.Query("product_model")); v != "" {
		query = query.Where("LOWER(product_model) LIKE ?", containsPattern(v))
	}

	var opportunities []models.Opportunity
	if err := query.Find(&opportunities).Error; err != nil {
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	totalCount := len(opportunities)
	log.Printf("get opportunities: fetched %d rows", totalCount)
	models.QueueNotification(db, "Get Opportunities Successful",
		fmt.Sprintf("Successfully retrieved %d opportunities.", totalCount))

	RespondSuccess(c, gin.H{
		"opportunities": opportunities,
		"total_count":   totalCount,
	})
}

func containsPattern(v string) string {
	return "%" + strings.ToLower(v) + "%"
}

func queryInt(c *gin.Context, name string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		RespondErrorDetails(c, "Bad Request", fmt.Sprintf("Invalid %s: %s", name, raw), http.StatusBadRequest)
		return nil, false
	}
	return &n, true
}

func queryFloat(c *gin.Context, name string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		RespondErrorDetails(c, "Bad Request", fmt.Sprintf("Invalid %s: %s", name, raw), http.StatusBadRequest)
		return nil, false
	}
	return &f, true
}

type opportunityUpdateRequest struct {
	OpportunityID   string   `json:"opportunity_id"`
	OpportunityName *string  `json:"opportunity_name"`
	AccountName     *string  `json:"account_name"`
	CloseDate       *string  `json:"close_date"`
	Amount          *float64 `json:"amount"`
	AmountInWords   *string  `json:"amount_in_words"`
	Description     *string  `json:"description"`
	DealerID        *string  `json:"dealer_id"`
	DealerCode      *string  `json:"dealer_code"`
	Stage           *string  `json:"stage"`
	Probability     *int     `json:"probability"`
	NextStep        *string  `json:"next_step"`
	EmployeeID      *string  `json:"employee_id"`
	ProductID       *string  `json:"product_id"`
	ProductName     *string  `json:"product_name"`
	ProductBrand    *string  `json:"product_brand"`
	ProductModel    *string  `json:"product_model"`
	ProductImageURL *string  `json:"product_image_url"`
	USD             *float64 `json:"usd"`
	AUD             *float64 `json:"aud"`
	CAD             *float64 `json:"cad"`
	JPY             *float64 `json:"jpy"`
	EUR             *float64 `json:"eur"`
	GBP             *float64 `json:"gbp"`
	CNY             *float64 `json:"cny"`
}

// PUT /update_opportunity (gated)
// Partial update: only present keys overwrite columns. When amount is present
// the seven currency columns are recomputed from it and any client-supplied
// currency values in the same request are ignored (derived always wins).
func UpdateOpportunity(c *gin.Context) {
	var req opportunityUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, err.Error(), http.StatusBadRequest)
		return
	}

	if req.OpportunityID == "" {
		RespondError(c, "Opportunity ID is required", http.StatusBadRequest)
		return
	}

	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	var opportunity models.Opportunity
	if err := db.Where("opportunity_id = ?", req.OpportunityID).First(&opportunity).Error; err != nil {
		log.Printf("update opportunity: %s not found", req.OpportunityID)
		RespondError(c, "Opportunity not found", http.StatusNotFound)
		return
	}

	// Validate everything before mutating anything.
	if req.OpportunityName != nil && len(*req.OpportunityName) > 255 {
		RespondError(c, "Opportunity name is too long. Maximum length is 255 characters.", http.StatusBadRequest)
		return
	}
	if req.AccountName != nil && len(*req.AccountName) > 255 {
		RespondError(c, "Account name is too long. Maximum length is 255 characters.", http.StatusBadRequest)
		return
	}
	if req.Amount != nil && *req.Amount <= 0 {
		RespondError(c, "Amount must be a positive number.", http.StatusBadRequest)
		return
	}
	for _, v := range []*float64{req.USD, req.AUD, req.CAD, req.JPY, req.EUR, req.GBP, req.CNY} {
		if v != nil && *v <= 0 {
			RespondError(c, "Currency values must be positive numbers.", http.StatusBadRequest)
			return
		}
	}
	if req.Probability != nil && (*req.Probability < 0 || *req.Probability > 100) {
		RespondError(c, "Probability must be between 0 and 100.", http.StatusBadRequest)
		return
	}
	if req.Stage != nil && !tools.ValidateStageText(*req.Stage) {
		RespondError(c, "Invalid stage: must be letters and spaces, at most 100 characters.", http.StatusBadRequest)
		return
	}

	var closeDate *time.Time
	if req.CloseDate != nil && *req.CloseDate != "" {
		parsed, err := time.Parse(closeDateLayout, *req.CloseDate)
		if err != nil {
			RespondError(c, fmt.Sprintf("Invalid date format for close_date: %v", err), http.StatusBadRequest)
			return
		}
		closeDate = &parsed
	}

	if req.OpportunityName != nil {
		opportunity.OpportunityName = *req.OpportunityName
	}
	if req.AccountName != nil {
		opportunity.AccountName = *req.AccountName
	}
	if closeDate != nil {
		opportunity.CloseDate = closeDate
	}
	if req.AmountInWords != nil {
		opportunity.AmountInWords = *req.AmountInWords
	}
	if req.Description != nil {
		opportunity.Description = *req.Description
	}
	if req.DealerID != nil {
		opportunity.DealerID = *req.DealerID
	}
	if req.DealerCode != nil {
		opportunity.DealerCode = *req.DealerCode
	}
	if req.Stage != nil {
		opportunity.Stage = *req.Stage
	}
	if req.Probability != nil {
		opportunity.Probability = req.Probability
	}
	if req.NextStep != nil {
		opportunity.NextStep = *req.NextStep
	}
	if req.EmployeeID != nil {
		opportunity.EmployeeID = *req.EmployeeID
	}
	if req.ProductID != nil {
		opportunity.ProductID = *req.ProductID
	}
	if req.ProductName != nil {
		opportunity.ProductName = *req.ProductName
	}
	if req.ProductBrand != nil {
		opportunity.ProductBrand = *req.ProductBrand
	}
	if req.ProductModel != nil {
		opportunity.ProductModel = *req.ProductModel
	}
	if req.ProductImageURL != nil {
		opportunity.ProductImageURL = *req.ProductImageURL
	}

	if req.Amount != nil {
		opportunity.Amount = req.Amount
		opportunity.ApplyConversions(models.ConvertCurrencies(*req.Amount, conf.CurrencyRates))
	} else {
		if req.USD != nil {
			opportunity.USD = req.USD
		}
		if req.AUD != nil {
			opportunity.AUD = req.AUD
		}
		if req.CAD != nil {
			opportunity.CAD = req.CAD
		}
		if req.JPY != nil {
			opportunity.JPY = req.JPY
		}
		if req.EUR != nil {
			opportunity.EUR = req.EUR
		}
		if req.GBP != nil {
			opportunity.GBP = req.GBP
		}
		if req.CNY != nil {
			opportunity.CNY = req.CNY
		}
	}

	tx := db.Begin()
	if err := tx.Save(&opportunity).Error; err != nil {
		tx.Rollback()
		log.Printf("update opportunity: save error for %s: %v", req.OpportunityID, err)
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	updatedTime := time.Now().Format("03:04 PM, January 02, 2006")
	models.QueueNotification(db, "Opportunity Updated",
		fmt.Sprintf("Opportunity %s (%s) updated at %s.",
			opportunity.OpportunityID, opportunity.OpportunityName, updatedTime))

	RespondSuccess(c, gin.H{
		"message":             "Opportunity updated successfully",
		"updated_time":        updatedTime,
		"opportunity_details": opportunity,
	})
}

// DELETE /delete-opportunity (gated)
// Broad delete-by-filter. At least one criterion is required; matches are
// serialized into a deletion manifest before being removed in one transaction.
func DeleteOpportunity(c *gin.Context) {
	db := dbpkg.DBInstance(c)
	if db == nil {
		RespondError(c, "database not configured", http.StatusInternalServerError)
		return
	}

	filter := models.OpportunityFilter{
		OpportunityID:   c.Query("opportunity_id"),
		AccountName:     c.Query("account_name"),
		DealerID:        c.Query("dealer_id"),
		DealerCode:      c.Query("dealer_code"),
		OpportunityName: c.Query("opportunity_name"),
		Stage:           c.Query("stage"),
	}
	probability, ok := queryInt(c, "probability")
	if !ok {
		return
	}
	filter.Probability = probability

	if raw := c.Query("close_date"); raw != "" {
		parsed, err := time.Parse(closeDateLayout, raw)
		if err != nil {
			msg := "Invalid close_date format. Use 'YYYY-MM-DD HH:MM:SS'."
			models.QueueNotification(db, "Customer Deletion Failed", msg)
			RespondError(c, msg, http.StatusBadRequest)
			return
		}
		filter.CloseDate = &parsed
	}

	if filter.Empty() {
		msg := "At least one query parameter (opportunity_id, account_name, dealer_id, dealer_code, " +
			"opportunity_name, stage, probability, or close_date) is required for deletion."
		log.Print(msg)
		models.QueueNotification(db, "Customer Deletion Failed",
			"Failed to delete customer due to missing query parameters.")
		RespondError(c, msg, http.StatusBadRequest)
		return
	}

	var matches []models.Opportunity
	if err := filter.Apply(db.Model(&models.Opportunity{})).Find(&matches).Error; err != nil {
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}
	if len(matches) == 0 {
		msg := "Customer(s) not found based on provided query parameters."
		log.Print(msg)
		models.QueueNotification(db, "Customer Deletion Failed",
			"Failed to delete customer(s). No matching customer(s) found.")
		RespondError(c, msg, http.StatusNotFound)
		return
	}

	manifest := make([]gin.H, 0, len(matches))
	tx := db.Begin()
	for _, match := range matches {
		// Employee identity is resolved at deletion time for the manifest;
		// product identity comes from the row's own snapshot.
		var employeeName, employeeNum string
		var employee models.Employee
		if err := tx.Where("employee_id = ?", match.EmployeeID).First(&employee).Error; err == nil {
			employeeName = employee.FullName()
			employeeNum = employee.EmpNum
		}

		closeDate := ""
		if match.CloseDate != nil {
			closeDate = match.CloseDate.Format(closeDateLayout)
		}
		manifest = append(manifest, gin.H{
			"opportunity_id":   match.OpportunityID,
			"opportunity_name": match.OpportunityName,
			"account_name":     match.AccountName,
			"dealer_id":        match.DealerID,
			"dealer_code":      match.DealerCode,
			"amount":           match.Amount,
			"close_date":       closeDate,
			"created_date":     match.CreatedDate.Format(closeDateLayout),
			"employee_id":      match.EmployeeID,
			"employee_name":    employeeName,
			"employee_num":     employeeNum,
			"product_id":       match.ProductID,
			"product_name":     match.ProductName,
			"product_brand":    match.ProductBrand,
			"product_model":    match.ProductModel,
		})

		if err := tx.Delete(&match).Error; err != nil {
			tx.Rollback()
			msg := fmt.Sprintf("Error in deleting customer: %v", err)
			log.Print(msg)
			models.QueueNotification(db, "Customer Deletion Failed", msg)
			RespondErrorDetails(c, "Internal server error", msg, http.StatusInternalServerError)
			return
		}
	}
	if err := tx.Commit().Error; err != nil {
		tx.Rollback()
		RespondErrorDetails(c, "Internal server error", err.Error(), http.StatusInternalServerError)
		return
	}

	log.Printf("delete opportunity: removed %d rows", len(manifest))
	models.QueueNotification(db, "Customer Deletion Successful",
		fmt.Sprintf("Deleted %d opportunity record(s).", len(manifest)))

	RespondSuccess(c, gin.H{
		"message": "Deleted successfully",
		"details": manifest,
	})
}
