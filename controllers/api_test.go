package controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"machcrm/config"
	"machcrm/controllers"
	dbpkg "machcrm/db"
	"machcrm/models"
	"machcrm/router"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

func newTestServer(t *testing.T) (*gorm.DB, *gin.Engine) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	gdb.DB().SetMaxOpenConns(1)
	dbpkg.Migrate(gdb)
	t.Cleanup(func() { gdb.Close() })

	var cfg config.Configuration
	cfg.Security.OtpValidMinutes = 60
	cfg.Security.EchoOtpInResponse = true
	cfg.CurrencyRates = config.DefaultCurrencyRates()
	controllers.SetConfigurations(cfg)

	engine := gin.New()
	engine.Use(dbpkg.SetDBtoContext(gdb))
	router.Initialize(engine, cfg)
	return gdb, engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body map[string]any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		reader = bytes.NewReader(b)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	return out
}

// generateOTP issues a code through the public endpoint. Echo is enabled in
// the test config so the code comes back in the response.
func generateOTP(t *testing.T, engine *gin.Engine, email string) string {
	t.Helper()
	rec := doJSON(t, engine, http.MethodPost, "/generate-otp", map[string]any{"email": email})
	if rec.Code != http.StatusOK {
		t.Fatalf("generate-otp: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	otp, _ := decode(t, rec)["otp"].(string)
	if otp == "" {
		t.Fatal("generate-otp: no code echoed")
	}
	return otp
}

func seedEmployee(t *testing.T, gdb *gorm.DB) models.Employee {
	t.Helper()
	hired := time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)
	employee := models.Employee{
		EmployeeID: "emp-1",
		FirstName:  "Asha",
		LastName:   "Rao",
		Email:      "asha.rao@example.com",
		EmpNum:     "E100",
		Phone:      "+91-90000-00001",
		HireDate:   &hired,
		Position:   "Sales Engineer",
		Department: "Sales",
	}
	if err := gdb.Create(&employee).Error; err != nil {
		t.Fatalf("seed employee: %v", err)
	}
	return employee
}

func seedProduct(t *testing.T, gdb *gorm.DB, employee models.Employee) models.HeavyProduct {
	t.Helper()
	price := 2500000.0
	product := models.HeavyProduct{
		ProductID:    "prod-1",
		Name:         "Crawler Excavator X1",
		Type:         "Excavator",
		Brand:        "TerraWorks",
		Model:        "X1",
		Price:        &price,
		Status:       models.PRODUCT_STATUS_AVAILABLE,
		EmployeeID:   employee.EmployeeID,
		EmployeeName: employee.FullName(),
		EmployeeNum:  employee.EmpNum,
	}
	if err := gdb.Create(&product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}
	return product
}

func TestGenerateOTPValidation(t *testing.T) {
	_, engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodPost, "/generate-otp", map[string]any{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing email: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/generate-otp", map[string]any{"email": "not-an-email"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad email: status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, engine, http.MethodPost, "/generate-otp", map[string]any{"email": "ops@example.com"})
	if rec.Code != http.StatusOK {
		t.Fatalf("valid email: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if otp, _ := decode(t, rec)["otp"].(string); len(otp) != 6 {
		t.Errorf("echoed otp = %q, want 6 digits", otp)
	}
}

func TestOTPGateDenials(t *testing.T) {
	gdb, engine := newTestServer(t)

	// No credentials at all.
	rec := doJSON(t, engine, http.MethodPost, "/add-account", map[string]any{
		"account_id": "A1", "account_name": "Acme",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("no creds: status = %d, want 400", rec.Code)
	}

	// Email that never generated a code.
	rec = doJSON(t, engine, http.MethodPost, "/add-account", map[string]any{
		"email": "ghost@example.com", "otp": "123456",
		"account_id": "A1", "account_name": "Acme",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown email: status = %d, want 404", rec.Code)
	}

	// Wrong code.
	generateOTP(t, engine, "ops@example.com")
	rec = doJSON(t, engine, http.MethodPost, "/add-account", map[string]any{
		"email": "ops@example.com", "otp": "000000",
		"account_id": "A1", "account_name": "Acme",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("wrong code: status = %d, want 400", rec.Code)
	}

	// Expired code, forced by backdating the stored row.
	stale := models.OTPStore{
		Email:     "late@example.com",
		OTP:       "654321",
		Timestamp: time.Now().Add(-2 * time.Hour),
	}
	if err := gdb.Create(&stale).Error; err != nil {
		t.Fatalf("seed stale otp: %v", err)
	}
	rec = doJSON(t, engine, http.MethodPost, "/add-account", map[string]any{
		"email": "late@example.com", "otp": "654321",
		"account_id": "A1", "account_name": "Acme",
	})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expired code: status = %d, want 400", rec.Code)
	}
}

func TestCreateOpportunityEndToEnd(t *testing.T) {
	gdb, engine := newTestServer(t)
	employee := seedEmployee(t, gdb)
	product := seedProduct(t, gdb, employee)

	otp := generateOTP(t, engine, "seller@example.com")
	rec := doJSON(t, engine, http.MethodPost, "/new-customer", map[string]any{
		"email": "seller@example.com", "otp": otp,
		"opportunity_name": "Quarry expansion",
		"account_name":     "Acme Mining",
		"amount":           1000,
		"probability":      50,
		"employee_id":      employee.EmployeeID,
		"product_id":       product.ProductID,
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("create: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	details, _ := decode(t, rec)["customer_details"].(map[string]any)
	if details == nil {
		t.Fatal("create: no customer_details in response")
	}
	if details["stage"] != "Needs Analysis" {
		t.Errorf("stage = %v, want Needs Analysis", details["stage"])
	}
	if usd, _ := details["usd"].(float64); usd != 10000.00 {
		t.Errorf("usd = %v, want 10000.00", details["usd"])
	}
	if details["product_name"] != product.Name {
		t.Errorf("product snapshot name = %v, want %q", details["product_name"], product.Name)
	}

	// Account was created on demand.
	var account models.Account
	if err := gdb.Where("account_name = ?", "Acme Mining").First(&account).Error; err != nil {
		t.Errorf("account not created on demand: %v", err)
	}

	// The code was consumed by the request above.
	rec = doJSON(t, engine, http.MethodPost, "/new-customer", map[string]any{
		"email": "seller@example.com", "otp": otp,
		"account_name": "Acme Mining",
		"employee_id":  employee.EmployeeID,
		"product_id":   product.ProductID,
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("otp reuse: status = %d, want 404", rec.Code)
	}
}

func TestCreateOpportunityMissingProductWritesNothing(t *testing.T) {
	gdb, engine := newTestServer(t)
	employee := seedEmployee(t, gdb)

	otp := generateOTP(t, engine, "seller@example.com")
	rec := doJSON(t, engine, http.MethodPost, "/new-customer", map[string]any{
		"email": "seller@example.com", "otp": otp,
		"account_name": "Acme Mining",
		"amount":       1000,
		"probability":  50,
		"employee_id":  employee.EmployeeID,
		"product_id":   "no-such-product",
	})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}

	var count int
	gdb.Model(&models.Opportunity{}).Count(&count)
	if count != 0 {
		t.Errorf("opportunity rows = %d, want 0", count)
	}
}

func TestCreateOpportunityUndefinedProbability(t *testing.T) {
	gdb, engine := newTestServer(t)
	employee := seedEmployee(t, gdb)
	product := seedProduct(t, gdb, employee)

	otp := generateOTP(t, engine, "seller@example.com")
	rec := doJSON(t, engine, http.MethodPost, "/new-customer", map[string]any{
		"email": "seller@example.com", "otp": otp,
		"account_name": "Acme Mining",
		"probability":  97,
		"employee_id":  employee.EmployeeID,
		"product_id":   product.ProductID,
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("probability 97: status = %d, want 400", rec.Code)
	}
}

func seedOpportunity(t *testing.T, gdb *gorm.DB) models.Opportunity {
	t.Helper()
	amount := 1000.0
	opportunity := models.Opportunity{
		OpportunityID:   "opp-1",
		OpportunityName: "Quarry expansion",
		AccountName:     "Acme Mining",
		Amount:          &amount,
		Stage:           "Needs Analysis",
		CreatedDate:     time.Now(),
		EmployeeID:      "emp-1",
		ProductID:       "prod-1",
		ProductName:     "Crawler Excavator X1",
	}
	opportunity.ApplyConversions(models.ConvertCurrencies(amount, config.DefaultCurrencyRates()))
	if err := gdb.Create(&opportunity).Error; err != nil {
		t.Fatalf("seed opportunity: %v", err)
	}
	return opportunity
}

func TestUpdateOpportunityPartial(t *testing.T) {
	gdb, engine := newTestServer(t)
	seedOpportunity(t, gdb)

	otp := generateOTP(t, engine, "seller@example.com")
	rec := doJSON(t, engine, http.MethodPut, "/update_opportunity", map[string]any{
		"email": "seller@example.com", "otp": otp,
		"opportunity_id":   "opp-1",
		"opportunity_name": "Quarry expansion phase two",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var row models.Opportunity
	if err := gdb.Where("opportunity_id = ?", "opp-1").First(&row).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if row.OpportunityName != "Quarry expansion phase two" {
		t.Errorf("name = %q, not updated", row.OpportunityName)
	}
	// Untouched fields survive the partial update.
	if row.AccountName != "Acme Mining" {
		t.Errorf("account_name = %q, clobbered", row.AccountName)
	}
	if row.USD == nil || *row.USD != 10000.00 {
		t.Errorf("usd = %v, want 10000.00 untouched", row.USD)
	}
}

func TestUpdateOpportunityDerivedCurrenciesWin(t *testing.T) {
	gdb, engine := newTestServer(t)
	seedOpportunity(t, gdb)

	otp := generateOTP(t, engine, "seller@example.com")
	rec := doJSON(t, engine, http.MethodPut, "/update_opportunity", map[string]any{
		"email": "seller@example.com", "otp": otp,
		"opportunity_id": "opp-1",
		"amount":         2000,
		"usd":            1.23,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("update: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var row models.Opportunity
	if err := gdb.Where("opportunity_id = ?", "opp-1").First(&row).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	// Amount present: all seven columns are recomputed and the client's usd
	// value is ignored.
	if row.USD == nil || *row.USD != 20000.00 {
		t.Errorf("usd = %v, want derived 20000.00", row.USD)
	}
	if row.JPY == nil || *row.JPY != 2900000.00 {
		t.Errorf("jpy = %v, want derived 2900000.00", row.JPY)
	}
}

func TestUpdateOpportunityNotFound(t *testing.T) {
	_, engine := newTestServer(t)

	otp := generateOTP(t, engine, "seller@example.com")
	rec := doJSON(t, engine, http.MethodPut, "/update_opportunity", map[string]any{
		"email": "seller@example.com", "otp": otp,
		"opportunity_id": "missing",
	})
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestDeleteOpportunityRequiresCriterion(t *testing.T) {
	gdb, engine := newTestServer(t)
	seedOpportunity(t, gdb)

	otp := generateOTP(t, engine, "seller@example.com")
	rec := doJSON(t, engine, http.MethodDelete,
		"/delete-opportunity?email=seller@example.com&otp="+otp, nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("no criterion: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// The row is still there.
	var count int
	gdb.Model(&models.Opportunity{}).Count(&count)
	if count != 1 {
		t.Errorf("rows = %d, want 1", count)
	}

	otp = generateOTP(t, engine, "seller@example.com")
	rec = doJSON(t, engine, http.MethodDelete,
		"/delete-opportunity?account_name=Acme+Mining&email=seller@example.com&otp="+otp, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("delete: status = %d, body = %s", rec.Code, rec.Body.String())
	}
	out := decode(t, rec)
	manifest, _ := out["details"].([]any)
	if len(manifest) != 1 {
		t.Fatalf("manifest entries = %d, want 1", len(manifest))
	}

	gdb.Model(&models.Opportunity{}).Count(&count)
	if count != 0 {
		t.Errorf("rows after delete = %d, want 0", count)
	}
}

func TestAddAccountConflict(t *testing.T) {
	_, engine := newTestServer(t)

	otp := generateOTP(t, engine, "ops@example.com")
	rec := doJSON(t, engine, http.MethodPost, "/add-account", map[string]any{
		"email": "ops@example.com", "otp": otp,
		"account_id": "A1", "account_name": "Acme",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("first add: status = %d, body = %s", rec.Code, rec.Body.String())
	}

	otp = generateOTP(t, engine, "ops@example.com")
	rec = doJSON(t, engine, http.MethodPost, "/add-account", map[string]any{
		"email": "ops@example.com", "otp": otp,
		"account_id": "A1", "account_name": "Acme Again",
	})
	if rec.Code != http.StatusConflict {
		t.Errorf("duplicate add: status = %d, want 409", rec.Code)
	}
}

func TestReadsAreUngated(t *testing.T) {
	_, engine := newTestServer(t)

	for _, path := range []string{
		"/get-opportunities",
		"/get-all-accounts",
		"/get-employees",
		"/get-heavy-products",
		"/get-customers",
	} {
		rec := doJSON(t, engine, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s: status = %d, want 200 without credentials", path, rec.Code)
		}
	}
}
