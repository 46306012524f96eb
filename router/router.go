package router

import (
	"log"
	"net/http"

	"machcrm/config"
	"machcrm/controllers"
	"machcrm/middleware"

	"github.com/gin-gonic/gin"
)

// Initialize wires all routes and middlewares. Reads are public; every
// mutating route sits behind the OTP gate.
func Initialize(r *gin.Engine, cfg config.Configuration) {
	_ = cfg

	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	// OTP issuance (public)
	r.POST("/generate-otp", Logger(), controllers.GenerateOTP)

	// Public reads
	r.GET("/get-opportunities", Logger(), controllers.GetOpportunities)
	r.GET("/get-all-accounts", Logger(), controllers.GetAllAccounts)
	r.GET("/get-single-account", Logger(), controllers.GetSingleAccount)
	r.GET("/get-all-dealers", Logger(), controllers.GetAllDealers)
	r.GET("/get-particular-dealers", Logger(), controllers.GetParticularDealers)
	r.GET("/get-employees", Logger(), controllers.GetEmployees)
	r.GET("/get-heavy-products", Logger(), controllers.GetHeavyProducts)
	r.GET("/get-customers", Logger(), controllers.GetCustomers)

	// Gated mutations (valid OTP consumed per request)
	gated := r.Group("")
	gated.Use(controllers.OTPRequired())

	gated.POST("/new-customer", Logger(), controllers.CreateOpportunity)
	gated.PUT("/update_opportunity", Logger(), controllers.UpdateOpportunity)
	gated.DELETE("/delete-opportunity", Logger(), controllers.DeleteOpportunity)

	gated.POST("/add-account", Logger(), controllers.AddAccount)
	gated.PUT("/update-account", Logger(), controllers.UpdateAccount)
	gated.DELETE("/delete-account", Logger(), controllers.DeleteAccount)

	gated.POST("/add-dealer", Logger(), controllers.AddDealer)
	gated.PUT("/update-dealer", Logger(), controllers.UpdateDealer)
	gated.DELETE("/delete-single-dealer", Logger(), controllers.DeleteSingleDealer)
	gated.DELETE("/delete-all-dealers", Logger(), controllers.DeleteAllDealers)

	gated.POST("/add-employee", Logger(), controllers.AddEmployee)
	gated.PUT("/update-employee", Logger(), controllers.UpdateEmployee)
	gated.DELETE("/delete-employee", Logger(), controllers.DeleteEmployee)

	gated.POST("/add-heavy-product", Logger(), controllers.AddHeavyProduct)
	gated.PUT("/update-heavy-product", Logger(), controllers.UpdateHeavyProduct)
	gated.DELETE("/delete-heavy-product", Logger(), controllers.DeleteHeavyProduct)

	gated.POST("/add-customer", Logger(), controllers.AddCustomer)
	gated.PUT("/update-customer", Logger(), controllers.UpdateCustomer)
	gated.DELETE("/delete-customer", Logger(), controllers.DeleteCustomer)

	log.Printf("Routes initialized")
}
