package db

import (
	"log"
	"os"
	"path/filepath"

	"machcrm/config"
	"machcrm/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/postgres"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
)

var conf config.Configuration

func SetConfigurations(configuration config.Configuration) {
	conf = configuration
}

// Connect opens the database connection (sqlite3 by default) and runs the
// automigrate pass. Set AUTOMIGRATE=0 to skip migration on startup.
func Connect() (*gorm.DB, error) {
	database := conf.Database
	if database == "" {
		database = "sqlite3"
	}

	var (
		db  *gorm.DB
		err error
	)

	if database == "postgres" || database == "postgresql" {
		log.Println("Connecting to postgresql...")
		path := "host=" + conf.DbHost + " port=" + conf.DbPort
		path += " user=" + conf.DbUser + " dbname=" + conf.DbName
		path += " password=" + conf.DbPass
		db, err = gorm.Open("postgres", path)
	} else {
		log.Println("Connecting to sqlite3...")
		dir := filepath.Dir("db/database.db")
		db, err = gorm.Open("sqlite3", dir+"/database.db")
	}

	if err != nil {
		log.Println("Got error when connect database, the error is: " + err.Error())
		return nil, err
	}

	if getenv("AUTOMIGRATE", "1") == "1" {
		Migrate(db)
	}

	return db, nil
}

// Migrate creates or updates every table the API serves.
func Migrate(db *gorm.DB) {
	db.AutoMigrate(
		&models.OTPStore{},
		&models.Account{},
		&models.Dealer{},
		&models.Employee{},
		&models.HeavyProduct{},
		&models.Opportunity{},
		&models.Customer{},
		&models.Notification{},
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
