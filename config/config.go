package config

import (
	"encoding/json"
	"log"
	"os"
)

type Configuration struct {
	ApiPort string `json:"api_port"`
	LogPath string `json:"log_path"`

	Database string `json:"database"` // "sqlite3" or "postgres"
	DbHost   string `json:"db_host"`
	DbPort   string `json:"db_port"`
	DbUser   string `json:"db_user"`
	DbName   string `json:"db_name"`
	DbPass   string `json:"db_pass"`

	Smtp struct {
		Host       string   `json:"host"`
		Port       int      `json:"port"`
		Sender     string   `json:"sender"`
		Password   string   `json:"password"`
		Recipients []string `json:"recipients"`
	} `json:"smtp"`

	Security struct {
		OtpValidMinutes   int  `json:"otp_valid_minutes"`
		EchoOtpInResponse bool `json:"echo_otp_in_response"`
	} `json:"security"`

	// Fixed conversion rates applied to the base (INR) amount.
	CurrencyRates map[string]float64 `json:"currency_rates"`
}

func Get(path string) Configuration {
	b, err := os.ReadFile(path)
	if err != nil {
		log.Fatal(err)
	}
	var c Configuration
	if err := json.Unmarshal(b, &c); err != nil {
		log.Fatal(err)
	}

	// defaults
	if c.ApiPort == "" {
		c.ApiPort = "8080"
	}
	if c.LogPath == "" {
		c.LogPath = "logs/server.log"
	}
	if c.Database == "" {
		c.Database = "sqlite3"
	}
	if c.Security.OtpValidMinutes <= 0 {
		c.Security.OtpValidMinutes = 60
	}
	if c.Smtp.Port == 0 {
		c.Smtp.Port = 587
	}
	if len(c.CurrencyRates) == 0 {
		c.CurrencyRates = DefaultCurrencyRates()
	}

	return c
}

// DefaultCurrencyRates returns the fixed book rates used when the config file
// does not override them. Amounts are kept in INR; INR itself is a passthrough.
func DefaultCurrencyRates() map[string]float64 {
	return map[string]float64{
		"USD": 10.0,
		"AUD": 15.0,
		"CAD": 13.5,
		"JPY": 1450.0,
		"EUR": 9.2,
		"GBP": 7.9,
		"CNY": 71.5,
	}
}
