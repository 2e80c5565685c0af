package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds the application's configuration. It is loaded once in main and
// passed to each collaborator at construction time.
type Config struct {
	Port                    string
	AllowedOrigin           string
	FirebaseCredentialsFile string
	FirebaseDatabaseURL     string
	TwilioAccountSID        string
	TwilioAuthToken         string
	TwilioPhoneNumber       string
	MaxAllowableBinWeight   float64 // lbs
}

const defaultMaxBinWeight = 20 // lbs

// Load reads the configuration from environment variables, falling back to a
// .env file when present.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, using environment variables from system")
	}

	cfg := Config{
		Port:                    os.Getenv("PORT"),
		AllowedOrigin:           os.Getenv("ALLOWED_ORIGIN"),
		FirebaseCredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
		FirebaseDatabaseURL:     os.Getenv("FIREBASE_DB_URL"),
		TwilioAccountSID:        os.Getenv("TWILIO_ACCOUNT_SID"),
		TwilioAuthToken:         os.Getenv("TWILIO_AUTH_TOKEN"),
		TwilioPhoneNumber:       os.Getenv("TWILIO_PHONE_NUMBER"),
		MaxAllowableBinWeight:   defaultMaxBinWeight,
	}

	if cfg.Port == "" {
		cfg.Port = "3001"
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "http://localhost:3000"
	}
	if cfg.FirebaseCredentialsFile == "" {
		cfg.FirebaseCredentialsFile = "service_account.json"
	}

	if raw := os.Getenv("MAX_ALLOWABLE_BIN_WEIGHT"); raw != "" {
		weight, err := strconv.ParseFloat(raw, 64)
		if err != nil || weight <= 0 {
			log.Printf("⚠️  Invalid MAX_ALLOWABLE_BIN_WEIGHT %q, using default %d lbs", raw, defaultMaxBinWeight)
		} else {
			cfg.MaxAllowableBinWeight = weight
		}
	}

	return cfg
}

// SMSConfigured reports whether all Twilio credentials are present.
func (c Config) SMSConfigured() bool {
	return c.TwilioAccountSID != "" && c.TwilioAuthToken != "" && c.TwilioPhoneNumber != ""
}
