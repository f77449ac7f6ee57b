package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTSecret string
	SaltRound int

	AdminEmails []string

	RazorpayKeyID     string
	RazorpayKeySecret string

	LinkedInClientID     string
	LinkedInClientSecret string
	LinkedInRedirectURI  string

	FrontendURL string

	SendgridAPIKey string
	EmailSender    string
}

// Load initializes configuration from environment variables.
// JWT_SECRET is mandatory: tokens signed with a guessable default are
// forgeable, so startup aborts instead of falling back.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	cfg := &Config{
		Port:      getEnv("PORT", "5000"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		AdminEmails: splitList(os.Getenv("ADMIN_EMAILS")),

		RazorpayKeyID:     os.Getenv("RAZORPAY_KEY_ID"),
		RazorpayKeySecret: os.Getenv("RAZORPAY_KEY_SECRET"),

		LinkedInClientID:     os.Getenv("LINKEDIN_CLIENT_ID"),
		LinkedInClientSecret: os.Getenv("LINKEDIN_CLIENT_SECRET"),
		LinkedInRedirectURI:  getEnv("LINKEDIN_REDIRECT_URI", "http://localhost:3000/linkedin-callback"),

		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),

		SendgridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		EmailSender:    getEnv("EMAIL_SENDER", "no-reply@vibecoding.local"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required and has no default")
	}

	if cfg.RazorpayKeyID == "" || cfg.RazorpayKeySecret == "" {
		log.Println("Warning: Razorpay credentials missing. Payment routes will be unavailable.")
	}
	if cfg.LinkedInClientID == "" || cfg.LinkedInClientSecret == "" {
		log.Println("Warning: LinkedIn credentials missing. LinkedIn login will be unavailable.")
	}

	return cfg, nil
}

// IsAdminEmail reports whether the email is on the admin allow-list.
func (c *Config) IsAdminEmail(email string) bool {
	for _, admin := range c.AdminEmails {
		if strings.EqualFold(admin, email) {
			return true
		}
	}
	return false
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
