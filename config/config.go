package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	AppName   string
	Port      string
	JWTKey    string
	SaltRound int

	// ServiceRoleKey guards the trusted service endpoints (certificate
	// issuance, exports). Callers present it in the X-Service-Key header.
	ServiceRoleKey string

	SendgridKey string
	EmailSender string

	RedisAddr     string
	RedisPassword string

	// RevalidateURL is the front end's revalidation webhook. Empty disables it.
	RevalidateURL string
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		AppName:   getEnv("APP_NAME", "Waypoint LMS"),
		Port:      getEnv("PORT", "3000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		ServiceRoleKey: getEnv("SERVICE_ROLE_KEY", ""),

		SendgridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "noreply@waypoint.edu"),

		RedisAddr:     getEnv("REDIS_ADDR", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		RevalidateURL: getEnv("REVALIDATE_URL", ""),
	}

	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: JWT_SECRET_KEY is using the default value. Set it in production.")
	}
}

// BackendConfigured reports whether the database connection variables are present.
func BackendConfigured() bool {
	return os.Getenv("DB_HOST") != "" && os.Getenv("DB_NAME") != ""
}

// HasServiceKey reports whether the trusted service key is configured.
func HasServiceKey() bool {
	return AppConfig != nil && AppConfig.ServiceRoleKey != ""
}

// getEnv fetches an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvInt fetches an environment variable as an integer or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
