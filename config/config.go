package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string

	RedisAddr string
	RedisDB   int

	// Reserved primary admin account. Its role can never be changed and
	// the record can never be suspended or deleted.
	AdminEmail string

	StripeSecretKey    string
	StripeAPIBase      string
	ApplicationFee     int // processing fee in cents
	FeeCurrency        string
	SendGridKey        string
	EmailSender        string
	EmailSenderName    string
	FirebaseCredFile   string
	AllowedOrigins     string
	RoleCacheTTLSecond int
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
		Port:   getEnv("PORT", "3000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "loanlink"),
		DBPort:     getEnv("DB_PORT", "5432"),

		RedisAddr: getEnv("REDIS_ADDR", ""),
		RedisDB:   getEnvInt("REDIS_DB", 0),

		AdminEmail: getEnv("ADMIN_EMAIL", "admin@loanlink.app"),

		StripeSecretKey:    getEnv("STRIPE_SECRET_KEY", ""),
		StripeAPIBase:      getEnv("STRIPE_API_BASE", "https://api.stripe.com"),
		ApplicationFee:     getEnvInt("APPLICATION_FEE_CENTS", 1000),
		FeeCurrency:        getEnv("APPLICATION_FEE_CURRENCY", "usd"),
		SendGridKey:        getEnv("SENDGRID_API_KEY", ""),
		EmailSender:        getEnv("EMAIL_SENDER", "no-reply@loanlink.app"),
		EmailSenderName:    getEnv("EMAIL_SENDER_NAME", "LoanLink"),
		FirebaseCredFile:   getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		AllowedOrigins:     getEnv("ALLOWED_ORIGINS", "*"),
		RoleCacheTTLSecond: getEnvInt("ROLE_CACHE_TTL_SECONDS", 300),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.StripeSecretKey == "" {
		log.Println("Warning: STRIPE_SECRET_KEY not set. Payment endpoints will refuse requests.")
	}
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
