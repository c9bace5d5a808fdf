package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort   string
	DatabaseType string
	DatabasePath string
	DatabaseURL  string

	// Directory holding uploaded letter images, served under /images/letters/
	ImagesPath      string
	CustomWordsPath string
	UploadMaxSize   int64

	// Admin authentication
	AdminPasswordHash string
	JWTSecret         string
	AdminTokenTTL     time.Duration

	// Progress report email (optional, disabled when ReportEmail is empty)
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	ReportEmail  string
	ReportHour   int
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:        getEnv("PORT", "8080"),
		DatabaseType:      getEnv("DB_TYPE", "sqlite"),
		DatabasePath:      getEnv("DB_PATH", "./alphabet.db"),
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		ImagesPath:        getEnv("IMAGES_PATH", "./static/images/letters"),
		CustomWordsPath:   getEnv("CUSTOM_WORDS_PATH", "./custom-words.json"),
		UploadMaxSize:     10 * 1024 * 1024, // 10MB
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),
		JWTSecret:         getEnv("JWT_SECRET", ""),
		AdminTokenTTL:     12 * time.Hour,
		AWSRegion:         getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:      getEnv("SES_FROM_EMAIL", ""),
		SESFromName:       getEnv("SES_FROM_NAME", "Alphabet Quest"),
		ReportEmail:       getEnv("REPORT_EMAIL", ""),
		ReportHour:        getEnvInt("REPORT_HOUR", 18),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}
