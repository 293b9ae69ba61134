package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	ServerPort      string
	SessionDuration time.Duration

	// Database settings. Type selects the dialect; URL is used for
	// postgres/mysql, Path for sqlite.
	DatabaseType string
	DatabaseURL  string
	DatabasePath string

	StaticFilesPath string
	TemplatesPath   string
	MigrationsPath  string

	// Uploaded game and profile images are stored on local disk.
	UploadsPath   string
	UploadMaxSize int64

	// Secrets for CSRF tokens and password-reset tokens.
	CSRFSecret       string
	ResetTokenSecret string

	// OpenAI-compatible completion API used for jokes and hints.
	CompletionBaseURL string
	CompletionAPIKey  string
	CompletionModel   string

	// Amazon SES email settings (password reset). Empty FromEmail
	// disables email.
	AWSRegion    string
	SESFromEmail string
	SESFromName  string
	AppBaseURL   string

	// Google OAuth sign-in. Empty client ID disables the provider.
	GoogleClientID     string
	GoogleClientSecret string
}

// Load reads configuration from the environment with sensible defaults.
// A .env file in the working directory is loaded first if present.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnv("PORT", "8080"),
		SessionDuration: getDurationEnv("SESSION_DURATION", time.Hour),

		DatabaseType: getEnv("DB_TYPE", "sqlite"),
		DatabaseURL:  getEnv("DB_URL", ""),
		DatabasePath: getEnv("DB_PATH", "./scamsavvy.db"),

		StaticFilesPath: getEnv("STATIC_PATH", "./static"),
		TemplatesPath:   getEnv("TEMPLATES_PATH", "./internal/templates"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "./migrations"),

		UploadsPath:   getEnv("UPLOADS_PATH", "./static/uploads"),
		UploadMaxSize: getInt64Env("UPLOAD_MAX_SIZE", 5*1024*1024),

		CSRFSecret:       getEnv("CSRF_SECRET", "dev-csrf-secret"),
		ResetTokenSecret: getEnv("RESET_TOKEN_SECRET", "dev-reset-secret"),

		CompletionBaseURL: getEnv("COMPLETION_BASE_URL", "https://api.openai.com/v1"),
		CompletionAPIKey:  getEnv("COMPLETION_API_KEY", ""),
		CompletionModel:   getEnv("COMPLETION_MODEL", "gpt-4"),

		AWSRegion:    getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail: getEnv("SES_FROM_EMAIL", ""),
		SESFromName:  getEnv("SES_FROM_NAME", "ScamSavvy"),
		AppBaseURL:   getEnv("APP_BASE_URL", ""),

		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
	}
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getInt64Env reads an integer environment variable or returns a default value
func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseInt(value, 10, 64); err == nil {
			return parsed
		}
		log.Printf("Invalid value for %s, using default", key)
	}
	return defaultValue
}

// getDurationEnv reads a duration environment variable or returns a default value
func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
		log.Printf("Invalid value for %s, using default", key)
	}
	return defaultValue
}
