package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port         string
	DBConn       string
	LogLevel     string
	JWTSecret    string
	FrontendURL  string
	ForexURL     string
	GoogleClient string
	LLMModel     string
	LLMMaxTokens int64
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	SenderEmail  string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	// Best-effort .env load for local development
	_ = godotenv.Load()

	cfg := &Config{
		Port:         getEnv("PORT", "8000"),
		DBConn:       getEnv("DB_CONN", "host=localhost port=5432 user=finance password=finance dbname=finance sslmode=disable"),
		LogLevel:     getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:    getEnv("JWT_SECRET", "secret"),
		FrontendURL:  getEnv("FRONTEND_URL", "http://localhost:3000"),
		ForexURL:     getEnv("FOREX_URL", "https://www.floatrates.com/daily/usd.xml"),
		GoogleClient: getEnv("GOOGLE_CLIENT_ID", ""),
		LLMModel:     getEnv("LLM_MODEL", "claude-sonnet-4-20250514"),
		LLMMaxTokens: 2048,
		SMTPHost:     getEnv("SMTP_HOST", "smtp.gmail.com"),
		SMTPPort:     getEnv("SMTP_PORT", "587"),
		SMTPUsername: getEnv("SMTP_USER", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SenderEmail:  getEnv("SENDER_EMAIL", "noreply@agentic-finance.ai"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
