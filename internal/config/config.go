package config

import (
	"os"
	"strings"
)

// Config holds the application configuration, loaded from the environment
type Config struct {
	// Environment
	Environment string
	Port        string
	BaseURL     string

	// Origins allowed to make credentialed cross-origin requests
	AllowedOrigins []string

	// Database
	DatabaseURL string

	// Auth
	JWTSecret       string
	CookieDomain    string
	BootstrapSecret string

	// OAuth providers
	GoogleClientID     string
	GoogleClientSecret string
	GitHubClientID     string
	GitHubClientSecret string

	// Email (AWS SES)
	AWSRegion string
	EmailFrom string

	// Observability
	SentryDSN string
}

func Load() *Config {
	return &Config{
		Environment:        getEnv("ENVIRONMENT", "development"),
		Port:               getEnv("PORT", "8080"),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		AllowedOrigins:     splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),
		DatabaseURL:        getEnv("DATABASE_URL", "postgres://localhost:5432/etude?sslmode=disable"),
		JWTSecret:          getEnv("JWT_SECRET", "dev-secret-change-me"),
		CookieDomain:       getEnv("COOKIE_DOMAIN", ""),
		BootstrapSecret:    getEnv("BOOTSTRAP_SECRET", ""),
		GoogleClientID:     getEnv("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: getEnv("GOOGLE_CLIENT_SECRET", ""),
		GitHubClientID:     getEnv("GITHUB_CLIENT_ID", ""),
		GitHubClientSecret: getEnv("GITHUB_CLIENT_SECRET", ""),
		AWSRegion:          getEnv("AWS_REGION", "us-east-1"),
		EmailFrom:          getEnv("EMAIL_FROM", "noreply@etude.app"),
		SentryDSN:          getEnv("SENTRY_DSN", ""),
	}
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// IsProduction returns true when running in the production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
