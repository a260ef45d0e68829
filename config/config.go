package config

import (
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	PORT       string
	DB_URL     string
	JWT_SECRET string

	// Payment processing is disabled entirely when either secret is missing:
	// LoadEnv aborts instead of letting the service run with unverifiable
	// webhooks.
	STRIPE_SECRET_KEY     string
	STRIPE_WEBHOOK_SECRET string

	ADMIN_EMAIL         string
	ADMIN_PASSWORD_HASH string

	SMTP_HOST     string
	SMTP_PORT     string
	SMTP_FROM     string
	SMTP_PASSWORD string
	CONTACT_EMAIL string

	CORS_ORIGIN string
)

func LoadEnv(log *zap.Logger) {
	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found. Using system environment variables.")
	}

	PORT = getEnv("PORT", "8080")
	DB_URL = mustEnv(log, "DB_URL")
	JWT_SECRET = mustEnv(log, "JWT_SECRET")

	STRIPE_SECRET_KEY = mustEnv(log, "STRIPE_SECRET_KEY")
	STRIPE_WEBHOOK_SECRET = mustEnv(log, "STRIPE_WEBHOOK_SECRET")

	ADMIN_EMAIL = mustEnv(log, "ADMIN_EMAIL")
	ADMIN_PASSWORD_HASH = mustEnv(log, "ADMIN_PASSWORD_HASH")

	SMTP_HOST = getEnv("SMTP_HOST", "")
	SMTP_PORT = getEnv("SMTP_PORT", "587")
	SMTP_FROM = getEnv("SMTP_FROM", "")
	SMTP_PASSWORD = getEnv("SMTP_PASSWORD", "")
	CONTACT_EMAIL = getEnv("CONTACT_EMAIL", "")

	CORS_ORIGIN = getEnv("CORS_ORIGIN", "http://localhost:3000")
}

func mustEnv(log *zap.Logger, key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatal("Missing required environment variable", zap.String("key", key))
	}
	return v
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
