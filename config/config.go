package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port       string
	DBURL      string
	CORSOrigin string
	GinMode    string

	StripeSecretKey     string
	StripeWebhookSecret string
	SiteDomain          string
	Currency            string

	OIDCIssuerURL string
	OIDCClientID  string
	JWTSecret     string

	LogLevel  string
	LogFormat string
}

// Load reads the process environment (and .env when present) into a Config.
func Load(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found. Using system environment variables.")
	}

	cfg := &Config{
		Port:       getEnv("PORT", "3000"),
		CORSOrigin: getEnv("CORS_ORIGIN", "*"),
		GinMode:    getEnv("GIN_MODE", ""),

		StripeWebhookSecret: getEnv("STRIPE_WEBHOOK_SECRET", ""),
		SiteDomain:          strings.TrimRight(getEnv("SITE_DOMAIN", "http://localhost:5173"), "/"),
		Currency:            strings.ToLower(getEnv("PAYMENT_CURRENCY", "usd")),

		OIDCIssuerURL: getEnv("OIDC_ISSUER_URL", ""),
		OIDCClientID:  getEnv("OIDC_CLIENT_ID", ""),
		JWTSecret:     getEnv("JWT_SECRET", ""),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	var err error
	if cfg.DBURL, err = mustEnv("DB_URL"); err != nil {
		return nil, err
	}
	if cfg.StripeSecretKey, err = mustEnv("STRIPE_SECRET_KEY"); err != nil {
		return nil, err
	}

	if cfg.OIDCIssuerURL == "" && cfg.JWTSecret == "" {
		return nil, fmt.Errorf("identity not configured: set OIDC_ISSUER_URL and OIDC_CLIENT_ID, or JWT_SECRET")
	}
	if cfg.OIDCIssuerURL != "" && cfg.OIDCClientID == "" {
		return nil, fmt.Errorf("missing required environment variable: OIDC_CLIENT_ID")
	}

	return cfg, nil
}

func mustEnv(key string) (string, error) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return "", fmt.Errorf("missing required environment variable: %s", key)
	}
	return v, nil
}

func getEnv(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
