package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/consite-erp/consite-backend-go/internal/pkg/validator"
	"github.com/joho/godotenv"
)

type Config struct {
	Database   DatabaseConfig
	JWT        JWTConfig
	App        AppConfig
	SMTP       SMTPConfig
	Invitation InvitationConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret            string
	SessionExpiration string
}

// AppConfig holds application configuration
type AppConfig struct {
	Port        int
	Env         string
	LogLevel    string
	FrontendURL string
}

// SMTPConfig holds the mail relay used to dispatch invitation links
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
}

// InvitationConfig drives the tender invitation core.
type InvitationConfig struct {
	// TTL is how long a token stays valid, measured from the issuance time
	// embedded in the token itself.
	TTL time.Duration
	// Codec selects the token scheme: "legacy" or "opaque".
	Codec string
	// FreezeExpiryOnceAccepted skips the expiry re-check for invitations
	// that already left pending. The original behavior (false) recomputes
	// expiry on every validation regardless of status.
	FreezeExpiryOnceAccepted bool
}

func Load() (*Config, error) {
	// A missing .env is fine in containerized deployments; env vars win.
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "consite"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	appPort, err := strconv.Atoi(getEnv("APP_PORT", "8080"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_PORT: %w", err)
	}

	config.App = AppConfig{
		Port:        appPort,
		Env:         getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		FrontendURL: getEnv("FRONTEND_URL", "http://localhost:3000"),
	}

	// JWT configuration
	config.JWT = JWTConfig{
		Secret:            getEnv("JWT_SECRET_KEY", ""),
		SessionExpiration: getEnv("JWT_SESSION_EXPIRATION_TIME", "1h"),
	}

	// SMTP configuration
	smtpPort, err := strconv.Atoi(getEnv("SMTP_PORT", "587"))
	if err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}

	config.SMTP = SMTPConfig{
		Host:     getEnv("SMTP_HOST", ""),
		Port:     smtpPort,
		Username: getEnv("SMTP_USERNAME", ""),
		Password: getEnv("SMTP_PASSWORD", ""),
		From:     getEnv("SMTP_FROM", "no-reply@consite.local"),
		FromName: getEnv("SMTP_FROM_NAME", "ConSite"),
	}

	// Invitation configuration
	ttl, err := time.ParseDuration(getEnv("INVITATION_TTL", "720h"))
	if err != nil {
		return nil, fmt.Errorf("invalid INVITATION_TTL: %w", err)
	}

	freezeExpiry, err := strconv.ParseBool(getEnv("INVITATION_FREEZE_EXPIRY", "false"))
	if err != nil {
		return nil, fmt.Errorf("invalid INVITATION_FREEZE_EXPIRY: %w", err)
	}

	config.Invitation = InvitationConfig{
		TTL:                      ttl,
		Codec:                    getEnv("INVITATION_TOKEN_CODEC", "legacy"),
		FreezeExpiryOnceAccepted: freezeExpiry,
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}
	if c.Invitation.TTL <= 0 {
		return fmt.Errorf("INVITATION_TTL must be positive")
	}
	if !validator.IsInSlice(c.Invitation.Codec, []string{"legacy", "opaque"}) {
		return fmt.Errorf("INVITATION_TOKEN_CODEC must be 'legacy' or 'opaque'")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
