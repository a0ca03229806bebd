// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// JWTConfig provides JWT validation settings for middleware.
type JWTConfig interface {
	GetJWTAccessSecret() string
}

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
}

// SchedulerConfig provides settings for the asynq scheduler and worker.
type SchedulerConfig interface {
	GetRedisURL() string
	GetRedisTLSInsecure() bool
	GetAsynqQueueName() string
	GetAsynqConcurrency() int
}

// WebhookConfig provides settings for inbound webhook relays.
type WebhookConfig interface {
	GetWebhookSecret() string
	GetTelegramSecretToken() string
}

// EmailConfig provides settings for email sending.
type EmailConfig interface {
	GetEmailEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUsername() string
	GetSMTPPassword() string
	GetEmailFromName() string
	GetEmailFromAddress() string
}

// WhatsAppConfig provides settings for the WhatsApp sending client.
type WhatsAppConfig interface {
	GetWhatsAppAPIURL() string
	GetWhatsAppAPIToken() string
	IsWhatsAppEnabled() bool
}

// ShopeeConfig provides settings for the Shopee order sync.
type ShopeeConfig interface {
	GetShopeeBaseURL() string
	GetShopeePartnerID() string
	GetShopeePartnerKey() string
	GetShopeeShopID() string
	GetShopeeAccessToken() string
	GetShopeeSyncWindow() time.Duration
	IsShopeeEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                 string
	HTTPAddr            string
	DatabaseURL         string
	JWTAccessSecret     string
	CORSAllowAll        bool
	CORSOrigins         []string
	CORSAllowCreds      bool
	AppBaseURL          string
	RedisURL            string
	RedisTLSInsecure    bool
	AsynqQueueName      string
	AsynqConcurrency    int
	WebhookSecret       string
	TelegramSecretToken string
	EmailEnabled        bool
	SMTPHost            string
	SMTPPort            int
	SMTPUsername        string
	SMTPPassword        string
	EmailFromName       string
	EmailFromAddress    string
	WhatsAppAPIURL      string
	WhatsAppAPIToken    string
	ShopeeBaseURL       string
	ShopeePartnerID     string
	ShopeePartnerKey    string
	ShopeeShopID        string
	ShopeeAccessToken   string
	ShopeeSyncWindow    time.Duration
}

// =============================================================================
// Interface Implementations
// =============================================================================

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string { return c.DatabaseURL }

// JWTConfig implementation
func (c *Config) GetJWTAccessSecret() string { return c.JWTAccessSecret }

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }

// SchedulerConfig implementation
func (c *Config) GetRedisURL() string       { return c.RedisURL }
func (c *Config) GetRedisTLSInsecure() bool { return c.RedisTLSInsecure }
func (c *Config) GetAsynqQueueName() string { return c.AsynqQueueName }
func (c *Config) GetAsynqConcurrency() int  { return c.AsynqConcurrency }

// WebhookConfig implementation
func (c *Config) GetWebhookSecret() string       { return c.WebhookSecret }
func (c *Config) GetTelegramSecretToken() string { return c.TelegramSecretToken }

// EmailConfig implementation
func (c *Config) GetEmailEnabled() bool       { return c.EmailEnabled }
func (c *Config) GetSMTPHost() string         { return c.SMTPHost }
func (c *Config) GetSMTPPort() int            { return c.SMTPPort }
func (c *Config) GetSMTPUsername() string     { return c.SMTPUsername }
func (c *Config) GetSMTPPassword() string     { return c.SMTPPassword }
func (c *Config) GetEmailFromName() string    { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string { return c.EmailFromAddress }

// WhatsAppConfig implementation
func (c *Config) GetWhatsAppAPIURL() string   { return c.WhatsAppAPIURL }
func (c *Config) GetWhatsAppAPIToken() string { return c.WhatsAppAPIToken }
func (c *Config) IsWhatsAppEnabled() bool     { return c.WhatsAppAPIURL != "" }

// ShopeeConfig implementation
func (c *Config) GetShopeeBaseURL() string           { return c.ShopeeBaseURL }
func (c *Config) GetShopeePartnerID() string         { return c.ShopeePartnerID }
func (c *Config) GetShopeePartnerKey() string        { return c.ShopeePartnerKey }
func (c *Config) GetShopeeShopID() string            { return c.ShopeeShopID }
func (c *Config) GetShopeeAccessToken() string       { return c.ShopeeAccessToken }
func (c *Config) GetShopeeSyncWindow() time.Duration { return c.ShopeeSyncWindow }
func (c *Config) IsShopeeEnabled() bool {
	return c.ShopeePartnerID != "" && c.ShopeePartnerKey != "" && c.ShopeeShopID != "" && c.ShopeeAccessToken != ""
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	smtpHost := getEnv("SMTP_HOST", "")
	emailEnabled := strings.EqualFold(getEnv("EMAIL_ENABLED", "true"), "true")

	cfg := &Config{
		Env:                 getEnv("APP_ENV", "development"),
		HTTPAddr:            getEnv("HTTP_ADDR", ":8080"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		JWTAccessSecret:     getEnv("JWT_ACCESS_SECRET", ""),
		CORSAllowAll:        corsAllowAll,
		CORSOrigins:         corsOrigins,
		CORSAllowCreds:      strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		AppBaseURL:          getEnv("APP_BASE_URL", "http://localhost:5173"),
		RedisURL:            getEnv("REDIS_URL", ""),
		RedisTLSInsecure:    strings.EqualFold(getEnv("REDIS_TLS_INSECURE", "false"), "true"),
		AsynqQueueName:      getEnv("ASYNQ_QUEUE", "default"),
		AsynqConcurrency:    mustInt(getEnv("ASYNQ_CONCURRENCY", "10")),
		WebhookSecret:       getEnv("WEBHOOK_SECRET", ""),
		TelegramSecretToken: getEnv("TELEGRAM_SECRET_TOKEN", ""),
		EmailEnabled:        emailEnabled && smtpHost != "",
		SMTPHost:            smtpHost,
		SMTPPort:            mustInt(getEnv("SMTP_PORT", "587")),
		SMTPUsername:        getEnv("SMTP_USERNAME", ""),
		SMTPPassword:        getEnv("SMTP_PASSWORD", ""),
		EmailFromName:       getEnv("EMAIL_FROM_NAME", "ConectaLeads"),
		EmailFromAddress:    getEnv("EMAIL_FROM_ADDRESS", ""),
		WhatsAppAPIURL:      getEnv("WHATSAPP_API_URL", ""),
		WhatsAppAPIToken:    getEnv("WHATSAPP_API_TOKEN", ""),
		ShopeeBaseURL:       getEnv("SHOPEE_BASE_URL", "https://partner.shopeemobile.com"),
		ShopeePartnerID:     getEnv("SHOPEE_PARTNER_ID", ""),
		ShopeePartnerKey:    getEnv("SHOPEE_PARTNER_KEY", ""),
		ShopeeShopID:        getEnv("SHOPEE_SHOP_ID", ""),
		ShopeeAccessToken:   getEnv("SHOPEE_ACCESS_TOKEN", ""),
		ShopeeSyncWindow:    mustDuration(getEnv("SHOPEE_SYNC_WINDOW", "168h")),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.JWTAccessSecret == "" {
		return nil, fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.EmailEnabled && cfg.EmailFromAddress == "" {
		return nil, fmt.Errorf("EMAIL_FROM_ADDRESS is required when email is enabled")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
