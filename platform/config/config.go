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

// HTTPConfig provides HTTP server settings.
type HTTPConfig interface {
	GetEnv() string
	GetHTTPAddr() string
}

// CORSConfig provides CORS settings for the router.
type CORSConfig interface {
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
}

// RedisConfig provides settings for the handoff store.
type RedisConfig interface {
	GetRedisURL() string
	GetHandoffTTL() time.Duration
}

// GeminiConfig provides settings for the design generation collaborator.
type GeminiConfig interface {
	IsGeminiEnabled() bool
	GetGeminiAPIKey() string
	GetGeminiModel() string
}

// SMTPConfig provides settings for transactional email delivery.
type SMTPConfig interface {
	IsSMTPEnabled() bool
	GetSMTPHost() string
	GetSMTPPort() int
	GetSMTPUser() string
	GetSMTPPass() string
	GetEmailFromName() string
	GetEmailFromAddress() string
	GetAdminEmail() string
}

// StorageConfig provides settings for the photo archive.
type StorageConfig interface {
	IsMinIOEnabled() bool
	GetMinIOEndpoint() string
	GetMinIOAccessKey() string
	GetMinIOSecretKey() string
	GetMinIOUseSSL() bool
	GetMinIOMaxFileSize() int64
	GetMinioBucketIntakePhotos() string
}

// PricingConfig provides the trade-in pricing policy and rates.
type PricingConfig interface {
	GetPricingPolicy() string
	GetTradeInRates() TradeInRates
}

// TradeInRates holds the per-door credit amounts in whole dollars.
type TradeInRates struct {
	FlatStandard   int
	FlatWood       int
	SingleStandard int
	SingleWood     int
	DoubleStandard int
	DoubleWood     int
}

// =============================================================================
// Config
// =============================================================================

// Config holds all application settings, loaded once at startup.
type Config struct {
	Env      string
	HTTPAddr string

	CORSAllowAll bool
	CORSOrigins  []string

	DatabaseURL string

	RedisURL   string
	HandoffTTL time.Duration

	GeminiAPIKey string
	GeminiModel  string

	SMTPHost         string
	SMTPPort         int
	SMTPUser         string
	SMTPPass         string
	EmailFromName    string
	EmailFromAddress string
	AdminEmail       string

	MinIOEndpoint           string
	MinIOAccessKey          string
	MinIOSecretKey          string
	MinIOUseSSL             bool
	MinIOMaxFileSize        int64
	MinioBucketIntakePhotos string

	PricingPolicy string
	TradeIn       TradeInRates
}

// Load reads configuration from the environment (and an optional .env file).
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:      getEnv("APP_ENV", "development"),
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),

		CORSAllowAll: corsAllowAll,
		CORSOrigins:  corsOrigins,

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisURL:   getEnv("REDIS_URL", ""),
		HandoffTTL: mustDuration(getEnv("HANDOFF_TTL", "30m")),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-2.5-flash-image-preview"),

		SMTPHost:         getEnv("SMTP_HOST", ""),
		SMTPPort:         getIntEnv("SMTP_PORT", 587),
		SMTPUser:         getEnv("SMTP_USER", ""),
		SMTPPass:         getEnv("SMTP_PASS", ""),
		EmailFromName:    getEnv("EMAIL_FROM_NAME", "Illinois Garage Door Repair"),
		EmailFromAddress: getEnv("EMAIL_FROM_ADDRESS", ""),
		AdminEmail:       getEnv("ADMIN_EMAIL", ""),

		MinIOEndpoint:           getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey:          getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey:          getEnv("MINIO_SECRET_KEY", ""),
		MinIOUseSSL:             strings.EqualFold(getEnv("MINIO_USE_SSL", "false"), "true"),
		MinIOMaxFileSize:        int64(getIntEnv("MINIO_MAX_FILE_SIZE", 10*1024*1024)),
		MinioBucketIntakePhotos: getEnv("MINIO_BUCKET_INTAKE_PHOTOS", "intake-photos"),

		PricingPolicy: strings.ToLower(getEnv("PRICING_POLICY", "split")),
		TradeIn: TradeInRates{
			FlatStandard:   getIntEnv("TRADEIN_FLAT_RATE", 100),
			FlatWood:       getIntEnv("TRADEIN_FLAT_RATE_WOOD", 50),
			SingleStandard: getIntEnv("TRADEIN_SINGLE_RATE", 120),
			SingleWood:     getIntEnv("TRADEIN_SINGLE_RATE_WOOD", 75),
			DoubleStandard: getIntEnv("TRADEIN_DOUBLE_RATE", 200),
			DoubleWood:     getIntEnv("TRADEIN_DOUBLE_RATE_WOOD", 130),
		},
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.RedisURL == "" {
		return nil, fmt.Errorf("REDIS_URL is required")
	}
	if cfg.PricingPolicy != "flat" && cfg.PricingPolicy != "split" {
		return nil, fmt.Errorf("PRICING_POLICY must be \"flat\" or \"split\", got %q", cfg.PricingPolicy)
	}
	if cfg.IsSMTPEnabled() && cfg.AdminEmail == "" {
		return nil, fmt.Errorf("ADMIN_EMAIL is required when SMTP is configured")
	}
	if cfg.HandoffTTL <= 0 {
		return nil, fmt.Errorf("HANDOFF_TTL must be a positive duration")
	}

	return cfg, nil
}

// Interface implementations.

func (c *Config) GetEnv() string        { return c.Env }
func (c *Config) GetHTTPAddr() string   { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string {
	return c.CORSOrigins
}
func (c *Config) GetDatabaseURL() string        { return c.DatabaseURL }
func (c *Config) GetRedisURL() string           { return c.RedisURL }
func (c *Config) GetHandoffTTL() time.Duration  { return c.HandoffTTL }
func (c *Config) IsGeminiEnabled() bool         { return c.GeminiAPIKey != "" }
func (c *Config) GetGeminiAPIKey() string       { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string        { return c.GeminiModel }
func (c *Config) GetSMTPHost() string           { return c.SMTPHost }
func (c *Config) GetSMTPPort() int              { return c.SMTPPort }
func (c *Config) GetSMTPUser() string           { return c.SMTPUser }
func (c *Config) GetSMTPPass() string           { return c.SMTPPass }
func (c *Config) GetEmailFromName() string      { return c.EmailFromName }
func (c *Config) GetEmailFromAddress() string   { return c.EmailFromAddress }
func (c *Config) GetAdminEmail() string         { return c.AdminEmail }
func (c *Config) GetMinIOEndpoint() string      { return c.MinIOEndpoint }
func (c *Config) GetMinIOAccessKey() string     { return c.MinIOAccessKey }
func (c *Config) GetMinIOSecretKey() string     { return c.MinIOSecretKey }
func (c *Config) GetMinIOUseSSL() bool          { return c.MinIOUseSSL }
func (c *Config) GetMinIOMaxFileSize() int64    { return c.MinIOMaxFileSize }
func (c *Config) GetPricingPolicy() string      { return c.PricingPolicy }
func (c *Config) GetTradeInRates() TradeInRates { return c.TradeIn }

func (c *Config) IsSMTPEnabled() bool {
	return c.SMTPHost != "" && c.SMTPUser != "" && c.SMTPPass != ""
}

func (c *Config) IsMinIOEnabled() bool {
	return c.MinIOEndpoint != "" && c.MinIOAccessKey != "" && c.MinIOSecretKey != ""
}

func (c *Config) GetMinioBucketIntakePhotos() string {
	return c.MinioBucketIntakePhotos
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(val))
	if err != nil {
		return fallback
	}
	return parsed
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
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
