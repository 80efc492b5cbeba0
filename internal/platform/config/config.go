package config

import (
	"fmt"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultJWTSecret = "a-very-secret-key-should-be-longer-and-random"

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StoragePostgres = "postgres"
	StorageMemory   = "memory"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL    string
	Port           string
	IsProduction   bool
	EnableDBCheck  bool
	StorageDriver  string
	MigrationsPath string

	JWTSecret string
	JWTIssuer string

	RateLimit          string // ulule formatted rate, e.g. "100-M"
	RedisAddr          string // optional; shares rate-limit counters across instances
	CORSAllowedOrigins []string
	PosthogAPIKey      string

	// PayrollPaymentAccountCode is the disbursing account for batches that do not name one.
	PayrollPaymentAccountCode string
	// SummarySnapshot reads the financial summary inside one snapshot transaction.
	SummarySnapshot bool
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("PGSQL_URL", "")
	v.SetDefault("PORT", "8080")
	v.SetDefault("IS_PRODUCTION", false)
	v.SetDefault("ENABLE_DB_CHECK", false)
	v.SetDefault("STORAGE_DRIVER", StoragePostgres)
	v.SetDefault("MIGRATIONS_PATH", "file://migrations")
	v.SetDefault("JWT_SECRET", defaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "")
	v.SetDefault("RATE_LIMIT", "100-M")
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("POSTHOG_API_KEY", "")
	v.SetDefault("PAYROLL_PAYMENT_ACCOUNT_CODE", "")
	v.SetDefault("SUMMARY_SNAPSHOT", true)

	// Environment variables override the defaults (and whatever .env provided)
	v.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:               v.GetString("PGSQL_URL"),
		Port:                      v.GetString("PORT"),
		IsProduction:              v.GetBool("IS_PRODUCTION"),
		EnableDBCheck:             v.GetBool("ENABLE_DB_CHECK"),
		StorageDriver:             strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_DRIVER"))),
		MigrationsPath:            v.GetString("MIGRATIONS_PATH"),
		JWTSecret:                 v.GetString("JWT_SECRET"),
		JWTIssuer:                 v.GetString("JWT_ISSUER"),
		RateLimit:                 v.GetString("RATE_LIMIT"),
		RedisAddr:                 v.GetString("REDIS_ADDR"),
		CORSAllowedOrigins:        splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		PosthogAPIKey:             v.GetString("POSTHOG_API_KEY"),
		PayrollPaymentAccountCode: strings.TrimSpace(v.GetString("PAYROLL_PAYMENT_ACCOUNT_CODE")),
		SummarySnapshot:           v.GetBool("SUMMARY_SNAPSHOT"),
	}

	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	switch cfg.StorageDriver {
	case StoragePostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("PGSQL_URL is required when STORAGE_DRIVER=%s", StoragePostgres)
		}
	case StorageMemory:
		log.Println("Warning: STORAGE_DRIVER=memory, ledger data will not survive a restart.")
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	if cfg.JWTSecret == "" || cfg.JWTSecret == defaultJWTSecret {
		if cfg.IsProduction {
			return nil, fmt.Errorf("JWT_SECRET must be set in production")
		}
		cfg.JWTSecret = defaultJWTSecret // !! CHANGE IN PRODUCTION !!
		log.Println("Warning: JWT_SECRET environment variable not set. Using default insecure key.")
	}

	if cfg.PayrollPaymentAccountCode == "" {
		log.Println("Warning: PAYROLL_PAYMENT_ACCOUNT_CODE not set. Payroll batches must name their payment account.")
	}

	return cfg, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
