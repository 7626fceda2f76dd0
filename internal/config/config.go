package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultDexAPIURL = "https://api.dexscreener.com/latest/dex/tokens"

type Config struct {
	// Database
	DatabaseURL string
	DBHost      string
	DBPort      int
	DBName      string
	DBUser      string
	DBPassword  string

	// Upstream DEX API
	DexAPIURL    string
	DexAPIKey    string
	DefaultChain string

	// Filtering
	LiquidityThreshold float64
	RecencyWindowDays  int

	// HTTP server
	Port            int
	CORSAllowOrigin string

	// Logging
	LogLevel string
	LogFile  string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		// Database
		DatabaseURL: envStr("DATABASE_URL", ""),
		DBHost:      envStr("DB_HOST", "localhost"),
		DBPort:      envInt("DB_PORT", 5432),
		DBName:      envStr("DB_NAME", "dex_screener"),
		DBUser:      envStr("DB_USER", ""),
		DBPassword:  envStr("DB_PASSWORD", ""),

		// Upstream
		DexAPIURL:    envStr("DEX_API_URL", DefaultDexAPIURL),
		DexAPIKey:    envStr("DEX_API_KEY", ""),
		DefaultChain: envStr("DEX_DEFAULT_CHAIN", "solana"),

		// Filtering
		LiquidityThreshold: envFloat("LIQUIDITY_THRESHOLD", 5000),
		RecencyWindowDays:  envInt("RECENCY_WINDOW_DAYS", 0),

		// Server
		Port:            envInt("PORT", 5000),
		CORSAllowOrigin: envStr("CORS_ALLOW_ORIGIN", "*"),

		// Logging
		LogLevel: envStr("LOG_LEVEL", "info"),
		LogFile:  envStr("LOG_FILE", ""),
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	var errs []string

	if c.DatabaseURL == "" && c.DBUser == "" {
		errs = append(errs, "DATABASE_URL or DB_USER is required")
	}
	if c.DexAPIURL == "" {
		errs = append(errs, "DEX_API_URL must not be empty")
	}
	if c.LiquidityThreshold < 0 {
		errs = append(errs, "LIQUIDITY_THRESHOLD must not be negative")
	}
	if c.RecencyWindowDays < 0 {
		errs = append(errs, "RECENCY_WINDOW_DAYS must not be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// DSN returns the Postgres connection string. An explicit DATABASE_URL wins
// over the discrete DB_* variables.
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// RecencyWindow returns the configured recency cutoff as a duration.
// Zero means the created_at filter is disabled.
func (c *Config) RecencyWindow() time.Duration {
	return time.Duration(c.RecencyWindowDays) * 24 * time.Hour
}
