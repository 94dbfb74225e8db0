package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	Redis    RedisConfig
	Stock    StockConfig
	App      AppConfig
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds the optional cache/notification sink configuration.
// An empty Addr disables Redis entirely.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// StockConfig holds the business-supplied inventory rules. Pack sizes are
// configuration, not code: deployments have disagreed on sack weights before
// (25kg vs 50kg), so nothing in the codebase assumes one.
type StockConfig struct {
	SackWeightKg  decimal.Decimal
	PackOverrides []PackOverride
	LockWait      time.Duration
}

// PackOverride maps a product-name fragment to its sack weight in kg.
type PackOverride struct {
	NameContains string
	KgPerSack    decimal.Decimal
}

// AppConfig holds application configuration
type AppConfig struct {
	Environment string
	Port        string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		fmt.Println("No .env file found")
	}

	sackWeight, err := decimal.NewFromString(getEnv("STOCK_SACK_WEIGHT_KG", "50"))
	if err != nil || !sackWeight.IsPositive() {
		return nil, fmt.Errorf("invalid STOCK_SACK_WEIGHT_KG: %q", getEnv("STOCK_SACK_WEIGHT_KG", "50"))
	}

	overrides, err := parsePackOverrides(getEnv("STOCK_PACK_OVERRIDES", "pre-starter=25"))
	if err != nil {
		return nil, err
	}

	lockWaitMS, err := strconv.Atoi(getEnv("STOCK_LOCK_WAIT_MS", "5000"))
	if err != nil {
		return nil, fmt.Errorf("invalid STOCK_LOCK_WAIT_MS: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "lakson"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Stock: StockConfig{
			SackWeightKg:  sackWeight,
			PackOverrides: overrides,
			LockWait:      time.Duration(lockWaitMS) * time.Millisecond,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			Port:        getEnv("APP_PORT", "8080"),
		},
	}

	return config, nil
}

// parsePackOverrides parses "pre-starter=25;chick booster=25" style rules.
func parsePackOverrides(raw string) ([]PackOverride, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	var overrides []PackOverride
	for _, pair := range strings.Split(raw, ";") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		parts := strings.SplitN(pair, "=", 2)
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid STOCK_PACK_OVERRIDES entry: %q", pair)
		}
		kg, err := decimal.NewFromString(strings.TrimSpace(parts[1]))
		if err != nil || !kg.IsPositive() {
			return nil, fmt.Errorf("invalid pack weight in STOCK_PACK_OVERRIDES entry: %q", pair)
		}
		overrides = append(overrides, PackOverride{
			NameContains: strings.TrimSpace(parts[0]),
			KgPerSack:    kg,
		})
	}
	return overrides, nil
}

// GetDSN returns the database connection string
func (c *DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
