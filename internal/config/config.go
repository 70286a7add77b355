// Package config handles application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Fields are populated from environment variables.
type Config struct {
	// Server settings
	Port int    // HTTP port to listen on
	Env  string // development, staging, production

	// Lookup tables
	DataSource         string // csv or sqlite
	CommemorationsPath string // Synaxarium CSV
	SchedulePath       string // weekly schedule CSV
	DatabasePath       string // Path to SQLite file

	// Generation
	CacheTTL      time.Duration // how long rendered documents are reused, 0 disables
	GenerateRate  float64       // generation requests per second per client
	GenerateBurst int

	// Authentication
	APIKey string // API key for authenticated endpoints

	// Logging
	LogLevel  string // debug, info, warn, error
	LogFormat string // json, text
}

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// Lookup table sources
const (
	SourceCSV    = "csv"
	SourceSQLite = "sqlite"
)

// Load reads configuration from environment variables.
// In development, it first loads from .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	// This is a no-op in production where env vars are set directly
	_ = godotenv.Load()

	cfg := &Config{}

	// Server settings
	cfg.Port = getEnvInt("PORT", 8080)
	cfg.Env = getEnv("ENV", EnvDevelopment)

	// Lookup tables
	cfg.DataSource = getEnv("DATA_SOURCE", SourceCSV)
	cfg.CommemorationsPath = getEnv("COMMEMORATIONS_PATH", "./data/synaxaire.csv")
	cfg.SchedulePath = getEnv("SCHEDULE_PATH", "./data/church_schedule.csv")
	cfg.DatabasePath = getEnv("DATABASE_PATH", "./data/synaxaire.db")

	// Generation
	cfg.CacheTTL = getEnvDuration("CACHE_TTL", time.Hour)
	cfg.GenerateRate = getEnvFloat("GENERATE_RATE", 2)
	cfg.GenerateBurst = getEnvInt("GENERATE_BURST", 5)

	// Authentication
	cfg.APIKey = getEnv("API_KEY", "")

	// Logging
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")
	cfg.LogFormat = getEnv("LOG_FORMAT", "text")

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration is present and valid.
func (c *Config) Validate() error {
	var errs []error

	// Validate port range
	if c.Port < 1 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port))
	}

	// Validate environment
	switch c.Env {
	case EnvDevelopment, EnvStaging, EnvProduction:
		// Valid
	default:
		errs = append(errs, fmt.Errorf("ENV must be one of: development, staging, production; got %q", c.Env))
	}

	// Validate table source and the paths it needs
	switch c.DataSource {
	case SourceCSV:
		if c.CommemorationsPath == "" {
			errs = append(errs, errors.New("COMMEMORATIONS_PATH is required when DATA_SOURCE=csv"))
		}
		if c.SchedulePath == "" {
			errs = append(errs, errors.New("SCHEDULE_PATH is required when DATA_SOURCE=csv"))
		}
	case SourceSQLite:
		if c.DatabasePath == "" {
			errs = append(errs, errors.New("DATABASE_PATH is required when DATA_SOURCE=sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("DATA_SOURCE must be one of: csv, sqlite; got %q", c.DataSource))
	}

	if c.CacheTTL < 0 {
		errs = append(errs, fmt.Errorf("CACHE_TTL must not be negative, got %s", c.CacheTTL))
	}
	if c.GenerateRate <= 0 {
		errs = append(errs, fmt.Errorf("GENERATE_RATE must be positive, got %g", c.GenerateRate))
	}
	if c.GenerateBurst < 1 {
		errs = append(errs, fmt.Errorf("GENERATE_BURST must be at least 1, got %d", c.GenerateBurst))
	}

	// API key is required in production
	if c.IsProduction() && c.APIKey == "" {
		errs = append(errs, errors.New("API_KEY is required in production"))
	}

	// Validate log level
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", c.LogLevel))
	}

	// Validate log format
	switch c.LogFormat {
	case "json", "text":
		// Valid
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT must be one of: json, text; got %q", c.LogFormat))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == EnvDevelopment
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}

// getEnv reads an environment variable with a default fallback.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt reads an environment variable as an integer with a default fallback.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// getEnvFloat reads an environment variable as a float with a default fallback.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvDuration reads an environment variable as a time.Duration ("30m", "1h")
// with a default fallback.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
