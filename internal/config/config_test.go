package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any existing env vars that might interfere
	clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() with defaults failed: %v", err)
	}

	// Check defaults are applied
	if cfg.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Port)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvDevelopment)
	}
	if cfg.DataSource != SourceCSV {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, SourceCSV)
	}
	if cfg.CommemorationsPath != "./data/synaxaire.csv" {
		t.Errorf("CommemorationsPath = %q", cfg.CommemorationsPath)
	}
	if cfg.SchedulePath != "./data/church_schedule.csv" {
		t.Errorf("SchedulePath = %q", cfg.SchedulePath)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %s, want 1h", cfg.CacheTTL)
	}
	if cfg.GenerateRate != 2 || cfg.GenerateBurst != 5 {
		t.Errorf("GenerateRate/Burst = %g/%d, want 2/5", cfg.GenerateRate, cfg.GenerateBurst)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if cfg.LogFormat != "text" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "text")
	}
}

func TestLoad_FromEnv(t *testing.T) {
	clearEnv()

	// Set custom values
	os.Setenv("PORT", "3000")
	os.Setenv("ENV", "production")
	os.Setenv("DATA_SOURCE", "sqlite")
	os.Setenv("DATABASE_PATH", "/data/test.db")
	os.Setenv("API_KEY", "secret-key-123")
	os.Setenv("LOG_LEVEL", "debug")
	os.Setenv("LOG_FORMAT", "json")
	os.Setenv("CACHE_TTL", "15m")
	os.Setenv("GENERATE_RATE", "0.5")
	os.Setenv("GENERATE_BURST", "2")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != 3000 {
		t.Errorf("Port = %d, want 3000", cfg.Port)
	}
	if cfg.Env != EnvProduction {
		t.Errorf("Env = %q, want %q", cfg.Env, EnvProduction)
	}
	if cfg.DataSource != SourceSQLite {
		t.Errorf("DataSource = %q, want %q", cfg.DataSource, SourceSQLite)
	}
	if cfg.DatabasePath != "/data/test.db" {
		t.Errorf("DatabasePath = %q, want %q", cfg.DatabasePath, "/data/test.db")
	}
	if cfg.APIKey != "secret-key-123" {
		t.Errorf("APIKey = %q, want %q", cfg.APIKey, "secret-key-123")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, want %q", cfg.LogFormat, "json")
	}
	if cfg.CacheTTL != 15*time.Minute {
		t.Errorf("CacheTTL = %s, want 15m", cfg.CacheTTL)
	}
	if cfg.GenerateRate != 0.5 || cfg.GenerateBurst != 2 {
		t.Errorf("GenerateRate/Burst = %g/%d, want 0.5/2", cfg.GenerateRate, cfg.GenerateBurst)
	}
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	clearEnv()
	os.Setenv("CACHE_TTL", "soon")
	defer clearEnv()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.CacheTTL != time.Hour {
		t.Errorf("CacheTTL = %s, want default 1h", cfg.CacheTTL)
	}
}

// validConfig returns a development config that passes Validate.
func validConfig() Config {
	return Config{
		Port:               8080,
		Env:                EnvDevelopment,
		DataSource:         SourceCSV,
		CommemorationsPath: "./data/synaxaire.csv",
		SchedulePath:       "./data/church_schedule.csv",
		DatabasePath:       "./data/test.db",
		CacheTTL:           time.Hour,
		GenerateRate:       2,
		GenerateBurst:      5,
		LogLevel:           "info",
		LogFormat:          "text",
	}
}

func TestConfig_Validate(t *testing.T) {
	// Table-driven tests for validation
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
	}{
		{
			name:    "valid development config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid production config",
			modify: func(c *Config) {
				c.Env = EnvProduction
				c.APIKey = "required-in-prod"
				c.LogFormat = "json"
			},
			wantErr: false,
		},
		{
			name:    "production requires API key",
			modify:  func(c *Config) { c.Env = EnvProduction },
			wantErr: true,
		},
		{
			name:    "invalid port - too low",
			modify:  func(c *Config) { c.Port = 0 },
			wantErr: true,
		},
		{
			name:    "invalid port - too high",
			modify:  func(c *Config) { c.Port = 70000 },
			wantErr: true,
		},
		{
			name:    "invalid environment",
			modify:  func(c *Config) { c.Env = "invalid" },
			wantErr: true,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid log format",
			modify:  func(c *Config) { c.LogFormat = "xml" },
			wantErr: true,
		},
		{
			name:    "unknown data source",
			modify:  func(c *Config) { c.DataSource = "postgres" },
			wantErr: true,
		},
		{
			name:    "csv source without commemorations path",
			modify:  func(c *Config) { c.CommemorationsPath = "" },
			wantErr: true,
		},
		{
			name:    "csv source without schedule path",
			modify:  func(c *Config) { c.SchedulePath = "" },
			wantErr: true,
		},
		{
			name: "sqlite source ignores csv paths",
			modify: func(c *Config) {
				c.DataSource = SourceSQLite
				c.CommemorationsPath = ""
				c.SchedulePath = ""
			},
			wantErr: false,
		},
		{
			name: "sqlite source requires database path",
			modify: func(c *Config) {
				c.DataSource = SourceSQLite
				c.DatabasePath = ""
			},
			wantErr: true,
		},
		{
			name:    "zero cache ttl disables the cache",
			modify:  func(c *Config) { c.CacheTTL = 0 },
			wantErr: false,
		},
		{
			name:    "negative cache ttl",
			modify:  func(c *Config) { c.CacheTTL = -time.Second },
			wantErr: true,
		},
		{
			name:    "non-positive rate",
			modify:  func(c *Config) { c.GenerateRate = 0 },
			wantErr: true,
		},
		{
			name:    "zero burst",
			modify:  func(c *Config) { c.GenerateBurst = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_IsDevelopment(t *testing.T) {
	cfg := &Config{Env: EnvDevelopment}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}

	cfg.Env = EnvProduction
	if cfg.IsDevelopment() {
		t.Error("IsDevelopment() = true, want false")
	}
}

func TestConfig_IsProduction(t *testing.T) {
	cfg := &Config{Env: EnvProduction}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}

	cfg.Env = EnvDevelopment
	if cfg.IsProduction() {
		t.Error("IsProduction() = true, want false")
	}
}

// clearEnv removes all config-related environment variables
func clearEnv() {
	vars := []string{
		"PORT", "ENV", "DATA_SOURCE", "COMMEMORATIONS_PATH", "SCHEDULE_PATH",
		"DATABASE_PATH", "API_KEY", "LOG_LEVEL", "LOG_FORMAT",
		"CACHE_TTL", "GENERATE_RATE", "GENERATE_BURST",
	}
	for _, v := range vars {
		os.Unsetenv(v)
	}
}
