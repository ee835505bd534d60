package config

import (
	"os"
	"strconv"

	"ecostat/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Analysis AnalysisConfig
	Export   ExportConfig
}

// DatabaseConfig holds database connection settings.
// Persistence is optional: an empty URL runs the toolkit in-memory only.
type DatabaseConfig struct {
	URL     string
	Enabled bool
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port    string
	GinMode string
}

// AnalysisConfig holds defaults for the statistical procedures
type AnalysisConfig struct {
	BootstrapTrials int     // Resamples per bootstrap estimate
	Confidence      float64 // Confidence level for all intervals
	Seed            int64   // Base seed; negative means non-deterministic
	Workers         int     // Parallel workers for resampling
}

// ExportConfig holds file export settings
type ExportConfig struct {
	Dir string // Directory for CSV/XLSX output
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	config := &Config{
		Database: loadDatabaseConfig(),
		Server:   loadServerConfig(),
		Analysis: loadAnalysisConfig(),
		Export:   loadExportConfig(),
	}

	if err := validateConfig(config); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}

	return config, nil
}

func loadDatabaseConfig() DatabaseConfig {
	url := os.Getenv("DATABASE_URL")
	return DatabaseConfig{
		URL:     url,
		Enabled: url != "",
	}
}

func loadServerConfig() ServerConfig {
	return ServerConfig{
		Port:    getEnvOrDefault("PORT", "8080"),
		GinMode: getEnvOrDefault("GIN_MODE", "release"),
	}
}

func loadAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		BootstrapTrials: getEnvIntOrDefault("BOOTSTRAP_TRIALS", 1000),
		Confidence:      getEnvFloatOrDefault("CONFIDENCE_LEVEL", 0.95),
		Seed:            int64(getEnvIntOrDefault("ANALYSIS_SEED", 42)),
		Workers:         getEnvIntOrDefault("BOOTSTRAP_WORKERS", 1),
	}
}

func loadExportConfig() ExportConfig {
	return ExportConfig{
		Dir: getEnvOrDefault("EXPORT_DIR", "./exports"),
	}
}

func validateConfig(c *Config) error {
	if c.Analysis.BootstrapTrials < 1 {
		return errors.ConfigInvalid("BOOTSTRAP_TRIALS must be at least 1")
	}
	if c.Analysis.Confidence <= 0 || c.Analysis.Confidence >= 1 {
		return errors.ConfigInvalid("CONFIDENCE_LEVEL must be strictly between 0 and 1")
	}
	if c.Analysis.Workers < 1 {
		return errors.ConfigInvalid("BOOTSTRAP_WORKERS must be at least 1")
	}
	if c.Server.Port == "" {
		return errors.ConfigInvalid("PORT cannot be empty")
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}
