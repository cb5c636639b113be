package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	// Server configuration
	ServerAddress string
	Environment   string

	// Storage
	DatabasePath string

	// Authentication
	JWTSecret string
	JWTIssuer string

	// Password policy
	PasswordMinLength int

	// Telemetry (secondary log sink)
	TelemetryEnabled    bool
	TelemetryEndpoint   string
	TelemetryLicenseKey string
	TelemetryQueueSize  int

	// Logging
	LogLevel string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	cfg := &Config{
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),
		Environment:   getEnv("ENVIRONMENT", "development"),

		DatabasePath: getEnv("DATABASE_PATH", "accounts.db"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTIssuer: getEnv("JWT_ISSUER", "accounts-backend"),

		PasswordMinLength: getEnvInt("PASSWORD_MIN_LENGTH", 8),

		TelemetryEnabled:    getEnvBool("TELEMETRY_ENABLED", false),
		TelemetryEndpoint:   getEnv("TELEMETRY_ENDPOINT", ""),
		TelemetryLicenseKey: getEnv("TELEMETRY_LICENSE_KEY", ""),
		TelemetryQueueSize:  getEnvInt("TELEMETRY_QUEUE_SIZE", 1024),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks if all required configuration is present
func (c *Config) Validate() error {
	if c.IsProduction() && c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required in production")
	}
	if c.TelemetryEnabled {
		if c.TelemetryEndpoint == "" {
			return fmt.Errorf("TELEMETRY_ENDPOINT is required when telemetry is enabled")
		}
		if c.TelemetryLicenseKey == "" {
			return fmt.Errorf("TELEMETRY_LICENSE_KEY is required when telemetry is enabled")
		}
	}
	return nil
}

// IsDevelopment checks if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction checks if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvBool gets a boolean environment variable with a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value == "true" || value == "1" || value == "yes"
}

// getEnvInt gets an integer environment variable with a default value
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}
