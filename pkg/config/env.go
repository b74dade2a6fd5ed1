package config

import (
	"os"
	"strings"
)

// Environment constants
const (
	EnvDevelopment = "development"
	EnvStaging     = "staging"
	EnvProduction  = "production"
)

// GetEnv returns the value of an environment variable or a default value if not set.
func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvironment returns the current environment from HOURS_SERVER_ENVIRONMENT.
// Defaults to development if not set.
func GetEnvironment() string {
	return strings.ToLower(GetEnv("HOURS_SERVER_ENVIRONMENT", EnvDevelopment))
}

// IsProductionLike reports whether env requires production-grade configuration.
func IsProductionLike(env string) bool {
	env = strings.ToLower(env)
	return env == EnvStaging || env == EnvProduction
}
