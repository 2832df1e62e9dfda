package config

import (
	"fmt"
	"os"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ConfigRequirements defines required configuration for each environment
type ConfigRequirements struct {
	RequiredEnvVars []string
	RequiredSecrets []string
}

var (
	// Environment-specific requirements. Development and test run on
	// defaults, so nothing is mandatory there.
	requirements = map[Environment]ConfigRequirements{
		Development: {},
		Test:        {},
		CI: {
			RequiredEnvVars: []string{
				"SERVER_PORT",
				"SERVER_HOST",
				"DB_HOST",
				"DB_PORT",
				"DB_USER",
				"DB_NAME",
				"DB_SSL_MODE",
				"REDIS_HOST",
				"REDIS_PORT",
			},
			RequiredSecrets: []string{}, // CI uses environment variables, not Docker secrets
		},
		Production: {
			RequiredSecrets: []string{
				"server_port",
				"server_host",
				"db_host",
				"db_port",
				"db_name",
				"db_ssl_mode",
				"db_user",
				"db_password",
				"jwt_secret",
				"redis_host",
				"redis_port",
				"redis_url",
			},
		},
	}
)

// ValidateConfig checks if the configuration meets the requirements for the current environment
func ValidateConfig(cfg *Config) error {
	env := GetEnvironment()
	reqs := requirements[env]

	var errors []string

	// Validate environment variables
	for _, envVar := range reqs.RequiredEnvVars {
		if value := os.Getenv(envVar); value == "" {
			errors = append(errors, fmt.Sprintf("required environment variable %s is not set", envVar))
		}
	}

	// Validate secrets
	for _, secret := range reqs.RequiredSecrets {
		if value := readSecret(secret); value == "" {
			errors = append(errors, fmt.Sprintf("required secret %s is not set", secret))
		}
	}

	// Sensitive values must always be present, wherever they came from.
	if env == CI || env == Production {
		if cfg.DBPassword == "" {
			errors = append(errors, "database password is required")
		}
		if cfg.JWTSecret == "" {
			errors = append(errors, "JWT secret is required")
		}
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
