package config

import (
	"errors"
	"fmt"
)

// ValidateConfig checks that the loaded configuration is usable before the
// process goes any further. Secrets are only reported by name, never by value.
func ValidateConfig(cfg *Config) error {
	if cfg == nil {
		return errors.New("config is nil")
	}

	var missing []string
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if cfg.DBHost == "" {
		missing = append(missing, "DB_HOST")
	}
	if cfg.DBUser == "" {
		missing = append(missing, "DB_USER")
	}
	if cfg.DBName == "" {
		missing = append(missing, "DB_NAME")
	}
	if cfg.Environment == Production && cfg.DBPassword == "" {
		missing = append(missing, "DB_PASSWORD")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v", missing)
	}

	if cfg.DBWaitInterval <= 0 {
		return errors.New("DB_WAIT_INTERVAL must be positive")
	}
	if cfg.DBWaitMaxAttempts <= 0 {
		return errors.New("DB_WAIT_MAX_ATTEMPTS must be positive")
	}

	return nil
}
