package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks that every value the service cannot run without is set.
// Development fills in what it can; production refuses to guess secrets.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.ServerPort == "" {
		errs = append(errs, ValidationError{"SERVER_PORT", "is required"}.Error())
	}
	if cfg.JWTSecret == "" {
		if IsProduction() {
			errs = append(errs, ValidationError{"JWT_SECRET", "is required in production"}.Error())
		} else {
			cfg.JWTSecret = "dev-only-secret"
		}
	}
	if IsProduction() && cfg.DBPassword == "" {
		errs = append(errs, ValidationError{"DB_PASSWORD", "is required in production"}.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(errs, "; "))
	}
	return nil
}
