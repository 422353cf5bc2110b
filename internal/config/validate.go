package config

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}
	if c.Auth.PasswordHashCost < bcrypt.MinCost || c.Auth.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("auth.password_hash_cost must be in [%d, %d] (got %d)",
			bcrypt.MinCost, bcrypt.MaxCost, c.Auth.PasswordHashCost)
	}
	if c.Auth.CookieName == "" {
		return fmt.Errorf("auth.cookie_name must not be empty")
	}

	if err := c.Verbs.validate(); err != nil {
		return fmt.Errorf("verbs: %w", err)
	}

	if c.RateLimit.RequestsPerMinute <= 0 {
		return fmt.Errorf("rate_limit.requests_per_minute must be > 0 (got %d)", c.RateLimit.RequestsPerMinute)
	}
	if c.RateLimit.CleanupInterval <= 0 {
		return fmt.Errorf("rate_limit.cleanup_interval must be > 0 (got %s)", c.RateLimit.CleanupInterval)
	}

	return nil
}

func (v *VerbsConfig) validate() error {
	if v.SearchLimit <= 0 {
		return fmt.Errorf("search_limit must be > 0 (got %d)", v.SearchLimit)
	}
	if v.SearchMaxLimit < v.SearchLimit {
		return fmt.Errorf("search_max_limit must be >= search_limit (got %d < %d)", v.SearchMaxLimit, v.SearchLimit)
	}
	if v.ImportBatchSize <= 0 {
		return fmt.Errorf("import_batch_size must be > 0 (got %d)", v.ImportBatchSize)
	}
	return nil
}
