package config

import (
	"fmt"
	"net/url"
	"strconv"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that the loaded configuration is usable.
func ValidateConfig(cfg *Config) error {
	if cfg.ChatAPIKey == "" {
		return ValidationError{Field: "ChatAPIKey", Message: "chat API key is required"}
	}

	if _, err := strconv.Atoi(cfg.ServerPort); err != nil {
		return ValidationError{Field: "ServerPort", Message: fmt.Sprintf("invalid port %q", cfg.ServerPort)}
	}

	for _, field := range []struct {
		name  string
		value string
	}{
		{"ChatAPIURL", cfg.ChatAPIURL},
		{"MealDBBaseURL", cfg.MealDBBaseURL},
	} {
		if field.value == "" {
			continue
		}
		u, err := url.Parse(field.value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return ValidationError{Field: field.name, Message: fmt.Sprintf("invalid URL %q", field.value)}
		}
	}

	return nil
}
