package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server configuration
	ServerHost string
	ServerPort string

	// Recipe API configuration
	MealDBBaseURL string

	// Chat-completion API configuration
	ChatAPIURL string
	ChatAPIKey string
	ChatModel  string

	// Redis configuration (optional; empty host disables caching and
	// rate limiting)
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Origins the browser view may call from
	AllowedOrigins []string
}

// LoadConfig creates a Config from environment variables. Secrets may be
// supplied directly or via *_FILE variables pointing at secret files.
func LoadConfig() (*Config, error) {
	chatKey, err := loadSecret("CHAT_API_KEY")
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		ServerHost:    os.Getenv("SERVER_HOST"),
		ServerPort:    envOr("SERVER_PORT", "8080"),
		MealDBBaseURL: os.Getenv("MEALDB_BASE_URL"),
		ChatAPIURL:    envOr("CHAT_API_URL", "https://api.deepseek.com/v1/chat/completions"),
		ChatAPIKey:    chatKey,
		ChatModel:     envOr("CHAT_MODEL", "deepseek-chat"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     envOr("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB %q: %w", dbStr, err)
		}
		cfg.RedisDB = db
	}

	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		for _, origin := range strings.Split(origins, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// RedisAddr returns the host:port of the configured Redis instance, or an
// empty string when Redis is not configured.
func (c *Config) RedisAddr() string {
	if c.RedisHost == "" {
		return ""
	}
	return c.RedisHost + ":" + c.RedisPort
}

// ServerAddr returns the listen address for the HTTP server.
func (c *Config) ServerAddr() string {
	return c.ServerHost + ":" + c.ServerPort
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadSecret reads a secret from NAME, or from the file named by NAME_FILE.
func loadSecret(name string) (string, error) {
	if v := os.Getenv(name); v != "" {
		return v, nil
	}

	file := os.Getenv(name + "_FILE")
	if file == "" {
		return "", fmt.Errorf("%s or %s_FILE must be set", name, name)
	}

	data, err := os.ReadFile(file)
	if err != nil {
		return "", fmt.Errorf("failed to read %s file: %w", name, err)
	}

	secret := strings.TrimSpace(string(data))
	if secret == "" {
		return "", fmt.Errorf("%s file is empty", name)
	}
	return secret, nil
}
