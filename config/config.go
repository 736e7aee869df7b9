// Package config loads service configuration from environment variables,
// with Docker-secret file fallback for sensitive values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Config holds all configuration for the application.
type Config struct {
	// Server
	ServerHost string
	ServerPort string

	// Identity database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Redis
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Session tokens
	JWTSecret string

	// SeedDemo preloads the demo showcase data at startup.
	SeedDemo bool
}

// Load builds a Config from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		ServerHost:    getenv("SERVER_HOST", "0.0.0.0"),
		ServerPort:    getenv("SERVER_PORT", "8080"),
		DBHost:        getenv("DB_HOST", "localhost"),
		DBPort:        getenv("DB_PORT", "5432"),
		DBUser:        secret("DB_USER", "creativehub"),
		DBPassword:    secret("DB_PASSWORD", ""),
		DBName:        getenv("DB_NAME", "creativehub"),
		DBSSLMode:     getenv("DB_SSL_MODE", "disable"),
		RedisHost:     getenv("REDIS_HOST", "localhost"),
		RedisPort:     getenv("REDIS_PORT", "6379"),
		RedisPassword: secret("REDIS_PASSWORD", ""),
		JWTSecret:     secret("JWT_SECRET", ""),
		SeedDemo:      getenv("SEED_DEMO", "true") == "true",
	}

	if dbStr := os.Getenv("REDIS_DB"); dbStr != "" {
		db, err := strconv.Atoi(dbStr)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		cfg.RedisDB = db
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// DSN returns the identity database connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// RedisAddr returns the redis host:port address.
func (c *Config) RedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// secret reads KEY, then KEY_FILE, then the Docker secrets directory.
func secret(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	if file := os.Getenv(key + "_FILE"); file != "" {
		if data, err := os.ReadFile(file); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	if data, err := os.ReadFile(filepath.Join(secretsDir, strings.ToLower(key))); err == nil {
		return strings.TrimSpace(string(data))
	}
	return fallback
}
