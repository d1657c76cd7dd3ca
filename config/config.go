package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment

	// Server configuration
	ServerHost string
	ServerPort string

	// Database configuration
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Startup readiness probe
	DBWaitInterval    time.Duration
	DBWaitMaxAttempts int

	// Redis configuration (optional; empty host and URL disables the
	// login rate limiter)
	RedisURL      string
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int

	// Token signing
	JWTSecret string

	// Image storage (optional; empty bucket disables recipe image upload)
	S3Bucket  string
	AWSRegion string

	// Logging
	LogLevel string
}

// LoadConfig creates a new Config instance from environment variables.
// In development a local .env file is loaded first when present.
func LoadConfig() (*Config, error) {
	env := GetEnvironment()
	if env == Development {
		// Missing .env is fine, real env vars still apply.
		_ = godotenv.Load()
	}

	cfg := &Config{
		Environment: env,

		ServerHost: getEnv("SERVER_HOST", "0.0.0.0"),
		ServerPort: getEnv("SERVER_PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "recipebook"),
		DBSSLMode:  getEnv("DB_SSL_MODE", "disable"),

		RedisURL:      os.Getenv("REDIS_URL"),
		RedisHost:     os.Getenv("REDIS_HOST"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),

		JWTSecret: os.Getenv("JWT_SECRET"),

		S3Bucket:  os.Getenv("S3_BUCKET_NAME"),
		AWSRegion: os.Getenv("AWS_REGION"),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	var err error
	if cfg.DBWaitInterval, err = getDurationEnv("DB_WAIT_INTERVAL", time.Second); err != nil {
		return nil, err
	}
	if cfg.DBWaitMaxAttempts, err = getIntEnv("DB_WAIT_MAX_ATTEMPTS", 30); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getIntEnv("REDIS_DB", 0); err != nil {
		return nil, err
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getIntEnv(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDurationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
