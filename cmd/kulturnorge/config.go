package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config contains application-wide settings sourced from the environment.
type Config struct {
	Addr           string
	AllowedOrigins []string

	StorageDriver string // memory, sqlite, postgres
	DatabaseURL   string // required for postgres
	SQLitePath    string

	GeminiAPIKey string
	GeminiModel  string

	JWTSecret  string
	LoginDelay time.Duration

	LogLevel  string
	LogFormat string
}

func loadConfig() (Config, error) {
	_ = godotenv.Load("config/local.env")

	cfg := Config{
		Addr:           fmt.Sprintf(":%s", envOrDefault("PORT", "8080")),
		AllowedOrigins: parseAllowedOrigins(envOrDefault("CORS_ALLOWED_ORIGINS", "http://localhost:5173")),
		StorageDriver:  envOrDefault("STORAGE_DRIVER", "sqlite"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		SQLitePath:     envOrDefault("SQLITE_PATH", "kulturnorge.db"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		GeminiModel:    envOrDefault("GEMINI_MODEL", "gemini-1.5-flash"),
		JWTSecret:      os.Getenv("JWT_SECRET"),
		LogLevel:       envOrDefault("LOG_LEVEL", "info"),
		LogFormat:      envOrDefault("LOG_FORMAT", "json"),
	}

	delay, err := time.ParseDuration(envOrDefault("LOGIN_DELAY", "1s"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid LOGIN_DELAY: %w", err)
	}
	cfg.LoginDelay = delay

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.StorageDriver {
	case "memory", "sqlite":
	case "postgres":
		if c.DatabaseURL == "" {
			return errors.New("DATABASE_URL env var is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("STORAGE_DRIVER must be one of memory, sqlite, postgres; got %q", c.StorageDriver)
	}

	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET env var is required")
	}
	if len(c.JWTSecret) < 16 {
		return errors.New("JWT_SECRET must be at least 16 characters")
	}
	return nil
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func parseAllowedOrigins(raw string) []string {
	parts := strings.Split(raw, ",")
	var origins []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
