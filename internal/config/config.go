// Package config loads the client configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	minHTTPTimeout = time.Second
	maxHTTPTimeout = 5 * time.Minute
	defaultBaseURL = "http://10.0.2.2:8080/"
)

// AppConfig is the client configuration. Every variable carries the
// EDUNOVA_ prefix, e.g. EDUNOVA_OFFLINE_MODE.
type AppConfig struct {
	Auth  AuthConfig
	API   APIConfig
	Store StoreConfig
	Mock  MockConfig

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
}

// AuthConfig controls the auth reconciler.
type AuthConfig struct {
	// OfflineMode skips the network and simulates every auth call.
	OfflineMode bool `env:"OFFLINE_MODE" envDefault:"true"`
	// MockFallback retries a failed remote login or register with the simulation.
	MockFallback bool `env:"MOCK_FALLBACK" envDefault:"true"`

	TestEmail    string `env:"TEST_EMAIL" envDefault:"test@edunova.com"`
	TestPassword string `env:"TEST_PASSWORD" envDefault:"password123"`
	TestToken    string `env:"TEST_TOKEN" envDefault:"mock-jwt-token-123456789"`
}

// APIConfig locates the backend.
type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL" envDefault:"http://10.0.2.2:8080/"`
	Timeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"30s"`
}

// StoreConfig locates the local SQLite database.
type StoreConfig struct {
	Path string `env:"DATABASE_PATH" envDefault:"edunova.db"`
}

// MockConfig configures the serve-mock backend.
type MockConfig struct {
	Addr      string `env:"MOCK_ADDR" envDefault:":8080"`
	JWTSecret string `env:"MOCK_JWT_SECRET" envDefault:"edunova-mock-backend-development-secret"`
}

// Load reads an optional .env file from the working directory (or the given
// paths), parses the environment and sanitizes the result.
func Load(paths ...string) (AppConfig, error) {
	if err := godotenv.Load(paths...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return AppConfig{}, fmt.Errorf("load .env file: %w", err)
	}
	return Parse()
}

// Parse reads the configuration from the process environment.
func Parse() (AppConfig, error) {
	var cfg AppConfig
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: "EDUNOVA_"}); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}
	cfg.Sanitize()
	return cfg, cfg.Validate()
}

// Sanitize applies guardrails to values loaded from the environment.
func (c *AppConfig) Sanitize() {
	c.API.Timeout = min(max(c.API.Timeout, minHTTPTimeout), maxHTTPTimeout)

	c.API.BaseURL = strings.TrimSpace(c.API.BaseURL)
	if c.API.BaseURL == "" {
		c.API.BaseURL = defaultBaseURL
	}
	if !strings.HasSuffix(c.API.BaseURL, "/") {
		c.API.BaseURL += "/"
	}

	c.Auth.TestEmail = strings.TrimSpace(c.Auth.TestEmail)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
}

// Validate reports configuration that cannot work.
func (c *AppConfig) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("EDUNOVA_API_BASE_URL must be an absolute http(s) url, got %q", c.API.BaseURL)
	}
	if c.Store.Path == "" {
		return errors.New("EDUNOVA_DATABASE_PATH must not be empty")
	}
	if len(c.Mock.JWTSecret) < 32 {
		return errors.New("EDUNOVA_MOCK_JWT_SECRET must be at least 32 characters")
	}
	return nil
}

// SlogLevel maps LogLevel to a slog.Level, defaulting to info.
func (c *AppConfig) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
