package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if !cfg.Auth.OfflineMode || !cfg.Auth.MockFallback {
		t.Fatalf("expected offline mode and mock fallback on by default, got %+v", cfg.Auth)
	}
	if cfg.API.BaseURL != "http://10.0.2.2:8080/" {
		t.Fatalf("unexpected base url %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected timeout %v", cfg.API.Timeout)
	}
	if cfg.Auth.TestEmail != "test@edunova.com" || cfg.Auth.TestToken != "mock-jwt-token-123456789" {
		t.Fatalf("unexpected test credential %+v", cfg.Auth)
	}
	if cfg.Store.Path != "edunova.db" {
		t.Fatalf("unexpected database path %q", cfg.Store.Path)
	}
	if cfg.SlogLevel() != slog.LevelInfo {
		t.Fatalf("unexpected log level %v", cfg.SlogLevel())
	}
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("EDUNOVA_OFFLINE_MODE", "false")
	t.Setenv("EDUNOVA_MOCK_FALLBACK", "false")
	t.Setenv("EDUNOVA_API_BASE_URL", "https://api.edunova.example")
	t.Setenv("EDUNOVA_HTTP_TIMEOUT", "10m")
	t.Setenv("EDUNOVA_LOG_LEVEL", " DEBUG ")

	cfg, err := Parse()
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Auth.OfflineMode || cfg.Auth.MockFallback {
		t.Fatalf("expected flags off, got %+v", cfg.Auth)
	}
	if cfg.API.BaseURL != "https://api.edunova.example/" {
		t.Fatalf("expected trailing slash added, got %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 5*time.Minute {
		t.Fatalf("expected timeout clamped to 5m, got %v", cfg.API.Timeout)
	}
	if cfg.SlogLevel() != slog.LevelDebug {
		t.Fatalf("expected debug level, got %v", cfg.SlogLevel())
	}
}

func TestSanitize_ClampsShortTimeout(t *testing.T) {
	cfg := AppConfig{API: APIConfig{Timeout: 10 * time.Millisecond}}
	cfg.Sanitize()
	if cfg.API.Timeout != time.Second {
		t.Fatalf("expected 1s, got %v", cfg.API.Timeout)
	}
	if cfg.API.BaseURL != defaultBaseURL {
		t.Fatalf("expected default base url, got %q", cfg.API.BaseURL)
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"bad url", "EDUNOVA_API_BASE_URL", "ftp://example.com"},
		{"short secret", "EDUNOVA_MOCK_JWT_SECRET", "too-short"},
		{"bad bool", "EDUNOVA_OFFLINE_MODE", "maybe"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Parse(); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.value)
			}
		})
	}
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("EDUNOVA_DATABASE_PATH=/tmp/from-dotenv.db\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	// t.Setenv registers a restore of the prior value; godotenv never overrides set vars.
	t.Setenv("EDUNOVA_DATABASE_PATH", "")
	os.Unsetenv("EDUNOVA_DATABASE_PATH")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Store.Path != "/tmp/from-dotenv.db" {
		t.Fatalf("expected path from .env file, got %q", cfg.Store.Path)
	}
}

func TestLoad_MissingFileIsTolerated(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.env")); err != nil {
		t.Fatalf("expected missing .env to be tolerated, got %v", err)
	}
}
