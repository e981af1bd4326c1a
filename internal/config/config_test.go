package config

import (
	"log/slog"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "PORT", "PROPERTIES_API_BASE_URL", "HTTP_TIMEOUT",
		"FETCH_TIMEOUT", "FETCH_MAX_RETRIES", "CACHE_TTL", "CACHE_MAX_ENTRIES",
		"SESSION_TTL", "SWEEP_INTERVAL", "SEARCH_AUTO_APPLY",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.AppEnv != "dev" || cfg.LogLevel != slog.LevelInfo || cfg.Port != "8080" {
		t.Errorf("unexpected basics: %+v", cfg)
	}
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.FetchTimeout != 15*time.Second || cfg.HTTPTimeout != 10*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.FetchTimeout, cfg.HTTPTimeout)
	}
	if cfg.CacheTTL != time.Minute || cfg.CacheMaxEntries != 256 {
		t.Errorf("cache = %v / %d", cfg.CacheTTL, cfg.CacheMaxEntries)
	}
	if cfg.MaxRetries != 0 || cfg.AutoApply {
		t.Errorf("retries = %d, autoApply = %v", cfg.MaxRetries, cfg.AutoApply)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("LOG_LEVEL", "WARN")
	t.Setenv("PROPERTIES_API_BASE_URL", "http://api.internal:9000/")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("FETCH_MAX_RETRIES", "2")
	t.Setenv("SEARCH_AUTO_APPLY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.AppEnv != "prod" || cfg.LogLevel != slog.LevelWarn {
		t.Errorf("env = %q, level = %v", cfg.AppEnv, cfg.LogLevel)
	}
	if cfg.APIBaseURL != "http://api.internal:9000" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.CacheTTL != 30*time.Second || cfg.MaxRetries != 2 || !cfg.AutoApply {
		t.Errorf("overrides not applied: %+v", cfg)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"APP_ENV", "staging"},
		{"LOG_LEVEL", "verbose"},
		{"CACHE_TTL", "soon"},
		{"FETCH_MAX_RETRIES", "-1"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q: expected error", tt.key, tt.value)
			}
		})
	}
}
