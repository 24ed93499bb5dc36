package config

import (
	"testing"
	"time"
)

func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	// State defaults
	if cfg.StatePath != "data/timejoy.json" {
		t.Errorf("StatePath = %q, want %q", cfg.StatePath, "data/timejoy.json")
	}

	// Session defaults
	if cfg.SessionMaxAge != 86400 {
		t.Errorf("SessionMaxAge = %d, want %d", cfg.SessionMaxAge, 86400)
	}

	// Rate limit defaults
	if cfg.RateLimitGeneral != 120 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 120)
	}
	if cfg.RateLimitEntryLog != 30 {
		t.Errorf("RateLimitEntryLog = %d, want %d", cfg.RateLimitEntryLog, 30)
	}

	// Insight defaults
	if cfg.InsightAPIKey != "" {
		t.Errorf("InsightAPIKey = %q, want empty", cfg.InsightAPIKey)
	}
	if cfg.InsightModelID != "gemini-2.5-flash" {
		t.Errorf("InsightModelID = %q, want %q", cfg.InsightModelID, "gemini-2.5-flash")
	}
	if cfg.InsightTimeout != 30*time.Second {
		t.Errorf("InsightTimeout = %v, want %v", cfg.InsightTimeout, 30*time.Second)
	}

	// Mail defaults
	if cfg.MailHost != "smtp.example.com" {
		t.Errorf("MailHost = %q, want %q", cfg.MailHost, "smtp.example.com")
	}

	// Server defaults
	if cfg.ServerPort != "8080" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "8080")
	}
	if cfg.RequestTimeout != 60*time.Second {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, 60*time.Second)
	}
	if cfg.BaseURL != "http://localhost:8080" {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, "http://localhost:8080")
	}
	if cfg.CookieSecure {
		t.Error("CookieSecure = true, want false for http BaseURL")
	}
	if cfg.CORSAllowedOrigin != "http://localhost:3000" {
		t.Errorf("CORSAllowedOrigin = %q, want %q", cfg.CORSAllowedOrigin, "http://localhost:3000")
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("STATE_PATH", "/var/lib/timejoy/state.json")
	t.Setenv("SESSION_MAX_AGE", "3600")
	t.Setenv("RATE_LIMIT_GENERAL", "60")
	t.Setenv("RATE_LIMIT_ENTRY_LOG", "10")
	t.Setenv("INSIGHT_API_KEY", "test-api-key")
	t.Setenv("INSIGHT_MODEL_ID", "gemini-test")
	t.Setenv("INSIGHT_ENDPOINT", "http://localhost:9090")
	t.Setenv("INSIGHT_TIMEOUT", "10s")
	t.Setenv("MAIL_HOST", "smtp.test.local")
	t.Setenv("MAIL_FROM", "Test <test@test.local>")
	t.Setenv("SERVER_PORT", "3000")
	t.Setenv("REQUEST_TIMEOUT", "90s")
	t.Setenv("BASE_URL", "https://timejoy.example.com")
	t.Setenv("CORS_ALLOWED_ORIGIN", "https://app.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.StatePath != "/var/lib/timejoy/state.json" {
		t.Errorf("StatePath = %q", cfg.StatePath)
	}
	if cfg.SessionMaxAge != 3600 {
		t.Errorf("SessionMaxAge = %d, want %d", cfg.SessionMaxAge, 3600)
	}
	if cfg.RateLimitGeneral != 60 {
		t.Errorf("RateLimitGeneral = %d, want %d", cfg.RateLimitGeneral, 60)
	}
	if cfg.RateLimitEntryLog != 10 {
		t.Errorf("RateLimitEntryLog = %d, want %d", cfg.RateLimitEntryLog, 10)
	}
	if cfg.InsightAPIKey != "test-api-key" {
		t.Errorf("InsightAPIKey = %q", cfg.InsightAPIKey)
	}
	if cfg.InsightModelID != "gemini-test" {
		t.Errorf("InsightModelID = %q", cfg.InsightModelID)
	}
	if cfg.InsightEndpoint != "http://localhost:9090" {
		t.Errorf("InsightEndpoint = %q", cfg.InsightEndpoint)
	}
	if cfg.InsightTimeout != 10*time.Second {
		t.Errorf("InsightTimeout = %v, want %v", cfg.InsightTimeout, 10*time.Second)
	}
	if cfg.MailHost != "smtp.test.local" {
		t.Errorf("MailHost = %q", cfg.MailHost)
	}
	if cfg.MailFrom != "Test <test@test.local>" {
		t.Errorf("MailFrom = %q", cfg.MailFrom)
	}
	if cfg.ServerPort != "3000" {
		t.Errorf("ServerPort = %q, want %q", cfg.ServerPort, "3000")
	}
	if cfg.RequestTimeout != 90*time.Second {
		t.Errorf("RequestTimeout = %v, want %v", cfg.RequestTimeout, 90*time.Second)
	}
	if !cfg.CookieSecure {
		t.Error("CookieSecure = false, want true for https BaseURL")
	}
	if cfg.CORSAllowedOrigin != "https://app.example.com" {
		t.Errorf("CORSAllowedOrigin = %q", cfg.CORSAllowedOrigin)
	}
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("SESSION_MAX_AGE", "not-a-number")
	t.Setenv("INSIGHT_TIMEOUT", "not-a-duration")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.SessionMaxAge != 86400 {
		t.Errorf("SessionMaxAge = %d, want default %d", cfg.SessionMaxAge, 86400)
	}
	if cfg.InsightTimeout != 30*time.Second {
		t.Errorf("InsightTimeout = %v, want default %v", cfg.InsightTimeout, 30*time.Second)
	}
}
