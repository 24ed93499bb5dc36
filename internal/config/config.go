package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config はアプリケーション全体の設定を保持する。
// 環境変数から起動時に1回読み込み、イミュータブルとして扱う。
type Config struct {
	// State
	StatePath string

	// Session
	SessionMaxAge int

	// Rate Limit
	RateLimitGeneral  int
	RateLimitEntryLog int

	// Insight
	InsightAPIKey   string
	InsightModelID  string
	InsightEndpoint string
	InsightTimeout  time.Duration

	// Mail
	MailHost string
	MailFrom string

	// Server
	ServerPort     string
	RequestTimeout time.Duration
	BaseURL        string

	// Cookie
	CookieSecure bool
	CookieDomain string

	// CORS
	CORSAllowedOrigin string
}

// Load は環境変数からConfigを読み込む。
// ローカル利用が前提のため、すべての項目に既定値がある。
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.StatePath = getEnvString("STATE_PATH", "data/timejoy.json")
	cfg.SessionMaxAge = getEnvInt("SESSION_MAX_AGE", 86400)
	cfg.RateLimitGeneral = getEnvInt("RATE_LIMIT_GENERAL", 120)
	cfg.RateLimitEntryLog = getEnvInt("RATE_LIMIT_ENTRY_LOG", 30)
	cfg.InsightAPIKey = getEnvString("INSIGHT_API_KEY", "")
	cfg.InsightModelID = getEnvString("INSIGHT_MODEL_ID", "gemini-2.5-flash")
	cfg.InsightEndpoint = getEnvString("INSIGHT_ENDPOINT", "")
	cfg.InsightTimeout = getEnvDuration("INSIGHT_TIMEOUT", 30*time.Second)
	cfg.MailHost = getEnvString("MAIL_HOST", "smtp.example.com")
	cfg.MailFrom = getEnvString("MAIL_FROM", "TimeJoy <noreply@timejoy.local>")
	cfg.ServerPort = getEnvString("SERVER_PORT", "8080")
	cfg.RequestTimeout = getEnvDuration("REQUEST_TIMEOUT", 60*time.Second)
	cfg.BaseURL = getEnvString("BASE_URL", "http://localhost:8080")
	cfg.CookieSecure = strings.HasPrefix(cfg.BaseURL, "https://")
	cfg.CookieDomain = getEnvString("COOKIE_DOMAIN", "")
	cfg.CORSAllowedOrigin = getEnvString("CORS_ALLOWED_ORIGIN", "http://localhost:3000")

	return cfg, nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}
