package config

import (
	"os"
	"path/filepath"
	"strconv"
)

const (
	AppName    = "Recap"
	AppVersion = "1.0.0"
)

// DefaultMaxOutputTokens bounds generated output length. This is the only
// latency control on generation calls; no request timeout is imposed here.
const DefaultMaxOutputTokens = 1024

// AIConfig holds the generation backend configuration.
// A missing API key is a request-time misconfiguration, not a startup error.
type AIConfig struct {
	Provider  string // openai, anthropic, compatible
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int
	RateLimit int // QPS across all generation calls
}

// SMTPConfig holds outbound mail settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type Config struct {
	Addr     string
	DBPath   string
	DataDir  string
	LogLevel string
	ProxyURL string
	AI       AIConfig
	SMTP     SMTPConfig
}

func Load() Config {
	addr := os.Getenv("RECAP_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	dataDir := os.Getenv("RECAP_DATA_DIR")
	if dataDir == "" {
		dataDir = "./data"
	}
	path := os.Getenv("RECAP_DB_PATH")
	if path == "" {
		path = filepath.Join(dataDir, "recap.db")
	}

	return Config{
		Addr:     addr,
		DBPath:   filepath.Clean(path),
		DataDir:  filepath.Clean(dataDir),
		LogLevel: os.Getenv("RECAP_LOG_LEVEL"),
		ProxyURL: os.Getenv("RECAP_PROXY_URL"),
		AI: AIConfig{
			Provider:  os.Getenv("RECAP_AI_PROVIDER"),
			APIKey:    os.Getenv("RECAP_AI_API_KEY"),
			BaseURL:   os.Getenv("RECAP_AI_BASE_URL"),
			Model:     os.Getenv("RECAP_AI_MODEL"),
			MaxTokens: envInt("RECAP_AI_MAX_TOKENS", DefaultMaxOutputTokens),
			RateLimit: envInt("RECAP_AI_RATE_LIMIT", 0),
		},
		SMTP: SMTPConfig{
			Host:     os.Getenv("RECAP_SMTP_HOST"),
			Port:     envInt("RECAP_SMTP_PORT", 587),
			Username: os.Getenv("RECAP_SMTP_USERNAME"),
			Password: os.Getenv("RECAP_SMTP_PASSWORD"),
			From:     os.Getenv("RECAP_SMTP_FROM"),
		},
	}
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
