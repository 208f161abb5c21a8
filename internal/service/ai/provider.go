package ai

import (
	"context"
	"errors"
	"net/http"
)

// Provider defines the interface for generation backends. One attempt per
// call; retry policy, if any, belongs to callers.
type Provider interface {
	// Complete generates a response for the given prompts. raw is the
	// backend's response body as received, kept for diagnosing responses
	// that carry no usable text.
	Complete(ctx context.Context, systemPrompt, userPrompt string) (text, raw string, err error)
	// Name returns the provider name.
	Name() string
}

// Config holds the configuration for a generation backend. Output length is
// always bounded and thinking/reasoning passes are always disabled; both are
// latency and cost controls.
type Config struct {
	Provider   string // openai, anthropic, compatible
	APIKey     string
	BaseURL    string // optional for openai/anthropic, required for compatible
	Model      string
	MaxTokens  int          // cap on generated tokens
	HTTPClient *http.Client // optional; carries proxy configuration
}

// ProviderType constants
const (
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderCompatible = "compatible"
)

var (
	ErrInvalidProvider = errors.New("invalid provider")
	ErrMissingAPIKey   = errors.New("API key is required")
	ErrMissingBaseURL  = errors.New("base URL is required for compatible provider")
	ErrMissingModel    = errors.New("model is required")
)

// NewProvider creates a new generation backend based on the config.
func NewProvider(cfg Config) (Provider, error) {
	if cfg.APIKey == "" {
		return nil, ErrMissingAPIKey
	}
	if cfg.Model == "" {
		return nil, ErrMissingModel
	}

	switch cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg), nil
	case ProviderAnthropic:
		return NewAnthropicProvider(cfg), nil
	case ProviderCompatible:
		if cfg.BaseURL == "" {
			return nil, ErrMissingBaseURL
		}
		return NewCompatibleProvider(cfg), nil
	default:
		return nil, ErrInvalidProvider
	}
}
