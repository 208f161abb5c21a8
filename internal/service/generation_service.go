package service

import (
	"context"
	"fmt"
	"strings"

	"recap/backend/internal/config"
	"recap/backend/internal/logger"
	"recap/backend/internal/network"
	"recap/backend/internal/service/ai"
)

// GenerationResult is the outcome of one successful generation call.
type GenerationResult struct {
	Summary   string
	ModelUsed string
}

// GenerationService wraps the generation backend: prompt in, text out, one
// attempt per invocation. No retries here; that is the caller's decision.
type GenerationService interface {
	Generate(ctx context.Context, transcript, customPrompt string) (GenerationResult, error)
}

type generationService struct {
	cfg         config.AIConfig
	rateLimiter *ai.RateLimiter
	clients     *network.ClientFactory
	newProvider func(ai.Config) (ai.Provider, error)
}

// NewGenerationService creates a new generation service. Backend calls go
// through the client factory so a configured proxy applies to them.
func NewGenerationService(cfg config.AIConfig, rateLimiter *ai.RateLimiter, clients *network.ClientFactory) GenerationService {
	return &generationService{
		cfg:         cfg,
		rateLimiter: rateLimiter,
		clients:     clients,
		newProvider: ai.NewProvider,
	}
}

// NewGenerationServiceWithFactory injects a provider factory. Test use only.
func NewGenerationServiceWithFactory(cfg config.AIConfig, rateLimiter *ai.RateLimiter, factory func(ai.Config) (ai.Provider, error)) GenerationService {
	return &generationService{
		cfg:         cfg,
		rateLimiter: rateLimiter,
		newProvider: factory,
	}
}

func (s *generationService) Generate(ctx context.Context, transcript, customPrompt string) (GenerationResult, error) {
	// Input validation happens before anything touches the backend.
	if strings.TrimSpace(transcript) == "" || strings.TrimSpace(customPrompt) == "" {
		return GenerationResult{}, fmt.Errorf("transcript and custom prompt are required: %w", ErrInvalid)
	}

	if s.cfg.APIKey == "" {
		logger.Error("generation backend API key missing", "module", "service", "action", "generate", "resource", "ai", "result", "failed")
		return GenerationResult{}, fmt.Errorf("generation backend is not configured: %w", ErrMisconfigured)
	}

	providerCfg := ai.Config{
		Provider:  s.cfg.Provider,
		APIKey:    s.cfg.APIKey,
		BaseURL:   s.cfg.BaseURL,
		Model:     s.cfg.Model,
		MaxTokens: s.cfg.MaxTokens,
	}
	if s.clients != nil {
		// No client-side deadline on generation calls; output length is
		// the latency control.
		providerCfg.HTTPClient = s.clients.NewHTTPClient(0)
	}
	if providerCfg.Provider == "" {
		providerCfg.Provider = ai.ProviderOpenAI
	}
	if providerCfg.MaxTokens <= 0 {
		providerCfg.MaxTokens = config.DefaultMaxOutputTokens
	}

	provider, err := s.newProvider(providerCfg)
	if err != nil {
		logger.Error("generation provider create failed", "module", "service", "action", "generate", "resource", "ai", "result", "failed", "provider", providerCfg.Provider, "error", err)
		return GenerationResult{}, fmt.Errorf("create provider: %w: %w", err, ErrMisconfigured)
	}

	if err := s.rateLimiter.Wait(ctx); err != nil {
		return GenerationResult{}, fmt.Errorf("rate limit: %w", err)
	}

	text, raw, err := provider.Complete(ctx, ai.SystemPreamble, ai.BuildUserPrompt(customPrompt, transcript))
	if err != nil {
		logger.Warn("generation call failed", "module", "service", "action", "generate", "resource", "ai", "result", "failed", "provider", provider.Name(), "model", providerCfg.Model, "error", err)
		return GenerationResult{}, &GenerationError{Message: err.Error(), Code: ai.BackendErrorCode(err)}
	}

	if strings.TrimSpace(text) == "" {
		logger.Warn("generation returned empty output", "module", "service", "action", "generate", "resource", "ai", "result", "failed", "provider", provider.Name(), "model", providerCfg.Model)
		return GenerationResult{}, &EmptyOutputError{Model: providerCfg.Model, Raw: raw}
	}

	logger.Info("generation ok", "module", "service", "action", "generate", "resource", "ai", "result", "ok", "provider", provider.Name(), "model", providerCfg.Model, "chars", len(text))
	return GenerationResult{Summary: text, ModelUsed: providerCfg.Model}, nil
}
