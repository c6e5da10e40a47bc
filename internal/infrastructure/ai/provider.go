// Package ai builds AI provider clients from configuration
package ai

import (
	"fmt"

	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/ai/gemini"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/ai/ollama"
	"github.com/alchemorsel/recipe-assistant/internal/infrastructure/config"
	"github.com/alchemorsel/recipe-assistant/internal/ports/outbound"
	"go.uber.org/zap"
)

// NewProvider creates the client for the named provider, wrapped in a
// circuit breaker when one is configured. An empty name yields a nil client.
func NewProvider(name string, cfg config.AIConfig, logger *zap.Logger) (outbound.AIClient, error) {
	client, err := newClient(name, cfg, logger)
	if err != nil || client == nil || cfg.Breaker.FailureThreshold <= 0 {
		return client, err
	}
	return NewBreakerClient(client, BreakerOptions{
		FailureThreshold: cfg.Breaker.FailureThreshold,
		SuccessThreshold: cfg.Breaker.SuccessThreshold,
		Cooldown:         cfg.Breaker.Cooldown,
	}, logger), nil
}

func newClient(name string, cfg config.AIConfig, logger *zap.Logger) (outbound.AIClient, error) {
	switch name {
	case "":
		return nil, nil
	case "gemini":
		client, err := gemini.NewClient(gemini.Config{
			APIKey:  cfg.Gemini.APIKey,
			Model:   cfg.Gemini.Model,
			BaseURL: cfg.Gemini.BaseURL,
			Timeout: cfg.Timeout,
		}, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case "ollama":
		return ollama.NewClient(ollama.Config{
			BaseURL: cfg.Ollama.BaseURL,
			Model:   cfg.Ollama.Model,
			Timeout: cfg.Timeout,
		}, logger), nil
	default:
		return nil, fmt.Errorf("unknown AI provider %q", name)
	}
}

// NewProviders creates the primary and optional fallback clients. A primary
// that cannot be built is logged and skipped so the assistant can still
// answer offline.
func NewProviders(cfg config.AIConfig, logger *zap.Logger) (primary, secondary outbound.AIClient) {
	var err error
	primary, err = NewProvider(cfg.Provider, cfg, logger)
	if err != nil {
		logger.Warn("Primary AI provider unavailable", zap.String("provider", cfg.Provider), zap.Error(err))
		primary = nil
	}

	if cfg.FallbackProvider != "" && cfg.FallbackProvider != cfg.Provider {
		secondary, err = NewProvider(cfg.FallbackProvider, cfg, logger)
		if err != nil {
			logger.Warn("Fallback AI provider unavailable", zap.String("provider", cfg.FallbackProvider), zap.Error(err))
			secondary = nil
		}
	}

	if primary == nil && secondary != nil {
		primary, secondary = secondary, nil
	}
	return primary, secondary
}
