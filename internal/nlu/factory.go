// Package nlu provides LLM-backed intent classification and free-text responses.
// This file contains the factory that assembles provider chains from config.
package nlu

import (
	"context"
	"log/slog"

	"github.com/campushq/campus-chatbot-go/internal/config"
	"github.com/campushq/campus-chatbot-go/internal/metrics"
)

// NewClassifier builds the classifier chain from the configured provider
// order. Providers without an API key are skipped. Returns (nil, nil) when
// LLM features are disabled or no provider is usable; the orchestrator
// degrades to keyword handling in that case.
func NewClassifier(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (Classifier, error) {
	if !cfg.LLMEnabled {
		slog.Info("intent classification disabled by config")
		return nil, nil //nolint:nilnil // Intentional: feature off
	}

	chain := make([]Classifier, 0, len(cfg.LLMProviders))
	for _, name := range cfg.LLMProviders {
		var (
			c   Classifier
			err error
		)
		switch Provider(name) {
		case ProviderGemini:
			c, err = newGeminiClassifier(ctx, cfg.GeminiAPIKey, firstModel(cfg.GeminiIntentModels))
		case ProviderGroq:
			c, err = newOpenAIClassifier(ctx, ProviderGroq, cfg.GroqAPIKey, firstModel(cfg.GroqIntentModels))
		case ProviderCerebras:
			c, err = newOpenAIClassifier(ctx, ProviderCerebras, cfg.CerebrasAPIKey, firstModel(cfg.CerebrasIntentModels))
		default:
			slog.Warn("unknown LLM provider in chain, skipping", "provider", name)
			continue
		}
		if err != nil {
			return nil, err
		}
		if c != nil && c.IsEnabled() {
			chain = append(chain, c)
		}
	}

	fc := NewFallbackClassifier(m, DefaultRetryConfig(), chain...)
	if fc == nil {
		slog.Warn("no usable LLM provider configured, intent classification disabled")
		return nil, nil //nolint:nilnil // Intentional: feature off
	}

	slog.Info("intent classifier ready",
		"providers", providerNames(chain),
		"primary", fc.Provider())
	return fc, nil
}

// NewResponder builds the free-text responder chain from the configured
// provider order. Returns (nil, nil) when disabled or no provider is usable;
// callers fall back to the static reply from config.
func NewResponder(ctx context.Context, cfg *config.Config, m *metrics.Metrics) (Responder, error) {
	if !cfg.LLMEnabled {
		return nil, nil //nolint:nilnil // Intentional: feature off
	}

	chain := make([]Responder, 0, len(cfg.LLMProviders))
	for _, name := range cfg.LLMProviders {
		var (
			r   Responder
			err error
		)
		switch Provider(name) {
		case ProviderGemini:
			r, err = newGeminiResponder(ctx, cfg.GeminiAPIKey, firstModel(cfg.GeminiResponderModels))
		case ProviderGroq:
			r, err = newOpenAIResponder(ctx, ProviderGroq, cfg.GroqAPIKey, firstModel(cfg.GroqResponderModels))
		case ProviderCerebras:
			r, err = newOpenAIResponder(ctx, ProviderCerebras, cfg.CerebrasAPIKey, firstModel(cfg.CerebrasResponderModels))
		default:
			continue
		}
		if err != nil {
			return nil, err
		}
		// The constructors return a typed-nil concrete pointer when the
		// provider has no API key; a bare r != nil would keep it.
		if r != nil && r.IsEnabled() {
			chain = append(chain, r)
		}
	}

	fr := NewFallbackResponder(m, chain...)
	if fr == nil {
		return nil, nil //nolint:nilnil // Intentional: feature off
	}
	return fr, nil
}

// firstModel returns the primary model from an ordered list, or "" to use
// the package default.
func firstModel(models []string) string {
	if len(models) == 0 {
		return ""
	}
	return models[0]
}

func providerNames(chain []Classifier) []string {
	names := make([]string, 0, len(chain))
	for _, c := range chain {
		names = append(names, c.Provider().String())
	}
	return names
}
