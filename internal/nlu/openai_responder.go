// Package nlu provides LLM-backed intent classification and free-text responses.
// This file contains the unified OpenAI-compatible responder, used for Groq
// and Cerebras via a custom base URL.
package nlu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// openaiResponder generates short conversational replies using an
// OpenAI-compatible chat API. It implements the Responder interface.
type openaiResponder struct {
	client   openai.Client
	model    string
	provider Provider
}

// newOpenAIResponder creates a responder for an OpenAI-compatible provider.
// Returns nil if apiKey is empty (responder disabled).
func newOpenAIResponder(_ context.Context, provider Provider, apiKey, model string) (*openaiResponder, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: responder disabled when no API key
	}

	baseURL, ok := ProviderEndpoint[provider]
	if !ok {
		return nil, fmt.Errorf("unsupported OpenAI-compatible provider: %s", provider)
	}

	if model == "" {
		switch provider {
		case ProviderGroq:
			model = DefaultGroqResponderModels[0]
		case ProviderCerebras:
			model = DefaultCerebrasResponderModels[0]
		default:
			return nil, fmt.Errorf("no default model for provider: %s", provider)
		}
	}

	client := openai.NewClient(
		option.WithBaseURL(baseURL),
		option.WithAPIKey(apiKey),
	)

	return &openaiResponder{
		client:   client,
		model:    model,
		provider: provider,
	}, nil
}

// Respond generates a short reply for the given prompt.
func (r *openaiResponder) Respond(ctx context.Context, prompt string) (string, error) {
	if r == nil {
		return "", errors.New("responder is nil")
	}

	params := openai.ChatCompletionNewParams{
		Model: r.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(0.7), // Conversational, some variety is fine
		MaxTokens:   openai.Int(200),
	}

	start := time.Now()
	resp, err := r.client.Chat.Completions.New(ctx, params)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "responder API call failed",
			"provider", r.provider,
			"model", r.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		var apierr *openai.Error
		if errors.As(err, &apierr) {
			return "", WrapError(fmt.Errorf("chat completion failed: %w", err), r.provider, apierr.StatusCode)
		}
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from model")
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	if result == "" {
		return "", errors.New("empty text in response")
	}

	if resp.Usage.TotalTokens > 0 {
		slog.DebugContext(ctx, "responder reply generated",
			"provider", r.provider,
			"model", r.model,
			"input_tokens", resp.Usage.PromptTokens,
			"output_tokens", resp.Usage.CompletionTokens,
			"total_tokens", resp.Usage.TotalTokens,
			"duration_ms", duration.Milliseconds(),
			"reply_length", len(result))
	}

	return result, nil
}

// IsEnabled returns true if the responder is properly initialized.
func (r *openaiResponder) IsEnabled() bool {
	return r != nil
}

// Provider returns the provider type for this responder.
func (r *openaiResponder) Provider() Provider {
	if r == nil {
		return ""
	}
	return r.provider
}

// Close releases resources.
// Safe to call on nil receiver.
func (r *openaiResponder) Close() error {
	// openai-go client doesn't require cleanup
	return nil
}
