// Package nlu provides LLM-backed intent classification and free-text responses.
// This file contains the Gemini implementation of the free-text responder.
package nlu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"
)

// geminiResponder generates short conversational replies with Gemini.
// It implements the Responder interface.
type geminiResponder struct {
	client *genai.Client
	model  string
}

// newGeminiResponder creates a new Gemini-based responder.
// Returns nil if apiKey is empty (responder disabled).
func newGeminiResponder(ctx context.Context, apiKey, model string) (*geminiResponder, error) {
	if apiKey == "" {
		return nil, nil //nolint:nilnil // Intentional: responder disabled when no API key
	}

	if model == "" {
		model = DefaultGeminiResponderModels[0]
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &geminiResponder{
		client: client,
		model:  model,
	}, nil
}

// Respond generates a short reply for the given prompt.
func (r *geminiResponder) Respond(ctx context.Context, prompt string) (string, error) {
	if r == nil {
		return "", errors.New("responder is nil")
	}

	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0.7), // Conversational, some variety is fine
		MaxOutputTokens: 200,
	}

	start := time.Now()
	resp, err := r.client.Models.GenerateContent(ctx, r.model, genai.Text(prompt), config)
	duration := time.Since(start)

	if err != nil {
		slog.WarnContext(ctx, "responder API call failed",
			"provider", "gemini",
			"model", r.model,
			"prompt_length", len(prompt),
			"duration_ms", duration.Milliseconds(),
			"error", err)
		return "", fmt.Errorf("generate content failed: %w", err)
	}

	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("empty response from model")
	}

	var reply strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part.Text != "" {
			reply.WriteString(part.Text)
		}
	}

	result := strings.TrimSpace(reply.String())
	if result == "" {
		return "", errors.New("empty text in response")
	}

	if resp.UsageMetadata != nil {
		slog.DebugContext(ctx, "responder reply generated",
			"provider", "gemini",
			"model", r.model,
			"input_tokens", resp.UsageMetadata.PromptTokenCount,
			"output_tokens", resp.UsageMetadata.CandidatesTokenCount,
			"total_tokens", resp.UsageMetadata.TotalTokenCount,
			"duration_ms", duration.Milliseconds(),
			"reply_length", len(result))
	}

	return result, nil
}

// IsEnabled returns true if the responder is properly initialized. A nil
// receiver reports false, which keeps a disabled provider out of the chain
// even when it reaches here behind the Responder interface.
func (r *geminiResponder) IsEnabled() bool {
	return r != nil && r.client != nil
}

// Provider returns the provider type for this responder.
func (r *geminiResponder) Provider() Provider {
	return ProviderGemini
}

// Close releases resources.
// Safe to call on nil receiver.
func (r *geminiResponder) Close() error {
	if r == nil {
		return nil
	}
	// genai.Client does not require explicit cleanup in the current SDK version
	return nil
}
