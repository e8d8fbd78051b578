// Package nlu provides LLM-backed intent classification and free-text
// responses for the chatbot pipeline.
//
// Architecture:
// - Gemini: uses google.golang.org/genai (official SDK)
// - Groq/Cerebras: uses github.com/openai/openai-go/v3 (OpenAI-compatible API)
//
// Fallback strategy (2-layer):
// 1. Retry: same provider retried with full-jitter exponential backoff
// 2. Provider chain: next provider in the configured order
package nlu

import (
	"context"
	"time"
)

// Provider represents an LLM provider.
type Provider string

const (
	// ProviderGemini represents Google's Gemini API (non-OpenAI-compatible).
	ProviderGemini Provider = "gemini"
	// ProviderGroq represents Groq's API (OpenAI-compatible, fast inference).
	ProviderGroq Provider = "groq"
	// ProviderCerebras represents Cerebras's API (OpenAI-compatible, ultra-fast inference).
	ProviderCerebras Provider = "cerebras"
)

// ProviderEndpoint defines the base URL for OpenAI-compatible providers.
// Gemini is not included as it uses a different SDK.
var ProviderEndpoint = map[Provider]string{
	ProviderGroq:     "https://api.groq.com/openai/v1/",
	ProviderCerebras: "https://api.cerebras.ai/v1/",
}

// IsOpenAICompatible returns true if the provider uses OpenAI-compatible API.
func (p Provider) IsOpenAICompatible() bool {
	_, ok := ProviderEndpoint[p]
	return ok
}

// String returns the string representation of the provider.
func (p Provider) String() string {
	return string(p)
}

// Default model lists per provider. First entry is the primary model; the
// operator can override via CAMPUS_*_INTENT_MODELS / CAMPUS_*_RESPONDER_MODELS.
var (
	DefaultGeminiIntentModels    = []string{"gemini-2.0-flash", "gemini-2.0-flash-lite"}
	DefaultGeminiResponderModels = []string{"gemini-2.0-flash-lite"}

	DefaultGroqIntentModels    = []string{"llama-3.3-70b-versatile", "llama-3.1-8b-instant"}
	DefaultGroqResponderModels = []string{"llama-3.1-8b-instant"}

	DefaultCerebrasIntentModels    = []string{"llama-3.3-70b"}
	DefaultCerebrasResponderModels = []string{"llama3.1-8b"}
)

// Classifier defines the interface for intent classification.
// Implementations include Gemini (native) and OpenAI-compatible providers
// (Groq, Cerebras). Uses forced function calling mode (ANY/required) so every
// message resolves to exactly one intent.
type Classifier interface {
	// Classify analyzes user input and returns the detected intent with
	// whatever entities the model extracted.
	Classify(ctx context.Context, text string) (*Classification, error)
	// IsEnabled returns true if the classifier is properly initialized.
	IsEnabled() bool
	// Close releases any resources held by the classifier.
	Close() error
	// Provider returns the provider type for metrics.
	Provider() Provider
}

// Responder defines the interface for free-text generation. It handles
// general chat, out-of-scope questions, and "did you mean" style suggestions
// when a catalog query comes back empty.
type Responder interface {
	// Respond generates a short reply for the given prompt.
	Respond(ctx context.Context, prompt string) (string, error)
	// IsEnabled returns true if the responder is properly initialized.
	IsEnabled() bool
	// Close releases any resources held by the responder.
	Close() error
	// Provider returns the provider type for metrics.
	Provider() Provider
}

// Classification is the result of intent classification.
type Classification struct {
	// Intent is the detected intent id, e.g. "get_timetable".
	// IntentUnknown when the model called an unrecognized function.
	Intent string

	// Entities holds the extracted slot values keyed by entity name
	// (e.g. "faculty_name", "branch"). Values are raw model output; the
	// normalize package cleans them up downstream.
	Entities map[string]string
}

// RetryConfig defines retry behavior for LLM API calls.
// Uses AWS-recommended full-jitter exponential backoff.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialDelay is the base delay before first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration
}

// DefaultRetryConfig returns the retry configuration used when none is given:
// one retry after a short jittered delay. Webhook turns have a hard deadline,
// so the budget is deliberately tight.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:  2,
		InitialDelay: 500 * time.Millisecond,
		MaxDelay:     3 * time.Second,
	}
}
