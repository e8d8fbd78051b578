package nlu

import (
	"context"
	"testing"

	"github.com/campushq/campus-chatbot-go/internal/config"
)

func TestNewClassifierDisabled(t *testing.T) {
	cfg := &config.Config{LLMEnabled: false}

	c, err := NewClassifier(context.Background(), cfg, newTestMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Error("expected nil classifier when LLM is disabled")
	}
}

func TestNewClassifierNoUsableProvider(t *testing.T) {
	cfg := &config.Config{
		LLMEnabled:   true,
		LLMProviders: []string{"gemini", "groq", "cerebras", "bogus"},
		// no API keys configured
	}

	c, err := NewClassifier(context.Background(), cfg, newTestMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c != nil {
		t.Error("expected nil classifier without API keys")
	}
}

func TestNewResponderDisabled(t *testing.T) {
	cfg := &config.Config{LLMEnabled: false}

	r, err := NewResponder(context.Background(), cfg, newTestMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Error("expected nil responder when LLM is disabled")
	}
}

func TestNewResponderNoUsableProvider(t *testing.T) {
	cfg := &config.Config{
		LLMEnabled:   true,
		LLMProviders: []string{"gemini", "groq", "cerebras"},
		// no API keys configured
	}

	r, err := NewResponder(context.Background(), cfg, newTestMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r != nil {
		t.Error("expected nil responder without API keys, not a chain of dead providers")
	}
}

func TestNewClassifierRespectsProviderOrder(t *testing.T) {
	cfg := &config.Config{
		LLMEnabled:   true,
		LLMProviders: []string{"groq", "cerebras"},
		GroqAPIKey:   "test-key",
	}

	c, err := NewClassifier(context.Background(), cfg, newTestMetrics())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c == nil {
		t.Fatal("expected a classifier with a groq key configured")
	}
	t.Cleanup(func() { _ = c.Close() })

	if c.Provider() != ProviderGroq {
		t.Errorf("primary provider = %q, want groq", c.Provider())
	}
}
