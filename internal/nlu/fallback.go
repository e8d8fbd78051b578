// Package nlu provides LLM-backed intent classification and free-text responses.
// This file contains the provider fallback chains for classification and
// response generation.
package nlu

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/campushq/campus-chatbot-go/internal/metrics"
)

// minCallBudget is the minimum context budget required before attempting
// another provider. Below this the call would almost certainly time out, so
// the chain stops early.
const minCallBudget = 2 * time.Second

// FallbackClassifier tries a chain of classifiers in order. Each provider is
// retried on transient errors per the retry config; quota and permanent
// errors advance to the next provider. It implements the Classifier interface.
type FallbackClassifier struct {
	chain   []Classifier
	retry   RetryConfig
	metrics *metrics.Metrics
}

// NewFallbackClassifier builds a classifier chain. Nil and disabled entries
// are skipped. Returns nil when nothing in the chain is usable.
func NewFallbackClassifier(m *metrics.Metrics, retry RetryConfig, chain ...Classifier) *FallbackClassifier {
	usable := make([]Classifier, 0, len(chain))
	for _, c := range chain {
		if c != nil && c.IsEnabled() {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		return nil
	}
	if retry.MaxAttempts <= 0 {
		retry = DefaultRetryConfig()
	}
	return &FallbackClassifier{chain: usable, retry: retry, metrics: m}
}

// Classify runs the chain until one provider returns a classification.
func (f *FallbackClassifier) Classify(ctx context.Context, text string) (*Classification, error) {
	if f == nil || len(f.chain) == 0 {
		return nil, errors.New("no classifier available")
	}

	var lastErr error
	for i, c := range f.chain {
		if i > 0 && !HasSufficientBudget(ctx, minCallBudget) {
			slog.WarnContext(ctx, "skipping fallback classifier, insufficient time budget",
				"provider", c.Provider())
			break
		}

		result, err := f.classifyOnce(ctx, c, text)
		if err == nil {
			if i > 0 {
				f.metrics.RecordIntentFallback(c.Provider().String())
				slog.InfoContext(ctx, "fallback classifier succeeded",
					"provider", c.Provider(),
					"position", i)
			}
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.WarnContext(ctx, "classifier provider failed, trying next",
			"provider", c.Provider(),
			"position", i,
			"error", err)
	}

	return nil, fmt.Errorf("all classifiers failed: %w", lastErr)
}

// classifyOnce runs one provider with retry, recording a metric per attempt.
func (f *FallbackClassifier) classifyOnce(ctx context.Context, c Classifier, text string) (*Classification, error) {
	var result *Classification

	err := WithRetry(ctx, f.retry,
		func(attempt int, err error) {
			slog.DebugContext(ctx, "retrying classifier",
				"provider", c.Provider(),
				"attempt", attempt,
				"error", err)
		},
		func() error {
			start := time.Now()
			r, err := c.Classify(ctx, text)
			f.metrics.RecordLLMRequest(c.Provider().String(), "classify", statusLabel(err), time.Since(start).Seconds())
			if err != nil {
				return err
			}
			result = r
			return nil
		})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// IsEnabled returns true if at least one classifier is usable.
func (f *FallbackClassifier) IsEnabled() bool {
	return f != nil && len(f.chain) > 0
}

// Provider returns the primary provider in the chain.
func (f *FallbackClassifier) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close closes every classifier in the chain, returning the first error.
func (f *FallbackClassifier) Close() error {
	if f == nil {
		return nil
	}
	var firstErr error
	for _, c := range f.chain {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// FallbackResponder tries a chain of responders in order. Unlike the
// classifier chain it does not retry within a provider; a free-text reply is
// a nicety and the caller has a static fallback, so one attempt per provider
// keeps the turn fast. It implements the Responder interface.
type FallbackResponder struct {
	chain   []Responder
	metrics *metrics.Metrics
}

// NewFallbackResponder builds a responder chain. Nil and disabled entries
// are skipped; the IsEnabled check also filters typed-nil concrete pointers,
// which an interface comparison alone would let through. Returns nil when
// nothing in the chain is usable.
func NewFallbackResponder(m *metrics.Metrics, chain ...Responder) *FallbackResponder {
	usable := make([]Responder, 0, len(chain))
	for _, r := range chain {
		if r != nil && r.IsEnabled() {
			usable = append(usable, r)
		}
	}
	if len(usable) == 0 {
		return nil
	}
	return &FallbackResponder{chain: usable, metrics: m}
}

// Respond runs the chain until one provider returns a non-empty reply.
func (f *FallbackResponder) Respond(ctx context.Context, prompt string) (string, error) {
	if f == nil || len(f.chain) == 0 {
		return "", errors.New("no responder available")
	}

	var lastErr error
	for i, r := range f.chain {
		if i > 0 && !HasSufficientBudget(ctx, minCallBudget) {
			break
		}

		start := time.Now()
		reply, err := r.Respond(ctx, prompt)
		f.metrics.RecordLLMRequest(r.Provider().String(), "respond", statusLabel(err), time.Since(start).Seconds())
		if err == nil {
			return reply, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			return "", ctx.Err()
		}
	}

	return "", fmt.Errorf("all responders failed: %w", lastErr)
}

// IsEnabled returns true if at least one responder is usable.
func (f *FallbackResponder) IsEnabled() bool {
	return f != nil && len(f.chain) > 0
}

// Provider returns the primary provider in the chain.
func (f *FallbackResponder) Provider() Provider {
	if f == nil || len(f.chain) == 0 {
		return ""
	}
	return f.chain[0].Provider()
}

// Close closes every responder in the chain, returning the first error.
func (f *FallbackResponder) Close() error {
	if f == nil {
		return nil
	}
	var firstErr error
	for _, r := range f.chain {
		if err := r.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func statusLabel(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}
