// Package sentry wraps the Sentry SDK behind the small surface the chatbot
// needs. An empty DSN keeps the whole package inert, so local runs need no
// special casing at call sites.
package sentry

import (
	"context"
	"time"

	"github.com/getsentry/sentry-go"
)

// Config is the subset of Sentry client options read from the environment.
type Config struct {
	// DSN is the project DSN. Empty disables Sentry.
	DSN string

	// Environment tags events, for example "production" or "staging".
	Environment string

	// Release is the deployed version, usually from buildinfo.
	Release string

	// SampleRate is the error sampling fraction. Zero means sample all.
	SampleRate float64

	// TracesSampleRate is the performance trace sampling fraction.
	TracesSampleRate float64

	// Debug turns on SDK debug output.
	Debug bool
}

// Initialize configures the global Sentry client. With an empty DSN it does
// nothing and every capture becomes a no-op.
func Initialize(cfg Config) error {
	if cfg.DSN == "" {
		return nil
	}

	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 1.0
	}

	return sentry.Init(sentry.ClientOptions{
		Dsn:              cfg.DSN,
		Environment:      cfg.Environment,
		Release:          cfg.Release,
		SampleRate:       sampleRate,
		TracesSampleRate: cfg.TracesSampleRate,
		Debug:            cfg.Debug,
		AttachStacktrace: true,
	})
}

// Flush blocks until buffered events are delivered or timeout passes.
// Called during shutdown so in-flight reports are not lost.
func Flush(timeout time.Duration) bool {
	return sentry.Flush(timeout)
}

// IsEnabled reports whether a client was initialized.
func IsEnabled() bool {
	return sentry.CurrentHub().Client() != nil
}

// CaptureException reports err on the current hub.
func CaptureException(err error) {
	sentry.CaptureException(err)
}

// CaptureExceptionWithContext reports err on the request-scoped hub when the
// sentrygin middleware put one in ctx, falling back to the current hub.
func CaptureExceptionWithContext(ctx context.Context, err error) {
	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	hub.CaptureException(err)
}

// CaptureMessage reports a plain message event.
func CaptureMessage(message string) {
	sentry.CaptureMessage(message)
}
