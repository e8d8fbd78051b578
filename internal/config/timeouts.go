// Package config provides centralized timeout constants for the application.
//
// These values are tuned based on:
//   - Chat UX expectations (a reply should land within a few seconds)
//   - LLM provider latency (intent classification typically 1-5s, tail up to 15s)
//   - SQLite performance characteristics (WAL mode, busy timeout)
package config

import "time"

// Message processing timeouts
const (
	// MessageProcessing is the timeout for handling a single inbound message.
	// This includes intent classification (one or two LLM calls on fallback),
	// catalog queries, and response formatting.
	MessageProcessing = 30 * time.Second

	// WebhookHTTPRead is the HTTP server read timeout for inbound requests.
	// Chat payloads and Twilio form posts are small.
	WebhookHTTPRead = 10 * time.Second

	// WebhookHTTPWrite is the HTTP server write timeout.
	// Should accommodate MessageProcessing + response serialization.
	WebhookHTTPWrite = 35 * time.Second

	// WebhookHTTPIdle is the HTTP server idle timeout for keep-alive connections.
	WebhookHTTPIdle = 120 * time.Second
)

// LLM timeouts
const (
	// LLMRequest is the timeout for a single LLM API call.
	// Providers typically respond in 1-5s; the budget covers retries
	// without eating the whole message deadline.
	LLMRequest = 15 * time.Second

	// LLMRetryInitial is the initial delay before retrying a failed LLM call.
	// Uses exponential backoff with full jitter.
	LLMRetryInitial = 1 * time.Second
)

// Database timeouts
const (
	// DatabaseBusyTimeout is SQLite busy_timeout pragma value.
	// Handles concurrent write contention during seeding operations.
	DatabaseBusyTimeout = 30 * time.Second

	// DatabaseConnMaxLifetime is the maximum lifetime of database connections.
	// Prevents stale connections and allows connection pool refresh.
	DatabaseConnMaxLifetime = time.Hour
)

// Background job intervals
const (
	// ConversationSweepInterval is how often expired conversation states are
	// evicted from the in-memory store. Redis-backed stores expire via TTL.
	ConversationSweepInterval = 5 * time.Minute

	// MetricsUpdateInterval is how often catalog size metrics are updated.
	MetricsUpdateInterval = 5 * time.Minute

	// RateLimiterCleanupInterval is how often inactive user rate limiters are cleaned.
	RateLimiterCleanupInterval = 5 * time.Minute
)

// Graceful shutdown
const (
	// GracefulShutdown is the timeout for graceful server shutdown.
	// Allows in-flight requests to complete before forceful termination.
	GracefulShutdown = 30 * time.Second
)
