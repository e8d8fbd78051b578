// Package ctxutil stores the per-message tracing values, user ID, channel
// and request ID, in a context.Context under unexported key types. The
// logger's ContextHandler reads them back so every log line in a request
// carries the same identifiers.
package ctxutil

import (
	"context"
)

type contextKey string

const (
	userIDKey    contextKey = "ctxutil.userID"
	channelKey   contextKey = "ctxutil.channel"
	requestIDKey contextKey = "ctxutil.requestID"
)

// WithUserID records the conversation owner. The rate limiters and the
// dialogue store key their state on this value.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// GetUserID returns the user ID, or "" when none was set.
func GetUserID(ctx context.Context) string {
	if v, ok := ctx.Value(userIDKey).(string); ok {
		return v
	}
	return ""
}

// MustGetUserID returns the user ID or panics. Only for code behind the
// webhook layer, where the value is always present.
func MustGetUserID(ctx context.Context) string {
	userID, ok := ctx.Value(userIDKey).(string)
	if !ok || userID == "" {
		panic("ctxutil: userID not found")
	}
	return userID
}

// WithChannel records the inbound channel, "web" or "whatsapp".
func WithChannel(ctx context.Context, channel string) context.Context {
	return context.WithValue(ctx, channelKey, channel)
}

// GetChannel returns the channel name, or "" when none was set.
func GetChannel(ctx context.Context) string {
	if v, ok := ctx.Value(channelKey).(string); ok {
		return v
	}
	return ""
}

// WithRequestID records the per-message ID used to correlate log lines.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// GetRequestID returns the request ID and whether one was set.
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(requestIDKey).(string)
	return requestID, ok
}

// MustGetRequestID returns the request ID or panics.
func MustGetRequestID(ctx context.Context) string {
	requestID, ok := ctx.Value(requestIDKey).(string)
	if !ok || requestID == "" {
		panic("ctxutil: requestID not found")
	}
	return requestID
}

// PreserveTracing copies the tracing values onto a fresh background context.
// Work that outlives the HTTP request, like processing after the Twilio
// acknowledgment, keeps its identifiers without inheriting the request's
// cancellation or pinning its value chain in memory.
func PreserveTracing(ctx context.Context) context.Context {
	detached := context.Background()

	if userID := GetUserID(ctx); userID != "" {
		detached = WithUserID(detached, userID)
	}
	if channel := GetChannel(ctx); channel != "" {
		detached = WithChannel(detached, channel)
	}
	if requestID, ok := GetRequestID(ctx); ok && requestID != "" {
		detached = WithRequestID(detached, requestID)
	}

	return detached
}
