package logger

import (
	"context"
	"log/slog"

	"github.com/campushq/campus-chatbot-go/internal/ctxutil"
)

// ContextHandler lifts the tracing values the webhook layer stores in the
// request context (user ID, channel, request ID) onto every record logged
// through it. Call sites then just use the *Context logging methods instead
// of threading those fields by hand.
type ContextHandler struct {
	next slog.Handler
}

// NewContextHandler wraps next with context value extraction.
func NewContextHandler(next slog.Handler) *ContextHandler {
	return &ContextHandler{next: next}
}

// Enabled defers to the wrapped handler.
func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.next.Enabled(ctx, level)
}

// Handle adds user_id, channel and request_id from ctx when present, then
// passes the record on. Empty values are left out rather than logged as "".
func (h *ContextHandler) Handle(ctx context.Context, r slog.Record) error {
	if userID := ctxutil.GetUserID(ctx); userID != "" {
		r.AddAttrs(slog.String("user_id", userID))
	}
	if channel := ctxutil.GetChannel(ctx); channel != "" {
		r.AddAttrs(slog.String("channel", channel))
	}
	if requestID, ok := ctxutil.GetRequestID(ctx); ok && requestID != "" {
		r.AddAttrs(slog.String("request_id", requestID))
	}
	return h.next.Handle(ctx, r)
}

// WithAttrs applies the attributes to the wrapped handler.
func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{next: h.next.WithAttrs(attrs)}
}

// WithGroup applies the group to the wrapped handler.
func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{next: h.next.WithGroup(name)}
}
