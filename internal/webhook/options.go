package webhook

import (
	"time"

	twilioclient "github.com/twilio/twilio-go/client"

	"github.com/campushq/campus-chatbot-go/internal/ratelimit"
)

// HandlerOption is a functional option for configuring Handler.
type HandlerOption func(*Handler)

// WithUserRateLimiter sets the per-user message rate limiter. Without it
// every request is allowed through.
func WithUserRateLimiter(limiter *ratelimit.UserRateLimiter) HandlerOption {
	return func(h *Handler) {
		h.userLimiter = limiter
	}
}

// WithMessageTimeout overrides how long one inbound message may take
// end to end, classification and catalog queries included.
func WithMessageTimeout(timeout time.Duration) HandlerOption {
	return func(h *Handler) {
		h.messageTimeout = timeout
	}
}

// WithMaxMessageLength overrides the inbound message length cap in runes.
func WithMaxMessageLength(n int) HandlerOption {
	return func(h *Handler) {
		if n > 0 {
			h.maxMessageLength = n
		}
	}
}

// WithTwilioValidation enables X-Twilio-Signature verification using the
// account auth token. Requests that fail validation get a 403.
func WithTwilioValidation(authToken string) HandlerOption {
	return func(h *Handler) {
		validator := twilioclient.NewRequestValidator(authToken)
		h.twilioValidator = &validator
	}
}
