package ratelimit

import (
	"time"

	"github.com/campushq/campus-chatbot-go/internal/metrics"
)

// UserRateLimiter caps inbound messages per user ahead of any dialogue
// processing. It is a PerKeyLimiter bound to the "user" metrics label, so
// drops and active user counts show up in Prometheus without each webhook
// handler wiring callbacks itself.
type UserRateLimiter struct {
	keyed     *PerKeyLimiter
	maxTokens float64
}

// NewUserRateLimiter builds the limiter. Call Stop on shutdown to release
// the sweeper goroutine.
func NewUserRateLimiter(maxTokens, refillRate float64, cleanup time.Duration, m *metrics.Metrics) *UserRateLimiter {
	u := &UserRateLimiter{
		maxTokens: maxTokens,
		keyed: NewPerKeyLimiter(PerKeyLimiterConfig{
			MaxTokens:     maxTokens,
			RefillRate:    refillRate,
			CleanupPeriod: cleanup,
		}),
	}

	if m != nil {
		u.keyed.OnDrop(func() {
			m.RecordRateLimiterDrop("user")
		})
		u.keyed.OnUpdate(func(count int) {
			m.SetRateLimiterUsers("user", count)
		})
	}

	return u
}

// Allow spends one message token for userID.
func (u *UserRateLimiter) Allow(userID string) bool {
	return u.keyed.Allow(userID)
}

// GetAvailable returns userID's remaining message tokens.
func (u *UserRateLimiter) GetAvailable(userID string) float64 {
	if userID == "" {
		return u.maxTokens
	}
	return u.keyed.GetAvailable(userID)
}

// GetActiveCount returns how many users currently hold limiter state.
func (u *UserRateLimiter) GetActiveCount() int {
	return u.keyed.GetActiveCount()
}

// Stop terminates the sweeper. Safe to call more than once.
func (u *UserRateLimiter) Stop() {
	u.keyed.Stop()
}
