package ratelimit

import (
	"sync"
	"time"
)

// SlidingWindowCounter enforces a long-horizon request cap, such as a daily
// LLM budget, without storing per-request timestamps. It keeps only two
// counters, the current fixed window and the one before it, and estimates the
// rolling total by weighting the previous window with how much of it still
// overlaps the sliding window:
//
//	effective = curr + prev * (window - elapsed) / window
//
// The estimate smooths the boundary between windows so a user cannot burn a
// whole day's quota at 23:59 and again at 00:01. A nil counter is a valid
// receiver and means no limit.
type SlidingWindowCounter struct {
	mu          sync.Mutex
	curr        int
	prev        int
	windowStart time.Time
	window      time.Duration
	limit       int
}

// NewSlidingWindowCounter returns a counter capping requests at limit per
// window. A limit of zero or less disables the cap by returning nil, which
// every method accepts.
func NewSlidingWindowCounter(limit int, window time.Duration) *SlidingWindowCounter {
	if limit <= 0 {
		return nil
	}
	return &SlidingWindowCounter{
		windowStart: time.Now(),
		window:      window,
		limit:       limit,
	}
}

// Allow records a request if the estimated rolling count is under the limit.
func (c *SlidingWindowCounter) Allow() bool {
	if c == nil {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	if c.weighted() >= float64(c.limit) {
		return false
	}
	c.curr++
	return true
}

// Check reports whether a request would currently pass, without recording it.
// KeyedLimiter pairs it with Consume so the daily window and the token bucket
// are charged together or not at all.
func (c *SlidingWindowCounter) Check() bool {
	if c == nil {
		return true
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	return c.weighted() < float64(c.limit)
}

// Consume records a request after a successful Check. It re-verifies the
// limit in case the window rotated between the two calls.
func (c *SlidingWindowCounter) Consume() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	if c.weighted() < float64(c.limit) {
		c.curr++
	}
}

// rotate shifts the counters forward when the current window has ended.
// Callers hold c.mu.
func (c *SlidingWindowCounter) rotate() {
	elapsed := time.Since(c.windowStart)
	if elapsed < c.window {
		return
	}

	steps := int(elapsed / c.window)
	if steps == 1 {
		c.prev = c.curr
	} else {
		// Idle for more than a full window, nothing left to weight.
		c.prev = 0
	}
	c.curr = 0
	c.windowStart = c.windowStart.Add(time.Duration(steps) * c.window)
}

// weighted returns the overlap-weighted rolling count. Callers hold c.mu.
func (c *SlidingWindowCounter) weighted() float64 {
	ratio := float64(c.window-time.Since(c.windowStart)) / float64(c.window)
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return float64(c.curr) + float64(c.prev)*ratio
}

// GetEffectiveCount exposes the weighted count for metrics and debugging.
func (c *SlidingWindowCounter) GetEffectiveCount() float64 {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	return c.weighted()
}

// GetRemaining returns the approximate quota left, or -1 when unlimited.
func (c *SlidingWindowCounter) GetRemaining() int {
	if c == nil {
		return -1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	left := float64(c.limit) - c.weighted()
	if left < 0 {
		return 0
	}
	return int(left)
}

// IsFull reports whether the cap is currently reached.
func (c *SlidingWindowCounter) IsFull() bool {
	if c == nil {
		return false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.rotate()
	return c.weighted() >= float64(c.limit)
}
