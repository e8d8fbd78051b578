package ratelimit

import (
	"sync"
	"time"
)

// PerKeyLimiterConfig sets the bucket shape shared by every key.
type PerKeyLimiterConfig struct {
	MaxTokens     float64       // burst capacity per key
	RefillRate    float64       // tokens restored per second
	CleanupPeriod time.Duration // sweep interval for idle buckets
}

// PerKeyLimiter keeps one token bucket per key, usually a user ID, creating
// buckets lazily and sweeping away the ones that have refilled completely. An
// empty key bypasses limiting so callers without an identity are not all
// funneled into one shared bucket.
type PerKeyLimiter struct {
	mu       sync.RWMutex
	buckets  map[string]*Limiter
	config   PerKeyLimiterConfig
	onDrop   func()
	onUpdate func(count int)
	stopCh   chan struct{}
}

// NewPerKeyLimiter starts a limiter and its background sweeper. Call Stop
// when done to release the goroutine.
func NewPerKeyLimiter(cfg PerKeyLimiterConfig) *PerKeyLimiter {
	l := &PerKeyLimiter{
		buckets: make(map[string]*Limiter),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}

	go l.sweepLoop()

	return l
}

// OnDrop registers a callback fired each time a request is rejected.
// The webhook layer uses it to count drops in Prometheus.
func (l *PerKeyLimiter) OnDrop(fn func()) {
	l.onDrop = fn
}

// OnUpdate registers a callback fired after each sweep with the number of
// buckets still live.
func (l *PerKeyLimiter) OnUpdate(fn func(count int)) {
	l.onUpdate = fn
}

// Allow spends a token from key's bucket, creating the bucket on first use.
func (l *PerKeyLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()

	if !ok {
		l.mu.Lock()
		bucket, ok = l.buckets[key]
		if !ok {
			bucket = New(l.config.MaxTokens, l.config.RefillRate)
			l.buckets[key] = bucket
		}
		l.mu.Unlock()
	}

	allowed := bucket.Allow()
	if !allowed && l.onDrop != nil {
		l.onDrop()
	}
	return allowed
}

// GetAvailable returns how many tokens key has left. Keys without a bucket
// report the full burst capacity.
func (l *PerKeyLimiter) GetAvailable(key string) float64 {
	if key == "" {
		return l.config.MaxTokens
	}

	l.mu.RLock()
	bucket, ok := l.buckets[key]
	l.mu.RUnlock()

	if !ok {
		return l.config.MaxTokens
	}
	return bucket.Available()
}

// GetActiveCount returns the number of live buckets.
func (l *PerKeyLimiter) GetActiveCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.buckets)
}

// sweepLoop drops buckets that have refilled to capacity. A full bucket
// carries no state worth keeping, so recreating it later is free.
func (l *PerKeyLimiter) sweepLoop() {
	period := l.config.CleanupPeriod
	if period <= 0 {
		period = 5 * time.Minute
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.mu.Lock()
			for key, bucket := range l.buckets {
				if bucket.IsFull() {
					delete(l.buckets, key)
				}
			}
			remaining := len(l.buckets)
			l.mu.Unlock()

			if l.onUpdate != nil {
				l.onUpdate(remaining)
			}
		}
	}
}

// Stop terminates the sweeper. Safe to call more than once.
func (l *PerKeyLimiter) Stop() {
	select {
	case <-l.stopCh:
	default:
		close(l.stopCh)
	}
}
