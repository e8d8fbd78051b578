package ratelimit

import (
	"sync"
	"time"

	"github.com/campushq/campus-chatbot-go/internal/metrics"
)

// KeyedConfig configures a KeyedLimiter.
type KeyedConfig struct {
	// Name labels this limiter in metrics, for example "llm".
	Name string

	Burst      float64 // token bucket capacity per key
	RefillRate float64 // tokens restored per second

	// DailyLimit adds a rolling 24h cap on top of the bucket. Zero
	// disables it.
	DailyLimit int

	CleanupPeriod time.Duration

	// Metrics, when set, records drops and active key counts.
	Metrics *metrics.Metrics
}

// KeyedLimiter combines a short-horizon token bucket with an optional rolling
// daily cap, tracked per key. It backs the per-user LLM budget: the bucket
// stops rapid-fire model calls and the daily window bounds total spend.
type KeyedLimiter struct {
	mu       sync.RWMutex
	entries  map[string]*keyedEntry
	config   KeyedConfig
	onDrop   func()
	onUpdate func(count int)
	stopCh   chan struct{}
}

// keyedEntry is one key's state. Its mutex makes the check of both layers and
// the consume of both layers a single step, so two concurrent requests cannot
// both pass the checks and overdraw a layer.
type keyedEntry struct {
	mu     sync.Mutex
	bucket *Limiter
	daily  *SlidingWindowCounter
}

// NewKeyedLimiter starts the limiter and its sweeper goroutine. Call Stop to
// release the goroutine.
func NewKeyedLimiter(cfg KeyedConfig) *KeyedLimiter {
	kl := &KeyedLimiter{
		entries: make(map[string]*keyedEntry),
		config:  cfg,
		stopCh:  make(chan struct{}),
	}

	if cfg.Metrics != nil {
		kl.onDrop = func() {
			cfg.Metrics.RecordRateLimiterDrop(cfg.Name)
		}
		kl.onUpdate = func(count int) {
			cfg.Metrics.SetRateLimiterUsers(cfg.Name, count)
		}
	}

	go kl.sweepLoop()

	return kl
}

// Allow reports whether key may proceed, charging both layers on success.
// Requests without a key always pass.
func (kl *KeyedLimiter) Allow(key string) bool {
	if key == "" {
		return true
	}

	entry := kl.entry(key)

	entry.mu.Lock()
	defer entry.mu.Unlock()

	// Check both layers first so a request rejected by one never charges
	// the other.
	if entry.daily != nil && !entry.daily.Check() {
		if kl.onDrop != nil {
			kl.onDrop()
		}
		return false
	}
	if !entry.bucket.Check() {
		if kl.onDrop != nil {
			kl.onDrop()
		}
		return false
	}

	if entry.daily != nil {
		entry.daily.Consume()
	}
	entry.bucket.Consume()

	return true
}

func (kl *KeyedLimiter) entry(key string) *keyedEntry {
	kl.mu.RLock()
	e, ok := kl.entries[key]
	kl.mu.RUnlock()
	if ok {
		return e
	}

	kl.mu.Lock()
	defer kl.mu.Unlock()

	if e, ok = kl.entries[key]; ok {
		return e
	}
	e = &keyedEntry{
		bucket: New(kl.config.Burst, kl.config.RefillRate),
		daily:  NewSlidingWindowCounter(kl.config.DailyLimit, 24*time.Hour),
	}
	kl.entries[key] = e
	return e
}

// GetAvailable returns key's remaining bucket tokens, or the full burst when
// the key has no state yet.
func (kl *KeyedLimiter) GetAvailable(key string) float64 {
	if key == "" {
		return kl.config.Burst
	}

	kl.mu.RLock()
	e, ok := kl.entries[key]
	kl.mu.RUnlock()

	if !ok {
		return kl.config.Burst
	}
	return e.bucket.Available()
}

// GetDailyRemaining returns key's remaining daily quota, or -1 when no daily
// cap is configured.
func (kl *KeyedLimiter) GetDailyRemaining(key string) int {
	if kl.config.DailyLimit <= 0 {
		return -1
	}

	kl.mu.RLock()
	e, ok := kl.entries[key]
	kl.mu.RUnlock()

	if !ok {
		return kl.config.DailyLimit
	}
	return e.daily.GetRemaining()
}

// GetActiveCount returns the number of keys with live state.
func (kl *KeyedLimiter) GetActiveCount() int {
	kl.mu.RLock()
	defer kl.mu.RUnlock()
	return len(kl.entries)
}

// sweepLoop reaps idle entries. An entry is idle only when its bucket has
// refilled and its daily window carries no weight, otherwise deleting it
// would hand the user a fresh daily quota.
func (kl *KeyedLimiter) sweepLoop() {
	period := kl.config.CleanupPeriod
	if period <= 0 {
		period = 5 * time.Minute
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		select {
		case <-kl.stopCh:
			return
		case <-ticker.C:
			kl.mu.Lock()
			for key, e := range kl.entries {
				if e.bucket.IsFull() && e.daily.GetEffectiveCount() == 0 {
					delete(kl.entries, key)
				}
			}
			remaining := len(kl.entries)
			kl.mu.Unlock()

			if kl.onUpdate != nil {
				kl.onUpdate(remaining)
			}
		}
	}
}

// Stop terminates the sweeper. Safe to call more than once.
func (kl *KeyedLimiter) Stop() {
	select {
	case <-kl.stopCh:
	default:
		close(kl.stopCh)
	}
}
