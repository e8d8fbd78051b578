package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func newTestKeyedLimiter(t *testing.T, cfg KeyedConfig) *KeyedLimiter {
	t.Helper()
	kl := NewKeyedLimiter(cfg)
	t.Cleanup(kl.Stop)
	return kl
}

func TestKeyedLimiterBucketsPerKey(t *testing.T) {
	t.Parallel()
	kl := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         1,
		RefillRate:    0,
		CleanupPeriod: time.Hour,
	})

	if !kl.Allow("alice") {
		t.Fatal("alice's first call should pass")
	}
	if kl.Allow("alice") {
		t.Error("alice's second call should hit the burst cap")
	}
	if !kl.Allow("bob") {
		t.Error("bob has his own bucket and should pass")
	}
}

func TestKeyedLimiterSweepsIdleEntries(t *testing.T) {
	t.Parallel()
	kl := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         10,
		RefillRate:    100, // refill fast so the entry turns idle
		CleanupPeriod: 50 * time.Millisecond,
	})

	kl.Allow("alice")
	if got := kl.GetActiveCount(); got != 1 {
		t.Fatalf("active entries = %d, want 1", got)
	}

	time.Sleep(200 * time.Millisecond)

	if got := kl.GetActiveCount(); got != 0 {
		t.Errorf("active entries after sweep = %d, want 0", got)
	}
}

func TestKeyedLimiterSweepKeepsDailyState(t *testing.T) {
	t.Parallel()
	kl := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         10,
		RefillRate:    100,
		CleanupPeriod: 50 * time.Millisecond,
		DailyLimit:    5,
	})

	kl.Allow("alice")

	// The bucket refills within the sweep interval, but the daily window
	// still counts the call, so the entry must survive.
	time.Sleep(200 * time.Millisecond)

	if got := kl.GetActiveCount(); got != 1 {
		t.Errorf("active entries = %d, want 1 while daily usage remains", got)
	}
	if left := kl.GetDailyRemaining("alice"); left != 4 {
		t.Errorf("daily remaining = %d, want 4", left)
	}
}

func TestKeyedLimiterDailyCapBlocksWithFullBucket(t *testing.T) {
	t.Parallel()
	kl := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         100,
		RefillRate:    100,
		CleanupPeriod: time.Hour,
		DailyLimit:    2,
	})

	kl.Allow("alice")
	kl.Allow("alice")
	if kl.Allow("alice") {
		t.Error("third call should be stopped by the daily cap, not the bucket")
	}
	if kl.GetAvailable("alice") < 90 {
		t.Error("the rejected call must not charge the bucket")
	}
}

func TestKeyedLimiterGetAvailable(t *testing.T) {
	t.Parallel()
	kl := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         10,
		RefillRate:    0,
		CleanupPeriod: time.Hour,
	})

	if got := kl.GetAvailable("nobody"); got != 10 {
		t.Errorf("unknown key available = %f, want full burst", got)
	}

	kl.Allow("alice")
	if got := kl.GetAvailable("alice"); got != 9 {
		t.Errorf("available after one call = %f, want 9", got)
	}
}

func TestKeyedLimiterDailyRemaining(t *testing.T) {
	t.Parallel()
	kl := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         10,
		RefillRate:    1,
		CleanupPeriod: time.Hour,
		DailyLimit:    5,
	})

	if got := kl.GetDailyRemaining("alice"); got != 5 {
		t.Errorf("fresh key daily remaining = %d, want 5", got)
	}
	kl.Allow("alice")
	if got := kl.GetDailyRemaining("alice"); got != 4 {
		t.Errorf("daily remaining after one call = %d, want 4", got)
	}

	uncapped := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         10,
		CleanupPeriod: time.Hour,
	})
	if got := uncapped.GetDailyRemaining("alice"); got != -1 {
		t.Errorf("remaining without a daily cap = %d, want -1", got)
	}
}

func TestKeyedLimiterConcurrentAccess(t *testing.T) {
	t.Parallel()
	kl := newTestKeyedLimiter(t, KeyedConfig{
		Name:          "llm",
		Burst:         1000,
		RefillRate:    1,
		CleanupPeriod: time.Hour,
	})

	var wg sync.WaitGroup
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("user%d", i%10)
			kl.Allow(key)
			kl.GetAvailable(key)
		}(i)
	}
	wg.Wait()
}
