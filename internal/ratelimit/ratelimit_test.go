package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"
)

func TestBucketStartsFull(t *testing.T) {
	t.Parallel()
	l := New(5, 0)

	for i := 0; i < 5; i++ {
		if !l.Allow() {
			t.Fatalf("request %d should pass on a full bucket", i)
		}
	}
	if l.Allow() {
		t.Error("sixth request should be dropped, bucket is empty")
	}
}

func TestZeroRefillNeverRecovers(t *testing.T) {
	t.Parallel()
	l := New(1, 0)

	l.Allow()
	time.Sleep(20 * time.Millisecond)
	if l.Allow() {
		t.Error("zero refill rate must behave as a hard cap")
	}
}

func TestRefillRestoresTokens(t *testing.T) {
	t.Parallel()
	l := New(1, 100) // 1 token every 10ms

	if !l.Allow() {
		t.Fatal("first request should pass")
	}
	time.Sleep(30 * time.Millisecond)
	if !l.Allow() {
		t.Error("bucket should have refilled")
	}
}

func TestRefillCapsAtBurst(t *testing.T) {
	t.Parallel()
	l := New(3, 1000)

	time.Sleep(20 * time.Millisecond)
	if got := l.Available(); got > 3 {
		t.Errorf("available = %v, refill must cap at capacity 3", got)
	}
}

func TestCheckDoesNotSpend(t *testing.T) {
	t.Parallel()
	l := New(1, 0)

	if !l.Check() {
		t.Fatal("token should be available")
	}
	if !l.Check() {
		t.Error("Check must not consume")
	}
	l.Consume()
	if l.Check() {
		t.Error("Consume should have spent the only token")
	}
}

func TestWaitAcquiresWhenRefilled(t *testing.T) {
	t.Parallel()
	l := New(1, 50) // 20ms per token
	l.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := l.Wait(ctx); err != nil {
		t.Errorf("Wait should acquire after refill, got %v", err)
	}
}

func TestWaitHonorsContext(t *testing.T) {
	t.Parallel()
	l := New(1, 0.001)
	l.Allow()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Wait(ctx); err != context.DeadlineExceeded {
		t.Errorf("err = %v, want DeadlineExceeded", err)
	}
}

func TestResetRefills(t *testing.T) {
	t.Parallel()
	l := New(2, 0)
	l.Allow()
	l.Allow()

	l.Reset()
	if !l.IsFull() {
		t.Error("Reset should refill to capacity")
	}
}

func TestConcurrentAllowNeverOverspends(t *testing.T) {
	t.Parallel()
	const capacity = 50
	l := New(capacity, 0)

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowed := 0
	for i := 0; i < 4*capacity; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow() {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if allowed != capacity {
		t.Errorf("allowed = %d, want exactly %d", allowed, capacity)
	}
}
