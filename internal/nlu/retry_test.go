package nlu

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff(t *testing.T) {
	tests := []struct {
		name        string
		attempt     int
		initial     time.Duration
		max         time.Duration
		maxExpected time.Duration
	}{
		{"first attempt no delay", 0, time.Second, 10 * time.Second, 0},
		{"negative attempt", -1, time.Second, 10 * time.Second, 0},
		{"first retry", 1, time.Second, 10 * time.Second, time.Second},
		{"second retry doubles", 2, time.Second, 10 * time.Second, 2 * time.Second},
		{"capped at max", 10, time.Second, 5 * time.Second, 5 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Full jitter is random, so sample a few draws against the bound.
			for i := 0; i < 20; i++ {
				got := CalculateBackoff(tt.attempt, tt.initial, tt.max)
				if got < 0 || got > tt.maxExpected {
					t.Fatalf("backoff %v outside [0, %v]", got, tt.maxExpected)
				}
			}
		})
	}
}

func TestWithRetrySucceedsAfterTransientError(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	err := WithRetry(context.Background(), cfg, nil, func() error {
		calls++
		if calls < 2 {
			return errors.New("503 service unavailable")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
}

func TestWithRetryStopsOnPermanentError(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	err := WithRetry(context.Background(), cfg, nil, func() error {
		calls++
		return errors.New("401 unauthorized")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no retry on permanent error)", calls)
	}
}

func TestWithRetryStopsOnQuotaError(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	calls := 0
	err := WithRetry(context.Background(), cfg, nil, func() error {
		calls++
		return errors.New("quota exceeded")
	})
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (quota goes straight to fallback)", calls)
	}
}

func TestWithRetryExhaustsAttempts(t *testing.T) {
	cfg := RetryConfig{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}

	retries := 0
	calls := 0
	err := WithRetry(context.Background(), cfg,
		func(attempt int, err error) { retries++ },
		func() error {
			calls++
			return errors.New("503 service unavailable")
		})
	if err == nil {
		t.Fatal("expected error after exhausting attempts")
	}
	if calls != 2 {
		t.Errorf("calls = %d, want 2", calls)
	}
	if retries != 1 {
		t.Errorf("onRetry called %d times, want 1", retries)
	}
}

func TestWithRetryRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := WithRetry(ctx, DefaultRetryConfig(), nil, func() error {
		calls++
		return nil
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if calls != 0 {
		t.Errorf("fn should not run with cancelled context, ran %d times", calls)
	}
}

func TestHasSufficientBudget(t *testing.T) {
	if !HasSufficientBudget(context.Background(), time.Hour) {
		t.Error("no deadline should mean unlimited budget")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	if !HasSufficientBudget(ctx, 10*time.Millisecond) {
		t.Error("expected budget for a short operation")
	}
	if HasSufficientBudget(ctx, time.Minute) {
		t.Error("expected insufficient budget for a long operation")
	}
}

func TestSleepRespectsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := Sleep(ctx, time.Second); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if err := Sleep(context.Background(), 0); err != nil {
		t.Fatalf("zero sleep should not error, got %v", err)
	}
}
