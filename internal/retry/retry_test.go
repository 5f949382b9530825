package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestDoStopsAfterAttemptBudget(t *testing.T) {
	boom := errors.New("boom")
	calls := 0

	policy := Policy{Attempts: 3, Delay: 10 * time.Millisecond}
	start := time.Now()
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		return boom
	})
	elapsed := time.Since(start)

	if calls != 3 {
		t.Fatalf("expected 3 attempts, got %d", calls)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected final error to surface, got %v", err)
	}
	if elapsed < 20*time.Millisecond {
		t.Fatalf("expected two waits between attempts, elapsed %v", elapsed)
	}
}

func TestDoReturnsOnFirstSuccess(t *testing.T) {
	calls := 0
	policy := Policy{Attempts: 3, Delay: time.Hour}
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected a single attempt, got %d", calls)
	}
}

func TestDoSucceedsMidway(t *testing.T) {
	calls := 0
	policy := Policy{Attempts: 3, Delay: time.Millisecond}
	err := policy.Do(context.Background(), func(context.Context) error {
		calls++
		if calls < 2 {
			return errors.New("transient")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestDoHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	policy := Policy{Attempts: 5, Delay: time.Hour}
	err := policy.Do(ctx, func(context.Context) error {
		cancel()
		return errors.New("transient")
	})

	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
