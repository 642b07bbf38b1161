package retry

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testRunner() *Runner {
	return NewRunner(Config{
		Base: 1 * time.Millisecond,
		Cap:  5 * time.Millisecond,
	}, nil)
}

func TestDo_SucceedsFirstAttempt(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), testRunner(), "fetch", 3, func(context.Context) (int, error) {
		calls++
		return 42, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
}

func TestDo_TransientThenSuccess(t *testing.T) {
	calls := 0
	got, err := Do(context.Background(), testRunner(), "fetch", 3, func(context.Context) (string, error) {
		calls++
		if calls < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "ok" {
		t.Fatalf("expected ok, got %q", got)
	}
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
}

func TestDo_ExhaustionWrapsWithAttemptCount(t *testing.T) {
	base := errors.New("down")
	calls := 0
	_, err := Do(context.Background(), testRunner(), "fetch", 3, func(context.Context) (int, error) {
		calls++
		return 0, base
	})
	if calls != 3 {
		t.Fatalf("expected 3 calls, got %d", calls)
	}
	var exh *ExhaustedError
	if !errors.As(err, &exh) {
		t.Fatalf("expected ExhaustedError, got %T", err)
	}
	if exh.Attempts != 3 {
		t.Fatalf("expected 3 attempts recorded, got %d", exh.Attempts)
	}
	if !errors.Is(err, base) {
		t.Fatal("wrapped error lost the original cause")
	}
}

func TestDo_NonRetryablePreservesIdentity(t *testing.T) {
	sentinel := errors.New("course has no units")
	calls := 0
	_, err := Do(context.Background(), testRunner(), "discover", 5, func(context.Context) (int, error) {
		calls++
		return 0, NonRetryable(sentinel)
	})
	if calls != 1 {
		t.Fatalf("expected 1 call, got %d", calls)
	}
	// The tag must be stripped: the caller sees the original error value.
	if err != sentinel {
		t.Fatalf("expected the sentinel error itself, got %v", err)
	}
}

func TestDo_ContextCancellationAbortsWait(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Do(ctx, testRunner(), "fetch", 10, func(context.Context) (int, error) {
		return 0, errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBackoff_DoublesAndCaps(t *testing.T) {
	r := NewRunner(Config{Base: 1 * time.Second, Cap: 300 * time.Second}, nil)

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{1, 1 * time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{9, 256 * time.Second},
		{10, 300 * time.Second},
		{20, 300 * time.Second},
	}
	for _, tc := range cases {
		if got := r.backoff(tc.attempt); got != tc.want {
			t.Errorf("backoff(%d) = %s, want %s", tc.attempt, got, tc.want)
		}
	}
}

func TestIsNonRetryable(t *testing.T) {
	if IsNonRetryable(errors.New("plain")) {
		t.Fatal("plain error reported as non-retryable")
	}
	if !IsNonRetryable(NonRetryable(errors.New("tagged"))) {
		t.Fatal("tagged error not reported as non-retryable")
	}
	if NonRetryable(nil) != nil {
		t.Fatal("NonRetryable(nil) should be nil")
	}
}
