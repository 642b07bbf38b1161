// Package retry provides the task runner that wraps fallible operations
// with exponential backoff. Errors tagged non-retryable propagate
// immediately with their original identity so callers can match them
// with errors.Is.
package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"
)

// Infinite makes Do retry forever. Reserved for discovery-phase network
// calls; bounded work must pass a finite attempt count.
const Infinite = -1

// Config controls backoff behavior.
type Config struct {
	// Base is the first backoff delay. Doubles each attempt.
	Base time.Duration

	// Cap bounds the backoff delay.
	Cap time.Duration
}

// DefaultConfig returns the standard backoff settings.
func DefaultConfig() Config {
	return Config{
		Base: 1 * time.Second,
		Cap:  300 * time.Second,
	}
}

// Runner executes operations with retries and structured logging.
type Runner struct {
	config Config
	log    *zap.Logger
}

// NewRunner creates a Runner with the given backoff config.
func NewRunner(cfg Config, log *zap.Logger) *Runner {
	if log == nil {
		log = zap.NewNop()
	}
	return &Runner{config: cfg, log: log}
}

// nonRetryableError tags an error so Do propagates it without retrying.
type nonRetryableError struct {
	err error
}

func (e *nonRetryableError) Error() string { return e.err.Error() }
func (e *nonRetryableError) Unwrap() error { return e.err }

// NonRetryable tags err as non-retryable. Do strips the tag before
// returning, so the caller sees the original error.
func NonRetryable(err error) error {
	if err == nil {
		return nil
	}
	return &nonRetryableError{err: err}
}

// IsNonRetryable reports whether err carries the non-retryable tag.
func IsNonRetryable(err error) bool {
	var nr *nonRetryableError
	return errors.As(err, &nr)
}

// ExhaustedError wraps the last error after all attempts failed.
type ExhaustedError struct {
	Label    string
	Attempts int
	Err      error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("%s: gave up after %d attempts: %v", e.Label, e.Attempts, e.Err)
}

func (e *ExhaustedError) Unwrap() error { return e.Err }

// Do runs fn until it succeeds, returns a non-retryable error, the
// context is cancelled, or maxAttempts is exhausted. maxAttempts may be
// Infinite.
func Do[T any](ctx context.Context, r *Runner, label string, maxAttempts int, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	var lastErr error

	for attempt := 1; maxAttempts == Infinite || attempt <= maxAttempts; attempt++ {
		result, err := fn(ctx)
		if err == nil {
			if attempt > 1 {
				r.log.Info("operation succeeded after retry",
					zap.String("op", label),
					zap.Int("attempt", attempt))
			}
			return result, nil
		}
		lastErr = err

		var nr *nonRetryableError
		if errors.As(err, &nr) {
			r.log.Warn("operation failed, not retryable",
				zap.String("op", label),
				zap.Error(nr.err))
			return zero, nr.err
		}
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return zero, err
		}

		wait := r.backoff(attempt)
		r.log.Warn("operation failed, backing off",
			zap.String("op", label),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err))

		if maxAttempts != Infinite && attempt == maxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(wait):
		}
	}

	r.log.Error("operation failed permanently",
		zap.String("op", label),
		zap.Int("attempts", maxAttempts),
		zap.Error(lastErr))
	return zero, &ExhaustedError{Label: label, Attempts: maxAttempts, Err: lastErr}
}

// backoff computes the delay before the next attempt:
// min(base * 2^(attempt-1), cap).
func (r *Runner) backoff(attempt int) time.Duration {
	wait := float64(r.config.Base) * math.Pow(2, float64(attempt-1))
	if wait > float64(r.config.Cap) {
		wait = float64(r.config.Cap)
	}
	return time.Duration(wait)
}
