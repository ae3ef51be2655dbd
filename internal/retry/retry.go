// Package retry provides a small reusable retry-with-backoff policy for
// transient failures on outbound calls.
package retry

import (
	"context"
	"time"
)

// Policy describes how an operation is retried. The delay before attempt
// N+1 is BaseDelay doubled after each failure (1s, 2s, 4s, ... with the
// default base). The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// DefaultPolicy matches the inference call contract: 3 attempts with
// exponential backoff starting at one second.
func DefaultPolicy() Policy {
	return Policy{MaxAttempts: 3, BaseDelay: time.Second}
}

// Do runs op until it succeeds or MaxAttempts is exhausted. After the final
// failure the last error is returned unchanged so callers can inspect the
// original cause. The backoff sleep only suspends the calling goroutine and
// aborts early if ctx is canceled.
func (p Policy) Do(ctx context.Context, op func(ctx context.Context) error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	delay := p.BaseDelay
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = op(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
		delay *= 2
	}
	return lastErr
}
