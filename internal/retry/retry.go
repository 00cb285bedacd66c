package retry

import (
	"context"
	"fmt"
	"time"
)

// DelayFunc maps a 1-based attempt number to the pause taken after that
// attempt fails.
type DelayFunc func(attempt int) time.Duration

// Linear returns attempt*step: 1s, 2s, 3s... for step=1s.
func Linear(step time.Duration) DelayFunc {
	return func(attempt int) time.Duration {
		return time.Duration(attempt) * step
	}
}

// Do runs fn up to maxAttempts times, sleeping delay(attempt) between
// failures. It stops early when ctx is canceled and returns the last
// error wrapped with the attempt count.
func Do(ctx context.Context, maxAttempts int, delay DelayFunc, fn func(ctx context.Context) error) error {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		if attempt == maxAttempts {
			break
		}
		wait := time.Duration(0)
		if delay != nil {
			wait = delay(attempt)
		}
		if wait > 0 {
			t := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				t.Stop()
				return ctx.Err()
			case <-t.C:
			}
		}
	}
	return fmt.Errorf("after %d attempts: %w", maxAttempts, lastErr)
}
