package resilience

import (
	"context"
	"time"
)

// Retry runs fn up to maxRetries+1 times with linear backoff, stopping
// early on context cancellation or when shouldRetry rejects the error.
func Retry(ctx context.Context, maxRetries int, backoffStep time.Duration, shouldRetry func(error) bool, fn func() error) error {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if backoffStep <= 0 {
		backoffStep = time.Second
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if shouldRetry != nil && !shouldRetry(lastErr) {
			return lastErr
		}
		if attempt == maxRetries {
			break
		}

		timer := time.NewTimer(time.Duration(attempt+1) * backoffStep)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
	return lastErr
}
