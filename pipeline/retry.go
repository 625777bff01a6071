package pipeline

import (
	"context"
	"time"

	"github.com/fwojciec/clipper"
)

// FetchFunc is the signature for a fetch function.
type FetchFunc func(ctx context.Context, url string) (*clipper.FetchResult, error)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for fetch retries:
// 100ms, 300ms.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{100 * time.Millisecond, 300 * time.Millisecond}
}

// FetchWithRetryDelays attempts a fetch with backoff retries. Only
// retryable failures (rate limiting, transient unavailability) are
// retried; permanent failures return immediately. The logger function,
// if provided, is called for each retry attempt.
func FetchWithRetryDelays(ctx context.Context, url string, fetch FetchFunc, logger LogFunc, delays []time.Duration) (*clipper.FetchResult, error) {
	maxAttempts := len(delays) + 1 // 1 initial + N retries

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := fetch(ctx, url)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !clipper.IsRetryable(err) {
			break
		}
		if attempt >= maxAttempts-1 {
			break
		}

		if logger != nil {
			logger("  retry %s (attempt %d): %v", url, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return nil, lastErr
}
