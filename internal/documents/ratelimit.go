package documents

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

const (
	// Zotero asks clients to stay well under a few requests per second.
	fetchesPerSecond = 2
	fetchBurst       = 4

	maxRetries    = 4
	maxRetryDelay = 16 * time.Second
)

var (
	// Shared by every remote source so concurrent submissions queue behind
	// one budget.
	remoteLimiter = rate.NewLimiter(rate.Limit(fetchesPerSecond), fetchBurst)

	baseRetryDelay = 1 * time.Second
)

// StatusError is returned when a remote source answers with a non-200 status.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: unexpected status %s", e.URL, e.Status)
}

// rateLimitedFetch waits for the shared limiter, then calls fn, retrying with
// exponential backoff while the upstream reports it is throttling us.
func rateLimitedFetch[T any](ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	var zero T

	if err := remoteLimiter.Wait(ctx); err != nil {
		return zero, fmt.Errorf("rate limiter wait failed: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			delay := baseRetryDelay << (attempt - 1)
			if delay > maxRetryDelay {
				delay = maxRetryDelay
			}
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return zero, ctx.Err()
			}
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !isThrottled(err) {
			return zero, err
		}
	}

	return zero, fmt.Errorf("max retries (%d) exceeded, last error: %w", maxRetries, lastErr)
}

// isThrottled reports 429 and 503 answers. The Zotero client only surfaces
// the status in its error text.
func isThrottled(err error) bool {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusTooManyRequests || se.StatusCode == http.StatusServiceUnavailable
	}
	msg := err.Error()
	for _, s := range []string{"429", "Too Many Requests", "503"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
