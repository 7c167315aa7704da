package sys

import (
	"context"
	"net/http"
	"strconv"
	"time"
)

const defaultRetryWait = 5 * time.Second

var sleep = time.Sleep

func retryWait(headers http.Header) time.Duration {
	if header := headers.Get("Retry-After"); header != "" {
		if seconds, err := strconv.ParseInt(header, 10, 32); err == nil {
			return time.Duration(seconds) * time.Second
		}
	}
	return defaultRetryWait
}

// SleepUntilRetry waits as long as the server asked to (or a default)
// before the next attempt, returning early if ctx gets cancelled
func SleepUntilRetry(ctx context.Context, headers http.Header) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		sleep(retryWait(headers))
	}()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-done:
		return nil
	}
}
