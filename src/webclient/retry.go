package webclient

import (
	"context"
	"time"
)

type AttemptFunc func() (status int, body []byte, err error)

// DoWithRetry retries the attempt on transport failures only (err != nil with
// no status). Any HTTP status, 4xx or 5xx alike, is returned to the caller on
// the first attempt: the model endpoint is not retried on protocol errors.
func DoWithRetry(ctx context.Context, attempts int, delay time.Duration, fn AttemptFunc) (int, []byte, error) {
	if attempts <= 0 {
		attempts = 1
	}
	if delay <= 0 {
		delay = time.Second
	}
	var (
		status int
		body   []byte
		err    error
	)
	for i := 0; i < attempts; i++ {
		status, body, err = fn()
		if err == nil || status != 0 {
			return status, body, err
		}
		if i == attempts-1 {
			break
		}
		t := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			t.Stop()
			return status, body, ctx.Err()
		case <-t.C:
		}
	}
	return status, body, err
}
