package webclient

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDoWithRetryTransportFailureRetried(t *testing.T) {
	calls := 0
	status, body, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		if calls < 3 {
			return 0, nil, errors.New("connection refused")
		}
		return 200, []byte("ok"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Equal(t, "ok", string(body))
	assert.Equal(t, 3, calls)
}

func TestDoWithRetryHTTPStatusNotRetried(t *testing.T) {
	calls := 0
	status, _, err := DoWithRetry(context.Background(), 3, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 500, []byte("boom"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 500, status)
	assert.Equal(t, 1, calls, "protocol errors are terminal on the first attempt")
}

func TestDoWithRetryExhausted(t *testing.T) {
	calls := 0
	_, _, err := DoWithRetry(context.Background(), 2, time.Millisecond, func() (int, []byte, error) {
		calls++
		return 0, nil, errors.New("still down")
	})
	require.Error(t, err)
	assert.Equal(t, 2, calls)
}

func TestDoWithRetryContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := DoWithRetry(ctx, 5, time.Hour, func() (int, []byte, error) {
		return 0, nil, errors.New("down")
	})
	assert.ErrorIs(t, err, context.Canceled)
}
