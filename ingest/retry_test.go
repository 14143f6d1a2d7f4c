package ingest

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetrySucceedsFirstAttempt(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), func() error {
		attempts++
		return nil
	}, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryFailFailSucceed(t *testing.T) {
	attempts := 0
	err := Retry(context.Background(), func() error {
		attempts++
		if attempts < 3 {
			return errors.New("transient")
		}
		return nil
	}, 3, time.Millisecond)

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryExhaustedReturnsLastError(t *testing.T) {
	lastErr := errors.New("still failing")
	attempts := 0
	err := Retry(context.Background(), func() error {
		attempts++
		return lastErr
	}, 3, time.Millisecond)

	assert.ErrorIs(t, err, lastErr)
	assert.Equal(t, 3, attempts)
}

func TestRetryInvalidMaxAttempts(t *testing.T) {
	err := Retry(context.Background(), func() error { return nil }, 0, time.Millisecond)
	assert.ErrorIs(t, err, ErrInvalidMaxAttempts)
}

func TestRetryContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	attempts := 0
	err := Retry(ctx, func() error {
		attempts++
		return errors.New("transient")
	}, 3, time.Millisecond)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, attempts)
}

func TestRetryContextCanceledDuringDelay(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	attempts := 0
	err := Retry(ctx, func() error {
		attempts++
		cancel()
		return errors.New("transient")
	}, 3, time.Minute)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, attempts)
}
