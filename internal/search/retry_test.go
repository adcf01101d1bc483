package search

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fastPolicy(attempts int) RetryPolicy {
	return RetryPolicy{MaxAttempts: attempts, BaseDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond}
}

func TestDoStopsOnSuccess(t *testing.T) {
	calls := 0
	v, status := Do(context.Background(), fastPolicy(5), func(context.Context) (int, ResponseStatus) {
		calls++
		if calls < 3 {
			return 0, StatusRateLimited
		}
		return 42, StatusOK
	}, ResponseStatus.Transient)

	assert.Equal(t, 3, calls)
	assert.Equal(t, 42, v)
	assert.Equal(t, StatusOK, status)
}

func TestDoExhaustsAttempts(t *testing.T) {
	calls := 0
	_, status := Do(context.Background(), fastPolicy(4), func(context.Context) (string, ResponseStatus) {
		calls++
		return "", StatusTimeout
	}, ResponseStatus.Transient)

	assert.Equal(t, 4, calls)
	assert.Equal(t, StatusTimeout, status)
}

func TestDoDoesNotRetryTerminalStatus(t *testing.T) {
	calls := 0
	_, status := Do(context.Background(), fastPolicy(5), func(context.Context) (string, ResponseStatus) {
		calls++
		return "", StatusInvalidResponse
	}, ResponseStatus.Transient)

	assert.Equal(t, 1, calls)
	assert.Equal(t, StatusInvalidResponse, status)
}

func TestDoZeroPolicyRunsOnce(t *testing.T) {
	calls := 0
	_, status := Do(context.Background(), RetryPolicy{}, func(context.Context) (string, ResponseStatus) {
		calls++
		return "", StatusError
	}, ResponseStatus.Transient)

	assert.Equal(t, 1, calls)
	assert.Equal(t, StatusError, status)
}

func TestDoCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	_, status := Do(ctx, fastPolicy(3), func(context.Context) (string, ResponseStatus) {
		calls++
		return "", StatusOK
	}, ResponseStatus.Transient)

	assert.Equal(t, 0, calls)
	assert.Equal(t, StatusError, status)
}

func TestDefaultRetryPolicy(t *testing.T) {
	p := DefaultRetryPolicy()
	assert.Equal(t, 5, p.MaxAttempts)
	assert.Equal(t, time.Second, p.BaseDelay)
	assert.Equal(t, 10*time.Second, p.MaxDelay)
}
