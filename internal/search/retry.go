package search

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryPolicy bounds the retries of one external lookup
type RetryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultRetryPolicy allows five attempts, backing off exponentially from one second up to ten
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{MaxAttempts: 5, BaseDelay: time.Second, MaxDelay: 10 * time.Second}
}

func (p RetryPolicy) backoff() retry.Backoff {
	base := p.BaseDelay
	if base <= 0 {
		base = time.Millisecond
	}
	maxDelay := p.MaxDelay
	if maxDelay < base {
		maxDelay = base
	}
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	b := retry.NewExponential(base)
	b = retry.WithCappedDuration(maxDelay, b)
	return retry.WithMaxRetries(uint64(attempts-1), b)
}

type retryableStatus struct {
	status ResponseStatus
}

func (e retryableStatus) Error() string {
	return "lookup returned " + string(e.status)
}

// Do runs op until it returns a status that retryIf rejects or the policy is exhausted,
// and returns the last value and status produced. If ctx ends before the first attempt
// the status is TIMEOUT for an expired deadline and ERROR otherwise.
func Do[T any](ctx context.Context, p RetryPolicy, op func(context.Context) (T, ResponseStatus), retryIf func(ResponseStatus) bool) (T, ResponseStatus) {
	var (
		value  T
		status ResponseStatus
	)

	err := retry.Do(ctx, p.backoff(), func(ctx context.Context) error {
		value, status = op(ctx)
		if retryIf != nil && retryIf(status) {
			return retry.RetryableError(retryableStatus{status: status})
		}
		return nil
	})

	if status == "" {
		status = ContextStatus(err)
	}
	return value, status
}
