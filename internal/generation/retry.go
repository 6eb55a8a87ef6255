package generation

import (
	"context"
	"time"
)

// RetryPolicy is a fixed-delay retry budget. Attempts <= 1 means a single try.
type RetryPolicy struct {
	Attempts int           `json:"attempts" yaml:"attempts"`
	Delay    time.Duration `json:"delay" yaml:"delay"`
}

// DefaultRetryPolicy returns 3 attempts with 500ms between them.
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{Attempts: 3, Delay: 500 * time.Millisecond}
}

// NoRetry returns a policy that calls fn exactly once.
func NoRetry() RetryPolicy {
	return RetryPolicy{Attempts: 1}
}

// Retry calls fn until it succeeds or the policy is exhausted. Errors are
// swallowed: when every attempt fails it returns the zero value and false.
// observe, when non-nil, sees every failed attempt.
func Retry[T any](ctx context.Context, policy RetryPolicy, fn func(context.Context) (T, error), observe func(attempt int, err error)) (T, bool) {
	var zero T
	attempts := max(policy.Attempts, 1)

	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, true
		}
		if observe != nil {
			observe(attempt, err)
		}
		if attempt == attempts {
			break
		}

		timer := time.NewTimer(policy.Delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, false
		case <-timer.C:
		}
	}
	return zero, false
}
