package generation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry_FirstAttemptSucceeds(t *testing.T) {
	calls := 0
	v, ok := Retry(context.Background(), DefaultRetryPolicy(), func(context.Context) (int, error) {
		calls++
		return 7, nil
	}, nil)

	assert.True(t, ok)
	assert.Equal(t, 7, v)
	assert.Equal(t, 1, calls)
}

func TestRetry_ExhaustedReturnsZeroValue(t *testing.T) {
	var observed []int
	policy := RetryPolicy{Attempts: 3, Delay: 2 * time.Millisecond}

	start := time.Now()
	v, ok := Retry(context.Background(), policy, func(context.Context) (string, error) {
		return "partial", errors.New("fail")
	}, func(attempt int, _ error) {
		observed = append(observed, attempt)
	})

	assert.False(t, ok)
	assert.Equal(t, "", v)
	assert.Equal(t, []int{1, 2, 3}, observed)
	assert.GreaterOrEqual(t, time.Since(start), 4*time.Millisecond, "delay applies between attempts only")
}

func TestRetry_AttemptsBelowOneMeansOnce(t *testing.T) {
	calls := 0
	_, ok := Retry(context.Background(), RetryPolicy{}, func(context.Context) (int, error) {
		calls++
		return 0, errors.New("fail")
	}, nil)

	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}

func TestRetry_StopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0

	_, ok := Retry(ctx, RetryPolicy{Attempts: 5, Delay: time.Hour}, func(context.Context) (int, error) {
		calls++
		cancel()
		return 0, errors.New("fail")
	}, nil)

	assert.False(t, ok)
	assert.Equal(t, 1, calls)
}
