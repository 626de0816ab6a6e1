package crawler

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestExponentialRetryPolicyShouldRetry(t *testing.T) {
	policy := NewExponentialRetryPolicy(3)
	err := errors.New("boom")

	require.False(t, policy.ShouldRetry(nil, 1), "nil error is not retryable")
	require.True(t, policy.ShouldRetry(err, 1))
	require.True(t, policy.ShouldRetry(err, 2))
	require.False(t, policy.ShouldRetry(err, 3), "attempts are exhausted at the configured maximum")
	require.False(t, policy.ShouldRetry(context.Canceled, 1), "canceled runs never retry")
}

func TestExponentialRetryPolicyBackoff(t *testing.T) {
	policy := NewExponentialRetryPolicy(5)

	for attempt := 1; attempt <= 6; attempt++ {
		delay := policy.Backoff(attempt)
		require.Positive(t, delay)
		require.LessOrEqual(t, delay, 5*time.Second, "backoff is capped at the max delay")
	}
}

func TestTimerPacerHonorsContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pacer := &TimerPacer{}
	start := time.Now()
	pacer.Pause(ctx, 5*time.Second)
	require.Less(t, time.Since(start), time.Second, "pause should exit immediately when context is done")
}
