package client

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSleeperThrottleEnforcesMinInterval(t *testing.T) {
	// 1200 rpm = 50ms minimum interval, short enough to test real sleeps
	c := NewSleeper("http://localhost", 1200, time.Second)
	ctx := context.Background()

	const calls = 4
	start := time.Now()
	for i := 0; i < calls; i++ {
		require.NoError(t, c.throttle(ctx))
	}
	elapsed := time.Since(start)

	// first call is free, the rest each wait out the interval
	assert.GreaterOrEqual(t, elapsed, (calls-1)*c.minInterval)
}

func TestSleeperThrottleFirstCallDoesNotSleep(t *testing.T) {
	c := NewSleeper("http://localhost", 60, time.Second)

	start := time.Now()
	require.NoError(t, c.throttle(context.Background()))
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestSleeperThrottleIdleClientDoesNotSleep(t *testing.T) {
	c := NewSleeper("http://localhost", 1200, time.Second)
	ctx := context.Background()

	require.NoError(t, c.throttle(ctx))
	time.Sleep(2 * c.minInterval)

	start := time.Now()
	require.NoError(t, c.throttle(ctx))
	assert.Less(t, time.Since(start), c.minInterval)
}

func TestSleeperThrottleDisabledWithoutRateLimit(t *testing.T) {
	c := NewSleeper("http://localhost", 0, time.Second)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 10; i++ {
		require.NoError(t, c.throttle(ctx))
	}
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestSleeperThrottleHonorsContextCancellation(t *testing.T) {
	c := NewSleeper("http://localhost", 6, time.Second) // 10s interval
	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, c.throttle(ctx))
	cancel()

	err := c.throttle(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
