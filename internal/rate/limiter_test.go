package rate

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllow_BurstThenBlocked(t *testing.T) {
	l := New(Config{RequestsPerSecond: 1, Burst: 2})

	assert.True(t, l.Allow())
	assert.True(t, l.Allow())
	assert.False(t, l.Allow(), "burst exhausted, no refill yet")
}

func TestWait_HonorsContextCancellation(t *testing.T) {
	l := New(Config{RequestsPerSecond: 1, Burst: 1})
	require.True(t, l.Allow())

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Millisecond)
	defer cancel()

	err := l.Wait(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
