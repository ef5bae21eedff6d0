package clock

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAdvanceTracksSimulatedTime(t *testing.T) {
	c := New(50)
	for i := 0; i < 10; i++ {
		c.Advance()
	}
	require.EqualValues(t, 10, c.Ticks())
	require.Equal(t, 200*time.Millisecond, c.Elapsed())
}

func TestWaitFirstTickIsImmediate(t *testing.T) {
	c := New(1)
	start := time.Now()
	require.NoError(t, c.Wait(context.Background()))
	require.Less(t, time.Since(start), 500*time.Millisecond)
}

func TestWaitHonoursContext(t *testing.T) {
	c := New(1)
	require.NoError(t, c.Wait(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.ErrorIs(t, c.Wait(ctx), context.DeadlineExceeded)
}

func TestWaitAfterRelease(t *testing.T) {
	c := New(10)
	require.NoError(t, c.Release())
	require.ErrorIs(t, c.Wait(context.Background()), ErrStopped)
}

func TestDefaultRate(t *testing.T) {
	require.Equal(t, 60, New(0).TPS())
}
