// Package clock provides the simulation clock subsystem.
package clock

import (
	"context"
	"errors"
	"time"

	"engine-demo/internal/core"
)

// ErrStopped is returned by Wait once the clock has been released.
var ErrStopped = errors.New("clock stopped")

// Clock paces the demo loop at a fixed tick rate and tracks simulated time.
type Clock struct {
	fs      *core.FixedStep
	tps     int
	ticks   uint64
	elapsed time.Duration
	paused  bool
	stopped bool
}

// New returns a clock ticking tps times per second.
func New(tps int) *Clock {
	if tps <= 0 {
		tps = 60
	}
	return &Clock{fs: core.NewFixedStep(tps), tps: tps}
}

// TPS reports the tick rate.
func (c *Clock) TPS() int { return c.tps }

// Step is the simulated duration of one tick.
func (c *Clock) Step() time.Duration { return c.fs.Step() }

// Ticks reports how many ticks were advanced.
func (c *Clock) Ticks() uint64 { return c.ticks }

// Elapsed reports the simulated time advanced so far.
func (c *Clock) Elapsed() time.Duration { return c.elapsed }

// Paused reports whether simulated time is frozen.
func (c *Clock) Paused() bool { return c.paused }

// SetPaused freezes or resumes simulated time.
func (c *Clock) SetPaused(p bool) { c.paused = p }

// Advance moves simulated time forward by one tick.
func (c *Clock) Advance() {
	c.ticks++
	c.elapsed += c.fs.Step()
}

// Wait blocks until the next tick is due or ctx is done.
func (c *Clock) Wait(ctx context.Context) error {
	for {
		if c.stopped {
			return ErrStopped
		}
		if c.fs.ShouldStep() {
			return nil
		}
		t := time.NewTimer(max(c.fs.Until(), time.Millisecond))
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C:
		}
	}
}

// Release stops the clock.
func (c *Clock) Release() error {
	c.stopped = true
	return nil
}
