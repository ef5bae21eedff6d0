package core

import "time"

// FixedStep helps run simulation updates at a steady ticks-per-second rate.
type FixedStep struct {
	step        time.Duration
	accumulator time.Duration
	last        time.Time
	now         func() time.Time
}

// NewFixedStep constructs a FixedStep controller targeting the given TPS.
func NewFixedStep(tps int) *FixedStep {
	fs := &FixedStep{now: time.Now}
	fs.SetTPS(tps)
	fs.accumulator = fs.step
	return fs
}

// SetTPS changes the tick rate. It is safe to call from the main loop.
func (f *FixedStep) SetTPS(tps int) {
	if tps <= 0 {
		tps = 60
	}
	f.step = time.Second / time.Duration(tps)
}

// Step returns the duration of a single tick.
func (f *FixedStep) Step() time.Duration { return f.step }

// SetNow replaces the time source. Intended for tests.
func (f *FixedStep) SetNow(now func() time.Time) {
	if now == nil {
		now = time.Now
	}
	f.now = now
	f.last = time.Time{}
}

// ShouldStep reports whether the simulation should advance by one tick.
func (f *FixedStep) ShouldStep() bool {
	now := f.now()
	if f.last.IsZero() {
		f.last = now
	}
	delta := now.Sub(f.last)
	f.last = now
	f.accumulator += delta
	if f.accumulator >= f.step {
		f.accumulator -= f.step
		return true
	}
	return false
}

// Until returns how long the caller should wait before the next tick is due.
func (f *FixedStep) Until() time.Duration {
	if f.accumulator >= f.step {
		return 0
	}
	wait := f.step - f.accumulator
	if !f.last.IsZero() {
		wait -= f.now().Sub(f.last)
	}
	if wait < 0 {
		return 0
	}
	return wait
}
