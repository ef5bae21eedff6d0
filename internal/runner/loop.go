package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"engine-demo/internal/demo"
	"engine-demo/internal/input"
	"engine-demo/internal/subsystem"
)

// loop is the per-run state behind the frame callback.
type loop struct {
	ctx      context.Context
	env      *demo.Env
	scene    demo.Scene
	drawer   demo.Drawer
	resetter demo.Resetter
	budget   demo.Budget
	now      func() time.Time
	start    time.Time
	last     time.Time

	ticks   uint64
	paused  bool
	outcome Outcome
	cause   error
}

func (l *loop) result() Result {
	out := l.outcome
	if out == 0 {
		// The native loop ended without us asking, e.g. the window was closed.
		out = ExitedByUser
	}
	return Result{Outcome: out, Cause: l.cause, Ticks: l.ticks}
}

func (l *loop) finish(o Outcome, cause error) (bool, error) {
	l.outcome, l.cause = o, cause
	return true, nil
}

// frame runs one iteration. It reports done once an outcome is decided and
// converts panics raised by the scene into a failure.
func (l *loop) frame() (done bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			done, err = l.finish(Failed, &subsystem.PanicError{Value: r, Stack: debug.Stack()})
		}
	}()

	if l.ctx.Err() != nil {
		return l.finish(ExitedByUser, nil)
	}
	var actions []input.Action
	if q := l.env.Input(); q != nil {
		actions = q.Pump()
		if q.QuitRequested() {
			return l.finish(ExitedByUser, nil)
		}
	}
	now := l.now()
	if l.budget.Spent(l.ticks, now.Sub(l.start)) {
		return l.finish(CompletedNormally, nil)
	}

	step := l.apply(actions)
	if l.paused && !step {
		return false, l.present()
	}

	tickErr := l.scene.Tick(l.ctx, demo.Tick{N: l.ticks, Delta: now.Sub(l.last), Actions: actions})
	l.last = now
	l.ticks++
	if c := l.env.Clock(); c != nil {
		c.Advance()
	}
	switch {
	case errors.Is(tickErr, demo.ErrDone):
		if err := l.present(); err != nil {
			return l.finish(Failed, err)
		}
		return l.finish(CompletedNormally, nil)
	case tickErr != nil && l.ctx.Err() != nil && errors.Is(tickErr, l.ctx.Err()):
		return l.finish(ExitedByUser, nil)
	case tickErr != nil:
		return l.finish(Failed, fmt.Errorf("tick %d: %w", l.ticks-1, tickErr))
	}
	if err := l.present(); err != nil {
		return l.finish(Failed, err)
	}
	return false, nil
}

// apply handles loop-level actions and reports whether a single step was
// requested while paused.
func (l *loop) apply(actions []input.Action) bool {
	step := false
	for _, a := range actions {
		switch a {
		case input.ActionTogglePause:
			l.paused = !l.paused
			if c := l.env.Clock(); c != nil {
				c.SetPaused(l.paused)
			}
		case input.ActionStep:
			step = true
		case input.ActionReset:
			if l.resetter != nil {
				l.resetter.Reset(l.env.Seed)
			}
		case input.ActionReseed:
			if l.resetter != nil {
				l.resetter.Reset(l.now().UnixNano())
			}
		}
	}
	return step
}

func (l *loop) present() error {
	rc := l.env.Renderer()
	if rc == nil {
		return nil
	}
	if l.drawer != nil {
		l.drawer.Draw(rc)
	}
	return rc.Present()
}
