// Package runner drives a demo's scene until it completes, the user exits
// or it fails.
package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"engine-demo/internal/assets"
	"engine-demo/internal/clock"
	"engine-demo/internal/demo"
	"engine-demo/internal/subsystem"
)

// Outcome classifies how a run ended.
type Outcome uint8

const (
	CompletedNormally Outcome = iota + 1
	ExitedByUser
	Failed
)

func (o Outcome) String() string {
	switch o {
	case CompletedNormally:
		return "completed"
	case ExitedByUser:
		return "exited by user"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Result is the terminal state of one run. Cause is set only for Failed.
type Result struct {
	Outcome Outcome
	Cause   error
	Ticks   uint64
	Frames  uint64
	Elapsed time.Duration
}

// Runner executes demos. It holds no per-run state and may be reused.
type Runner struct {
	log       zerolog.Logger
	now       func() time.Time
	tps       int
	seed      int64
	tickLimit uint64
}

// Option configures a Runner.
type Option func(*Runner)

// WithTPS sets the pace used when a demo has neither a clock nor a native
// window loop.
func WithTPS(tps int) Option { return func(r *Runner) { r.tps = tps } }

// WithSeed sets the seed handed to entry routines.
func WithSeed(seed int64) Option { return func(r *Runner) { r.seed = seed } }

// WithTickLimit caps every run, interactive ones included, at n ticks.
func WithTickLimit(n uint64) Option { return func(r *Runner) { r.tickLimit = n } }

// WithNow replaces the wall clock used for duration budgets.
func WithNow(now func() time.Time) Option { return func(r *Runner) { r.now = now } }

// New returns a runner.
func New(log zerolog.Logger, opts ...Option) *Runner {
	r := &Runner{log: log, now: time.Now, tps: 60}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run invokes desc's entry routine with the live subsystems and drives the
// resulting scene on the calling goroutine. It never panics; the
// caller stays responsible for releasing set.
func (r *Runner) Run(ctx context.Context, desc demo.Descriptor, set *subsystem.Set, root assets.Root) Result {
	start := r.now()
	env := &demo.Env{
		Root:     root,
		Set:      set,
		Seed:     r.seed,
		Settings: desc.Settings,
		Log:      r.log.With().Str("demo", desc.Name).Logger(),
	}

	scene, err := enter(desc.Entry, env)
	if err != nil {
		return Result{Outcome: Failed, Cause: fmt.Errorf("enter %s: %w", desc.Name, err), Elapsed: r.now().Sub(start)}
	}

	l := &loop{
		ctx:    ctx,
		env:    env,
		scene:  scene,
		budget: r.budget(desc),
		now:    r.now,
		start:  start,
		last:   start,
	}
	l.drawer, _ = scene.(demo.Drawer)
	l.resetter, _ = scene.(demo.Resetter)

	driveErr := r.drive(ctx, desc, env, l.frame)

	res := l.result()
	if driveErr != nil && res.Outcome != Failed {
		res.Outcome, res.Cause = Failed, fmt.Errorf("drive loop: %w", driveErr)
	}
	if rc := env.Renderer(); rc != nil {
		res.Frames = rc.Frames()
	}
	res.Elapsed = r.now().Sub(start)
	return res
}

func (r *Runner) budget(desc demo.Descriptor) demo.Budget {
	b := demo.Budget{}
	if desc.Mode == demo.Bounded {
		b = desc.Budget
	}
	if r.tickLimit > 0 && (b.Ticks == 0 || r.tickLimit < b.Ticks) {
		b.Ticks = r.tickLimit
	}
	return b
}

func (r *Runner) drive(ctx context.Context, desc demo.Descriptor, env *demo.Env, frame func() (bool, error)) error {
	if rc := env.Renderer(); rc != nil {
		if d := rc.Driver(); d != nil {
			return d.Drive(ctx, frame)
		}
	}

	wait := func(context.Context) error { return nil }
	switch c := env.Clock(); {
	case c != nil:
		wait = c.Wait
	case desc.Mode == demo.Interactive:
		wait = clock.New(r.tps).Wait
	}
	for {
		if err := wait(ctx); err != nil && ctx.Err() == nil {
			return err
		}
		done, err := frame()
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
}

func enter(entry demo.Entry, env *demo.Env) (scene demo.Scene, err error) {
	defer func() {
		if r := recover(); r != nil {
			scene, err = nil, &subsystem.PanicError{Value: r, Stack: debug.Stack()}
		}
	}()
	scene, err = entry(env)
	if err == nil && scene == nil {
		err = errors.New("entry returned no scene")
	}
	return scene, err
}
