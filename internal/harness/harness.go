// Package harness is the demo entry point: it resolves a demo id, brings up
// the subsystems the demo needs, runs it and always tears everything down.
package harness

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"engine-demo/internal/assets"
	"engine-demo/internal/core"
	"engine-demo/internal/demo"
	"engine-demo/internal/engine"
	"engine-demo/internal/input"
	"engine-demo/internal/runner"
	"engine-demo/internal/subsystem"
)

// ErrUnknownDemo is reported for ids missing from the registry.
var ErrUnknownDemo = errors.New("unknown demo")

// Report is the outcome of one EngineDemo call.
type Report struct {
	Session string
	Status  Status
	Demo    string
	Result  runner.Result
	// Err explains a non-OK status.
	Err error
	// Warning carries teardown failures; it never changes Status.
	Warning error
	Timings Timings
}

// Harness runs demos from one registry. Sessions on the same Harness are
// serialized.
type Harness struct {
	reg      *demo.Registry
	boot     *subsystem.Bootstrapper
	log      zerolog.Logger
	observer func(Phase)
	tps      int
	seed     int64
	runOpts  []runner.Option
	sources  []input.SourceFactory
	catalog  core.Catalog
	now      func() time.Time

	sem chan struct{}
}

// Option configures a Harness.
type Option func(*Harness)

// WithLogger sets the logger.
func WithLogger(log zerolog.Logger) Option { return func(h *Harness) { h.log = log } }

// WithBootstrapper replaces the default engine providers.
func WithBootstrapper(b *subsystem.Bootstrapper) Option { return func(h *Harness) { h.boot = b } }

// WithObserver registers fn to receive every phase transition.
func WithObserver(fn func(Phase)) Option { return func(h *Harness) { h.observer = fn } }

// WithTPS sets the simulation rate handed to the clock and the runner.
func WithTPS(tps int) Option { return func(h *Harness) { h.tps = tps } }

// WithSeed sets the seed handed to subsystems and demos.
func WithSeed(seed int64) Option { return func(h *Harness) { h.seed = seed } }

// WithRunnerOptions appends options to every runner the harness builds.
func WithRunnerOptions(opts ...runner.Option) Option {
	return func(h *Harness) { h.runOpts = append(h.runOpts, opts...) }
}

// WithInputSources adds sources to the input queue of every session. Each
// session gets sources freshly built by the factories.
func WithInputSources(src ...input.SourceFactory) Option {
	return func(h *Harness) { h.sources = append(h.sources, src...) }
}

// WithCatalog sets the simulations the default world provider may host.
func WithCatalog(c core.Catalog) Option { return func(h *Harness) { h.catalog = c } }

// New returns a harness over reg.
func New(reg *demo.Registry, opts ...Option) (*Harness, error) {
	if reg == nil {
		return nil, errors.New("harness: nil registry")
	}
	h := &Harness{
		reg:  reg,
		log:  zerolog.Nop(),
		tps:  60,
		seed: 1,
		now:  time.Now,
		sem:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.boot == nil {
		b, err := subsystem.NewBootstrapper(engine.Providers(engine.Options{
			InputSources: h.sources,
			Catalog:      h.catalog,
		})...)
		if err != nil {
			return nil, fmt.Errorf("harness: %w", err)
		}
		h.boot = b
	}
	return h, nil
}

// session is the state of one EngineDemo call.
type session struct {
	h       *Harness
	log     zerolog.Logger
	phase   Phase
	since   time.Time
	start   time.Time
	timings Timings
}

func (s *session) enter(p Phase) {
	now := s.h.now()
	s.timings.add(s.phase, now.Sub(s.since))
	s.log.Debug().Stringer("from", s.phase).Stringer("to", p).Msg("phase")
	s.phase, s.since = p, now
	if s.h.observer != nil {
		s.h.observer(p)
	}
}

// EngineDemo runs demo id against the asset root. root is only borrowed for
// the duration of the call. Every subsystem acquired is released before
// EngineDemo returns, whatever the outcome.
func (h *Harness) EngineDemo(ctx context.Context, id int, root assets.Root) (rep Report) {
	rep.Session = uuid.NewString()
	s := &session{
		h:     h,
		log:   h.log.With().Str("session", rep.Session).Int("demo_id", id).Logger(),
		since: h.now(),
	}
	s.start = s.since
	defer func() {
		rep.Timings = s.timings
		rep.Timings.Total = h.now().Sub(s.start)
		h.logReport(s.log, rep)
	}()

	s.enter(PhaseResolving)
	desc, err := h.reg.Lookup(id)
	if err != nil {
		rep.Status = StatusUnknownDemo
		rep.Err = fmt.Errorf("%w: %d", ErrUnknownDemo, id)
		s.enter(PhaseFailed)
		s.enter(PhaseIdle)
		return rep
	}
	rep.Demo = desc.Name
	s.log = s.log.With().Str("demo", desc.Name).Logger()

	s.enter(PhaseBootstrapping)
	if err := h.lock(ctx); err != nil {
		// Nothing was started; the error names the first subsystem that
		// would have been.
		be := &subsystem.BootstrapError{Reason: subsystem.ReasonCanceled, Err: fmt.Errorf("wait for session slot: %w", err)}
		if kinds := subsystem.Ordered(desc.Requires); len(kinds) > 0 {
			be.Kind = kinds[0]
		}
		rep.Status = StatusBootstrapFailure
		rep.Err = be
		s.enter(PhaseFailed)
		s.enter(PhaseTearingDown)
		s.enter(PhaseIdle)
		return rep
	}
	defer h.unlock()

	set, err := h.boot.Acquire(ctx, desc.Requires, subsystem.Params{
		Root:     root,
		TPS:      h.tps,
		Seed:     h.seed,
		Settings: desc.Settings,
		Logger:   s.log,
	})
	if err != nil {
		// Acquire already rolled back whatever it had started.
		rep.Status = StatusBootstrapFailure
		rep.Err = err
		s.enter(PhaseFailed)
		s.enter(PhaseTearingDown)
		s.enter(PhaseIdle)
		return rep
	}

	defer func() {
		s.enter(PhaseTearingDown)
		if err := h.boot.Release(set); err != nil {
			rep.Warning = err
		}
		s.enter(PhaseIdle)
	}()

	s.enter(PhaseRunning)
	opts := append([]runner.Option{runner.WithTPS(h.tps), runner.WithSeed(h.seed)}, h.runOpts...)
	rep.Result = runner.New(s.log, opts...).Run(ctx, desc, set, root)
	if rep.Result.Outcome == runner.Failed {
		rep.Status = StatusRuntimeFailure
		rep.Err = rep.Result.Cause
		s.enter(PhaseFailed)
	}
	return rep
}

// lock takes the session slot. A free slot wins over a cancelled context.
func (h *Harness) lock(ctx context.Context) error {
	select {
	case h.sem <- struct{}{}:
		return nil
	default:
	}
	select {
	case h.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (h *Harness) unlock() { <-h.sem }

func (h *Harness) logReport(log zerolog.Logger, rep Report) {
	ev := log.Info()
	switch {
	case rep.Status != StatusOK:
		ev = log.Error().Err(rep.Err)
	case rep.Warning != nil:
		ev = log.Warn().AnErr("teardown", rep.Warning)
	}
	ev.Stringer("status", rep.Status).
		Stringer("outcome", rep.Result.Outcome).
		Uint64("ticks", rep.Result.Ticks).
		Dict("timings", zerolog.Dict().
			Dur("resolve", rep.Timings.Resolve).
			Dur("bootstrap", rep.Timings.Bootstrap).
			Dur("run", rep.Timings.Run).
			Dur("teardown", rep.Timings.Teardown).
			Dur("total", rep.Timings.Total)).
		Msg("demo finished")
}
