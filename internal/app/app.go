package app

import (
	"context"

	"github.com/rs/zerolog"

	"engine-demo/internal/assets"
	"engine-demo/internal/demos"
	"engine-demo/internal/harness"
	"engine-demo/internal/input"
	"engine-demo/internal/runner"
)

// NewHarness builds a harness over the built-in demos configured by cfg.
func NewHarness(cfg *Config, log zerolog.Logger) (*harness.Harness, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	reg, err := demos.Builtin()
	if err != nil {
		return nil, err
	}
	opts := []harness.Option{
		harness.WithLogger(log),
		harness.WithTPS(cfg.TPS),
		harness.WithSeed(cfg.Seed),
	}
	if cfg.Ticks > 0 {
		opts = append(opts, harness.WithRunnerOptions(runner.WithTickLimit(cfg.Ticks)))
	}
	actions, err := cfg.Actions()
	if err != nil {
		return nil, err
	}
	if len(actions) > 0 {
		opts = append(opts, harness.WithInputSources(input.Replay(actions...)))
	}
	return harness.New(reg, opts...)
}

// Run executes one demo and converts a non-OK report into an *ExitError.
func Run(ctx context.Context, h *harness.Harness, id int, root string) (harness.Report, error) {
	rep := h.EngineDemo(ctx, id, assets.NewRoot(root))
	if rep.Status != harness.StatusOK {
		return rep, &ExitError{Code: ExitCode(rep.Status), Err: rep.Err}
	}
	return rep, nil
}
