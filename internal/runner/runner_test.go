//go:build !ebiten

package runner

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"engine-demo/internal/demo"
	"engine-demo/internal/engine"
	"engine-demo/internal/input"
	"engine-demo/internal/render"
	"engine-demo/internal/subsystem"
	"engine-demo/internal/testutil/assettest"
)

// sceneFunc adapts a function to demo.Scene.
type sceneFunc func(ctx context.Context, t demo.Tick) error

func (f sceneFunc) Tick(ctx context.Context, t demo.Tick) error { return f(ctx, t) }

func entryOf(s demo.Scene) demo.Entry {
	return func(*demo.Env) (demo.Scene, error) { return s, nil }
}

func acquire(t *testing.T, opts engine.Options, kinds ...subsystem.Kind) *subsystem.Set {
	t.Helper()
	b, err := subsystem.NewBootstrapper(engine.Providers(opts)...)
	require.NoError(t, err)
	set, err := b.Acquire(context.Background(), kinds, subsystem.Params{Root: assettest.Full(t), TPS: 1000})
	require.NoError(t, err)
	t.Cleanup(func() { subsystem.Release(set) })
	return set
}

func TestBoundedRunCompletes(t *testing.T) {
	var ticks []uint64
	desc := demo.Descriptor{Name: "count", Mode: demo.Bounded, Budget: demo.Budget{Ticks: 5},
		Entry: entryOf(sceneFunc(func(_ context.Context, tk demo.Tick) error {
			ticks = append(ticks, tk.N)
			return nil
		}))}

	set := acquire(t, engine.Options{}, subsystem.KindClock)
	res := New(zerolog.Nop()).Run(context.Background(), desc, set, assettest.Full(t))

	require.Equal(t, CompletedNormally, res.Outcome)
	require.NoError(t, res.Cause)
	require.EqualValues(t, 5, res.Ticks)
	require.Equal(t, []uint64{0, 1, 2, 3, 4}, ticks)

	env := &demo.Env{Set: set}
	require.EqualValues(t, 5, env.Clock().Ticks())
}

func TestSceneDoneCompletesEarly(t *testing.T) {
	desc := demo.Descriptor{Name: "done", Mode: demo.Bounded, Budget: demo.Budget{Ticks: 100},
		Entry: entryOf(sceneFunc(func(_ context.Context, tk demo.Tick) error {
			if tk.N == 2 {
				return demo.ErrDone
			}
			return nil
		}))}

	res := New(zerolog.Nop()).Run(context.Background(), desc, subsystem.NewSet(), assettest.Full(t))
	require.Equal(t, CompletedNormally, res.Outcome)
	require.EqualValues(t, 3, res.Ticks)
}

func TestTickErrorFails(t *testing.T) {
	boom := errors.New("boom")
	desc := demo.Descriptor{Name: "fail", Mode: demo.Bounded, Budget: demo.Budget{Ticks: 10},
		Entry: entryOf(sceneFunc(func(_ context.Context, tk demo.Tick) error {
			if tk.N == 1 {
				return boom
			}
			return nil
		}))}

	res := New(zerolog.Nop()).Run(context.Background(), desc, subsystem.NewSet(), assettest.Full(t))
	require.Equal(t, Failed, res.Outcome)
	require.ErrorIs(t, res.Cause, boom)
}

func TestPanicsBecomeFailures(t *testing.T) {
	t.Run("tick", func(t *testing.T) {
		desc := demo.Descriptor{Name: "panic", Mode: demo.Bounded, Budget: demo.Budget{Ticks: 10},
			Entry: entryOf(sceneFunc(func(context.Context, demo.Tick) error { panic("scene exploded") }))}
		res := New(zerolog.Nop()).Run(context.Background(), desc, subsystem.NewSet(), assettest.Full(t))
		require.Equal(t, Failed, res.Outcome)
		var pe *subsystem.PanicError
		require.ErrorAs(t, res.Cause, &pe)
		require.Equal(t, "scene exploded", pe.Value)
		require.NotEmpty(t, pe.Stack)
	})
	t.Run("entry", func(t *testing.T) {
		desc := demo.Descriptor{Name: "panic", Mode: demo.Bounded, Budget: demo.Budget{Ticks: 10},
			Entry: func(*demo.Env) (demo.Scene, error) { panic("entry exploded") }}
		res := New(zerolog.Nop()).Run(context.Background(), desc, subsystem.NewSet(), assettest.Full(t))
		require.Equal(t, Failed, res.Outcome)
		var pe *subsystem.PanicError
		require.ErrorAs(t, res.Cause, &pe)
	})
}

func TestEntryErrorFails(t *testing.T) {
	desc := demo.Descriptor{Name: "broken", Mode: demo.Bounded, Budget: demo.Budget{Ticks: 1},
		Entry: func(*demo.Env) (demo.Scene, error) { return nil, errors.New("no scene for you") }}
	res := New(zerolog.Nop()).Run(context.Background(), desc, subsystem.NewSet(), assettest.Full(t))
	require.Equal(t, Failed, res.Outcome)
	require.ErrorContains(t, res.Cause, "no scene for you")
	require.Zero(t, res.Ticks)
}

func TestInteractiveCancelExitsByUser(t *testing.T) {
	var ticks atomic.Int64
	ctx, cancel := context.WithCancel(context.Background())
	desc := demo.Descriptor{Name: "forever", Mode: demo.Interactive,
		Entry: entryOf(sceneFunc(func(context.Context, demo.Tick) error {
			if ticks.Add(1) == 3 {
				cancel()
			}
			return nil
		}))}

	set := acquire(t, engine.Options{}, subsystem.KindInput, subsystem.KindClock)
	done := make(chan Result, 1)
	go func() { done <- New(zerolog.Nop()).Run(ctx, desc, set, assettest.Full(t)) }()

	select {
	case res := <-done:
		require.Equal(t, ExitedByUser, res.Outcome)
		require.EqualValues(t, 3, res.Ticks)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not unwind after cancellation")
	}
}

func TestCancelledContextInsideTickExitsByUser(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	desc := demo.Descriptor{Name: "blocking", Mode: demo.Interactive,
		Entry: entryOf(sceneFunc(func(ctx context.Context, _ demo.Tick) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		}))}
	set := acquire(t, engine.Options{}, subsystem.KindInput)
	res := New(zerolog.Nop()).Run(ctx, desc, set, assettest.Full(t))
	require.Equal(t, ExitedByUser, res.Outcome)
	require.NoError(t, res.Cause)
}

func TestScriptedQuitAndPause(t *testing.T) {
	var seen []uint64
	desc := demo.Descriptor{Name: "keys", Mode: demo.Interactive,
		Entry: entryOf(sceneFunc(func(_ context.Context, tk demo.Tick) error {
			seen = append(seen, tk.N)
			return nil
		}))}
	script := input.Replay(
		input.ActionTogglePause, // paused, no tick
		input.ActionStep,        // single tick while paused
		input.ActionTogglePause, // resumed
		input.ActionQuit,
	)
	set := acquire(t, engine.Options{InputSources: []input.SourceFactory{script}}, subsystem.KindInput, subsystem.KindClock)

	res := New(zerolog.Nop()).Run(context.Background(), desc, set, assettest.Full(t))
	require.Equal(t, ExitedByUser, res.Outcome)
	require.Equal(t, []uint64{0, 1}, seen)
}

func TestTickLimitCapsInteractiveRun(t *testing.T) {
	desc := demo.Descriptor{Name: "forever", Mode: demo.Interactive,
		Entry: entryOf(sceneFunc(func(context.Context, demo.Tick) error { return nil }))}
	set := acquire(t, engine.Options{}, subsystem.KindInput)

	res := New(zerolog.Nop(), WithTickLimit(4), WithTPS(1000)).Run(context.Background(), desc, set, assettest.Full(t))
	require.Equal(t, CompletedNormally, res.Outcome)
	require.EqualValues(t, 4, res.Ticks)
}

func TestDurationBudget(t *testing.T) {
	now := time.Unix(0, 0)
	fake := func() time.Time { return now }
	desc := demo.Descriptor{Name: "timed", Mode: demo.Bounded, Budget: demo.Budget{Duration: time.Second},
		Entry: entryOf(sceneFunc(func(context.Context, demo.Tick) error {
			now = now.Add(300 * time.Millisecond)
			return nil
		}))}
	res := New(zerolog.Nop(), WithNow(fake)).Run(context.Background(), desc, subsystem.NewSet(), assettest.Full(t))
	require.Equal(t, CompletedNormally, res.Outcome)
	require.EqualValues(t, 4, res.Ticks)
	require.Equal(t, 1200*time.Millisecond, res.Elapsed)
}

type drawScene struct{ draws int }

func (s *drawScene) Tick(context.Context, demo.Tick) error { return nil }
func (s *drawScene) Draw(*render.Context)                  { s.draws++ }

func TestDrawerPresentsEveryTick(t *testing.T) {
	scene := &drawScene{}
	desc := demo.Descriptor{Name: "draw", Mode: demo.Bounded, Budget: demo.Budget{Ticks: 3}, Entry: entryOf(scene)}
	set := acquire(t, engine.Options{}, subsystem.KindAssets, subsystem.KindRenderer)

	res := New(zerolog.Nop()).Run(context.Background(), desc, set, assettest.Full(t))
	require.Equal(t, CompletedNormally, res.Outcome)
	require.Equal(t, 3, scene.draws)
	require.EqualValues(t, 3, res.Frames)
}

func TestCancelledBeforeFirstFrame(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	desc := demo.Descriptor{Name: "never", Mode: demo.Interactive,
		Entry: entryOf(sceneFunc(func(context.Context, demo.Tick) error {
			t.Fatal("tick after cancellation")
			return nil
		}))}
	set := acquire(t, engine.Options{}, subsystem.KindInput)

	res := New(zerolog.Nop()).Run(ctx, desc, set, assettest.Full(t))
	require.Equal(t, ExitedByUser, res.Outcome)
	require.Zero(t, res.Ticks)
}
