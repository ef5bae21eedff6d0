package demos

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"engine-demo/internal/demo"
	"engine-demo/internal/world"
)

type bench struct {
	w     *world.World
	log   zerolog.Logger
	every uint64
	start time.Time
	total uint64
}

func newBench(env *demo.Env) (demo.Scene, error) {
	w := env.World()
	if w == nil {
		return nil, errNoWorld
	}
	every, err := strconv.ParseUint(env.Setting("report_every", "100"), 10, 64)
	if err != nil || every == 0 {
		return nil, fmt.Errorf("report_every must be a positive integer, got %q", env.Setting("report_every", ""))
	}
	return &bench{w: w, log: env.Log, every: every, start: time.Now()}, nil
}

func (b *bench) Tick(_ context.Context, t demo.Tick) error {
	b.w.Step()
	b.total++
	if (t.N+1)%b.every == 0 {
		secs := time.Since(b.start).Seconds()
		b.log.Info().Uint64("generations", b.total).Int("live", b.w.Live()).
			Float64("gen_per_sec", float64(b.total)/max(secs, 1e-9)).Msg("bench")
	}
	return nil
}
