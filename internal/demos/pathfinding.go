package demos

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"engine-demo/internal/core"
	"engine-demo/internal/demo"
	"engine-demo/internal/pathfind"
	"engine-demo/internal/render"
)

var errNoMarkers = errors.New("map needs a start and a goal")

var (
	wallColor  = color.RGBA{R: 0x30, G: 0x30, B: 0x40, A: 0xff}
	floorColor = color.RGBA{R: 0xd0, G: 0xd0, B: 0xc0, A: 0xff}
	pathColor  = color.RGBA{R: 0xe0, G: 0x40, B: 0x20, A: 0xff}
)

type pathScene struct {
	f    *pathfind.Finder
	rng  *rand.Rand
	free []pathfind.Point
	last []pathfind.Point
	log  zerolog.Logger
}

func newPathfinding(env *demo.Env) (demo.Scene, error) {
	f := env.Pathfinder()
	if f == nil {
		return nil, errors.New("pathfinder not acquired")
	}
	m := f.Map()
	if !m.HasStart || !m.HasGoal {
		return nil, errNoMarkers
	}
	var free []pathfind.Point
	for y := 0; y < m.Grid.H; y++ {
		for x := 0; x < m.Grid.W; x++ {
			if p := (pathfind.Point{X: x, Y: y}); m.Walkable(p) {
				free = append(free, p)
			}
		}
	}
	return &pathScene{f: f, rng: core.NewRNG(env.Seed).Source(), free: free, log: env.Log}, nil
}

// Tick answers one query: the map's own start/goal first, random pairs after.
func (s *pathScene) Tick(_ context.Context, t demo.Tick) error {
	from, to := s.f.Map().Start, s.f.Map().Goal
	if t.N > 0 {
		from = s.free[s.rng.IntN(len(s.free))]
		to = s.free[s.rng.IntN(len(s.free))]
	}
	path, err := s.f.Path(from, to)
	switch {
	case errors.Is(err, pathfind.ErrNoPath):
		s.last = nil
		s.log.Debug().Stringer("from", from).Stringer("to", to).Msg("unreachable")
		return nil
	case err != nil:
		return err
	}
	if t.N == 0 && len(path) == 0 {
		return fmt.Errorf("empty path from %s to %s", from, to)
	}
	s.last = path
	s.log.Debug().Stringer("from", from).Stringer("to", to).Int("len", len(path)).Msg("path")
	return nil
}

// Draw shows the map with the most recent path on top.
func (s *pathScene) Draw(r *render.Context) {
	m := s.f.Map()
	r.Clear()
	r.BlitBinary(m.Cells(), m.Grid.W, m.Grid.H, wallColor, floorColor)
	for _, p := range s.last {
		r.FillCell(p.X, p.Y, m.Grid.W, m.Grid.H, pathColor)
	}
}
