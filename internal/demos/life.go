package demos

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"engine-demo/internal/demo"
	"engine-demo/internal/render"
	"engine-demo/internal/world"
)

var errNoWorld = errors.New("world not acquired")

var lifePalette = []color.RGBA{
	{A: 0xff},
	{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	{R: 0x40, G: 0x80, B: 0xff, A: 0xff},
}

type lifeScene struct {
	w *world.World
}

func newLife(env *demo.Env) (demo.Scene, error) {
	w := env.World()
	if w == nil {
		return nil, errNoWorld
	}
	if env.Renderer() == nil {
		return nil, errNoRenderer
	}
	return &lifeScene{w: w}, nil
}

func (s *lifeScene) Tick(context.Context, demo.Tick) error {
	s.w.Step()
	return nil
}

func (s *lifeScene) Reset(seed int64) { s.w.Reset(seed) }

func (s *lifeScene) Draw(r *render.Context) {
	sim := s.w.Sim()
	size := sim.Size()
	r.Clear()
	r.BlitCells(sim.Cells(), size.W, size.H, lifePalette)
	r.DrawText(fmt.Sprintf("%s gen %d", sim.Name(), s.w.Generation()), image.Pt(4, 12), color.RGBA{R: 0xff, A: 0xff})
}
