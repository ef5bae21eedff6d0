package demos

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"engine-demo/internal/demo"
	"engine-demo/internal/render"
)

var errNoRenderer = errors.New("renderer not acquired")

type window struct {
	title string
	tick  uint64
}

func newWindow(env *demo.Env) (demo.Scene, error) {
	r := env.Renderer()
	if r == nil {
		return nil, errNoRenderer
	}
	return &window{title: r.Config().Title}, nil
}

func (w *window) Tick(_ context.Context, t demo.Tick) error {
	w.tick = t.N
	return nil
}

func (w *window) Draw(r *render.Context) {
	r.Fill(pulse(w.tick))
	r.DrawText(w.title, image.Pt(8, 16), color.White)
	r.DrawText(fmt.Sprintf("frame %d  [q] quit", w.tick), image.Pt(8, 32), color.White)
}

// pulse cycles the blue channel over 256 ticks.
func pulse(n uint64) color.RGBA {
	v := uint8(n % 256)
	if (n/256)%2 == 1 {
		v = 255 - v
	}
	return color.RGBA{R: 0x10, G: 0x10, B: v, A: 0xff}
}
