package demos

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path"
	"sort"

	"engine-demo/internal/core"
	"engine-demo/internal/demo"
	"engine-demo/internal/render"
)

var errNoTextures = errors.New("no textures found")

type sprite struct {
	img    *image.RGBA
	pos    image.Point
	dx, dy int
}

type textures struct {
	bounds  image.Rectangle
	sprites []*sprite
}

func newTextures(env *demo.Env) (demo.Scene, error) {
	r, l := env.Renderer(), env.Assets()
	if r == nil || l == nil {
		return nil, errNoRenderer
	}
	dir := r.Config().Textures
	names, err := l.Glob(path.Join(dir, "*.png"))
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("%w in %q", errNoTextures, dir)
	}
	sort.Strings(names)

	rng := core.NewRNG(env.Seed).Source()
	s := &textures{bounds: r.Bounds()}
	for _, name := range names {
		img, err := r.LoadTexture(l, path.Base(name))
		if err != nil {
			return nil, err
		}
		maxX := max(1, s.bounds.Dx()-img.Bounds().Dx())
		maxY := max(1, s.bounds.Dy()-img.Bounds().Dy())
		s.sprites = append(s.sprites, &sprite{
			img: img,
			pos: image.Pt(rng.IntN(maxX), rng.IntN(maxY)),
			dx:  1 + rng.IntN(2),
			dy:  1 + rng.IntN(2),
		})
	}
	env.Log.Info().Int("textures", len(s.sprites)).Msg("textures loaded")
	return s, nil
}

func (s *textures) Tick(context.Context, demo.Tick) error {
	for _, sp := range s.sprites {
		sp.pos.X += sp.dx
		sp.pos.Y += sp.dy
		w, h := sp.img.Bounds().Dx(), sp.img.Bounds().Dy()
		if sp.pos.X < 0 || sp.pos.X+w > s.bounds.Dx() {
			sp.dx = -sp.dx
			sp.pos.X = min(max(sp.pos.X, 0), max(0, s.bounds.Dx()-w))
		}
		if sp.pos.Y < 0 || sp.pos.Y+h > s.bounds.Dy() {
			sp.dy = -sp.dy
			sp.pos.Y = min(max(sp.pos.Y, 0), max(0, s.bounds.Dy()-h))
		}
	}
	return nil
}

func (s *textures) Draw(r *render.Context) {
	r.Clear()
	for _, sp := range s.sprites {
		r.DrawImage(sp.img, sp.pos)
	}
}
