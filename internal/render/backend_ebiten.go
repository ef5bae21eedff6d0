//go:build ebiten

package render

import (
	"context"
	"errors"
	"image"

	"github.com/hajimehoshi/ebiten/v2"

	"engine-demo/internal/subsystem"
)

// window is the process-wide native window; ebiten only drives one.
var window = subsystem.NewSingleton("ebiten window")

type windowed struct {
	cfg     Config
	painter *framePainter
	game    *game
}

func newBackend(cfg Config) (backend, error) {
	if err := window.Claim(); err != nil {
		return nil, err
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width*cfg.Scale, cfg.Height*cfg.Scale)
	w := &windowed{cfg: cfg, painter: newFramePainter(cfg.Width, cfg.Height)}
	w.game = &game{w: w}
	return w, nil
}

func (w *windowed) present(frame *image.RGBA) error {
	w.painter.upload(frame)
	return nil
}

func (w *windowed) driver() Driver { return w }

func (w *windowed) close() error {
	w.painter.dispose()
	ebiten.SetWindowTitle("")
	window.Free()
	return nil
}

// Drive runs ebiten's game loop until frame reports done.
func (w *windowed) Drive(ctx context.Context, frame func() (bool, error)) error {
	w.game.frame = frame
	w.game.ctx = ctx
	w.game.err = nil
	err := ebiten.RunGame(w.game)
	if errors.Is(err, ebiten.Termination) {
		err = nil
	}
	if err != nil {
		return err
	}
	return w.game.err
}

// game adapts the frame callback to the ebiten.Game interface.
type game struct {
	w     *windowed
	ctx   context.Context
	frame func() (bool, error)
	err   error
}

func (g *game) Update() error {
	if err := g.ctx.Err(); err != nil {
		return ebiten.Termination
	}
	done, err := g.frame()
	if err != nil {
		g.err = err
		return ebiten.Termination
	}
	if done {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.w.painter.draw(screen, g.w.cfg.Scale)
}

func (g *game) Layout(int, int) (int, int) {
	return g.w.cfg.Width * g.w.cfg.Scale, g.w.cfg.Height * g.w.cfg.Scale
}

// framePainter mirrors the CPU frame into a single GPU image.
type framePainter struct {
	w, h int
	img  *ebiten.Image
}

func newFramePainter(w, h int) *framePainter {
	return &framePainter{w: w, h: h, img: ebiten.NewImage(w, h)}
}

func (fp *framePainter) upload(frame *image.RGBA) {
	if frame.Bounds().Dx() != fp.w || frame.Bounds().Dy() != fp.h {
		return
	}
	fp.img.WritePixels(frame.Pix)
}

func (fp *framePainter) draw(dst *ebiten.Image, scale int) {
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}

func (fp *framePainter) dispose() {
	fp.img.Dispose()
}
