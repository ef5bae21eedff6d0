// Package render provides the rendering context subsystem: an RGBA frame
// that demos draw into and a backend that presents it.
package render

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"path"

	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"engine-demo/internal/assets"
)

// ErrReleased is returned by calls on a released context.
var ErrReleased = errors.New("render context released")

// Driver runs the frame loop natively, for example inside a window event
// loop. frame is invoked once per tick until it reports done or an error.
type Driver interface {
	Drive(ctx context.Context, frame func() (done bool, err error)) error
}

type backend interface {
	present(frame *image.RGBA) error
	driver() Driver
	close() error
}

// Context is one live rendering surface.
type Context struct {
	cfg      Config
	frame    *image.RGBA
	cellBuf  []byte
	frames   uint64
	backend  backend
	released bool
}

// New allocates a surface and opens the backend selected at build time.
func New(cfg Config) (*Context, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	b, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	c := &Context{
		cfg:     cfg,
		frame:   image.NewRGBA(image.Rect(0, 0, cfg.Width, cfg.Height)),
		backend: b,
	}
	c.Clear()
	return c, nil
}

// Config returns the surface configuration.
func (c *Context) Config() Config { return c.cfg }

// Bounds returns the drawable area.
func (c *Context) Bounds() image.Rectangle { return c.frame.Bounds() }

// Frame exposes the surface demos draw into.
func (c *Context) Frame() *image.RGBA { return c.frame }

// Frames reports how many frames were presented.
func (c *Context) Frames() uint64 { return c.frames }

// Driver returns the native loop driver, or nil when the backend has none.
func (c *Context) Driver() Driver { return c.backend.driver() }

// Clear fills the surface with the configured background.
func (c *Context) Clear() { c.Fill(c.cfg.Background) }

// Fill paints the whole surface with col.
func (c *Context) Fill(col color.Color) {
	draw.Draw(c.frame, c.frame.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// BlitCells draws a w*h cell grid scaled to fit the surface, mapping each
// cell value through palette.
func (c *Context) BlitCells(cells []uint8, w, h int, palette []color.RGBA) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return
	}
	if need := 4 * w * h; cap(c.cellBuf) < need {
		c.cellBuf = make([]byte, need)
	}
	buf := c.cellBuf[:4*w*h]
	fillPaletteRGBA(buf, cells, palette)
	c.blitScaled(buf, w, h)
}

// BlitBinary draws a 0/1 grid using on and off colours.
func (c *Context) BlitBinary(cells []uint8, w, h int, on, off color.Color) {
	if w <= 0 || h <= 0 || len(cells) != w*h {
		return
	}
	if need := 4 * w * h; cap(c.cellBuf) < need {
		c.cellBuf = make([]byte, need)
	}
	buf := c.cellBuf[:4*w*h]
	fillBinaryRGBA(buf, cells, on, off)
	c.blitScaled(buf, w, h)
}

// cellScale is the integer zoom that fits a w*h grid on the surface.
func (c *Context) cellScale(w, h int) int {
	return max(1, min(c.cfg.Width/w, c.cfg.Height/h))
}

// FillCell paints cell (x, y) of a w*h grid drawn with BlitCells or
// BlitBinary.
func (c *Context) FillCell(x, y, w, h int, col color.Color) {
	if w <= 0 || h <= 0 || x < 0 || y < 0 || x >= w || y >= h {
		return
	}
	s := c.cellScale(w, h)
	r := image.Rect(x*s, y*s, (x+1)*s, (y+1)*s).Intersect(c.frame.Bounds())
	draw.Draw(c.frame, r, image.NewUniform(col), image.Point{}, draw.Src)
}

func (c *Context) blitScaled(buf []byte, w, h int) {
	fw, fh := c.cfg.Width, c.cfg.Height
	scale := c.cellScale(w, h)
	for y := 0; y < h*scale && y < fh; y++ {
		src := (y / scale) * w * 4
		dst := c.frame.PixOffset(0, y)
		for x := 0; x < w*scale && x < fw; x++ {
			s := src + (x/scale)*4
			copy(c.frame.Pix[dst+x*4:dst+x*4+4], buf[s:s+4])
		}
	}
}

// DrawImage composites img with its top-left corner at at.
func (c *Context) DrawImage(img image.Image, at image.Point) {
	r := img.Bounds().Sub(img.Bounds().Min).Add(at)
	draw.Draw(c.frame, r, img, img.Bounds().Min, draw.Over)
}

// DrawText writes s with the built-in bitmap face. at is the baseline origin.
func (c *Context) DrawText(s string, at image.Point, col color.Color) {
	d := font.Drawer{
		Dst:  c.frame,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(at.X, at.Y),
	}
	d.DrawString(s)
}

// Present hands the current frame to the backend.
func (c *Context) Present() error {
	if c.released {
		return ErrReleased
	}
	if err := c.backend.present(c.frame); err != nil {
		return fmt.Errorf("present frame %d: %w", c.frames, err)
	}
	c.frames++
	return nil
}

// Snapshot encodes the current frame as BMP.
func (c *Context) Snapshot(w io.Writer) error {
	return bmp.Encode(w, c.frame)
}

// LoadTexture decodes a PNG texture below the configured texture directory.
func (c *Context) LoadTexture(l *assets.Loader, name string) (*image.RGBA, error) {
	rc, err := l.OpenStream(path.Join(c.cfg.Textures, name))
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	img, err := png.Decode(rc)
	if err != nil {
		return nil, fmt.Errorf("decode texture %q: %w", name, err)
	}
	rgba := image.NewRGBA(img.Bounds().Sub(img.Bounds().Min))
	draw.Draw(rgba, rgba.Bounds(), img, img.Bounds().Min, draw.Src)
	return rgba, nil
}

// Release closes the backend. The surface must not be used afterwards.
func (c *Context) Release() error {
	if c.released {
		return nil
	}
	c.released = true
	return c.backend.close()
}
