//go:build !ebiten

package render

import "image"

// headless keeps frames in memory; it has no native loop.
type headless struct {
	last *image.RGBA
}

func newBackend(Config) (backend, error) { return &headless{}, nil }

func (h *headless) present(frame *image.RGBA) error {
	h.last = frame
	return nil
}

func (h *headless) driver() Driver { return nil }

func (h *headless) close() error {
	h.last = nil
	return nil
}
