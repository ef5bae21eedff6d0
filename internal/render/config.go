package render

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"engine-demo/internal/assets"
)

// ManifestPath is where the renderer manifest lives below the asset root.
const ManifestPath = "renderer/renderer.toml"

// Config describes the rendering surface.
type Config struct {
	Title      string
	Width      int
	Height     int
	Scale      int
	Background color.RGBA
	Textures   string
}

// DefaultConfig is used when a demo draws without an asset root.
func DefaultConfig() Config {
	return Config{
		Title:      "engine demo",
		Width:      320,
		Height:     240,
		Scale:      2,
		Background: color.RGBA{A: 0xff},
		Textures:   "renderer/textures",
	}
}

type fileConfig struct {
	Title      string `toml:"title"`
	Width      int    `toml:"width"`
	Height     int    `toml:"height"`
	Scale      int    `toml:"scale"`
	Background string `toml:"background"`
	Textures   string `toml:"textures"`
}

// LoadConfig reads the renderer manifest. A missing manifest surfaces as
// fs.ErrNotExist.
func LoadConfig(l *assets.Loader) (Config, error) {
	cfg := DefaultConfig()

	var raw fileConfig
	meta, err := l.DecodeTOML(ManifestPath, &raw)
	if err != nil {
		return Config{}, fmt.Errorf("load renderer config: %w", err)
	}
	if meta.IsDefined("title") {
		cfg.Title = strings.TrimSpace(raw.Title)
	}
	if meta.IsDefined("width") {
		cfg.Width = raw.Width
	}
	if meta.IsDefined("height") {
		cfg.Height = raw.Height
	}
	if meta.IsDefined("scale") {
		cfg.Scale = raw.Scale
	}
	if meta.IsDefined("background") {
		bg, err := ParseHex(raw.Background)
		if err != nil {
			return Config{}, fmt.Errorf("parse background: %w", err)
		}
		cfg.Background = bg
	}
	if meta.IsDefined("textures") {
		cfg.Textures = strings.Trim(strings.TrimSpace(raw.Textures), "/")
	}
	return cfg, cfg.Validate()
}

// Validate rejects surfaces that cannot be allocated.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("invalid surface size %dx%d", c.Width, c.Height)
	}
	if c.Scale <= 0 {
		return fmt.Errorf("invalid scale %d", c.Scale)
	}
	return nil
}

// ParseHex parses "#rrggbb" or "#rrggbbaa".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
