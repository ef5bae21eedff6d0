//go:build !ebiten

package input

func defaultSources() []Source { return nil }
