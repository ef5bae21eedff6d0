// Package assettest builds throwaway asset roots for tests.
package assettest

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"engine-demo/internal/assets"
)

// RendererManifest is a small valid renderer manifest.
const RendererManifest = `
title = "test surface"
width = 64
height = 48
scale = 1
background = "#102030"
`

// AudioManifest is a short, quiet tone manifest.
const AudioManifest = `
sample_rate = 8000
channels = 2
frequency = 440.0
gain = 0.25
duration = "50ms"
`

// Maze is a 7x5 map with a single corridor from S to G.
const Maze = `
#######
#S..#.#
###.#.#
#...#G#
#.#...#
#######
`

// Root writes files below a temporary directory and returns it as a root.
func Root(t *testing.T, files map[string]string) assets.Root {
	t.Helper()
	dir := t.TempDir()
	for rel, body := range files {
		WriteFile(t, dir, rel, []byte(body))
	}
	return assets.NewRoot(dir)
}

// Full returns a root holding every manifest the built-in demos read.
func Full(t *testing.T) assets.Root {
	t.Helper()
	root := Root(t, map[string]string{
		"renderer/renderer.toml": RendererManifest,
		"audio/audio.toml":       AudioManifest,
		"maps/maze.txt":          Maze,
		"world/world.toml":       "sim = \"life\"\n[params]\nw = \"16\"\nh = \"12\"\n",
	})
	WriteFile(t, root.Path(), "renderer/textures/checker.png", Checker(t, 8))
	return root
}

// WriteFile writes data at rel below dir, creating parents.
func WriteFile(t *testing.T, dir, rel string, data []byte) {
	t.Helper()
	p := filepath.Join(dir, filepath.FromSlash(rel))
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(t, os.WriteFile(p, data, 0o600))
}

// Checker returns a PNG checkerboard of size n*n.
func Checker(t *testing.T, n int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			if (x+y)%2 == 0 {
				img.Set(x, y, color.White)
			} else {
				img.Set(x, y, color.Black)
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}
