//go:build !ebiten

package render

import (
	"bytes"
	"image"
	"image/color"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"engine-demo/internal/assets"
	"engine-demo/internal/testutil/assettest"
)

func openLoader(t *testing.T, root assets.Root) *assets.Loader {
	t.Helper()
	l, err := assets.Open(root)
	require.NoError(t, err)
	t.Cleanup(func() { l.Release() })
	return l
}

func TestLoadConfig(t *testing.T) {
	l := openLoader(t, assettest.Root(t, map[string]string{ManifestPath: assettest.RendererManifest}))

	cfg, err := LoadConfig(l)
	require.NoError(t, err)
	require.Equal(t, "test surface", cfg.Title)
	require.Equal(t, 64, cfg.Width)
	require.Equal(t, 48, cfg.Height)
	require.Equal(t, color.RGBA{R: 0x10, G: 0x20, B: 0x30, A: 0xff}, cfg.Background)
	require.Equal(t, DefaultConfig().Textures, cfg.Textures)
}

func TestLoadConfigMissingManifest(t *testing.T) {
	l := openLoader(t, assettest.Root(t, nil))
	_, err := LoadConfig(l)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoadConfigRejectsBadSurface(t *testing.T) {
	l := openLoader(t, assettest.Root(t, map[string]string{ManifestPath: "width = 0\n"}))
	_, err := LoadConfig(l)
	require.ErrorContains(t, err, "invalid surface size")
}

func TestParseHex(t *testing.T) {
	c, err := ParseHex("#ff000080")
	require.NoError(t, err)
	require.Equal(t, color.RGBA{R: 0xff, A: 0x80}, c)

	_, err = ParseHex("#abc")
	require.Error(t, err)
}

func TestBlitCellsScalesToSurface(t *testing.T) {
	ctx, err := New(Config{Width: 8, Height: 8, Scale: 1, Background: color.RGBA{A: 0xff}})
	require.NoError(t, err)
	defer ctx.Release()

	palette := []color.RGBA{{A: 0xff}, {R: 0xff, A: 0xff}}
	ctx.BlitCells([]uint8{1, 0, 0, 1}, 2, 2, palette)

	require.Equal(t, palette[1], ctx.Frame().RGBAAt(0, 0))
	require.Equal(t, palette[1], ctx.Frame().RGBAAt(3, 3))
	require.Equal(t, palette[0], ctx.Frame().RGBAAt(4, 0))
	require.Equal(t, palette[1], ctx.Frame().RGBAAt(7, 7))
}

func TestBlitBinaryAndFillCell(t *testing.T) {
	ctx, err := New(Config{Width: 9, Height: 6, Scale: 1, Background: color.RGBA{A: 0xff}})
	require.NoError(t, err)
	defer ctx.Release()

	on := color.RGBA{R: 0x30, G: 0x30, B: 0x40, A: 0xff}
	off := color.RGBA{R: 0xd0, G: 0xd0, B: 0xc0, A: 0xff}
	mark := color.RGBA{G: 0xff, A: 0xff}
	// 3x2 grid at scale 3.
	ctx.BlitBinary([]uint8{1, 0, 2, 0, 0, 1}, 3, 2, on, off)
	ctx.FillCell(1, 1, 3, 2, mark)
	ctx.FillCell(3, 0, 3, 2, mark)

	require.Equal(t, on, ctx.Frame().RGBAAt(0, 0))
	require.Equal(t, off, ctx.Frame().RGBAAt(3, 0))
	require.Equal(t, on, ctx.Frame().RGBAAt(8, 2), "any non-zero cell is on")
	require.Equal(t, mark, ctx.Frame().RGBAAt(4, 4))
	require.Equal(t, off, ctx.Frame().RGBAAt(0, 5))
	require.Equal(t, on, ctx.Frame().RGBAAt(8, 5))
}

func TestDrawTextMarksPixels(t *testing.T) {
	ctx, err := New(DefaultConfig())
	require.NoError(t, err)
	defer ctx.Release()

	before := append([]byte(nil), ctx.Frame().Pix...)
	ctx.DrawText("hello", image.Pt(4, 16), color.White)
	require.NotEqual(t, before, ctx.Frame().Pix)
}

func TestPresentAndRelease(t *testing.T) {
	ctx, err := New(DefaultConfig())
	require.NoError(t, err)
	require.Nil(t, ctx.Driver(), "headless backend has no native loop")

	require.NoError(t, ctx.Present())
	require.NoError(t, ctx.Present())
	require.EqualValues(t, 2, ctx.Frames())

	require.NoError(t, ctx.Release())
	require.NoError(t, ctx.Release())
	require.ErrorIs(t, ctx.Present(), ErrReleased)
}

func TestLoadTextureAndSnapshot(t *testing.T) {
	root := assettest.Full(t)
	l := openLoader(t, root)

	cfg, err := LoadConfig(l)
	require.NoError(t, err)
	ctx, err := New(cfg)
	require.NoError(t, err)
	defer ctx.Release()

	tex, err := ctx.LoadTexture(l, "checker.png")
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 8), tex.Bounds())
	require.Zero(t, l.OpenStreams(), "texture stream is closed after decoding")

	ctx.DrawImage(tex, image.Pt(2, 2))
	require.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, ctx.Frame().RGBAAt(2, 2))

	var buf bytes.Buffer
	require.NoError(t, ctx.Snapshot(&buf))
	require.Equal(t, "BM", buf.String()[:2])
}
