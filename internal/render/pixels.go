package render

import "image/color"

// fillBinaryRGBA writes on for every non-zero cell and off for the rest.
func fillBinaryRGBA(buf []byte, cells []uint8, on, off color.Color) {
	pick := [2]color.RGBA{
		color.RGBAModel.Convert(off).(color.RGBA),
		color.RGBAModel.Convert(on).(color.RGBA),
	}
	for i, c := range cells {
		col := pick[min(c, 1)]
		copy(buf[i*4:i*4+4], []byte{col.R, col.G, col.B, col.A})
	}
}

// fillPaletteRGBA converts cell values into RGBA pixels using a palette. When
// the palette is empty the buffer is cleared to transparent black.
func fillPaletteRGBA(buf []byte, cells []uint8, palette []color.RGBA) {
	if len(palette) == 0 {
		clear(buf[:len(cells)*4])
		return
	}

	last := len(palette) - 1
	for i, c := range cells {
		idx := min(int(c), last)
		base := i * 4
		col := palette[idx]
		buf[base+0] = col.R
		buf[base+1] = col.G
		buf[base+2] = col.B
		buf[base+3] = col.A
	}
}
