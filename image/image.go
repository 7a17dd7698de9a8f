/*
Package image implements the unit image encoder.

Each pixel is packed into a single integer with red in the most significant
byte and blue in the least, so a 24-bit color becomes a value between 0 and
0xffffff.

An image is written as a map holding its size, a format tag and the pixels:

	{size:(w h) fmt:rgb img:[p0 p1 ...]}
	{size:(w h) fmt:rgb.rle img:[(n0 p0) (n1 p1) ...]}

The flat rgb form lists every pixel, the rgb.rle form lists runs of equal
pixels. Unless compression is requested both are rendered and the shorter
one is kept. Binary payloads start with a sequence tag and a 32-bit length,
followed by each pixel, or each run count and pixel, as a tagged integer.
*/
package image

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/bodgit/unitconv/source"
	"github.com/ericpauley/go-quantize/quantize"
)

// Format tags.
const (
	FormatRGB    = "rgb"
	FormatRGBRLE = "rgb.rle"
)

// Image is a width by height grid of packed pixels.
type Image struct {
	Width  int
	Height int
	Pix    []int32
}

// FromFrame packs every pixel of f.
func FromFrame(f *source.Frame) *Image {
	return &Image{
		Width:  f.Width,
		Height: f.Height,
		Pix:    PackRGB(f.Pix),
	}
}

// FromImage packs every pixel of m. Alpha is discarded.
func FromImage(m image.Image) *Image {
	return FromFrame(source.FromImage(m))
}

// Quantize reduces m to at most n colors using median cut.
func Quantize(m image.Image, n int) *image.Paletted {
	b := m.Bounds()

	q := quantize.MedianCutQuantizer{}
	pm := image.NewPaletted(b, q.Quantize(make(color.Palette, 0, n), m))
	draw.Draw(pm, b, m, b.Min, draw.Src)

	// Adjust image so that top-left corner is at (0, 0)
	if pm.Rect.Min != (image.Point{}) {
		dup := *pm
		dup.Rect = dup.Rect.Sub(dup.Rect.Min)
		pm = &dup
	}

	return pm
}
