/*
Package source implements the frame sources feeding the video encoder.

A source yields equally sized RGB frames in order and returns io.EOF once
the stream is exhausted. Any failure to decode a frame is reported as a
*StreamError and ends the stream.
*/
package source

import (
	"fmt"
	"image"
	"image/draw"
	"io"

	"github.com/pkg/errors"
)

// Frame is a single RGB frame stored row by row with three bytes per
// pixel.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

// NewFrame returns a black width by height frame.
func NewFrame(width, height int) *Frame {
	return &Frame{
		Width:  width,
		Height: height,
		Pix:    make([]byte, width*height*3),
	}
}

// FromImage converts m into a frame with its top-left corner at (0, 0).
func FromImage(m image.Image) *Frame {
	b := m.Bounds()
	rgba, ok := m.(*image.RGBA)
	if !ok || rgba.Rect.Min != (image.Point{}) {
		rgba = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(rgba, rgba.Bounds(), m, b.Min, draw.Src)
	}

	f := NewFrame(b.Dx(), b.Dy())
	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			i := rgba.PixOffset(x, y)
			j := (y*f.Width + x) * 3
			copy(f.Pix[j:j+3], rgba.Pix[i:i+3])
		}
	}
	return f
}

// Image returns the frame as an *image.RGBA.
func (f *Frame) Image() *image.RGBA {
	m := image.NewRGBA(image.Rect(0, 0, f.Width, f.Height))
	for i := 0; i < f.Width*f.Height; i++ {
		copy(m.Pix[i*4:i*4+3], f.Pix[i*3:i*3+3])
		m.Pix[i*4+3] = 0xff
	}
	return m
}

// Len returns the number of pixels.
func (f *Frame) Len() int {
	return f.Width * f.Height
}

// Source yields frames until it returns io.EOF.
type Source interface {
	Next() (*Frame, error)
}

// ReadCloser is a Source backed by a resource that must be released.
type ReadCloser interface {
	Source
	io.Closer
}

// ErrFrameSize is returned when a frame differs in size from the first frame
// of its stream.
var ErrFrameSize = errors.New("source: frame size mismatch")

// StreamError is returned when a frame could not be decoded.
type StreamError struct {
	Frame int
	Err   error
}

func (e *StreamError) Error() string {
	return fmt.Sprintf("source: frame %d: %v", e.Frame, e.Err)
}

func (e *StreamError) Unwrap() error {
	return e.Err
}

// Slice is a Source over frames already in memory.
type Slice struct {
	frames []*Frame
}

// NewSlice returns a Source yielding frames in order.
func NewSlice(frames ...*Frame) *Slice {
	return &Slice{frames: frames}
}

// Next returns the next frame.
func (s *Slice) Next() (*Frame, error) {
	if len(s.frames) == 0 {
		return nil, io.EOF
	}
	f := s.frames[0]
	s.frames = s.frames[1:]
	return f, nil
}
