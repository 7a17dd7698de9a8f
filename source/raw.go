package source

import (
	"io"

	"github.com/pkg/errors"
)

var errNoSize = errors.New("source: raw frames need a width and height")

// Raw reads headerless rgb24 frames, as produced by
// ffmpeg -f rawvideo -pix_fmt rgb24.
type Raw struct {
	r      io.Reader
	width  int
	height int
	n      int
}

// NewRaw returns a Source reading width by height frames from r.
func NewRaw(r io.Reader, width, height int) (*Raw, error) {
	if width <= 0 || height <= 0 {
		return nil, errNoSize
	}
	return &Raw{
		r:      r,
		width:  width,
		height: height,
	}, nil
}

// Next returns the next frame. A clean end of stream returns io.EOF while a
// truncated frame is a *StreamError.
func (s *Raw) Next() (*Frame, error) {
	f := NewFrame(s.width, s.height)
	switch _, err := io.ReadFull(s.r, f.Pix); err {
	case nil:
	case io.EOF:
		return nil, io.EOF
	default:
		return nil, &StreamError{Frame: s.n, Err: err}
	}
	s.n++
	return f, nil
}
