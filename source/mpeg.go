package source

import (
	"io"

	"github.com/gen2brain/mpeg"
	"github.com/pkg/errors"
)

var errNoVideo = errors.New("source: no video stream")

// MPEG is a Source over the video stream of an MPEG-1 file.
type MPEG struct {
	v *mpeg.Video
	n int
}

// NewMPEG opens the MPEG-1 program or video stream read from r.
func NewMPEG(r io.Reader) (*MPEG, error) {
	m, err := mpeg.New(r)
	if err != nil {
		return nil, &StreamError{Frame: 0, Err: err}
	}

	v := m.Video()
	if v == nil || v.Width() == 0 || v.Height() == 0 {
		return nil, &StreamError{Frame: 0, Err: errNoVideo}
	}

	return &MPEG{v: v}, nil
}

// Next returns the next decoded frame.
func (s *MPEG) Next() (*Frame, error) {
	frame := s.v.Decode()
	if frame == nil {
		if s.v.HasEnded() {
			return nil, io.EOF
		}
		return nil, &StreamError{Frame: s.n, Err: io.ErrUnexpectedEOF}
	}
	s.n++

	// The decoder reuses its frame buffers so copy the pixels out
	return FromImage(frame.RGBA()), nil
}
