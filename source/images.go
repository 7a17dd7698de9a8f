package source

import (
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"os"

	_ "github.com/xfmoulet/qoi" // register decoder
)

// Images is a Source reading one still image per frame.
type Images struct {
	paths []string
	n     int
}

// NewImages returns a Source decoding each of paths in turn. Any format
// registered with the image package is accepted.
func NewImages(paths []string) *Images {
	return &Images{paths: paths}
}

// Next returns the next frame.
func (s *Images) Next() (*Frame, error) {
	if s.n >= len(s.paths) {
		return nil, io.EOF
	}

	m, err := decodeFile(s.paths[s.n])
	if err != nil {
		return nil, &StreamError{Frame: s.n, Err: err}
	}
	s.n++

	return FromImage(m), nil
}

func decodeFile(file string) (image.Image, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, _, err := image.Decode(f)
	return m, err
}
