package source

import (
	"image"
	"image/draw"
	"image/gif"
	"io"
)

// GIF is a Source over the frames of an animated GIF. Each frame is
// composited onto the logical screen honouring the disposal method of the
// previous frame.
type GIF struct {
	g      *gif.GIF
	canvas *image.RGBA
	n      int
	// Restore is applied before drawing the next frame
	restore func()
}

// NewGIF decodes every frame of the GIF read from r.
func NewGIF(r io.Reader) (*GIF, error) {
	g, err := gif.DecodeAll(r)
	if err != nil {
		return nil, &StreamError{Frame: 0, Err: err}
	}
	if len(g.Image) == 0 {
		return nil, &StreamError{Frame: 0, Err: io.ErrUnexpectedEOF}
	}

	w, h := g.Config.Width, g.Config.Height
	if w == 0 || h == 0 {
		// Some encoders leave the logical screen empty
		b := g.Image[0].Bounds()
		w, h = b.Max.X, b.Max.Y
	}

	return &GIF{
		g:      g,
		canvas: image.NewRGBA(image.Rect(0, 0, w, h)),
	}, nil
}

// Next returns the next composited frame.
func (s *GIF) Next() (*Frame, error) {
	if s.n >= len(s.g.Image) {
		return nil, io.EOF
	}

	if s.restore != nil {
		s.restore()
		s.restore = nil
	}

	m := s.g.Image[s.n]
	b := m.Bounds().Intersect(s.canvas.Bounds())

	var disposal byte
	if s.n < len(s.g.Disposal) {
		disposal = s.g.Disposal[s.n]
	}

	switch disposal {
	case gif.DisposalBackground:
		s.restore = func() {
			draw.Draw(s.canvas, b, image.Transparent, image.Point{}, draw.Src)
		}
	case gif.DisposalPrevious:
		saved := image.NewRGBA(b)
		draw.Draw(saved, b, s.canvas, b.Min, draw.Src)
		s.restore = func() {
			draw.Draw(s.canvas, b, saved, b.Min, draw.Src)
		}
	}

	draw.Draw(s.canvas, b, m, b.Min, draw.Over)
	s.n++

	return FromImage(s.canvas), nil
}
