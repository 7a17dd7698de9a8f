package source

import (
	"image"
	"strings"

	"github.com/disintegration/gift"
	"github.com/pkg/errors"
)

// FitMode selects how frames are brought to a multiple of the block size.
type FitMode int

const (
	// FitNone passes frames through untouched.
	FitNone FitMode = iota
	// FitCrop discards the right and bottom edges.
	FitCrop
	// FitScale resamples the whole frame.
	FitScale
)

// ParseFitMode parses the name of a fit mode.
func ParseFitMode(s string) (FitMode, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return FitNone, nil
	case "crop":
		return FitCrop, nil
	case "scale":
		return FitScale, nil
	}
	return FitNone, errors.Errorf("source: unknown fit mode %q", s)
}

// Fit returns a Source whose frames have been cropped or scaled down to the
// nearest multiple of align in each direction, never smaller than align.
func Fit(src Source, mode FitMode, align int) Source {
	if mode == FitNone {
		return src
	}
	return &fit{src: src, mode: mode, align: align}
}

type fit struct {
	src   Source
	mode  FitMode
	align int
	g     *gift.GIFT

	// Size of the first frame before fitting
	width, height int
	n             int
}

func (s *fit) filter(width, height int) *gift.GIFT {
	w := width - width%s.align
	if w < s.align {
		w = s.align
	}
	h := height - height%s.align
	if h < s.align {
		h = s.align
	}

	switch s.mode {
	case FitCrop:
		return gift.New(gift.CropToSize(w, h, gift.TopLeftAnchor))
	default:
		return gift.New(gift.Resize(w, h, gift.LanczosResampling))
	}
}

func (s *fit) Next() (*Frame, error) {
	f, err := s.src.Next()
	if err != nil {
		return nil, err
	}

	if s.n == 0 {
		s.width, s.height = f.Width, f.Height
	} else if f.Width != s.width || f.Height != s.height {
		return nil, &StreamError{Frame: s.n, Err: errors.Wrapf(ErrFrameSize, "%dx%d, expected %dx%d", f.Width, f.Height, s.width, s.height)}
	}
	s.n++

	if f.Width%s.align == 0 && f.Height%s.align == 0 {
		return f, nil
	}

	if s.g == nil {
		s.g = s.filter(f.Width, f.Height)
	}

	src := f.Image()
	dst := image.NewRGBA(s.g.Bounds(src.Bounds()))
	s.g.Draw(dst, src)

	return FromImage(dst), nil
}
