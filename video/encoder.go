package video

import (
	"io"

	"github.com/bodgit/unitconv/image"
	"github.com/bodgit/unitconv/palette"
	"github.com/bodgit/unitconv/rle"
	"github.com/bodgit/unitconv/source"
	"github.com/bodgit/unitconv/tile"
	"github.com/pkg/errors"
)

type state int

const (
	stateInit state = iota
	stateBase
	stateFinal
)

// TraceFunc is called after frame n has been differenced against its
// predecessor.
type TraceFunc func(n int, cur *source.Frame, diff []int32) error

// Encoder encodes a single clip. The dictionaries it builds belong to that
// clip only, so a new Encoder is needed for each conversion.
type Encoder struct {
	// Trace, if set, is called for every frame transition
	Trace TraceFunc

	state  state
	grid   *tile.Grid
	base   *image.Image
	prev   []int32
	colors *palette.Dictionary[int32]
	blocks *palette.Blocks
	frames []Frame

	block []int32
}

// NewEncoder returns an Encoder ready for the first frame of a clip.
func NewEncoder() *Encoder {
	return &Encoder{
		colors: palette.New[int32](),
		blocks: palette.NewBlocks(),
		block:  make([]int32, 0, tile.Pixels),
	}
}

// Base sets f as the first frame of the clip.
func (e *Encoder) Base(f *source.Frame) error {
	if e.state != stateInit {
		return errors.Wrap(ErrState, "base frame already set")
	}
	if len(f.Pix) != f.Len()*3 {
		return errors.Wrapf(ErrFrameSize, "%dx%d frame has %d bytes", f.Width, f.Height, len(f.Pix))
	}

	grid, err := tile.NewGrid(f.Width, f.Height)
	if err != nil {
		return err
	}

	e.grid = grid
	e.base = image.FromFrame(f)
	e.prev = e.base.Pix
	e.state = stateBase

	return nil
}

// Add differences f against the previous frame and returns the resulting
// block map.
func (e *Encoder) Add(f *source.Frame) (Frame, error) {
	if e.state != stateBase {
		return Frame{}, errors.Wrap(ErrState, "no base frame")
	}
	if f.Width != e.base.Width || f.Height != e.base.Height || len(f.Pix) != f.Len()*3 {
		return Frame{}, errors.Wrapf(ErrFrameSize, "frame %d is %dx%d, expected %dx%d", len(e.frames)+1, f.Width, f.Height, e.base.Width, e.base.Height)
	}

	cur := image.PackRGB(f.Pix)
	diff, err := Diff(e.prev, cur)
	if err != nil {
		return Frame{}, err
	}

	if e.Trace != nil {
		if err := e.Trace(len(e.frames), f, diff); err != nil {
			return Frame{}, err
		}
	}

	frame, err := e.encode(diff)
	if err != nil {
		return Frame{}, err
	}

	e.frames = append(e.frames, frame)
	e.prev = cur

	return frame, nil
}

func (e *Encoder) encode(diff []int32) (Frame, error) {
	var frame Frame
	for _, p := range e.grid.Tiles() {
		e.block = tile.Extract(e.grid, e.block, diff, p)

		runs, err := rle.Encode(e.block)
		if err != nil {
			return Frame{}, err
		}
		if unchanged(runs) {
			continue
		}

		// Every color must have an identifier before the block does
		for _, v := range e.block {
			e.colors.Add(v)
		}

		frame.Entries = append(frame.Entries, Entry{
			X:     p.X,
			Y:     p.Y,
			Block: e.blocks.Add(runs),
		})
	}
	return frame, nil
}

// Clip finishes the clip. The Encoder can't be used afterwards.
func (e *Encoder) Clip() (*Clip, error) {
	if e.state != stateBase {
		return nil, errors.Wrap(ErrState, "no base frame")
	}
	e.state = stateFinal

	return &Clip{
		Image:  e.base,
		Colors: e.colors.Keys(),
		Blocks: e.blocks.All(),
		Frames: e.frames,
	}, nil
}

// Encode reads src to the end and returns the encoded clip. Any error
// aborts the whole clip.
func (e *Encoder) Encode(src source.Source) (*Clip, error) {
	f, err := src.Next()
	switch {
	case err == io.EOF:
		return nil, ErrNoFrames
	case err != nil:
		return nil, err
	}

	if err := e.Base(f); err != nil {
		return nil, err
	}

	for {
		f, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if _, err := e.Add(f); err != nil {
			return nil, err
		}
	}

	return e.Clip()
}

// Encode encodes src with a new Encoder.
func Encode(src source.Source) (*Clip, error) {
	return NewEncoder().Encode(src)
}
