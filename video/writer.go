package video

import (
	"io"
	"strings"

	"github.com/bodgit/unitconv/image"
	"github.com/bodgit/unitconv/rle"
	"github.com/bodgit/unitconv/unit"
	"github.com/pkg/errors"
)

// Layout selects how frames refer to blocks.
type Layout int

const (
	// LayoutReference writes each frame entry as a block identifier.
	LayoutReference Layout = iota
	// LayoutInline writes each frame entry as the runs of its block and
	// omits the block dictionary. This is the older generation of the
	// format.
	LayoutInline
)

// ParseLayout parses the name of a layout.
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(s) {
	case "", "reference", "ref":
		return LayoutReference, nil
	case "inline":
		return LayoutInline, nil
	}
	return LayoutReference, errors.Errorf("video: unknown layout %q", s)
}

// Field widths of the binary encoding, in bytes.
const (
	colorsWidth  = 3
	blocksWidth  = 3
	runsWidth    = 2
	countWidth   = 2
	colorWidth   = 3
	entriesWidth = 2
	posWidth     = 2
	blockWidth   = 3
)

// Options controls how a clip is written.
type Options struct {
	unit.Options
	Layout Layout
}

var errColor = errors.New("video: block references an unknown color")

type encoder struct {
	c *Clip
	o Options
	// Color identifiers by difference value
	ids map[int32]int
}

func (e *encoder) colors() (string, error) {
	if e.o.Format == unit.Text {
		items := make([]string, len(e.c.Colors))
		for i, v := range e.c.Colors {
			items[i] = unit.Int(v)
		}
		return unit.Seq(items), nil
	}

	b, err := unit.AppendSeq(nil, len(e.c.Colors), colorsWidth)
	if err != nil {
		return "", errors.Wrap(err, "colors")
	}
	for _, v := range e.c.Colors {
		b = unit.AppendInt32(b, v)
	}
	return e.o.Leaf(b)
}

func (e *encoder) runsText(runs []rle.Run[int32]) (string, error) {
	items := make([]string, len(runs))
	for i, r := range runs {
		id, ok := e.ids[r.Value]
		if !ok {
			return "", errColor
		}
		items[i] = unit.Pair(unit.Int(r.Count), unit.Int(id))
	}
	return unit.Seq(items), nil
}

func (e *encoder) appendRuns(b []byte, runs []rle.Run[int32]) ([]byte, error) {
	b, err := unit.AppendFixed(b, len(runs), runsWidth)
	if err != nil {
		return nil, errors.Wrap(err, "runs")
	}
	for _, r := range runs {
		id, ok := e.ids[r.Value]
		if !ok {
			return nil, errColor
		}
		if b, err = unit.AppendFixed(b, r.Count, countWidth); err != nil {
			return nil, errors.Wrap(err, "run count")
		}
		if b, err = unit.AppendFixed(b, id, colorWidth); err != nil {
			return nil, errors.Wrap(err, "color")
		}
	}
	return b, nil
}

func (e *encoder) blocks() (string, error) {
	if e.o.Format == unit.Text {
		items := make([]string, len(e.c.Blocks))
		for i, runs := range e.c.Blocks {
			s, err := e.runsText(runs)
			if err != nil {
				return "", err
			}
			items[i] = s
		}
		return unit.Seq(items), nil
	}

	b, err := unit.AppendSeq(nil, len(e.c.Blocks), blocksWidth)
	if err != nil {
		return "", errors.Wrap(err, "blocks")
	}
	for _, runs := range e.c.Blocks {
		if b, err = e.appendRuns(b, runs); err != nil {
			return "", err
		}
	}
	return e.o.Leaf(b)
}

func (e *encoder) frameText(f Frame) (string, error) {
	// An unchanged frame is written as an empty sequence
	if len(f.Entries) == 0 {
		return unit.Seq(nil), nil
	}

	fields := make([]unit.Field, len(f.Entries))
	for i, entry := range f.Entries {
		fields[i].Key = unit.Pair(unit.Int(entry.X), unit.Int(entry.Y))
		switch e.o.Layout {
		case LayoutInline:
			s, err := e.runsText(e.c.Blocks[entry.Block])
			if err != nil {
				return "", err
			}
			fields[i].Value = s
		default:
			fields[i].Value = unit.Int(entry.Block)
		}
	}
	return unit.Map(fields...), nil
}

func (e *encoder) frame(f Frame) (string, error) {
	if e.o.Format == unit.Text {
		return e.frameText(f)
	}

	b, err := unit.AppendSeq(nil, len(f.Entries), entriesWidth)
	if err != nil {
		return "", errors.Wrap(err, "frame entries")
	}
	for _, entry := range f.Entries {
		if b, err = unit.AppendFixed(b, entry.X, posWidth); err != nil {
			return "", errors.Wrap(err, "x")
		}
		if b, err = unit.AppendFixed(b, entry.Y, posWidth); err != nil {
			return "", errors.Wrap(err, "y")
		}
		switch e.o.Layout {
		case LayoutInline:
			b, err = e.appendRuns(b, e.c.Blocks[entry.Block])
		default:
			b, err = unit.AppendFixed(b, entry.Block, blockWidth)
		}
		if err != nil {
			return "", errors.Wrap(err, "block")
		}
	}
	return e.o.Leaf(b)
}

func (e *encoder) encode() (string, error) {
	e.ids = make(map[int32]int, len(e.c.Colors))
	for i, v := range e.c.Colors {
		e.ids[v] = i
	}

	img, err := image.Marshal(e.c.Image, e.o.Options)
	if err != nil {
		return "", err
	}

	pal, err := e.colors()
	if err != nil {
		return "", err
	}

	frames := make([]string, len(e.c.Frames))
	for i, f := range e.c.Frames {
		if frames[i], err = e.frame(f); err != nil {
			return "", errors.Wrapf(err, "frame %d", i)
		}
	}

	fields := []unit.Field{
		{Key: "img", Value: img},
		{Key: "pal", Value: pal},
	}
	if e.o.Layout != LayoutInline {
		blk, err := e.blocks()
		if err != nil {
			return "", err
		}
		fields = append(fields, unit.Field{Key: "blk", Value: blk})
	}
	fields = append(fields, unit.Field{Key: "fms", Value: unit.Seq(frames)})

	return unit.Map(fields...), nil
}

// Marshal returns the unit representation of the clip.
func (c *Clip) Marshal(o Options) (string, error) {
	e := encoder{c: c, o: o}
	return e.encode()
}

// MarshalText returns the text representation of the clip using the current
// layout. It implements the encoding.TextMarshaler interface.
func (c *Clip) MarshalText() ([]byte, error) {
	s, err := c.Marshal(Options{})
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Write writes the unit representation of c to w.
func Write(w io.Writer, c *Clip, o Options) error {
	s, err := c.Marshal(o)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
