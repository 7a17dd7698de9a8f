package image

import (
	"io"

	"github.com/bodgit/unitconv/rle"
	"github.com/bodgit/unitconv/unit"
	"github.com/pkg/errors"
)

var errSize = errors.New("image: pixel count doesn't match size")

type encoder struct {
	m *Image
	o unit.Options
}

// flat renders every pixel.
func (e *encoder) flat() (string, error) {
	if e.o.Format == unit.Text {
		items := make([]string, len(e.m.Pix))
		for i, p := range e.m.Pix {
			items[i] = unit.Int(p)
		}
		return unit.Seq(items), nil
	}

	b, err := unit.AppendSeq(make([]byte, 0, 5+len(e.m.Pix)*2), len(e.m.Pix), 4)
	if err != nil {
		return "", err
	}
	for _, p := range e.m.Pix {
		b = unit.AppendInt(b, p)
	}
	return e.o.Leaf(b)
}

// runs renders runs of equal pixels.
func (e *encoder) runs() (string, error) {
	runs, err := rle.Encode(e.m.Pix)
	if err != nil {
		return "", err
	}

	if e.o.Format == unit.Text {
		items := make([]string, len(runs))
		for i, r := range runs {
			items[i] = unit.Pair(unit.Int(r.Count), unit.Int(r.Value))
		}
		return unit.Seq(items), nil
	}

	b, err := unit.AppendSeq(nil, len(runs), 4)
	if err != nil {
		return "", err
	}
	for _, r := range runs {
		b = unit.AppendInt(b, int32(r.Count))
		b = unit.AppendInt(b, r.Value)
	}
	return e.o.Leaf(b)
}

func (e *encoder) document(format, payload string) string {
	return unit.Map(
		unit.Field{Key: "size", Value: unit.Pair(unit.Int(e.m.Width), unit.Int(e.m.Height))},
		unit.Field{Key: "fmt", Value: format},
		unit.Field{Key: "img", Value: payload},
	)
}

// encode picks the shorter of the flat and run-length forms. Compressed
// documents always use the flat form.
func (e *encoder) encode() (string, error) {
	if len(e.m.Pix) == 0 || len(e.m.Pix) != e.m.Width*e.m.Height {
		return "", errSize
	}

	flat, err := e.flat()
	if err != nil {
		return "", err
	}
	if e.o.Format == unit.Compressed {
		return e.document(FormatRGB, flat), nil
	}

	runs, err := e.runs()
	if err != nil {
		return "", err
	}
	a, b := e.document(FormatRGB, flat), e.document(FormatRGBRLE, runs)
	if len(b) < len(a) {
		return b, nil
	}
	return a, nil
}

// Marshal returns the unit representation of m.
func Marshal(m *Image, o unit.Options) (string, error) {
	e := encoder{m: m, o: o}
	return e.encode()
}

// Encode writes the unit representation of m to w.
func Encode(w io.Writer, m *Image, o unit.Options) error {
	s, err := Marshal(m, o)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, s)
	return err
}
