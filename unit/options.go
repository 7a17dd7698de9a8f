package unit

import (
	"strings"

	"github.com/bodgit/unitconv/codec"
	"github.com/pkg/errors"
)

// Format selects how leaves of a document are written.
type Format int

const (
	// Text writes every leaf using the bracket grammar.
	Text Format = iota
	// Binary writes leaves in the binary encoding, armored as base64.
	Binary
	// Compressed writes leaves in the binary encoding, compressed and then
	// armored as base64.
	Compressed
)

var formatNames = map[Format]string{
	Text:       "text",
	Binary:     "binary",
	Compressed: "zip",
}

func (f Format) String() string {
	if s, ok := formatNames[f]; ok {
		return s
	}
	return "unknown"
}

// ParseFormat parses the name of a format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "text":
		return Text, nil
	case "binary", "bin":
		return Binary, nil
	case "zip", "compressed":
		return Compressed, nil
	}
	return Text, errors.Errorf("unit: unknown format %q", s)
}

// Options controls how a document is written.
type Options struct {
	Format Format
	// Codec is used when Format is Compressed. A nil Codec means gzip.
	Codec codec.Codec
}

func (o Options) codec() codec.Codec {
	if o.Codec == nil {
		return codec.Gzip{}
	}
	return o.Codec
}

// Leaf armors the binary payload p according to the options.
func (o Options) Leaf(p []byte) (string, error) {
	switch o.Format {
	case Compressed:
		return codec.Armor(o.codec(), p)
	default:
		return codec.Armor(nil, p)
	}
}
