/*
Package codec implements the compression stage applied to binary unit
payloads before they are armored as text.

The vnix runtime decompresses gzip, which is therefore the default. zstd and
lz4 are available for consumers that understand them.
*/
package codec

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/pkg/errors"
)

// Delimiter marks the start and end of an armored payload.
const Delimiter = "`"

// Codec is a lossless compression algorithm.
type Codec interface {
	Name() string
	Compress(p []byte) ([]byte, error)
	Decompress(p []byte) ([]byte, error)
}

// Error reports a failure of the compression primitive.
type Error struct {
	Codec string
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("codec: %s: %v", e.Codec, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

var errUnknown = errors.New("codec: unknown codec")

// ByName returns the codec registered under name.
func ByName(name string) (Codec, error) {
	switch strings.ToLower(name) {
	case "", "gzip", "gz":
		return Gzip{}, nil
	case "zstd", "zst":
		return Zstd{}, nil
	case "lz4":
		return LZ4{}, nil
	}
	return nil, errors.Wrap(errUnknown, name)
}

// Armor compresses p with c, if c is not nil, and returns the base64
// encoding of the result wrapped in delimiters.
func Armor(c Codec, p []byte) (string, error) {
	if c != nil {
		var err error
		if p, err = c.Compress(p); err != nil {
			return "", err
		}
	}
	return Delimiter + base64.StdEncoding.EncodeToString(p) + Delimiter, nil
}

// Unarmor reverses Armor.
func Unarmor(c Codec, s string) ([]byte, error) {
	if len(s) < 2 || !strings.HasPrefix(s, Delimiter) || !strings.HasSuffix(s, Delimiter) {
		return nil, errors.New("codec: missing delimiter")
	}
	p, err := base64.StdEncoding.DecodeString(s[1 : len(s)-1])
	if err != nil {
		return nil, errors.Wrap(err, "codec")
	}
	if c == nil {
		return p, nil
	}
	return c.Decompress(p)
}

// Gzip compresses with gzip at the best compression level.
type Gzip struct{}

// Name returns "gzip".
func (Gzip) Name() string { return "gzip" }

// Compress compresses p.
func (g Gzip) Compress(p []byte) ([]byte, error) {
	b := new(bytes.Buffer)
	w, err := gzip.NewWriterLevel(b, gzip.BestCompression)
	if err != nil {
		return nil, &Error{g.Name(), err}
	}
	if _, err := w.Write(p); err != nil {
		w.Close()
		return nil, &Error{g.Name(), err}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{g.Name(), err}
	}
	return b.Bytes(), nil
}

// Decompress decompresses p.
func (g Gzip) Decompress(p []byte) ([]byte, error) {
	r, err := gzip.NewReader(bytes.NewReader(p))
	if err != nil {
		return nil, &Error{g.Name(), err}
	}
	defer r.Close()

	b, err := io.ReadAll(r)
	if err != nil {
		return nil, &Error{g.Name(), err}
	}
	return b, nil
}

// Zstd compresses with zstd.
type Zstd struct{}

// Name returns "zstd".
func (Zstd) Name() string { return "zstd" }

// Compress compresses p.
func (z Zstd) Compress(p []byte) ([]byte, error) {
	enc, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, &Error{z.Name(), err}
	}
	defer enc.Close()

	return enc.EncodeAll(p, nil), nil
}

// Decompress decompresses p.
func (z Zstd) Decompress(p []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return nil, &Error{z.Name(), err}
	}
	defer dec.Close()

	b, err := dec.DecodeAll(p, nil)
	if err != nil {
		return nil, &Error{z.Name(), err}
	}
	return b, nil
}

// LZ4 compresses with the lz4 frame format.
type LZ4 struct{}

// Name returns "lz4".
func (LZ4) Name() string { return "lz4" }

// Compress compresses p.
func (l LZ4) Compress(p []byte) ([]byte, error) {
	b := new(bytes.Buffer)
	w := lz4.NewWriter(b)
	if _, err := w.Write(p); err != nil {
		w.Close()
		return nil, &Error{l.Name(), err}
	}
	if err := w.Close(); err != nil {
		return nil, &Error{l.Name(), err}
	}
	return b.Bytes(), nil
}

// Decompress decompresses p.
func (l LZ4) Decompress(p []byte) ([]byte, error) {
	b, err := io.ReadAll(lz4.NewReader(bytes.NewReader(p)))
	if err != nil {
		return nil, &Error{l.Name(), err}
	}
	return b, nil
}
