package unit

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

// Type tags understood by the runtime.
const (
	TagInt    byte = 3
	TagSeq    byte = 11
	TagZero   byte = 13
	TagInt8   byte = 14
	TagInt16  byte = 15
	TagUint8  byte = 16
	TagUint16 byte = 17
)

// ErrOverflow is returned when a value doesn't fit in its fixed-width field.
var ErrOverflow = errors.New("unit: value overflows fixed-width field")

// AppendInt appends the smallest tagged encoding of v to dst. The ranges are
// checked in order, so 200 is written as an unsigned byte rather than a
// signed 16-bit value.
func AppendInt(dst []byte, v int32) []byte {
	switch {
	case v == 0:
		return append(dst, TagZero)
	case v >= math.MinInt8 && v <= math.MaxInt8:
		return append(dst, TagInt8, byte(int8(v)))
	case v >= 0 && v <= math.MaxUint8:
		return append(dst, TagUint8, byte(v))
	case v >= math.MinInt16 && v <= math.MaxInt16:
		return binary.LittleEndian.AppendUint16(append(dst, TagInt16), uint16(int16(v)))
	case v >= 0 && v <= math.MaxUint16:
		return binary.LittleEndian.AppendUint16(append(dst, TagUint16), uint16(v))
	default:
		return binary.LittleEndian.AppendUint32(append(dst, TagInt), uint32(v))
	}
}

// AppendInt32 appends v as four little-endian bytes with no tag.
func AppendInt32(dst []byte, v int32) []byte {
	return binary.LittleEndian.AppendUint32(dst, uint32(v))
}

// AppendFixed appends the unsigned value v as width little-endian bytes with
// no tag.
func AppendFixed(dst []byte, v, width int) ([]byte, error) {
	if v < 0 || (width < 8 && uint64(v) >= 1<<(8*uint(width))) {
		return dst, ErrOverflow
	}
	for i := 0; i < width; i++ {
		dst = append(dst, byte(v>>(8*i)))
	}
	return dst, nil
}

// AppendSeq appends a sequence header for n elements using a width byte
// length.
func AppendSeq(dst []byte, n, width int) ([]byte, error) {
	return AppendFixed(append(dst, TagSeq), n, width)
}
