/*
Package unit implements the building blocks of the unit document format
consumed by the vnix runtime.

A document is text. Structure is expressed with a small bracket grammar;
sequences are written as [a b c], maps as {k:v k:v} and pairs as (a b).
Leaves may instead be binary payloads which are base64 encoded, optionally
after compression, and wrapped in backticks so the runtime can tell them
apart from structural text.

Binary payloads use a tagged integer encoding where the first byte selects
one of several fixed-size little-endian representations, and collections
are introduced with a sequence tag followed by a fixed-width length.
*/
package unit

import (
	"strconv"
	"strings"
)

// Seq renders items as a sequence.
func Seq(items []string) string {
	var b strings.Builder
	b.WriteByte('[')
	for i, s := range items {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s)
	}
	b.WriteByte(']')
	return b.String()
}

// Pair renders a and b as a pair.
func Pair(a, b string) string {
	return "(" + a + " " + b + ")"
}

// Field is a single key-value entry of a map.
type Field struct {
	Key   string
	Value string
}

// Map renders fields as a map, preserving their order.
func Map(fields ...Field) string {
	var b strings.Builder
	b.WriteByte('{')
	for i, f := range fields {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(f.Key)
		b.WriteByte(':')
		b.WriteString(f.Value)
	}
	b.WriteByte('}')
	return b.String()
}

// Int renders an integer.
func Int[T ~int | ~int32 | ~int64](v T) string {
	return strconv.FormatInt(int64(v), 10)
}
