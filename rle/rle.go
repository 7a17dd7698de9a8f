// Package rle implements run-length encoding of comparable values.
package rle

import "github.com/pkg/errors"

// ErrEmpty is returned when encoding an empty sequence.
var ErrEmpty = errors.New("rle: empty sequence")

// Run is Count repetitions of Value.
type Run[T comparable] struct {
	Count int
	Value T
}

// Encode compresses seq into runs. Only adjacent equal values are merged.
func Encode[T comparable](seq []T) ([]Run[T], error) {
	if len(seq) == 0 {
		return nil, ErrEmpty
	}

	runs := []Run[T]{{Count: 1, Value: seq[0]}}
	for _, v := range seq[1:] {
		if last := &runs[len(runs)-1]; last.Value == v {
			last.Count++
			continue
		}
		runs = append(runs, Run[T]{Count: 1, Value: v})
	}

	return runs, nil
}

// Expand reverses Encode.
func Expand[T comparable](runs []Run[T]) []T {
	seq := make([]T, 0, Len(runs))
	for _, r := range runs {
		for i := 0; i < r.Count; i++ {
			seq = append(seq, r.Value)
		}
	}
	return seq
}

// Len returns the length of the sequence described by runs.
func Len[T comparable](runs []Run[T]) (n int) {
	for _, r := range runs {
		n += r.Count
	}
	return
}
