/*
Package palette implements the dictionaries used to deduplicate recurring
values across a clip.

Identifiers are dense and handed out in the order keys are first seen,
starting at zero. Dictionaries only ever grow; once a key has an identifier
it keeps it for the lifetime of the dictionary.
*/
package palette

import (
	"encoding/binary"

	"github.com/bodgit/unitconv/rle"
)

// Dictionary maps keys to identifiers in first-seen order.
type Dictionary[K comparable] struct {
	ids  map[K]int
	keys []K
}

// New returns an empty dictionary.
func New[K comparable]() *Dictionary[K] {
	return &Dictionary[K]{
		ids: make(map[K]int),
	}
}

// Add returns the identifier of k, assigning the next free identifier if k
// hasn't been seen before.
func (d *Dictionary[K]) Add(k K) int {
	if id, ok := d.ids[k]; ok {
		return id
	}
	id := len(d.keys)
	d.ids[k] = id
	d.keys = append(d.keys, k)
	return id
}

// ID returns the identifier of k, if any.
func (d *Dictionary[K]) ID(k K) (int, bool) {
	id, ok := d.ids[k]
	return id, ok
}

// Len returns the number of keys.
func (d *Dictionary[K]) Len() int {
	return len(d.keys)
}

// Keys returns a copy of the keys ordered by identifier.
func (d *Dictionary[K]) Keys() []K {
	return append([]K(nil), d.keys...)
}

// Blocks is a dictionary of run-length encoded blocks. Two blocks are the
// same key only if their runs are identical.
type Blocks struct {
	d    *Dictionary[string]
	runs [][]rle.Run[int32]
}

// NewBlocks returns an empty block dictionary.
func NewBlocks() *Blocks {
	return &Blocks{
		d: New[string](),
	}
}

func key(runs []rle.Run[int32]) string {
	b := make([]byte, 0, len(runs)*8)
	for _, r := range runs {
		b = binary.LittleEndian.AppendUint32(b, uint32(r.Count))
		b = binary.LittleEndian.AppendUint32(b, uint32(r.Value))
	}
	return string(b)
}

// Add returns the identifier of runs, assigning the next free identifier if
// they haven't been seen before.
func (b *Blocks) Add(runs []rle.Run[int32]) int {
	n := b.d.Len()
	id := b.d.Add(key(runs))
	if id == n {
		b.runs = append(b.runs, append([]rle.Run[int32](nil), runs...))
	}
	return id
}

// At returns the runs with identifier id.
func (b *Blocks) At(id int) []rle.Run[int32] {
	return b.runs[id]
}

// Len returns the number of blocks.
func (b *Blocks) Len() int {
	return b.d.Len()
}

// All returns every block ordered by identifier.
func (b *Blocks) All() [][]rle.Run[int32] {
	return append([][]rle.Run[int32](nil), b.runs...)
}
