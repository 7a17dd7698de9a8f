package video

import (
	"github.com/bodgit/unitconv/rle"
	"github.com/bodgit/unitconv/tile"
	"github.com/pkg/errors"
)

// Diff returns cur - prev for each packed pixel. Zero means the pixel didn't
// change.
func Diff(prev, cur []int32) ([]int32, error) {
	if len(prev) != len(cur) {
		return nil, errors.Wrapf(ErrFrameSize, "%d and %d pixels", len(prev), len(cur))
	}

	d := make([]int32, len(cur))
	for i := range cur {
		d[i] = cur[i] - prev[i]
	}
	return d, nil
}

// unchanged reports whether runs describe a block with no differences.
func unchanged(runs []rle.Run[int32]) bool {
	return len(runs) == 1 && runs[0].Count == tile.Pixels && runs[0].Value == 0
}
