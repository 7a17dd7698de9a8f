/*
Package video implements the unit frame-differencing video encoder.

The first frame of a clip is kept as a base image. Every following frame is
subtracted pixel by pixel from its predecessor, using packed pixel values,
and the difference is split into 16 by 16 blocks. Each block is run-length
encoded; blocks that didn't change at all are dropped and the rest are
deduplicated into a block dictionary shared by the whole clip. The distinct
difference values are likewise collected into a color dictionary so blocks
can refer to them by identifier.

A clip is written as

	{img:<image> pal:<colors> blk:<blocks> fms:<frames>}

where each frame maps block positions to block identifiers. An older
generation of the format inlines the runs of each block into the frame
instead; it is only written when explicitly requested and the two layouts
are never mixed within one document.
*/
package video

import (
	"github.com/bodgit/unitconv/image"
	"github.com/bodgit/unitconv/rle"
	"github.com/bodgit/unitconv/source"
	"github.com/bodgit/unitconv/tile"
	"github.com/pkg/errors"
)

var (
	// ErrFrameSize is returned when a frame differs in size from the first
	// frame of the clip.
	ErrFrameSize = source.ErrFrameSize
	// ErrNoFrames is returned when a clip has no frames at all.
	ErrNoFrames = errors.New("video: no frames")
	// ErrState is returned when encoder methods are called out of order.
	ErrState = errors.New("video: encoder used out of order")
)

// Entry places block Block of the dictionary at tile (X, Y).
type Entry struct {
	X, Y  int
	Block int
}

// Frame lists the changed blocks of one frame transition in raster order.
// Blocks that didn't change are absent.
type Frame struct {
	Entries []Entry
}

// Clip is a fully encoded clip.
type Clip struct {
	// Image is the first frame
	Image *image.Image
	// Colors holds each distinct difference value, indexed by identifier
	Colors []int32
	// Blocks holds the runs of each distinct block, indexed by identifier.
	// Run values are difference values, not color identifiers.
	Blocks [][]rle.Run[int32]
	// Frames holds one entry per frame transition
	Frames []Frame
}

// Point returns the tile position of e.
func (e Entry) Point() tile.Point {
	return tile.Point{X: e.X, Y: e.Y}
}
