/*
Package tile implements the partitioning of a frame into blocks.

A frame is split into 16 by 16 pixel tiles in raster order, left to right and
then top to bottom. Within a tile, values are taken row by row so the
fastest varying coordinate is the x coordinate inside the tile. Frames must
be an exact multiple of the tile size in both directions; there is no
handling of partial tiles.
*/
package tile

import (
	"fmt"

	"github.com/pkg/errors"
)

const (
	// Size is the width and height of a tile in pixels.
	Size = 16
	// Pixels is the number of pixels in a tile.
	Pixels = Size * Size
)

// ErrUnaligned is returned when a dimension is not a multiple of Size.
var ErrUnaligned = errors.New("tile: dimensions are not a multiple of the tile size")

// Point is the position of a tile, measured in tiles.
type Point struct {
	X, Y int
}

func (p Point) String() string {
	return fmt.Sprintf("(%d %d)", p.X, p.Y)
}

// Grid describes how a frame of a given size is split into tiles.
type Grid struct {
	width, height int
}

// NewGrid returns the grid for a width by height frame.
func NewGrid(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 || width%Size != 0 || height%Size != 0 {
		return nil, errors.Wrapf(ErrUnaligned, "%dx%d", width, height)
	}
	return &Grid{width: width, height: height}, nil
}

// Columns returns the number of tiles across.
func (g *Grid) Columns() int {
	return g.width / Size
}

// Rows returns the number of tiles down.
func (g *Grid) Rows() int {
	return g.height / Size
}

// Len returns the number of pixels in a frame.
func (g *Grid) Len() int {
	return g.width * g.height
}

// Tiles returns the position of every tile in raster order.
func (g *Grid) Tiles() []Point {
	tiles := make([]Point, 0, g.Columns()*g.Rows())
	for ty := 0; ty < g.Rows(); ty++ {
		for tx := 0; tx < g.Columns(); tx++ {
			tiles = append(tiles, Point{tx, ty})
		}
	}
	return tiles
}

// Index returns the offset into the frame of pixel (x, y) of tile p.
func (g *Grid) Index(p Point, x, y int) int {
	return (x + p.X*Size) + (y+p.Y*Size)*g.width
}

// Extract copies the values of tile p from src into dst, which is grown if
// required, and returns it.
func Extract[T any](g *Grid, dst, src []T, p Point) []T {
	dst = dst[:0]
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			dst = append(dst, src[g.Index(p, x, y)])
		}
	}
	return dst
}
