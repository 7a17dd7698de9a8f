package unitconv

import (
	"encoding/binary"
	"fmt"
	stdimage "image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/bodgit/unitconv/source"
	"github.com/bodgit/unitconv/video"
)

func savePNG(file string, m stdimage.Image) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := png.Encode(f, m); err != nil {
		return err
	}
	return f.Close()
}

// diffFrame visualises a difference frame. Each value is taken as four
// big-endian bytes and the low three become the color.
func diffFrame(width, height int, diff []int32) *source.Frame {
	f := source.NewFrame(width, height)
	var b [4]byte
	for i, d := range diff {
		binary.BigEndian.PutUint32(b[:], uint32(d))
		copy(f.Pix[i*3:i*3+3], b[1:])
	}
	return f
}

// tracer writes out<n>.png and out<n>d.png into dir for every transition.
func tracer(dir string) video.TraceFunc {
	return func(n int, cur *source.Frame, diff []int32) error {
		if err := savePNG(filepath.Join(dir, fmt.Sprintf("out%d.png", n)), cur.Image()); err != nil {
			return err
		}
		return savePNG(filepath.Join(dir, fmt.Sprintf("out%dd.png", n)), diffFrame(cur.Width, cur.Height, diff).Image())
	}
}
