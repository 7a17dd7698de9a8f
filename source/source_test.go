package source_test

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/unitconv/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rgbFrame(w, h int, c byte) []byte {
	return bytes.Repeat([]byte{c, c + 1, c + 2}, w*h)
}

func drain(t *testing.T, s source.Source) []*source.Frame {
	t.Helper()

	var frames []*source.Frame
	for {
		f, err := s.Next()
		if err == io.EOF {
			return frames
		}
		require.NoError(t, err)
		frames = append(frames, f)
	}
}

func TestFrame(t *testing.T) {
	f := source.NewFrame(2, 1)
	copy(f.Pix, []byte{1, 2, 3, 4, 5, 6})
	assert.Equal(t, 2, f.Len())

	m := f.Image()
	assert.Equal(t, color.RGBA{1, 2, 3, 0xff}, m.RGBAAt(0, 0))
	assert.Equal(t, color.RGBA{4, 5, 6, 0xff}, m.RGBAAt(1, 0))

	assert.Equal(t, f, source.FromImage(m))
}

func TestSlice(t *testing.T) {
	a, b := source.NewFrame(16, 16), source.NewFrame(16, 16)
	assert.Equal(t, []*source.Frame{a, b}, drain(t, source.NewSlice(a, b)))
}

func TestRaw(t *testing.T) {
	b := append(rgbFrame(16, 16, 0), rgbFrame(16, 16, 10)...)

	s, err := source.NewRaw(bytes.NewReader(b), 16, 16)
	require.NoError(t, err)
	frames := drain(t, s)
	require.Len(t, frames, 2)
	assert.Equal(t, rgbFrame(16, 16, 10), frames[1].Pix)

	s, err = source.NewRaw(bytes.NewReader(append(b, 1, 2, 3)), 16, 16)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		_, err = s.Next()
		require.NoError(t, err)
	}
	_, err = s.Next()

	var serr *source.StreamError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, 2, serr.Frame)
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = source.NewRaw(bytes.NewReader(b), 0, 16)
	assert.Error(t, err)
}

func testGIF(t *testing.T) []byte {
	t.Helper()

	p := color.Palette{color.RGBA{0, 0, 0, 0xff}, color.RGBA{0xff, 0, 0, 0xff}}
	g := &gif.GIF{
		Image: []*image.Paletted{
			image.NewPaletted(image.Rect(0, 0, 16, 16), p),
			image.NewPaletted(image.Rect(0, 0, 2, 1), p),
		},
		Delay: []int{10, 10},
	}
	g.Image[1].SetColorIndex(0, 0, 1)
	g.Image[1].SetColorIndex(1, 0, 1)

	var b bytes.Buffer
	require.NoError(t, gif.EncodeAll(&b, g))
	return b.Bytes()
}

func TestGIF(t *testing.T) {
	s, err := source.NewGIF(bytes.NewReader(testGIF(t)))
	require.NoError(t, err)

	frames := drain(t, s)
	require.Len(t, frames, 2)

	assert.Equal(t, 16, frames[1].Width)
	assert.Equal(t, 16, frames[1].Height)
	assert.Equal(t, make([]byte, 16*16*3), frames[0].Pix)
	assert.Equal(t, []byte{0xff, 0, 0, 0xff, 0, 0, 0, 0, 0}, frames[1].Pix[:9])
	// The rest of the canvas is kept from the first frame
	assert.Equal(t, make([]byte, 16*3), frames[1].Pix[16*3:32*3])

	_, err = source.NewGIF(bytes.NewReader([]byte("GIF89a")))
	var serr *source.StreamError
	assert.ErrorAs(t, err, &serr)
}

func TestFit(t *testing.T) {
	f := source.NewFrame(20, 18)
	for i := range f.Pix {
		f.Pix[i] = byte(i)
	}

	same := source.NewFrame(16, 16)
	assert.Equal(t, []*source.Frame{same}, drain(t, source.Fit(source.NewSlice(same), source.FitCrop, 16)))

	frames := drain(t, source.Fit(source.NewSlice(f), source.FitCrop, 16))
	require.Len(t, frames, 1)
	assert.Equal(t, 16, frames[0].Width)
	assert.Equal(t, 16, frames[0].Height)
	assert.Equal(t, f.Pix[:16*3], frames[0].Pix[:16*3])
	assert.Equal(t, f.Pix[20*3:20*3+16*3], frames[0].Pix[16*3:32*3])

	frames = drain(t, source.Fit(source.NewSlice(f), source.FitScale, 16))
	require.Len(t, frames, 1)
	assert.Equal(t, 16, frames[0].Width)
	assert.Equal(t, 16, frames[0].Height)

	small := source.NewFrame(8, 8)
	frames = drain(t, source.Fit(source.NewSlice(small), source.FitScale, 16))
	require.Len(t, frames, 1)
	assert.Equal(t, 16, frames[0].Width)

	src := source.NewSlice(f)
	assert.Equal(t, src, source.Fit(src, source.FitNone, 16))

	_, err := source.ParseFitMode("stretch")
	assert.Error(t, err)
}

func TestFitSizeChange(t *testing.T) {
	tables := map[string]struct {
		mode   source.FitMode
		first  [2]int
		second [2]int
	}{
		"crop aligned first":    {source.FitCrop, [2]int{32, 32}, [2]int{33, 40}},
		"scale aligned first":   {source.FitScale, [2]int{32, 32}, [2]int{33, 40}},
		"scale misaligned both": {source.FitScale, [2]int{40, 40}, [2]int{47, 47}},
		"crop misaligned both":  {source.FitCrop, [2]int{40, 40}, [2]int{47, 47}},
	}

	for name, table := range tables {
		t.Run(name, func(t *testing.T) {
			s := source.Fit(source.NewSlice(
				source.NewFrame(table.first[0], table.first[1]),
				source.NewFrame(table.second[0], table.second[1]),
			), table.mode, 16)

			_, err := s.Next()
			require.NoError(t, err)

			_, err = s.Next()
			assert.ErrorIs(t, err, source.ErrFrameSize)

			var serr *source.StreamError
			require.ErrorAs(t, err, &serr)
			assert.Equal(t, 1, serr.Frame)
		})
	}
}

func writePNG(t *testing.T, file string, c color.Color) {
	t.Helper()

	m := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			m.Set(x, y, c)
		}
	}

	f, err := os.Create(file)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, m))
}

func TestOpenDirectory(t *testing.T) {
	dir := t.TempDir()
	writePNG(t, filepath.Join(dir, "b.png"), color.RGBA{0, 0, 9, 0xff})
	writePNG(t, filepath.Join(dir, "a.png"), color.RGBA{0, 0, 1, 0xff})
	writePNG(t, filepath.Join(dir, ".hidden.png"), color.RGBA{0xff, 0, 0, 0xff})
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	s, err := source.Open(dir, source.Config{})
	require.NoError(t, err)
	defer s.Close()

	frames := drain(t, s)
	require.Len(t, frames, 2)
	assert.Equal(t, byte(1), frames[0].Pix[2])
	assert.Equal(t, byte(9), frames[1].Pix[2])
}

func TestOpenFile(t *testing.T) {
	dir := t.TempDir()

	file := filepath.Join(dir, "clip.gif")
	require.NoError(t, os.WriteFile(file, testGIF(t), 0o644))
	s, err := source.Open(file, source.Config{})
	require.NoError(t, err)
	assert.Len(t, drain(t, s), 2)
	require.NoError(t, s.Close())

	file = filepath.Join(dir, "clip.rgb")
	require.NoError(t, os.WriteFile(file, rgbFrame(16, 16, 0), 0o644))
	_, err = source.Open(file, source.Config{})
	assert.Error(t, err)

	s, err = source.Open(file, source.Config{Width: 16, Height: 16})
	require.NoError(t, err)
	assert.Len(t, drain(t, s), 1)
	require.NoError(t, s.Close())

	_, err = source.Read(bytes.NewReader(nil), ".avi", source.Config{})
	assert.Error(t, err)

	assert.True(t, source.IsClip("a/b/clip.MPG"))
	assert.False(t, source.IsClip("a/b/still.png"))
}
