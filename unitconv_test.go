package unitconv

import (
	"bytes"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/bodgit/unitconv/tile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const singlePixelDocument = "{img:{size:(16 16) fmt:rgb.rle img:[(256 660510)]} pal:[0 1] blk:[[(255 0) (1 1)]] fms:[{(0 0):0}]}"

// writeGIF writes a two frame 16x16 clip where only the bottom-right pixel
// changes.
func writeGIF(t *testing.T, file string, width int) {
	t.Helper()

	p := color.Palette{color.RGBA{0x0a, 0x14, 0x1e, 0xff}, color.RGBA{0x0a, 0x14, 0x1f, 0xff}}
	g := &gif.GIF{
		Image: []*image.Paletted{
			image.NewPaletted(image.Rect(0, 0, width, 16), p),
			image.NewPaletted(image.Rect(width-1, 15, width, 16), p),
		},
		Delay: []int{10, 10},
	}
	g.Image[1].SetColorIndex(width-1, 15, 1)

	var b bytes.Buffer
	require.NoError(t, gif.EncodeAll(&b, g))
	require.NoError(t, os.WriteFile(file, b.Bytes(), 0o644))
}

func newConverter(t *testing.T, o Options, cache *Cache) *Converter {
	t.Helper()

	c, err := New(o, cache, log.New(io.Discard, "", 0))
	require.NoError(t, err)
	return c
}

func TestNew(t *testing.T) {
	_, err := New(Options{Layout: "mixed"}, nil, log.New(io.Discard, "", 0))
	assert.Error(t, err)
}

func TestVideo(t *testing.T) {
	file := filepath.Join(t.TempDir(), "clip.gif")
	writeGIF(t, file, 16)

	var b bytes.Buffer
	require.NoError(t, newConverter(t, Options{}, nil).Video(&b, file))
	assert.Equal(t, singlePixelDocument, b.String())
}

func TestVideoFailure(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.gif")
	writeGIF(t, file, 17)

	var b bytes.Buffer
	err := newConverter(t, Options{}, nil).Video(&b, file)
	assert.ErrorIs(t, err, tile.ErrUnaligned)
	assert.Zero(t, b.Len())

	b.Reset()
	require.NoError(t, newConverter(t, Options{Fit: "crop"}, nil).Video(&b, file))
	assert.Contains(t, b.String(), "{img:{size:(16 16) ")
}

func TestVideoTrace(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.gif")
	writeGIF(t, file, 16)

	trace := filepath.Join(dir, "trace")
	require.NoError(t, newConverter(t, Options{Trace: trace}, nil).Video(io.Discard, file))

	f, err := os.Open(filepath.Join(trace, "out0d.png"))
	require.NoError(t, err)
	defer f.Close()

	m, err := png.Decode(f)
	require.NoError(t, err)
	r, g, b, _ := m.At(15, 15).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 1}, [3]uint32{r >> 8, g >> 8, b >> 8})
	r, g, b, _ = m.At(0, 0).RGBA()
	assert.Equal(t, [3]uint32{0, 0, 0}, [3]uint32{r >> 8, g >> 8, b >> 8})

	assert.FileExists(t, filepath.Join(trace, "out0.png"))
}

func TestDiffFrame(t *testing.T) {
	f := diffFrame(2, 1, []int32{-1, 0x0a141e})
	assert.Equal(t, []byte{0xff, 0xff, 0xff, 0x0a, 0x14, 0x1e}, f.Pix)
}

func TestVideoCache(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.gif")
	writeGIF(t, file, 16)

	cache, err := NewCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	c := newConverter(t, Options{}, cache)

	var b bytes.Buffer
	require.NoError(t, c.Video(&b, file))
	assert.Equal(t, singlePixelDocument, b.String())

	sum, err := sha1Path(file)
	require.NoError(t, err)

	doc, ok, err := cache.Find(sum, "vid "+Options{}.fingerprint())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, singlePixelDocument, doc)

	// A cached document is returned without decoding the clip again
	require.NoError(t, cache.Store(sum, "vid "+Options{}.fingerprint(), "{cached}"))
	b.Reset()
	require.NoError(t, c.Video(&b, file))
	assert.Equal(t, "{cached}", b.String())

	// Different options are cached separately
	b.Reset()
	require.NoError(t, newConverter(t, Options{Layout: "inline"}, cache).Video(&b, file))
	assert.Equal(t, "{img:{size:(16 16) fmt:rgb.rle img:[(256 660510)]} pal:[0 1] fms:[{(0 0):[(255 0) (1 1)]}]}", b.String())
}

func TestImage(t *testing.T) {
	file := filepath.Join(t.TempDir(), "still.png")

	m := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for i := 0; i < len(m.Pix); i += 4 {
		m.Pix[i+2], m.Pix[i+3] = 1, 0xff
	}
	f, err := os.Create(file)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, m))
	require.NoError(t, f.Close())

	var b bytes.Buffer
	require.NoError(t, newConverter(t, Options{}, nil).Image(&b, file))
	assert.Equal(t, "{size:(16 16) fmt:rgb.rle img:[(256 1)]}", b.String())

	b.Reset()
	require.NoError(t, newConverter(t, Options{Colors: 4}, nil).Image(&b, file))
	assert.Regexp(t, `^\{size:\(16 16\) fmt:rgb\.rle img:\[\(256 \d+\)\]\}$`, b.String())

	assert.Error(t, newConverter(t, Options{}, nil).Image(io.Discard, filepath.Join(t.TempDir(), "missing.png")))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".hidden"), 0o755))

	for _, file := range []string{"a.gif", "b.gif", filepath.Join("sub", "c.gif"), filepath.Join(".hidden", "d.gif")} {
		writeGIF(t, filepath.Join(dir, file), 16)
	}

	require.NoError(t, newConverter(t, Options{Workers: 2}, nil).Scan(dir))

	for _, file := range []string{"a.unit", "b.unit", filepath.Join("sub", "c.unit")} {
		b, err := os.ReadFile(filepath.Join(dir, file))
		require.NoError(t, err)
		assert.Equal(t, singlePixelDocument, string(b))
	}
	assert.NoFileExists(t, filepath.Join(dir, ".hidden", "d.unit"))
}

func TestScanFailure(t *testing.T) {
	dir := t.TempDir()
	writeGIF(t, filepath.Join(dir, "bad.gif"), 17)

	assert.ErrorIs(t, newConverter(t, Options{}, nil).Scan(dir), tile.ErrUnaligned)
	assert.NoFileExists(t, filepath.Join(dir, "bad.unit"))
}

func TestVideoTraceWithCache(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "clip.gif")
	writeGIF(t, file, 16)

	cache, err := NewCache(filepath.Join(dir, "cache.db"))
	require.NoError(t, err)
	defer cache.Close()

	require.NoError(t, newConverter(t, Options{}, cache).Video(io.Discard, file))

	trace := filepath.Join(dir, "trace")
	var b bytes.Buffer
	require.NoError(t, newConverter(t, Options{Trace: trace}, cache).Video(&b, file))
	assert.Equal(t, singlePixelDocument, b.String())
	assert.FileExists(t, filepath.Join(trace, "out0.png"))
	assert.FileExists(t, filepath.Join(trace, "out0d.png"))
}

func TestScanTrace(t *testing.T) {
	dir := t.TempDir()
	clips := filepath.Join(dir, "clips")
	require.NoError(t, os.MkdirAll(filepath.Join(clips, "sub"), 0o755))
	writeGIF(t, filepath.Join(clips, "a.gif"), 16)
	writeGIF(t, filepath.Join(clips, "b.gif"), 16)
	writeGIF(t, filepath.Join(clips, "sub", "a.gif"), 16)

	trace := filepath.Join(dir, "trace")
	require.NoError(t, newConverter(t, Options{Trace: trace, Workers: 3}, nil).Scan(clips))

	for _, name := range []string{"a", "b", filepath.Join("sub", "a")} {
		assert.FileExists(t, filepath.Join(trace, name, "out0.png"))
		assert.FileExists(t, filepath.Join(trace, name, "out0d.png"))
	}
	assert.NoFileExists(t, filepath.Join(trace, "out0.png"))
}
