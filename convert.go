package unitconv

import (
	"bytes"
	"crypto/sha1"
	"fmt"
	"hash"
	stdimage "image"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bodgit/unitconv/image"
	"github.com/bodgit/unitconv/source"
	"github.com/bodgit/unitconv/tile"
	"github.com/bodgit/unitconv/video"
	"github.com/pkg/errors"
)

func hashFile(h hash.Hash, file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = io.Copy(h, f)
	return err
}

// sha1Path hashes a file, or every visible file in a directory in name
// order.
func sha1Path(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", err
	}

	h := sha1.New()
	if !info.IsDir() {
		if err := hashFile(h, path); err != nil {
			return "", err
		}
		return fmt.Sprintf("%.*x", sha1.Size<<1, h.Sum(nil)), nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return "", err
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") || !entry.Type().IsRegular() {
			continue
		}
		io.WriteString(h, entry.Name())
		if err := hashFile(h, filepath.Join(path, entry.Name())); err != nil {
			return "", err
		}
	}

	return fmt.Sprintf("%.*x", sha1.Size<<1, h.Sum(nil)), nil
}

// cached returns the document for path, building and caching it with build
// when it isn't already known.
func (c *Converter) cached(path, kind string, build func() (string, error)) (string, error) {
	if c.cache == nil {
		return build()
	}

	sum, err := sha1Path(path)
	if err != nil {
		return "", err
	}
	key := kind + " " + c.opts.fingerprint()

	doc, ok, err := c.cache.Find(sum, key)
	if err != nil {
		return "", err
	}
	if ok {
		c.logger.Printf("Using cached document for \"%s\"\n", path)
		return doc, nil
	}

	if doc, err = build(); err != nil {
		return "", err
	}

	if err := c.cache.Store(sum, key, doc); err != nil {
		return "", err
	}

	return doc, nil
}

// Clip encodes the clip at path. A directory is read as a sequence of still
// images.
func (c *Converter) Clip(path string) (*video.Clip, error) {
	return c.clip(path, c.opts.Trace)
}

// clip encodes the clip at path, writing trace frames into trace if it
// isn't empty.
func (c *Converter) clip(path, trace string) (*video.Clip, error) {
	mode, err := source.ParseFitMode(c.opts.Fit)
	if err != nil {
		return nil, err
	}

	rc, err := source.Open(path, source.Config{Width: c.opts.Width, Height: c.opts.Height})
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	e := video.NewEncoder()
	if trace != "" {
		if err := os.MkdirAll(trace, 0o755); err != nil {
			return nil, err
		}
		e.Trace = tracer(trace)
	}

	clip, err := e.Encode(source.Fit(rc, mode, tile.Size))
	if err != nil {
		return nil, errors.Wrap(err, path)
	}

	c.logger.Printf("Encoded \"%s\": %dx%d, %d frames, %d colors, %d blocks\n", path, clip.Image.Width, clip.Image.Height, len(clip.Frames)+1, len(clip.Colors), len(clip.Blocks))

	return clip, nil
}

// Video converts the clip at path and writes the document to w. Nothing is
// written if any frame fails to encode.
func (c *Converter) Video(w io.Writer, path string) error {
	return c.video(w, path, c.opts.Trace)
}

func (c *Converter) video(w io.Writer, path, trace string) error {
	o, err := c.opts.videoOptions()
	if err != nil {
		return err
	}

	build := func() (string, error) {
		clip, err := c.clip(path, trace)
		if err != nil {
			return "", err
		}
		return clip.Marshal(o)
	}

	var doc string
	if trace != "" {
		// Tracing needs every frame decoded so the cache is skipped
		doc, err = build()
	} else {
		doc, err = c.cached(path, "vid", build)
	}
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, doc)
	return err
}

func decodeImage(file string) (stdimage.Image, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}

	m, _, err := stdimage.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, errors.Wrap(err, file)
	}

	return m, nil
}

// Image converts the still image at path and writes the document to w.
func (c *Converter) Image(w io.Writer, path string) error {
	o, err := c.opts.unitOptions()
	if err != nil {
		return err
	}

	doc, err := c.cached(path, "img", func() (string, error) {
		m, err := decodeImage(path)
		if err != nil {
			return "", err
		}
		if c.opts.Colors > 0 {
			m = image.Quantize(m, c.opts.Colors)
		}
		return image.Marshal(image.FromImage(m), o)
	})
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, doc)
	return err
}
