package source

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
)

var errUnsupported = errors.New("source: unsupported file type")

// Config describes how to open a clip.
type Config struct {
	// Width and Height are only needed for raw rgb24 input
	Width  int
	Height int
}

// IsClip reports whether file looks like something Open can read as a
// clip.
func IsClip(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".gif", ".mpg", ".mpeg", ".m1v", ".rgb", ".raw":
		return true
	}
	return false
}

func isImage(file string) bool {
	switch strings.ToLower(filepath.Ext(file)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".qoi":
		return true
	}
	return false
}

type nopCloser struct {
	Source
}

func (nopCloser) Close() error { return nil }

type fileSource struct {
	Source
	f *os.File
}

func (s fileSource) Close() error {
	return s.f.Close()
}

// Open opens the clip at path. A directory is read as an image sequence in
// lexical order, otherwise the file extension selects the decoder.
func Open(path string, c Config) (ReadCloser, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}

	if info.IsDir() {
		entries, err := os.ReadDir(path)
		if err != nil {
			return nil, err
		}
		var files []string
		for _, e := range entries {
			// Ignore any hidden files, otherwise we end up fighting with things like Spotlight, etc.
			if e.Name()[0] == '.' || !e.Type().IsRegular() || !isImage(e.Name()) {
				continue
			}
			files = append(files, filepath.Join(path, e.Name()))
		}
		sort.Strings(files)
		return nopCloser{NewImages(files)}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	s, err := Read(f, filepath.Ext(path), c)
	if err != nil {
		f.Close()
		return nil, err
	}

	return fileSource{s, f}, nil
}

// Read returns a Source decoding the clip read from r, using the file
// extension ext to select the decoder.
func Read(r io.Reader, ext string, c Config) (Source, error) {
	switch strings.ToLower(ext) {
	case ".gif":
		return NewGIF(r)
	case ".mpg", ".mpeg", ".m1v":
		return NewMPEG(r)
	case ".rgb", ".raw":
		return NewRaw(r, c.Width, c.Height)
	}
	return nil, errors.Wrap(errUnsupported, ext)
}
