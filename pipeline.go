package unitconv

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/unitconv/source"
)

// Extension is appended to the base name of every clip converted by Scan.
const Extension = ".unit"

const defaultWorkers = 10

func (c *Converter) findClips(ctx context.Context, base string) (<-chan string, <-chan error, error) {
	out := make(chan string)
	errc := make(chan error, 1)
	go func() {
		defer close(out)
		defer close(errc)
		errc <- filepath.Walk(base, func(file string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			// Ignore any hidden files or directories, otherwise we end up fighting with things like Spotlight, etc.
			if info.Name()[0] == '.' && file != base {
				if info.Mode().IsDir() {
					return filepath.SkipDir
				}
				return nil
			}

			if !info.Mode().IsRegular() || !source.IsClip(file) {
				return nil
			}

			select {
			case out <- file:
			case <-ctx.Done():
				return errors.New("walk cancelled")
			}

			return nil
		})
	}()
	return out, errc, nil
}

func writeFile(file string, b []byte) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err = f.Write(b); err != nil {
		return err
	}

	return f.Close()
}

// traceDir returns the directory receiving the trace frames of file, named
// after its path relative to base so clips never share one.
func (c *Converter) traceDir(base, file string) (string, error) {
	if c.opts.Trace == "" {
		return "", nil
	}
	rel, err := filepath.Rel(base, file)
	if err != nil {
		return "", err
	}
	return filepath.Join(c.opts.Trace, strings.TrimSuffix(rel, filepath.Ext(rel))), nil
}

func (c *Converter) clipWorker(ctx context.Context, base string, in <-chan string) (<-chan error, error) {
	errc := make(chan error, 1)
	go func() {
		defer close(errc)
		for file := range in {
			select {
			case <-ctx.Done():
				return
			default:
			}

			trace, err := c.traceDir(base, file)
			if err != nil {
				errc <- err
				return
			}

			var b bytes.Buffer
			if err := c.video(&b, file, trace); err != nil {
				errc <- err
				return
			}

			out := strings.TrimSuffix(file, filepath.Ext(file)) + Extension
			if err := writeFile(out, b.Bytes()); err != nil {
				errc <- err
				return
			}

			c.logger.Printf("Wrote \"%s\"\n", out)
		}
	}()
	return errc, nil
}

func waitForPipeline(errs ...<-chan error) error {
	errc := mergeErrors(errs...)
	for err := range errc {
		if err != nil {
			return err
		}
	}
	return nil
}

func mergeErrors(cs ...<-chan error) <-chan error {
	var wg sync.WaitGroup
	out := make(chan error, len(cs))
	wg.Add(len(cs))
	for _, c := range cs {
		go func(c <-chan error) {
			for n := range c {
				out <- n
			}
			wg.Done()
		}(c)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

// Scan converts every clip found under path, writing each document next to
// its clip. Each clip gets its own encoder so clips are converted
// concurrently.
func (c *Converter) Scan(path string) error {
	dir, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	ctx, cancelFunc := context.WithCancel(context.Background())
	defer cancelFunc()

	var errcList []<-chan error

	files, errc, err := c.findClips(ctx, dir)
	if err != nil {
		return err
	}
	errcList = append(errcList, errc)

	workers := c.opts.Workers
	if workers == 0 {
		workers = defaultWorkers
	}

	for i := 0; i < workers; i++ {
		errc, err := c.clipWorker(ctx, dir, files)
		if err != nil {
			return err
		}
		errcList = append(errcList, errc)
	}

	return waitForPipeline(errcList...)
}
