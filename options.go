package unitconv

import (
	"fmt"
	"os"

	"github.com/bodgit/unitconv/codec"
	"github.com/bodgit/unitconv/source"
	"github.com/bodgit/unitconv/unit"
	"github.com/bodgit/unitconv/video"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var errNegative = errors.New("unitconv: negative option value")

// Options controls a conversion. The zero value writes text documents.
type Options struct {
	// Format is one of text, binary or zip
	Format string `yaml:"format"`
	// Codec is the compression used by the zip format; gzip, zstd or lz4
	Codec string `yaml:"codec"`
	// Layout is reference or inline
	Layout string `yaml:"layout"`
	// Fit is empty, crop or scale
	Fit string `yaml:"fit"`
	// Width and Height of raw rgb24 input
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	// Trace is a directory that receives every frame and difference as PNG
	Trace string `yaml:"trace"`
	// Colors quantizes still images to this many colors when non-zero
	Colors int `yaml:"colors"`
	// Workers is the number of concurrent conversions when scanning
	Workers int `yaml:"workers"`
}

// LoadOptions reads options from a YAML file.
func LoadOptions(file string) (Options, error) {
	var o Options

	b, err := os.ReadFile(file)
	if err != nil {
		return o, err
	}

	if err := yaml.Unmarshal(b, &o); err != nil {
		return o, errors.Wrap(err, file)
	}

	return o, o.Validate()
}

// Validate checks every option has a known value.
func (o Options) Validate() error {
	if _, err := o.videoOptions(); err != nil {
		return err
	}
	if _, err := source.ParseFitMode(o.Fit); err != nil {
		return err
	}
	if o.Width < 0 || o.Height < 0 || o.Colors < 0 || o.Workers < 0 {
		return errNegative
	}
	return nil
}

func (o Options) unitOptions() (unit.Options, error) {
	f, err := unit.ParseFormat(o.Format)
	if err != nil {
		return unit.Options{}, err
	}
	c, err := codec.ByName(o.Codec)
	if err != nil {
		return unit.Options{}, err
	}
	return unit.Options{Format: f, Codec: c}, nil
}

func (o Options) videoOptions() (video.Options, error) {
	u, err := o.unitOptions()
	if err != nil {
		return video.Options{}, err
	}
	l, err := video.ParseLayout(o.Layout)
	if err != nil {
		return video.Options{}, err
	}
	return video.Options{Options: u, Layout: l}, nil
}

// fingerprint identifies the options that affect the produced document.
func (o Options) fingerprint() string {
	return fmt.Sprintf("format=%s codec=%s layout=%s fit=%s size=%dx%d colors=%d", o.Format, o.Codec, o.Layout, o.Fit, o.Width, o.Height, o.Colors)
}
