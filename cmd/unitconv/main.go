package main

import (
	"io"
	"log"
	"os"

	"github.com/bodgit/unitconv"
	"github.com/urfave/cli/v2"
)

func init() {
	cli.VersionFlag = &cli.BoolFlag{
		Name:    "version",
		Aliases: []string{"V"},
		Usage:   "print the version",
	}
}

var conversionFlags = []cli.Flag{
	&cli.BoolFlag{
		Name:    "zip",
		Aliases: []string{"z"},
		Usage:   "compress and base64 encode binary leaves",
	},
	&cli.BoolFlag{
		Name:  "binary",
		Usage: "base64 encode binary leaves without compression",
	},
	&cli.StringFlag{
		Name:  "codec",
		Usage: "compression codec used by --zip: gzip, zstd or lz4",
	},
	&cli.StringFlag{
		Name:  "fit",
		Usage: "make frame dimensions a multiple of 16: crop or scale",
	},
	&cli.IntFlag{
		Name:  "width",
		Usage: "frame width of raw rgb24 input",
	},
	&cli.IntFlag{
		Name:  "height",
		Usage: "frame height of raw rgb24 input",
	},
}

var videoFlags = []cli.Flag{
	&cli.StringFlag{
		Name:  "layout",
		Usage: "frame layout: reference or inline",
	},
	&cli.StringFlag{
		Name:  "trace",
		Usage: "write every frame and difference as PNG into `DIR`",
	},
}

func flags(groups ...[]cli.Flag) []cli.Flag {
	var all []cli.Flag
	for _, g := range groups {
		all = append(all, g...)
	}
	return all
}

// options merges the config file with any flags set on the command line.
func options(c *cli.Context) (unitconv.Options, error) {
	var o unitconv.Options
	if file := c.String("config"); file != "" {
		var err error
		if o, err = unitconv.LoadOptions(file); err != nil {
			return o, err
		}
	}

	switch {
	case c.Bool("zip"):
		o.Format = "zip"
	case c.Bool("binary"):
		o.Format = "binary"
	}

	for name, p := range map[string]*string{
		"codec":  &o.Codec,
		"layout": &o.Layout,
		"fit":    &o.Fit,
		"trace":  &o.Trace,
	} {
		if c.IsSet(name) {
			*p = c.String(name)
		}
	}

	for name, p := range map[string]*int{
		"width":   &o.Width,
		"height":  &o.Height,
		"colors":  &o.Colors,
		"workers": &o.Workers,
	} {
		if c.IsSet(name) {
			*p = c.Int(name)
		}
	}

	return o, o.Validate()
}

func converter(c *cli.Context) (*unitconv.Converter, func(), error) {
	logger := log.New(io.Discard, "", 0)
	if c.Bool("verbose") {
		logger.SetOutput(os.Stderr)
	}

	o, err := options(c)
	if err != nil {
		return nil, nil, err
	}

	var cache *unitconv.Cache
	done := func() {}
	if file := c.String("cache"); file != "" {
		if cache, err = unitconv.NewCache(file); err != nil {
			return nil, nil, err
		}
		done = func() { cache.Close() }
	}

	conv, err := unitconv.New(o, cache, logger)
	if err != nil {
		done()
		return nil, nil, err
	}

	return conv, done, nil
}

func convert(fn func(*unitconv.Converter, io.Writer, string) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		if c.NArg() < 1 {
			cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
		}

		conv, done, err := converter(c)
		if err != nil {
			return cli.Exit(err, 1)
		}
		defer done()

		if err := fn(conv, os.Stdout, c.Args().First()); err != nil {
			return cli.Exit(err, 1)
		}

		return nil
	}
}

func main() {
	app := cli.NewApp()

	app.Name = "unitconv"
	app.Usage = "Convert clips and images to vnix unit documents"
	app.Version = "1.0.0"

	app.Flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			EnvVars: []string{"UNITCONV_CONFIG"},
			Usage:   "read default options from YAML `FILE`",
		},
		&cli.StringFlag{
			Name:    "cache",
			EnvVars: []string{"UNITCONV_CACHE"},
			Usage:   "cache documents in the SQLite database `FILE`",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"v"},
			Usage:   "increase verbosity",
		},
	}

	app.Commands = []*cli.Command{
		{
			Name:      "vid",
			Usage:     "Convert a clip to a unit document on stdout",
			ArgsUsage: "FILE|DIRECTORY",
			Flags:     flags(conversionFlags, videoFlags),
			Action: convert(func(conv *unitconv.Converter, w io.Writer, path string) error {
				return conv.Video(w, path)
			}),
		},
		{
			Name:      "img",
			Usage:     "Convert a still image to a unit document on stdout",
			ArgsUsage: "FILE",
			Flags: flags(conversionFlags, []cli.Flag{
				&cli.IntFlag{
					Name:  "colors",
					Usage: "quantize to at most `N` colors",
				},
			}),
			Action: convert(func(conv *unitconv.Converter, w io.Writer, path string) error {
				return conv.Image(w, path)
			}),
		},
		{
			Name:      "scan",
			Usage:     "Convert every clip under a directory",
			ArgsUsage: "DIRECTORY",
			Flags: flags(conversionFlags, videoFlags, []cli.Flag{
				&cli.IntFlag{
					Name:  "workers",
					Usage: "convert `N` clips at once",
				},
			}),
			Action: func(c *cli.Context) error {
				if c.NArg() < 1 {
					cli.ShowCommandHelpAndExit(c, c.Command.FullName(), 1)
				}

				conv, done, err := converter(c)
				if err != nil {
					return cli.Exit(err, 1)
				}
				defer done()

				if err := conv.Scan(c.Args().First()); err != nil {
					return cli.Exit(err, 1)
				}

				return nil
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
