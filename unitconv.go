/*
Package unitconv is a library for converting clips and still images into
the unit format understood by the vnix runtime.

A conversion builds the whole document in memory and only writes it out
once every frame has been encoded, so a failure never leaves a partial
document behind.
*/
package unitconv

import (
	"log"
)

// Converter converts files into unit documents.
type Converter struct {
	opts   Options
	cache  *Cache
	logger *log.Logger
}

// New returns a Converter. cache may be nil.
func New(opts Options, cache *Cache, logger *log.Logger) (*Converter, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Converter{
		opts:   opts,
		cache:  cache,
		logger: logger,
	}, nil
}
