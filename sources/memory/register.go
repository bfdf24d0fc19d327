package memory

import (
	"fmt"

	"github.com/remiges-tech/fuzzysearch"
	"github.com/remiges-tech/fuzzysearch/sources"
)

// init registers the memory source. Import this package with a blank identifier
// to keep records in process:
//
//	import _ "github.com/remiges-tech/fuzzysearch/sources/memory"
//
//nolint:gochecknoinits // init() is the idiomatic pattern for source registration
func init() {
	fuzzysearch.RegisterSource("memory", NewSource)
}

// NewSource creates a memory source from the given configuration.
// It implements SourceFactory and accepts memory.Config or nil.
func NewSource(config interface{}) (sources.Source, error) {
	if config == nil {
		return New(Config{})
	}
	memConfig, ok := config.(Config)
	if !ok {
		return nil, fmt.Errorf("invalid configuration type for memory source: expected memory.Config, got %T", config)
	}

	return New(memConfig)
}
