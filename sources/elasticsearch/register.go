package elasticsearch

import (
	"fmt"

	"github.com/remiges-tech/fuzzysearch"
	"github.com/remiges-tech/fuzzysearch/sources"
)

// init registers the Elasticsearch source. Import this package with a blank identifier
// to load records from Elasticsearch:
//
//	import _ "github.com/remiges-tech/fuzzysearch/sources/elasticsearch"
//
//nolint:gochecknoinits // init() is the idiomatic pattern for source registration
func init() {
	fuzzysearch.RegisterSource("elasticsearch", NewSource)
}

// NewSource creates a new Elasticsearch source from the given configuration.
// It implements SourceFactory and expects config to be of type elasticsearch.Config.
func NewSource(config interface{}) (sources.Source, error) {
	esConfig, ok := config.(Config)
	if !ok {
		return nil, fmt.Errorf("invalid configuration type for Elasticsearch source: expected elasticsearch.Config, got %T", config)
	}

	return New(&esConfig)
}
