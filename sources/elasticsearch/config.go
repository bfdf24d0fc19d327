// Package elasticsearch implements the record Source interface using Elasticsearch.
package elasticsearch

// defaultPageSize is the number of records Load reads per search request.
const defaultPageSize = 1000

// Config holds Elasticsearch connection parameters and source-specific options.
type Config struct {
	// URLs is the list of Elasticsearch node URLs.
	URLs []string

	// Index is the name of the Elasticsearch index holding the records.
	Index string

	// Username for basic authentication.
	Username string

	// Password for basic authentication.
	Password string

	// CloudID for connecting to Elastic Cloud.
	CloudID string

	// APIKey for API key authentication (alternative to username/password).
	APIKey string

	// RefreshPolicy controls when changes are visible to Load.
	// Options: "true" (immediate), "wait_for" (default, wait for next refresh),
	// "false" (return at once). With "false" a search right after Index may
	// rebuild from records that do not include the new one yet.
	RefreshPolicy string

	// PageSize is the number of records fetched per request while Load pages
	// through a namespace. It must not exceed index.max_result_window.
	// Default: 1000
	PageSize int

	// NumberOfShards configures the number of primary shards for the index.
	// This setting is ONLY used when the index is automatically created by the source.
	// Default: 1
	NumberOfShards int

	// NumberOfReplicas configures the number of replica shards.
	// This setting is ONLY used when the index is automatically created by the source.
	// Default: 0
	NumberOfReplicas int
}

// setDefaults applies default values to config fields.
func (c *Config) setDefaults() {
	if c.RefreshPolicy == "" {
		c.RefreshPolicy = "wait_for"
	}
	if c.NumberOfShards == 0 {
		c.NumberOfShards = 1
	}
	if c.PageSize <= 0 {
		c.PageSize = defaultPageSize
	}
	if c.Index == "" {
		c.Index = "fuzzysearch"
	}
}
