package fuzzysearch

import (
	"fmt"
	"log/slog"
	"math"
)

// defaultLimit is the number of results shown when no limit is given.
const defaultLimit = 3

// defaultMaxLimit is the maximum allowed results.
const defaultMaxLimit = 100

// defaultThreshold filters out weak matches.
const defaultThreshold = 0.7

// EngineCustom is the name of the built-in scoring engine.
const EngineCustom = "custom"

// FieldSpec names a searchable field and its relative importance.
type FieldSpec struct {
	Name   string  `json:"name" yaml:"name"`
	Weight float64 `json:"weight" yaml:"weight"`
}

// SearchConfig controls how records are scored.
type SearchConfig struct {
	// Fields lists the searchable fields in order. Weights need not sum to 1.
	Fields []FieldSpec `json:"fields" yaml:"fields"`

	// Threshold is the minimum weighted field score a record needs to be returned.
	Threshold float64 `json:"threshold" yaml:"threshold"`

	// MinQueryLength is the minimum query length in characters.
	MinQueryLength int `json:"min_query_length" yaml:"min_query_length"`
}

// DefaultSearchConfig weighs club names over descriptions and starts matching
// after a single character.
func DefaultSearchConfig() SearchConfig {
	return SearchConfig{
		Fields: []FieldSpec{
			{Name: FieldName, Weight: 0.7},
			{Name: FieldDescription, Weight: 0.3},
		},
		Threshold:      defaultThreshold,
		MinQueryLength: 1,
	}
}

// Validate reports the first problem with the configuration.
func (c SearchConfig) Validate() error {
	if len(c.Fields) == 0 {
		return ErrNoFields
	}
	seen := make(map[string]bool, len(c.Fields))
	for _, f := range c.Fields {
		if f.Name == "" {
			return ErrEmptyFieldName
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateField, f.Name)
		}
		seen[f.Name] = true
		if !(f.Weight > 0) || math.IsInf(f.Weight, 1) {
			return fmt.Errorf("%w: %s=%v", ErrInvalidWeight, f.Name, f.Weight)
		}
	}
	if !(c.Threshold >= 0 && c.Threshold <= 1) {
		return fmt.Errorf("%w: %v", ErrInvalidThreshold, c.Threshold)
	}
	if c.MinQueryLength < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinQueryLength, c.MinQueryLength)
	}
	return nil
}

// clone returns a copy that does not share the Fields slice.
func (c SearchConfig) clone() SearchConfig {
	c.Fields = append([]FieldSpec(nil), c.Fields...)
	return c
}

// Config holds configuration for the Searcher.
type Config struct {
	// SourceConfig contains source-specific configuration.
	// Each source defines its own config struct type.
	SourceConfig interface{}

	// Options contains common search behavior settings.
	Options Options
}

// Options contains common search behavior settings.
// Use DefaultOptions() for default values.
type Options struct {
	// DefaultLimit is the number of results when limit is not specified.
	DefaultLimit int

	// MaxLimit is the maximum number of results that can be requested.
	MaxLimit int

	// Namespace separates datasets stored in the same backend.
	// Default: "clubs".
	Namespace string

	// Engine selects the registered scoring engine.
	// Default: "custom".
	Engine string

	// Search holds field weights, threshold and minimum query length.
	Search SearchConfig

	// Logger receives debug output about reloads. Nil disables logging.
	Logger *slog.Logger
}

// DefaultOptions returns default options with the custom engine.
func DefaultOptions() Options {
	return Options{
		DefaultLimit: defaultLimit,
		MaxLimit:     defaultMaxLimit,
		Namespace:    "clubs",
		Engine:       EngineCustom,
		Search:       DefaultSearchConfig(),
	}
}

// NewConfig creates a new configuration with default options.
func NewConfig(sourceConfig interface{}) Config {
	return Config{
		SourceConfig: sourceConfig,
		Options:      DefaultOptions(),
	}
}

// NewConfigWithOptions creates a new configuration with custom options.
func NewConfigWithOptions(sourceConfig interface{}, options Options) Config {
	return Config{
		SourceConfig: sourceConfig,
		Options:      options,
	}
}
