package fuzzysearch

import "errors"

// Sentinel errors for configuration and searcher failures.

var (
	// ErrNoFields is returned when a SearchConfig has no fields.
	ErrNoFields = errors.New("search config has no fields")

	// ErrEmptyFieldName is returned when a FieldSpec has an empty name.
	ErrEmptyFieldName = errors.New("empty field name")

	// ErrDuplicateField is returned when the same field is configured twice.
	ErrDuplicateField = errors.New("duplicate field")

	// ErrInvalidWeight is returned when a field weight is not a finite positive number.
	ErrInvalidWeight = errors.New("field weight must be positive")

	// ErrInvalidThreshold is returned when the threshold is outside [0, 1].
	ErrInvalidThreshold = errors.New("threshold must be within [0, 1]")

	// ErrInvalidMinQueryLength is returned when MinQueryLength is negative.
	ErrInvalidMinQueryLength = errors.New("min query length must not be negative")

	// ErrSourceNotFound is returned when a record source is not registered.
	// Usually means you forgot to import the source package with an underscore.
	ErrSourceNotFound = errors.New("record source not found")

	// ErrEngineNotFound is returned when a search engine is not registered.
	ErrEngineNotFound = errors.New("search engine not found")

	// ErrLimitExceeded is returned when the requested limit exceeds MaxLimit.
	ErrLimitExceeded = errors.New("limit exceeded")

	// ErrEmptyID is returned when an empty ID is provided to Index or Delete.
	ErrEmptyID = errors.New("empty ID")

	// ErrEmptyFields is returned when Index is called without any field values.
	ErrEmptyFields = errors.New("empty fields")

	// ErrClosed is returned by a Searcher after Close.
	ErrClosed = errors.New("searcher closed")
)
