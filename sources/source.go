// Package sources defines the interface that all record sources must implement.
// A source supplies the records a matcher is built from; it does not search.
package sources

import (
	"context"
)

// Document is a record as stored by a source.
type Document struct {
	// ID is the unique identifier of the record.
	ID string `json:"id" yaml:"id"`

	// Fields maps field names to raw values.
	Fields map[string]string `json:"fields" yaml:"fields"`
}

// Key returns the document ID.
func (d Document) Key() string {
	return d.ID
}

// Field returns the named field value.
func (d Document) Field(name string) (string, bool) {
	v, ok := d.Fields[name]
	return v, ok
}

// Source defines the interface that all record sources must implement.
// All methods must be safe for concurrent use. The 'namespace' parameter
// allows multiple datasets to coexist in one backend.
type Source interface {
	// Put adds or updates a document. A document that already exists keeps
	// its position in load order.
	Put(ctx context.Context, namespace string, doc Document) error

	// Load returns all documents of a namespace in insertion order.
	// Returns an empty slice (not nil) if the namespace is empty.
	Load(ctx context.Context, namespace string) ([]Document, error)

	// Delete removes a document.
	// Deleting a non-existent document succeeds without error (idempotent).
	Delete(ctx context.Context, namespace, id string) error

	// DeleteAll removes all documents of a namespace.
	// This operation cannot be undone.
	DeleteAll(ctx context.Context, namespace string) error

	// Close closes the source and releases resources.
	// It is safe to call multiple times. After Close, other methods will fail.
	Close() error
}
