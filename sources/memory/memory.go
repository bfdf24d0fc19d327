// Package memory implements an in-process record source.
// Records live in memory only and can be seeded from a YAML file.
package memory

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/remiges-tech/fuzzysearch/sources"
)

// ErrClosed is returned by methods called after Close.
var ErrClosed = errors.New("memory source closed")

// Config holds memory source options.
type Config struct {
	// SeedFile is an optional YAML file loaded into SeedNamespace on creation.
	SeedFile string

	// SeedNamespace is the namespace seeded from SeedFile.
	// Default: "clubs".
	SeedNamespace string
}

// SeedFile is the YAML layout accepted by ReadSeedFile.
//
//	records:
//	  - id: "1"
//	    fields:
//	      name: popupOne
//	      description: This is popupOne.
type SeedFile struct {
	Records []sources.Document `yaml:"records"`
}

// Source keeps documents per namespace in insertion order.
// All methods are safe for concurrent use.
type Source struct {
	mu         sync.RWMutex
	namespaces map[string]*namespace
	closed     bool
}

type namespace struct {
	order []string
	docs  map[string]sources.Document
}

// New creates a memory source, loading the seed file when one is configured.
func New(config Config) (*Source, error) {
	s := &Source{namespaces: make(map[string]*namespace)}

	if config.SeedFile == "" {
		return s, nil
	}
	ns := config.SeedNamespace
	if ns == "" {
		ns = "clubs"
	}

	docs, err := ReadSeedFile(config.SeedFile)
	if err != nil {
		return nil, err
	}
	for _, doc := range docs {
		if err := s.Put(context.Background(), ns, doc); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ReadSeedFile reads documents from a YAML seed file.
func ReadSeedFile(path string) ([]sources.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var seed SeedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to parse seed file %s: %w", path, err)
	}
	for i, doc := range seed.Records {
		if doc.ID == "" {
			return nil, fmt.Errorf("seed file %s: record %d has no id", path, i)
		}
	}
	return seed.Records, nil
}

// Put adds or updates a document.
func (s *Source) Put(_ context.Context, key string, doc sources.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	ns, ok := s.namespaces[key]
	if !ok {
		ns = &namespace{docs: make(map[string]sources.Document)}
		s.namespaces[key] = ns
	}
	if _, exists := ns.docs[doc.ID]; !exists {
		ns.order = append(ns.order, doc.ID)
	}
	ns.docs[doc.ID] = copyDocument(doc)
	return nil
}

// Load returns the documents of a namespace in insertion order.
func (s *Source) Load(_ context.Context, key string) ([]sources.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrClosed
	}

	ns, ok := s.namespaces[key]
	if !ok {
		return []sources.Document{}, nil
	}
	docs := make([]sources.Document, 0, len(ns.order))
	for _, id := range ns.order {
		docs = append(docs, copyDocument(ns.docs[id]))
	}
	return docs, nil
}

// Delete removes a document.
func (s *Source) Delete(_ context.Context, key, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}

	ns, ok := s.namespaces[key]
	if !ok {
		return nil
	}
	if _, exists := ns.docs[id]; !exists {
		return nil
	}
	delete(ns.docs, id)
	for i, existing := range ns.order {
		if existing == id {
			ns.order = append(ns.order[:i], ns.order[i+1:]...)
			break
		}
	}
	return nil
}

// DeleteAll removes every document of a namespace.
func (s *Source) DeleteAll(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	delete(s.namespaces, key)
	return nil
}

// Close drops all documents.
func (s *Source) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.namespaces = nil
	return nil
}

func copyDocument(doc sources.Document) sources.Document {
	fields := make(map[string]string, len(doc.Fields))
	for k, v := range doc.Fields {
		fields[k] = v
	}
	return sources.Document{ID: doc.ID, Fields: fields}
}
