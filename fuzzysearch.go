// Package fuzzysearch provides a fuzzy search-and-rank engine for small to medium
// collections of labeled records, such as the clubs shown in a map search bar.
//
// The core is the Matcher: a stateless scorer that ranks every record against a
// partial query by exact, prefix, substring and fuzzy subsequence matches,
// weighting each configured field and reporting match ranges for highlighting.
// It is meant to be re-queried on every keystroke.
//
// The Searcher wraps a Matcher with a record source, so that records can be kept
// in Redis, Elasticsearch or memory. Sources and alternative engines self-register
// during package initialization.
//
// Basic usage:
//
//	m, err := fuzzysearch.Build(fuzzysearch.Clubs(clubs), fuzzysearch.DefaultSearchConfig())
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, r := range fuzzysearch.Top(m.Search("pop"), 3) {
//		fmt.Println(r.Record.Key(), fuzzysearch.MatchPercent(r.Score))
//	}
//
// With a source:
//
//	import (
//		"github.com/remiges-tech/fuzzysearch"
//		"github.com/remiges-tech/fuzzysearch/sources/redis"
//	)
//
//	config := fuzzysearch.NewConfig(redis.Config{Addr: "localhost:6379"})
//	s, err := fuzzysearch.New("redis", config)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer s.Close()
//
//	s.Index(ctx, "1", map[string]string{"name": "popupOne", "description": "This is popupOne."})
//	results, err := s.Search(ctx, "popup", 3)
package fuzzysearch

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/remiges-tech/fuzzysearch/internal/log"
	"github.com/remiges-tech/fuzzysearch/sources"
)

// Engine ranks a fixed collection of records against queries.
// *Matcher is the built-in Engine.
type Engine interface {
	// Search returns all qualifying matches, best first.
	Search(query string) []MatchResult

	// Len returns the number of records the engine was built from.
	Len() int
}

// EngineFactory builds an Engine over records.
type EngineFactory func(records []Record, config SearchConfig) (Engine, error)

// Searcher keeps records in a source and searches them.
// All methods are safe for concurrent use.
type Searcher interface {
	// Index adds or updates a record. If a record with the given ID already
	// exists, it is replaced and keeps its position.
	// Returns ErrEmptyID or ErrEmptyFields for empty parameters.
	Index(ctx context.Context, id string, fields map[string]string) error

	// Search ranks the records against query and returns at most limit results,
	// best first. If limit is 0 or negative, DefaultLimit is used.
	// Returns ErrLimitExceeded if limit exceeds MaxLimit. Queries that are blank
	// or too short return an empty slice.
	Search(ctx context.Context, query string, limit int) ([]MatchResult, error)

	// Delete removes a record. Deleting a non-existent record returns nil.
	// Returns ErrEmptyID if id is empty.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes all records in the configured namespace.
	DeleteAll(ctx context.Context) error

	// Reload rebuilds the engine from the source. Search reloads on its own
	// after local changes; Reload picks up changes made by other writers.
	Reload(ctx context.Context) error

	// Close closes the source. It is safe to call multiple times.
	Close() error
}

// searcherImpl is the default implementation of Searcher.
type searcherImpl struct {
	source  sources.Source
	factory EngineFactory
	config  Config
	logger  *slog.Logger

	mu     sync.Mutex
	engine Engine
	stale  bool
	closed bool
}

// Index adds or updates a record.
// See Searcher.Index for details.
func (s *searcherImpl) Index(ctx context.Context, id string, fields map[string]string) error {
	if id == "" {
		return ErrEmptyID
	}
	if len(fields) == 0 {
		return ErrEmptyFields
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	doc := sources.Document{ID: id, Fields: fields}
	if err := s.source.Put(ctx, s.config.Options.Namespace, doc); err != nil {
		return err
	}
	s.markStale()
	return nil
}

// Search ranks records against query.
// See Searcher.Search for details.
func (s *searcherImpl) Search(ctx context.Context, query string, limit int) ([]MatchResult, error) {
	if limit <= 0 {
		limit = s.config.Options.DefaultLimit
	}
	if limit > s.config.Options.MaxLimit {
		return nil, ErrLimitExceeded
	}

	if skipsQuery(query, s.config.Options.Search) {
		if err := s.checkOpen(); err != nil {
			return nil, err
		}
		return []MatchResult{}, nil
	}

	engine, err := s.currentEngine(ctx)
	if err != nil {
		return nil, err
	}

	return Top(engine.Search(query), limit), nil
}

// Delete removes a record.
// See Searcher.Delete for details.
func (s *searcherImpl) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrEmptyID
	}
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.source.Delete(ctx, s.config.Options.Namespace, id); err != nil {
		return err
	}
	s.markStale()
	return nil
}

// DeleteAll removes all records.
// See Searcher.DeleteAll for details.
func (s *searcherImpl) DeleteAll(ctx context.Context) error {
	if err := s.checkOpen(); err != nil {
		return err
	}

	if err := s.source.DeleteAll(ctx, s.config.Options.Namespace); err != nil {
		return err
	}
	s.markStale()
	return nil
}

// Reload rebuilds the engine from the source.
// See Searcher.Reload for details.
func (s *searcherImpl) Reload(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrClosed
	}
	return s.reloadLocked(ctx)
}

// Close closes the source.
// See Searcher.Close for details.
func (s *searcherImpl) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.engine = nil
	s.mu.Unlock()

	return s.source.Close()
}

func (s *searcherImpl) checkOpen() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	return nil
}

func (s *searcherImpl) markStale() {
	s.mu.Lock()
	s.stale = true
	s.mu.Unlock()
}

// currentEngine returns the engine, rebuilding it first if the records changed.
func (s *searcherImpl) currentEngine(ctx context.Context) (Engine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrClosed
	}
	if s.engine == nil || s.stale {
		if err := s.reloadLocked(ctx); err != nil {
			return nil, err
		}
	}
	return s.engine, nil
}

func (s *searcherImpl) reloadLocked(ctx context.Context) error {
	docs, err := s.source.Load(ctx, s.config.Options.Namespace)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}

	records := make([]Record, len(docs))
	for i := range docs {
		records[i] = docs[i]
	}

	engine, err := s.factory(records, s.config.Options.Search)
	if err != nil {
		return err
	}

	s.engine = engine
	s.stale = false
	s.logger.Debug("search engine rebuilt",
		"namespace", s.config.Options.Namespace,
		"engine", s.config.Options.Engine,
		"records", engine.Len())
	return nil
}

// New creates a new Searcher backed by the specified source.
// The sourceType must be registered (case-insensitive). Config contains
// both source-specific settings and common options.
// Returns ErrSourceNotFound or ErrEngineNotFound for unknown names, or the
// validation error of an invalid SearchConfig.
//
// Example:
//
//	import _ "github.com/remiges-tech/fuzzysearch/sources/memory"
//
//	config := fuzzysearch.NewConfig(memory.Config{})
//	s, err := fuzzysearch.New("memory", config)
//
//nolint:gocritic // hugeParam: New() is only called once at startup
func New(sourceType string, config Config) (Searcher, error) {
	opts := &config.Options
	if err := opts.Search.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	if opts.Engine == "" {
		opts.Engine = EngineCustom
	}

	factory, exists := lookupEngine(opts.Engine)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, opts.Engine)
	}

	sourceFactory, exists := lookupSource(sourceType)
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, sourceType)
	}

	source, err := sourceFactory(config.SourceConfig)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.Discard()
	}

	return &searcherImpl{
		source:  source,
		factory: factory,
		config:  config,
		logger:  logger,
	}, nil
}

// SourceFactory creates a Source from a configuration.
// The factory must type-assert the config parameter to its expected type.
type SourceFactory func(config interface{}) (sources.Source, error)

var (
	registryMu sync.RWMutex

	// sourceFactories holds the registered source factories.
	sourceFactories = make(map[string]SourceFactory)

	// engineFactories holds the registered engines.
	engineFactories = map[string]EngineFactory{
		EngineCustom: func(records []Record, config SearchConfig) (Engine, error) {
			return Build(records, config)
		},
	}
)

// RegisterSource registers a record source factory.
// Typically called from a source's init() function. The name is
// case-insensitive. Registering with an existing name overwrites it.
//
// Example:
//
//	package mysource
//
//	func init() {
//	    fuzzysearch.RegisterSource("mysource", NewSource)
//	}
func RegisterSource(name string, factory SourceFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	sourceFactories[strings.ToLower(name)] = factory
}

// RegisterEngine registers a scoring engine under a case-insensitive name.
// Registering with an existing name overwrites it.
func RegisterEngine(name string, factory EngineFactory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	engineFactories[strings.ToLower(name)] = factory
}

// BuildEngine builds the named engine over records.
func BuildEngine(name string, records []Record, config SearchConfig) (Engine, error) {
	factory, ok := lookupEngine(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEngineNotFound, name)
	}
	return factory(records, config)
}

func lookupSource(name string) (SourceFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := sourceFactories[strings.ToLower(name)]
	return f, ok
}

func lookupEngine(name string) (EngineFactory, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	f, ok := engineFactories[strings.ToLower(name)]
	return f, ok
}
