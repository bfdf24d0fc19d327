package fuzzysearch

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/fuzzysearch/sources"
)

// mockSource is an in-memory source for testing.
type mockSource struct {
	mu      sync.Mutex
	data    map[string][]sources.Document
	loads   int
	loadErr error
	closed  int
}

func newMockSource() *mockSource {
	return &mockSource{
		data: make(map[string][]sources.Document),
	}
}

func (m *mockSource) Put(_ context.Context, key string, doc sources.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.data[key] {
		if existing.ID == doc.ID {
			m.data[key][i] = doc
			return nil
		}
	}
	m.data[key] = append(m.data[key], doc)
	return nil
}

func (m *mockSource) Load(_ context.Context, key string) ([]sources.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loads++
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return append([]sources.Document{}, m.data[key]...), nil
}

func (m *mockSource) Delete(_ context.Context, key, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs := m.data[key]
	for i, existing := range docs {
		if existing.ID == id {
			m.data[key] = append(docs[:i], docs[i+1:]...)
			break
		}
	}
	return nil
}

func (m *mockSource) DeleteAll(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *mockSource) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed++
	return nil
}

func (m *mockSource) loadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loads
}

func newTestSearcher(t *testing.T, mock *mockSource, options Options) Searcher {
	t.Helper()
	RegisterSource("mock", func(config interface{}) (sources.Source, error) {
		return mock, nil
	})

	s, err := New("mock", NewConfigWithOptions(nil, options))
	require.NoError(t, err)
	return s
}

func seedClubs(t *testing.T, s Searcher) {
	t.Helper()
	ctx := context.Background()
	for _, c := range mockClubs {
		require.NoError(t, s.Index(ctx, c.Key(), map[string]string{
			FieldName:        c.Name,
			FieldDescription: c.Description,
		}))
	}
}

//nolint:cyclop // Test function with table-driven tests can have higher complexity
func TestSearcher(t *testing.T) {
	mock := newMockSource()
	s := newTestSearcher(t, mock, DefaultOptions())
	defer func() {
		if closeErr := s.Close(); closeErr != nil {
			t.Errorf("Failed to close searcher: %v", closeErr)
		}
	}()

	ctx := context.Background()

	// Index validation
	assert.Equal(t, ErrEmptyID, s.Index(ctx, "", map[string]string{FieldName: "x"}))
	assert.Equal(t, ErrEmptyFields, s.Index(ctx, "1", nil))

	seedClubs(t, s)

	// Default limit is three
	results, err := s.Search(ctx, "p", 0)
	require.NoError(t, err)
	assert.LessOrEqual(t, len(results), 3)

	results, err = s.Search(ctx, "popup", 10)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.Equal(t, "1", results[0].Record.Key())

	// Limit exceeded
	_, err = s.Search(ctx, "popup", 1000)
	assert.Equal(t, ErrLimitExceeded, err)

	// Short and blank queries are not errors
	results, err = s.Search(ctx, "  ", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	// No match
	results, err = s.Search(ctx, "xyz123impossible", 3)
	require.NoError(t, err)
	assert.Empty(t, results)

	// Delete
	require.NoError(t, s.Delete(ctx, "1"))
	assert.Equal(t, ErrEmptyID, s.Delete(ctx, ""))
	results, err = s.Search(ctx, "popup", 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"2", "3"}, keys(results))

	// DeleteAll
	require.NoError(t, s.DeleteAll(ctx))
	results, err = s.Search(ctx, "popup", 10)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSearcher_RebuildsOnlyWhenStale(t *testing.T) {
	mock := newMockSource()
	s := newTestSearcher(t, mock, DefaultOptions())
	defer s.Close()
	ctx := context.Background()

	seedClubs(t, s)

	_, err := s.Search(ctx, "club", 3)
	require.NoError(t, err)
	_, err = s.Search(ctx, "alpha", 3)
	require.NoError(t, err)
	assert.Equal(t, 1, mock.loadCount())

	require.NoError(t, s.Index(ctx, "7", map[string]string{FieldName: "clubGamma"}))
	results, err := s.Search(ctx, "clubgamma", 3)
	require.NoError(t, err)
	require.NotEmpty(t, results)
	assert.Equal(t, "7", results[0].Record.Key())
	assert.Equal(t, 6, results[0].RefIndex)
	assert.Equal(t, 2, mock.loadCount())

	require.NoError(t, s.Reload(ctx))
	assert.Equal(t, 3, mock.loadCount())
}

func TestSearcher_ShortQueryDoesNotLoad(t *testing.T) {
	mock := newMockSource()
	options := DefaultOptions()
	options.Search.MinQueryLength = 3
	s := newTestSearcher(t, mock, options)
	defer s.Close()
	ctx := context.Background()

	seedClubs(t, s)

	for _, query := range []string{"", "   ", "po", "é"} {
		results, err := s.Search(ctx, query, 3)
		require.NoError(t, err, query)
		assert.NotNil(t, results, query)
		assert.Empty(t, results, query)
	}
	assert.Equal(t, 0, mock.loadCount())

	results, err := s.Search(ctx, "pop", 3)
	require.NoError(t, err)
	assert.Len(t, results, 3)
	assert.Equal(t, 1, mock.loadCount())
}

func TestSearcher_ShortQueryAfterClose(t *testing.T) {
	s := newTestSearcher(t, newMockSource(), DefaultOptions())
	require.NoError(t, s.Close())

	_, err := s.Search(context.Background(), "", 3)
	assert.Equal(t, ErrClosed, err)
}

func TestSearcher_LoadError(t *testing.T) {
	mock := newMockSource()
	mock.loadErr = errors.New("backend down")
	s := newTestSearcher(t, mock, DefaultOptions())
	defer s.Close()

	_, err := s.Search(context.Background(), "club", 3)
	require.Error(t, err)
	assert.ErrorIs(t, err, mock.loadErr)
	assert.ErrorIs(t, s.Reload(context.Background()), mock.loadErr)
}

func TestSearcher_Close(t *testing.T) {
	mock := newMockSource()
	s := newTestSearcher(t, mock, DefaultOptions())
	ctx := context.Background()

	require.NoError(t, s.Close())
	require.NoError(t, s.Close())
	assert.Equal(t, 1, mock.closed)

	_, err := s.Search(ctx, "club", 3)
	assert.Equal(t, ErrClosed, err)
	assert.Equal(t, ErrClosed, s.Index(ctx, "1", map[string]string{FieldName: "x"}))
	assert.Equal(t, ErrClosed, s.Delete(ctx, "1"))
	assert.Equal(t, ErrClosed, s.DeleteAll(ctx))
	assert.Equal(t, ErrClosed, s.Reload(ctx))
}

func TestSearcher_CustomEngine(t *testing.T) {
	RegisterEngine("everything", func(records []Record, config SearchConfig) (Engine, error) {
		return BuildWithScorer(records, config, FieldScorerFunc(func(q, v []rune) (float64, []Range) {
			return 1, nil
		}))
	})

	opts := DefaultOptions()
	opts.Engine = "Everything"
	mock := newMockSource()
	s := newTestSearcher(t, mock, opts)
	defer s.Close()

	seedClubs(t, s)
	results, err := s.Search(context.Background(), "zzzz", 10)
	require.NoError(t, err)
	assert.Len(t, results, len(mockClubs))
}

func TestNew_Errors(t *testing.T) {
	_, err := New("nonexistent", NewConfig(nil))
	assert.ErrorIs(t, err, ErrSourceNotFound)

	RegisterSource("mock", func(config interface{}) (sources.Source, error) {
		return newMockSource(), nil
	})

	opts := DefaultOptions()
	opts.Engine = "nonexistent"
	_, err = New("mock", NewConfigWithOptions(nil, opts))
	assert.ErrorIs(t, err, ErrEngineNotFound)

	opts = DefaultOptions()
	opts.Search.Fields = nil
	_, err = New("mock", NewConfigWithOptions(nil, opts))
	assert.ErrorIs(t, err, ErrNoFields)

	failing := errors.New("cannot connect")
	RegisterSource("failing", func(config interface{}) (sources.Source, error) {
		return nil, failing
	})
	_, err = New("FAILING", NewConfig(nil))
	assert.ErrorIs(t, err, failing)
}

func TestBuildEngine(t *testing.T) {
	e, err := BuildEngine(EngineCustom, Clubs(mockClubs), DefaultSearchConfig())
	require.NoError(t, err)
	assert.Equal(t, len(mockClubs), e.Len())

	_, err = BuildEngine("missing", nil, DefaultSearchConfig())
	assert.ErrorIs(t, err, ErrEngineNotFound)
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()

	assert.Equal(t, 3, opts.DefaultLimit)
	assert.Equal(t, 100, opts.MaxLimit)
	assert.Equal(t, "clubs", opts.Namespace)
	assert.Equal(t, EngineCustom, opts.Engine)
	assert.NoError(t, opts.Search.Validate())
}
