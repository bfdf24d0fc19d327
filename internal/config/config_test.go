package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remiges-tech/fuzzysearch"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clubsearch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, SourceMemory, cfg.Source)
	assert.Equal(t, 3, cfg.Limit)
	assert.Equal(t, 0.7, cfg.Search.Threshold)
	assert.Len(t, cfg.Search.Fields, 2)
}

func TestLoad_OverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
source: redis
namespace: berlin
limit: 5
debounce: 250ms
engine: sahilm
search:
  threshold: 0.5
  min_query_length: 2
  fields:
    - name: name
      weight: 1
redis:
  addr: cache:6379
  db: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, SourceRedis, cfg.Source)
	assert.Equal(t, "berlin", cfg.Namespace)
	assert.Equal(t, 5, cfg.Limit)
	assert.Equal(t, 250*time.Millisecond, cfg.Debounce)
	assert.Equal(t, "sahilm", cfg.Engine)
	assert.Equal(t, []fuzzysearch.FieldSpec{{Name: "name", Weight: 1}}, cfg.Search.Fields)
	assert.Equal(t, 0.5, cfg.Search.Threshold)
	assert.Equal(t, 2, cfg.Search.MinQueryLength)
	assert.Equal(t, "cache:6379", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	// untouched sections keep defaults
	assert.Equal(t, []string{"http://localhost:9200"}, cfg.Elasticsearch.URLs)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, "source: [\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown source", "source: postgres\n"},
		{"empty namespace", "namespace: \"\"\n"},
		{"negative limit", "limit: -1\n"},
		{"negative debounce", "debounce: -1s\n"},
		{"bad threshold", "search:\n  threshold: 2\n"},
		{"zero weight", "search:\n  fields:\n    - name: name\n      weight: 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}

func TestSearchOptions(t *testing.T) {
	cfg := Default()
	cfg.Namespace = "berlin"
	cfg.Limit = 7
	cfg.Engine = "sahilm"

	opts := cfg.SearchOptions()
	assert.Equal(t, "berlin", opts.Namespace)
	assert.Equal(t, 7, opts.DefaultLimit)
	assert.Equal(t, "sahilm", opts.Engine)
	assert.Equal(t, cfg.Search, opts.Search)
}
