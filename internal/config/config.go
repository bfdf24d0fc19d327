// Package config loads the clubsearch YAML configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/remiges-tech/fuzzysearch"
)

// Source names accepted in the configuration.
const (
	SourceMemory        = "memory"
	SourceRedis         = "redis"
	SourceElasticsearch = "elasticsearch"
)

// RedisConfig mirrors redis.Config.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password,omitempty"`
	DB       int    `yaml:"db"`
}

// ElasticsearchConfig mirrors elasticsearch.Config.
type ElasticsearchConfig struct {
	URLs          []string `yaml:"urls"`
	Index         string   `yaml:"index"`
	Username      string   `yaml:"username,omitempty"`
	Password      string   `yaml:"password,omitempty"`
	CloudID       string   `yaml:"cloud_id,omitempty"`
	APIKey        string   `yaml:"api_key,omitempty"`
	RefreshPolicy string   `yaml:"refresh_policy,omitempty"`
}

// MemoryConfig mirrors memory.Config.
type MemoryConfig struct {
	SeedFile string `yaml:"seed_file,omitempty"`
}

// LogConfig selects log level and format.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Config is the in-memory representation of clubsearch.yaml.
type Config struct {
	Source    string                   `yaml:"source"`
	Engine    string                   `yaml:"engine"`
	Namespace string                   `yaml:"namespace"`
	Limit     int                      `yaml:"limit"`
	Debounce  time.Duration            `yaml:"debounce"`
	Search    fuzzysearch.SearchConfig `yaml:"search"`

	Memory        MemoryConfig        `yaml:"memory"`
	Redis         RedisConfig         `yaml:"redis"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch"`
	Log           LogConfig           `yaml:"log"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	return &Config{
		Source:    SourceMemory,
		Engine:    fuzzysearch.EngineCustom,
		Namespace: "clubs",
		Limit:     3,
		Debounce:  150 * time.Millisecond,
		Search:    fuzzysearch.DefaultSearchConfig(),
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Elasticsearch: ElasticsearchConfig{
			URLs:          []string{"http://localhost:9200"},
			Index:         "fuzzysearch",
			RefreshPolicy: "true",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// DefaultPath returns ~/.clubsearch/clubsearch.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".clubsearch", "clubsearch.yaml"), nil
}

// Load reads the configuration at path over the defaults. A missing file is
// not an error when path is the default location.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks values that the searcher would otherwise reject later.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Source) {
	case SourceMemory, SourceRedis, SourceElasticsearch:
	default:
		return fmt.Errorf("unknown source %q", c.Source)
	}
	if c.Namespace == "" {
		return errors.New("namespace must not be empty")
	}
	if c.Limit < 0 {
		return fmt.Errorf("limit must not be negative: %d", c.Limit)
	}
	if c.Debounce < 0 {
		return fmt.Errorf("debounce must not be negative: %s", c.Debounce)
	}
	return c.Search.Validate()
}

// SearchOptions converts the configuration to searcher options.
func (c *Config) SearchOptions() fuzzysearch.Options {
	opts := fuzzysearch.DefaultOptions()
	opts.Namespace = c.Namespace
	opts.Search = c.Search
	if c.Engine != "" {
		opts.Engine = c.Engine
	}
	if c.Limit > 0 {
		opts.DefaultLimit = c.Limit
	}
	return opts
}
