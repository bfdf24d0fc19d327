package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/remiges-tech/fuzzysearch"
	_ "github.com/remiges-tech/fuzzysearch/engines/sahilm"
	"github.com/remiges-tech/fuzzysearch/internal/config"
	"github.com/remiges-tech/fuzzysearch/internal/log"
	"github.com/remiges-tech/fuzzysearch/sources/elasticsearch"
	"github.com/remiges-tech/fuzzysearch/sources/memory"
	"github.com/remiges-tech/fuzzysearch/sources/redis"
)

var (
	flagConfig string
	flagSource string
	flagEngine string
	flagDebug  bool
)

var rootCmd = &cobra.Command{
	Use:          "clubsearch",
	Short:        "Fuzzy search over club names and descriptions",
	SilenceUsage: true, // don't print usage on operational errors
	Long: `clubsearch ranks club records against a partial query, weighting names
over descriptions, and highlights where each result matched.

Records come from a YAML seed file, Redis or Elasticsearch as configured in
~/.clubsearch/clubsearch.yaml.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file (default ~/.clubsearch/clubsearch.yaml)")
	rootCmd.PersistentFlags().StringVar(&flagSource, "source", "", "Record source: memory, redis or elasticsearch")
	rootCmd.PersistentFlags().StringVar(&flagEngine, "engine", "", "Scoring engine: custom or sahilm")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig reads the config file and applies command-line overrides.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, err
	}
	if flagSource != "" {
		cfg.Source = flagSource
	}
	if flagEngine != "" {
		cfg.Engine = flagEngine
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger := log.NewFromEnv(&log.Config{
		Output: os.Stderr,
		Level:  log.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
		Debug:  flagDebug,
	})
	return cfg, logger, nil
}

// openSearcher creates a searcher for the configured source.
func openSearcher(cfg *config.Config, logger *slog.Logger) (fuzzysearch.Searcher, error) {
	opts := cfg.SearchOptions()
	opts.Logger = logger

	source := strings.ToLower(cfg.Source)
	searcher, err := fuzzysearch.New(source, fuzzysearch.NewConfigWithOptions(sourceConfig(cfg), opts))
	if err != nil {
		return nil, fmt.Errorf("cannot open %s source: %w", source, err)
	}

	logger.Debug("searcher opened", "source", source, "engine", opts.Engine, "namespace", opts.Namespace)
	return searcher, nil
}

func sourceConfig(cfg *config.Config) interface{} {
	switch strings.ToLower(cfg.Source) {
	case config.SourceRedis:
		return redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}
	case config.SourceElasticsearch:
		return elasticsearch.Config{
			URLs:          cfg.Elasticsearch.URLs,
			Index:         cfg.Elasticsearch.Index,
			Username:      cfg.Elasticsearch.Username,
			Password:      cfg.Elasticsearch.Password,
			CloudID:       cfg.Elasticsearch.CloudID,
			APIKey:        cfg.Elasticsearch.APIKey,
			RefreshPolicy: cfg.Elasticsearch.RefreshPolicy,
		}
	default:
		return memory.Config{
			SeedFile:      cfg.Memory.SeedFile,
			SeedNamespace: cfg.Namespace,
		}
	}
}
