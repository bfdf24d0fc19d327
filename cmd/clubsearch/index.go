package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/remiges-tech/fuzzysearch/sources/memory"
)

var flagIndexReplace bool

var indexCmd = &cobra.Command{
	Use:   "index <records.yaml>",
	Short: "Load club records from a YAML file into the configured source",
	Args:  cobra.ExactArgs(1),
	RunE:  runIndex,
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all records in the configured namespace",
	Args:  cobra.NoArgs,
	RunE:  runClear,
}

func init() {
	indexCmd.Flags().BoolVar(&flagIndexReplace, "replace", false, "Remove existing records first")
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(clearCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	docs, err := memory.ReadSeedFile(args[0])
	if err != nil {
		return err
	}

	searcher, err := openSearcher(cfg, logger)
	if err != nil {
		return err
	}
	defer searcher.Close()

	ctx := cmd.Context()
	if flagIndexReplace {
		if err := searcher.DeleteAll(ctx); err != nil {
			return fmt.Errorf("cannot clear namespace %s: %w", cfg.Namespace, err)
		}
	}

	indexed := 0
	for _, doc := range docs {
		if err := searcher.Index(ctx, doc.ID, doc.Fields); err != nil {
			logger.Warn("failed to index record", "id", doc.ID, "error", err)
			continue
		}
		indexed++
	}

	logger.Info("records indexed", "namespace", cfg.Namespace, "indexed", indexed, "total", len(docs))
	fmt.Fprintf(cmd.OutOrStdout(), "Indexed %d of %d records into %s\n", indexed, len(docs), cfg.Namespace)
	return nil
}

func runClear(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	searcher, err := openSearcher(cfg, logger)
	if err != nil {
		return err
	}
	defer searcher.Close()

	if err := searcher.DeleteAll(cmd.Context()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Cleared %s\n", cfg.Namespace)
	return nil
}
