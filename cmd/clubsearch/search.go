package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var (
	flagSearchLimit int
	flagSearchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Rank clubs against a query",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&flagSearchLimit, "limit", "n", 0, "Number of results to show (default from config)")
	searchCmd.Flags().BoolVar(&flagSearchJSON, "json", false, "Print results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	searcher, err := openSearcher(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := searcher.Close(); closeErr != nil {
			logger.Warn("failed to close searcher", "error", closeErr)
		}
	}()

	query := strings.Join(args, " ")
	results, err := searcher.Search(cmd.Context(), query, flagSearchLimit)
	if err != nil {
		return err
	}

	if flagSearchJSON {
		return printJSON(cmd.OutOrStdout(), results)
	}
	printResults(cmd.OutOrStdout(), query, results, cfg.Search.Fields)
	return nil
}
