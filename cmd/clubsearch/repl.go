package main

import (
	"bufio"
	"fmt"
	"io"
	"sync"

	"github.com/spf13/cobra"

	"github.com/remiges-tech/fuzzysearch/internal/session"
)

var replCmd = &cobra.Command{
	Use:   "repl",
	Short: "Search interactively, one query per line",
	Long: `repl reads queries from standard input. Queries typed faster than the
configured debounce are merged, and results of superseded queries are dropped.`,
	Args: cobra.NoArgs,
	RunE: runRepl,
}

func init() {
	rootCmd.AddCommand(replCmd)
}

func runRepl(cmd *cobra.Command, _ []string) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	searcher, err := openSearcher(cfg, logger)
	if err != nil {
		return err
	}
	defer searcher.Close()

	// Load once up front so the first keystroke does not pay for it.
	if err := searcher.Reload(cmd.Context()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	var mu sync.Mutex
	s := session.New(cmd.Context(), searcher, cfg.Limit, cfg.Debounce, func(r session.Result) {
		mu.Lock()
		defer mu.Unlock()
		if r.Err != nil {
			fmt.Fprintf(out, "error: %v\n", r.Err)
			return
		}
		printResults(out, r.Query, r.Results, cfg.Search.Fields)
	})

	err = readQueries(cmd.InOrStdin(), s.Type)
	s.Close()

	logger.Debug("repl finished", "queries", s.Current(), "dropped", s.Dropped())
	return err
}

// readQueries passes each input line to typeFn until EOF.
func readQueries(r io.Reader, typeFn func(string)) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		typeFn(scanner.Text())
	}
	return scanner.Err()
}
