package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/remiges-tech/fuzzysearch"
)

// Highlight markers used in plain output.
const (
	markOpen  = "["
	markClose = "]"
)

// jsonResult is the JSON shape of a search result.
type jsonResult struct {
	ID       string                   `json:"id"`
	RefIndex int                      `json:"refIndex"`
	Score    float64                  `json:"score"`
	Percent  int                      `json:"percent"`
	Matches  []fuzzysearch.FieldMatch `json:"matches"`
}

// printResults writes results as text, highlighting each configured field.
func printResults(w io.Writer, query string, results []fuzzysearch.MatchResult, fields []fuzzysearch.FieldSpec) {
	if len(results) == 0 {
		fmt.Fprintf(w, "No clubs match %q\n", query)
		return
	}

	for i, r := range results {
		fmt.Fprintf(w, "%d. [%s] Match: %d%%\n", i+1, r.Record.Key(), fuzzysearch.MatchPercent(r.Score))
		for _, f := range fields {
			raw, _ := r.Record.Field(f.Name)
			text := fuzzysearch.HighlightField(r, f.Name, raw, markOpen, markClose)
			if text == "" {
				continue
			}
			fmt.Fprintf(w, "   %-12s %s\n", f.Name+":", text)
		}
	}
}

// printJSON writes results as an indented JSON array.
func printJSON(w io.Writer, results []fuzzysearch.MatchResult) error {
	out := make([]jsonResult, len(results))
	for i, r := range results {
		out[i] = jsonResult{
			ID:       r.Record.Key(),
			RefIndex: r.RefIndex,
			Score:    r.Score,
			Percent:  fuzzysearch.MatchPercent(r.Score),
			Matches:  r.Matches,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
