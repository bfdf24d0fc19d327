// Package sahilm provides a search engine backed by github.com/sahilm/fuzzy.
//
// Fields are matched with sahilm's subsequence matcher instead of the built-in
// exact/prefix/substring/fuzzy ladder. A field scores query length over the span
// of the matched characters, so a contiguous match scores 1. Field weighting,
// thresholds and ranking are the same as the built-in engine.
//
//	import _ "github.com/remiges-tech/fuzzysearch/engines/sahilm"
//
//	config.Options.Engine = "sahilm"
package sahilm

import (
	"unicode/utf8"

	"github.com/sahilm/fuzzy"

	"github.com/remiges-tech/fuzzysearch"
)

// Name is the engine name used for registration.
const Name = "sahilm"

//nolint:gochecknoinits // init() is the idiomatic pattern for engine registration
func init() {
	fuzzysearch.RegisterEngine(Name, Build)
}

// Build creates a matcher over records that scores fields with sahilm/fuzzy.
func Build(records []fuzzysearch.Record, config fuzzysearch.SearchConfig) (fuzzysearch.Engine, error) {
	return fuzzysearch.BuildWithScorer(records, config, Scorer{})
}

// Scorer is a fuzzysearch.FieldScorer using sahilm/fuzzy.
type Scorer struct{}

// Score matches query against value and returns the compactness of the match.
func (Scorer) Score(query, value []rune) (float64, []fuzzysearch.Range) {
	if len(query) == 0 || len(value) == 0 {
		return 0, nil
	}

	text := string(value)
	matches := fuzzy.Find(string(query), []string{text})
	if len(matches) == 0 {
		return 0, nil
	}

	positions := runePositions(text, matches[0].MatchedIndexes)
	if len(positions) == 0 {
		return 0, nil
	}

	span := positions[len(positions)-1] - positions[0] + 1
	score := float64(len(query)) / float64(span)
	if score > 1 {
		score = 1
	}
	return score, mergeRanges(positions)
}

// runePositions converts sorted byte offsets into rune offsets.
func runePositions(text string, byteOffsets []int) []int {
	positions := make([]int, 0, len(byteOffsets))
	for _, off := range byteOffsets {
		if off < 0 || off > len(text) {
			continue
		}
		positions = append(positions, utf8.RuneCountInString(text[:off]))
	}
	return positions
}

// mergeRanges collapses runs of consecutive positions into ranges.
func mergeRanges(positions []int) []fuzzysearch.Range {
	var ranges []fuzzysearch.Range
	for _, p := range positions {
		if n := len(ranges); n > 0 && ranges[n-1][1]+1 == p {
			ranges[n-1][1] = p
			continue
		}
		ranges = append(ranges, fuzzysearch.Range{p, p})
	}
	return ranges
}
