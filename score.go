package fuzzysearch

import "unicode"

// Field scores for each match kind, best first.
const (
	scoreExact     = 1.0
	scorePrefix    = 0.98
	scoreSubstring = 0.9

	// fuzzyKeep is the lowest fuzzy score still counted as a match.
	fuzzyKeep = 0.6
	// fuzzyDiscount scales accepted fuzzy scores below any contiguous match.
	fuzzyDiscount = 0.4
	// fuzzyMinRatio is the share of query characters that must appear in order.
	fuzzyMinRatio = 0.8
	// shortQueryLen is the longest query that still requires a contiguous match.
	shortQueryLen = 3
	// shortQueryScore is returned for a short query found as a substring.
	shortQueryScore = 0.8
)

// Range is an inclusive [start, end] pair of rune offsets into a field value.
type Range [2]int

// FieldScorer scores one lower-cased field value against a lower-cased query.
// It returns a score in [0, 1] and the ranges to highlight. A zero score means
// the field did not match.
type FieldScorer interface {
	Score(query, value []rune) (float64, []Range)
}

// FieldScorerFunc adapts a function to FieldScorer.
type FieldScorerFunc func(query, value []rune) (float64, []Range)

// Score calls f.
func (f FieldScorerFunc) Score(query, value []rune) (float64, []Range) {
	return f(query, value)
}

// defaultScorer is the exact > prefix > substring > fuzzy scorer.
var defaultScorer FieldScorer = FieldScorerFunc(scoreField)

func scoreField(query, value []rune) (float64, []Range) {
	score := fieldScore(query, value)
	if score == 0 {
		return 0, nil
	}
	return score, findMatchIndices(query, value)
}

// fieldScore applies the match kinds in priority order; the first that matches wins.
func fieldScore(query, value []rune) float64 {
	if len(value) == 0 {
		return 0
	}
	if equalRunes(value, query) {
		return scoreExact
	}
	if hasPrefix(value, query) {
		return scorePrefix
	}
	if indexRunes(value, query, 0) >= 0 {
		return scoreSubstring
	}
	fuzzy := fuzzyMatchScore(query, value)
	if fuzzy >= fuzzyKeep {
		return fuzzy * fuzzyDiscount
	}
	return 0
}

// fuzzyMatchScore returns the share of query runes found in order in value,
// or 0 when fewer than 80% were found. Queries of up to three runes must
// appear contiguously.
func fuzzyMatchScore(query, value []rune) float64 {
	if len(query) == 0 {
		return 1
	}
	if len(value) == 0 {
		return 0
	}
	if len(query) <= shortQueryLen {
		if indexRunes(value, query, 0) >= 0 {
			return shortQueryScore
		}
		return 0
	}

	matched := 0
	for i := 0; i < len(value) && matched < len(query); i++ {
		if value[i] == query[matched] {
			matched++
		}
	}

	ratio := float64(matched) / float64(len(query))
	if ratio >= fuzzyMinRatio {
		return ratio
	}
	return 0
}

// findMatchIndices returns the first contiguous occurrence of query in value,
// or else one single-rune range per query rune found scanning left to right.
// Runes that are not found are skipped. The fallback is greedy and can point at
// an earlier occurrence of a repeated rune than the one a reader would expect.
func findMatchIndices(query, value []rune) []Range {
	if len(query) == 0 {
		return nil
	}
	if i := indexRunes(value, query, 0); i >= 0 {
		return []Range{{i, i + len(query) - 1}}
	}

	var ranges []Range
	from := 0
	for _, r := range query {
		i := indexRune(value, r, from)
		if i < 0 {
			continue
		}
		ranges = append(ranges, Range{i, i})
		from = i + 1
	}
	return ranges
}

// lowerRunes lower-cases s rune by rune so offsets match the original string.
func lowerRunes(s string) []rune {
	rs := []rune(s)
	for i, r := range rs {
		rs[i] = unicode.ToLower(r)
	}
	return rs
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func hasPrefix(s, prefix []rune) bool {
	return len(s) >= len(prefix) && equalRunes(s[:len(prefix)], prefix)
}

// indexRunes returns the first index >= from where sub occurs in s, or -1.
func indexRunes(s, sub []rune, from int) int {
	for i := from; i+len(sub) <= len(s); i++ {
		if equalRunes(s[i:i+len(sub)], sub) {
			return i
		}
	}
	return -1
}

// indexRune returns the first index >= from holding r, or -1.
func indexRune(s []rune, r rune, from int) int {
	for i := from; i < len(s); i++ {
		if s[i] == r {
			return i
		}
	}
	return -1
}
