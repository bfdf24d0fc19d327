package fuzzysearch

import (
	"math"
	"sort"
	"strings"
)

// Top returns at most n results. A non-positive n returns all of them.
// The engine never truncates; this is the caller's display policy.
func Top(results []MatchResult, n int) []MatchResult {
	if n <= 0 || len(results) <= n {
		return results
	}
	return results[:n]
}

// MatchPercent converts an inverted score to a rounded match percentage.
func MatchPercent(score float64) int {
	return int(math.Round((1 - score) * 100))
}

// Highlight wraps each range of raw in open and close markers.
// Ranges are applied in start order; ranges that fall outside raw are clamped,
// and a range starting inside an already highlighted span is skipped.
func Highlight(raw string, ranges []Range, open, close string) string {
	if len(ranges) == 0 {
		return raw
	}
	runes := []rune(raw)

	sorted := append([]Range(nil), ranges...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i][0] < sorted[j][0]
	})

	var b strings.Builder
	last := 0
	for _, r := range sorted {
		start, end := r[0], r[1]
		if start < last {
			continue
		}
		if start >= len(runes) {
			break
		}
		if end >= len(runes) {
			end = len(runes) - 1
		}
		if end < start {
			continue
		}
		b.WriteString(string(runes[last:start]))
		b.WriteString(open)
		b.WriteString(string(runes[start : end+1]))
		b.WriteString(close)
		last = end + 1
	}
	b.WriteString(string(runes[last:]))
	return b.String()
}

// HighlightField highlights the named field of a result. When the field did not
// match, fallback is returned unchanged.
func HighlightField(result MatchResult, field, fallback, open, close string) string {
	for _, m := range result.Matches {
		if m.Field == field {
			return Highlight(m.Value, m.Indices, open, close)
		}
	}
	return fallback
}

// Extract returns the text covered by r in raw.
func Extract(raw string, r Range) string {
	runes := []rune(raw)
	if r[0] < 0 || r[1] >= len(runes) || r[1] < r[0] {
		return ""
	}
	return string(runes[r[0] : r[1]+1])
}
