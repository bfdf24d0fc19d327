package fuzzysearch

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// FieldMatch describes where the query matched in one field.
type FieldMatch struct {
	// Field is the configured field name.
	Field string `json:"field"`

	// Indices are inclusive rune ranges into Value to highlight.
	Indices []Range `json:"indices"`

	// Value is the raw field value with its original case.
	Value string `json:"value"`
}

// MatchResult is a single ranked match.
type MatchResult struct {
	// Record is the matched record.
	Record Record `json:"record"`

	// RefIndex is the position of the record in the collection the matcher was built from.
	RefIndex int `json:"refIndex"`

	// Score is 1 minus the weighted field score, so lower is better.
	// Callers display it as round((1-Score)*100) percent.
	Score float64 `json:"score"`

	// Matches lists the fields that contributed to the score, in configured order.
	Matches []FieldMatch `json:"matches"`
}

// Matcher scores and ranks a fixed collection of records.
// A Matcher is immutable: build a new one when the records change.
// It is safe for concurrent use.
type Matcher struct {
	records []Record
	config  SearchConfig
	scorer  FieldScorer
}

// Build creates a Matcher over records using the built-in scorer.
// An empty collection is valid; its searches return no results.
func Build(records []Record, config SearchConfig) (*Matcher, error) {
	return BuildWithScorer(records, config, defaultScorer)
}

// BuildWithScorer creates a Matcher that scores each field with scorer.
// Weighting, threshold filtering and ranking are the same as Build.
func BuildWithScorer(records []Record, config SearchConfig, scorer FieldScorer) (*Matcher, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid search config: %w", err)
	}
	if scorer == nil {
		scorer = defaultScorer
	}

	return &Matcher{
		records: append([]Record(nil), records...),
		config:  config.clone(),
		scorer:  scorer,
	}, nil
}

// Len returns the number of records in the matcher.
func (m *Matcher) Len() int {
	return len(m.records)
}

// Config returns a copy of the matcher's configuration.
func (m *Matcher) Config() SearchConfig {
	return m.config.clone()
}

// skipsQuery reports whether query is blank or shorter than MinQueryLength.
// Such queries match nothing and must not touch any record.
func skipsQuery(query string, config SearchConfig) bool {
	return strings.TrimSpace(query) == "" || utf8.RuneCountInString(query) < config.MinQueryLength
}

// Search returns every record whose weighted score reaches the threshold,
// best first. Blank queries and queries shorter than MinQueryLength return an
// empty slice without looking at any record. Results are not truncated.
func (m *Matcher) Search(query string) []MatchResult {
	if skipsQuery(query, m.config) {
		return []MatchResult{}
	}

	q := lowerRunes(query)
	results := make([]MatchResult, 0)

	for i, record := range m.records {
		var totalScore, totalWeight float64
		var matches []FieldMatch

		for _, field := range m.config.Fields {
			raw := fieldValue(record, field.Name)
			score, indices := m.scorer.Score(q, lowerRunes(raw))
			if score <= 0 {
				continue
			}
			matches = append(matches, FieldMatch{
				Field:   field.Name,
				Indices: indices,
				Value:   raw,
			})
			totalScore += score * field.Weight
			totalWeight += field.Weight
		}

		if totalWeight == 0 {
			continue
		}
		average := totalScore / totalWeight
		if average < m.config.Threshold {
			continue
		}

		results = append(results, MatchResult{
			Record:   record,
			RefIndex: i,
			Score:    1 - average,
			Matches:  matches,
		})
	}

	sort.SliceStable(results, func(a, b int) bool {
		return results[a].Score < results[b].Score
	})

	return results
}
