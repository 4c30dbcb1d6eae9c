// ABOUTME: Thin wrapper over sahilm/fuzzy for fuzzy string matching
// ABOUTME: Empty patterns match everything so callers can fall through to a full listing

// Package fuzzy wraps sahilm/fuzzy with one convention on top: an
// empty pattern matches every item in input order, so autocomplete
// callers show the unfiltered listing instead of nothing.
package fuzzy

import "github.com/sahilm/fuzzy"

// Match represents a single fuzzy match result.
type Match struct {
	Str            string
	Index          int
	MatchedIndexes []int
	Score          int
}

// Find performs fuzzy matching of pattern against the given items.
// Returns matches sorted by score (best first).
func Find(pattern string, items []string) []Match {
	if pattern == "" {
		matches := make([]Match, len(items))
		for i, s := range items {
			matches[i] = Match{Str: s, Index: i}
		}
		return matches
	}
	results := fuzzy.Find(pattern, items)
	matches := make([]Match, len(results))
	for i, r := range results {
		matches[i] = Match{
			Str:            r.Str,
			Index:          r.Index,
			MatchedIndexes: r.MatchedIndexes,
			Score:          r.Score,
		}
	}
	return matches
}
