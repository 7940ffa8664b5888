// Package search implements the incremental catalog filter: an item matches
// when its GRD starts with the query or its description contains it,
// ignoring case.
package search

import (
	"strings"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

// DefaultMaxSuggestions is how many matches are rendered at most.
const DefaultMaxSuggestions = 8

// Normalize trims and lowercases raw input text.
func Normalize(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// Matches reports whether it matches an already normalized query.
func Matches(it catalog.Item, query string) bool {
	return strings.HasPrefix(strings.ToLower(it.GRD), query) ||
		strings.Contains(strings.ToLower(it.Description), query)
}

// MatchSet is the ordered result of Filter.
type MatchSet struct {
	items []catalog.Item
}

// NewMatchSet wraps items, in order, as a match set.
func NewMatchSet(items []catalog.Item) MatchSet {
	return MatchSet{items: items}
}

// Filter returns every catalog item matching query, in catalog order. The
// query is normalized first; an empty query yields an empty set.
func Filter(c *catalog.Catalog, query string) MatchSet {
	q := Normalize(query)
	if q == "" {
		return MatchSet{}
	}
	var out []catalog.Item
	c.Each(func(_ int, it catalog.Item) bool {
		if Matches(it, q) {
			out = append(out, it)
		}
		return true
	})
	return MatchSet{items: out}
}

// Len is the logical number of matches, independent of any display cap.
func (m MatchSet) Len() int { return len(m.items) }

// Empty reports whether nothing matched.
func (m MatchSet) Empty() bool { return len(m.items) == 0 }

// Items returns a copy of all matches.
func (m MatchSet) Items() []catalog.Item {
	if m.items == nil {
		return nil
	}
	cp := make([]catalog.Item, len(m.items))
	copy(cp, m.items)
	return cp
}

// Visible returns at most n leading matches. n <= 0 means no cap.
func (m MatchSet) Visible(n int) []catalog.Item {
	if n <= 0 || n >= len(m.items) {
		return m.Items()
	}
	cp := make([]catalog.Item, n)
	copy(cp, m.items[:n])
	return cp
}

// VisibleLen is len(Visible(n)) without copying.
func (m MatchSet) VisibleLen(n int) int {
	if n <= 0 || n >= len(m.items) {
		return len(m.items)
	}
	return n
}
