// Package widget holds the search widget state and its reducer.
//
// Reduce is the only code that changes State. It never performs I/O;
// anything the host has to do (rewrite the input box, copy to the
// clipboard) comes back as an Effect.
package widget

import (
	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/search"
	"github.com/oakwood-commons/grdfind/internal/selection"
)

// State is everything the widget shows.
type State struct {
	Catalog *catalog.Catalog
	LoadErr error
	Loading bool

	// Input is the raw text in the input box; Query is its normalized form.
	Input string
	Query string

	Matches   search.MatchSet
	Selection selection.Machine
	Detail    *catalog.Item
	Open      bool

	MaxSuggestions int
}

// New returns the initial state. maxSuggestions <= 0 selects the default.
func New(maxSuggestions int) State {
	if maxSuggestions <= 0 {
		maxSuggestions = search.DefaultMaxSuggestions
	}
	return State{
		Selection:      selection.Idle(),
		Loading:        true,
		MaxSuggestions: maxSuggestions,
	}
}

// Visible returns the rendered slice of the match set.
func (s State) Visible() []catalog.Item {
	return s.Matches.Visible(s.MaxSuggestions)
}

// Selected returns the highlighted item, if any.
func (s State) Selected() (catalog.Item, bool) {
	i := s.Selection.Index()
	if i < 0 || i >= s.Matches.VisibleLen(s.MaxSuggestions) {
		return catalog.Item{}, false
	}
	return s.Visible()[i], true
}

// ListKind says what the suggestion area shows.
type ListKind int

const (
	ListHidden ListKind = iota
	ListRows
	ListNoMatches
	ListLoading
	ListLoadError
)

// List describes the suggestion area for rendering.
type List struct {
	Kind     ListKind
	Rows     []catalog.Item
	Selected int
	Err      error
}

// List projects the state onto the suggestion area. A load failure fills
// the area while the list is closed; once a query opens it, the empty
// catalog shows the no-matches row like any other query.
func (s State) List() List {
	switch {
	case s.LoadErr != nil && !s.Open:
		return List{Kind: ListLoadError, Selected: -1, Err: s.LoadErr}
	case !s.Open:
		return List{Kind: ListHidden, Selected: -1}
	case s.Loading:
		return List{Kind: ListLoading, Selected: -1}
	case s.Matches.Empty():
		return List{Kind: ListNoMatches, Selected: -1}
	}
	return List{Kind: ListRows, Rows: s.Visible(), Selected: s.Selection.Index()}
}
