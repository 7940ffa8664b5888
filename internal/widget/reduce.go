package widget

import (
	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/search"
	"github.com/oakwood-commons/grdfind/internal/selection"
)

// Event is something the user or the host did.
type Event interface{ isEvent() }

// InputChanged carries the new raw text of the input box.
type InputChanged struct{ Text string }

// Key is a navigation key the widget consumes.
type Key int

const (
	KeyDown Key = iota
	KeyUp
	KeyEnter
	KeyEscape
)

// KeyPressed is a navigation key press.
type KeyPressed struct{ Key Key }

// Hover is the pointer resting on a visible suggestion row.
type Hover struct{ Row int }

// ClickRow is a click on a visible suggestion row.
type ClickRow struct{ Row int }

// ClickInput is a click on the input box.
type ClickInput struct{}

// ClickOutside is a click away from the input box and the list.
type ClickOutside struct{}

// CatalogLoaded reports the result of the startup load.
type CatalogLoaded struct {
	Catalog *catalog.Catalog
	Err     error
}

// CopyField asks to copy one detail field.
type CopyField struct{ Field Field }

func (InputChanged) isEvent()  {}
func (KeyPressed) isEvent()    {}
func (Hover) isEvent()         {}
func (ClickRow) isEvent()      {}
func (ClickInput) isEvent()    {}
func (ClickOutside) isEvent()  {}
func (CatalogLoaded) isEvent() {}
func (CopyField) isEvent()     {}

// Effect is work the host must perform after a transition.
type Effect interface{ isEffect() }

// SetInput replaces the input box text without producing an InputChanged.
type SetInput struct{ Text string }

// Copy puts Text on the clipboard and reports the outcome under Label.
type Copy struct {
	Text  string
	Label string
}

func (SetInput) isEffect() {}
func (Copy) isEffect()     {}

// CopyLabelGRD is the notification label used when a row is committed.
const CopyLabelGRD = "GRD"

// Reduce applies ev to s.
func Reduce(s State, ev Event) (State, []Effect) {
	switch ev := ev.(type) {
	case InputChanged:
		s.Input = ev.Text
		return refilter(s), nil

	case KeyPressed:
		return onKey(s, ev.Key)

	case Hover:
		if !s.Open || ev.Row < 0 || ev.Row >= s.Selection.Count() {
			return s, nil
		}
		s.Selection = s.Selection.Hover(ev.Row)
		return showSelected(s), nil

	case ClickRow:
		if !s.Open || ev.Row < 0 || ev.Row >= s.Selection.Count() {
			return s, nil
		}
		return commit(s, s.Visible()[ev.Row])

	case ClickInput:
		if s.Input == "" {
			return s, nil
		}
		return reset(s)

	case ClickOutside:
		s.Open = false
		s.Matches = search.MatchSet{}
		s.Selection = s.Selection.Clear()
		return s, nil

	case CatalogLoaded:
		s.Loading = false
		s.Catalog = ev.Catalog
		s.LoadErr = ev.Err
		if ev.Err != nil {
			s.Catalog = nil
		}
		if s.Query == "" {
			return s, nil
		}
		return refilter(s), nil

	case CopyField:
		return s, []Effect{Copy{Text: Value(s.Detail, ev.Field), Label: ev.Field.Label()}}
	}
	return s, nil
}

func onKey(s State, k Key) (State, []Effect) {
	switch k {
	case KeyDown:
		s.Selection = s.Selection.Down()
		return showSelected(s), nil
	case KeyUp:
		s.Selection = s.Selection.Up()
		return showSelected(s), nil
	case KeyEnter:
		it, ok := s.Selected()
		if !ok {
			return s, nil
		}
		return commit(s, it)
	case KeyEscape:
		return reset(s)
	}
	return s, nil
}

// refilter recomputes matches from s.Input. An empty query clears the
// list and the detail panel without consulting the filter.
func refilter(s State) State {
	s.Query = search.Normalize(s.Input)
	if s.Query == "" {
		s.Matches = search.MatchSet{}
		s.Selection = selection.Idle()
		s.Detail = nil
		s.Open = false
		return s
	}
	s.Matches = search.Filter(s.Catalog, s.Query)
	s.Selection = s.Selection.QueryChanged(s.Matches.VisibleLen(s.MaxSuggestions))
	s.Open = true
	return showSelected(s)
}

func showSelected(s State) State {
	if it, ok := s.Selected(); ok {
		s.Detail = &it
	}
	return s
}

func commit(s State, it catalog.Item) (State, []Effect) {
	label := it.Label()
	s.Input = label
	s.Query = ""
	s.Matches = search.MatchSet{}
	s.Selection = selection.Idle()
	s.Open = false
	s.Detail = &it
	return s, []Effect{
		SetInput{Text: label},
		Copy{Text: it.GRD, Label: CopyLabelGRD},
	}
}

func reset(s State) (State, []Effect) {
	s.Input = ""
	s.Query = ""
	s.Matches = search.MatchSet{}
	s.Selection = selection.Idle()
	s.Open = false
	s.Detail = nil
	return s, []Effect{SetInput{Text: ""}}
}
