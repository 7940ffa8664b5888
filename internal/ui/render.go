package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/widget"
)

const (
	copyTarget    = "[copy]"
	detailLabelW  = 12
	rowMarker     = "▸ "
	rowIndent     = "  "
	noMatchesText = "No matching items found."
	loadingText   = "Loading items..."
	loadErrorText = "Error loading items."
)

// SuggestionView is the rendered suggestion area.
type SuggestionView struct {
	Lines []string
	// Offset is the match index shown on Lines[0] when Selectable is set.
	Offset int
	// Selectable reports whether each line is a clickable match row.
	Selectable bool
}

// RenderSuggestions projects the suggestion area into at most maxLines
// lines of at most width cells, starting at row offset. The window only
// moves when the selected row would fall outside it. width or
// maxLines <= 0 means unbounded.
func RenderSuggestions(l widget.List, width, maxLines, offset int, st Styles) SuggestionView {
	switch l.Kind {
	case widget.ListHidden:
		return SuggestionView{}
	case widget.ListNoMatches:
		return SuggestionView{Lines: []string{st.Muted.Render(fit(rowIndent+noMatchesText, width))}}
	case widget.ListLoading:
		return SuggestionView{Lines: []string{st.Muted.Render(fit(rowIndent+loadingText, width))}}
	case widget.ListLoadError:
		lines := []string{st.Failure.Render(fit(rowIndent+loadErrorText, width))}
		if l.Err != nil && (maxLines <= 0 || maxLines > 1) {
			lines = append(lines, st.Muted.Render(fit(rowIndent+l.Err.Error(), width)))
		}
		return SuggestionView{Lines: lines}
	}

	offset = scrollOffset(l.Selected, len(l.Rows), maxLines, offset)
	end := len(l.Rows)
	if maxLines > 0 && offset+maxLines < end {
		end = offset + maxLines
	}
	lines := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		it := l.Rows[i]
		if i == l.Selected {
			lines = append(lines, st.Selected.Render(pad(fit(rowMarker+oneLine(it.Label()), width), width)))
			continue
		}
		lines = append(lines, st.Row.Render(fit(rowIndent+oneLine(it.Label()), width)))
	}
	return SuggestionView{Lines: lines, Offset: offset, Selectable: true}
}

// scrollOffset returns the first visible row of a window of size capacity.
// It keeps prev while selected is inside [prev, prev+capacity) and otherwise
// moves the window just far enough to show selected. selected < 0 leaves
// the window where it is.
func scrollOffset(selected, rows, capacity, prev int) int {
	if capacity <= 0 || rows <= capacity {
		return 0
	}
	offset := min(max(prev, 0), rows-capacity)
	if selected < 0 {
		return offset
	}
	selected = min(selected, rows-1)
	switch {
	case selected < offset:
		offset = selected
	case selected >= offset+capacity:
		offset = selected - capacity + 1
	}
	return offset
}

// RenderDetail projects it into one line per detail field, each starting
// with the copy target. A nil item renders every value as the placeholder.
func RenderDetail(it *catalog.Item, width int, st Styles) []string {
	fields := widget.Detail(it)
	lines := make([]string, 0, len(fields))
	for _, fv := range fields {
		label := runewidth.FillRight(fv.Field.Label(), detailLabelW)
		prefixW := runewidth.StringWidth(copyTarget) + 1 + detailLabelW + 1
		value := oneLine(fv.Text)
		if width > 0 {
			value = fit(value, width-prefixW)
		}
		lines = append(lines, st.Copy.Render(copyTarget)+" "+st.Label.Render(label)+" "+st.Value.Render(value))
	}
	return lines
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

func oneLine(s string) string { return lineBreaks.Replace(s) }

// fit truncates s to width cells. width <= 0 disables truncation.
func fit(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}

// pad right-fills s with spaces to width cells.
func pad(s string, width int) string {
	if width <= 0 {
		return s
	}
	return runewidth.FillRight(s, width)
}

func rule(width int, borderStyle string) string {
	if width <= 0 {
		width = 40
	}
	return strings.Repeat(ruleChar(borderStyle), width)
}
