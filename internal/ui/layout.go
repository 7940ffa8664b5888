package ui

import (
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/grdfind/internal/widget"
)

const (
	promptText = "Search: "
	// Lines outside the suggestion area: title, glow, input, rule, six
	// detail fields, blank, notification, footer.
	fixedLines = 13
)

type zoneKind int

const (
	zoneOutside zoneKind = iota
	zoneInput
	zoneRow
	zoneList
	zoneCopy
)

type zone struct {
	kind  zoneKind
	row   int
	field widget.Field
}

// frame is one rendered screen plus the line positions needed to map a
// mouse position back onto the widget.
type frame struct {
	lines     []string
	inputLine int
	listTop   int
	list      SuggestionView
	detailTop int
	copyWidth int
}

func (m *Model) listCapacity() int {
	if m.height <= 0 {
		return 0
	}
	return max(1, m.height-fixedLines)
}

// syncScroll moves the stored list window so the selected row stays
// visible. Mouse hit-testing reads the same offset, so hovering a visible
// row never shifts the rows under the pointer.
func (m *Model) syncScroll() {
	l := m.state.List()
	if l.Kind != widget.ListRows {
		m.listOffset = 0
		return
	}
	m.listOffset = scrollOffset(l.Selected, len(l.Rows), m.listCapacity(), m.listOffset)
}

func (m *Model) frame() frame {
	st := m.styles
	f := frame{copyWidth: runewidth.StringWidth(copyTarget)}

	title := st.Title.Render(m.title)
	if src := m.state.Catalog.Source(); src != "" {
		title += "  " + st.Muted.Render(fit(src, max(0, m.width-lipgloss.Width(m.title)-2)))
	}
	if m.state.LoadErr != nil && m.state.Open {
		title += "  " + st.Failure.Render(loadErrorText)
	}
	f.lines = append(f.lines, title)
	f.lines = append(f.lines, st.Glow.Render(rule(m.width, "rounded")))

	f.inputLine = len(f.lines)
	f.lines = append(f.lines, st.Prompt.Render(promptText)+m.input.View())

	f.listTop = len(f.lines)
	f.list = RenderSuggestions(m.state.List(), m.width, m.listCapacity(), m.listOffset, st)
	f.lines = append(f.lines, f.list.Lines...)

	f.lines = append(f.lines, st.Rule.Render(rule(m.width, m.theme.BorderStyle)))
	f.detailTop = len(f.lines)
	f.lines = append(f.lines, RenderDetail(m.state.Detail, m.width, st)...)
	f.lines = append(f.lines, "")

	f.lines = append(f.lines, m.notificationLine())
	f.lines = append(f.lines, m.footerLines()...)
	return f
}

func (m *Model) notificationLine() string {
	if m.flash.text == "" {
		return ""
	}
	if m.flash.failed {
		return m.styles.Failure.Render(m.flash.text)
	}
	return m.styles.Success.Render(m.flash.text)
}

func (m *Model) footerLines() []string {
	clock := m.styles.Muted.Render(m.now.In(m.clockLoc).Format(m.clockFormat))
	hints := m.help.View(m.keys)
	if m.showHelp {
		return append(strings.Split(hints, "\n"), clock)
	}
	gap := m.width - lipgloss.Width(hints) - lipgloss.Width(clock)
	if gap < 2 {
		gap = 2
	}
	return []string{hints + strings.Repeat(" ", gap) + clock}
}

// hit maps a cell position to a zone.
func (f frame) hit(x, y int) zone {
	switch {
	case y == f.inputLine:
		return zone{kind: zoneInput}
	case y >= f.listTop && y < f.listTop+len(f.list.Lines):
		if !f.list.Selectable {
			return zone{kind: zoneList}
		}
		return zone{kind: zoneRow, row: f.list.Offset + y - f.listTop}
	case y >= f.detailTop && y < f.detailTop+len(widget.Fields()):
		if x >= 0 && x < f.copyWidth {
			return zone{kind: zoneCopy, field: widget.Fields()[y-f.detailTop]}
		}
	}
	return zone{kind: zoneOutside}
}

// Render draws the current screen as plain lines joined by newlines.
func (m *Model) Render() string {
	return strings.Join(m.frame().lines, "\n")
}
