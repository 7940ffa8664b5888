package formatter

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/grdfind/internal/catalog"
	"github.com/oakwood-commons/grdfind/internal/widget"
)

const (
	sepWidth    = 2
	minColWidth = 3
	maxColWidth = 40
)

// TableOptions configures table rendering.
type TableOptions struct {
	// Width is the total available width. 0 disables shrinking.
	Width   int
	NoColor bool
	Colors  TableColors
	// RightAlign lists column indexes rendered flush right.
	RightAlign []int
}

// RenderItemTable renders items with one column per detail field, using the
// same value formatting as the detail panel.
func RenderItemTable(items []catalog.Item, opts TableOptions) string {
	fields := widget.Fields()
	columns := make([]string, len(fields))
	for i, f := range fields {
		columns[i] = strings.ToUpper(f.Label())
	}
	rows := make([][]string, len(items))
	for i, it := range items {
		row := make([]string, len(fields))
		for j, f := range fields {
			row[j] = widget.Value(&it, f)
		}
		rows[i] = row
	}
	opts.RightAlign = []int{int(widget.FieldPriceKg), int(widget.FieldPriceLb)}
	return RenderTable(columns, rows, opts)
}

// RenderTable renders rows under a header with a numbered first column.
func RenderTable(columns []string, rows [][]string, opts TableOptions) string {
	if len(columns) == 0 || len(rows) == 0 {
		return ""
	}
	rows = flattenRows(rows)
	st := newTableStyles(opts.Colors)
	paint := func(s string, style lipgloss.Style) string {
		if opts.NoColor {
			return s
		}
		return style.Render(s)
	}

	rowNumWidth := len(fmt.Sprintf("%d", len(rows))) + 2
	available := 0
	if opts.Width > 0 {
		available = opts.Width - rowNumWidth - sepWidth
	}
	widths := columnWidths(columns, rows, available)

	right := make(map[int]bool, len(opts.RightAlign))
	for _, i := range opts.RightAlign {
		right[i] = true
	}
	cell := func(i int, s string) string {
		s = truncate(s, widths[i])
		if right[i] {
			return runewidth.FillLeft(s, widths[i])
		}
		return runewidth.FillRight(s, widths[i])
	}
	sep := strings.Repeat(" ", sepWidth)

	var b strings.Builder

	parts := []string{paint(runewidth.FillRight("#", rowNumWidth), st.header)}
	for i, col := range columns {
		parts = append(parts, paint(cell(i, col), st.header))
	}
	b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")

	total := rowNumWidth
	for _, w := range widths {
		total += sepWidth + w
	}
	b.WriteString(paint(strings.Repeat("─", total), st.separator) + "\n")

	for r, row := range rows {
		parts = parts[:0]
		parts = append(parts, paint(runewidth.FillRight(fmt.Sprintf("%d", r+1), rowNumWidth), st.key))
		for i := range columns {
			val := ""
			if i < len(row) {
				val = row[i]
			}
			parts = append(parts, paint(cell(i, val), st.value))
		}
		b.WriteString(strings.TrimRight(strings.Join(parts, sep), " ") + "\n")
	}
	return b.String()
}

// columnWidths sizes each column to its widest cell, then shrinks
// proportionally when the total exceeds available. available <= 0 means
// unbounded.
func columnWidths(columns []string, rows [][]string, available int) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = runewidth.StringWidth(col)
	}
	for _, row := range rows {
		for i, val := range row {
			if i < len(widths) {
				widths[i] = max(widths[i], runewidth.StringWidth(val))
			}
		}
	}
	if available <= 0 {
		return widths
	}

	usable := available - (len(columns)-1)*sepWidth
	if sum(widths) <= usable {
		return widths
	}
	for i := range widths {
		widths[i] = min(widths[i], maxColWidth)
	}
	if total := sum(widths); total > usable {
		for i := range widths {
			widths[i] = max(minColWidth, widths[i]*usable/total)
		}
		// Trim the widest column until the table fits.
		for sum(widths) > usable {
			widest := 0
			for i := range widths {
				if widths[i] > widths[widest] {
					widest = i
				}
			}
			if widths[widest] <= minColWidth {
				break
			}
			widths[widest]--
		}
	}
	return widths
}

var lineBreaks = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// flattenRows copies rows with line breaks replaced by spaces so every
// row stays on one line.
func flattenRows(rows [][]string) [][]string {
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, v := range row {
			out[i][j] = lineBreaks.Replace(v)
		}
	}
	return out
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}

func truncate(s string, width int) string {
	if runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
