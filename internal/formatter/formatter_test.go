package formatter

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

func sampleItems() []catalog.Item {
	return []catalog.Item{
		{GRD: "A1", Description: "Apple", PriceKg: catalog.Price(3.5), Category: "Fruit"},
		{GRD: "B2", Description: "Banana, ripe", PriceLb: catalog.Price(0.59), Notes: "line one\nline two"},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{in: "", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: " yml ", want: FormatYAML},
		{in: "toml", want: FormatTOML},
		{in: "csv", want: FormatCSV},
	}
	for _, tt := range tests {
		got, err := ParseFormat(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	_, err := ParseFormat("xml")
	assert.ErrorContains(t, err, `unknown output format "xml"`)
}

// Structured output must decode back into the same items.
func TestWriteStructuredLoadsBack(t *testing.T) {
	formats := map[Format]catalog.Format{
		FormatJSON: catalog.FormatJSON,
		FormatYAML: catalog.FormatYAML,
		FormatTOML: catalog.FormatTOML,
	}
	for out, in := range formats {
		t.Run(string(out), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, sampleItems(), out, Options{}))
			got, err := catalog.Decode(buf.Bytes(), in)
			require.NoError(t, err)
			assert.Equal(t, sampleItems(), got)
		})
	}
}

func TestWriteJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, nil, FormatJSON, Options{}))
	assert.JSONEq(t, `{"items": []}`, buf.String())
}

func TestWriteYAMLLiteralNotes(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleItems(), FormatYAML, Options{}))
	assert.Contains(t, buf.String(), "notes: |-")
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleItems(), FormatCSV, Options{}))

	recs, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, recs, 3)
	assert.Equal(t, CSVHeader, recs[0])
	assert.Equal(t, []string{"A1", "Apple", "3.5", "", "Fruit", ""}, recs[1])
	assert.Equal(t, "Banana, ripe", recs[2][1])
	assert.Equal(t, "0.59", recs[2][3])
}

func TestWriteTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, sampleItems(), FormatTable, Options{Width: 100, NoColor: true}))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)

	assert.True(t, strings.HasPrefix(lines[0], "#"))
	assert.Contains(t, lines[0], "GRD")
	assert.Contains(t, lines[0], "PRICE/KG")
	assert.True(t, strings.HasPrefix(lines[1], "─"))
	assert.True(t, strings.HasPrefix(lines[2], "1"))
	assert.Contains(t, lines[2], "$3.50")
	assert.Contains(t, lines[3], "$0.59")
	for _, l := range lines {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 100)
	}
}

func TestRenderTableShrinksToWidth(t *testing.T) {
	rows := [][]string{{"A1", strings.Repeat("long description ", 10)}}
	out := RenderTable([]string{"GRD", "DESCRIPTION"}, rows, TableOptions{Width: 30, NoColor: true})
	for _, l := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		assert.LessOrEqual(t, runewidth.StringWidth(l), 30, l)
	}
	assert.Contains(t, out, "…")
}

func TestRenderTableEmpty(t *testing.T) {
	assert.Equal(t, "", RenderItemTable(nil, TableOptions{}))
}

func TestColumnWidths(t *testing.T) {
	widths := columnWidths([]string{"A", "BB"}, [][]string{{"xxxx", "y"}}, 0)
	assert.Equal(t, []int{4, 2}, widths)

	widths = columnWidths([]string{"A", "B"}, [][]string{{strings.Repeat("x", 50), strings.Repeat("y", 50)}}, 22)
	assert.LessOrEqual(t, widths[0]+widths[1]+sepWidth, 22)
	assert.GreaterOrEqual(t, widths[0], minColWidth)
}
