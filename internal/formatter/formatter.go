package formatter

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/term"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

// Format names an output encoding for item lists.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatTOML  Format = "toml"
	FormatCSV   Format = "csv"
)

// Formats lists every supported output format.
func Formats() []Format {
	return []Format{FormatTable, FormatJSON, FormatYAML, FormatTOML, FormatCSV}
}

// ParseFormat resolves a user-supplied format name. "" means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML, FormatTOML, FormatCSV:
		return f, nil
	case "yml":
		return FormatYAML, nil
	}
	names := make([]string, 0, len(Formats()))
	for _, f := range Formats() {
		names = append(names, string(f))
	}
	return "", fmt.Errorf("unknown output format %q (expected %s)", s, strings.Join(names, ", "))
}

var (
	defaultHeaderFG   = lipgloss.Color("12")
	defaultHeaderBG   = lipgloss.Color("236")
	defaultKeyColor   = lipgloss.Color("14")
	defaultValueColor = lipgloss.Color("248")
	defaultSeparator  = lipgloss.Color("240")
)

// TableColors controls the rendered colors for the item table.
// Empty fields fall back to ANSI 256 defaults.
type TableColors struct {
	HeaderFG       color.Color
	HeaderBG       color.Color
	KeyColor       color.Color
	ValueColor     color.Color
	SeparatorColor color.Color
}

type tableStyles struct {
	header    lipgloss.Style
	key       lipgloss.Style
	value     lipgloss.Style
	separator lipgloss.Style
}

func newTableStyles(tc TableColors) tableStyles {
	pick := func(c, def color.Color) color.Color {
		if c == nil {
			return def
		}
		return c
	}
	return tableStyles{
		header:    lipgloss.NewStyle().Bold(true).Foreground(pick(tc.HeaderFG, defaultHeaderFG)).Background(pick(tc.HeaderBG, defaultHeaderBG)),
		key:       lipgloss.NewStyle().Foreground(pick(tc.KeyColor, defaultKeyColor)),
		value:     lipgloss.NewStyle().Foreground(pick(tc.ValueColor, defaultValueColor)),
		separator: lipgloss.NewStyle().Foreground(pick(tc.SeparatorColor, defaultSeparator)),
	}
}

// Options configures Write.
type Options struct {
	// Width is the table width. 0 uses the terminal width.
	Width   int
	NoColor bool
	Colors  TableColors
}

// document is the catalog shape, so structured output loads back as a
// catalog.
type document struct {
	Items []catalog.Item `json:"items" yaml:"items" toml:"items"`
}

// Write encodes items to w in the given format.
func Write(w io.Writer, items []catalog.Item, format Format, opts Options) error {
	var out string
	switch format {
	case FormatTable, "":
		width := opts.Width
		if width <= 0 {
			width = getTerminalWidth()
		}
		out = RenderItemTable(items, TableOptions{Width: width, NoColor: opts.NoColor, Colors: opts.Colors})
	case FormatJSON:
		b, err := json.MarshalIndent(document{Items: nonNil(items)}, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		out = string(b) + "\n"
	case FormatYAML:
		s, err := formatYAML(document{Items: nonNil(items)}, YAMLFormatOptions{LiteralBlockStrings: true})
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		out = s
	case FormatTOML:
		b, err := toml.Marshal(document{Items: nonNil(items)})
		if err != nil {
			return fmt.Errorf("encoding TOML: %w", err)
		}
		out = string(b)
	case FormatCSV:
		return writeCSV(w, items)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	_, err := io.WriteString(w, out)
	return err
}

// CSVHeader is the column order of CSV output. It matches the headers the
// convert command reads.
var CSVHeader = []string{"grd", "description", "price_kg", "price_lb", "category", "notes"}

func writeCSV(w io.Writer, items []catalog.Item) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(CSVHeader); err != nil {
		return err
	}
	for _, it := range items {
		rec := []string{it.GRD, it.Description, csvPrice(it.PriceKg), csvPrice(it.PriceLb), it.Category, it.Notes}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func csvPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func nonNil(items []catalog.Item) []catalog.Item {
	if items == nil {
		return []catalog.Item{}
	}
	return items
}

func getTerminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 120 // sensible default
	}
	return width
}
