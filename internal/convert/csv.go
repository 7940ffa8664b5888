package convert

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

type column int

const (
	colGRD column = iota
	colDescription
	colPriceKg
	colPriceLb
	colCategory
	colNotes
)

// headerAliases maps a lower-cased, trimmed header to its item field.
var headerAliases = map[string]column{
	"grd":          colGRD,
	"description":  colDescription,
	"desc":         colDescription,
	"price_kg":     colPriceKg,
	"price/kg":     colPriceKg,
	"price per kg": colPriceKg,
	"price_lb":     colPriceLb,
	"price/lb":     colPriceLb,
	"price per lb": colPriceLb,
	"category":     colCategory,
	"notes":        colNotes,
}

// ErrMissingColumn is returned when a required header is absent.
var ErrMissingColumn = errors.New("missing required column")

// ReadCSV decodes a CSV table with a header row into items. Unknown
// columns are ignored and fully blank rows are skipped.
func ReadCSV(r io.Reader) ([]catalog.Item, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: grd", ErrMissingColumn)
	}
	if err != nil {
		return nil, err
	}
	index := make(map[column]int, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		if c, ok := headerAliases[strings.ToLower(strings.TrimSpace(h))]; ok {
			if _, dup := index[c]; !dup {
				index[c] = i
			}
		}
	}
	if _, ok := index[colGRD]; !ok {
		return nil, fmt.Errorf("%w: grd", ErrMissingColumn)
	}
	if _, ok := index[colDescription]; !ok {
		return nil, fmt.Errorf("%w: description", ErrMissingColumn)
	}

	var items []catalog.Item
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if blank(rec) {
			continue
		}
		it, err := itemFromRecord(rec, index)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		items = append(items, it)
	}
	return items, nil
}

func itemFromRecord(rec []string, index map[column]int) (catalog.Item, error) {
	get := func(c column) string {
		i, ok := index[c]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}
	it := catalog.Item{
		GRD:         get(colGRD),
		Description: get(colDescription),
		Category:    get(colCategory),
		Notes:       get(colNotes),
	}
	if it.GRD == "" {
		return it, errors.New("grd is required")
	}
	if it.Description == "" {
		return it, fmt.Errorf("%s: description is required", it.GRD)
	}
	var err error
	if it.PriceKg, err = parsePrice(get(colPriceKg)); err != nil {
		return it, fmt.Errorf("%s: price_kg: %w", it.GRD, err)
	}
	if it.PriceLb, err = parsePrice(get(colPriceLb)); err != nil {
		return it, fmt.Errorf("%s: price_lb: %w", it.GRD, err)
	}
	return it, nil
}

// parsePrice accepts plain or currency-formatted numbers ("$1,234.50").
// Blank means absent.
func parsePrice(s string) (*float64, error) {
	s = strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(s))
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid number %q", s)
	}
	return &v, nil
}

func blank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
