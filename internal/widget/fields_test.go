package widget

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

func TestDetailPlaceholders(t *testing.T) {
	want := []FieldValue{
		{Field: FieldGRD, Text: "-"},
		{Field: FieldDescription, Text: "-"},
		{Field: FieldPriceKg, Text: "-"},
		{Field: FieldPriceLb, Text: "-"},
		{Field: FieldCategory, Text: "-"},
		{Field: FieldNotes, Text: "-"},
	}
	assert.Equal(t, want, Detail(nil))
	assert.Equal(t, Detail(nil), Detail(nil), "idempotent for nil")
}

func TestDetailValues(t *testing.T) {
	it := &catalog.Item{
		GRD:         "A1",
		Description: "Apple",
		PriceKg:     catalog.Price(3.5),
		PriceLb:     catalog.Price(0),
		Category:    "Fruit",
		Notes:       "  ",
	}
	got := Detail(it)
	assert.Equal(t, []FieldValue{
		{Field: FieldGRD, Text: "A1"},
		{Field: FieldDescription, Text: "Apple"},
		{Field: FieldPriceKg, Text: "$3.50"},
		{Field: FieldPriceLb, Text: "-"},
		{Field: FieldCategory, Text: "Fruit"},
		{Field: FieldNotes, Text: "-"},
	}, got)
	assert.Equal(t, got, Detail(it), "idempotent for an item")
}

func TestPriceRounding(t *testing.T) {
	assert.Equal(t, "$1.59", Value(&catalog.Item{PriceLb: catalog.Price(1.589)}, FieldPriceLb))
	assert.Equal(t, "$12.00", Value(&catalog.Item{PriceKg: catalog.Price(12)}, FieldPriceKg))
}

func TestFieldLabels(t *testing.T) {
	labels := make([]string, 0, 6)
	for _, f := range Fields() {
		labels = append(labels, f.Label())
	}
	assert.Equal(t, []string{"GRD", "Description", "Price/kg", "Price/lb", "Category", "Notes"}, labels)
	assert.Equal(t, "Field(42)", Field(42).Label())
}
