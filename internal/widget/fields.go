package widget

import (
	"fmt"
	"strings"

	"github.com/oakwood-commons/grdfind/internal/catalog"
)

// Placeholder stands in for a missing detail value.
const Placeholder = "-"

// Field identifies one line of the detail panel.
type Field int

const (
	FieldGRD Field = iota
	FieldDescription
	FieldPriceKg
	FieldPriceLb
	FieldCategory
	FieldNotes
)

var fieldLabels = [...]string{
	FieldGRD:         "GRD",
	FieldDescription: "Description",
	FieldPriceKg:     "Price/kg",
	FieldPriceLb:     "Price/lb",
	FieldCategory:    "Category",
	FieldNotes:       "Notes",
}

// Fields lists the detail fields in display order.
func Fields() []Field {
	return []Field{FieldGRD, FieldDescription, FieldPriceKg, FieldPriceLb, FieldCategory, FieldNotes}
}

// Label is the human name of the field, also used in copy notifications.
func (f Field) Label() string {
	if f < 0 || int(f) >= len(fieldLabels) {
		return fmt.Sprintf("Field(%d)", int(f))
	}
	return fieldLabels[f]
}

// FieldValue is one rendered detail line.
type FieldValue struct {
	Field Field
	Text  string
}

// Value is the text shown for f. A nil item or a missing value shows the
// placeholder; prices render as $X.XX and zero counts as missing.
func Value(it *catalog.Item, f Field) string {
	if it == nil {
		return Placeholder
	}
	switch f {
	case FieldGRD:
		return orPlaceholder(it.GRD)
	case FieldDescription:
		return orPlaceholder(it.Description)
	case FieldPriceKg:
		return price(it.PriceKg)
	case FieldPriceLb:
		return price(it.PriceLb)
	case FieldCategory:
		return orPlaceholder(it.Category)
	case FieldNotes:
		return orPlaceholder(it.Notes)
	}
	return Placeholder
}

// Detail returns every field of it in display order.
func Detail(it *catalog.Item) []FieldValue {
	out := make([]FieldValue, 0, len(fieldLabels))
	for _, f := range Fields() {
		out = append(out, FieldValue{Field: f, Text: Value(it, f)})
	}
	return out
}

func price(p *float64) string {
	if p == nil || *p == 0 {
		return Placeholder
	}
	return fmt.Sprintf("$%.2f", *p)
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return Placeholder
	}
	return s
}
