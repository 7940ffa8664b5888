package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"items.json", FormatJSON},
		{"data/items.YAML", FormatYAML},
		{"items.yml", FormatYAML},
		{"items.toml", FormatTOML},
		{"https://host/items.json?v=2", FormatJSON},
		{"https://host/api/catalog", FormatAuto},
		{"-", FormatAuto},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatFromPath(tt.in), tt.in)
	}
}

func TestSniff(t *testing.T) {
	assert.Equal(t, FormatJSON, Sniff([]byte(`  [{"grd":"A1"}]`)))
	assert.Equal(t, FormatJSON, Sniff([]byte(`{"items": []}`)))
	assert.Equal(t, FormatTOML, Sniff([]byte("# catalog\n[[items]]\ngrd = \"A1\"\n")))
	assert.Equal(t, FormatTOML, Sniff([]byte("title = \"fruit\"\n")))
	assert.Equal(t, FormatYAML, Sniff([]byte("- grd: A1\n  description: Apple\n")))
	assert.Equal(t, FormatYAML, Sniff([]byte("items:\n  - grd: A1\n")))
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		format Format
	}{
		{
			name:   "json array",
			data:   `[{"grd":"A1","description":"Apple","price_kg":2.5},{"grd":"B2","description":"Banana"}]`,
			format: FormatJSON,
		},
		{
			name:   "json object",
			data:   `{"items":[{"grd":"A1","description":"Apple","price_kg":2.5},{"grd":"B2","description":"Banana"}]}`,
			format: FormatAuto,
		},
		{
			name:   "yaml list",
			data:   "- grd: A1\n  description: Apple\n  price_kg: 2.5\n- grd: B2\n  description: Banana\n",
			format: FormatYAML,
		},
		{
			name:   "yaml items key",
			data:   "items:\n  - grd: A1\n    description: Apple\n    price_kg: 2.5\n  - grd: B2\n    description: Banana\n",
			format: FormatAuto,
		},
		{
			name:   "toml",
			data:   "[[items]]\ngrd = \"A1\"\ndescription = \"Apple\"\nprice_kg = 2.5\n\n[[items]]\ngrd = \"B2\"\ndescription = \"Banana\"\n",
			format: FormatAuto,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := Decode([]byte(tt.data), tt.format)
			require.NoError(t, err)
			require.Len(t, items, 2)
			assert.Equal(t, "A1", items[0].GRD)
			require.NotNil(t, items[0].PriceKg)
			assert.InDelta(t, 2.5, *items[0].PriceKg, 1e-9)
			assert.Nil(t, items[0].PriceLb)
			assert.Equal(t, "Banana", items[1].Description)
			assert.Nil(t, items[1].PriceKg)
		})
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		format  Format
		wantErr string
	}{
		{name: "empty", data: "  \n", wantErr: "empty catalog document"},
		{name: "bad json", data: `[{"grd":`, format: FormatJSON, wantErr: "invalid JSON"},
		{name: "wrong shape", data: `"just a string"`, format: FormatJSON, wantErr: "invalid JSON"},
		{name: "missing grd", data: `[{"description":"Apple"}]`, wantErr: "item 0: grd is required"},
		{name: "missing description", data: `[{"grd":"A1","description":"Apple"},{"grd":"B2"}]`, wantErr: "item 1 (B2): description is required"},
		{name: "yaml scalar", data: "hello", format: FormatYAML, wantErr: "invalid YAML"},
		{name: "bad toml", data: "[[items]]\ngrd = \n", format: FormatTOML, wantErr: "invalid TOML"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data), tt.format)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
