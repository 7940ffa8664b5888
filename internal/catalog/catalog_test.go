package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCatalogNilSafe(t *testing.T) {
	var c *Catalog
	assert.Equal(t, 0, c.Len())
	assert.Nil(t, c.Items())
	assert.Equal(t, "", c.Source())
	_, ok := c.At(0)
	assert.False(t, ok)
	c.Each(func(int, Item) bool {
		t.Fatal("Each should not call fn on a nil catalog")
		return true
	})
}

func TestCatalogCopiesItems(t *testing.T) {
	items := []Item{{GRD: "A1", Description: "Apple"}, {GRD: "B2", Description: "Banana"}}
	c := New("mem", items)
	items[0].GRD = "changed"

	first, ok := c.At(0)
	assert.True(t, ok)
	assert.Equal(t, "A1", first.GRD)

	out := c.Items()
	out[1].Description = "changed"
	second, _ := c.At(1)
	assert.Equal(t, "Banana", second.Description)
	assert.Equal(t, "mem", c.Source())
}

func TestCatalogEachStops(t *testing.T) {
	c := New("mem", []Item{{GRD: "A1"}, {GRD: "B2"}, {GRD: "C3"}})
	var seen []string
	c.Each(func(_ int, it Item) bool {
		seen = append(seen, it.GRD)
		return it.GRD != "B2"
	})
	assert.Equal(t, []string{"A1", "B2"}, seen)
}

func TestItemLabel(t *testing.T) {
	assert.Equal(t, "B2 - Banana", Item{GRD: "B2", Description: "Banana"}.Label())
}
