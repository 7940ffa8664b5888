package catalog

// Catalog is an ordered, immutable list of items. A nil *Catalog behaves
// like an empty one.
type Catalog struct {
	items  []Item
	source string
}

// New builds a catalog from items. The slice is copied.
func New(source string, items []Item) *Catalog {
	cp := make([]Item, len(items))
	copy(cp, items)
	return &Catalog{items: cp, source: source}
}

// Len reports the number of items.
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.items)
}

// At returns the item at position i.
func (c *Catalog) At(i int) (Item, bool) {
	if c == nil || i < 0 || i >= len(c.items) {
		return Item{}, false
	}
	return c.items[i], true
}

// Items returns a copy of every item in catalog order.
func (c *Catalog) Items() []Item {
	if c == nil {
		return nil
	}
	cp := make([]Item, len(c.items))
	copy(cp, c.items)
	return cp
}

// Each calls fn for every item in order until fn returns false.
func (c *Catalog) Each(fn func(i int, it Item) bool) {
	if c == nil {
		return
	}
	for i, it := range c.items {
		if !fn(i, it) {
			return
		}
	}
}

// Source names where the catalog came from.
func (c *Catalog) Source() string {
	if c == nil {
		return ""
	}
	return c.source
}
