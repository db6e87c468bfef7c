// Package catalog holds the fixed item catalog and the operations served by
// the HTTP layer.
//
// The catalog is built once and never mutated, so it is safe for concurrent
// readers without locking.
package catalog

// Size is the number of entries in the catalog.
const Size = 5

// Catalog is the fixed, read-only list of items.
type Catalog struct {
	items [Size]Item
}

// New returns the catalog with its five fixed entries, in display order.
func New() *Catalog {
	return &Catalog{
		items: [Size]Item{
			{Title: "Mac", Price: 3_888_000},
			{Title: "iPad", Price: 1_230_000},
			{Title: "iPhone", Price: 1_550_000},
			{Title: "Watch", Price: 450_000},
			{Title: "AirPods", Price: 350_000},
		},
	}
}

// Find returns the first item whose title equals title exactly.
func (c *Catalog) Find(title string) (Item, bool) {
	for _, item := range c.items {
		if item.Title == title {
			return item, true
		}
	}
	return Item{}, false
}

// List returns a fresh copy of every item in catalog order.
func (c *Catalog) List() ItemList {
	items := make([]Item, 0, len(c.items))
	items = append(items, c.items[:]...)
	return ItemList{Items: items}
}

// Len reports how many items the catalog holds.
func (c *Catalog) Len() int {
	return len(c.items)
}
