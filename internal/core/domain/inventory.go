package domain

// Inventory owns an ordered set of items and ages them one day per Advance.
// It is not safe for concurrent use.
type Inventory struct {
	items []Item
	day   int
}

// newInventory copies items so no caller keeps a mutable alias.
func newInventory(items []Item) *Inventory {
	owned := make([]Item, len(items))
	copy(owned, items)
	return &Inventory{items: owned}
}

// BuildInventory classifies seeds in order. The first malformed seed aborts
// construction and no inventory is returned.
func (c Classifier) BuildInventory(seeds []Seed) (*Inventory, error) {
	items := make([]Item, 0, len(seeds))
	for _, s := range seeds {
		item, err := c.NewItem(s.Name, s.SellIn, s.Quality)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &Inventory{items: items}, nil
}

// Advance applies each item's rule once, in stored order.
func (inv *Inventory) Advance() {
	for i := range inv.items {
		inv.items[i].tick()
	}
	inv.day++
}

func (inv *Inventory) Items() []Item {
	out := make([]Item, len(inv.items))
	copy(out, inv.items)
	return out
}

func (inv *Inventory) Len() int {
	return len(inv.items)
}

// Day is the number of Advance calls so far.
func (inv *Inventory) Day() int {
	return inv.day
}

func (inv *Inventory) Report() Report {
	views := make([]ItemView, len(inv.items))
	for i, item := range inv.items {
		views[i] = item.View()
	}
	return Report{Day: inv.day, Items: views}
}

func (inv *Inventory) String() string {
	return inv.Report().String()
}
