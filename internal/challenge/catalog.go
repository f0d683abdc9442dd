package challenge

import (
	"fmt"
)

// Catalog is an ordered, immutable set of challenges indexed by id.
type Catalog struct {
	list  []Challenge
	index map[string]int
}

// NewCatalog builds a catalog. Ids must be unique.
func NewCatalog(challenges []Challenge) (*Catalog, error) {
	c := &Catalog{
		list:  make([]Challenge, 0, len(challenges)),
		index: make(map[string]int, len(challenges)),
	}
	for _, ch := range challenges {
		if _, ok := c.index[ch.ID]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateID, ch.ID)
		}
		c.index[ch.ID] = len(c.list)
		c.list = append(c.list, ch)
	}
	return c, nil
}

// Len returns the number of challenges.
func (c *Catalog) Len() int { return len(c.list) }

// All returns every challenge in catalog order.
func (c *Catalog) All() []Challenge {
	out := make([]Challenge, len(c.list))
	copy(out, c.list)
	return out
}

// ByID looks up a challenge.
func (c *Catalog) ByID(id string) (Challenge, error) {
	i, ok := c.index[id]
	if !ok {
		return Challenge{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c.list[i], nil
}

// ByCategory returns the challenges in cat, in catalog order.
func (c *Catalog) ByCategory(cat Category) []Challenge {
	var out []Challenge
	for _, ch := range c.list {
		if ch.Category == cat {
			out = append(out, ch)
		}
	}
	return out
}

// Categories returns the categories that have at least one challenge, in
// display order.
func (c *Catalog) Categories() []Category {
	present := make(map[Category]bool)
	for _, ch := range c.list {
		present[ch.Category] = true
	}
	var out []Category
	for _, cat := range AllCategories {
		if present[cat] {
			out = append(out, cat)
		}
	}
	return out
}

// Next returns the challenge after id. ok is false at the end of the
// catalog or when id is unknown.
func (c *Catalog) Next(id string) (Challenge, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.list) {
		return Challenge{}, false
	}
	return c.list[i+1], true
}

// Merge returns a new catalog with packs layered on top. A pack challenge
// whose id already exists replaces it in place; new ids are appended in
// the order given.
func (c *Catalog) Merge(packs ...[]Challenge) *Catalog {
	out := &Catalog{
		list:  append([]Challenge(nil), c.list...),
		index: make(map[string]int, len(c.index)),
	}
	for id, i := range c.index {
		out.index[id] = i
	}
	for _, pack := range packs {
		for _, ch := range pack {
			if i, ok := out.index[ch.ID]; ok {
				out.list[i] = ch
				continue
			}
			out.index[ch.ID] = len(out.list)
			out.list = append(out.list, ch)
		}
	}
	return out
}
