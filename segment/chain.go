package segment

import "slices"

// Chain applies segment operations one after another to a working
// collection. Each call replaces the collection; Value materializes it.
// A Chain is a single linear pipeline and is not safe for concurrent use.
type Chain struct {
	items []Record
}

// From starts a chain over a copy of records.
func From(records []Record) *Chain {
	items := slices.Clone(records)
	if items == nil {
		items = []Record{}
	}
	return &Chain{items: items}
}

// Filter keeps records satisfying where.
func (c *Chain) Filter(where any) *Chain {
	c.items = Filter(c.items, where)
	return c
}

// Reject drops records satisfying where.
func (c *Chain) Reject(where any) *Chain {
	c.items = Reject(c.items, where)
	return c
}

// GroupBy replaces the collection with one record per group carrying
// _key, _count and _items.
func (c *Chain) GroupBy(key any) *Chain {
	c.items = GroupBy(c.items, key).Records()
	return c
}

// Sort orders the collection.
func (c *Chain) Sort(criteria any, dir Direction) *Chain {
	c.items = Sort(c.items, criteria, dir)
	return c
}

// Take keeps the first n records.
func (c *Chain) Take(n int) *Chain {
	c.items = Take(c.items, n)
	return c
}

// Skip drops the first n records.
func (c *Chain) Skip(n int) *Chain {
	c.items = Skip(c.items, n)
	return c
}

// Unique removes duplicates, optionally by field.
func (c *Chain) Unique(field ...string) *Chain {
	c.items = Unique(c.items, field...)
	return c
}

// Len returns the current collection size.
func (c *Chain) Len() int { return len(c.items) }

// Value returns the current collection.
func (c *Chain) Value() []Record {
	return slices.Clone(c.items)
}
