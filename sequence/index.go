// SPDX-License-Identifier: MIT

// Package sequence: tag index.
//
// The Index is built once per request and is read-only afterwards, so it may
// be shared by every rotation (and by concurrent readers) without locking.
package sequence

import "github.com/katalvlaran/setlist/tagset"

// Index maps every item of a universe to its tag set and remembers the
// natural item order (order of first appearance), which is the rotation base.
type Index struct {
	order []string
	tags  map[string]tagset.Set
}

// NewIndex builds an Index from items.
//
// Duplicate item IDs are not rejected: the first occurrence keeps its
// position and the last occurrence supplies the tags. Guaranteeing unique IDs
// is the caller's responsibility.
//
// Errors: ErrEmptyUniverse if items is empty.
//
// Complexity: O(Σ k·log k) for k tags per item.
func NewIndex(items []Item) (*Index, error) {
	if len(items) == 0 {
		return nil, ErrEmptyUniverse
	}

	idx := &Index{
		order: make([]string, 0, len(items)),
		tags:  make(map[string]tagset.Set, len(items)),
	}

	var (
		it   Item
		seen bool
	)
	for _, it = range items {
		if _, seen = idx.tags[it.ID]; !seen {
			idx.order = append(idx.order, it.ID)
		}
		idx.tags[it.ID] = tagset.New(it.Tags...)
	}

	return idx, nil
}

// GroupAssignments turns flat (item, tag) pairs into Items following order.
// Items without assignments get no tags; assignments naming an item that is
// not in order are dropped.
//
// Complexity: O(len(order) + len(as)).
func GroupAssignments(order []string, as []Assignment) []Item {
	byItem := make(map[string][]string, len(order))
	for _, id := range order {
		byItem[id] = nil
	}
	for _, a := range as {
		if tags, ok := byItem[a.Item]; ok {
			byItem[a.Item] = append(tags, a.Tag)
		}
	}

	items := make([]Item, len(order))
	for i, id := range order {
		items[i] = Item{ID: id, Tags: byItem[id]}
	}

	return items
}

// Len returns the number of distinct items.
func (x *Index) Len() int { return len(x.order) }

// Order returns a copy of the natural item order.
func (x *Index) Order() []string {
	out := make([]string, len(x.order))
	copy(out, x.order)

	return out
}

// Has reports whether id belongs to the universe.
func (x *Index) Has(id string) bool {
	_, ok := x.tags[id]

	return ok
}

// Tags returns the tag set of id. Unknown ids yield the empty set.
func (x *Index) Tags(id string) tagset.Set {
	return x.tags[id]
}
