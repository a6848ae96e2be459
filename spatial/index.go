package spatial

import (
	"errors"
	"sort"

	"github.com/tidwall/rtree"

	"github.com/tsawler/rulegrid/model"
)

// ErrEmptyIndex is returned by Bounds when nothing has been added.
var ErrEmptyIndex = errors.New("spatial: index is empty")

// Index is a spatial index over values that occupy a rectangle.
type Index[T model.Rectangular] struct {
	// tree maps each envelope to the item's position in items
	tree  rtree.RTreeG[int]
	items []T
}

// New creates an empty index
func New[T model.Rectangular]() *Index[T] {
	return &Index[T]{}
}

// Add appends item to the index. Duplicates are kept as separate entries.
func (idx *Index[T]) Add(item T) {
	min, max := envelope(item.BoundingBox())
	idx.tree.Insert(min, max, len(idx.items))
	idx.items = append(idx.items, item)
}

// Len returns the number of items added so far
func (idx *Index[T]) Len() int {
	return len(idx.items)
}

// All returns every item in insertion order
func (idx *Index[T]) All() []T {
	out := make([]T, len(idx.items))
	copy(out, idx.items)
	return out
}

// Overlapping returns the items whose bounding box touches region, in
// insertion order. No containment check is made.
func (idx *Index[T]) Overlapping(region model.BBox) []T {
	hits := idx.search(region)
	out := make([]T, len(hits))
	for i, h := range hits {
		out[i] = idx.items[h]
	}
	return out
}

// Contained returns the items that lie entirely inside region, sorted in
// reading order. Items with equal reading order keep their insertion order.
func (idx *Index[T]) Contained(region model.BBox) []T {
	var out []T
	for _, h := range idx.search(region) {
		item := idx.items[h]
		if region.ContainsBox(item.BoundingBox()) {
			out = append(out, item)
		}
	}
	model.SortReadingOrder(out)
	return out
}

// Bounds returns the smallest rectangle covering every item. It fails with
// ErrEmptyIndex when the index is empty.
func (idx *Index[T]) Bounds() (model.BBox, error) {
	if len(idx.items) == 0 {
		return model.BBox{}, ErrEmptyIndex
	}
	min, max := idx.tree.Bounds()
	return model.NewBBoxFromEdges(min[0], min[1], max[0], max[1]), nil
}

// search returns the positions of every envelope touching region, ascending.
func (idx *Index[T]) search(region model.BBox) []int {
	min, max := envelope(region)
	var hits []int
	idx.tree.Search(min, max, func(_, _ [2]float64, pos int) bool {
		hits = append(hits, pos)
		return true
	})
	sort.Ints(hits)
	return hits
}

func envelope(b model.BBox) (min, max [2]float64) {
	return [2]float64{b.Left(), b.Top()}, [2]float64{b.Right(), b.Bottom()}
}
