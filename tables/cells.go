package tables

import (
	"errors"
	"fmt"
	"sort"

	"github.com/tsawler/rulegrid/model"
	"github.com/tsawler/rulegrid/spatial"
)

// ErrDegenerateCell is returned by the default grouper for a cell with no area.
var ErrDegenerateCell = errors.New("tables: cell has zero area")

// CellFinder turns a page's rulings into the rectangular cells they enclose.
// It must be deterministic; the order of the returned cells does not matter.
type CellFinder func(horizontal, vertical []model.Ruling) ([]model.BBox, error)

// CellGrouper merges adjacent cells into table regions. Each returned
// rectangle covers one maximal group of connected cells.
type CellGrouper func(cells []model.BBox) ([]model.BBox, error)

// crossing is an intersection between two collapsed rulings
type crossing struct {
	point model.Point
	h, v  int // indices into the collapsed horizontal and vertical rulings
}

// NewCellFinder returns the default CellFinder. Rulings are merged and
// lengthened by tolerance, then every intersection is tried as the top-left
// corner of a cell: the cell closes at the nearest intersection below and to
// the right that is joined to the corner by the same rulings. Cells smaller
// than minCellSize in either direction are dropped.
func NewCellFinder(tolerance, minCellSize float64) CellFinder {
	return func(horizontal, vertical []model.Ruling) ([]model.BBox, error) {
		hs := model.CollapseRulings(horizontal, tolerance)
		vs := model.CollapseRulings(vertical, tolerance)

		crossings := findCrossings(hs, vs, tolerance)
		byPoint := make(map[model.Point]crossing, len(crossings))
		for _, c := range crossings {
			byPoint[c.point] = c
		}

		var cells []model.BBox
		for i, topLeft := range crossings {
			var below, right []crossing
			for _, c := range crossings[i+1:] {
				if c.point.X == topLeft.point.X && c.point.Y > topLeft.point.Y {
					below = append(below, c)
				}
				if c.point.Y == topLeft.point.Y && c.point.X > topLeft.point.X {
					right = append(right, c)
				}
			}

		outer:
			for _, b := range below {
				// the left edge must run along the corner's vertical ruling
				if b.v != topLeft.v {
					continue
				}
				for _, r := range right {
					// and the top edge along its horizontal ruling
					if r.h != topLeft.h {
						continue
					}
					corner, ok := byPoint[model.Point{X: r.point.X, Y: b.point.Y}]
					if !ok || corner.h != b.h || corner.v != r.v {
						continue
					}
					cell := model.NewBBoxFromPoints(topLeft.point, corner.point)
					if cell.Width >= minCellSize && cell.Height >= minCellSize {
						cells = append(cells, cell)
					}
					break outer
				}
			}
		}
		return cells, nil
	}
}

// findCrossings returns every ruling intersection sorted top-to-bottom, then
// left-to-right. Each point appears once.
func findCrossings(hs, vs []model.Ruling, tolerance float64) []crossing {
	seen := make(map[model.Point]bool)
	var out []crossing
	for hi, h := range hs {
		for vi, v := range vs {
			p, ok := model.IntersectionPoint(h, v, tolerance)
			if !ok || seen[p] {
				continue
			}
			seen[p] = true
			out = append(out, crossing{point: p, h: hi, v: vi})
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].point.Y != out[j].point.Y {
			return out[i].point.Y < out[j].point.Y
		}
		return out[i].point.X < out[j].point.X
	})
	return out
}

// indexedCell remembers a cell's position in the input slice
type indexedCell struct {
	model.BBox
	n int
}

// NewCellGrouper returns the default CellGrouper. Two cells belong to the
// same table when they share part of an edge, allowing a gap of tolerance.
// Cells meeting only at a corner are not joined.
func NewCellGrouper(tolerance float64) CellGrouper {
	return func(cells []model.BBox) ([]model.BBox, error) {
		idx := spatial.New[indexedCell]()
		for i, c := range cells {
			if c.IsEmpty() {
				return nil, fmt.Errorf("%w: %+v", ErrDegenerateCell, c)
			}
			idx.Add(indexedCell{BBox: c, n: i})
		}

		parent := make([]int, len(cells))
		for i := range parent {
			parent[i] = i
		}
		var find func(int) int
		find = func(i int) int {
			if parent[i] != i {
				parent[i] = find(parent[i])
			}
			return parent[i]
		}

		for i, c := range cells {
			for _, o := range idx.Overlapping(c.Expand(tolerance)) {
				if o.n == i || !sharesEdge(c, o.BBox, tolerance) {
					continue
				}
				if a, b := find(i), find(o.n); a != b {
					parent[b] = a
				}
			}
		}

		groups := make(map[int][]model.BBox)
		var roots []int
		for i, c := range cells {
			root := find(i)
			if _, ok := groups[root]; !ok {
				roots = append(roots, root)
			}
			groups[root] = append(groups[root], c)
		}

		regions := make([]model.BBox, 0, len(roots))
		for _, root := range roots {
			region, err := model.BoundingBoxOf(groups[root])
			if err != nil {
				return nil, err
			}
			regions = append(regions, region)
		}
		return regions, nil
	}
}

// sharesEdge reports whether a and b are within tolerance of each other and
// overlap along at least one axis.
func sharesEdge(a, b model.BBox, tolerance float64) bool {
	if !a.Expand(tolerance).Intersects(b) {
		return false
	}
	hOverlap := min(a.Right(), b.Right()) - max(a.Left(), b.Left())
	vOverlap := a.VerticalOverlap(b)
	return hOverlap > 0 || vOverlap > 0
}
