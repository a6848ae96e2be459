package model

import (
	"math"
	"sort"
)

// Orientation classifies a ruling
type Orientation int

const (
	Oblique Orientation = iota
	Horizontal
	Vertical
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	default:
		return "oblique"
	}
}

// orientationTolerance is how far (in points) a ruling may drift off its axis
// and still count as horizontal or vertical.
const orientationTolerance = 1.0

// Ruling is a line segment on the page that may act as a table border.
type Ruling struct {
	Start Point
	End   Point
}

// NewHorizontalRuling creates a ruling at y spanning x1..x2
func NewHorizontalRuling(y, x1, x2 float64) Ruling {
	return Ruling{Start: Point{X: x1, Y: y}, End: Point{X: x2, Y: y}}.Normalize()
}

// NewVerticalRuling creates a ruling at x spanning y1..y2
func NewVerticalRuling(x, y1, y2 float64) Ruling {
	return Ruling{Start: Point{X: x, Y: y1}, End: Point{X: x, Y: y2}}.Normalize()
}

// Orientation reports whether the ruling is horizontal, vertical or neither.
func (r Ruling) Orientation() Orientation {
	dx := math.Abs(r.End.X - r.Start.X)
	dy := math.Abs(r.End.Y - r.Start.Y)
	switch {
	case dy <= orientationTolerance && dx > dy:
		return Horizontal
	case dx <= orientationTolerance && dy > dx:
		return Vertical
	default:
		return Oblique
	}
}

// Normalize snaps an axis-aligned ruling onto its axis and orders its end
// points left-to-right or top-to-bottom. Oblique rulings are returned as is.
func (r Ruling) Normalize() Ruling {
	switch r.Orientation() {
	case Horizontal:
		y := (r.Start.Y + r.End.Y) / 2
		x1, x2 := math.Min(r.Start.X, r.End.X), math.Max(r.Start.X, r.End.X)
		return Ruling{Start: Point{X: x1, Y: y}, End: Point{X: x2, Y: y}}
	case Vertical:
		x := (r.Start.X + r.End.X) / 2
		y1, y2 := math.Min(r.Start.Y, r.End.Y), math.Max(r.Start.Y, r.End.Y)
		return Ruling{Start: Point{X: x, Y: y1}, End: Point{X: x, Y: y2}}
	}
	return r
}

// Position is the Y of a horizontal ruling or the X of a vertical one.
func (r Ruling) Position() float64 {
	if r.Orientation() == Vertical {
		return (r.Start.X + r.End.X) / 2
	}
	return (r.Start.Y + r.End.Y) / 2
}

// Extent returns the span of the ruling along its own axis.
func (r Ruling) Extent() (lo, hi float64) {
	if r.Orientation() == Vertical {
		return math.Min(r.Start.Y, r.End.Y), math.Max(r.Start.Y, r.End.Y)
	}
	return math.Min(r.Start.X, r.End.X), math.Max(r.Start.X, r.End.X)
}

// Length returns the Euclidean length
func (r Ruling) Length() float64 {
	return r.Start.Distance(r.End)
}

// BoundingBox returns the envelope of the segment.
func (r Ruling) BoundingBox() BBox {
	return NewBBoxFromPoints(r.Start, r.End)
}

// Expand lengthens an axis-aligned ruling by amount at both ends.
func (r Ruling) Expand(amount float64) Ruling {
	n := r.Normalize()
	switch n.Orientation() {
	case Horizontal:
		n.Start.X -= amount
		n.End.X += amount
	case Vertical:
		n.Start.Y -= amount
		n.End.Y += amount
	}
	return n
}

// IntersectionPoint returns where a horizontal ruling crosses a vertical one.
// Both are lengthened by tolerance first so rulings that stop just short of
// each other still meet.
func IntersectionPoint(horizontal, vertical Ruling, tolerance float64) (Point, bool) {
	h := horizontal.Expand(tolerance)
	v := vertical.Expand(tolerance)
	if h.Orientation() != Horizontal || v.Orientation() != Vertical {
		return Point{}, false
	}
	x, y := v.Position(), h.Position()
	hLo, hHi := h.Extent()
	vLo, vHi := v.Extent()
	if x < hLo || x > hHi || y < vLo || y > vHi {
		return Point{}, false
	}
	return Point{X: x, Y: y}, true
}

// CollapseRulings merges rulings of one orientation that lie on the same
// axis position (within tolerance) and whose extents overlap or nearly touch.
// Oblique rulings are dropped. The result is sorted by position, then by the
// start of the extent.
func CollapseRulings(rulings []Ruling, tolerance float64) []Ruling {
	sorted := make([]Ruling, 0, len(rulings))
	for _, r := range rulings {
		if r.Orientation() == Oblique {
			continue
		}
		sorted = append(sorted, r.Normalize())
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if oi, oj := sorted[i].Orientation(), sorted[j].Orientation(); oi != oj {
			return oi < oj
		}
		return sorted[i].Position() < sorted[j].Position()
	})

	var out []Ruling
	start := 0
	for i := 1; i <= len(sorted); i++ {
		if i < len(sorted) &&
			sorted[i].Orientation() == sorted[start].Orientation() &&
			sorted[i].Position()-sorted[start].Position() <= tolerance {
			continue
		}
		out = append(out, mergeAligned(sorted[start:i], tolerance)...)
		start = i
	}
	return out
}

// mergeAligned joins rulings already known to share an axis position.
func mergeAligned(group []Ruling, tolerance float64) []Ruling {
	sort.SliceStable(group, func(i, j int) bool {
		li, _ := group[i].Extent()
		lj, _ := group[j].Extent()
		return li < lj
	})

	var out []Ruling
	for _, r := range group {
		if len(out) == 0 {
			out = append(out, r)
			continue
		}
		last := &out[len(out)-1]
		lastLo, lastHi := last.Extent()
		lo, hi := r.Extent()
		if lo > lastHi+tolerance {
			out = append(out, r)
			continue
		}
		*last = withExtent(*last, lastLo, math.Max(lastHi, hi))
	}
	return out
}

func withExtent(r Ruling, lo, hi float64) Ruling {
	pos := r.Position()
	if r.Orientation() == Vertical {
		return Ruling{Start: Point{X: pos, Y: lo}, End: Point{X: pos, Y: hi}}
	}
	return Ruling{Start: Point{X: lo, Y: pos}, End: Point{X: hi, Y: pos}}
}
