package model

import (
	"errors"
	"math"
	"sort"
)

// ErrNoRectangles is returned when a bounding box is requested for an empty
// collection of rectangles.
var ErrNoRectangles = errors.New("model: bounding box of zero rectangles")

// readingOrderOverlap is the vertical overlap ratio above which two
// rectangles are treated as sitting on the same line.
const readingOrderOverlap = 0.4

// Point represents a 2D point
type Point struct {
	X, Y float64
}

// Distance calculates the Euclidean distance to another point
func (p Point) Distance(other Point) float64 {
	dx := p.X - other.X
	dy := p.Y - other.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// BBox represents an axis-aligned rectangle in page space. The origin is the
// top-left corner of the page and Y grows downward, so Top() <= Bottom().
type BBox struct {
	X      float64 // Left
	Y      float64 // Top
	Width  float64
	Height float64
}

// Rectangular is implemented by anything that occupies a rectangle on the page.
type Rectangular interface {
	BoundingBox() BBox
}

// NewBBox creates a bounding box from coordinates
func NewBBox(x, y, width, height float64) BBox {
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromPoints creates a bounding box from two opposite corners
func NewBBoxFromPoints(p1, p2 Point) BBox {
	x := math.Min(p1.X, p2.X)
	y := math.Min(p1.Y, p2.Y)
	width := math.Abs(p2.X - p1.X)
	height := math.Abs(p2.Y - p1.Y)
	return BBox{X: x, Y: y, Width: width, Height: height}
}

// NewBBoxFromEdges creates a bounding box from its four edges
func NewBBoxFromEdges(left, top, right, bottom float64) BBox {
	return NewBBoxFromPoints(Point{X: left, Y: top}, Point{X: right, Y: bottom})
}

// BoundingBox lets a bare BBox be used wherever a Rectangular is expected.
func (b BBox) BoundingBox() BBox { return b }

// Left returns the left edge X coordinate
func (b BBox) Left() float64 {
	return b.X
}

// Right returns the right edge X coordinate
func (b BBox) Right() float64 {
	return b.X + b.Width
}

// Top returns the top edge Y coordinate
func (b BBox) Top() float64 {
	return b.Y
}

// Bottom returns the bottom edge Y coordinate
func (b BBox) Bottom() float64 {
	return b.Y + b.Height
}

// Center returns the center point
func (b BBox) Center() Point {
	return Point{
		X: b.X + b.Width/2,
		Y: b.Y + b.Height/2,
	}
}

// ContainsBox reports whether other lies entirely inside b. Shared edges
// count as inside.
func (b BBox) ContainsBox(other BBox) bool {
	return other.Left() >= b.Left() && other.Right() <= b.Right() &&
		other.Top() >= b.Top() && other.Bottom() <= b.Bottom()
}

// Intersects checks if two bounding boxes intersect. Touching edges count.
func (b BBox) Intersects(other BBox) bool {
	return !(b.Right() < other.Left() ||
		b.Left() > other.Right() ||
		b.Bottom() < other.Top() ||
		b.Top() > other.Bottom())
}

// Union returns the smallest box covering both boxes
func (b BBox) Union(other BBox) BBox {
	x := math.Min(b.Left(), other.Left())
	y := math.Min(b.Top(), other.Top())
	right := math.Max(b.Right(), other.Right())
	bottom := math.Max(b.Bottom(), other.Bottom())

	return BBox{
		X:      x,
		Y:      y,
		Width:  right - x,
		Height: bottom - y,
	}
}

// Expand expands the bounding box by a margin on all sides
func (b BBox) Expand(margin float64) BBox {
	return BBox{
		X:      b.X - margin,
		Y:      b.Y - margin,
		Width:  b.Width + 2*margin,
		Height: b.Height + 2*margin,
	}
}

// VerticalOverlap returns the length of the shared vertical span.
func (b BBox) VerticalOverlap(other BBox) float64 {
	return math.Max(0, math.Min(b.Bottom(), other.Bottom())-math.Max(b.Top(), other.Top()))
}

// VerticalOverlapRatio returns the shared vertical span relative to the
// shorter of the two boxes, between 0 and 1.
func (b BBox) VerticalOverlapRatio(other BBox) float64 {
	delta := math.Min(b.Height, other.Height)
	overlap := b.VerticalOverlap(other)
	if delta <= 0 {
		// A zero-height box shares a line with anything spanning its Y.
		if b.Top() <= other.Bottom() && other.Top() <= b.Bottom() {
			return 1
		}
		return 0
	}
	return math.Min(1, overlap/delta)
}

// IsEmpty returns true if the bounding box has zero area
func (b BBox) IsEmpty() bool {
	return b.Width <= 0 || b.Height <= 0
}

// BoundingBoxOf returns the smallest box covering every rectangle in rects.
func BoundingBoxOf[T Rectangular](rects []T) (BBox, error) {
	if len(rects) == 0 {
		return BBox{}, ErrNoRectangles
	}
	out := rects[0].BoundingBox()
	for _, r := range rects[1:] {
		out = out.Union(r.BoundingBox())
	}
	return out, nil
}

// CompareReadingOrder orders two rectangles top-to-bottom, then
// left-to-right. Rectangles whose vertical spans overlap by more than 40% of
// the shorter one are on the same line and ordered by their left edge;
// otherwise the one whose bottom edge is higher comes first.
//
// This is a heuristic. It is not transitive for every arrangement, so use it
// to make output deterministic and never as a geometric relation.
func CompareReadingOrder(a, b BBox) int {
	if a == b {
		return 0
	}
	if a.VerticalOverlapRatio(b) > readingOrderOverlap {
		return compareFloat(a.Left(), b.Left())
	}
	return compareFloat(a.Bottom(), b.Bottom())
}

// SortReadingOrder stable-sorts items with CompareReadingOrder.
func SortReadingOrder[T Rectangular](items []T) {
	sort.SliceStable(items, func(i, j int) bool {
		return CompareReadingOrder(items[i].BoundingBox(), items[j].BoundingBox()) < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
