package reader

import (
	"fmt"

	"github.com/ledongthuc/pdf"
)

// matrix is a PDF transformation matrix [a b c d e f].
type matrix [6]float64

var identity = matrix{1, 0, 0, 1, 0, 0}

// multiply returns m followed by n.
func (m matrix) multiply(n matrix) matrix {
	return matrix{
		m[0]*n[0] + m[1]*n[2],
		m[0]*n[1] + m[1]*n[3],
		m[2]*n[0] + m[3]*n[2],
		m[2]*n[1] + m[3]*n[3],
		m[4]*n[0] + m[5]*n[2] + n[4],
		m[4]*n[1] + m[5]*n[3] + n[5],
	}
}

func (m matrix) apply(x, y float64) pdf.Point {
	return pdf.Point{X: m[0]*x + m[2]*y + m[4], Y: m[1]*x + m[3]*y + m[5]}
}

// rectilinear reports whether m maps axis-aligned rectangles onto
// axis-aligned rectangles.
func (m matrix) rectilinear() bool {
	return (m[1] == 0 && m[2] == 0) || (m[0] == 0 && m[3] == 0)
}

// segment is a straight piece of a painted path in default user space
type segment struct {
	start, end pdf.Point
}

// paths holds everything a page stroked or filled: straight segments from
// m/l/h and rectangles from re.
type paths struct {
	segments []segment
	rects    []pdf.Rect
}

// pathBuilder follows path construction and painting operators. Curves
// only move the current point; they never make rulings.
type pathBuilder struct {
	ctm   matrix
	saved []matrix

	// path under construction
	segments      []segment
	rects         []pdf.Rect
	current       pdf.Point
	start         pdf.Point
	hasCurrent    bool
	subpathOpened bool

	out paths
}

func newPathBuilder() *pathBuilder {
	return &pathBuilder{ctm: identity}
}

func (b *pathBuilder) moveTo(x, y float64) {
	b.current = b.ctm.apply(x, y)
	b.start = b.current
	b.hasCurrent = true
	b.subpathOpened = true
}

func (b *pathBuilder) lineTo(x, y float64) {
	p := b.ctm.apply(x, y)
	if b.hasCurrent {
		b.segments = append(b.segments, segment{start: b.current, end: p})
	} else {
		b.start = p
		b.subpathOpened = true
	}
	b.current = p
	b.hasCurrent = true
}

// curveTo moves to the end point of a Bézier curve.
func (b *pathBuilder) curveTo(x, y float64) {
	b.current = b.ctm.apply(x, y)
	b.hasCurrent = true
}

func (b *pathBuilder) closePath() {
	if b.subpathOpened && b.current != b.start {
		b.segments = append(b.segments, segment{start: b.current, end: b.start})
	}
	b.current = b.start
}

func (b *pathBuilder) rectangle(x, y, w, h float64) {
	if b.ctm.rectilinear() {
		b.rects = append(b.rects, pdf.Rect{Min: b.ctm.apply(x, y), Max: b.ctm.apply(x+w, y+h)})
	} else {
		corners := []pdf.Point{b.ctm.apply(x, y), b.ctm.apply(x+w, y), b.ctm.apply(x+w, y+h), b.ctm.apply(x, y+h)}
		for i, c := range corners {
			b.segments = append(b.segments, segment{start: c, end: corners[(i+1)%4]})
		}
	}
	b.moveTo(x, y)
}

// paint records the current path. Fills close open subpaths implicitly.
func (b *pathBuilder) paint(close bool) {
	if close {
		b.closePath()
	}
	b.out.segments = append(b.out.segments, b.segments...)
	b.out.rects = append(b.out.rects, b.rects...)
	b.discard()
}

func (b *pathBuilder) discard() {
	b.segments, b.rects = nil, nil
	b.hasCurrent, b.subpathOpened = false, false
}

func (b *pathBuilder) operator(op string, args []pdf.Value) {
	num := func(i int) float64 { return args[i].Float64() }
	switch op {
	case "q":
		b.saved = append(b.saved, b.ctm)
	case "Q":
		if n := len(b.saved); n > 0 {
			b.ctm = b.saved[n-1]
			b.saved = b.saved[:n-1]
		}
	case "cm":
		if len(args) == 6 {
			b.ctm = matrix{num(0), num(1), num(2), num(3), num(4), num(5)}.multiply(b.ctm)
		}

	// Path construction
	case "m":
		if len(args) == 2 {
			b.moveTo(num(0), num(1))
		}
	case "l":
		if len(args) == 2 {
			b.lineTo(num(0), num(1))
		}
	case "c":
		if len(args) == 6 {
			b.curveTo(num(4), num(5))
		}
	case "v", "y":
		if len(args) == 4 {
			b.curveTo(num(2), num(3))
		}
	case "h":
		b.closePath()
	case "re":
		if len(args) == 4 {
			b.rectangle(num(0), num(1), num(2), num(3))
		}

	// Path painting
	case "S":
		b.paint(false)
	case "s", "f", "F", "f*", "B", "B*", "b", "b*":
		b.paint(true)
	case "n":
		b.discard()
	}
}

// pagePaths collects the painted paths of a page content stream. The pdf
// package panics on streams it cannot tokenize.
func pagePaths(contents pdf.Value) (out paths, err error) {
	if contents.IsNull() {
		return paths{}, nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedContent, rec)
		}
	}()

	b := newPathBuilder()
	pdf.Interpret(contents, func(stk *pdf.Stack, op string) {
		args := make([]pdf.Value, stk.Len())
		for i := len(args) - 1; i >= 0; i-- {
			args[i] = stk.Pop()
		}
		b.operator(op, args)
	})
	return b.out, nil
}
