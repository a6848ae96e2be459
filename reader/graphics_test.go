package reader

import (
	"testing"

	"github.com/ledongthuc/pdf"
)

func TestMatrix(t *testing.T) {
	translate := matrix{1, 0, 0, 1, 50, 20}
	scale := matrix{2, 0, 0, 2, 0, 0}
	rotate := matrix{0, 1, -1, 0, 0, 0}

	tests := []struct {
		name        string
		m           matrix
		x, y        float64
		want        pdf.Point
		rectilinear bool
	}{
		{name: "identity", m: identity, x: 3, y: 4, want: pdf.Point{X: 3, Y: 4}, rectilinear: true},
		{name: "translate", m: translate, x: 3, y: 4, want: pdf.Point{X: 53, Y: 24}, rectilinear: true},
		{name: "scale then translate", m: scale.multiply(translate), x: 3, y: 4, want: pdf.Point{X: 56, Y: 28}, rectilinear: true},
		{name: "translate then scale", m: translate.multiply(scale), x: 3, y: 4, want: pdf.Point{X: 106, Y: 48}, rectilinear: true},
		{name: "quarter turn", m: rotate, x: 3, y: 4, want: pdf.Point{X: -4, Y: 3}, rectilinear: true},
		{name: "skew", m: matrix{1, 0.5, 0, 1, 0, 0}, x: 2, y: 0, want: pdf.Point{X: 2, Y: 1}, rectilinear: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.m.apply(tt.x, tt.y); got != tt.want {
				t.Errorf("apply(%v, %v) = %+v, want %+v", tt.x, tt.y, got, tt.want)
			}
			if got := tt.m.rectilinear(); got != tt.rectilinear {
				t.Errorf("rectilinear() = %v, want %v", got, tt.rectilinear)
			}
		})
	}
}

func pt(x, y float64) pdf.Point { return pdf.Point{X: x, Y: y} }

func TestPathBuilder(t *testing.T) {
	t.Run("stroke keeps open subpath open", func(t *testing.T) {
		b := newPathBuilder()
		b.moveTo(0, 0)
		b.lineTo(100, 0)
		b.lineTo(100, 50)
		b.paint(false)

		want := []segment{{pt(0, 0), pt(100, 0)}, {pt(100, 0), pt(100, 50)}}
		if !equalSegments(b.out.segments, want) {
			t.Errorf("segments = %+v, want %+v", b.out.segments, want)
		}
	})

	t.Run("close path adds the closing segment", func(t *testing.T) {
		b := newPathBuilder()
		b.moveTo(0, 0)
		b.lineTo(100, 0)
		b.lineTo(100, 50)
		b.closePath()
		b.paint(false)

		if n := len(b.out.segments); n != 3 {
			t.Fatalf("got %d segments, want 3", n)
		}
		if got, want := b.out.segments[2], (segment{pt(100, 50), pt(0, 0)}); got != want {
			t.Errorf("closing segment = %+v, want %+v", got, want)
		}
	})

	t.Run("fill closes implicitly", func(t *testing.T) {
		b := newPathBuilder()
		b.moveTo(0, 0)
		b.lineTo(100, 0)
		b.lineTo(100, 50)
		b.paint(true)

		if n := len(b.out.segments); n != 3 {
			t.Errorf("got %d segments, want 3", n)
		}
	})

	t.Run("discarded path paints nothing", func(t *testing.T) {
		b := newPathBuilder()
		b.moveTo(0, 0)
		b.lineTo(100, 0)
		b.rectangle(0, 0, 10, 10)
		b.discard()
		b.paint(false)

		if len(b.out.segments) != 0 || len(b.out.rects) != 0 {
			t.Errorf("out = %+v, want empty", b.out)
		}
	})

	t.Run("curves move the current point", func(t *testing.T) {
		b := newPathBuilder()
		b.moveTo(0, 0)
		b.curveTo(50, 50)
		b.lineTo(50, 100)
		b.paint(false)

		want := []segment{{pt(50, 50), pt(50, 100)}}
		if !equalSegments(b.out.segments, want) {
			t.Errorf("segments = %+v, want %+v", b.out.segments, want)
		}
	})

	t.Run("rectangle under translation", func(t *testing.T) {
		b := newPathBuilder()
		b.ctm = matrix{1, 0, 0, 1, 10, 20}
		b.rectangle(0, 0, 100, 1)
		b.paint(true)

		want := []pdf.Rect{{Min: pt(10, 20), Max: pt(110, 21)}}
		if len(b.out.rects) != 1 || b.out.rects[0] != want[0] {
			t.Errorf("rects = %+v, want %+v", b.out.rects, want)
		}
		if len(b.out.segments) != 0 {
			t.Errorf("segments = %+v, want none", b.out.segments)
		}
	})

	t.Run("rectangle under skew becomes segments", func(t *testing.T) {
		b := newPathBuilder()
		b.ctm = matrix{1, 0.5, 0, 1, 0, 0}
		b.rectangle(0, 0, 10, 10)
		b.paint(true)

		if len(b.out.rects) != 0 {
			t.Errorf("rects = %+v, want none", b.out.rects)
		}
		if n := len(b.out.segments); n != 4 {
			t.Errorf("got %d segments, want 4", n)
		}
	})
}

func equalSegments(got, want []segment) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
