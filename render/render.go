// Package render draws a page's rulings, words and detected table regions
// into an image for inspecting detection results.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/vector"

	"github.com/tsawler/rulegrid/model"
)

// Colors used for each layer
var (
	Background  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	RulingColor = color.RGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	TextColor   = color.RGBA{R: 0x4a, G: 0x90, B: 0xe2, A: 0xff}
	RegionColor = color.RGBA{R: 0xe0, G: 0x20, B: 0x20, A: 0xff}
)

// layer collects shapes that share one color
type layer struct {
	z     *vector.Rasterizer
	scale float64
	empty bool
}

func newLayer(bounds image.Rectangle, scale float64) *layer {
	return &layer{z: vector.NewRasterizer(bounds.Dx(), bounds.Dy()), scale: scale, empty: true}
}

// fill adds a filled rectangle given in page coordinates
func (l *layer) fill(b model.BBox) {
	x0, y0 := float32(b.Left()*l.scale), float32(b.Top()*l.scale)
	x1, y1 := float32(b.Right()*l.scale), float32(b.Bottom()*l.scale)
	l.z.MoveTo(x0, y0)
	l.z.LineTo(x1, y0)
	l.z.LineTo(x1, y1)
	l.z.LineTo(x0, y1)
	l.z.ClosePath()
	l.empty = false
}

// stroke adds the outline of b with the given width in pixels
func (l *layer) stroke(b model.BBox, width float64) {
	w := width / l.scale
	l.fill(model.NewBBoxFromEdges(b.Left(), b.Top(), b.Right(), b.Top()+w))
	l.fill(model.NewBBoxFromEdges(b.Left(), b.Bottom()-w, b.Right(), b.Bottom()))
	l.fill(model.NewBBoxFromEdges(b.Left(), b.Top(), b.Left()+w, b.Bottom()))
	l.fill(model.NewBBoxFromEdges(b.Right()-w, b.Top(), b.Right(), b.Bottom()))
}

// line adds a ruling as a rectangle two pixels thick
func (l *layer) line(r model.Ruling) {
	half := 1 / l.scale
	l.fill(r.BoundingBox().Expand(half))
}

func (l *layer) draw(dst draw.Image, c color.Color) {
	if l.empty {
		return
	}
	l.z.Draw(dst, dst.Bounds(), image.NewUniform(c), image.Point{})
}

// Page draws page at scale pixels per point: word boxes in blue, rulings in
// grey and region outlines on top, the first in red.
func Page(page *model.Page, regions []model.BBox, scale float64) *image.RGBA {
	if scale <= 0 {
		scale = 1
	}
	w := int(math.Ceil(page.Width * scale))
	h := int(math.Ceil(page.Height * scale))
	img := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
	draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)

	text := newLayer(img.Bounds(), scale)
	for _, c := range page.Text {
		text.stroke(c.BBox, 1)
	}
	text.draw(img, TextColor)

	rulings := newLayer(img.Bounds(), scale)
	for _, r := range page.HorizontalRulings {
		rulings.line(r)
	}
	for _, r := range page.VerticalRulings {
		rulings.line(r)
	}
	rulings.draw(img, RulingColor)

	for i, r := range regions {
		outline := newLayer(img.Bounds(), scale)
		outline.stroke(r, 2)
		outline.draw(img, regionColor(i))
	}

	return img
}

// regionColor returns the outline color of the i-th region. The first is
// RegionColor; each later one turns its hue by the golden angle.
func regionColor(i int) color.RGBA {
	if i == 0 {
		return RegionColor
	}
	base, _ := colorful.MakeColor(RegionColor)
	h, s, v := base.Hsv()
	r, g, b := colorful.Hsv(math.Mod(h+float64(i)*137.508, 360), s, v).Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}
