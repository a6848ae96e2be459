package model

// Page holds the geometric primitives of a single page: ruling lines and
// positioned text. Coordinates use a top-left origin.
type Page struct {
	Number int     // 1-indexed page number
	Width  float64 // Page width in points
	Height float64 // Page height in points

	HorizontalRulings []Ruling
	VerticalRulings   []Ruling
	Text              []TextChunk
}

// NewPage creates a new page with given dimensions
func NewPage(width, height float64) *Page {
	return &Page{
		Width:  width,
		Height: height,
	}
}

// BoundingBox returns the page area
func (p *Page) BoundingBox() BBox {
	return BBox{Width: p.Width, Height: p.Height}
}

// AddRuling files r under the horizontal or vertical rulings. Oblique
// rulings are dropped and reported with false.
func (p *Page) AddRuling(r Ruling) bool {
	switch r.Orientation() {
	case Horizontal:
		p.HorizontalRulings = append(p.HorizontalRulings, r.Normalize())
	case Vertical:
		p.VerticalRulings = append(p.VerticalRulings, r.Normalize())
	default:
		return false
	}
	return true
}

// AddText appends a positioned text chunk
func (p *Page) AddText(chunk TextChunk) {
	p.Text = append(p.Text, chunk)
}
