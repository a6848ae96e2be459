package reader

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/rulegrid/model"
)

var (
	// ErrPageOutOfRange is returned when a page number is below 1 or above
	// the page count.
	ErrPageOutOfRange = errors.New("reader: page out of range")

	// ErrMalformedContent is returned when a page content stream cannot be
	// interpreted.
	ErrMalformedContent = errors.New("reader: malformed content stream")
)

// Default page size (US Letter) used when a page has no usable MediaBox
const (
	defaultWidth  = 612.0
	defaultHeight = 792.0
)

// Options controls how page content is turned into rulings and words.
type Options struct {
	// Filled rectangles no thicker than this (points) are read as rulings.
	// Thicker rectangles contribute their four edges. Line segments no
	// longer than this are ignored.
	RulingThickness float64

	// Horizontal gap between glyphs, as a fraction of the font size, above
	// which a new word starts
	WordSpacing float64
}

// DefaultOptions returns the options used by Open and NewReader.
func DefaultOptions() Options {
	return Options{
		RulingThickness: 2.0,
		WordSpacing:     0.25,
	}
}

// Reader loads pages of a PDF document as model.Page values.
// A Reader is not safe for concurrent use.
type Reader struct {
	closer  io.Closer
	pdf     *pdf.Reader
	options Options
}

// Open opens a PDF file and returns a Reader
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	r, err := NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	r.closer = file
	return r, nil
}

// NewReader creates a Reader over size bytes of PDF data. The caller keeps
// ownership of ra; Close does not close it.
func NewReader(ra io.ReaderAt, size int64) (*Reader, error) {
	pr, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PDF: %w", err)
	}
	return &Reader{pdf: pr, options: DefaultOptions()}, nil
}

// SetOptions replaces the extraction options.
func (r *Reader) SetOptions(o Options) {
	r.options = o
}

// Close closes the underlying file if the Reader opened it
func (r *Reader) Close() error {
	if r.closer != nil {
		return r.closer.Close()
	}
	return nil
}

// PageCount returns the number of pages in the document
func (r *Reader) PageCount() int {
	return r.pdf.NumPage()
}

// Page loads page n (1-indexed) with its rulings and words. Rulings come
// from every painted path: thin filled rectangles, rectangle outlines and
// stroked horizontal or vertical lines. Coordinates are converted to a
// top-left origin.
func (r *Reader) Page(n int) (*model.Page, error) {
	if n < 1 || n > r.pdf.NumPage() {
		return nil, fmt.Errorf("%w: %d of %d", ErrPageOutOfRange, n, r.pdf.NumPage())
	}
	p := r.pdf.Page(n)
	if p.V.IsNull() {
		return nil, fmt.Errorf("%w: %d", ErrPageOutOfRange, n)
	}

	width, height := mediaBox(p.V)
	page := model.NewPage(width, height)
	page.Number = n

	content, err := pageContent(p)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}

	painted, err := pagePaths(p.V.Key("Contents"))
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", n, err)
	}
	for _, rect := range painted.rects {
		for _, ruling := range r.rulings(rect, height) {
			page.AddRuling(ruling)
		}
	}
	for _, seg := range painted.segments {
		if ruling, ok := r.segmentRuling(seg, height); ok {
			page.AddRuling(ruling)
		}
	}
	for _, word := range r.words(content.Text, height) {
		page.AddText(word)
	}
	return page, nil
}

// pageContent interprets the content stream. The pdf package panics on
// streams it cannot parse.
func pageContent(p pdf.Page) (content pdf.Content, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %v", ErrMalformedContent, rec)
		}
	}()
	return p.Content(), nil
}

// mediaBox returns the page size, following the Parent chain for an
// inherited MediaBox.
func mediaBox(v pdf.Value) (width, height float64) {
	for depth := 0; !v.IsNull() && depth < 32; depth++ {
		box := v.Key("MediaBox")
		if box.Kind() == pdf.Array && box.Len() == 4 {
			width = math.Abs(box.Index(2).Float64() - box.Index(0).Float64())
			height = math.Abs(box.Index(3).Float64() - box.Index(1).Float64())
			if width > 0 && height > 0 {
				return width, height
			}
		}
		v = v.Key("Parent")
	}
	return defaultWidth, defaultHeight
}

// rulings converts a filled rectangle into rulings in top-left space.
func (r *Reader) rulings(rect pdf.Rect, pageHeight float64) []model.Ruling {
	left := math.Min(rect.Min.X, rect.Max.X)
	right := math.Max(rect.Min.X, rect.Max.X)
	top := pageHeight - math.Max(rect.Min.Y, rect.Max.Y)
	bottom := pageHeight - math.Min(rect.Min.Y, rect.Max.Y)
	w, h := right-left, bottom-top
	thin := r.options.RulingThickness

	switch {
	case w <= thin && h <= thin:
		return nil
	case h <= thin:
		return []model.Ruling{model.NewHorizontalRuling((top+bottom)/2, left, right)}
	case w <= thin:
		return []model.Ruling{model.NewVerticalRuling((left+right)/2, top, bottom)}
	}
	return []model.Ruling{
		model.NewHorizontalRuling(top, left, right),
		model.NewHorizontalRuling(bottom, left, right),
		model.NewVerticalRuling(left, top, bottom),
		model.NewVerticalRuling(right, top, bottom),
	}
}

// segmentRuling converts a stroked or filled line segment into a ruling in
// top-left space. Segments no longer than RulingThickness, such as the ends
// of a thin filled bar, are dropped. Oblique segments are left for the page
// to reject.
func (r *Reader) segmentRuling(s segment, pageHeight float64) (model.Ruling, bool) {
	ruling := model.Ruling{
		Start: model.Point{X: s.start.X, Y: pageHeight - s.start.Y},
		End:   model.Point{X: s.end.X, Y: pageHeight - s.end.Y},
	}
	if ruling.Length() <= r.options.RulingThickness {
		return model.Ruling{}, false
	}
	return ruling, true
}

// glyphBox approximates a glyph's box from its baseline, placing the ascent
// at 80% of the font size.
func glyphBox(t pdf.Text, pageHeight float64) model.BBox {
	size := t.FontSize
	if size <= 0 {
		size = 1
	}
	top := pageHeight - (t.Y + size*0.8)
	return model.NewBBox(t.X, top, math.Max(t.W, 0), size)
}

// words joins glyphs into word chunks. A word ends at whitespace, at a change
// of baseline, or at a horizontal gap wider than WordSpacing.
func (r *Reader) words(glyphs []pdf.Text, pageHeight float64) []model.TextChunk {
	var out []model.TextChunk
	var current model.TextChunk
	var last pdf.Text
	open := false

	flush := func() {
		if !open {
			return
		}
		current.Text = norm.NFC.String(current.Text)
		out = append(out, current)
		open = false
	}

	for _, g := range glyphs {
		if strings.TrimFunc(g.S, unicode.IsSpace) == "" {
			flush()
			continue
		}
		box := glyphBox(g, pageHeight)
		if open && r.continuesWord(last, g) {
			current.Text += g.S
			current.BBox = current.BBox.Union(box)
			if g.FontSize > current.FontSize {
				current.FontName, current.FontSize = g.Font, g.FontSize
			}
		} else {
			flush()
			current = model.TextChunk{Text: g.S, BBox: box, FontName: g.Font, FontSize: g.FontSize}
			open = true
		}
		last = g
	}
	flush()
	return out
}

// continuesWord reports whether glyph g directly follows prev on the same
// baseline.
func (r *Reader) continuesWord(prev, g pdf.Text) bool {
	size := math.Max(prev.FontSize, g.FontSize)
	if size <= 0 {
		size = 1
	}
	if math.Abs(prev.Y-g.Y) > size*0.5 {
		return false
	}
	gap := g.X - (prev.X + prev.W)
	return gap <= size*r.options.WordSpacing && gap >= -size*0.5
}
