// Package testpdf builds small PDF documents for tests. Pages can hold
// filled rectangles, stroked lines and single-line text in Helvetica with fixed
// half-em glyph widths.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"strings"
)

// Page is one page of a generated document. Content is a raw content stream
// in PDF coordinates (origin at the bottom-left).
type Page struct {
	Width, Height float64
	Content       string
}

// Letter returns a US Letter page with the given content
func Letter(content ...string) Page {
	return Page{Width: 612, Height: 792, Content: strings.Join(content, "")}
}

// GlyphWidth is the advance of every glyph in thousandths of the font size
const GlyphWidth = 500

// Build returns a complete PDF file holding pages.
func Build(pages ...Page) []byte {
	const fontObj = 3
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // page tree, filled below
		fontDict(),
	}

	kids := make([]string, len(pages))
	for i, p := range pages {
		pageNum := len(objects) + 1
		contentNum := pageNum + 1
		kids[i] = fmt.Sprintf("%d 0 R", pageNum)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 %g %g] /Contents %d 0 R /Resources << /Font << /F1 %d 0 R >> >> >>",
				p.Width, p.Height, contentNum, fontObj),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(p.Content), p.Content),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func fontDict() string {
	widths := strings.TrimSpace(strings.Repeat(fmt.Sprintf("%d ", GlyphWidth), 126-32+1))
	return "<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding " +
		"/FirstChar 32 /LastChar 126 /Widths [" + widths + "] >>"
}

// WriteFile builds the document and writes it to path.
func WriteFile(path string, pages ...Page) error {
	return os.WriteFile(path, Build(pages...), 0o644)
}

// Rect returns a filled rectangle with its lower-left corner at (x, y).
func Rect(x, y, w, h float64) string {
	return fmt.Sprintf("%g %g %g %g re\nf\n", x, y, w, h)
}

// Line returns a stroked line from (x1, y1) to (x2, y2).
func Line(x1, y1, x2, y2 float64) string {
	return fmt.Sprintf("%g %g m %g %g l S\n", x1, y1, x2, y2)
}

// StrokedGrid draws the same lines as Grid with stroked paths instead of
// filled rectangles.
func StrokedGrid(xs, ys []float64) string {
	var sb strings.Builder
	left, right := xs[0], xs[len(xs)-1]
	bottom, top := ys[0], ys[len(ys)-1]
	for _, y := range ys {
		sb.WriteString(Line(left, y, right, y))
	}
	for _, x := range xs {
		sb.WriteString(Line(x, bottom, x, top))
	}
	return sb.String()
}

// Grid returns 1pt rules along every x in xs and every y in ys, spanning
// the outer edges of the grid.
func Grid(xs, ys []float64) string {
	var sb strings.Builder
	left, right := xs[0], xs[len(xs)-1]
	bottom, top := ys[0], ys[len(ys)-1]
	for _, y := range ys {
		sb.WriteString(Rect(left, y-0.5, right-left, 1))
	}
	for _, x := range xs {
		sb.WriteString(Rect(x-0.5, bottom, 1, top-bottom))
	}
	return sb.String()
}

var escaper = strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)

// Text shows s with its baseline starting at (x, y).
func Text(x, y, size float64, s string) string {
	return fmt.Sprintf("BT\n/F1 %g Tf\n%g %g Td\n(%s) Tj\nET\n", size, x, y, escaper.Replace(s))
}
