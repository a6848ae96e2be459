// Package reader loads PDF pages into the page model used by table detection.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [NewReader] with any io.ReaderAt.
//
// # Pages
//
// Pages are numbered from 1. [Reader.Page] returns a *model.Page holding:
//
//   - HorizontalRulings, VerticalRulings - from filled rectangles
//   - Text - word chunks built from the page glyphs
//
// Coordinates are converted to a top-left origin so that a smaller Y is
// higher on the page.
//
// # Rulings
//
// Ruled tables are drawn either as thin filled rectangles or as stroked
// lines. Every path the page paints is followed through the m, l, h and re
// operators, with the current transformation matrix applied:
//
//   - rectangles no thicker than [Options].RulingThickness become a single
//     ruling along their center line
//   - thicker rectangles contribute their four edges
//   - horizontal and vertical line segments become rulings as they are
//
// Curves and oblique segments are ignored.
//
// # Concurrency
//
// A Reader is not safe for concurrent use. Load pages from one goroutine and
// hand the returned pages to workers; a *model.Page has no ties to the Reader.
package reader
