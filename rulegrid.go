// Package rulegrid finds ruled tables in PDF files and extracts their text.
//
// Basic usage:
//
//	tables, warnings, err := rulegrid.Open("report.pdf").Tables(ctx)
//	if err != nil {
//	    // handle error
//	}
//	if len(warnings) > 0 {
//	    log.Println("Warnings:", rulegrid.FormatWarnings(warnings))
//	}
//
// With options:
//
//	regions, _, err := rulegrid.Open("report.pdf").
//	    PageRange(2, 5).
//	    Detector("geometric").
//	    Workers(4).
//	    Regions(ctx)
//
// Lower-level packages are available for finer control: reader loads pages,
// tables runs detection on a single page, and export writes the results.
package rulegrid

import (
	"github.com/tsawler/rulegrid/reader"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is opened lazily by the first operation that needs it. Terminal
// operations such as Tables() close it again; call Close() if you only use
// PageCount().
//
// Example:
//
//	tables, _, err := rulegrid.Open("document.pdf").Tables(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	tables, _, err := rulegrid.FromReader(r).Pages(1).Tables(ctx)
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := rulegrid.Must(rulegrid.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}

// MustTables is like Must for the terminal operations that also return
// warnings. The warnings are discarded.
//
// Example:
//
//	tables := rulegrid.MustTables(rulegrid.Open("document.pdf").Tables(ctx))
func MustTables[T any](val T, _ []Warning, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
