package rulegrid

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/rulegrid/model"
	"github.com/tsawler/rulegrid/reader"
	"github.com/tsawler/rulegrid/tables"
)

// ErrUnknownDetector is returned when Detector names an unregistered detector.
var ErrUnknownDetector = errors.New("rulegrid: unknown detector")

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// PageRegions holds the table regions detected on one page, in reading order.
type PageRegions struct {
	Page    int
	Regions []model.BBox
}

// Extractor provides a fluent interface for detecting and extracting tables.
// Each configuration method returns a new Extractor instance, so a base
// Extractor can be specialized several ways without interference.
type Extractor struct {
	// Source
	filename string
	reader   *reader.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options ExtractOptions

	// Accumulated error (fail-fast)
	err error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
// A reader the Extractor opened itself stays with it; the copy opens its own
// file when it needs one, so closing either never affects the other.
func (e *Extractor) clone() *Extractor {
	c := &Extractor{
		filename: e.filename,
		options:  e.options.clone(),
		err:      e.err,
	}
	if !e.ownsReader {
		c.reader = e.reader
		c.readerOpened = e.readerOpened
	}
	return c
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	r, err := reader.Open(e.filename)
	if err != nil {
		return fmt.Errorf("failed to open PDF: %w", err)
	}
	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		e.readerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages specifies which pages to process (1-indexed).
// Multiple calls are cumulative.
//
// Example:
//
//	tables, _, err := rulegrid.Open("doc.pdf").Pages(1, 3, 5).Tables(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// PageRange specifies a range of pages to process (1-indexed, inclusive).
//
// Example:
//
//	tables, _, err := rulegrid.Open("doc.pdf").PageRange(5, 10).Tables(ctx)
func (e *Extractor) PageRange(start, end int) *Extractor {
	newExt := e.clone()
	if start > end {
		newExt.err = fmt.Errorf("invalid page range %d-%d", start, end)
		return newExt
	}
	for i := start; i <= end; i++ {
		newExt.options.pages = append(newExt.options.pages, i)
	}
	return newExt
}

// Detector selects the detection algorithm by its registered name, such as
// "spreadsheet" (the default) or "geometric".
//
// Example:
//
//	regions, _, err := rulegrid.Open("doc.pdf").Detector("geometric").Regions(ctx)
func (e *Extractor) Detector(name string) *Extractor {
	newExt := e.clone()
	if tables.NewDetector(name) == nil {
		newExt.err = fmt.Errorf("%w: %q", ErrUnknownDetector, name)
		return newExt
	}
	newExt.options.detector = name
	return newExt
}

// Workers sets how many pages are processed concurrently. Values below 1
// mean one page at a time.
func (e *Extractor) Workers(n int) *Extractor {
	newExt := e.clone()
	newExt.options.workers = max(n, 1)
	return newExt
}

// WithConfig replaces the detector configuration.
//
// Example:
//
//	cfg := tables.DefaultConfig()
//	cfg.RulingTolerance = 3
//	tables, _, err := rulegrid.Open("doc.pdf").WithConfig(cfg).Tables(ctx)
func (e *Extractor) WithConfig(config tables.Config) *Extractor {
	newExt := e.clone()
	newExt.options.config = config
	return newExt
}

// WithLogger sends debug records for every page and detection step to
// logger.
func (e *Extractor) WithLogger(logger *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.config.Logger = logger
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the total number of pages in the document.
// Note: This does NOT close the reader, allowing further operations.
//
// Example:
//
//	ext := rulegrid.Open("document.pdf")
//	defer ext.Close()
//	count, err := ext.PageCount()
func (e *Extractor) PageCount() (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.reader.PageCount(), nil
}

// Regions detects the table regions on the configured pages.
// This is a terminal operation that closes the underlying reader.
//
// Pages whose content cannot be interpreted are skipped and reported as
// warnings. Detection errors and context cancellation are returned as errors.
//
// Example:
//
//	pages, _, err := rulegrid.Open("document.pdf").Regions(ctx)
//	for _, p := range pages {
//	    fmt.Printf("page %d: %d tables\n", p.Page, len(p.Regions))
//	}
func (e *Extractor) Regions(ctx context.Context) ([]PageRegions, []Warning, error) {
	pages, warnings, err := e.loadPages(ctx)
	if err != nil {
		return nil, warnings, err
	}

	results := make([]PageRegions, len(pages))
	err = e.process(ctx, pages, func(i int, d tables.Detector, page *model.Page) error {
		regions, err := d.Detect(page)
		if err != nil {
			return fmt.Errorf("page %d: %w", page.Number, err)
		}
		results[i] = PageRegions{Page: page.Number, Regions: regions}
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}
	return results, warnings, nil
}

// Tables detects and extracts the tables on the configured pages, ordered
// by page and then by position on the page.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	tables, warnings, err := rulegrid.Open("document.pdf").Tables(ctx)
//	for _, t := range tables {
//	    fmt.Print(t.ToMarkdown())
//	}
func (e *Extractor) Tables(ctx context.Context) ([]*model.Table, []Warning, error) {
	doc, warnings, err := e.Document(ctx)
	if err != nil {
		return nil, warnings, err
	}
	return doc.Tables, warnings, nil
}

// Document extracts the configured pages together with their tables.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Document(ctx context.Context) (*model.Document, []Warning, error) {
	pages, warnings, err := e.loadPages(ctx)
	if err != nil {
		return nil, warnings, err
	}

	perPage := make([][]*model.Table, len(pages))
	err = e.process(ctx, pages, func(i int, d tables.Detector, page *model.Page) error {
		found, err := d.ExtractTables(page)
		if err != nil {
			return fmt.Errorf("page %d: %w", page.Number, err)
		}
		perPage[i] = found
		return nil
	})
	if err != nil {
		return nil, warnings, err
	}

	doc := model.NewDocument(e.filename)
	for i, page := range pages {
		doc.AddPage(page, perPage[i]...)
	}
	return doc, warnings, nil
}

// ============================================================================
// Internal helpers
// ============================================================================

// resolvePages validates the selected page numbers and returns them sorted
// and deduplicated. If no pages were selected, returns all pages.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount := e.reader.PageCount()

	if len(e.options.pages) == 0 {
		numbers := make([]int, pageCount)
		for i := range numbers {
			numbers[i] = i + 1
		}
		return numbers, nil
	}

	seen := make(map[int]bool)
	var numbers []int
	for _, p := range e.options.pages {
		if p < 1 || p > pageCount {
			return nil, fmt.Errorf("page %d out of range (1-%d): %w", p, pageCount, reader.ErrPageOutOfRange)
		}
		if !seen[p] {
			seen[p] = true
			numbers = append(numbers, p)
		}
	}
	sort.Ints(numbers)
	return numbers, nil
}

// loadPages reads the selected pages one after another; the reader is not
// safe for concurrent use. It closes the reader when done.
func (e *Extractor) loadPages(ctx context.Context) ([]*model.Page, []Warning, error) {
	if e.err != nil {
		return nil, nil, e.err
	}
	if err := e.ensureReader(); err != nil {
		return nil, nil, err
	}
	defer e.Close()

	numbers, err := e.resolvePages()
	if err != nil {
		return nil, nil, err
	}

	log := e.options.logger()
	var warnings []Warning
	pages := make([]*model.Page, 0, len(numbers))
	for _, n := range numbers {
		if err := ctx.Err(); err != nil {
			return nil, warnings, err
		}
		page, err := e.reader.Page(n)
		if errors.Is(err, reader.ErrMalformedContent) {
			log.Warn("skipping page", "page", n, "error", err)
			warnings = append(warnings, Warning{Page: n, Message: "page skipped", Err: err})
			continue
		}
		if err != nil {
			return nil, warnings, err
		}
		log.Debug("loaded page", "page", n,
			"horizontal", len(page.HorizontalRulings),
			"vertical", len(page.VerticalRulings),
			"chunks", len(page.Text))
		pages = append(pages, page)
	}
	return pages, warnings, nil
}

// process runs fn for every page on up to options.workers goroutines. Each
// call gets its own detector. The first error cancels the pages not yet
// started; a page already running is finished, never interrupted.
func (e *Extractor) process(ctx context.Context, pages []*model.Page, fn func(i int, d tables.Detector, page *model.Page) error) error {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.workers)

	for i, page := range pages {
		i, page := i, page
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			d := tables.NewDetector(e.options.detector)
			if d == nil {
				return fmt.Errorf("%w: %q", ErrUnknownDetector, e.options.detector)
			}
			if err := d.Configure(e.options.config); err != nil {
				return err
			}
			return fn(i, d, page)
		})
	}
	return g.Wait()
}
