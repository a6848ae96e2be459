package model

// Document collects the tables extracted from a set of pages.
type Document struct {
	Source string // File the pages were read from, if any
	Pages  []*Page
	Tables []*Table
}

// NewDocument creates a new empty document
func NewDocument(source string) *Document {
	return &Document{Source: source}
}

// AddPage adds a page together with the tables found on it
func (d *Document) AddPage(page *Page, tables ...*Table) {
	d.Pages = append(d.Pages, page)
	for _, t := range tables {
		if t.PageNumber == 0 {
			t.PageNumber = page.Number
		}
		d.Tables = append(d.Tables, t)
	}
}

// GetPage returns a page by number (1-indexed), or nil
func (d *Document) GetPage(number int) *Page {
	for _, p := range d.Pages {
		if p.Number == number {
			return p
		}
	}
	return nil
}

// PageCount returns the number of pages
func (d *Document) PageCount() int {
	return len(d.Pages)
}

// TablesOnPage returns the tables found on the given page, in reading order
func (d *Document) TablesOnPage(number int) []*Table {
	var tables []*Table
	for _, t := range d.Tables {
		if t.PageNumber == number {
			tables = append(tables, t)
		}
	}
	return tables
}
