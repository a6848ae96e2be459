package model

import (
	"errors"
	"sort"
	"strings"
)

// ErrNegativePosition is returned by Table.Add for a negative row or column.
var ErrNegativePosition = errors.New("model: negative table position")

// CellPosition addresses a table cell. Both indices are zero-based.
type CellPosition struct {
	Row int
	Col int
}

// Less orders positions row-major.
func (p CellPosition) Less(other CellPosition) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

// Table is a sparse, growable grid of text. Its bounding box is the union of
// every container ever added, and its shape is set by the largest row and
// column used so far.
//
// A Table is not safe for concurrent mutation.
type Table struct {
	Method     string // Name of the detector that produced the table
	PageNumber int    // 1-indexed page the table was found on

	bbox     BBox
	hasBBox  bool
	rowCount int
	colCount int
	cells    map[CellPosition]TextContainer

	// rows caches the dense view; nil means it must be rebuilt.
	rows [][]TextContainer
}

// NewTable creates an empty table
func NewTable(method string) *Table {
	return &Table{
		Method: method,
		cells:  make(map[CellPosition]TextContainer),
	}
}

func (t *Table) BoundingBox() BBox { return t.bbox }

// RowCount returns one more than the largest row passed to Add
func (t *Table) RowCount() int { return t.rowCount }

// ColCount returns one more than the largest column passed to Add
func (t *Table) ColCount() int { return t.colCount }

// Len returns the number of populated positions
func (t *Table) Len() int { return len(t.cells) }

// Add places content at (row, col). The table bounds grow to cover content,
// the shape grows to include the position, and if the position is already
// taken the incoming content is merged with the occupant so no text or area
// is lost. Any cached dense view is dropped.
func (t *Table) Add(content TextContainer, row, col int) error {
	if row < 0 || col < 0 {
		return ErrNegativePosition
	}
	if t.cells == nil {
		t.cells = make(map[CellPosition]TextContainer)
	}

	if t.hasBBox {
		t.bbox = t.bbox.Union(content.BoundingBox())
	} else {
		t.bbox = content.BoundingBox()
		t.hasBBox = true
	}

	if row+1 > t.rowCount {
		t.rowCount = row + 1
	}
	if col+1 > t.colCount {
		t.colCount = col + 1
	}

	pos := CellPosition{Row: row, Col: col}
	if old, ok := t.cells[pos]; ok {
		content = content.Merge(old)
	}
	t.cells[pos] = content

	t.rows = nil
	return nil
}

// Cell returns the content at (row, col), or EmptyChunk if nothing was added
// there. It always reads the live cells, never the cached rows.
func (t *Table) Cell(row, col int) TextContainer {
	if c, ok := t.cells[CellPosition{Row: row, Col: col}]; ok {
		return c
	}
	return EmptyChunk
}

// Rows returns the dense RowCount x ColCount view, with EmptyChunk at
// unpopulated positions. The result is cached until the next Add and must be
// treated as read-only.
func (t *Table) Rows() [][]TextContainer {
	if t.rows == nil {
		t.rows = t.computeRows()
	}
	return t.rows
}

func (t *Table) computeRows() [][]TextContainer {
	rows := make([][]TextContainer, t.rowCount)
	for i := range rows {
		row := make([]TextContainer, t.colCount)
		for j := range row {
			row[j] = t.Cell(i, j)
		}
		rows[i] = row
	}
	return rows
}

// Positions returns every populated position in row-major order
func (t *Table) Positions() []CellPosition {
	positions := make([]CellPosition, 0, len(t.cells))
	for p := range t.cells {
		positions = append(positions, p)
	}
	sort.Slice(positions, func(i, j int) bool {
		return positions[i].Less(positions[j])
	})
	return positions
}

// GetText returns the table as tab-separated lines
func (t *Table) GetText() string {
	var sb strings.Builder
	for _, row := range t.Rows() {
		for j, cell := range row {
			sb.WriteString(cell.GetText())
			if j < len(row)-1 {
				sb.WriteString("\t")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format, treating the first row
// as the header.
func (t *Table) ToMarkdown() string {
	rows := t.Rows()
	if len(rows) == 0 || t.colCount == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []TextContainer) {
		for _, cell := range row {
			sb.WriteString("| ")
			sb.WriteString(markdownEscaper.Replace(cell.GetText()))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	writeRow(rows[0])
	for range rows[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")
	for _, row := range rows[1:] {
		writeRow(row)
	}

	return sb.String()
}

var markdownEscaper = strings.NewReplacer("\n", " ", "|", `\|`)

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Rows() {
		for j, cell := range row {
			// Escape quotes and wrap in quotes if necessary
			text := cell.GetText()
			if strings.ContainsAny(text, ",\"\n") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
