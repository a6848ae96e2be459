package model

import (
	"errors"
	"strings"
	"testing"
)

func chunk(text string, x, y float64) TextChunk {
	return NewTextChunk(text, NewBBox(x, y, 20, 10))
}

func TestTableEmpty(t *testing.T) {
	table := NewTable("test")

	if rows := table.Rows(); len(rows) != 0 {
		t.Errorf("Rows() on empty table returned %d rows", len(rows))
	}
	if c := table.Cell(0, 0); c != TextContainer(EmptyChunk) {
		t.Errorf("Cell(0,0) = %+v, want EmptyChunk", c)
	}
	if table.RowCount() != 0 || table.ColCount() != 0 {
		t.Errorf("shape = %dx%d, want 0x0", table.RowCount(), table.ColCount())
	}
	if table.ToMarkdown() != "" {
		t.Error("expected empty markdown")
	}
}

func TestTableZeroValue(t *testing.T) {
	var table Table
	if err := table.Add(chunk("a", 0, 0), 0, 0); err != nil {
		t.Fatalf("Add() on zero Table: %v", err)
	}
	if table.Cell(0, 0).GetText() != "a" {
		t.Errorf("Cell(0,0) = %q", table.Cell(0, 0).GetText())
	}
}

func TestTableAddGrowsShape(t *testing.T) {
	table := NewTable("test")
	if err := table.Add(chunk("x", 0, 0), 2, 3); err != nil {
		t.Fatal(err)
	}
	if table.RowCount() != 3 || table.ColCount() != 4 {
		t.Errorf("shape = %dx%d, want 3x4", table.RowCount(), table.ColCount())
	}

	_ = table.Add(chunk("y", 0, 0), 0, 1)
	if table.RowCount() != 3 || table.ColCount() != 4 {
		t.Errorf("smaller indices shrank shape to %dx%d", table.RowCount(), table.ColCount())
	}
}

func TestTableAddExpandsBounds(t *testing.T) {
	table := NewTable("test")
	_ = table.Add(NewTextChunk("a", NewBBoxFromEdges(10, 10, 20, 20)), 0, 0)
	_ = table.Add(NewTextChunk("b", NewBBoxFromEdges(50, 5, 60, 40)), 0, 1)

	want := NewBBoxFromEdges(10, 5, 60, 40)
	if got := table.BoundingBox(); got != want {
		t.Errorf("BoundingBox() = %+v, want %+v", got, want)
	}
}

func TestTableAddMergesCollisions(t *testing.T) {
	table := NewTable("test")
	c1 := NewTextChunk("first", NewBBox(0, 0, 30, 10))
	c2 := NewTextChunk("second", NewBBox(40, 0, 30, 10))

	_ = table.Add(c1, 2, 3)
	_ = table.Add(c2, 2, 3)

	got := table.Cell(2, 3)
	if got.BoundingBox() != c1.BBox.Union(c2.BBox) {
		t.Errorf("merged bbox = %+v, want %+v", got.BoundingBox(), c1.BBox.Union(c2.BBox))
	}
	if !strings.Contains(got.GetText(), "first") || !strings.Contains(got.GetText(), "second") {
		t.Errorf("merged text %q lost content", got.GetText())
	}
	if table.RowCount() < 3 || table.ColCount() < 4 {
		t.Errorf("shape = %dx%d, want at least 3x4", table.RowCount(), table.ColCount())
	}
	if table.Len() != 1 {
		t.Errorf("Len() = %d, want 1", table.Len())
	}
}

func TestTableCollisionOrderIndependent(t *testing.T) {
	a := NewTextChunk("a", NewBBox(0, 0, 10, 10))
	b := NewTextChunk("b", NewBBox(20, 0, 10, 10))

	t1 := NewTable("test")
	_ = t1.Add(a, 0, 0)
	_ = t1.Add(b, 0, 0)

	t2 := NewTable("test")
	_ = t2.Add(b, 0, 0)
	_ = t2.Add(a, 0, 0)

	if t1.Cell(0, 0).GetText() != t2.Cell(0, 0).GetText() {
		t.Errorf("collision text depends on order: %q vs %q", t1.Cell(0, 0).GetText(), t2.Cell(0, 0).GetText())
	}
	if t1.Cell(0, 0).BoundingBox() != t2.Cell(0, 0).BoundingBox() {
		t.Error("collision bbox depends on order")
	}
}

func TestTableNegativePosition(t *testing.T) {
	table := NewTable("test")
	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := table.Add(chunk("x", 0, 0), tt.row, tt.col)
			if !errors.Is(err, ErrNegativePosition) {
				t.Errorf("Add(%d, %d) error = %v, want ErrNegativePosition", tt.row, tt.col, err)
			}
		})
	}
	if table.Len() != 0 || table.RowCount() != 0 {
		t.Error("rejected Add modified the table")
	}
}

func TestTableRowsDense(t *testing.T) {
	table := NewTable("test")
	_ = table.Add(chunk("a", 0, 0), 0, 0)
	_ = table.Add(chunk("d", 30, 20), 1, 1)

	rows := table.Rows()
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for i, row := range rows {
		if len(row) != 2 {
			t.Fatalf("len(rows[%d]) = %d, want 2", i, len(row))
		}
	}
	if rows[0][0].GetText() != "a" || rows[1][1].GetText() != "d" {
		t.Errorf("populated cells wrong: %q, %q", rows[0][0].GetText(), rows[1][1].GetText())
	}
	if rows[0][1] != TextContainer(EmptyChunk) || rows[1][0] != TextContainer(EmptyChunk) {
		t.Error("unpopulated cells should be EmptyChunk")
	}
}

func TestTableRowsMemoized(t *testing.T) {
	table := NewTable("test")
	_ = table.Add(chunk("a", 0, 0), 0, 0)

	first := table.Rows()
	second := table.Rows()
	if &first[0][0] != &second[0][0] {
		t.Error("Rows() recomputed without an intervening Add")
	}

	_ = table.Add(chunk("b", 30, 0), 0, 1)
	third := table.Rows()
	if len(third[0]) != 2 || third[0][1].GetText() != "b" {
		t.Errorf("Rows() after Add does not show the new cell: %+v", third)
	}
	if third[0][0] != first[0][0] {
		t.Error("untouched cell changed after Add")
	}
}

func TestTableCellIgnoresCache(t *testing.T) {
	table := NewTable("test")
	_ = table.Add(chunk("a", 0, 0), 0, 0)
	_ = table.Rows()
	_ = table.Add(chunk("b", 0, 20), 1, 0)

	if table.Cell(1, 0).GetText() != "b" {
		t.Errorf("Cell(1,0) = %q, want %q", table.Cell(1, 0).GetText(), "b")
	}
}

func TestTablePositions(t *testing.T) {
	table := NewTable("test")
	_ = table.Add(chunk("c", 0, 0), 1, 0)
	_ = table.Add(chunk("b", 0, 0), 0, 2)
	_ = table.Add(chunk("a", 0, 0), 0, 0)

	want := []CellPosition{{0, 0}, {0, 2}, {1, 0}}
	got := table.Positions()
	if len(got) != len(want) {
		t.Fatalf("Positions() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Positions()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTableExports(t *testing.T) {
	table := NewTable("test")
	_ = table.Add(chunk("Name", 0, 0), 0, 0)
	_ = table.Add(chunk("Qty", 30, 0), 0, 1)
	_ = table.Add(chunk("Nuts, bolts", 0, 20), 1, 0)
	_ = table.Add(chunk("4", 30, 20), 1, 1)

	wantMD := "| Name | Qty |\n|---|---|\n| Nuts, bolts | 4 |\n"
	if got := table.ToMarkdown(); got != wantMD {
		t.Errorf("ToMarkdown() = %q, want %q", got, wantMD)
	}

	wantCSV := "Name,Qty\n\"Nuts, bolts\",4\n"
	if got := table.ToCSV(); got != wantCSV {
		t.Errorf("ToCSV() = %q, want %q", got, wantCSV)
	}

	wantText := "Name\tQty\nNuts, bolts\t4\n"
	if got := table.GetText(); got != wantText {
		t.Errorf("GetText() = %q, want %q", got, wantText)
	}
}

func TestDocumentTablesOnPage(t *testing.T) {
	doc := NewDocument("test.pdf")
	p1 := NewPage(100, 100)
	p1.Number = 1
	p2 := NewPage(100, 100)
	p2.Number = 2

	doc.AddPage(p1, NewTable("a"))
	doc.AddPage(p2, NewTable("b"), NewTable("c"))

	if doc.PageCount() != 2 {
		t.Errorf("PageCount() = %d, want 2", doc.PageCount())
	}
	if got := len(doc.TablesOnPage(2)); got != 2 {
		t.Errorf("TablesOnPage(2) returned %d tables, want 2", got)
	}
	if doc.GetPage(3) != nil {
		t.Error("GetPage(3) should be nil")
	}
}
