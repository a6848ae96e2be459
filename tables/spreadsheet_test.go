package tables

import (
	"bytes"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/tsawler/rulegrid/model"
)

func TestSpreadsheetDetector_Name(t *testing.T) {
	if name := NewSpreadsheetDetector().Name(); name != "spreadsheet" {
		t.Errorf("Name() = %q, want 'spreadsheet'", name)
	}
}

func TestSpreadsheetDetector_SortsRegions(t *testing.T) {
	d := NewSpreadsheetDetector()
	d.FindCells = func(h, v []model.Ruling) ([]model.BBox, error) { return nil, nil }
	d.Group = func(cells []model.BBox) ([]model.BBox, error) {
		return []model.BBox{box(0, 400, 100, 450), box(0, 100, 100, 150)}, nil
	}

	regions, err := d.Detect(model.NewPage(612, 792))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	want := []model.BBox{box(0, 100, 100, 150), box(0, 400, 100, 450)}
	if len(regions) != len(want) {
		t.Fatalf("Detect() returned %d regions, want %d", len(regions), len(want))
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Errorf("regions[%d] = %+v, want %+v", i, regions[i], want[i])
		}
	}
}

func TestSpreadsheetDetector_PassesRulingsAndCells(t *testing.T) {
	page := model.NewPage(612, 792)
	page.AddRuling(model.NewHorizontalRuling(10, 0, 100))
	page.AddRuling(model.NewVerticalRuling(50, 0, 100))

	cells := []model.BBox{box(0, 0, 10, 10)}
	var gotH, gotV int
	var gotCells []model.BBox

	d := NewSpreadsheetDetector()
	d.FindCells = func(h, v []model.Ruling) ([]model.BBox, error) {
		gotH, gotV = len(h), len(v)
		return cells, nil
	}
	d.Group = func(c []model.BBox) ([]model.BBox, error) {
		gotCells = c
		return c, nil
	}

	if _, err := d.Detect(page); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if gotH != 1 || gotV != 1 {
		t.Errorf("cell finder got %d horizontal and %d vertical rulings, want 1 and 1", gotH, gotV)
	}
	if len(gotCells) != 1 || gotCells[0] != cells[0] {
		t.Errorf("grouper got %+v, want %+v", gotCells, cells)
	}
}

func TestSpreadsheetDetector_Outline(t *testing.T) {
	page := model.NewPage(612, 792)
	h, v := gridRulings([]float64{72, 540}, []float64{100, 300})
	page.HorizontalRulings, page.VerticalRulings = h, v

	regions, err := NewSpreadsheetDetector().Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(regions) != 1 || regions[0] != box(72, 100, 540, 300) {
		t.Errorf("Detect() = %+v, want the outline", regions)
	}
}

func TestSpreadsheetDetector_NoRulings(t *testing.T) {
	regions, err := NewSpreadsheetDetector().Detect(model.NewPage(612, 792))
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	if len(regions) != 0 {
		t.Errorf("Detect() = %+v, want no regions", regions)
	}
}

func TestSpreadsheetDetector_Errors(t *testing.T) {
	errFind := errors.New("find failed")
	errGroup := errors.New("group failed")

	t.Run("finder", func(t *testing.T) {
		grouped := false
		d := NewSpreadsheetDetector()
		d.FindCells = func(h, v []model.Ruling) ([]model.BBox, error) { return nil, errFind }
		d.Group = func(c []model.BBox) ([]model.BBox, error) {
			grouped = true
			return nil, nil
		}
		regions, err := d.Detect(model.NewPage(100, 100))
		if !errors.Is(err, errFind) {
			t.Errorf("Detect() error = %v, want %v", err, errFind)
		}
		if regions != nil {
			t.Errorf("Detect() regions = %+v, want nil", regions)
		}
		if grouped {
			t.Error("grouper ran after the cell finder failed")
		}
	})

	t.Run("grouper", func(t *testing.T) {
		d := NewSpreadsheetDetector()
		d.Group = func(c []model.BBox) ([]model.BBox, error) { return nil, errGroup }
		if _, err := d.Detect(model.NewPage(100, 100)); !errors.Is(err, errGroup) {
			t.Errorf("Detect() error = %v, want %v", err, errGroup)
		}
		if _, err := d.ExtractTables(model.NewPage(100, 100)); !errors.Is(err, errGroup) {
			t.Errorf("ExtractTables() error = %v, want %v", err, errGroup)
		}
	})
}

func TestSpreadsheetDetector_TwoTables(t *testing.T) {
	page := model.NewPage(612, 792)
	for _, g := range [][2][]float64{
		{{0, 100, 200}, {300, 350, 400}},
		{{0, 100, 200}, {0, 50, 100}},
	} {
		h, v := gridRulings(g[0], g[1])
		page.HorizontalRulings = append(page.HorizontalRulings, h...)
		page.VerticalRulings = append(page.VerticalRulings, v...)
	}

	regions, err := NewSpreadsheetDetector().Detect(page)
	if err != nil {
		t.Fatalf("Detect() error = %v", err)
	}
	want := []model.BBox{box(0, 0, 200, 100), box(0, 300, 200, 400)}
	if len(regions) != len(want) {
		t.Fatalf("Detect() returned %d regions, want %d: %+v", len(regions), len(want), regions)
	}
	for i := range want {
		if regions[i] != want[i] {
			t.Errorf("regions[%d] = %+v, want %+v", i, regions[i], want[i])
		}
	}
}

func TestSpreadsheetDetector_ExtractTables(t *testing.T) {
	page := model.NewPage(612, 792)
	page.Number = 3
	h, v := gridRulings([]float64{0, 100, 200}, []float64{0, 50, 100})
	page.HorizontalRulings, page.VerticalRulings = h, v
	page.AddText(model.NewTextChunk("A", box(10, 10, 30, 20)))
	page.AddText(model.NewTextChunk("B", box(110, 10, 130, 20)))
	page.AddText(model.NewTextChunk("C", box(10, 60, 30, 70)))
	page.AddText(model.NewTextChunk("D2", box(110, 75, 130, 85)))
	page.AddText(model.NewTextChunk("D1", box(110, 60, 130, 70)))
	page.AddText(model.NewTextChunk("outside", box(300, 300, 340, 310)))

	tables, err := NewSpreadsheetDetector().ExtractTables(page)
	if err != nil {
		t.Fatalf("ExtractTables() error = %v", err)
	}
	if len(tables) != 1 {
		t.Fatalf("ExtractTables() returned %d tables, want 1", len(tables))
	}

	table := tables[0]
	if table.PageNumber != 3 {
		t.Errorf("PageNumber = %d, want 3", table.PageNumber)
	}
	if table.Method != "spreadsheet" {
		t.Errorf("Method = %q, want 'spreadsheet'", table.Method)
	}
	if table.RowCount() != 2 || table.ColCount() != 2 {
		t.Fatalf("shape = %dx%d, want 2x2", table.RowCount(), table.ColCount())
	}
	if got := table.BoundingBox(); got != box(0, 0, 200, 100) {
		t.Errorf("BoundingBox() = %+v, want 0,0-200,100", got)
	}

	want := [][]string{{"A", "B"}, {"C", "D1\nD2"}}
	for r, row := range want {
		for c, text := range row {
			if got := table.Cell(r, c).GetText(); got != text {
				t.Errorf("Cell(%d, %d) = %q, want %q", r, c, got, text)
			}
		}
	}
	if got := table.Cell(1, 1).BoundingBox(); got != box(100, 50, 200, 100) {
		t.Errorf("Cell(1, 1) bbox = %+v, want the ruled cell", got)
	}
}

func TestSpreadsheetDetector_EmptyCellsKeepShape(t *testing.T) {
	page := model.NewPage(612, 792)
	h, v := gridRulings([]float64{0, 100, 200}, []float64{0, 50, 100})
	page.HorizontalRulings, page.VerticalRulings = h, v

	tables, err := NewSpreadsheetDetector().ExtractTables(page)
	if err != nil {
		t.Fatalf("ExtractTables() error = %v", err)
	}
	if len(tables) != 1 || tables[0].Len() != 4 {
		t.Fatalf("ExtractTables() = %+v, want one table with 4 cells", tables)
	}
	if got := tables[0].GetText(); strings.TrimSpace(got) != "" {
		t.Errorf("GetText() = %q, want blank", got)
	}
}

func TestSpreadsheetDetector_Logs(t *testing.T) {
	var buf bytes.Buffer
	config := DefaultConfig()
	config.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	d := NewSpreadsheetDetector()
	if err := d.Configure(config); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	if _, err := d.Detect(model.NewPage(100, 100)); err != nil {
		t.Fatalf("Detect() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"found cells", "grouped cells", "detector=spreadsheet"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}
}
