package tables

import (
	"github.com/tsawler/rulegrid/model"
	"github.com/tsawler/rulegrid/spatial"
)

// SpreadsheetName is the registry name of the ruling-based detector
const SpreadsheetName = "spreadsheet"

// SpreadsheetDetector finds tables drawn with ruling lines. Detection runs in
// three steps: find the cells enclosed by the rulings, group adjacent cells
// into regions, and sort the regions in reading order so tables higher on the
// page come first.
//
// FindCells and Group may be replaced; when nil, the defaults built from the
// detector's Config are used. The detector keeps no per-page state.
type SpreadsheetDetector struct {
	FindCells CellFinder
	Group     CellGrouper

	config Config
}

// NewSpreadsheetDetector creates a ruling-based detector with default configuration
func NewSpreadsheetDetector() *SpreadsheetDetector {
	return &SpreadsheetDetector{config: DefaultConfig()}
}

// Name returns the detector's identifier ("spreadsheet").
func (d *SpreadsheetDetector) Name() string {
	return SpreadsheetName
}

// Configure sets the detector configuration.
func (d *SpreadsheetDetector) Configure(config Config) error {
	d.config = config
	return nil
}

func (d *SpreadsheetDetector) cellFinder() CellFinder {
	if d.FindCells != nil {
		return d.FindCells
	}
	return NewCellFinder(d.config.RulingTolerance, d.config.MinCellSize)
}

func (d *SpreadsheetDetector) grouper() CellGrouper {
	if d.Group != nil {
		return d.Group
	}
	return NewCellGrouper(d.config.AdjacencyTolerance)
}

// Detect returns the table regions on page, top of the page first. Errors
// from the cell finder or grouper are returned as they are.
func (d *SpreadsheetDetector) Detect(page *model.Page) ([]model.BBox, error) {
	_, regions, err := d.detect(page)
	return regions, err
}

func (d *SpreadsheetDetector) detect(page *model.Page) ([]model.BBox, []model.BBox, error) {
	log := d.config.logger().With("detector", SpreadsheetName, "page", page.Number)

	cells, err := d.cellFinder()(page.HorizontalRulings, page.VerticalRulings)
	if err != nil {
		return nil, nil, err
	}
	log.Debug("found cells", "horizontal", len(page.HorizontalRulings), "vertical", len(page.VerticalRulings), "cells", len(cells))

	regions, err := d.grouper()(cells)
	if err != nil {
		return nil, nil, err
	}

	model.SortReadingOrder(regions)
	log.Debug("grouped cells", "regions", len(regions))
	return cells, regions, nil
}

// ExtractTables detects the ruled tables on page and fills each one with the
// text lying inside its cells. Row and column indices come from the distinct
// top and left edges of the cells in the region.
func (d *SpreadsheetDetector) ExtractTables(page *model.Page) ([]*model.Table, error) {
	cells, regions, err := d.detect(page)
	if err != nil || len(regions) == 0 {
		return nil, err
	}

	cellIndex := spatial.New[model.BBox]()
	for _, c := range cells {
		cellIndex.Add(c)
	}
	textIndex := spatial.New[model.TextChunk]()
	for _, c := range page.Text {
		textIndex.Add(c)
	}

	tol := d.config.AdjacencyTolerance
	tables := make([]*model.Table, 0, len(regions))
	for _, region := range regions {
		table, err := d.fillTable(region, cellIndex.Contained(region.Expand(tol)), textIndex)
		if err != nil {
			return nil, err
		}
		table.PageNumber = page.Number
		tables = append(tables, table)
	}

	d.config.logger().Debug("extracted tables", "detector", SpreadsheetName, "page", page.Number, "tables", len(tables))
	return tables, nil
}

func (d *SpreadsheetDetector) fillTable(region model.BBox, cells []model.BBox, text *spatial.Index[model.TextChunk]) (*model.Table, error) {
	tol := d.config.RulingTolerance

	tops := make([]float64, len(cells))
	lefts := make([]float64, len(cells))
	for i, c := range cells {
		tops[i] = c.Top()
		lefts[i] = c.Left()
	}
	rowEdges := clusterValues(tops, tol)
	colEdges := clusterValues(lefts, tol)

	table := model.NewTable(SpreadsheetName)
	for _, cell := range cells {
		var content model.TextContainer = model.NewTextChunk("", cell)
		if words := mergeChunks(text.Contained(cell.Expand(tol))); words != nil {
			content = content.Merge(words)
		}
		row, col := nearest(rowEdges, cell.Top()), nearest(colEdges, cell.Left())
		if err := table.Add(content, row, col); err != nil {
			return nil, err
		}
	}
	return table, nil
}

// mergeChunks merges chunks already sorted in reading order. It returns nil
// for an empty slice.
func mergeChunks(chunks []model.TextChunk) model.TextContainer {
	if len(chunks) == 0 {
		return nil
	}
	var out model.TextContainer = chunks[0]
	for _, c := range chunks[1:] {
		out = out.Merge(c)
	}
	return out
}
