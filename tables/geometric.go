package tables

import (
	"math"
	"sort"

	"github.com/tsawler/rulegrid/model"
)

// GeometricName is the registry name of the text-alignment detector
const GeometricName = "geometric"

// GeometricDetector implements table detection using geometric heuristics.
// It analyzes spatial relationships between text chunks to identify tabular
// structures based on alignment patterns, grid regularity, and visible rulings.
// It needs no rulings, so it also finds tables drawn without borders.
type GeometricDetector struct {
	config Config
}

// NewGeometricDetector creates a new geometric table detector with default configuration.
func NewGeometricDetector() *GeometricDetector {
	return &GeometricDetector{
		config: DefaultConfig(),
	}
}

// Name returns the detector's identifier ("geometric").
func (d *GeometricDetector) Name() string {
	return GeometricName
}

// Configure sets the detector configuration.
func (d *GeometricDetector) Configure(config Config) error {
	d.config = config
	return nil
}

// textGrid holds the row and column boundaries inferred for a text cluster.
// Both slices are ascending: rows top-to-bottom, cols left-to-right.
type textGrid struct {
	rows []float64
	cols []float64
}

func (g textGrid) rowCount() int { return max(len(g.rows)-1, 0) }
func (g textGrid) colCount() int { return max(len(g.cols)-1, 0) }

func (g textGrid) bbox() model.BBox {
	return model.NewBBoxFromEdges(g.cols[0], g.rows[0], g.cols[len(g.cols)-1], g.rows[len(g.rows)-1])
}

// candidate is a text cluster that passed the structural checks
type candidate struct {
	grid       textGrid
	chunks     []model.TextChunk
	confidence float64
}

// Detect returns the regions of the text clusters that look tabular, in
// reading order.
func (d *GeometricDetector) Detect(page *model.Page) ([]model.BBox, error) {
	candidates := d.candidates(page)
	regions := make([]model.BBox, len(candidates))
	for i, c := range candidates {
		regions[i] = c.grid.bbox()
	}
	return regions, nil
}

// ExtractTables finds tabular text clusters and places each chunk in the cell
// under its center. Chunks that land in the same cell are merged.
func (d *GeometricDetector) ExtractTables(page *model.Page) ([]*model.Table, error) {
	var tables []*model.Table
	for _, c := range d.candidates(page) {
		table := model.NewTable(GeometricName)
		table.PageNumber = page.Number
		for _, chunk := range c.chunks {
			row, col := c.grid.findCell(chunk.BBox.Center())
			if row < 0 || col < 0 {
				continue
			}
			if err := table.Add(chunk, row, col); err != nil {
				return nil, err
			}
		}
		tables = append(tables, table)
	}
	return tables, nil
}

func (d *GeometricDetector) candidates(page *model.Page) []candidate {
	if len(page.Text) == 0 {
		return nil
	}
	log := d.config.logger().With("detector", GeometricName, "page", page.Number)

	rulings := append(append([]model.Ruling(nil), page.HorizontalRulings...), page.VerticalRulings...)

	clusters := d.clusterChunks(page.Text)
	log.Debug("clustered text", "chunks", len(page.Text), "clusters", len(clusters))

	var out []candidate
	for _, cluster := range clusters {
		if c, ok := d.detectInCluster(cluster, rulings); ok {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return model.CompareReadingOrder(out[i].grid.bbox(), out[j].grid.bbox()) < 0
	})
	log.Debug("accepted clusters", "tables", len(out))
	return out
}

// clusterChunks groups chunks that are vertically close. A vertical gap
// larger than MaxClusterGap starts a new cluster.
func (d *GeometricDetector) clusterChunks(chunks []model.TextChunk) [][]model.TextChunk {
	sorted := make([]model.TextChunk, len(chunks))
	copy(sorted, chunks)

	// Sort by top edge (top to bottom)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BBox.Top() < sorted[j].BBox.Top()
	})

	var clusters [][]model.TextChunk
	current := []model.TextChunk{sorted[0]}
	bottom := sorted[0].BBox.Bottom()

	for _, c := range sorted[1:] {
		if c.BBox.Top()-bottom > d.config.MaxClusterGap {
			clusters = append(clusters, current)
			current = nil
		}
		current = append(current, c)
		bottom = math.Max(bottom, c.BBox.Bottom())
	}
	return append(clusters, current)
}

// detectInCluster builds a grid for a cluster and scores it.
func (d *GeometricDetector) detectInCluster(chunks []model.TextChunk, rulings []model.Ruling) (candidate, bool) {
	if len(chunks) < d.config.MinRows*d.config.MinCols {
		return candidate{}, false
	}

	grid, ok := d.buildGrid(chunks)
	if !ok || grid.rowCount() < d.config.MinRows || grid.colCount() < d.config.MinCols {
		return candidate{}, false
	}

	confidence := d.calculateConfidence(grid, chunks, rulings)
	if confidence < d.config.MinConfidence {
		return candidate{}, false
	}
	return candidate{grid: grid, chunks: chunks, confidence: confidence}, true
}

// buildGrid clusters the top and left edges of the chunks into row and
// column boundaries, closed by the lowest bottom and rightmost right edge.
func (d *GeometricDetector) buildGrid(chunks []model.TextChunk) (textGrid, bool) {
	ys := make([]float64, 0, len(chunks))
	xs := make([]float64, 0, len(chunks))
	bottom, right := math.Inf(-1), math.Inf(-1)
	for _, c := range chunks {
		ys = append(ys, c.BBox.Top())
		xs = append(xs, c.BBox.Left())
		bottom = math.Max(bottom, c.BBox.Bottom())
		right = math.Max(right, c.BBox.Right())
	}

	tol := d.config.AlignmentTolerance
	grid := textGrid{
		rows: closeBoundaries(clusterValues(ys, tol), bottom, tol),
		cols: closeBoundaries(clusterValues(xs, tol), right, tol),
	}
	if len(grid.rows) < d.config.MinRows+1 || len(grid.cols) < d.config.MinCols+1 {
		return textGrid{}, false
	}
	return grid, true
}

// closeBoundaries appends the closing edge unless it sits on the last boundary.
func closeBoundaries(edges []float64, end, tolerance float64) []float64 {
	if len(edges) > 0 && end-edges[len(edges)-1] <= tolerance {
		edges[len(edges)-1] = end
		return edges
	}
	return append(edges, end)
}

// calculateConfidence computes a confidence score (0.0-1.0) for the detected table.
// The score combines grid regularity (30%), alignment quality (30%), ruling
// presence (20%), and cell occupancy (20%). Without UseLines the ruling share
// is left out and the rest is rescaled.
func (d *GeometricDetector) calculateConfidence(grid textGrid, chunks []model.TextChunk, rulings []model.Ruling) float64 {
	score := calculateGridRegularity(grid)*0.3 +
		d.calculateAlignmentQuality(chunks, grid)*0.3 +
		calculateCellOccupancy(chunks, grid)*0.2
	maxScore := 0.8

	if d.config.UseLines {
		score += d.calculateLineScore(grid, rulings) * 0.2
		maxScore += 0.2
	}

	return score / maxScore
}

// calculateGridRegularity scores how even the row heights and column widths
// are, using their coefficient of variation.
func calculateGridRegularity(grid textGrid) float64 {
	if grid.rowCount() < 2 || grid.colCount() < 2 {
		return 0
	}

	rowScore := math.Max(0, 1-coefficientOfVariation(gaps(grid.rows)))
	colScore := math.Max(0, 1-coefficientOfVariation(gaps(grid.cols)))

	return (rowScore + colScore) / 2
}

// calculateAlignmentQuality measures the fraction of chunks with at least two
// edges near a grid line.
func (d *GeometricDetector) calculateAlignmentQuality(chunks []model.TextChunk, grid textGrid) float64 {
	aligned := 0
	for _, c := range chunks {
		count := 0
		for _, near := range []bool{
			d.isNearGridLine(c.BBox.Left(), grid.cols),
			d.isNearGridLine(c.BBox.Right(), grid.cols),
			d.isNearGridLine(c.BBox.Top(), grid.rows),
			d.isNearGridLine(c.BBox.Bottom(), grid.rows),
		} {
			if near {
				count++
			}
		}
		if count >= 2 {
			aligned++
		}
	}
	return float64(aligned) / float64(len(chunks))
}

// isNearGridLine reports whether a value is within 2x the alignment tolerance
// of any grid line.
func (d *GeometricDetector) isNearGridLine(value float64, lines []float64) bool {
	for _, line := range lines {
		if math.Abs(value-line) < d.config.AlignmentTolerance*2 {
			return true
		}
	}
	return false
}

// calculateLineScore measures the fraction of grid boundaries backed by a
// drawn ruling, averaging horizontal and vertical coverage.
func (d *GeometricDetector) calculateLineScore(grid textGrid, rulings []model.Ruling) float64 {
	backed := func(positions []float64, want model.Orientation) float64 {
		hits := 0
		for _, p := range positions {
			for _, r := range rulings {
				if r.Orientation() == want && math.Abs(r.Position()-p) < d.config.AlignmentTolerance {
					hits++
					break
				}
			}
		}
		return float64(hits) / float64(len(positions))
	}
	return (backed(grid.rows, model.Horizontal) + backed(grid.cols, model.Vertical)) / 2
}

// calculateCellOccupancy measures the fraction of grid cells that contain at
// least one chunk center.
func calculateCellOccupancy(chunks []model.TextChunk, grid textGrid) float64 {
	occupied := make(map[model.CellPosition]bool)
	for _, c := range chunks {
		if row, col := grid.findCell(c.BBox.Center()); row >= 0 && col >= 0 {
			occupied[model.CellPosition{Row: row, Col: col}] = true
		}
	}
	return float64(len(occupied)) / float64(grid.rowCount()*grid.colCount())
}

// findCell returns the row and column containing p, or -1 for both if p is
// outside the grid.
func (g textGrid) findCell(p model.Point) (row, col int) {
	row = sort.SearchFloat64s(g.rows, p.Y) - 1
	col = sort.SearchFloat64s(g.cols, p.X) - 1
	if p.Y == g.rows[0] {
		row = 0
	}
	if p.X == g.cols[0] {
		col = 0
	}
	if row < 0 || row >= g.rowCount() || col < 0 || col >= g.colCount() {
		return -1, -1
	}
	return row, col
}
