// Package tables finds tables on a page and fills them with the page text.
//
// # Detectors
//
// Table detection is performed by types implementing the [Detector] interface.
// The package provides:
//
//   - [SpreadsheetDetector] - finds tables drawn with ruling lines
//   - [GeometricDetector] - uses spatial analysis of text positions
//
// Detectors are registered globally and can be retrieved by name:
//
//	detector := tables.GetDetector("spreadsheet")
//	regions, err := detector.Detect(page)
//
// Registered detectors are shared. Use [NewDetector] for an instance that can
// be configured without affecting other callers.
//
// # Spreadsheet Detection
//
// The [SpreadsheetDetector] runs three steps:
//
//  1. A [CellFinder] turns the page rulings into cells
//  2. A [CellGrouper] merges adjacent cells into table regions
//  3. The regions are sorted in reading order
//
// Both steps can be replaced by setting the detector's FindCells and Group
// fields. Their errors are returned to the caller unchanged.
//
// # Geometric Detection
//
// The [GeometricDetector] clusters text chunks vertically, infers row and
// column boundaries from aligned edges, and keeps clusters whose confidence
// reaches Config.MinConfidence. Confidence is based on:
//
//   - Grid regularity (30%)
//   - Alignment quality (30%)
//   - Line presence (20%)
//   - Cell occupancy (20%)
//
// # Configuration
//
//	config := tables.DefaultConfig()
//	config.MinRows = 3
//	config.Logger = slog.Default()
//	detector.Configure(config)
package tables
