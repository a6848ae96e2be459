package tables

import (
	"io"
	"log/slog"
	"sort"
	"sync"

	"github.com/tsawler/rulegrid/model"
)

// Detector is the interface for table detection algorithms
type Detector interface {
	// Detect returns candidate table regions on a page, in reading order
	Detect(page *model.Page) ([]model.BBox, error)

	// ExtractTables detects tables on a page and fills them with the page text
	ExtractTables(page *model.Page) ([]*model.Table, error)

	// Name returns the detector name
	Name() string

	// Configure sets detector parameters
	Configure(config Config) error
}

// Config holds detector configuration
type Config struct {
	// Distance (points) by which rulings are lengthened before intersecting
	// them, and within which parallel rulings are merged
	RulingTolerance float64

	// Cells narrower or shorter than this (points) are discarded
	MinCellSize float64

	// Gap (points) up to which two cells still count as adjacent
	AdjacencyTolerance float64

	// Minimum rows for a valid table (geometric detection)
	MinRows int

	// Minimum columns for a valid table (geometric detection)
	MinCols int

	// Minimum confidence threshold (0-1, geometric detection)
	MinConfidence float64

	// Whether geometric detection scores drawn rulings
	UseLines bool

	// Tolerance for row/column alignment (points)
	AlignmentTolerance float64

	// Vertical gap (points) that separates text clusters
	MaxClusterGap float64

	// Logger receives debug records for each detection step. Nil discards.
	Logger *slog.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		RulingTolerance:    2.0,
		MinCellSize:        2.0,
		AdjacencyTolerance: 1.0,
		MinRows:            2,
		MinCols:            2,
		MinConfidence:      0.5,
		UseLines:           true,
		AlignmentTolerance: 2.0,
		MaxClusterGap:      50.0,
	}
}

func (c Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return discardLogger
}

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

// DetectorRegistry holds registered detectors
type DetectorRegistry struct {
	mu        sync.RWMutex
	detectors map[string]Detector
}

// NewRegistry creates a new detector registry
func NewRegistry() *DetectorRegistry {
	return &DetectorRegistry{
		detectors: make(map[string]Detector),
	}
}

// Register registers a detector
func (r *DetectorRegistry) Register(detector Detector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.detectors[detector.Name()] = detector
}

// Get retrieves a detector by name
func (r *DetectorRegistry) Get(name string) Detector {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.detectors[name]
}

// List returns all registered detector names, sorted
func (r *DetectorRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.detectors))
	for name := range r.detectors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Global registry
var globalRegistry = NewRegistry()

// RegisterDetector registers a detector globally
func RegisterDetector(detector Detector) {
	globalRegistry.Register(detector)
}

// GetDetector retrieves a detector by name
func GetDetector(name string) Detector {
	return globalRegistry.Get(name)
}

// ListDetectors returns all registered detector names
func ListDetectors() []string {
	return globalRegistry.List()
}

// NewDetector returns a fresh, unshared detector for name, or nil if the
// name is unknown. Use it when each worker needs its own configuration.
func NewDetector(name string) Detector {
	switch name {
	case SpreadsheetName:
		return NewSpreadsheetDetector()
	case GeometricName:
		return NewGeometricDetector()
	}
	return nil
}

func init() {
	// Register default detectors
	RegisterDetector(NewSpreadsheetDetector())
	RegisterDetector(NewGeometricDetector())
}
