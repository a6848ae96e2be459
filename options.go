package rulegrid

import (
	"log/slog"
	"runtime"

	"github.com/tsawler/rulegrid/tables"
)

// ExtractOptions holds configuration for detection and extraction.
type ExtractOptions struct {
	// Page selection (1-indexed, nil means all pages)
	pages []int

	// Registered name of the detector to run on each page
	detector string

	// Maximum number of pages processed at once
	workers int

	// Detector configuration shared by every worker
	config tables.Config
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		pages:    nil,
		detector: tables.SpreadsheetName,
		workers:  runtime.GOMAXPROCS(0),
		config:   tables.DefaultConfig(),
	}
}

// clone creates a deep copy of ExtractOptions.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := ExtractOptions{
		detector: o.detector,
		workers:  o.workers,
		config:   o.config,
	}

	// Deep copy pages slice
	if o.pages != nil {
		newOpts.pages = make([]int, len(o.pages))
		copy(newOpts.pages, o.pages)
	}

	return newOpts
}

func (o ExtractOptions) logger() *slog.Logger {
	if o.config.Logger != nil {
		return o.config.Logger
	}
	return discardLogger
}
