package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format is an output format for tables.
type Format int

const (
	// CSV writes comma-separated values, one blank line between tables.
	CSV Format = iota
	// Markdown writes pipe tables with the first row as header.
	Markdown
	// HTML writes one <table> element per table.
	HTML
	// Text writes bordered tables aligned by display width.
	Text
	// JSON writes an array of tables with cell geometry.
	JSON
)

// String returns the flag name of the format
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case Markdown:
		return "markdown"
	case HTML:
		return "html"
	case Text:
		return "text"
	case JSON:
		return "json"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case JSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Formats lists every supported format name
func Formats() []string {
	return []string{CSV.String(), Markdown.String(), HTML.String(), Text.String(), JSON.String()}
}

// ParseFormat converts a format name such as "csv" or "md" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "html", "htm":
		return HTML, nil
	case "text", "txt":
		return Text, nil
	case "json":
		return JSON, nil
	}
	return 0, fmt.Errorf("unknown format %q (want one of %s)", name, strings.Join(Formats(), ", "))
}

// DetectFormat determines the format from a file name extension. It reports
// false for an unrecognized extension.
func DetectFormat(filename string) (Format, bool) {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return 0, false
	}
	f, err := ParseFormat(ext)
	return f, err == nil
}
