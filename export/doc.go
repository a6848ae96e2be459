// Package export writes extracted tables in text formats.
//
// Supported formats are CSV, Markdown, HTML, aligned plain text and JSON:
//
//	err := export.Write(os.Stdout, tables, export.Markdown)
//
// [ParseFormat] maps a flag value to a [Format] and [DetectFormat] picks one
// from an output file name.
package export
