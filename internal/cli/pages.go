package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tsawler/rulegrid"
	"github.com/tsawler/rulegrid/export"
	"github.com/tsawler/rulegrid/reader"
)

// formatEnv overrides the default output format when --format is not given
const formatEnv = "RULEGRID_FORMAT"

// parsePages parses a page list such as "1,3-5,8" into page numbers, in
// the order given. Pages past count are rejected before any range is
// expanded.
func parsePages(list string, count int) ([]int, error) {
	var pages []int
	for _, part := range strings.Split(list, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		lo, hi, isRange := strings.Cut(part, "-")
		start, err := parsePage(lo, count)
		if err != nil {
			return nil, err
		}
		end := start
		if isRange {
			if end, err = parsePage(hi, count); err != nil {
				return nil, err
			}
		}
		if start > end {
			return nil, fmt.Errorf("invalid page range %q", part)
		}
		for p := start; p <= end; p++ {
			pages = append(pages, p)
		}
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no pages in %q", list)
	}
	return pages, nil
}

func parsePage(s string, count int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid page number %q", s)
	}
	if n > count {
		return 0, fmt.Errorf("page %d out of range (1-%d): %w", n, count, reader.ErrPageOutOfRange)
	}
	return n, nil
}

// outputFormat picks the export format: the flag, then $RULEGRID_FORMAT,
// then the output file extension, then CSV.
func outputFormat(flag, output string) (export.Format, error) {
	if flag == "" {
		flag = os.Getenv(formatEnv)
	}
	if flag != "" {
		return export.ParseFormat(flag)
	}
	if f, ok := export.DetectFormat(output); ok {
		return f, nil
	}
	return export.CSV, nil
}

// newExtractor applies the shared page, detector and worker flags.
func newExtractor(cmd *cobra.Command, path, pages, detector string, workers int) (*rulegrid.Extractor, error) {
	ext := rulegrid.Open(path).Detector(detector).WithLogger(logger(cmd))
	if pages != "" {
		count, err := ext.PageCount()
		ext.Close()
		if err != nil {
			return nil, err
		}
		numbers, err := parsePages(pages, count)
		if err != nil {
			return nil, err
		}
		ext = ext.Pages(numbers...)
	}
	if workers > 0 {
		ext = ext.Workers(workers)
	}
	return ext, nil
}
