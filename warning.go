package rulegrid

import (
	"fmt"
	"strings"
)

// Warning describes a non-fatal problem: the page was skipped or its results
// may be incomplete, but processing of the other pages continued.
type Warning struct {
	Page    int
	Message string
	Err     error
}

// String formats the warning as "page N: message: err".
func (w Warning) String() string {
	var sb strings.Builder
	if w.Page > 0 {
		fmt.Fprintf(&sb, "page %d: ", w.Page)
	}
	sb.WriteString(w.Message)
	if w.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(w.Err.Error())
	}
	return sb.String()
}

// Unwrap returns the underlying error, if any
func (w Warning) Unwrap() error { return w.Err }

// FormatWarnings joins warnings into a single line for logging.
func FormatWarnings(warnings []Warning) string {
	parts := make([]string, len(warnings))
	for i, w := range warnings {
		parts[i] = w.String()
	}
	return strings.Join(parts, "; ")
}
