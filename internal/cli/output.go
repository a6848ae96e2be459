package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/tsawler/rulegrid"
	"github.com/tsawler/rulegrid/model"
)

var (
	// titleStyle for page headers
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("33"))

	// dimStyle for counts and geometry
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	// successStyle for files written
	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	// warnStyle for skipped pages
	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	// errorStyle for the final error line
	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196"))
)

func printWarnings(w io.Writer, warnings []rulegrid.Warning) {
	for _, warning := range warnings {
		fmt.Fprintln(w, warnStyle.Render("warning:"), warning.String())
	}
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func formatBox(b model.BBox) string {
	return fmt.Sprintf("x=%g y=%g w=%g h=%g", b.X, b.Y, b.Width, b.Height)
}
