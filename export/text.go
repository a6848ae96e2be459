package export

import (
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/tsawler/rulegrid/model"
)

// layout holds the column widths and line-split cells of one table.
type layout struct {
	cells     [][][]string // cells[row][col] = lines of the cell text
	colWidths []int
}

func newLayout(t *model.Table) *layout {
	texts := cellTexts(t)
	l := &layout{
		cells:     make([][][]string, len(texts)),
		colWidths: make([]int, t.ColCount()),
	}
	for i := range l.colWidths {
		l.colWidths[i] = 1
	}

	for r, row := range texts {
		l.cells[r] = make([][]string, len(row))
		for c, text := range row {
			lines := strings.Split(text, "\n")
			l.cells[r][c] = lines
			for _, line := range lines {
				if w := runewidth.StringWidth(line); w > l.colWidths[c] {
					l.colWidths[c] = w
				}
			}
		}
	}
	return l
}

func (l *layout) border() string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range l.colWidths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	return sb.String()
}

// row renders one table row, which spans as many lines as its tallest cell.
func (l *layout) row(r int) string {
	height := 1
	for _, lines := range l.cells[r] {
		if len(lines) > height {
			height = len(lines)
		}
	}

	var sb strings.Builder
	for line := 0; line < height; line++ {
		sb.WriteString("|")
		for c, lines := range l.cells[r] {
			text := ""
			if line < len(lines) {
				text = lines[line]
			}
			sb.WriteString(" ")
			sb.WriteString(runewidth.FillRight(text, l.colWidths[c]))
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func (l *layout) render() string {
	var sb strings.Builder
	sb.WriteString(l.border())
	sb.WriteString("\n")
	for r := range l.cells {
		sb.WriteString(l.row(r))
		sb.WriteString(l.border())
		sb.WriteString("\n")
	}
	return sb.String()
}

func writeText(w io.Writer, tables []*model.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, newLayout(t).render()); err != nil {
			return err
		}
	}
	return nil
}
