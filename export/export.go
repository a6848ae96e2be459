package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/tsawler/rulegrid/model"
)

// Write writes tables to w in the given format.
func Write(w io.Writer, tables []*model.Table, format Format) error {
	switch format {
	case CSV:
		return writeCSV(w, tables)
	case Markdown:
		return writeMarkdown(w, tables)
	case HTML:
		return writeHTML(w, tables)
	case Text:
		return writeText(w, tables)
	case JSON:
		return writeJSON(w, tables)
	default:
		return fmt.Errorf("unsupported export format: %v", format)
	}
}

// cellTexts returns the dense text grid of a table
func cellTexts(t *model.Table) [][]string {
	rows := t.Rows()
	out := make([][]string, len(rows))
	for i, row := range rows {
		out[i] = make([]string, len(row))
		for j, cell := range row {
			out[i][j] = cell.GetText()
		}
	}
	return out
}

func writeCSV(w io.Writer, tables []*model.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(cellTexts(t)); err != nil {
			return fmt.Errorf("writing table %d: %w", i+1, err)
		}
	}
	return nil
}

func writeMarkdown(w io.Writer, tables []*model.Table) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, t.ToMarkdown()); err != nil {
			return err
		}
	}
	return nil
}

type jsonCell struct {
	Top    float64 `json:"top"`
	Left   float64 `json:"left"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Text   string  `json:"text"`
}

type jsonTable struct {
	ExtractionMethod string       `json:"extraction_method"`
	PageNumber       int          `json:"page_number"`
	Top              float64      `json:"top"`
	Left             float64      `json:"left"`
	Width            float64      `json:"width"`
	Height           float64      `json:"height"`
	Data             [][]jsonCell `json:"data"`
}

func writeJSON(w io.Writer, tables []*model.Table) error {
	out := make([]jsonTable, 0, len(tables))
	for _, t := range tables {
		bbox := t.BoundingBox()
		jt := jsonTable{
			ExtractionMethod: t.Method,
			PageNumber:       t.PageNumber,
			Top:              bbox.Top(),
			Left:             bbox.Left(),
			Width:            bbox.Width,
			Height:           bbox.Height,
			Data:             make([][]jsonCell, 0, t.RowCount()),
		}
		for _, row := range t.Rows() {
			cells := make([]jsonCell, len(row))
			for j, c := range row {
				b := c.BoundingBox()
				cells[j] = jsonCell{Top: b.Top(), Left: b.Left(), Width: b.Width, Height: b.Height, Text: c.GetText()}
			}
			jt.Data = append(jt.Data, cells)
		}
		out = append(out, jt)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
