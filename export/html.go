package export

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/rulegrid/model"
)

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a, Attr: attrs}
}

// appendText adds text to n, turning newlines into <br> elements
func appendText(n *html.Node, text string) {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			n.AppendChild(element(atom.Br))
		}
		if line != "" {
			n.AppendChild(&html.Node{Type: html.TextNode, Data: line})
		}
	}
}

// tableNode builds a <table> element. The first row goes into <thead>.
func tableNode(t *model.Table) *html.Node {
	table := element(atom.Table,
		html.Attribute{Key: "data-page", Val: fmt.Sprint(t.PageNumber)},
		html.Attribute{Key: "data-method", Val: t.Method},
	)

	for i, row := range cellTexts(t) {
		var section *html.Node
		cellAtom := atom.Td
		if i == 0 {
			section = element(atom.Thead)
			cellAtom = atom.Th
			table.AppendChild(section)
		} else {
			if i == 1 {
				table.AppendChild(element(atom.Tbody))
			}
			section = table.LastChild
		}

		tr := element(atom.Tr)
		for _, text := range row {
			cell := element(cellAtom)
			appendText(cell, text)
			tr.AppendChild(cell)
		}
		section.AppendChild(tr)
	}
	return table
}

func writeHTML(w io.Writer, tables []*model.Table) error {
	for _, t := range tables {
		if err := html.Render(w, tableNode(t)); err != nil {
			return fmt.Errorf("rendering table: %w", err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}
