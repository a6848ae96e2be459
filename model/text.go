package model

import "strings"

// TextContainer is a piece of text anchored to a rectangle. Merge must keep
// every character and the full area of both operands.
type TextContainer interface {
	Rectangular
	GetText() string
	IsEmpty() bool
	Merge(other TextContainer) TextContainer
}

// TextChunk is a run of text with its bounding box. It is a value type:
// Merge returns a new chunk and never modifies either operand.
type TextChunk struct {
	Text     string
	BBox     BBox
	FontName string
	FontSize float64
}

// EmptyChunk stands in for "no content" at unpopulated table positions. It
// carries no position, so sharing it between cells is safe.
var EmptyChunk = TextChunk{}

// NewTextChunk creates a chunk of text occupying bbox
func NewTextChunk(text string, bbox BBox) TextChunk {
	return TextChunk{Text: text, BBox: bbox}
}

func (c TextChunk) BoundingBox() BBox { return c.BBox }
func (c TextChunk) GetText() string   { return c.Text }

// IsEmpty reports whether the chunk has neither text nor area.
func (c TextChunk) IsEmpty() bool {
	return c.Text == "" && c.BBox == (BBox{})
}

// Merge combines two chunks. The result covers both rectangles and joins the
// texts in reading order: a space between chunks on the same line, a newline
// between chunks on different lines. Merging with an empty chunk returns the
// other operand unchanged.
func (c TextChunk) Merge(other TextContainer) TextContainer {
	if other == nil || other.IsEmpty() {
		return c
	}
	if c.IsEmpty() {
		return other
	}

	first, second := TextContainer(c), other
	if CompareReadingOrder(c.BBox, other.BoundingBox()) > 0 {
		first, second = other, c
	}

	merged := TextChunk{
		Text:     joinText(first, second),
		BBox:     c.BBox.Union(other.BoundingBox()),
		FontName: c.FontName,
		FontSize: c.FontSize,
	}
	if oc, ok := other.(TextChunk); ok && oc.FontSize > merged.FontSize {
		merged.FontSize = oc.FontSize
		merged.FontName = oc.FontName
	}
	return merged
}

func joinText(first, second TextContainer) string {
	a, b := first.GetText(), second.GetText()
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	sep := "\n"
	if first.BoundingBox().VerticalOverlapRatio(second.BoundingBox()) > readingOrderOverlap {
		sep = " "
	}
	var sb strings.Builder
	sb.Grow(len(a) + len(sep) + len(b))
	sb.WriteString(a)
	sb.WriteString(sep)
	sb.WriteString(b)
	return sb.String()
}
