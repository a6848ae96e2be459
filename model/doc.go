// Package model provides the geometric vocabulary shared by the rest of
// rulegrid: rectangles, rulings, positioned text and tables.
//
// # Geometry
//
// [BBox] is an axis-aligned rectangle in page space with the origin at the
// top-left corner of the page, so Top() is never greater than Bottom():
//
//	cell := model.NewBBoxFromEdges(10, 20, 110, 40)
//	cell.ContainsBox(model.NewBBox(12, 22, 50, 10)) // true
//
// [CompareReadingOrder] orders rectangles top-to-bottom, then left-to-right.
// It is a heuristic used to make output deterministic; it is not a strict
// total order.
//
// # Rulings
//
// A [Ruling] is a line segment that may act as a table border. Rulings are
// classified as horizontal or vertical, merged with [CollapseRulings] and
// crossed with [IntersectionPoint].
//
// # Text
//
// [TextContainer] is text anchored to a rectangle. [TextChunk] is the
// concrete value type; merging two chunks covers both rectangles and keeps
// both texts. [EmptyChunk] marks positions with no content.
//
// # Tables
//
// [Table] is a sparse grid keyed by (row, column). Adding to an occupied
// position merges the new content with the old one. The dense view returned
// by Rows is cached until the next Add.
package model
