// Package spatial provides an incrementally built index over rectangles.
//
// An [Index] answers two kinds of query:
//
//   - [Index.Overlapping] returns every item whose bounding box touches a
//     region. It is fast and loose.
//   - [Index.Contained] returns every item lying entirely inside a region,
//     sorted in reading order. The R-tree narrows the candidates by bounding
//     box overlap and each candidate is then checked for exact containment.
//
// Items are only ever appended. A typical index lives for one page:
//
//	idx := spatial.New[model.TextChunk]()
//	for _, c := range page.Text {
//	    idx.Add(c)
//	}
//	words := idx.Contained(cellBBox)
//
// An Index is not safe for concurrent use while items are being added.
// Concurrent queries are safe once the last Add has returned.
package spatial
