// Package selection converts byte ranges into per-row highlight spans.
package selection

import "github.com/dshills/hexim/internal/renderer/viewport"

// Span is the highlighted part of one grid row. Start and End are column
// indexes within the row, both inclusive.
type Span struct {
	Row   int
	Start int
	End   int
}

// ChunkIndices splits the inclusive range [start, end] into consecutive
// inclusive chunks of size elements; the last chunk may be shorter.
// A non-positive size yields no chunks.
func ChunkIndices(start, end, size int) [][2]int {
	if size <= 0 || start > end {
		return nil
	}
	chunks := make([][2]int, 0, (end-start)/size+1)
	for ; start <= end; start += size {
		chunks = append(chunks, [2]int{start, min(start+size-1, end)})
		if start > end-size {
			break
		}
	}
	return chunks
}

// RangeToMarker returns the spans covering the inclusive byte range
// [start, end] on a grid of viewport.RowWidth columns. The bounds are
// swapped when start > end.
func RangeToMarker(start, end int) []Span {
	if start > end {
		start, end = end, start
	}
	const w = viewport.RowWidth

	chunks := ChunkIndices(viewport.Align(start, w), viewport.AlignTop(end, w), w)
	if len(chunks) == 0 {
		return nil
	}
	chunks[0][0] = start
	chunks[len(chunks)-1][1] = end

	spans := make([]Span, len(chunks))
	for i, c := range chunks {
		spans[i] = Span{Row: start/w + i, Start: c[0] % w, End: c[1] % w}
	}
	return spans
}
