package selection

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestChunkIndices(t *testing.T) {
	tests := []struct {
		start, end, size int
		want             [][2]int
	}{
		{0, 16, 5, [][2]int{{0, 4}, {5, 9}, {10, 14}, {15, 16}}},
		{0, 6, 2, [][2]int{{0, 1}, {2, 3}, {4, 5}, {6, 6}}},
		{0, 3, 1, [][2]int{{0, 0}, {1, 1}, {2, 2}, {3, 3}}},
		{0, 10, 3, [][2]int{{0, 2}, {3, 5}, {6, 8}, {9, 10}}},
		{0, 11, 3, [][2]int{{0, 2}, {3, 5}, {6, 8}, {9, 11}}},
		{10, 11, 3, [][2]int{{10, 11}}},
		{10, 15, 7, [][2]int{{10, 15}}},
		{13, 19, 6, [][2]int{{13, 18}, {19, 19}}},
	}

	for _, tt := range tests {
		got := ChunkIndices(tt.start, tt.end, tt.size)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("ChunkIndices(%d, %d, %d) = %v, want %v",
				tt.start, tt.end, tt.size, got, tt.want)
		}
	}
}

func TestChunkIndicesEmpty(t *testing.T) {
	if got := ChunkIndices(5, 4, 3); got != nil {
		t.Errorf("ChunkIndices(5, 4, 3) = %v, want nil", got)
	}
	if got := ChunkIndices(0, 4, 0); got != nil {
		t.Errorf("ChunkIndices(0, 4, 0) = %v, want nil", got)
	}
}

func TestRangeToMarker(t *testing.T) {
	tests := []struct {
		start, end int
		want       []Span
	}{
		{0, 16, []Span{{0, 0, 15}, {1, 0, 0}}},
		{8, 18, []Span{{0, 8, 15}, {1, 0, 2}}},
		{3, 3, []Span{{0, 3, 3}}},
		{18, 8, []Span{{0, 8, 15}, {1, 0, 2}}},
		{17, 50, []Span{{1, 1, 15}, {2, 0, 15}, {3, 0, 2}}},
		{0, 15, []Span{{0, 0, 15}}},
	}

	for _, tt := range tests {
		got := RangeToMarker(tt.start, tt.end)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("RangeToMarker(%d, %d) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

// The spans cover exactly end-start+1 bytes, one span per row.
func TestRangeToMarkerCoverageProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		start := rapid.IntRange(0, 1<<20).Draw(t, "start")
		end := rapid.IntRange(start, start+1<<12).Draw(t, "end")

		spans := RangeToMarker(start, end)
		covered := 0
		for i, s := range spans {
			assert.Equal(t, start/16+i, s.Row)
			assert.LessOrEqual(t, s.Start, s.End)
			covered += s.End - s.Start + 1
		}
		assert.Equal(t, end-start+1, covered)
		assert.Equal(t, end/16-start/16+1, len(spans))
	})
}
