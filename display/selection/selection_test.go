package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRangeContains(t *testing.T) {
	tcs := []struct {
		name     string
		r        Range
		line     int
		offset   int
		expected bool
	}{
		{
			name:     "inactive range contains nothing",
			r:        Range{},
			line:     1,
			offset:   0,
			expected: false,
		},
		{
			name: "empty range contains nothing",
			r: Range{
				Active: true,
				Mark:   Pos{Line: 2, Offset: 3},
				Dot:    Pos{Line: 2, Offset: 3},
			},
			line: 2, offset: 3,
			expected: false,
		},
		{
			name: "start is included",
			r: Range{
				Active: true,
				Mark:   Pos{Line: 2, Offset: 3},
				Dot:    Pos{Line: 2, Offset: 7},
			},
			line: 2, offset: 3,
			expected: true,
		},
		{
			name: "end is excluded",
			r: Range{
				Active: true,
				Mark:   Pos{Line: 2, Offset: 3},
				Dot:    Pos{Line: 2, Offset: 7},
			},
			line: 2, offset: 7,
			expected: false,
		},
		{
			name: "middle line is fully inside",
			r: Range{
				Active: true,
				Mark:   Pos{Line: 1, Offset: 5},
				Dot:    Pos{Line: 3, Offset: 0},
			},
			line: 2, offset: 0,
			expected: true,
		},
		{
			name: "before the start line",
			r: Range{
				Active: true,
				Mark:   Pos{Line: 2, Offset: 0},
				Dot:    Pos{Line: 4, Offset: 0},
			},
			line: 1, offset: 10,
			expected: false,
		},
		{
			name: "on the start line before the offset",
			r: Range{
				Active: true,
				Mark:   Pos{Line: 2, Offset: 5},
				Dot:    Pos{Line: 4, Offset: 0},
			},
			line: 2, offset: 4,
			expected: false,
		},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.r.Contains(tc.line, tc.offset)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestRangeContainsAntisymmetric(t *testing.T) {
	// Swapping the endpoints never changes membership.
	positions := []Pos{
		{Line: 1, Offset: 0},
		{Line: 1, Offset: 4},
		{Line: 2, Offset: 0},
		{Line: 2, Offset: 9},
		{Line: 5, Offset: 2},
	}
	for _, mark := range positions {
		for _, dot := range positions {
			fwd := Range{Active: true, Mark: mark, Dot: dot}
			rev := Range{Active: true, Mark: dot, Dot: mark}
			for line := 0; line <= 6; line++ {
				for off := 0; off <= 10; off++ {
					assert.Equal(t,
						fwd.Contains(line, off), rev.Contains(line, off),
						"mark=%v dot=%v line=%d off=%d", mark, dot, line, off)
				}
			}
		}
	}
}
