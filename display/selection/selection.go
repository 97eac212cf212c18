// Package selection decides per-cell selection membership from a
// (mark, dot) pair. The range is a pure computation: ordered on demand,
// never persisted, and symmetric in which endpoint is the mark.
package selection

// Pos is a buffer position: 1-based line number plus byte offset within
// the line.
type Pos struct {
	Line   int
	Offset int
}

// less orders positions lexicographically.
func (p Pos) less(q Pos) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Offset < q.Offset)
}

// Range is the active selection between the mark and the dot. The zero
// value is the empty selection.
type Range struct {
	Active bool
	Mark   Pos
	Dot    Pos
}

// Contains reports whether the character at (line, offset) is selected.
// The selection is half-open: the start position is included, the end
// position excluded, matching conventional text-selection semantics.
// An unset mark, or a mark equal to the dot, selects nothing.
func (r Range) Contains(line, offset int) bool {
	if !r.Active || r.Mark == r.Dot {
		return false
	}
	start, end := r.Mark, r.Dot
	if end.less(start) {
		start, end = end, start
	}
	if line < start.Line || line > end.Line {
		return false
	}
	if line == start.Line && offset < start.Offset {
		return false
	}
	if line == end.Line && offset >= end.Offset {
		return false
	}
	return true
}
