// Package window models a view of a buffer on the screen: its vertical
// placement, cursor ("dot") and mark, and the redraw-need flags other
// subsystems raise to request specific levels of refresh.
package window

import (
	"vted/display/buffer"
	"vted/display/selection"
	"vted/display/size"
)

// Flags is the redraw-need taxonomy. Editing and navigation commands
// set these; the update engine consumes and clears them.
type Flags uint16

const (
	// FlagFrame forces a reframe even when the dot is still visible.
	FlagFrame Flags = 1 << iota
	// FlagFull redraws every row of the window.
	FlagFull
	// FlagEdit redraws only the line the dot is on.
	FlagEdit
	// FlagMove means only the cursor position changed.
	FlagMove
	// FlagMode redraws only the mode line.
	FlagMode
)

// Window is a view of a buffer. The window list itself is owned outside
// the display core; the engine only walks and flags what it is given.
type Window struct {
	Buf *buffer.Buffer

	// TopRow is the first screen row of the text area; Rows is the
	// number of text rows. The mode line sits on TopRow+Rows.
	TopRow size.CellCountInt
	Rows   size.CellCountInt

	// Frame is the reframe hint: +n places the dot line n rows from the
	// top, -n places it n rows from the bottom, 0 centers it. Reset to
	// 0 after every update.
	Frame int

	Flags Flags

	// LineP is the first buffer line shown in the window.
	LineP *buffer.Line

	// Dot is the cursor: line pointer, byte offset and 1-based number.
	Dot     *buffer.Line
	Doto    int
	DotLine int

	// Mark is the optional second end of the selection, nil when unset.
	Mark     *buffer.Line
	Marko    int
	MarkLine int
}

// New places a window over buf at screen row top with rows text rows.
// The dot starts on the first line.
func New(buf *buffer.Buffer, top, rows size.CellCountInt) *Window {
	return &Window{
		Buf:     buf,
		TopRow:  top,
		Rows:    rows,
		LineP:   buf.FirstLine(),
		Dot:     buf.FirstLine(),
		DotLine: 1,
	}
}

// ModeRow returns the screen row of the window's mode line.
func (w *Window) ModeRow() size.CellCountInt { return w.TopRow + w.Rows }

// Contains reports whether screen row y is inside the text area.
func (w *Window) Contains(y size.CellCountInt) bool {
	return y >= w.TopRow && y < w.TopRow+w.Rows
}

// SetMark places the mark at the dot.
func (w *Window) SetMark() {
	w.Mark = w.Dot
	w.Marko = w.Doto
	w.MarkLine = w.DotLine
}

// ClearMark removes the mark. Callers that had a visible selection must
// also raise FlagFull.
func (w *Window) ClearMark() {
	w.Mark = nil
	w.Marko = 0
	w.MarkLine = 0
}

// Selection returns the active selection range, empty when no mark is
// set. The range is derived on demand, never stored.
func (w *Window) Selection() selection.Range {
	if w.Mark == nil {
		return selection.Range{}
	}
	return selection.Range{
		Active: true,
		Mark:   selection.Pos{Line: w.MarkLine, Offset: w.Marko},
		Dot:    selection.Pos{Line: w.DotLine, Offset: w.Doto},
	}
}

// TopLineNumber computes the 1-based buffer line number of LineP by
// walking back from the dot, whose number is tracked.
func (w *Window) TopLineNumber() int {
	n := w.DotLine
	head := w.Buf.Head()
	for lp := w.Dot; lp != w.LineP && lp.Backward() != head; lp = lp.Backward() {
		n--
	}
	return n
}

// ScrollDown advances the window top by n lines without touching the
// dot or the mark, clamped so the top never passes the last line.
func (w *Window) ScrollDown(n int) {
	head := w.Buf.Head()
	for ; n > 0; n-- {
		next := w.LineP.Forward()
		if next == head {
			break
		}
		w.LineP = next
	}
	w.Flags |= FlagFull
}

// ScrollUp moves the window top back by n lines without touching the
// dot or the mark, clamped at the top of the buffer.
func (w *Window) ScrollUp(n int) {
	head := w.Buf.Head()
	for ; n > 0; n-- {
		prev := w.LineP.Backward()
		if prev == head {
			break
		}
		w.LineP = prev
	}
	w.Flags |= FlagFull
}
