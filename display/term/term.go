// Package term defines the contract between the update engine and the
// terminal it draws on. The engine only ever talks to a Driver; anything
// that can move a cursor, draw a character and insert/delete lines inside
// a scroll region can sit behind it.
package term

import "vted/display/size"

// Color is the coarse color/attribute tag carried by every video row.
// The driver maps these onto whatever escape sequences or attributes the
// real terminal understands.
type Color int

const (
	// ColorNone means the driver's color cache is unknown and the next
	// SetColor call must be emitted unconditionally.
	ColorNone Color = iota
	ColorText
	ColorMode
	ColorSelect
)

// Driver is the set of primitive device operations the update engine is
// allowed to use. Implementations are expected to cache the cursor
// position and active color so repeated calls are cheap; the engine does
// not try to avoid redundant MoveTo/SetColor calls.
type Driver interface {
	// Size reports the device geometry in character cells.
	Size() (rows, cols size.CellCountInt)

	// MoveTo places the hardware cursor at 0-based (row, col).
	MoveTo(row, col size.CellCountInt)

	// SetColor makes color the active attribute for subsequent output.
	SetColor(color Color)

	// PutChar writes one visible cell at the cursor and advances the
	// hardware column by one. The engine never writes control bytes
	// through this call.
	PutChar(c byte)

	// EraseEOL erases from the cursor to the end of the line.
	EraseEOL()

	// EraseScreen erases the whole display and invalidates any cached
	// cursor/color state the driver keeps.
	EraseScreen()

	// InsertLines opens n blank lines at row, pushing rows down within
	// the scroll region [row, bot] inclusive.
	InsertLines(row, bot, n size.CellCountInt)

	// DeleteLines removes n lines at row, pulling rows up within the
	// scroll region [row, bot] inclusive.
	DeleteLines(row, bot, n size.CellCountInt)

	// Flush pushes any buffered output to the device.
	Flush()

	// Costs reports the device cost model used by the reflow scorer.
	Costs() Costs
}

// Costs is the device cost model: how expensive, in output-character
// units, the hardware line operations are. The reflow scorer weighs
// redraws against these.
type Costs struct {
	// InsertLine is the cost of inserting one blank line.
	InsertLine int
	// DeleteLine is the cost of deleting one line.
	DeleteLine int
	// EraseEOL is the cost of an erase-to-end-of-line. A trailing blank
	// run longer than this is cheaper to erase than to draw.
	EraseEOL int
}

// PointerWriter is implemented by drivers that can switch the terminal's
// extended (SGR) mouse reporting on and off.
type PointerWriter interface {
	EnablePointer()
	DisablePointer()
}
