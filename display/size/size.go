package size

// CellCountInt is the integer type used for counting screen cells
// (rows and columns). It is an alias rather than a defined type because
// the renderer legitimately works with negative virtual columns when a
// line is horizontally scrolled, and display geometry is small enough
// that a machine int never overflows.
type CellCountInt = int
