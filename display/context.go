// Package display implements the incremental redisplay engine: the
// virtual/physical screen model, the line renderer, and the three-tier
// reconciliation (garbage repaint, hash-guided line reflow, cheap
// per-row diff) that drives a term.Driver with the minimal set of
// visible operations.
//
// The redisplay knows almost nothing about the editing process; editing
// code sets redraw-need flags on windows and the engine does the rest.
package display

import (
	"time"

	"vted/display/size"
	"vted/display/term"
	"vted/display/utils"
	"vted/display/video"
	"vted/display/window"
	"vted/logger"
)

// score is one entry of the dynamic-programming cost matrix used by the
// reflow step: the cheapest way to transform physical rows 1..i into
// virtual rows 1..j, plus the predecessor to trace the script back.
type score struct {
	itrace size.CellCountInt
	jtrace size.CellCountInt
	cost   int
}

// Context is the owned display state: the two grids, the score matrix,
// the virtual cursor, and the window list. All mutation happens through
// its methods on the single control thread; there is no locking.
type Context struct {
	drv term.Driver
	log logger.Logger

	// Geometry in terminal cells. The grids are rows-1 high because the
	// last terminal row is reserved for the echo area.
	rows, cols size.CellCountInt

	vscreen []*video.Row // desired state
	pscreen []*video.Row // last-known drawn state
	blanks  *video.Row   // blank line image, for insert redraws
	scores  []score      // rows*rows, reallocated with the grids

	// Virtual cursor used by the renderer. vtcol goes negative while an
	// extended line is rendered left of the visible area.
	vtrow, vtcol size.CellCountInt

	// lbound is the horizontal scroll offset of the extended line the
	// cursor is on, zero when the cursor line fits.
	lbound size.CellCountInt

	// garbage means the glass contents are unknown and the next update
	// must repaint everything from scratch.
	garbage bool

	linenos, colnos, clock bool

	windows []*window.Window
	cur     *window.Window

	// inputPending, when set, lets the engine skip a redraw cycle while
	// keystrokes are already buffered.
	inputPending func() bool

	// now is stubbed in tests so the mode-line clock is deterministic.
	now func() time.Time
}

type Options struct {
	Driver term.Driver
	Logger logger.Logger

	// InputPending reports whether input is already buffered; a pending
	// redraw is skipped and retried after the input drains.
	InputPending func() bool

	Now func() time.Time
}

// NewContext builds a display context sized to the driver and schedules
// the initial full repaint.
func NewContext(opts Options) *Context {
	utils.Assert(opts.Driver != nil, "display: a terminal driver is required")
	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	c := &Context{
		drv:          opts.Driver,
		log:          log,
		inputPending: opts.InputPending,
		now:          now,
		linenos:      true,
		colnos:       true,
	}
	rows, cols := opts.Driver.Size()
	ok := c.Resize(true, rows, cols)
	utils.Assert(ok, "display: driver reported an unusable size")
	return c
}

// Size returns the current geometry in terminal cells, echo row included.
func (c *Context) Size() (rows, cols size.CellCountInt) {
	return c.rows, c.cols
}

// SetGarbage marks the whole glass as unknown; the next update repaints
// everything.
func (c *Context) SetGarbage() { c.garbage = true }

// ToggleLineNumbers flips the mode-line line-number display.
func (c *Context) ToggleLineNumbers() {
	c.linenos = !c.linenos
	c.garbage = true
}

// ToggleColNumbers flips the mode-line column-number display.
func (c *Context) ToggleColNumbers() {
	c.colnos = !c.colnos
	c.garbage = true
}

// ToggleClock flips the mode-line clock.
func (c *Context) ToggleClock() {
	c.clock = !c.clock
	c.garbage = true
}

// SetLineNumbers, SetColNumbers and SetClock set the displays directly.
func (c *Context) SetLineNumbers(on bool) {
	c.linenos = on
	c.garbage = true
}

func (c *Context) SetColNumbers(on bool) {
	c.colnos = on
	c.garbage = true
}

func (c *Context) SetClock(on bool) {
	c.clock = on
	c.garbage = true
}

// AddWindow registers a window occupying textrows screen rows starting
// at top, with its mode line on the row below. The first window added
// becomes current.
func (c *Context) AddWindow(w *window.Window) {
	utils.Assert(w.TopRow >= 0 && w.TopRow+w.Rows < c.rows-1,
		"display: window does not fit the text area")
	c.windows = append(c.windows, w)
	if c.cur == nil {
		c.cur = w
	}
}

// Windows returns the registered windows in screen order.
func (c *Context) Windows() []*window.Window { return c.windows }

// Current returns the active window, nil when none is registered.
func (c *Context) Current() *window.Window { return c.cur }

// SetCurrent makes w the active window.
func (c *Context) SetCurrent(w *window.Window) { c.cur = w }

// WindowAt returns the window whose text area covers screen row y, or
// nil for mode lines and the echo area.
func (c *Context) WindowAt(y size.CellCountInt) *window.Window {
	for _, w := range c.windows {
		if y >= w.TopRow && y < w.TopRow+w.Rows {
			return w
		}
	}
	return nil
}

// Tidy releases the terminal to a sane state before process exit: text
// color, cursor on the echo row, the row erased, output flushed. The
// fatal-abort path runs through here too.
func (c *Context) Tidy() {
	c.drv.SetColor(term.ColorText)
	c.drv.MoveTo(c.rows-1, 0)
	c.drv.EraseEOL()
	c.drv.Flush()
}

// scoreAt is the bounds-checked 2D accessor onto the flattened score
// matrix. The stride is the full terminal row count, matching the
// matrix allocation, so spans anywhere on screen index safely.
func (c *Context) scoreAt(i, j size.CellCountInt) *score {
	return &c.scores[i*c.rows+j]
}

// Resize reallocates both grids and the score matrix to the new shape.
// Nothing is preserved; every row comes back blank and a full repaint is
// scheduled. Geometries below one row or one column are rejected and
// the previous geometry is kept. Unless force is set, a resize to the
// current shape is a no-op. Allocation failure is a fatal runtime
// abort: the process cannot continue without a display, so no error is
// threaded back to callers.
func (c *Context) Resize(force bool, rows, cols size.CellCountInt) bool {
	if rows < 1 || cols < 1 {
		return false
	}
	if !force && rows == c.rows && cols == c.cols {
		return true
	}

	c.vscreen = video.NewGrid(rows-1, cols)
	c.pscreen = video.NewGrid(rows-1, cols)
	c.scores = make([]score, rows*rows)
	c.blanks = video.NewRow(cols)
	c.blanks.UpdateHash(c.drv.Costs().EraseEOL)

	c.rows = rows
	c.cols = cols
	c.lbound = 0
	c.garbage = true

	c.log.Debug("display resized", "rows", rows, "cols", cols)
	return true
}
