// Package vt100 is a term.Driver that speaks plain VT100/xterm escape
// sequences over an io.Writer. It caches the cursor position, active
// color and scroll region so the engine can call it redundantly without
// flooding the output.
package vt100

import (
	"bufio"
	"fmt"
	"io"

	"vted/display/size"
	"vted/display/term"
)

// unknown marks a cached coordinate the driver can no longer vouch for.
const unknown = -1

// Default device costs, in output-character units. These approximate
// the escape-sequence lengths of the operations they price.
var DefaultCosts = term.Costs{
	InsertLine: 11,
	DeleteLine: 11,
	EraseEOL:   3,
}

const (
	pointerOn  = "\x1b[?1000h\x1b[?1002h\x1b[?1006h"
	pointerOff = "\x1b[?1006l\x1b[?1002l\x1b[?1000l"
)

type Driver struct {
	w *bufio.Writer

	rows, cols size.CellCountInt

	// Cached device state; unknown after anything that moves it behind
	// our back.
	row, col size.CellCountInt
	color    term.Color
	top, bot size.CellCountInt

	costs term.Costs
}

type Options struct {
	Writer     io.Writer
	Rows, Cols size.CellCountInt

	// Costs overrides DefaultCosts when non-zero.
	Costs term.Costs
}

var (
	_ term.Driver        = (*Driver)(nil)
	_ term.PointerWriter = (*Driver)(nil)
)

func New(opts Options) *Driver {
	costs := opts.Costs
	if costs == (term.Costs{}) {
		costs = DefaultCosts
	}
	return &Driver{
		w:     bufio.NewWriter(opts.Writer),
		rows:  opts.Rows,
		cols:  opts.Cols,
		row:   unknown,
		col:   unknown,
		color: term.ColorNone,
		top:   unknown,
		bot:   unknown,
		costs: costs,
	}
}

func (d *Driver) Size() (rows, cols size.CellCountInt) { return d.rows, d.cols }

// SetSize records a new device geometry. The caller still has to resize
// the display context and schedule a repaint.
func (d *Driver) SetSize(rows, cols size.CellCountInt) {
	d.rows = rows
	d.cols = cols
	d.row = unknown
	d.col = unknown
}

func (d *Driver) Costs() term.Costs { return d.costs }

func (d *Driver) MoveTo(row, col size.CellCountInt) {
	if row == d.row && col == d.col {
		return
	}
	fmt.Fprintf(d.w, "\x1b[%d;%dH", row+1, col+1)
	d.row = row
	d.col = col
}

func (d *Driver) SetColor(color term.Color) {
	if color == d.color {
		return
	}
	switch color {
	case term.ColorText:
		d.w.WriteString("\x1b[0m")
	case term.ColorMode:
		d.w.WriteString("\x1b[7m")
	case term.ColorSelect:
		d.w.WriteString("\x1b[47;30m")
	}
	d.color = color
}

func (d *Driver) PutChar(c byte) {
	d.w.WriteByte(c)
	if d.col != unknown {
		d.col++
	}
}

func (d *Driver) EraseEOL() {
	d.w.WriteString("\x1b[K")
}

func (d *Driver) EraseScreen() {
	d.w.WriteString("\x1b[2J")
	// Clearing invalidates everything we thought we knew.
	d.row = unknown
	d.col = unknown
	d.color = term.ColorNone
	d.top = unknown
	d.bot = unknown
}

func (d *Driver) InsertLines(row, bot, n size.CellCountInt) {
	d.setScrollRegion(row, bot)
	d.MoveTo(row, 0)
	fmt.Fprintf(d.w, "\x1b[%dL", n)
}

func (d *Driver) DeleteLines(row, bot, n size.CellCountInt) {
	d.setScrollRegion(row, bot)
	d.MoveTo(row, 0)
	fmt.Fprintf(d.w, "\x1b[%dM", n)
}

// setScrollRegion bounds the hardware scroll so line inserts and
// deletes cannot disturb rows outside the span being reconciled.
// DECSTBM homes the cursor, so the position cache is dropped.
func (d *Driver) setScrollRegion(top, bot size.CellCountInt) {
	if top == d.top && bot == d.bot {
		return
	}
	fmt.Fprintf(d.w, "\x1b[%d;%dr", top+1, bot+1)
	d.top = top
	d.bot = bot
	d.row = unknown
	d.col = unknown
}

func (d *Driver) Flush() {
	d.w.Flush()
}

func (d *Driver) EnablePointer() {
	d.w.WriteString(pointerOn)
	d.w.Flush()
}

func (d *Driver) DisablePointer() {
	d.w.WriteString(pointerOff)
	d.w.Flush()
}
