// Package vted wires the incremental redisplay engine, the pointer
// layer and a terminal driver into one editor-facing surface. The
// packages under display/ stay usable on their own; this is just the
// convenient assembly.
package vted

import (
	"vted/display"
	"vted/display/buffer"
	"vted/display/mouse"
	"vted/display/size"
	"vted/display/term"
	"vted/display/window"
	"vted/logger"
)

// Editor owns one display context and its pointer state machine.
type Editor struct {
	ctx   *display.Context
	mouse *mouse.Machine
	drv   term.Driver
	log   logger.Logger
}

type Options struct {
	Driver    term.Driver
	Logger    logger.Logger
	Clipboard mouse.ClipboardSink

	// InputPending lets redraws be skipped while keystrokes are queued.
	InputPending func() bool
}

func New(opts Options) *Editor {
	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}
	ctx := display.NewContext(display.Options{
		Driver:       opts.Driver,
		Logger:       log,
		InputPending: opts.InputPending,
	})
	return &Editor{
		ctx: ctx,
		mouse: mouse.New(mouse.Options{
			Context:   ctx,
			Clipboard: opts.Clipboard,
			Logger:    log,
		}),
		drv: opts.Driver,
		log: log,
	}
}

// Visit shows buf in a single full-height window and makes it current.
func (e *Editor) Visit(buf *buffer.Buffer) *window.Window {
	rows, _ := e.ctx.Size()
	// One text area, its mode line, and the echo row below.
	w := window.New(buf, 0, rows-2)
	e.ctx.AddWindow(w)
	return w
}

// Redraw runs one reconciliation cycle.
func (e *Editor) Redraw() {
	e.ctx.Update(term.ColorMode)
}

// Resize adapts to a new terminal geometry and schedules a repaint.
// Windows keep their placement; callers that split the screen have to
// re-lay them out first.
func (e *Editor) Resize(rows, cols size.CellCountInt) bool {
	return e.ctx.Resize(false, rows, cols)
}

// EnableMouse asks the terminal for pointer reports, when the driver
// can. Drivers without pointer support make this a no-op.
func (e *Editor) EnableMouse() {
	if pw, ok := e.drv.(term.PointerWriter); ok {
		pw.EnablePointer()
	}
}

func (e *Editor) DisableMouse() {
	if pw, ok := e.drv.(term.PointerWriter); ok {
		pw.DisablePointer()
	}
}

// HandleMouse feeds one decoded pointer event to the interaction state
// machine and reports whether it was consumed.
func (e *Editor) HandleMouse(ev mouse.Event) bool {
	return e.mouse.Handle(ev)
}

// Context exposes the underlying display context for callers that need
// toggles, extra windows or a direct Update.
func (e *Editor) Context() *display.Context { return e.ctx }

// Close releases the terminal to a sane state.
func (e *Editor) Close() {
	e.ctx.Tidy()
}
