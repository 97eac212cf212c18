// Command vted is a minimal interactive demo of the redisplay engine:
// it shows a file (or a built-in sample) in one window and lets you
// move around with the keyboard and the mouse. q quits.
package main

import (
	"fmt"
	"os"

	"vted"
	"vted/display/buffer"
	"vted/display/mouse"
	"vted/display/term/vt100"
	"vted/display/window"
	"vted/logger"
)

const sample = `vted redisplay demo

Move with the arrow keys or click anywhere with the mouse.
Drag to select, double-click to select a word, scroll with
the wheel. Press q to quit.

Tabs	expand	like	this, and control characters render
as caret escapes. Lines longer than the terminal scroll
horizontally when the cursor reaches the right margin.`

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "vted:", err)
		os.Exit(1)
	}
}

type osClipboard struct {
	log logger.Logger
}

func (c osClipboard) Copy(text string) {
	// A real integration would talk to the system clipboard here.
	c.log.Info("copied selection", "bytes", len(text))
}

func run() error {
	tty, err := vt100.OpenTty(os.Stdin)
	if err != nil {
		return err
	}
	defer tty.Restore()

	rows, cols, err := tty.Size()
	if err != nil {
		return err
	}

	log := logger.Discard
	drv := vt100.New(vt100.Options{
		Writer: os.Stdout,
		Rows:   rows,
		Cols:   cols,
	})

	ed := vted.New(vted.Options{
		Driver:       drv,
		Logger:       log,
		Clipboard:    osClipboard{log: log},
		InputPending: tty.Pending,
	})
	defer ed.Close()

	buf := buffer.New("*demo*")
	text := sample
	if len(os.Args) > 1 {
		raw, err := os.ReadFile(os.Args[1])
		if err != nil {
			return err
		}
		buf.Name = os.Args[1]
		text = string(raw)
	}
	if err := buf.SetText(text); err != nil {
		return err
	}
	w := ed.Visit(buf)

	ed.EnableMouse()
	defer ed.DisableMouse()

	for {
		ed.Redraw()
		c, err := tty.ReadByte()
		if err != nil {
			return err
		}
		switch c {
		case 'q', 0x03: // C-c
			return nil
		case 0x1b:
			handleEscape(tty, ed, w)
		}
	}
}

// handleEscape decodes the sequence after an ESC byte: cursor keys and
// SGR pointer reports. Anything unrecognized is dropped.
func handleEscape(tty *vt100.Tty, ed *vted.Editor, w *window.Window) {
	c, err := tty.ReadByte()
	if err != nil || c != '[' {
		return
	}
	c, err = tty.ReadByte()
	if err != nil {
		return
	}
	switch c {
	case 'A':
		moveDot(w, -1)
	case 'B':
		moveDot(w, +1)
	case 'C':
		if w.Doto < w.Dot.Length() {
			w.Doto++
			w.Flags |= window.FlagMove
		}
	case 'D':
		if w.Doto > 0 {
			w.Doto--
			w.Flags |= window.FlagMove
		}
	case '<':
		if ev, ok := mouse.Parse(c, tty); ok {
			ed.HandleMouse(ev)
		}
	}
}

// moveDot moves the cursor dir lines, keeping the byte offset no
// further than the new line's length.
func moveDot(w *window.Window, dir int) {
	head := w.Buf.Head()
	var next *buffer.Line
	if dir < 0 {
		next = w.Dot.Backward()
	} else {
		next = w.Dot.Forward()
	}
	if next == head {
		return
	}
	w.Dot = next
	w.DotLine += dir
	if w.Doto > next.Length() {
		w.Doto = next.Length()
	}
	w.Flags |= window.FlagMove
}
