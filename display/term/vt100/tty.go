package vt100

import (
	"bufio"
	"fmt"
	"os"

	xterm "golang.org/x/term"

	"vted/display/size"
)

// Tty owns the controlling terminal for an interactive session: raw
// mode on open, buffered byte input, and the restore hook for exit.
type Tty struct {
	f     *os.File
	r     *bufio.Reader
	state *xterm.State
}

// OpenTty puts f into raw mode. Callers must arrange for Restore to run
// on every exit path, panics included.
func OpenTty(f *os.File) (*Tty, error) {
	state, err := xterm.MakeRaw(int(f.Fd()))
	if err != nil {
		return nil, fmt.Errorf("raw mode: %w", err)
	}
	return &Tty{
		f:     f,
		r:     bufio.NewReader(f),
		state: state,
	}, nil
}

func (t *Tty) Size() (rows, cols size.CellCountInt, err error) {
	w, h, err := xterm.GetSize(int(t.f.Fd()))
	if err != nil {
		return 0, 0, fmt.Errorf("terminal size: %w", err)
	}
	return h, w, nil
}

func (t *Tty) ReadByte() (byte, error) {
	return t.r.ReadByte()
}

// Pending reports whether input is already buffered, without blocking.
// The display engine uses it to skip redraws it would immediately redo.
func (t *Tty) Pending() bool {
	return t.r.Buffered() > 0
}

// Restore leaves raw mode.
func (t *Tty) Restore() error {
	return xterm.Restore(int(t.f.Fd()), t.state)
}
