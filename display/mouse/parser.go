// Package mouse decodes the terminal's extended (SGR) pointer reports
// and turns them into cursor motion, selection and scrolling on the
// display.
package mouse

import (
	"io"

	"vted/display/size"
)

type EventType int

const (
	EventPress EventType = iota
	EventRelease
	EventDrag
)

// Button identities as transmitted by the terminal, after the motion
// bit has been cleared.
type Button int

const (
	ButtonLeft   Button = 0
	ButtonMiddle Button = 1
	ButtonRight  Button = 2

	ButtonWheelUp   Button = 64
	ButtonWheelDown Button = 65
)

// motionBit is set on the button code while the pointer moves with a
// button held.
const motionBit = 32

// Event is one decoded pointer report. Coordinates are 0-based.
type Event struct {
	Type   EventType
	Button Button
	X, Y   size.CellCountInt
}

// Parse decodes one SGR pointer report: `< button ; x ; y` terminated
// by 'M' (press) or 'm' (release). startc is the byte after the CSI
// lead-in, which the input dispatcher has already consumed; the rest of
// the sequence is read from r. Malformed input (wrong lead-in, missing
// separator, unknown terminator, read error) rejects the whole sequence
// with no partial event: terminals occasionally deliver partial or
// unsupported sequences and those are silently dropped upstream.
func Parse(startc byte, r io.ByteReader) (Event, bool) {
	var ev Event
	if startc != '<' {
		return ev, false
	}

	button, c, ok := readNum(r)
	if !ok || c != ';' {
		return ev, false
	}
	x, c, ok := readNum(r)
	if !ok || c != ';' {
		return ev, false
	}
	y, c, ok := readNum(r)
	if !ok {
		return ev, false
	}

	released := false
	switch c {
	case 'm':
		released = true
	case 'M':
	default:
		return ev, false
	}

	// Coordinates arrive 1-based.
	x--
	y--

	switch {
	case button&motionBit != 0:
		ev.Type = EventDrag
		ev.Button = Button(button &^ motionBit)
	case released:
		ev.Type = EventRelease
		ev.Button = Button(button)
	default:
		ev.Type = EventPress
		ev.Button = Button(button)
	}
	ev.X = x
	ev.Y = y
	return ev, true
}

// readNum accumulates decimal digits and returns the first non-digit
// byte that terminated the run.
func readNum(r io.ByteReader) (n int, terminator byte, ok bool) {
	for {
		c, err := r.ReadByte()
		if err != nil {
			return 0, 0, false
		}
		if c < '0' || c > '9' {
			return n, c, true
		}
		n = n*10 + int(c-'0')
	}
}
