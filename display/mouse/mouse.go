package mouse

import (
	"time"

	"golang.org/x/text/encoding/charmap"

	"vted/display"
	"vted/display/size"
	"vted/display/window"
	"vted/logger"
)

// DoubleClickInterval is how close two left presses at the same
// coordinates must be to count as a double click.
const DoubleClickInterval = 400 * time.Millisecond

// WheelScrollLines is how many lines one wheel notch scrolls the window
// top. The cursor and any active selection are left alone, unlike the
// ordinary page-scroll commands.
const WheelScrollLines = 3

// ClipboardSink receives the selected text when a drag selection is
// released. Storage is external; the display core never keeps it.
type ClipboardSink interface {
	Copy(text string)
}

// Machine is the pointer interaction state machine: idle until a press,
// down while the primary button is held, dragging once the pointer
// moves with it held. Events feed in through Handle.
type Machine struct {
	ctx  *display.Context
	clip ClipboardSink
	log  logger.Logger
	now  func() time.Time

	down       bool
	lastPress  time.Time
	lastPressX size.CellCountInt
	lastPressY size.CellCountInt
}

type Options struct {
	Context   *display.Context
	Clipboard ClipboardSink
	Logger    logger.Logger
	Now       func() time.Time
}

func New(opts Options) *Machine {
	log := opts.Logger
	if log == nil {
		log = logger.Discard
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Machine{
		ctx:  opts.Context,
		clip: opts.Clipboard,
		log:  log,
		now:  now,
	}
}

// Handle reacts to one decoded pointer event and reports whether it was
// consumed. Unconsumed events are left to the caller (for key-binding
// fallbacks or plain discarding).
func (m *Machine) Handle(ev Event) bool {
	switch ev.Type {
	case EventPress:
		switch ev.Button {
		case ButtonLeft:
			return m.press(ev)
		case ButtonWheelUp:
			return m.wheel(ev, -WheelScrollLines)
		case ButtonWheelDown:
			return m.wheel(ev, WheelScrollLines)
		}

	case EventDrag:
		if m.down && ev.Button == ButtonLeft {
			w := m.ctx.Current()
			if w != nil && w.Mark == nil {
				w.SetMark()
			}
			return m.moveTo(ev.X, ev.Y)
		}

	case EventRelease:
		if ev.Button == ButtonLeft {
			m.down = false
			if w := m.ctx.Current(); w != nil && w.Mark != nil {
				if text := selectedText(w); text != "" {
					m.clipCopy(text)
				}
			}
			return true
		}
	}
	return false
}

// press positions the cursor at the click, clearing any selection; a
// double click additionally selects the word under the new cursor.
func (m *Machine) press(ev Event) bool {
	now := m.now()
	double := !m.down &&
		now.Sub(m.lastPress) <= DoubleClickInterval &&
		ev.X == m.lastPressX && ev.Y == m.lastPressY
	m.lastPress = now
	m.lastPressX = ev.X
	m.lastPressY = ev.Y
	m.down = true

	if w := m.ctx.Current(); w != nil && w.Mark != nil {
		w.ClearMark()
		w.Flags |= window.FlagFull
	}

	if !m.moveTo(ev.X, ev.Y) {
		return false
	}
	if double {
		m.selectWord()
	}
	return true
}

// wheel scrolls the window under the pointer without touching the dot
// or the mark, clamped at the buffer boundaries.
func (m *Machine) wheel(ev Event, lines int) bool {
	w := m.ctx.WindowAt(ev.Y)
	if w == nil {
		w = m.ctx.Current()
	}
	if w == nil {
		return false
	}
	if lines < 0 {
		w.ScrollUp(-lines)
	} else {
		w.ScrollDown(lines)
	}
	return true
}

// moveTo places the dot at screen position (x, y): locate the owning
// window, make it current, walk from its top line down to the clicked
// row (clamped at end of buffer), and convert the screen column back to
// a byte offset with the renderer's own column rules.
func (m *Machine) moveTo(x, y size.CellCountInt) bool {
	w := m.ctx.WindowAt(y)
	if w == nil {
		return false
	}
	if w != m.ctx.Current() {
		m.ctx.SetCurrent(w)
	}

	head := w.Buf.Head()
	row := y - w.TopRow
	lp := w.LineP
	for count := size.CellCountInt(0); count < row && lp != head; count++ {
		lp = lp.Forward()
	}
	if lp == head {
		lp = lp.Backward()
	}

	w.Dot = lp
	w.DotLine = w.Buf.LineNumber(lp)
	w.Doto = display.OffsetForColumn(lp, x, w.Buf.TabWidth)
	w.Flags |= window.FlagMove
	return true
}

// selectWord puts the mark at the start and the dot at the end of the
// word under the dot. Nothing happens when the dot is not on a word
// character.
func (m *Machine) selectWord() {
	w := m.ctx.Current()
	if w == nil {
		return
	}
	lp := w.Dot
	off := w.Doto
	if off >= lp.Length() || !isWordByte(lp.Get(off)) {
		return
	}
	start := off
	for start > 0 && isWordByte(lp.Get(start-1)) {
		start--
	}
	end := off
	for end < lp.Length() && isWordByte(lp.Get(end)) {
		end++
	}
	w.Mark = lp
	w.Marko = start
	w.MarkLine = w.DotLine
	w.Doto = end
	w.Flags |= window.FlagFull
}

func (m *Machine) clipCopy(text string) {
	if m.clip == nil {
		return
	}
	m.clip.Copy(text)
	m.log.Debug("selection handed to clipboard", "bytes", len(text))
}

func isWordByte(c byte) bool {
	return c == '_' ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z') ||
		(c >= '0' && c <= '9')
}

// selectedText extracts the half-open selection between the mark and
// the dot, newline-joined and decoded back to UTF-8.
func selectedText(w *window.Window) string {
	r := w.Selection()
	if !r.Active || r.Mark == r.Dot {
		return ""
	}

	startLp, startOff := w.Mark, w.Marko
	endLp, endOff := w.Dot, w.Doto
	if r.Dot.Line < r.Mark.Line ||
		(r.Dot.Line == r.Mark.Line && r.Dot.Offset < r.Mark.Offset) {
		startLp, startOff, endLp, endOff = endLp, endOff, startLp, startOff
	}

	var raw []byte
	head := w.Buf.Head()
	for lp := startLp; ; lp = lp.Forward() {
		if lp == head {
			break
		}
		from, to := 0, lp.Length()
		if lp == startLp {
			from = min(startOff, to)
		}
		if lp == endLp {
			to = max(from, min(endOff, to))
		}
		raw = append(raw, lp.Text[from:to]...)
		if lp == endLp {
			break
		}
		raw = append(raw, '\n')
	}

	decoded, err := charmap.ISO8859_1.NewDecoder().Bytes(raw)
	if err != nil {
		// Latin-1 decoding cannot fail; every byte maps.
		return string(raw)
	}
	return string(decoded)
}
