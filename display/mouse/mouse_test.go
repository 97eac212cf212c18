package mouse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vted/display"
	"vted/display/buffer"
	"vted/display/size"
	"vted/display/term"
	"vted/display/window"
)

// nopDriver satisfies term.Driver without a device; the machine tests
// only care about window and buffer state, not drawn output.
type nopDriver struct {
	rows, cols size.CellCountInt
}

func (d nopDriver) Size() (rows, cols size.CellCountInt) { return d.rows, d.cols }
func (d nopDriver) Costs() term.Costs {
	return term.Costs{InsertLine: 11, DeleteLine: 11, EraseEOL: 3}
}
func (d nopDriver) MoveTo(row, col size.CellCountInt)       {}
func (d nopDriver) SetColor(color term.Color)               {}
func (d nopDriver) PutChar(c byte)                          {}
func (d nopDriver) EraseEOL()                               {}
func (d nopDriver) EraseScreen()                            {}
func (d nopDriver) InsertLines(row, bot, n size.CellCountInt) {}
func (d nopDriver) DeleteLines(row, bot, n size.CellCountInt) {}
func (d nopDriver) Flush()                                  {}

type recordingClipboard struct {
	copies []string
}

func (c *recordingClipboard) Copy(text string) { c.copies = append(c.copies, text) }

type machineFixture struct {
	m     *Machine
	ctx   *display.Context
	w     *window.Window
	clip  *recordingClipboard
	clock time.Time
}

func (f *machineFixture) advance(d time.Duration) { f.clock = f.clock.Add(d) }

func newFixture(t *testing.T, text string) *machineFixture {
	t.Helper()
	ctx := display.NewContext(display.Options{
		Driver: nopDriver{rows: 24, cols: 80},
	})
	buf := buffer.New("t")
	require.NoError(t, buf.SetText(text))
	w := window.New(buf, 0, 22)
	ctx.AddWindow(w)

	f := &machineFixture{
		ctx:   ctx,
		w:     w,
		clip:  &recordingClipboard{},
		clock: time.Unix(1000, 0),
	}
	f.m = New(Options{
		Context:   ctx,
		Clipboard: f.clip,
		Now:       func() time.Time { return f.clock },
	})
	return f
}

func TestPressMovesDot(t *testing.T) {
	f := newFixture(t, "hello world\nsecond line\nthird")

	ok := f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 6, Y: 1})
	assert.True(t, ok)
	assert.Equal(t, 2, f.w.DotLine)
	assert.Equal(t, 6, f.w.Doto)
	assert.NotZero(t, f.w.Flags&window.FlagMove)
	assert.Nil(t, f.w.Mark)
	assert.Empty(t, f.clip.copies)
}

func TestPressClampsBelowLastLine(t *testing.T) {
	f := newFixture(t, "only\ntwo")

	ok := f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 0, Y: 15})
	assert.True(t, ok)
	assert.Equal(t, 2, f.w.DotLine, "click below the text lands on the last line")
}

func TestPressClampsPastLineEnd(t *testing.T) {
	f := newFixture(t, "short\na much longer line")

	ok := f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 50, Y: 0})
	assert.True(t, ok)
	assert.Equal(t, 1, f.w.DotLine)
	assert.Equal(t, len("short"), f.w.Doto)
}

func TestPressOutsideTextAreaIgnored(t *testing.T) {
	f := newFixture(t, "hello")

	// Row 22 is the mode line, row 23 the echo area.
	ok := f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 0, Y: 22})
	assert.False(t, ok)
	assert.Equal(t, 1, f.w.DotLine)
}

func TestPressClearsSelection(t *testing.T) {
	f := newFixture(t, "hello world")
	f.w.Doto = 2
	f.w.SetMark()
	f.w.Doto = 7

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 0, Y: 0})
	assert.Nil(t, f.w.Mark)
	assert.NotZero(t, f.w.Flags&window.FlagFull, "clearing a visible selection forces a full redraw")
}

func TestDoubleClickSelectsWord(t *testing.T) {
	f := newFixture(t, "hello world")

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 8, Y: 0})
	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 8, Y: 0})
	f.advance(200 * time.Millisecond)
	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 8, Y: 0})

	require.NotNil(t, f.w.Mark)
	assert.Equal(t, 6, f.w.Marko, "mark at the start of the word")
	assert.Equal(t, 11, f.w.Doto, "dot past the end of the word")
	assert.NotZero(t, f.w.Flags&window.FlagFull)
	assert.Empty(t, f.clip.copies, "selection is not copied until release")

	// The release after the double click hands the word off.
	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 8, Y: 0})
	assert.Equal(t, []string{"world"}, f.clip.copies)
}

func TestDoubleClickOnNonWordDoesNothing(t *testing.T) {
	f := newFixture(t, "a ; b")

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 2, Y: 0})
	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 2, Y: 0})
	f.advance(100 * time.Millisecond)
	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 2, Y: 0})

	assert.Nil(t, f.w.Mark)
	assert.Equal(t, 2, f.w.Doto)
}

func TestSlowSecondClickIsNotDouble(t *testing.T) {
	f := newFixture(t, "hello world")

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 2, Y: 0})
	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 2, Y: 0})
	f.advance(DoubleClickInterval + time.Millisecond)
	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 2, Y: 0})

	assert.Nil(t, f.w.Mark)
}

func TestSecondClickElsewhereIsNotDouble(t *testing.T) {
	f := newFixture(t, "hello world")

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 2, Y: 0})
	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 2, Y: 0})
	f.advance(100 * time.Millisecond)
	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 3, Y: 0})

	assert.Nil(t, f.w.Mark)
}

func TestDragSelectsAndReleaseCopies(t *testing.T) {
	f := newFixture(t, "hello world\nsecond line")

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 0, Y: 0})
	f.m.Handle(Event{Type: EventDrag, Button: ButtonLeft, X: 5, Y: 0})

	require.NotNil(t, f.w.Mark)
	assert.Equal(t, 0, f.w.Marko)
	assert.Equal(t, 5, f.w.Doto)
	assert.Empty(t, f.clip.copies)

	// Dragging further only moves the dot; the mark stays put.
	f.m.Handle(Event{Type: EventDrag, Button: ButtonLeft, X: 6, Y: 1})
	assert.Equal(t, 0, f.w.Marko)
	assert.Equal(t, 1, f.w.MarkLine)
	assert.Equal(t, 2, f.w.DotLine)
	assert.Equal(t, 6, f.w.Doto)

	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 6, Y: 1})
	assert.Equal(t, []string{"hello world\nsecond"}, f.clip.copies)
}

func TestBackwardDragCopiesSameText(t *testing.T) {
	f := newFixture(t, "hello world")

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 8, Y: 0})
	f.m.Handle(Event{Type: EventDrag, Button: ButtonLeft, X: 2, Y: 0})
	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 2, Y: 0})

	assert.Equal(t, []string{"llo wo"}, f.clip.copies)
}

func TestDragWithoutPressIgnored(t *testing.T) {
	f := newFixture(t, "hello")

	ok := f.m.Handle(Event{Type: EventDrag, Button: ButtonLeft, X: 3, Y: 0})
	assert.False(t, ok)
	assert.Nil(t, f.w.Mark)
}

func TestReleaseWithoutSelectionCopiesNothing(t *testing.T) {
	f := newFixture(t, "hello")

	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 1, Y: 0})
	f.m.Handle(Event{Type: EventRelease, Button: ButtonLeft, X: 1, Y: 0})
	assert.Empty(t, f.clip.copies)
}

func TestWheelScrollsWithoutMovingDot(t *testing.T) {
	f := newFixture(t, "l1\nl2\nl3\nl4\nl5\nl6\nl7\nl8\nl9\nl10")

	// Put a selection up so we can verify the wheel leaves it alone.
	f.w.Doto = 1
	f.w.SetMark()
	dot, mark := f.w.Dot, f.w.Mark

	ok := f.m.Handle(Event{Type: EventPress, Button: ButtonWheelDown, X: 0, Y: 3})
	assert.True(t, ok)
	assert.Equal(t, 4, f.w.Buf.LineNumber(f.w.LineP), "top moved down three lines")
	assert.Equal(t, dot, f.w.Dot)
	assert.Equal(t, mark, f.w.Mark)
	assert.NotZero(t, f.w.Flags&window.FlagFull)

	f.m.Handle(Event{Type: EventPress, Button: ButtonWheelUp, X: 0, Y: 3})
	assert.Equal(t, 1, f.w.Buf.LineNumber(f.w.LineP))

	// Clamped at the top.
	f.m.Handle(Event{Type: EventPress, Button: ButtonWheelUp, X: 0, Y: 3})
	assert.Equal(t, 1, f.w.Buf.LineNumber(f.w.LineP))
}

func TestWheelClampsAtBottom(t *testing.T) {
	f := newFixture(t, "l1\nl2")

	f.m.Handle(Event{Type: EventPress, Button: ButtonWheelDown, X: 0, Y: 0})
	assert.Equal(t, 2, f.w.Buf.LineNumber(f.w.LineP))
}

func TestMiddleAndRightButtonsUnhandled(t *testing.T) {
	f := newFixture(t, "hello")

	assert.False(t, f.m.Handle(Event{Type: EventPress, Button: ButtonMiddle, X: 0, Y: 0}))
	assert.False(t, f.m.Handle(Event{Type: EventPress, Button: ButtonRight, X: 0, Y: 0}))
	assert.False(t, f.m.Handle(Event{Type: EventRelease, Button: ButtonRight, X: 0, Y: 0}))
	assert.Equal(t, 0, f.w.Doto)
}

func TestClickColumnRespectsTabs(t *testing.T) {
	f := newFixture(t, "a\tb")

	// Column 8 is where the 'b' after the tab renders.
	f.m.Handle(Event{Type: EventPress, Button: ButtonLeft, X: 8, Y: 0})
	assert.Equal(t, 2, f.w.Doto)
}
