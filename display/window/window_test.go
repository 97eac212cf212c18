package window

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vted/display/buffer"
)

func testBuffer(t *testing.T, text string) *buffer.Buffer {
	t.Helper()
	b := buffer.New("t")
	require.NoError(t, b.SetText(text))
	return b
}

func TestNewWindow(t *testing.T) {
	b := testBuffer(t, "one\ntwo\nthree")
	w := New(b, 2, 10)

	assert.Equal(t, b.FirstLine(), w.LineP)
	assert.Equal(t, b.FirstLine(), w.Dot)
	assert.Equal(t, 1, w.DotLine)
	assert.EqualValues(t, 12, w.ModeRow())
	assert.True(t, w.Contains(2))
	assert.True(t, w.Contains(11))
	assert.False(t, w.Contains(12), "mode line is outside the text area")
	assert.False(t, w.Contains(1))
}

func TestMarkAndSelection(t *testing.T) {
	b := testBuffer(t, "hello")
	w := New(b, 0, 10)

	assert.False(t, w.Selection().Active)

	w.Doto = 2
	w.SetMark()
	w.Doto = 4
	r := w.Selection()
	assert.True(t, r.Active)
	assert.Equal(t, 2, r.Mark.Offset)
	assert.Equal(t, 4, r.Dot.Offset)
	assert.True(t, r.Contains(1, 3))
	assert.False(t, r.Contains(1, 4))

	w.ClearMark()
	assert.False(t, w.Selection().Active)
}

func TestScrollClampsAtBufferEnds(t *testing.T) {
	b := testBuffer(t, "a\nb\nc\nd")
	w := New(b, 0, 10)

	w.ScrollDown(2)
	assert.Equal(t, 3, b.LineNumber(w.LineP))
	assert.NotZero(t, w.Flags&FlagFull)

	// The top clamps at the last line, never the sentinel.
	w.ScrollDown(10)
	assert.Equal(t, 4, b.LineNumber(w.LineP))

	w.ScrollUp(100)
	assert.Equal(t, 1, b.LineNumber(w.LineP))

	// Scrolling never moves the dot.
	assert.Equal(t, b.FirstLine(), w.Dot)
}

func TestTopLineNumber(t *testing.T) {
	b := testBuffer(t, "a\nb\nc\nd\ne")
	w := New(b, 0, 10)

	// Dot on line 4, window top on line 2.
	w.Dot = b.FirstLine().Forward().Forward().Forward()
	w.DotLine = 4
	w.LineP = b.FirstLine().Forward()
	assert.Equal(t, 2, w.TopLineNumber())

	w.LineP = w.Dot
	assert.Equal(t, 4, w.TopLineNumber())
}
