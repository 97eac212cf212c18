// Package buffer is the line-storage layer the display consumes. The
// engine only needs navigation primitives: forward/backward links, a
// sentinel marking end-of-buffer, line length and byte access, and the
// buffer's tab width. This implementation keeps lines on a circular
// doubly-linked list around a sentinel head, which makes the "walk
// forward until the sentinel" loops in the engine and mouse code cheap
// and allocation-free.
package buffer

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// Line is one logical line of text. Text holds raw bytes; the display
// layer is byte-oriented and renders anything outside printable ASCII
// as an escape.
type Line struct {
	prev, next *Line
	Text       []byte
}

// Forward returns the next line. On the last line it returns the
// buffer's sentinel head.
func (lp *Line) Forward() *Line { return lp.next }

// Backward returns the previous line. On the first line it returns the
// buffer's sentinel head.
func (lp *Line) Backward() *Line { return lp.prev }

// Length returns the number of bytes in the line.
func (lp *Line) Length() int { return len(lp.Text) }

// Get returns the byte at offset i.
func (lp *Line) Get(i int) byte { return lp.Text[i] }

// Buffer is a named collection of lines plus the per-buffer settings the
// display needs to render it.
type Buffer struct {
	head *Line // sentinel, head.next is the first line

	Name     string
	TabWidth int
	ReadOnly bool
	Changed  bool
	Modes    []string

	nlines int
}

const DefaultTabWidth = 8

func New(name string) *Buffer {
	head := &Line{}
	head.prev = head
	head.next = head
	b := &Buffer{
		head:     head,
		Name:     name,
		TabWidth: DefaultTabWidth,
		Modes:    []string{"fundamental"},
	}
	// A buffer always has at least one (empty) line.
	b.Append(nil)
	b.Changed = false
	return b
}

// Head returns the sentinel line. Walking forward from FirstLine until
// Head marks end-of-buffer.
func (b *Buffer) Head() *Line { return b.head }

// FirstLine returns the first real line of the buffer.
func (b *Buffer) FirstLine() *Line { return b.head.next }

// Lines returns the number of lines in the buffer.
func (b *Buffer) Lines() int { return b.nlines }

// Append adds a line holding text at the end of the buffer.
func (b *Buffer) Append(text []byte) *Line {
	return b.InsertAfter(b.head.prev, text)
}

// InsertAfter links a new line holding text directly after lp.
func (b *Buffer) InsertAfter(lp *Line, text []byte) *Line {
	nl := &Line{Text: append([]byte(nil), text...)}
	nl.prev = lp
	nl.next = lp.next
	lp.next.prev = nl
	lp.next = nl
	b.nlines++
	b.Changed = true
	return nl
}

// Remove unlinks lp from the buffer. Removing the last remaining line
// or the sentinel is not supported.
func (b *Buffer) Remove(lp *Line) {
	if lp == b.head || b.nlines == 1 {
		return
	}
	lp.prev.next = lp.next
	lp.next.prev = lp.prev
	b.nlines--
	b.Changed = true
}

// LineNumber returns the 1-based number of lp, or 0 if lp is not in the
// buffer.
func (b *Buffer) LineNumber(lp *Line) int {
	n := 1
	for cur := b.FirstLine(); cur != b.head; cur = cur.next {
		if cur == lp {
			return n
		}
		n++
	}
	return 0
}

// SetText replaces the buffer contents with s, one Line per newline.
// The display layer stores bytes, so s is transcoded through Latin-1;
// runes outside that repertoire are an error.
func (b *Buffer) SetText(s string) error {
	encoded, err := charmap.ISO8859_1.NewEncoder().String(s)
	if err != nil {
		return err
	}
	head := &Line{}
	head.prev = head
	head.next = head
	b.head = head
	b.nlines = 0
	for _, line := range strings.Split(encoded, "\n") {
		b.Append([]byte(line))
	}
	b.Changed = false
	return nil
}

// String renders the buffer back to UTF-8, one newline between lines.
func (b *Buffer) String() string {
	var sb strings.Builder
	dec := charmap.ISO8859_1.NewDecoder()
	first := true
	for lp := b.FirstLine(); lp != b.head; lp = lp.next {
		if !first {
			sb.WriteByte('\n')
		}
		first = false
		decoded, err := dec.Bytes(lp.Text)
		if err != nil {
			// Latin-1 decoding cannot fail; every byte maps.
			decoded = lp.Text
		}
		sb.Write(decoded)
	}
	return sb.String()
}
