package display

import (
	"fmt"

	dw "github.com/mattn/go-runewidth"

	"vted/display/buffer"
	"vted/display/size"
)

// isCtrl reports whether c renders as a two-character ^X escape.
func isCtrl(c byte) bool { return c < 0x20 || c == 0x7f }

// isPrint reports whether c is stored in a cell as-is. The display is
// byte-oriented; anything outside printable ASCII gets an escape.
func isPrint(c byte) bool { return c >= 0x20 && c < 0x7f }

// NextTabStop returns the first multiple of tabw strictly greater than
// col. A non-positive tab width falls back to the default.
func NextTabStop(col size.CellCountInt, tabw int) size.CellCountInt {
	if tabw <= 0 {
		tabw = buffer.DefaultTabWidth
	}
	return col - col%tabw + tabw
}

// octal renders a byte the renderer has no better form for.
func octal(c byte) string { return fmt.Sprintf("\\%o", c) }

// vtmove places the virtual cursor. No bounds checking; the renderer
// deliberately starts at a negative column for extended lines.
func (c *Context) vtmove(row, col size.CellCountInt) {
	c.vtrow = row
	c.vtcol = col
}

// vtputc writes one logical character into the current virtual row,
// advancing the virtual column. Overflow overwrites the last column
// with '$' and stops advancing. Tabs expand to the next multiple of the
// tab width, but the loop is bounded by the row width: on a screen
// whose width is not a multiple of the tab width the virtual cursor can
// hit the right margin before the next stop, and an unbounded loop
// would spin there forever. Control characters render as ^X, printable
// ASCII as itself, anything else as a backslash-octal escape.
func (c *Context) vtputc(ch byte, tabw int) {
	vp := c.vscreen[c.vtrow]
	switch {
	case c.vtcol >= c.cols:
		vp.Text[c.cols-1] = '$'
	case ch == '\t':
		target := NextTabStop(c.vtcol, tabw)
		for {
			c.vtputc(' ', tabw)
			if !(c.vtcol < c.cols && c.vtcol < target) {
				break
			}
		}
	case isCtrl(ch):
		c.vtputc('^', tabw)
		c.vtputc(ch^0x40, tabw)
	case isPrint(ch):
		vp.Text[c.vtcol] = ch
		c.vtcol++
	default:
		for i := 0; i < len(octal(ch)); i++ {
			c.vtputc(octal(ch)[i], tabw)
		}
	}
}

// vtpute is vtputc for the extended (horizontally scrolled) line the
// cursor is on. Rendering starts at virtual column -lbound; cells left
// of column zero advance the column without being stored, and tab stops
// are computed against the unscrolled column.
func (c *Context) vtpute(ch byte, tabw int) {
	vp := c.vscreen[c.vtrow]
	switch {
	case c.vtcol >= c.cols:
		vp.Text[c.cols-1] = '$'
	case ch == '\t':
		target := NextTabStop(c.vtcol+c.lbound, tabw)
		for {
			c.vtpute(' ', tabw)
			if !(c.vtcol+c.lbound < target && c.vtcol < c.cols) {
				break
			}
		}
	case isCtrl(ch):
		c.vtpute('^', tabw)
		c.vtpute(ch^0x40, tabw)
	case isPrint(ch):
		if c.vtcol >= 0 {
			vp.Text[c.vtcol] = ch
		}
		c.vtcol++
	default:
		s := octal(ch)
		for i := 0; i < len(s); i++ {
			c.vtpute(s[i], tabw)
		}
	}
}

// vteeol blanks the current virtual row from the virtual cursor to the
// right margin.
func (c *Context) vteeol() {
	vp := c.vscreen[c.vtrow]
	for ; c.vtcol < c.cols; c.vtcol++ {
		if c.vtcol >= 0 {
			vp.Text[c.vtcol] = ' '
			vp.Attr[c.vtcol] = false
		}
	}
}

// vtputs writes a string through vtputc and reports its display width.
func (c *Context) vtputs(s string, tabw int) int {
	for i := 0; i < len(s); i++ {
		c.vtputc(s[i], tabw)
	}
	return dw.StringWidth(s)
}

// VisualColumn replays the renderer's column-advance rules over lp up to
// byte offset doto without writing any cells, returning the screen
// column the cursor lands on.
func VisualColumn(lp *buffer.Line, doto int, tabw int) size.CellCountInt {
	col := size.CellCountInt(0)
	for i := 0; i < doto && i < lp.Length(); i++ {
		ch := lp.Get(i)
		switch {
		case ch == '\t':
			col = NextTabStop(col, tabw)
		case isCtrl(ch):
			col += 2
		case isPrint(ch):
			col++
		default:
			col += size.CellCountInt(len(octal(ch)))
		}
	}
	return col
}

// OffsetForColumn converts a screen column back into a byte offset
// within lp by replaying the same column-advance rules the renderer
// uses. Columns past the end of the line clamp to the line length.
func OffsetForColumn(lp *buffer.Line, targetcol size.CellCountInt, tabw int) int {
	col := size.CellCountInt(0)
	for i := 0; i < lp.Length(); i++ {
		if col >= targetcol {
			return i
		}
		ch := lp.Get(i)
		switch {
		case ch == '\t':
			col = NextTabStop(col, tabw)
		case isCtrl(ch):
			col += 2
		case isPrint(ch):
			col++
		default:
			col += size.CellCountInt(len(octal(ch)))
		}
	}
	return lp.Length()
}
