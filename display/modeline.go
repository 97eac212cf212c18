package display

import (
	"fmt"
	"strings"

	"vted/display/term"
	"vted/display/video"
	"vted/display/window"
)

// modeline renders the status row below a window's text area. This is
// the only routine with any idea of how the mode line is formatted.
func (c *Context) modeline(w *window.Window, color term.Color) {
	row := w.ModeRow()
	vp := c.vscreen[row]
	vp.Color = color
	vp.Flags |= video.FlagChanged | video.FlagHashBad
	c.vtmove(row, 0)

	bp := w.Buf
	tabw := bp.TabWidth

	c.vtputc('-', tabw)
	c.vtputc(':', tabw)
	switch {
	case bp.ReadOnly:
		c.vtputc('%', tabw)
		if bp.Changed {
			c.vtputc('*', tabw)
		} else {
			c.vtputc('%', tabw)
		}
	case bp.Changed:
		c.vtputc('*', tabw)
		c.vtputc('*', tabw)
	default:
		c.vtputc('-', tabw)
		c.vtputc('-', tabw)
	}
	c.vtputc('-', tabw)
	c.vtputc(' ', tabw)
	n := 6

	if bp.Name != "" {
		n += c.vtputs(bp.Name, tabw)
		n += c.vtputs("  ", tabw)
	}
	for n < 27 {
		c.vtputc(' ', tabw)
		n++
	}

	col := int(VisualColumn(w.Dot, w.Doto, tabw)) + 1
	switch {
	case c.linenos && c.colnos:
		n += c.vtputs(fmt.Sprintf("(%d,%d)  ", w.DotLine, col), tabw)
	case c.linenos:
		n += c.vtputs(fmt.Sprintf("L%d  ", w.DotLine), tabw)
	case c.colnos:
		n += c.vtputs(fmt.Sprintf("C%d  ", col), tabw)
	}
	for n < 35 {
		c.vtputc(' ', tabw)
		n++
	}

	c.vtputc('(', tabw)
	n++
	for i, mode := range bp.Modes {
		if i > 0 {
			c.vtputc(' ', tabw)
			n++
		}
		if mode == "" {
			continue
		}
		c.vtputc(strings.ToUpper(mode[:1])[0], tabw)
		n += c.vtputs(mode[1:], tabw) + 1
	}
	c.vtputc(')', tabw)
	n++

	if c.clock {
		n += c.vtputs(c.now().Format("  15:04"), tabw)
	}

	for n < int(c.cols) {
		c.vtputc(' ', tabw)
		n++
	}
}
