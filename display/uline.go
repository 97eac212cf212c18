package display

import (
	"slices"

	"vted/display/size"
	"vted/display/term"
	"vted/display/video"
)

// uline updates one device row from virtual row vvp against the
// last-drawn state pvp. It only uses basic device operations: character
// writes and erase-to-end-of-line, never insert/delete.
//
// Rows that carry selection highlighting, a mode-line color, a color
// change, or a per-cell attribute change cannot take the prefix/suffix
// shortcut because they need per-cell color switching; those are redrawn
// cell by cell. Everything else redraws only the differing middle span,
// preferring a hardware erase for a long trailing blank run.
func (c *Context) uline(row size.CellCountInt, vvp, pvp *video.Row) {
	hasSelection := vvp.Selected()

	if hasSelection ||
		vvp.Color != pvp.Color ||
		!slices.Equal(vvp.Attr, pvp.Attr) {
		c.drv.MoveTo(row, 0)
		if vvp.Color == term.ColorMode {
			// Mode lines are a single color end to end.
			c.drv.SetColor(term.ColorMode)
			for col := size.CellCountInt(0); col < c.cols; col++ {
				c.drv.PutChar(vvp.Text[col])
			}
			c.drv.SetColor(term.ColorText)
		} else {
			// Text line with possible selection highlighting; switch
			// color only where the attribute changes.
			first := true
			cur := false
			for col := size.CellCountInt(0); col < c.cols; col++ {
				attr := vvp.Attr[col]
				if first || attr != cur {
					if attr {
						c.drv.SetColor(term.ColorSelect)
					} else {
						c.drv.SetColor(term.ColorText)
					}
					cur = attr
					first = false
				}
				c.drv.PutChar(vvp.Text[col])
			}
			c.drv.SetColor(term.ColorText)
		}
		copy(pvp.Attr, vvp.Attr)
		return
	}

	// Optimized path: compare text only.
	start := size.CellCountInt(0)
	for start < c.cols && vvp.Text[start] == pvp.Text[start] {
		start++
	}
	if start == c.cols { // nothing differs
		return
	}

	nbflag := false
	end := c.cols
	for end > start && vvp.Text[end-1] == pvp.Text[end-1] {
		end--
		if vvp.Text[end] != ' ' {
			nbflag = true
		}
	}

	if !nbflag && vvp.Color == term.ColorText {
		// The differing span ends in blanks; see whether erasing the
		// tail beats drawing it.
		eolStart := end
		for eolStart > start && vvp.Text[eolStart-1] == ' ' {
			eolStart--
		}
		if int(end-eolStart) <= c.drv.Costs().EraseEOL {
			eolStart = end
		}
		c.drv.MoveTo(row, start)
		c.drv.SetColor(term.ColorText)
		for col := start; col < eolStart; col++ {
			c.drv.PutChar(vvp.Text[col])
		}
		if eolStart != end {
			c.drv.EraseEOL()
		}
		return
	}

	c.drv.MoveTo(row, start)
	c.drv.SetColor(vvp.Color)
	for col := start; col < end; col++ {
		c.drv.PutChar(vvp.Text[col])
	}
}
