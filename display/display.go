package display

import (
	"vted/display/buffer"
	"vted/display/size"
	"vted/display/term"
	"vted/display/utils"
	"vted/display/video"
	"vted/display/window"
)

// Update runs one full reconciliation cycle: propagate dirty flags,
// reframe windows whose dot scrolled out of view, populate the virtual
// rows that need it, then make the glass match by the cheapest of the
// three strategies. modelineColor is the color mode lines are drawn in
// this cycle.
//
// The cycle is skipped when input is already buffered; keystrokes
// arriving faster than the terminal can draw would otherwise waste
// whole repaints that are immediately out of date.
func (c *Context) Update(modelineColor term.Color) {
	if c.inputPending != nil && c.inputPending() {
		return
	}

	// Dirty propagation.
	if c.garbage {
		for _, w := range c.windows {
			w.Flags |= window.FlagMode | window.FlagFull
		}
	}
	if c.linenos || c.colnos {
		// The mode line shows the dot position, so it is stale after
		// any cursor motion.
		for _, w := range c.windows {
			w.Flags |= window.FlagMode
		}
	}
	for _, w := range c.windows {
		// Selection highlighting cannot be expressed by the cheap
		// per-row diff.
		if w.Mark != nil && w.Flags != 0 {
			w.Flags |= window.FlagFull
		}
	}

	hflag := false
	for _, w := range c.windows {
		if w.Flags == 0 {
			continue
		}
		head := w.Buf.Head()
		tabw := w.Buf.TabWidth

		// Reframe when forced, or when the dot is no longer visible.
		framed := false
		if w.Flags&window.FlagFrame == 0 {
			lp := w.LineP
			for i := size.CellCountInt(0); i < w.Rows; i++ {
				if lp == w.Dot {
					framed = true
					break
				}
				if lp == head {
					break
				}
				lp = lp.Forward()
			}
		}
		if !framed {
			i := w.Frame
			if i > 0 {
				i--
				if i >= int(w.Rows) {
					i = int(w.Rows) - 1
				}
			} else if i < 0 {
				i += int(w.Rows)
				if i < 0 {
					i = 0
				}
			} else {
				i = int(w.Rows) / 2
			}
			lp := w.Dot
			for i != 0 && lp.Backward() != head {
				i--
				lp = lp.Backward()
			}
			w.LineP = lp
			w.Flags |= window.FlagFull
		}

		// Row population.
		lp := w.LineP
		i := w.TopRow
		lineNum := w.TopLineNumber()
		if w.Flags&^window.FlagMode == window.FlagEdit {
			// Only the dot's line changed.
			for lp != w.Dot {
				i++
				lineNum++
				lp = lp.Forward()
			}
			c.renderRow(i, lp, w, lineNum, tabw)
		} else if w.Flags&(window.FlagEdit|window.FlagFull) != 0 {
			// Line identities may have shifted; the cheap diff cannot
			// express that, so flag the hash-guided reflow.
			hflag = true
			for i < w.TopRow+w.Rows {
				vp := c.vscreen[i]
				vp.Color = term.ColorText
				vp.Flags |= video.FlagChanged | video.FlagHashBad
				c.vtmove(i, 0)
				if lp != head {
					c.renderChars(lp, w, lineNum, tabw)
					lp = lp.Forward()
					lineNum++
				}
				c.vteeol()
				i++
			}
		}
		if w.Flags&window.FlagMode != 0 {
			c.modeline(w, modelineColor)
		}
		w.Flags = 0
		w.Frame = 0
	}

	// Cursor location in the current window.
	currow := size.CellCountInt(0)
	curcol := size.CellCountInt(0)
	if c.cur != nil {
		lp := c.cur.LineP
		currow = c.cur.TopRow
		for lp != c.cur.Dot {
			currow++
			lp = lp.Forward()
		}
		curcol = VisualColumn(c.cur.Dot, c.cur.Doto, c.cur.Buf.TabWidth)
	}

	if c.cur != nil && curcol >= c.cols-1 {
		// The cursor sits past the right margin: render its line with a
		// horizontal scroll offset.
		c.vscreen[currow].Flags |= video.FlagExtended | video.FlagChanged
		c.updext(currow, curcol)
	} else {
		c.lbound = 0
	}

	// De-extend rows the cursor has left.
	for _, w := range c.windows {
		head := w.Buf.Head()
		tabw := w.Buf.TabWidth
		lp := w.LineP
		lineNum := w.TopLineNumber()
		for i := w.TopRow; i < w.TopRow+w.Rows; i++ {
			vp := c.vscreen[i]
			if vp.Flags&video.FlagExtended != 0 {
				// Extended rows always count as changed.
				vp.Flags |= video.FlagChanged
				if w != c.cur || lp != w.Dot || curcol < c.cols-1 {
					c.renderRow(i, lp, w, lineNum, tabw)
					vp.Flags &^= video.FlagExtended
				}
			}
			if lp != head {
				lp = lp.Forward()
				lineNum++
			}
		}
		if c.garbage {
			c.vscreen[w.ModeRow()].Flags |= video.FlagChanged
		}
	}

	switch {
	case c.garbage:
		c.repaint(currow, curcol)
	case hflag:
		c.reflow(currow, curcol)
	default:
		c.easyUpdate(currow, curcol)
	}
}

// renderRow renders one buffer line onto a screen row, stamping each
// cell's selection attribute as it goes.
func (c *Context) renderRow(row size.CellCountInt, lp *buffer.Line, w *window.Window, lineNum, tabw int) {
	vp := c.vscreen[row]
	vp.Color = term.ColorText
	vp.Flags |= video.FlagChanged | video.FlagHashBad
	c.vtmove(row, 0)
	c.renderChars(lp, w, lineNum, tabw)
	c.vteeol()
}

// renderChars writes lp's characters through vtputc, stamping the
// selection attribute onto every cell each character expands to.
func (c *Context) renderChars(lp *buffer.Line, w *window.Window, lineNum, tabw int) {
	sel := w.Selection()
	for j := 0; j < lp.Length(); j++ {
		old := c.vtcol
		s := sel.Contains(lineNum, j)
		c.vtputc(lp.Get(j), tabw)
		for ; old < c.vtcol && old < c.cols; old++ {
			c.vscreen[c.vtrow].Attr[old] = s
		}
	}
}

// updext renders the extended line the cursor is on, scrolled so the
// cursor lands inside the middle half of the screen, with a '$' marker
// in column 0. The offset formula is idempotent for a fixed cursor
// column and width.
func (c *Context) updext(currow, curcol size.CellCountInt) {
	if c.cols < 2 {
		return
	}
	c.lbound = curcol - curcol%(c.cols>>1) - (c.cols >> 2)

	w := c.cur
	tabw := w.Buf.TabWidth
	lp := w.Dot
	lineNum := w.DotLine
	sel := w.Selection()

	c.vtmove(currow, -c.lbound) // start scanning offscreen
	for j := 0; j < lp.Length(); j++ {
		old := c.vtcol
		s := sel.Contains(lineNum, j)
		c.vtpute(lp.Get(j), tabw)
		for ; old < c.vtcol; old++ {
			if old >= 0 && old < c.cols {
				c.vscreen[c.vtrow].Attr[old] = s
			}
		}
	}
	c.vteeol()
	c.vscreen[currow].Text[0] = '$'
	c.vscreen[currow].Flags |= video.FlagHashBad
}

// repaint is the garbage strategy: erase the display and draw every row
// from scratch, no diffing.
func (c *Context) repaint(currow, curcol size.CellCountInt) {
	c.garbage = false
	c.drv.MoveTo(0, 0)
	c.drv.EraseScreen()
	for i := size.CellCountInt(0); i < c.rows-1; i++ {
		c.uline(i, c.vscreen[i], c.blanks)
		c.vscreen[i].CopyTo(c.pscreen[i])
	}
	c.place(currow, curcol)
}

// reflow is the hash-guided strategy: trim the rows that still match
// from both ends, then run the insert/delete cost matrix over whatever
// span remains and replay the optimal script.
func (c *Context) reflow(currow, curcol size.CellCountInt) {
	eraseCost := c.drv.Costs().EraseEOL
	for i := size.CellCountInt(0); i < c.rows-1; i++ {
		c.vscreen[i].UpdateHash(eraseCost)
		c.pscreen[i].UpdateHash(eraseCost)
	}

	offs := size.CellCountInt(0)
	for offs != c.rows-1 {
		vp1, vp2 := c.vscreen[offs], c.pscreen[offs]
		if !vp1.Same(vp2) {
			break
		}
		c.uline(offs, vp1, vp2)
		vp1.CopyTo(vp2)
		offs++
	}
	if offs == c.rows-1 { // nothing shifted after all
		c.place(currow, curcol)
		return
	}

	spanEnd := c.rows - 1
	for spanEnd != offs {
		vp1, vp2 := c.vscreen[spanEnd-1], c.pscreen[spanEnd-1]
		if !vp1.Same(vp2) {
			break
		}
		c.uline(spanEnd-1, vp1, vp2)
		vp1.CopyTo(vp2)
		spanEnd--
	}
	spanSize := spanEnd - offs

	// The span is only entered when a difference was already found, so
	// an empty span means the dirty tracking upstream is inconsistent.
	utils.Assert(spanSize != 0, "illegal reflow span in update")

	c.setScores(offs, spanSize)
	c.traceback(offs, spanSize, spanSize, spanSize)
	for i := size.CellCountInt(0); i < spanSize; i++ {
		c.vscreen[offs+i].CopyTo(c.pscreen[offs+i])
	}
	c.place(currow, curcol)
}

// easyUpdate is the default strategy: a per-row diff of every row
// flagged changed.
func (c *Context) easyUpdate(currow, curcol size.CellCountInt) {
	for i := size.CellCountInt(0); i < c.rows-1; i++ {
		vp1, vp2 := c.vscreen[i], c.pscreen[i]
		if vp1.Flags&video.FlagChanged != 0 {
			c.uline(i, vp1, vp2)
			vp1.CopyTo(vp2)
		}
	}
	c.place(currow, curcol)
}

// place parks the hardware cursor on the dot and flushes.
func (c *Context) place(currow, curcol size.CellCountInt) {
	c.drv.MoveTo(currow, curcol-c.lbound)
	c.drv.Flush()
}
