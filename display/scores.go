package display

import (
	"vted/display/size"
	"vted/display/term"
	"vted/display/video"
)

// setScores fills the insert/delete cost matrix for the reflow span
// using the dynamic programming redisplay algorithm described by James
// Gosling. offs is the first screen row of the span, spanSize its
// height; entry (i, j) holds the minimum cost to transform physical
// rows 1..i of the span into virtual rows 1..j.
//
// The last row of the span never accrues insert or delete cost (the
// `i != spanSize` / `j != spanSize` guards below): a line pushed past
// the bottom of the scroll region disappears for free, and relaxing
// that rule changes which lines are eligible for hardware scroll.
//
// Tie-breaking is positional: the delete transition is taken by
// default, the insert transition replaces it only when strictly
// cheaper, and the substitute transition replaces the running best only
// when strictly cheaper again.
func (c *Context) setScores(offs, spanSize size.CellCountInt) {
	costs := c.drv.Costs()
	vrow := func(j size.CellCountInt) *video.Row { return c.vscreen[offs+j-1] }
	prow := func(i size.CellCountInt) *video.Row { return c.pscreen[offs+i-1] }

	sp := c.scoreAt(0, 0)
	sp.itrace = 0
	sp.jtrace = 0
	sp.cost = 0

	// Row 0: pure inserts.
	tempcost := 0
	for j := size.CellCountInt(1); j <= spanSize; j++ {
		sp = c.scoreAt(0, j)
		sp.itrace = 0
		sp.jtrace = j - 1
		tempcost += costs.InsertLine
		tempcost += vrow(j).Cost
		sp.cost = tempcost
	}

	// Column 0: pure deletes.
	tempcost = 0
	for i := size.CellCountInt(1); i <= spanSize; i++ {
		sp = c.scoreAt(i, 0)
		sp.itrace = i - 1
		sp.jtrace = 0
		tempcost += costs.DeleteLine
		sp.cost = tempcost
	}

	for i := size.CellCountInt(1); i <= spanSize; i++ {
		for j := size.CellCountInt(1); j <= spanSize; j++ {
			sp = c.scoreAt(i, j)

			// Delete physical row i.
			sp.itrace = i - 1
			sp.jtrace = j
			bestcost := c.scoreAt(i-1, j).cost
			if j != spanSize {
				bestcost += costs.DeleteLine
			}

			// Insert virtual row j and draw it.
			tempcost = c.scoreAt(i, j-1).cost
			tempcost += vrow(j).Cost
			if i != spanSize {
				tempcost += costs.InsertLine
			}
			if tempcost < bestcost {
				sp.itrace = i
				sp.jtrace = j - 1
				bestcost = tempcost
			}

			// Keep the row, redrawing only when it changed.
			tempcost = c.scoreAt(i-1, j-1).cost
			if !prow(i).Same(vrow(j)) {
				tempcost += vrow(j).Cost
			}
			if tempcost < bestcost {
				sp.itrace = i - 1
				sp.jtrace = j - 1
				bestcost = tempcost
			}

			sp.cost = bestcost
		}
	}
}

// traceback walks the score matrix back from (i, j) to the origin and
// replays the optimal script against the device. Deletions and
// insertions are collected into maximal runs before recursing into the
// remaining prefix, so the device sees one insert/delete call per run;
// the actual device calls happen in document order as the recursion
// returns. Recursion depth is bounded by the span height, which never
// exceeds the terminal row count.
func (c *Context) traceback(offs, spanSize, i, j size.CellCountInt) {
	if i == 0 && j == 0 {
		return
	}
	itrace := c.scoreAt(i, j).itrace
	jtrace := c.scoreAt(i, j).jtrace

	if itrace == i {
		// Run of inserted virtual rows ending at j.
		ninsl := size.CellCountInt(0)
		if i != spanSize {
			ninsl = 1
		}
		ndraw := size.CellCountInt(1)
		for itrace != 0 || jtrace != 0 {
			if c.scoreAt(itrace, jtrace).itrace != itrace {
				break
			}
			jtrace = c.scoreAt(itrace, jtrace).jtrace
			if i != spanSize {
				ninsl++
			}
			ndraw++
		}
		c.traceback(offs, spanSize, itrace, jtrace)
		if ninsl != 0 {
			c.drv.SetColor(term.ColorText)
			c.drv.InsertLines(offs+j-ninsl, offs+spanSize-1, ninsl)
		}
		for {
			// Inserted rows are drawn against the blank image.
			k := offs + j - ndraw
			c.uline(k, c.vscreen[k], c.blanks)
			ndraw--
			if ndraw == 0 {
				break
			}
		}
		return
	}

	if jtrace == j {
		// Run of deleted physical rows ending at i.
		ndell := size.CellCountInt(0)
		if j != spanSize {
			ndell = 1
		}
		for itrace != 0 || jtrace != 0 {
			if c.scoreAt(itrace, jtrace).jtrace != jtrace {
				break
			}
			itrace = c.scoreAt(itrace, jtrace).itrace
			if j != spanSize {
				ndell++
			}
		}
		if ndell != 0 {
			c.drv.SetColor(term.ColorText)
			c.drv.DeleteLines(offs+i-ndell, offs+spanSize-1, ndell)
		}
		c.traceback(offs, spanSize, itrace, jtrace)
		return
	}

	c.traceback(offs, spanSize, itrace, jtrace)
	k := offs + j - 1
	c.uline(k, c.vscreen[k], c.pscreen[offs+i-1])
}
