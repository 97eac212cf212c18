// Package video holds the screen-cell model: one Row per visible
// terminal line, kept in two parallel grids (virtual = what we want on
// the glass, physical = what we believe is on it). The update engine
// reconciles the two.
package video

import (
	"fmt"

	"github.com/mitchellh/hashstructure/v2"

	"vted/display/size"
	"vted/display/term"
	"vted/display/utils"
)

type Flags uint8

const (
	// FlagChanged marks a row that differs from what was last drawn.
	FlagChanged Flags = 1 << iota
	// FlagHashBad marks the cached hash and cost as stale.
	FlagHashBad
	// FlagExtended marks a row rendered with a horizontal scroll offset
	// because the cursor sits past the right margin of its line.
	FlagExtended
)

// Row is one visible terminal line. Text and Attr are always exactly as
// wide as the terminal; Attr carries the per-cell selection attribute.
type Row struct {
	Text  []byte
	Attr  []bool
	Color term.Color
	Hash  uint64
	Cost  int
	Flags Flags
}

func NewRow(cols size.CellCountInt) *Row {
	r := &Row{
		Text:  make([]byte, cols),
		Attr:  make([]bool, cols),
		Color: term.ColorText,
		Flags: FlagChanged | FlagHashBad,
	}
	for i := range r.Text {
		r.Text[i] = ' '
	}
	return r
}

// NewGrid allocates rows blank rows of cols cells each. Allocation
// failure is a fatal runtime panic; the display cannot continue without
// its grids and no caller could do anything useful with an error.
func NewGrid(rows, cols size.CellCountInt) []*Row {
	grid := make([]*Row, rows)
	for i := range grid {
		grid[i] = NewRow(cols)
	}
	return grid
}

// CopyTo forwards this (virtual) row onto its physical counterpart after
// the device has been updated. The changed flag is cleared on the source
// first so both sides agree the row is clean.
func (r *Row) CopyTo(p *Row) {
	r.Flags &^= FlagChanged
	p.Flags = r.Flags
	p.Hash = r.Hash
	p.Cost = r.Cost
	p.Color = r.Color
	copy(p.Text, r.Text)
	copy(p.Attr, r.Attr)
}

// UpdateHash recomputes the cached hash code and redraw cost when they
// are stale. The cost is the number of characters up to the last
// non-blank cell, plus the cheaper of drawing or erasing the trailing
// blank run (capped by the device's erase-to-EOL cost). The hash covers
// only the non-blank prefix so rows that differ in trailing blanks still
// compare equal.
func (r *Row) UpdateHash(eraseCost int) {
	if r.Flags&FlagHashBad == 0 {
		return
	}
	i := len(r.Text)
	for i > 0 && r.Text[i-1] == ' ' {
		i--
	}
	blanks := len(r.Text) - i
	if blanks > eraseCost {
		blanks = eraseCost
	}
	r.Cost = i + blanks

	hash, err := hashstructure.Hash(r.Text[:i], hashstructure.FormatV2, nil)
	utils.Assert(err == nil, fmt.Sprintf("failed to hash video row: %v", err))
	r.Hash = hash
	r.Flags &^= FlagHashBad
}

// Same reports whether two rows would look identical on the glass as far
// as the reflow trim is concerned: equal color and equal content hash.
// Both rows must have fresh hashes.
func (r *Row) Same(other *Row) bool {
	utils.Assert(r.Flags&FlagHashBad == 0 && other.Flags&FlagHashBad == 0)
	return r.Color == other.Color && r.Hash == other.Hash
}

// Selected reports whether any cell in the row carries the selection
// attribute. Such rows can never take the prefix/suffix shortcut in the
// cheap diff because the highlight needs per-cell color switching.
func (r *Row) Selected() bool {
	for _, a := range r.Attr {
		if a {
			return true
		}
	}
	return false
}
