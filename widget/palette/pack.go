// SPDX-License-Identifier: Unlicense OR MIT

package palette

import "widgetry.org/layout"

// cell is the packing footprint of a visible item.
type cell struct {
	// span is the number of cells the item covers in its row.
	span   int
	expand bool
	newRow bool
}

// slot is the position of a packed item.
type slot struct {
	row, col, span int
}

// flow packs cells into rows of the given number of columns, appending
// a slot per cell to slots. A row ends before an item with NewRow,
// after an expanding item, and when the next item doesn't fit. An
// expanding item covers the rest of its row.
func flow(cells []cell, columns int, slots []slot) ([]slot, int) {
	slots = slots[:0]
	columns = layout.Max(columns, 1)
	row, col := -1, 0
	for _, c := range cells {
		span := layout.Clamp(c.span, 1, columns)
		if row < 0 || c.newRow || col+span > columns {
			row++
			col = 0
		}
		if c.expand {
			span = columns - col
		}
		slots = append(slots, slot{row: row, col: col, span: span})
		col += span
	}
	return slots, row + 1
}

// searchColumns returns the least number of columns that packs cells
// into at most maxRows rows. Rows forced by NewRow and expanding cells
// raise maxRows, so the result is never wider than those breaks need.
func searchColumns(cells []cell, maxRows int) int {
	if len(cells) == 0 {
		return 1
	}
	units, widest := 0, 1
	for _, c := range cells {
		units += layout.Max(c.span, 1)
		widest = layout.Max(widest, c.span)
	}
	// With one row's worth of columns only the forced breaks remain.
	scratch, forced := flow(cells, units, nil)
	maxRows = layout.Max(maxRows, forced)
	for n := layout.Max((units+maxRows-1)/maxRows, widest); n < units; n++ {
		var rows int
		scratch, rows = flow(cells, n, scratch)
		if rows <= maxRows {
			return n
		}
	}
	return units
}
