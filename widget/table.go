// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"errors"
	"fmt"
	"image"

	"golang.org/x/exp/slices"

	"widgetry.org/layout"
	"widgetry.org/unit"
)

var (
	// ErrBadAttach is returned for empty or negative attachment ranges.
	ErrBadAttach = errors.New("widget: invalid attachment")
	// ErrOutOfRange is returned for track indices and sizes outside
	// the table.
	ErrOutOfRange = errors.New("widget: index out of range")
)

// AttachOptions controls how a table child behaves along one axis.
type AttachOptions uint8

const (
	// Expand lets the child's tracks grow into extra space.
	Expand AttachOptions = 1 << iota
	// Shrink lets the child's tracks shrink below their requisition
	// when the table is given less than it asked for.
	Shrink
	// Fill stretches the child over its whole cell span. Without Fill
	// the child is centered at its requisition.
	Fill
)

// Placement describes where a child sits in a table. Attachments are
// half open: the child covers columns [Left; Right) and rows
// [Top; Bottom).
type Placement struct {
	Left, Right int
	Top, Bottom int

	XOptions, YOptions AttachOptions
	XPadding, YPadding int
}

// Table arranges children in a grid of rows and columns. Children may
// span several tracks on either axis.
type Table struct {
	tree     *layout.Tree
	handle   layout.Handle
	children []tableChild
	state    tableState
}

type tableChild struct {
	widget layout.Handle
	Placement
}

// tableState is the part of a Table that an Edit replaces as a whole.
type tableState struct {
	rows, cols []Track
	rowSpacing int
	colSpacing int
	// homogeneous is indexed by layout.Axis.
	homogeneous [2]bool
	border      unit.Dp
}

// NewTable inserts a table with the given number of rows and columns
// into tree. Track spacings and the border width are taken from th.
func NewTable(tree *layout.Tree, th *Theme, rows, cols int) *Table {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	t := &Table{tree: tree}
	t.state.rowSpacing = tree.Dp(th.RowSpacing)
	t.state.colSpacing = tree.Dp(th.ColumnSpacing)
	t.state.border = th.BorderWidth
	t.state.rows = growTracks(nil, rows, t.state.rowSpacing)
	t.state.cols = growTracks(nil, cols, t.state.colSpacing)
	t.handle = tree.Insert(t)
	return t
}

func growTracks(tracks []Track, n, spacing int) []Track {
	for len(tracks) < n {
		tracks = append(tracks, Track{Spacing: spacing})
	}
	return tracks
}

// Handle returns the tree handle of the table.
func (t *Table) Handle() layout.Handle { return t.handle }

// Size returns the number of rows and columns.
func (t *Table) Size() (rows, cols int) {
	return len(t.state.rows), len(t.state.cols)
}

// Rows returns a copy of the row tracks as of the last layout pass.
func (t *Table) Rows() []Track { return slices.Clone(t.state.rows) }

// Cols returns a copy of the column tracks as of the last layout pass.
func (t *Table) Cols() []Track { return slices.Clone(t.state.cols) }

// Homogeneous reports whether all tracks along axis share one size.
func (t *Table) Homogeneous(axis layout.Axis) bool {
	return t.state.homogeneous[axis]
}

// Resize changes the number of rows and columns. The table never
// shrinks below its furthest attachment.
func (t *Table) Resize(rows, cols int) error {
	return t.Edit().Resize(rows, cols).Commit()
}

// SetHomogeneous makes all rows and all columns equally sized.
func (t *Table) SetHomogeneous(homogeneous bool) {
	t.Edit().Homogeneous(layout.Horizontal, homogeneous).Homogeneous(layout.Vertical, homogeneous).Commit()
}

// SetRowSpacing sets the gap after row.
func (t *Table) SetRowSpacing(row, spacing int) error {
	return t.Edit().RowSpacing(row, spacing).Commit()
}

// SetColSpacing sets the gap after col.
func (t *Table) SetColSpacing(col, spacing int) error {
	return t.Edit().ColSpacing(col, spacing).Commit()
}

// SetRowSpacings sets the gap after every row, and the default for
// rows added later.
func (t *Table) SetRowSpacings(spacing int) error {
	return t.Edit().RowSpacings(spacing).Commit()
}

// SetColSpacings sets the gap after every column, and the default for
// columns added later.
func (t *Table) SetColSpacings(spacing int) error {
	return t.Edit().ColSpacings(spacing).Commit()
}

// SetBorderWidth sets the space around the grid.
func (t *Table) SetBorderWidth(w unit.Dp) error {
	return t.Edit().BorderWidth(w).Commit()
}

// RowSpacing returns the gap after row, or 0 if row is out of range.
func (t *Table) RowSpacing(row int) int {
	if row < 0 || row >= len(t.state.rows) {
		return 0
	}
	return t.state.rows[row].Spacing
}

// ColSpacing returns the gap after col, or 0 if col is out of range.
func (t *Table) ColSpacing(col int) int {
	if col < 0 || col >= len(t.state.cols) {
		return 0
	}
	return t.state.cols[col].Spacing
}

// Attach adds child to the table. Attaching beyond the current size
// grows the table.
func (t *Table) Attach(child layout.Handle, left, right, top, bottom int, xopts, yopts AttachOptions, xpad, ypad int) error {
	p := Placement{
		Left: left, Right: right, Top: top, Bottom: bottom,
		XOptions: xopts, YOptions: yopts,
		XPadding: xpad, YPadding: ypad,
	}
	if err := p.validate(); err != nil {
		return fmt.Errorf("table: attach %v: %w", child, err)
	}
	if err := t.tree.SetParent(child, t.handle); err != nil {
		return fmt.Errorf("table: attach %v: %w", child, err)
	}
	t.children = append(t.children, tableChild{widget: child, Placement: p})
	t.fit(p)
	return nil
}

// AttachDefaults attaches child with Expand|Fill on both axes and no
// padding.
func (t *Table) AttachDefaults(child layout.Handle, left, right, top, bottom int) error {
	return t.Attach(child, left, right, top, bottom, Expand|Fill, Expand|Fill, 0, 0)
}

// Remove detaches child from the table.
func (t *Table) Remove(child layout.Handle) error {
	if t.index(child) < 0 {
		return fmt.Errorf("table: remove %v: %w", child, layout.ErrNotChild)
	}
	return t.tree.Unparent(child)
}

// Placement returns the placement of child.
func (t *Table) Placement(child layout.Handle) (Placement, bool) {
	if i := t.index(child); i >= 0 {
		return t.children[i].Placement, true
	}
	return Placement{}, false
}

// SetPlacement moves child to a new placement.
func (t *Table) SetPlacement(child layout.Handle, p Placement) error {
	i := t.index(child)
	if i < 0 {
		return fmt.Errorf("table: place %v: %w", child, layout.ErrNotChild)
	}
	if err := p.validate(); err != nil {
		return fmt.Errorf("table: place %v: %w", child, err)
	}
	t.children[i].Placement = p
	t.fit(p)
	t.tree.QueueResize(t.handle)
	return nil
}

func (p Placement) validate() error {
	if p.Left < 0 || p.Top < 0 || p.Left >= p.Right || p.Top >= p.Bottom {
		return fmt.Errorf("%w: columns [%d;%d) rows [%d;%d)", ErrBadAttach, p.Left, p.Right, p.Top, p.Bottom)
	}
	if p.XPadding < 0 || p.YPadding < 0 {
		return fmt.Errorf("%w: negative padding", ErrBadAttach)
	}
	return nil
}

// fit grows the tracks to hold p.
func (t *Table) fit(p Placement) {
	s := &t.state
	s.rows = growTracks(s.rows, p.Bottom, s.rowSpacing)
	s.cols = growTracks(s.cols, p.Right, s.colSpacing)
}

func (t *Table) index(child layout.Handle) int {
	for i, c := range t.children {
		if c.widget == child {
			return i
		}
	}
	return -1
}

// Children implements layout.Container.
func (t *Table) Children() []layout.Handle {
	hs := make([]layout.Handle, len(t.children))
	for i, c := range t.children {
		hs[i] = c.widget
	}
	return hs
}

// Forget implements layout.Container.
func (t *Table) Forget(tree *layout.Tree, child layout.Handle) {
	if i := t.index(child); i >= 0 {
		t.children = slices.Delete(t.children, i, i+1)
	}
}

// spans collects the footprint of the visible children along axis.
func (t *Table) spans(tree *layout.Tree, axis layout.Axis) []span {
	spans := make([]span, 0, len(t.children))
	for _, c := range t.children {
		if !tree.Visible(c.widget) {
			continue
		}
		req := tree.Measure(c.widget)
		s := span{size: axis.Main(req)}
		if axis == layout.Horizontal {
			s.start, s.end, s.opts = c.Left, c.Right, c.XOptions
			s.size += 2 * c.XPadding
		} else {
			s.start, s.end, s.opts = c.Top, c.Bottom, c.YOptions
			s.size += 2 * c.YPadding
		}
		spans = append(spans, s)
	}
	return spans
}

func (t *Table) Measure(tree *layout.Tree) image.Point {
	s := &t.state
	border := 2 * tree.Dp(s.border)
	w := requestTracks(s.cols, t.spans(tree, layout.Horizontal), s.homogeneous[layout.Horizontal])
	h := requestTracks(s.rows, t.spans(tree, layout.Vertical), s.homogeneous[layout.Vertical])
	return image.Point{X: w + border, Y: h + border}
}

func (t *Table) Allocate(tree *layout.Tree, r image.Rectangle) {
	s := &t.state
	border := tree.Dp(s.border)
	inner := r.Inset(border)
	hasChildren := len(t.children) > 0

	classifyTracks(s.cols, t.spans(tree, layout.Horizontal))
	classifyTracks(s.rows, t.spans(tree, layout.Vertical))
	if over := allocateTracks(s.cols, r.Dx()-2*border, s.homogeneous[layout.Horizontal], hasChildren); over > 0 {
		tree.Logf("table %v: columns overflow allocation by %d px", t.handle, over)
	}
	if over := allocateTracks(s.rows, r.Dy()-2*border, s.homogeneous[layout.Vertical], hasChildren); over > 0 {
		tree.Logf("table %v: rows overflow allocation by %d px", t.handle, over)
	}

	rtl := tree.DirectionOf(t.handle) == layout.RTL
	for _, c := range t.children {
		if !tree.Visible(c.widget) {
			continue
		}
		req := tree.Measure(c.widget)
		x, width := place(s.cols, c.Left, c.Right, inner.Min.X, req.X, c.XPadding, c.XOptions)
		y, height := place(s.rows, c.Top, c.Bottom, inner.Min.Y, req.Y, c.YPadding, c.YOptions)
		cr := image.Rect(x, y, x+width, y+height)
		if rtl {
			cr = layout.Mirror(cr, r)
		}
		tree.Allocate(c.widget, cr)
	}
}

// place returns the position and size of a child covering tracks
// [start; end) along one axis, with origin at the first track.
func place(tracks []Track, start, end, origin, req, pad int, opts AttachOptions) (pos, size int) {
	pos = origin
	for i := 0; i < start; i++ {
		pos += tracks[i].Allocation + tracks[i].Spacing
	}
	avail := spanSize(tracks, start, end, true)
	if opts&Fill != 0 {
		size = avail - 2*pad
		if size < 1 {
			size = 1
		}
	} else {
		size = req
	}
	pos += (avail - size) / 2
	return pos, size
}

// TableEdit batches changes to a Table. The changes are validated and
// applied together by Commit, which invalidates the table once.
type TableEdit struct {
	t   *Table
	ops []func(s *tableState) error
}

// Edit starts a batch of changes to t.
func (t *Table) Edit() *TableEdit {
	return &TableEdit{t: t}
}

// Resize changes the number of rows and columns.
func (e *TableEdit) Resize(rows, cols int) *TableEdit {
	return e.add(func(s *tableState) error {
		if rows < 1 || cols < 1 {
			return fmt.Errorf("table: resize to %dx%d: %w", rows, cols, ErrOutOfRange)
		}
		for _, c := range e.t.children {
			rows = layout.Max(rows, c.Bottom)
			cols = layout.Max(cols, c.Right)
		}
		s.rows = growTracks(s.rows[:layout.Clamp(rows, 0, len(s.rows))], rows, s.rowSpacing)
		s.cols = growTracks(s.cols[:layout.Clamp(cols, 0, len(s.cols))], cols, s.colSpacing)
		return nil
	})
}

// Homogeneous sets whether all tracks along axis share one size.
func (e *TableEdit) Homogeneous(axis layout.Axis, homogeneous bool) *TableEdit {
	return e.add(func(s *tableState) error {
		s.homogeneous[axis] = homogeneous
		return nil
	})
}

// RowSpacing sets the gap after row.
func (e *TableEdit) RowSpacing(row, spacing int) *TableEdit {
	return e.add(func(s *tableState) error {
		return setSpacing(s.rows, "row", row, spacing)
	})
}

// ColSpacing sets the gap after col.
func (e *TableEdit) ColSpacing(col, spacing int) *TableEdit {
	return e.add(func(s *tableState) error {
		return setSpacing(s.cols, "column", col, spacing)
	})
}

// RowSpacings sets the gap after every row and the default for new
// rows.
func (e *TableEdit) RowSpacings(spacing int) *TableEdit {
	return e.add(func(s *tableState) error {
		if spacing < 0 {
			return fmt.Errorf("table: row spacing %d: %w", spacing, ErrOutOfRange)
		}
		s.rowSpacing = spacing
		for i := range s.rows {
			s.rows[i].Spacing = spacing
		}
		return nil
	})
}

// ColSpacings sets the gap after every column and the default for new
// columns.
func (e *TableEdit) ColSpacings(spacing int) *TableEdit {
	return e.add(func(s *tableState) error {
		if spacing < 0 {
			return fmt.Errorf("table: column spacing %d: %w", spacing, ErrOutOfRange)
		}
		s.colSpacing = spacing
		for i := range s.cols {
			s.cols[i].Spacing = spacing
		}
		return nil
	})
}

// BorderWidth sets the space around the grid.
func (e *TableEdit) BorderWidth(w unit.Dp) *TableEdit {
	return e.add(func(s *tableState) error {
		if w < 0 {
			return fmt.Errorf("table: border width %v: %w", w, ErrOutOfRange)
		}
		s.border = w
		return nil
	})
}

func (e *TableEdit) add(op func(s *tableState) error) *TableEdit {
	e.ops = append(e.ops, op)
	return e
}

// Commit applies the batched changes. If any change is invalid, none
// is applied and the first error is returned.
func (e *TableEdit) Commit() error {
	if len(e.ops) == 0 {
		return nil
	}
	s := e.t.state
	s.rows = slices.Clone(s.rows)
	s.cols = slices.Clone(s.cols)
	for _, op := range e.ops {
		if err := op(&s); err != nil {
			return err
		}
	}
	e.ops = nil
	e.t.state = s
	e.t.tree.QueueResize(e.t.handle)
	return nil
}

func setSpacing(tracks []Track, kind string, i, spacing int) error {
	if i < 0 || i >= len(tracks) {
		return fmt.Errorf("table: %s %d of %d: %w", kind, i, len(tracks), ErrOutOfRange)
	}
	if spacing < 0 {
		return fmt.Errorf("table: %s spacing %d: %w", kind, spacing, ErrOutOfRange)
	}
	tracks[i].Spacing = spacing
	return nil
}
