// SPDX-License-Identifier: Unlicense OR MIT

package palette

import (
	"fmt"
	"image"
	"time"

	"golang.org/x/exp/slices"

	"widgetry.org/layout"
	"widgetry.org/unit"
	"widgetry.org/widget"
)

// Packing controls how an item is placed in its group's cells.
type Packing struct {
	// Homogeneous items cover exactly one cell. The cell size is the
	// largest requisition among the homogeneous items; other items
	// cover as many cells as their width needs.
	Homogeneous bool
	// Expand lets the item cover the rest of its row. The row ends
	// after it.
	Expand bool
	// Fill stretches the item over its cells. Without Fill the item is
	// centered at its requisition.
	Fill bool
	// NewRow starts a new row before the item.
	NewRow bool
}

// DefaultPacking is the packing used by Group.Add.
var DefaultPacking = Packing{Homogeneous: true, Fill: true}

// Item is a widget in a Group.
type Item struct {
	Widget layout.Handle
	Packing
}

// Group packs items into rows of equally sized cells below a header
// with an expander and a label. A collapsed group shows only its
// header.
//
// In Vertical orientation the width is given and items wrap into as
// many rows as needed. In Horizontal orientation the height is given
// and the group searches for the least number of columns that keeps
// the rows within it.
type Group struct {
	tree    *layout.Tree
	handle  layout.Handle
	label   *widget.Label
	items   []Item
	palette *Palette

	orientation   layout.Axis
	border        unit.Dp
	expanderSize  unit.Dp
	headerSpacing unit.Dp

	// limit is the extent along the given axis the group was last laid
	// out with. Zero means as small as possible.
	limit int

	collapsed bool
	animate   bool
	duration  time.Duration
	// elapsed is the progress of the last expand or collapse. It equals
	// duration once the group is settled.
	elapsed   time.Duration
	start     time.Time
	animating bool

	header   image.Rectangle
	expander image.Rectangle
	columns  int
	rows     int

	cells   []cell
	visible []int
	slots   []slot
}

// NewGroup inserts an expanded, vertical Group with a header label into
// tree.
func NewGroup(tree *layout.Tree, th *widget.Theme, label string) *Group {
	g := &Group{
		tree:          tree,
		orientation:   layout.Vertical,
		border:        th.BorderWidth,
		expanderSize:  th.ExpanderSize,
		headerSpacing: th.HeaderSpacing,
		animate:       th.Animate,
		duration:      th.AnimationDuration,
	}
	if g.duration < 0 {
		g.duration = 0
	}
	g.elapsed = g.duration
	g.handle = tree.Insert(g)
	g.label = widget.NewLabel(tree, th, label)
	if err := tree.SetParent(g.label.Handle(), g.handle); err != nil {
		panic(err)
	}
	return g
}

// Handle returns the tree handle of the group.
func (g *Group) Handle() layout.Handle { return g.handle }

// Label returns the header text.
func (g *Group) Label() string {
	if g.label == nil {
		return ""
	}
	return g.label.Text()
}

// SetLabel replaces the header text.
func (g *Group) SetLabel(txt string) {
	if g.label != nil {
		g.label.SetText(txt)
	}
}

// LabelWidget returns the handle of the header label.
func (g *Group) LabelWidget() layout.Handle {
	if g.label == nil {
		return layout.Handle{}
	}
	return g.label.Handle()
}

// Orientation returns the axis the group's palette stacks groups on.
func (g *Group) Orientation() layout.Axis { return g.orientation }

// SetOrientation changes the orientation. Groups in a palette follow
// the palette's orientation.
func (g *Group) SetOrientation(o layout.Axis) {
	if o != g.orientation {
		g.orientation = o
		g.limit = 0
		g.tree.QueueResize(g.handle)
	}
}

// Add appends child with DefaultPacking.
func (g *Group) Add(child layout.Handle) error {
	return g.Insert(Item{Widget: child, Packing: DefaultPacking}, -1)
}

// Insert adds item at pos. A negative or too large pos appends.
func (g *Group) Insert(item Item, pos int) error {
	if err := g.tree.SetParent(item.Widget, g.handle); err != nil {
		return fmt.Errorf("palette: insert %v: %w", item.Widget, err)
	}
	g.items = slices.Insert(g.items, clampPosition(pos, len(g.items)), item)
	return nil
}

// Remove detaches child from the group.
func (g *Group) Remove(child layout.Handle) error {
	if g.ItemPosition(child) < 0 {
		return fmt.Errorf("palette: remove %v: %w", child, layout.ErrNotChild)
	}
	return g.tree.Unparent(child)
}

// Len returns the number of items.
func (g *Group) Len() int { return len(g.items) }

// NthItem returns the item at index i.
func (g *Group) NthItem(i int) (Item, bool) {
	if i < 0 || i >= len(g.items) {
		return Item{}, false
	}
	return g.items[i], true
}

// ItemPosition returns the index of child, or -1.
func (g *Group) ItemPosition(child layout.Handle) int {
	return slices.IndexFunc(g.items, func(it Item) bool {
		return it.Widget == child
	})
}

// SetItemPosition moves child to pos. A negative or too large pos
// moves it to the end.
func (g *Group) SetItemPosition(child layout.Handle, pos int) error {
	i := g.ItemPosition(child)
	if i < 0 {
		return fmt.Errorf("palette: move %v: %w", child, layout.ErrNotChild)
	}
	it := g.items[i]
	g.items = slices.Delete(g.items, i, i+1)
	pos = clampPosition(pos, len(g.items))
	g.items = slices.Insert(g.items, pos, it)
	if pos != i {
		g.tree.QueueResize(g.handle)
	}
	return nil
}

// ItemPacking returns the packing of child.
func (g *Group) ItemPacking(child layout.Handle) (Packing, bool) {
	if i := g.ItemPosition(child); i >= 0 {
		return g.items[i].Packing, true
	}
	return Packing{}, false
}

// SetItemPacking changes the packing of child.
func (g *Group) SetItemPacking(child layout.Handle, p Packing) error {
	i := g.ItemPosition(child)
	if i < 0 {
		return fmt.Errorf("palette: set packing of %v: %w", child, layout.ErrNotChild)
	}
	if g.items[i].Packing != p {
		g.items[i].Packing = p
		g.tree.QueueResize(g.handle)
	}
	return nil
}

// Collapsed reports whether the group is collapsed or collapsing.
func (g *Group) Collapsed() bool { return g.collapsed }

// SetCollapsed collapses or expands the group. With animations enabled
// the change is animated by Tick; reversing a running animation
// continues from the current extent. Expanding an exclusive group
// collapses the other exclusive groups of its palette.
func (g *Group) SetCollapsed(collapsed bool) {
	if collapsed == g.collapsed {
		return
	}
	g.collapsed = collapsed
	if g.animate && g.duration > 0 {
		g.elapsed = g.duration - g.elapsed
		g.animating = true
		g.start = time.Time{}
	} else {
		g.elapsed = g.duration
		g.animating = false
	}
	g.tree.QueueResize(g.handle)
	if !collapsed && g.palette != nil {
		g.palette.expanded(g)
	}
}

func (g *Group) animation() Animation {
	return Animation{Collapse: g.collapsed, Duration: g.duration}
}

// ExpanderState returns the look of the expander arrow.
func (g *Group) ExpanderState() ExpanderState {
	_, s, _ := g.animation().At(g.elapsed)
	return s
}

// Animating reports whether an expand or collapse waits for Tick.
func (g *Group) Animating() bool { return g.animating }

// Tick advances a running expand or collapse to now and queues a
// resize. The first Tick after SetCollapsed starts the animation. Tick
// reports whether the animation needs more ticks.
func (g *Group) Tick(now time.Time) bool {
	if !g.animating {
		return false
	}
	if g.start.IsZero() {
		g.start = now.Add(-g.elapsed)
	}
	g.elapsed = now.Sub(g.start)
	if g.elapsed < 0 {
		g.elapsed = 0
	}
	if _, _, done := g.animation().At(g.elapsed); done {
		g.elapsed = g.duration
		g.animating = false
		g.start = time.Time{}
	}
	g.tree.QueueResize(g.handle)
	return g.animating
}

// StopAnimation freezes a running expand or collapse at its current
// extent.
func (g *Group) StopAnimation() {
	g.animating = false
	g.start = time.Time{}
}

// settled reports whether the group is fully expanded or collapsed.
func (g *Group) settled() bool {
	return !g.animating && g.elapsed >= g.duration
}

// HeaderRect returns the header area from the last allocation.
func (g *Group) HeaderRect() image.Rectangle { return g.header }

// ExpanderRect returns the expander area from the last allocation.
func (g *Group) ExpanderRect() image.Rectangle { return g.expander }

// Columns returns the number of columns of the last allocation. A
// collapsed group has none.
func (g *Group) Columns() int { return g.columns }

// Rows returns the number of rows of the last allocation. A collapsed
// group has none.
func (g *Group) Rows() int { return g.rows }

// DropItem returns the item at (x, y), relative to the group's
// allocation.
func (g *Group) DropItem(x, y int) (Item, bool) {
	r := g.tree.Allocation(g.handle)
	p := r.Min.Add(image.Pt(x, y))
	if !p.In(r) {
		return Item{}, false
	}
	for _, it := range g.items {
		if g.tree.Mapped(it.Widget) && p.In(g.tree.Allocation(it.Widget)) {
			return it, true
		}
	}
	return Item{}, false
}

// setLimit records the extent along the given axis and queues a resize
// when it changed.
func (g *Group) setLimit(limit int) {
	if limit != g.limit {
		g.limit = limit
		g.tree.QueueResize(g.handle)
	}
}

func (g *Group) headerSize(t *layout.Tree) image.Point {
	exp := t.Dp(g.expanderSize)
	var l image.Point
	if g.label != nil {
		l = t.Measure(g.label.Handle())
	}
	return image.Pt(exp+t.Dp(g.headerSpacing)+l.X, layout.Max(exp, l.Y))
}

// measureItems collects the footprints of the visible items and
// returns the cell size.
func (g *Group) measureItems(t *layout.Tree) image.Point {
	g.cells = g.cells[:0]
	g.visible = g.visible[:0]
	var size image.Point
	widest := 0
	for i, it := range g.items {
		if !t.Visible(it.Widget) {
			continue
		}
		req := t.Measure(it.Widget)
		if it.Homogeneous {
			size.X = layout.Max(size.X, req.X)
		}
		size.Y = layout.Max(size.Y, req.Y)
		widest = layout.Max(widest, req.X)
		g.visible = append(g.visible, i)
	}
	if size.X == 0 {
		size.X = widest
	}
	size.X = layout.Max(size.X, 1)
	size.Y = layout.Max(size.Y, 1)
	for _, i := range g.visible {
		it := g.items[i]
		c := cell{span: 1, expand: it.Expand, newRow: it.NewRow}
		if !it.Homogeneous {
			w := t.Measure(it.Widget).X
			c.span = layout.Max((w+size.X-1)/size.X, 1)
		}
		g.cells = append(g.cells, c)
	}
	return size
}

// pack lays out the visible items for the extent limit along the given
// axis. It returns the grid dimensions, the cell size and the size of
// the expanded group.
func (g *Group) pack(t *layout.Tree, limit int) (columns, rows int, item, size image.Point) {
	bw := 2 * t.Dp(g.border)
	hdr := g.headerSize(t)
	item = g.measureItems(t)
	if len(g.cells) == 0 {
		g.slots = g.slots[:0]
		return 1, 0, item, hdr.Add(image.Pt(bw, bw))
	}
	var width int
	if g.orientation == layout.Vertical {
		widest := 0
		for _, c := range g.cells {
			widest = layout.Max(widest, c.span)
		}
		width = widest * item.X
		columns = layout.Max(layout.Max(limit-bw, width)/item.X, 1)
	} else {
		maxRows := layout.Max((limit-bw-hdr.Y)/item.Y, 1)
		columns = searchColumns(g.cells, maxRows)
		width = columns * item.X
	}
	g.slots, rows = flow(g.cells, columns, g.slots)
	size = image.Point{
		X: layout.Max(width, hdr.X) + bw,
		Y: hdr.Y + rows*item.Y + bw,
	}
	return columns, rows, item, size
}

func (g *Group) Measure(t *layout.Tree) image.Point {
	_, _, _, full := g.pack(t, g.limit)
	bw := 2 * t.Dp(g.border)
	hdr := g.headerSize(t).Add(image.Pt(bw, bw))
	a := g.animation()
	return image.Point{
		X: a.Interpolate(g.elapsed, hdr.X, full.X),
		Y: a.Interpolate(g.elapsed, hdr.Y, full.Y),
	}
}

func (g *Group) Allocate(t *layout.Tree, r image.Rectangle) {
	if g.orientation == layout.Vertical {
		g.setLimit(r.Dx())
	} else {
		g.setLimit(r.Dy())
	}
	inner := r.Inset(t.Dp(g.border))
	rtl := t.DirectionOf(g.handle) == layout.RTL
	g.allocateHeader(t, inner, rtl)

	if g.collapsed && g.settled() {
		g.columns, g.rows = 0, 0
		for _, it := range g.items {
			t.SetChildVisible(it.Widget, false)
		}
		return
	}
	columns, rows, item, _ := g.pack(t, g.limit)
	g.columns, g.rows = columns, rows
	// Items are clipped to the group while it animates.
	clip := !g.settled()
	width := layout.Max(inner.Dx(), columns*item.X)
	cellw := width / columns
	area := image.Rect(inner.Min.X, g.header.Max.Y, inner.Min.X+width, g.header.Max.Y+rows*item.Y)
	for k, i := range g.visible {
		it := g.items[i]
		s := g.slots[k]
		x := area.Min.X + s.col*cellw
		w := s.span * cellw
		if it.Expand {
			w = width - s.col*cellw
		}
		y := area.Min.Y + s.row*item.Y
		cr := image.Rect(x, y, x+w, y+item.Y)
		if !it.Fill {
			req := t.Measure(it.Widget)
			sz := image.Pt(layout.Min(req.X, cr.Dx()), layout.Min(req.Y, cr.Dy()))
			o := cr.Min.Add(cr.Size().Sub(sz).Div(2))
			cr = image.Rectangle{Min: o, Max: o.Add(sz)}
		}
		if rtl {
			cr = layout.Mirror(cr, area)
		}
		t.SetChildVisible(it.Widget, !clip || cr.In(r))
		t.Allocate(it.Widget, cr)
	}
}

func (g *Group) allocateHeader(t *layout.Tree, inner image.Rectangle, rtl bool) {
	hdr := g.headerSize(t)
	g.header = image.Rect(inner.Min.X, inner.Min.Y, inner.Max.X, inner.Min.Y+hdr.Y)
	exp := t.Dp(g.expanderSize)
	y := g.header.Min.Y + (hdr.Y-exp)/2
	g.expander = image.Rect(inner.Min.X, y, inner.Min.X+exp, y+exp)
	if g.label != nil {
		req := t.Measure(g.label.Handle())
		x := g.expander.Max.X + t.Dp(g.headerSpacing)
		y := g.header.Min.Y + (hdr.Y-req.Y)/2
		lr := image.Rect(x, y, x+layout.Min(req.X, g.header.Max.X-x), y+req.Y)
		if rtl {
			lr = layout.Mirror(lr, g.header)
		}
		t.Allocate(g.label.Handle(), lr)
	}
	if rtl {
		g.expander = layout.Mirror(g.expander, g.header)
	}
}

// Children implements layout.Container. The header label comes first.
func (g *Group) Children() []layout.Handle {
	hs := make([]layout.Handle, 0, len(g.items)+1)
	if g.label != nil {
		hs = append(hs, g.label.Handle())
	}
	for _, it := range g.items {
		hs = append(hs, it.Widget)
	}
	return hs
}

// Forget implements layout.Container.
func (g *Group) Forget(t *layout.Tree, child layout.Handle) {
	if g.label != nil && child == g.label.Handle() {
		g.label = nil
		return
	}
	if i := g.ItemPosition(child); i >= 0 {
		g.items = slices.Delete(g.items, i, i+1)
	}
}

func clampPosition(pos, n int) int {
	if pos < 0 || pos > n {
		return n
	}
	return pos
}
