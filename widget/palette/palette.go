// SPDX-License-Identifier: Unlicense OR MIT

// Package palette implements tool palettes: groups of items packed into
// rows of cells, each group behind a collapsible header.
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

// Palette stacks groups along its orientation. Every group receives the
// palette's full extent across the orientation and its requisition
// along it. Extra space goes to the groups set to expand.
type Palette struct {
	tree        *layout.Tree
	handle      layout.Handle
	groups      []paletteGroup
	orientation layout.Axis
	border      unit.Dp

	sizes []int
}

type paletteGroup struct {
	group *Group
	// exclusive groups collapse each other on expand.
	exclusive bool
	expand    bool
}

// NewPalette inserts an empty, vertical Palette into tree.
func NewPalette(tree *layout.Tree, th *widget.Theme) *Palette {
	p := &Palette{tree: tree, orientation: layout.Vertical, border: th.BorderWidth}
	p.handle = tree.Insert(p)
	return p
}

// Handle returns the tree handle of the palette.
func (p *Palette) Handle() layout.Handle { return p.handle }

// Orientation returns the axis groups are stacked on.
func (p *Palette) Orientation() layout.Axis { return p.orientation }

// SetOrientation changes the stacking axis of the palette and its
// groups.
func (p *Palette) SetOrientation(o layout.Axis) {
	if o == p.orientation {
		return
	}
	p.orientation = o
	for _, pg := range p.groups {
		pg.group.SetOrientation(o)
	}
	p.tree.QueueResize(p.handle)
}

// Add appends g.
func (p *Palette) Add(g *Group) error {
	return p.Insert(g, -1)
}

// Insert adds g at pos. A negative or too large pos appends.
func (p *Palette) Insert(g *Group, pos int) error {
	if err := p.tree.SetParent(g.handle, p.handle); err != nil {
		return fmt.Errorf("palette: insert group %v: %w", g.handle, err)
	}
	g.palette = p
	g.SetOrientation(p.orientation)
	p.groups = slices.Insert(p.groups, clampPosition(pos, len(p.groups)), paletteGroup{group: g})
	return nil
}

// Remove detaches g from the palette.
func (p *Palette) Remove(g *Group) error {
	if p.GroupPosition(g) < 0 {
		return fmt.Errorf("palette: remove group %v: %w", g.handle, layout.ErrNotChild)
	}
	return p.tree.Unparent(g.handle)
}

// Len returns the number of groups.
func (p *Palette) Len() int { return len(p.groups) }

// NthGroup returns the group at index i, or nil.
func (p *Palette) NthGroup(i int) *Group {
	if i < 0 || i >= len(p.groups) {
		return nil
	}
	return p.groups[i].group
}

// GroupPosition returns the index of g, or -1.
func (p *Palette) GroupPosition(g *Group) int {
	return slices.IndexFunc(p.groups, func(pg paletteGroup) bool {
		return pg.group == g
	})
}

// SetGroupPosition moves g to pos. A negative or too large pos moves it
// to the end.
func (p *Palette) SetGroupPosition(g *Group, pos int) error {
	i := p.GroupPosition(g)
	if i < 0 {
		return fmt.Errorf("palette: move group %v: %w", g.handle, layout.ErrNotChild)
	}
	pg := p.groups[i]
	p.groups = slices.Delete(p.groups, i, i+1)
	pos = clampPosition(pos, len(p.groups))
	p.groups = slices.Insert(p.groups, pos, pg)
	if pos != i {
		p.tree.QueueResize(p.handle)
	}
	return nil
}

// Exclusive reports whether g is exclusive.
func (p *Palette) Exclusive(g *Group) bool {
	if i := p.GroupPosition(g); i >= 0 {
		return p.groups[i].exclusive
	}
	return false
}

// SetExclusive sets whether expanding g collapses the other exclusive
// groups. Making an expanded group exclusive collapses the others right
// away.
func (p *Palette) SetExclusive(g *Group, exclusive bool) error {
	i := p.GroupPosition(g)
	if i < 0 {
		return fmt.Errorf("palette: set exclusive %v: %w", g.handle, layout.ErrNotChild)
	}
	p.groups[i].exclusive = exclusive
	if exclusive && !g.Collapsed() {
		p.expanded(g)
	}
	return nil
}

// Expand reports whether g receives extra space.
func (p *Palette) Expand(g *Group) bool {
	if i := p.GroupPosition(g); i >= 0 {
		return p.groups[i].expand
	}
	return false
}

// SetExpand sets whether g receives a share of the extra space.
func (p *Palette) SetExpand(g *Group, expand bool) error {
	i := p.GroupPosition(g)
	if i < 0 {
		return fmt.Errorf("palette: set expand %v: %w", g.handle, layout.ErrNotChild)
	}
	if p.groups[i].expand != expand {
		p.groups[i].expand = expand
		p.tree.QueueResize(p.handle)
	}
	return nil
}

// expanded collapses the exclusive siblings of g if g is exclusive.
func (p *Palette) expanded(g *Group) {
	i := p.GroupPosition(g)
	if i < 0 || !p.groups[i].exclusive {
		return
	}
	for _, pg := range p.groups {
		if pg.group != g && pg.exclusive {
			pg.group.SetCollapsed(true)
		}
	}
}

// Tick advances the running animations of all groups. It reports
// whether any of them needs more ticks.
func (p *Palette) Tick(now time.Time) bool {
	more := false
	for _, pg := range p.groups {
		if pg.group.Tick(now) {
			more = true
		}
	}
	return more
}

// StopAnimations freezes the running animations of all groups.
func (p *Palette) StopAnimations() {
	for _, pg := range p.groups {
		pg.group.StopAnimation()
	}
}

// DropGroup returns the group at (x, y), relative to the palette's
// allocation.
func (p *Palette) DropGroup(x, y int) (*Group, bool) {
	pt := p.tree.Allocation(p.handle).Min.Add(image.Pt(x, y))
	for _, pg := range p.groups {
		if p.tree.Visible(pg.group.handle) && pt.In(p.tree.Allocation(pg.group.handle)) {
			return pg.group, true
		}
	}
	return nil, false
}

// DropItem returns the item at (x, y), relative to the palette's
// allocation.
func (p *Palette) DropItem(x, y int) (Item, bool) {
	g, ok := p.DropGroup(x, y)
	if !ok {
		return Item{}, false
	}
	off := p.tree.Allocation(g.handle).Min.Sub(p.tree.Allocation(p.handle).Min)
	return g.DropItem(x-off.X, y-off.Y)
}

func (p *Palette) Measure(t *layout.Tree) image.Point {
	stack := p.orientation
	main, cross := 0, 0
	for _, pg := range p.groups {
		req := t.Measure(pg.group.handle)
		main += stack.Main(req)
		cross = layout.Max(cross, stack.Cross(req))
	}
	bw := 2 * t.Dp(p.border)
	return stack.Point(main, cross).Add(image.Pt(bw, bw))
}

func (p *Palette) Allocate(t *layout.Tree, r image.Rectangle) {
	inner := r.Inset(t.Dp(p.border))
	stack := p.orientation
	start, avail := stack.Span(inner)
	crossStart, limit := stack.Other().Span(inner)

	p.sizes = p.sizes[:0]
	used, nexpand := 0, 0
	for _, pg := range p.groups {
		size := 0
		if t.Visible(pg.group.handle) {
			pg.group.setLimit(limit)
			size = stack.Main(t.Measure(pg.group.handle))
			if pg.expand {
				nexpand++
			}
		}
		p.sizes = append(p.sizes, size)
		used += size
	}
	if extra := avail - used; extra > 0 {
		for i, pg := range p.groups {
			if nexpand == 0 {
				break
			}
			if !pg.expand || !t.Visible(pg.group.handle) {
				continue
			}
			share := extra / nexpand
			if nexpand == 1 {
				share = extra
			}
			p.sizes[i] += share
			extra -= share
			nexpand--
		}
	}

	rtl := stack == layout.Horizontal && t.DirectionOf(p.handle) == layout.RTL
	pos := start
	for i, pg := range p.groups {
		if !t.Visible(pg.group.handle) {
			t.Allocate(pg.group.handle, image.Rectangle{})
			continue
		}
		gr := image.Rectangle{
			Min: stack.Point(pos, crossStart),
			Max: stack.Point(pos+p.sizes[i], crossStart+limit),
		}
		if rtl {
			gr = layout.Mirror(gr, inner)
		}
		t.Allocate(pg.group.handle, gr)
		pos += p.sizes[i]
	}
}

// Children implements layout.Container.
func (p *Palette) Children() []layout.Handle {
	hs := make([]layout.Handle, len(p.groups))
	for i, pg := range p.groups {
		hs[i] = pg.group.handle
	}
	return hs
}

// Forget implements layout.Container.
func (p *Palette) Forget(t *layout.Tree, child layout.Handle) {
	i := slices.IndexFunc(p.groups, func(pg paletteGroup) bool {
		return pg.group.handle == child
	})
	if i >= 0 {
		p.groups[i].group.palette = nil
		p.groups = slices.Delete(p.groups, i, i+1)
	}
}
