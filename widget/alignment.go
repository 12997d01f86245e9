// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"

	"widgetry.org/layout"
)

// Alignment places a single child within its allocation. The child is
// scaled between its requisition (scale 0) and the available space
// (scale 1), then positioned by the alignment fractions.
type Alignment struct {
	bin

	xalign, yalign float32
	xscale, yscale float32
	padding        Padding
}

// Padding is extra space on each side of a child.
type Padding struct {
	Top, Bottom, Left, Right int
}

// NewAlignment inserts an Alignment into tree. Fractions are clamped
// to [0; 1].
func NewAlignment(tree *layout.Tree, th *Theme, xalign, yalign, xscale, yscale float32) *Alignment {
	a := &Alignment{}
	a.tree = tree
	a.border = th.BorderWidth
	a.set(xalign, yalign, xscale, yscale)
	a.handle = tree.Insert(a)
	return a
}

// Set changes the alignment and scale fractions.
func (a *Alignment) Set(xalign, yalign, xscale, yscale float32) {
	a.set(xalign, yalign, xscale, yscale)
	a.tree.QueueResize(a.handle)
}

func (a *Alignment) set(xalign, yalign, xscale, yscale float32) {
	a.xalign = layout.Clamp(xalign, 0, 1)
	a.yalign = layout.Clamp(yalign, 0, 1)
	a.xscale = layout.Clamp(xscale, 0, 1)
	a.yscale = layout.Clamp(yscale, 0, 1)
}

// SetPadding changes the padding. Negative sides are treated as 0.
func (a *Alignment) SetPadding(p Padding) {
	p.Top = layout.Max(p.Top, 0)
	p.Bottom = layout.Max(p.Bottom, 0)
	p.Left = layout.Max(p.Left, 0)
	p.Right = layout.Max(p.Right, 0)
	if p != a.padding {
		a.padding = p
		a.tree.QueueResize(a.handle)
	}
}

func (a *Alignment) Measure(t *layout.Tree) image.Point {
	bw := 2 * t.Dp(a.border)
	req := a.childRequisition(t)
	return image.Point{
		X: req.X + bw + a.padding.Left + a.padding.Right,
		Y: req.Y + bw + a.padding.Top + a.padding.Bottom,
	}
}

func (a *Alignment) Allocate(t *layout.Tree, r image.Rectangle) {
	if !a.child.Valid() || !t.Visible(a.child) {
		return
	}
	bw := t.Dp(a.border)
	p := a.padding
	width := layout.Max(r.Dx()-p.Left-p.Right-2*bw, 1)
	height := layout.Max(r.Dy()-p.Top-p.Bottom-2*bw, 1)
	req := t.Measure(a.child)

	cw, ch := width, height
	if width > req.X {
		cw = int(float32(req.X)*(1-a.xscale) + float32(width)*a.xscale)
	}
	if height > req.Y {
		ch = int(float32(req.Y)*(1-a.yscale) + float32(height)*a.yscale)
	}
	var x int
	if t.DirectionOf(a.handle) == layout.RTL {
		x = int((1-a.xalign)*float32(width-cw)) + r.Min.X + bw + p.Right
	} else {
		x = int(a.xalign*float32(width-cw)) + r.Min.X + bw + p.Left
	}
	y := int(a.yalign*float32(height-ch)) + r.Min.Y + bw + p.Top
	t.Allocate(a.child, image.Rect(x, y, x+cw, y+ch))
}
