// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"math"

	"widgetry.org/layout"
)

// Adjustment is a bounded scroll value. Value stays within
// [Lower; Upper-PageSize].
type Adjustment struct {
	Value         float64
	Lower, Upper  float64
	StepIncrement float64
	PageIncrement float64
	PageSize      float64
}

// Configure replaces the bounds and increments and clamps Value.
func (a *Adjustment) Configure(lower, upper, step, page, pageSize float64) {
	a.Lower = lower
	a.Upper = upper
	a.StepIncrement = step
	a.PageIncrement = page
	a.PageSize = pageSize
	a.SetValue(a.Value)
}

// SetValue sets Value, clamped to the valid range.
func (a *Adjustment) SetValue(v float64) {
	hi := math.Max(a.Lower, a.Upper-a.PageSize)
	a.Value = math.Max(a.Lower, math.Min(v, hi))
}

// ClampPage scrolls the least amount needed to make [lower; upper]
// visible. If the range is larger than a page, its start is shown.
func (a *Adjustment) ClampPage(lower, upper float64) {
	lower = math.Max(a.Lower, math.Min(lower, a.Upper))
	upper = math.Max(a.Lower, math.Min(upper, a.Upper))
	v := a.Value
	if v+a.PageSize < upper {
		v = upper - a.PageSize
	}
	if v > lower {
		v = lower
	}
	a.SetValue(v)
}

// Viewport shows a scrollable window onto a child that may be larger
// than the viewport itself.
type Viewport struct {
	bin

	H, V Adjustment
}

// NewViewport inserts a Viewport into tree.
func NewViewport(tree *layout.Tree, th *Theme) *Viewport {
	v := &Viewport{}
	v.tree = tree
	v.border = th.BorderWidth
	v.handle = tree.Insert(v)
	return v
}

// ScrollTo moves the view so that its top left corner shows the child
// point (x, y), within the scroll bounds.
func (v *Viewport) ScrollTo(x, y int) {
	v.H.SetValue(float64(x))
	v.V.SetValue(float64(y))
	v.placeChild(v.tree)
}

// ScrollToRect scrolls the least amount needed to show r, given in
// child coordinates.
func (v *Viewport) ScrollToRect(r image.Rectangle) {
	v.H.ClampPage(float64(r.Min.X), float64(r.Max.X))
	v.V.ClampPage(float64(r.Min.Y), float64(r.Max.Y))
	v.placeChild(v.tree)
}

// Offset returns the current scroll position.
func (v *Viewport) Offset() image.Point {
	return image.Pt(int(v.H.Value), int(v.V.Value))
}

func (v *Viewport) Measure(t *layout.Tree) image.Point {
	bw := 2 * t.Dp(v.border)
	return v.childRequisition(t).Add(image.Pt(bw, bw))
}

func (v *Viewport) Allocate(t *layout.Tree, r image.Rectangle) {
	view := v.inner(t, r)
	req := v.childRequisition(t)
	w, h := float64(view.Dx()), float64(view.Dy())
	v.H.Configure(0, math.Max(w, float64(req.X)), w*0.1, w*0.9, w)
	v.V.Configure(0, math.Max(h, float64(req.Y)), h*0.1, h*0.9, h)
	v.placeChild(t)
}

// placeChild positions the child at the current scroll offset.
func (v *Viewport) placeChild(t *layout.Tree) {
	if !v.child.Valid() || !t.Visible(v.child) {
		return
	}
	r := t.Allocation(v.handle)
	if r.Empty() {
		return
	}
	view := v.inner(t, r)
	origin := view.Min.Sub(v.Offset())
	size := image.Pt(int(v.H.Upper), int(v.V.Upper))
	t.Allocate(v.child, image.Rectangle{Min: origin, Max: origin.Add(size)})
}
