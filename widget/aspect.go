// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"

	"widgetry.org/layout"
)

const (
	minRatio = 0.0001
	maxRatio = 10000.0
)

// AspectFrame gives its child the largest rectangle of a fixed aspect
// ratio that fits the frame, aligned by the alignment fractions.
type AspectFrame struct {
	bin

	xalign, yalign float32
	ratio          float32
	obeyChild      bool
}

// NewAspectFrame inserts an AspectFrame into tree. If obeyChild is
// set, the ratio is taken from the child's requisition instead.
func NewAspectFrame(tree *layout.Tree, th *Theme, xalign, yalign, ratio float32, obeyChild bool) *AspectFrame {
	f := &AspectFrame{}
	f.tree = tree
	f.border = th.BorderWidth
	f.set(xalign, yalign, ratio, obeyChild)
	f.handle = tree.Insert(f)
	return f
}

// Set changes the alignment, ratio and obey child setting.
func (f *AspectFrame) Set(xalign, yalign, ratio float32, obeyChild bool) {
	f.set(xalign, yalign, ratio, obeyChild)
	f.tree.QueueResize(f.handle)
}

func (f *AspectFrame) set(xalign, yalign, ratio float32, obeyChild bool) {
	f.xalign = layout.Clamp(xalign, 0, 1)
	f.yalign = layout.Clamp(yalign, 0, 1)
	f.ratio = layout.Clamp(ratio, minRatio, maxRatio)
	f.obeyChild = obeyChild
}

// Ratio returns the ratio in effect for the current child.
func (f *AspectFrame) Ratio(t *layout.Tree) float32 {
	if !f.obeyChild {
		return f.ratio
	}
	req := f.childRequisition(t)
	switch {
	case req.Y != 0:
		return layout.Clamp(float32(req.X)/float32(req.Y), minRatio, maxRatio)
	case req.X != 0:
		return maxRatio
	default:
		return 1
	}
}

func (f *AspectFrame) Measure(t *layout.Tree) image.Point {
	bw := 2 * t.Dp(f.border)
	return f.childRequisition(t).Add(image.Pt(bw, bw))
}

func (f *AspectFrame) Allocate(t *layout.Tree, r image.Rectangle) {
	if !f.child.Valid() || !t.Visible(f.child) {
		return
	}
	full := f.inner(t, r)
	ratio := f.Ratio(t)
	var w, h int
	if ratio*float32(full.Dy()) > float32(full.Dx()) {
		w = full.Dx()
		h = int(float32(w)/ratio + 0.5)
	} else {
		w = int(ratio*float32(full.Dy()) + 0.5)
		h = full.Dy()
	}
	x := full.Min.X + int(f.xalign*float32(full.Dx()-w))
	y := full.Min.Y + int(f.yalign*float32(full.Dy()-h))
	t.Allocate(f.child, image.Rect(x, y, x+w, y+h))
}
