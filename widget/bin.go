// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"errors"
	"fmt"
	"image"

	"widgetry.org/layout"
	"widgetry.org/unit"
)

// ErrOccupied is returned when setting the child of a container that
// holds at most one child and already has one.
var ErrOccupied = errors.New("widget: container already has a child")

// bin is the single child bookkeeping shared by Alignment, AspectFrame
// and Viewport.
type bin struct {
	tree   *layout.Tree
	handle layout.Handle
	child  layout.Handle
	border unit.Dp
}

// Handle returns the tree handle of the container.
func (b *bin) Handle() layout.Handle { return b.handle }

// Child returns the child, or the zero Handle.
func (b *bin) Child() layout.Handle { return b.child }

// SetChild attaches child. Use Tree.Reparent to move a child that
// already has a parent.
func (b *bin) SetChild(child layout.Handle) error {
	if b.child.Valid() {
		return fmt.Errorf("set child %v: %w", child, ErrOccupied)
	}
	if err := b.tree.SetParent(child, b.handle); err != nil {
		return fmt.Errorf("set child %v: %w", child, err)
	}
	b.child = child
	return nil
}

// RemoveChild detaches the child, if any.
func (b *bin) RemoveChild() error {
	if !b.child.Valid() {
		return nil
	}
	return b.tree.Unparent(b.child)
}

// SetBorderWidth sets the space around the child.
func (b *bin) SetBorderWidth(w unit.Dp) {
	if w < 0 {
		w = 0
	}
	if w != b.border {
		b.border = w
		b.tree.QueueResize(b.handle)
	}
}

// Children implements layout.Container.
func (b *bin) Children() []layout.Handle {
	if !b.child.Valid() {
		return nil
	}
	return []layout.Handle{b.child}
}

// Forget implements layout.Container.
func (b *bin) Forget(t *layout.Tree, child layout.Handle) {
	if child == b.child {
		b.child = layout.Handle{}
	}
}

// childRequisition returns the child's requisition, zero without a
// visible child.
func (b *bin) childRequisition(t *layout.Tree) image.Point {
	if !b.child.Valid() {
		return image.Point{}
	}
	return t.Measure(b.child)
}

// inner returns r without the border, never smaller than 1x1.
func (b *bin) inner(t *layout.Tree, r image.Rectangle) image.Rectangle {
	bw := t.Dp(b.border)
	in := image.Rect(r.Min.X+bw, r.Min.Y+bw, r.Max.X-bw, r.Max.Y-bw)
	if in.Dx() < 1 {
		in.Max.X = in.Min.X + 1
	}
	if in.Dy() < 1 {
		in.Max.Y = in.Min.Y + 1
	}
	return in
}
