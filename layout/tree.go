// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"errors"
	"fmt"
	"image"
	"log"

	"golang.org/x/exp/slices"

	"widgetry.org/unit"
)

var (
	// ErrInvalidHandle is returned for zero, removed or foreign handles.
	ErrInvalidHandle = errors.New("layout: invalid widget handle")
	// ErrParented is returned when attaching a widget that already has
	// a parent.
	ErrParented = errors.New("layout: widget already has a parent")
	// ErrNotChild is returned when detaching a widget from a container
	// that does not hold it.
	ErrNotChild = errors.New("layout: widget is not a child")
	// ErrCycle is returned when attaching a widget below itself.
	ErrCycle = errors.New("layout: widget would become its own ancestor")
)

// Handle is a stable reference to a widget in a Tree. The zero Handle
// refers to no widget.
type Handle struct {
	index uint32
	gen   uint32
}

// Tree owns the widgets of a user interface and the layout state the
// measure and allocate passes share: cached requisitions, allocations,
// visibility and the weak parent references.
//
// A Tree is not safe for concurrent use. All layout happens on the
// goroutine that owns the Tree.
type Tree struct {
	// Metric converts style parameters in dp to pixels.
	unit.Metric
	// Direction is the reading direction of widgets that don't set
	// their own. The zero value means LTR.
	Direction Direction
	// Logger, if set, receives reports of over-constrained layouts.
	Logger *log.Logger

	nodes   []node
	free    []uint32
	pending []Handle
}

type node struct {
	widget Widget
	gen    uint32
	parent Handle
	hidden bool
	// unmapped is set by the parent for children it doesn't show,
	// such as the items of a collapsed group.
	unmapped bool
	queued   bool
	dir      Direction

	req      image.Point
	reqValid bool
	alloc    image.Rectangle
}

// Valid reports whether h was returned by Tree.Insert. It does not
// report whether the widget is still in the tree; use Tree.Contains.
func (h Handle) Valid() bool {
	return h.gen != 0
}

func (h Handle) String() string {
	if !h.Valid() {
		return "#none"
	}
	return fmt.Sprintf("#%d.%d", h.index, h.gen)
}

// Insert adds a detached widget to the tree and returns its handle.
func (t *Tree) Insert(w Widget) Handle {
	if w == nil {
		panic("layout: nil widget")
	}
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.nodes))
		t.nodes = append(t.nodes, node{})
	}
	gen := t.nodes[idx].gen + 1
	if gen == 0 {
		gen = 1
	}
	t.nodes[idx] = node{widget: w, gen: gen}
	return Handle{index: idx, gen: gen}
}

// Remove detaches h from its parent and removes it and, for
// containers, all its descendants from the tree.
func (t *Tree) Remove(h Handle) error {
	n, err := t.lookup(h)
	if err != nil {
		return err
	}
	if n.parent.Valid() {
		if err := t.Unparent(h); err != nil {
			return err
		}
	}
	t.release(h)
	return nil
}

func (t *Tree) release(h Handle) {
	n, err := t.lookup(h)
	if err != nil {
		return
	}
	if c, ok := n.widget.(Container); ok {
		for _, ch := range slices.Clone(c.Children()) {
			if cn, err := t.lookup(ch); err == nil {
				cn.parent = Handle{}
			}
			t.release(ch)
		}
	}
	if n.queued {
		if i := slices.Index(t.pending, h); i >= 0 {
			t.pending = slices.Delete(t.pending, i, i+1)
		}
	}
	t.nodes[h.index] = node{gen: n.gen}
	t.free = append(t.free, h.index)
}

// Contains reports whether h refers to a widget in the tree.
func (t *Tree) Contains(h Handle) bool {
	_, err := t.lookup(h)
	return err == nil
}

// Widget returns the widget for h, or nil if h is not in the tree.
func (t *Tree) Widget(h Handle) Widget {
	n, err := t.lookup(h)
	if err != nil {
		return nil
	}
	return n.widget
}

// Parent returns the parent of h, or the zero Handle for toplevels.
func (t *Tree) Parent(h Handle) Handle {
	n, err := t.lookup(h)
	if err != nil {
		return Handle{}
	}
	return n.parent
}

// Children returns the children of a container in layout order.
func (t *Tree) Children(h Handle) []Handle {
	n, err := t.lookup(h)
	if err != nil {
		return nil
	}
	if c, ok := n.widget.(Container); ok {
		return c.Children()
	}
	return nil
}

// SetParent records parent as the parent of child. Containers call it
// before they add their own placement record for child.
func (t *Tree) SetParent(child, parent Handle) error {
	cn, err := t.lookup(child)
	if err != nil {
		return err
	}
	if _, err := t.lookup(parent); err != nil {
		return err
	}
	if cn.parent.Valid() {
		return ErrParented
	}
	for a := parent; a.Valid(); a = t.Parent(a) {
		if a == child {
			return ErrCycle
		}
	}
	if cn.queued {
		// No longer a toplevel.
		cn.queued = false
		if i := slices.Index(t.pending, child); i >= 0 {
			t.pending = slices.Delete(t.pending, i, i+1)
		}
	}
	cn.parent = parent
	t.QueueResize(parent)
	return nil
}

// Unparent detaches child from its parent. The parent's Forget method
// runs before the back reference is cleared, so the child is never
// recorded in two containers.
func (t *Tree) Unparent(child Handle) error {
	cn, err := t.lookup(child)
	if err != nil {
		return err
	}
	parent := cn.parent
	pn, err := t.lookup(parent)
	if err != nil {
		return ErrNotChild
	}
	if c, ok := pn.widget.(Container); ok {
		c.Forget(t, child)
	}
	// Forget may have grown the node slice; look up again.
	cn, _ = t.lookup(child)
	cn.parent = Handle{}
	cn.unmapped = false
	cn.alloc = image.Rectangle{}
	t.QueueResize(parent)
	return nil
}

// Reparent moves child to a new container. The child is detached from
// its current parent, if any, before attach runs.
func (t *Tree) Reparent(child Handle, attach func() error) error {
	if t.Parent(child).Valid() {
		if err := t.Unparent(child); err != nil {
			return err
		}
	}
	return attach()
}

// Visible reports whether h takes part in layout.
func (t *Tree) Visible(h Handle) bool {
	n, err := t.lookup(h)
	if err != nil {
		return false
	}
	return !n.hidden
}

// SetVisible shows or hides h. Hidden widgets measure as zero and are
// given an empty allocation.
func (t *Tree) SetVisible(h Handle, visible bool) error {
	n, err := t.lookup(h)
	if err != nil {
		return err
	}
	if n.hidden == !visible {
		return nil
	}
	n.hidden = !visible
	if n.hidden {
		n.alloc = image.Rectangle{}
	}
	t.QueueResize(h)
	return nil
}

// SetChildVisible is called by containers to map or unmap a visible
// child without changing its own visibility. Unmapped widgets are still
// measured but receive an empty allocation.
func (t *Tree) SetChildVisible(h Handle, mapped bool) {
	n, err := t.lookup(h)
	if err != nil {
		return
	}
	n.unmapped = !mapped
	if n.unmapped {
		n.alloc = image.Rectangle{}
	}
}

// Mapped reports whether h is visible and mapped by its parent.
func (t *Tree) Mapped(h Handle) bool {
	n, err := t.lookup(h)
	if err != nil {
		return false
	}
	return !n.hidden && !n.unmapped
}

// SetDirection overrides the reading direction of h and its
// descendants. Inherit restores the inherited direction.
func (t *Tree) SetDirection(h Handle, d Direction) error {
	n, err := t.lookup(h)
	if err != nil {
		return err
	}
	if n.dir != d {
		n.dir = d
		t.QueueResize(h)
	}
	return nil
}

// DirectionOf resolves the reading direction of h.
func (t *Tree) DirectionOf(h Handle) Direction {
	for h.Valid() {
		n, err := t.lookup(h)
		if err != nil {
			break
		}
		if n.dir != Inherit {
			return n.dir
		}
		h = n.parent
	}
	if t.Direction == Inherit {
		return LTR
	}
	return t.Direction
}

// Measure returns the requisition of h, measuring it if the cached
// value is stale. Hidden and unknown widgets measure as zero.
func (t *Tree) Measure(h Handle) image.Point {
	n, err := t.lookup(h)
	if err != nil || n.hidden {
		return image.Point{}
	}
	if !n.reqValid {
		w := n.widget
		req := w.Measure(t)
		if req.X < 0 {
			req.X = 0
		}
		if req.Y < 0 {
			req.Y = 0
		}
		// Measure may insert widgets and move the node slice.
		n, _ = t.lookup(h)
		n.req = req
		n.reqValid = true
	}
	return n.req
}

// Allocate assigns r to h and lets h allocate its children. Visible
// widgets never receive less than 1x1 pixels.
func (t *Tree) Allocate(h Handle, r image.Rectangle) {
	n, err := t.lookup(h)
	if err != nil {
		return
	}
	if n.hidden || n.unmapped {
		n.alloc = image.Rectangle{}
		return
	}
	r = r.Canon()
	if r.Dx() < 1 {
		r.Max.X = r.Min.X + 1
	}
	if r.Dy() < 1 {
		r.Max.Y = r.Min.Y + 1
	}
	n.alloc = r
	n.widget.Allocate(t, r)
}

// Allocation returns the rectangle most recently assigned to h.
func (t *Tree) Allocation(h Handle) image.Rectangle {
	n, err := t.lookup(h)
	if err != nil {
		return image.Rectangle{}
	}
	return n.alloc
}

// QueueResize marks the requisition of h and every ancestor stale and
// schedules the toplevel for a new layout pass in Flush.
func (t *Tree) QueueResize(h Handle) {
	for h.Valid() {
		n, err := t.lookup(h)
		if err != nil {
			return
		}
		n.reqValid = false
		if !n.parent.Valid() {
			if !n.queued {
				n.queued = true
				t.pending = append(t.pending, h)
			}
			return
		}
		h = n.parent
	}
}

// Pending returns the toplevels waiting for a layout pass.
func (t *Tree) Pending() []Handle {
	return slices.Clone(t.pending)
}

// Flush runs a layout pass for every toplevel queued by QueueResize.
// A toplevel keeps its previous allocation, grown to its requisition
// where needed. Flush returns the number of toplevels laid out.
func (t *Tree) Flush() int {
	pending := t.pending
	t.pending = nil
	count := 0
	for _, h := range pending {
		n, err := t.lookup(h)
		if err != nil {
			continue
		}
		n.queued = false
		if n.parent.Valid() {
			continue
		}
		r := n.alloc
		req := t.Measure(h)
		if r.Dx() < req.X {
			r.Max.X = r.Min.X + req.X
		}
		if r.Dy() < req.Y {
			r.Max.Y = r.Min.Y + req.Y
		}
		t.Allocate(h, r)
		count++
	}
	return count
}

// Layout measures root and allocates r to it. It returns the
// requisition of root.
func (t *Tree) Layout(root Handle, r image.Rectangle) image.Point {
	req := t.Measure(root)
	if n, err := t.lookup(root); err == nil && n.queued {
		n.queued = false
		if i := slices.Index(t.pending, root); i >= 0 {
			t.pending = slices.Delete(t.pending, i, i+1)
		}
	}
	t.Allocate(root, r)
	return req
}

// Walk calls fn for h and its descendants in depth first order. The
// descent into a container stops when fn returns false.
func (t *Tree) Walk(h Handle, fn func(h Handle, depth int) bool) {
	t.walk(h, 0, fn)
}

func (t *Tree) walk(h Handle, depth int, fn func(Handle, int) bool) {
	if !t.Contains(h) {
		return
	}
	if !fn(h, depth) {
		return
	}
	for _, c := range t.Children(h) {
		t.walk(c, depth+1, fn)
	}
}

// Logf reports a layout condition to the Tree's Logger, if any.
func (t *Tree) Logf(format string, args ...interface{}) {
	if t.Logger != nil {
		t.Logger.Printf(format, args...)
	}
}

func (t *Tree) lookup(h Handle) (*node, error) {
	if !h.Valid() || int(h.index) >= len(t.nodes) {
		return nil, ErrInvalidHandle
	}
	n := &t.nodes[h.index]
	if n.gen != h.gen || n.widget == nil {
		return nil, ErrInvalidHandle
	}
	return n, nil
}
