// SPDX-License-Identifier: Unlicense OR MIT

package layout

import (
	"image"

	"golang.org/x/exp/constraints"
)

// Widget is a participant in the two phase layout protocol.
//
// Measure returns the minimum size the widget wants. It must be a pure
// function of the widget's content and settings: the Tree caches the
// result and calls Measure again only after the widget or one of its
// descendants is invalidated with QueueResize.
//
// Allocate is called by the Tree after the widget's parent assigned it
// the rectangle r. Containers partition r among their visible children
// and call Tree.Allocate for each of them. A widget never positions
// itself.
type Widget interface {
	Measure(t *Tree) image.Point
	Allocate(t *Tree, r image.Rectangle)
}

// Container is a Widget with children.
type Container interface {
	Widget
	// Children returns the child handles in layout order.
	Children() []Handle
	// Forget drops the container's placement record for child. It is
	// called by the Tree while the child is detached; implementations
	// must not call back into Tree.Unparent.
	Forget(t *Tree, child Handle)
}

// Axis is the Horizontal or Vertical direction.
type Axis uint8

// Direction is the reading direction of a widget. It controls
// horizontal mirroring of child positions.
type Direction uint8

const (
	Horizontal Axis = iota
	Vertical
)

const (
	// Inherit resolves the direction from the nearest ancestor that
	// sets one, and falls back to Tree.Direction.
	Inherit Direction = iota
	LTR
	RTL
)

// Main returns the main axis component of p.
func (a Axis) Main(p image.Point) int {
	if a == Horizontal {
		return p.X
	}
	return p.Y
}

// Cross returns the cross axis component of p.
func (a Axis) Cross(p image.Point) int {
	if a == Horizontal {
		return p.Y
	}
	return p.X
}

// Point returns a point with the main and cross components placed
// according to a.
func (a Axis) Point(main, cross int) image.Point {
	if a == Horizontal {
		return image.Point{X: main, Y: cross}
	}
	return image.Point{X: cross, Y: main}
}

// Span returns the start and size of r along a.
func (a Axis) Span(r image.Rectangle) (start, size int) {
	if a == Horizontal {
		return r.Min.X, r.Dx()
	}
	return r.Min.Y, r.Dy()
}

// Other returns the perpendicular axis.
func (a Axis) Other() Axis {
	if a == Horizontal {
		return Vertical
	}
	return Horizontal
}

// Mirror reflects the horizontal position of r around the vertical
// center line of within.
func Mirror(r, within image.Rectangle) image.Rectangle {
	x := within.Min.X + within.Max.X - r.Max.X
	return image.Rect(x, r.Min.Y, x+r.Dx(), r.Max.Y)
}

// Clamp constrains v to the range [lo; hi].
func Clamp[T constraints.Integer | constraints.Float](v, lo, hi T) T {
	if v < lo {
		return lo
	} else if v > hi {
		return hi
	}
	return v
}

// Min returns the smaller of a and b.
func Min[T constraints.Integer](a, b T) T {
	if a < b {
		return a
	}
	return b
}

// Max returns the larger of a and b.
func Max[T constraints.Integer](a, b T) T {
	if a > b {
		return a
	}
	return b
}

func (a Axis) String() string {
	switch a {
	case Horizontal:
		return "Horizontal"
	case Vertical:
		return "Vertical"
	default:
		panic("unreachable")
	}
}

func (d Direction) String() string {
	switch d {
	case Inherit:
		return "Inherit"
	case LTR:
		return "LTR"
	case RTL:
		return "RTL"
	default:
		panic("unreachable")
	}
}
