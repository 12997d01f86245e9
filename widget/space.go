// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"

	"widgetry.org/layout"
)

// Space is a leaf with a fixed minimum size.
type Space struct {
	tree   *layout.Tree
	handle layout.Handle
	size   image.Point
}

// NewSpace inserts a Space of the given size into tree.
func NewSpace(tree *layout.Tree, width, height int) *Space {
	s := &Space{tree: tree, size: image.Pt(width, height)}
	s.handle = tree.Insert(s)
	return s
}

// Handle returns the tree handle of the space.
func (s *Space) Handle() layout.Handle { return s.handle }

// SetSize changes the minimum size and queues a resize.
func (s *Space) SetSize(width, height int) {
	if sz := image.Pt(width, height); sz != s.size {
		s.size = sz
		s.tree.QueueResize(s.handle)
	}
}

func (s *Space) Measure(t *layout.Tree) image.Point {
	return s.size
}

func (s *Space) Allocate(t *layout.Tree, r image.Rectangle) {}
