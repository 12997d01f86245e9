// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"widgetry.org/layout"
)

// Label is a leaf that measures one or more lines of text.
type Label struct {
	tree   *layout.Tree
	handle layout.Handle
	face   font.Face
	text   string
}

// NewLabel inserts a Label measured with the theme's face.
func NewLabel(tree *layout.Tree, th *Theme, text string) *Label {
	l := &Label{tree: tree, face: th.Face, text: text}
	l.handle = tree.Insert(l)
	return l
}

// Handle returns the tree handle of the label.
func (l *Label) Handle() layout.Handle { return l.handle }

// Text returns the label text.
func (l *Label) Text() string { return l.text }

// Face returns the face the label is measured with.
func (l *Label) Face() font.Face { return l.face }

// SetText replaces the text and queues a resize.
func (l *Label) SetText(txt string) {
	if txt != l.text {
		l.text = txt
		l.tree.QueueResize(l.handle)
	}
}

func (l *Label) Measure(t *layout.Tree) image.Point {
	lines := strings.Split(l.text, "\n")
	var width fixed.Int26_6
	for _, line := range lines {
		if w := font.MeasureString(l.face, line); w > width {
			width = w
		}
	}
	m := l.face.Metrics()
	return image.Point{
		X: width.Ceil(),
		Y: m.Height.Ceil() * len(lines),
	}
}

func (l *Label) Allocate(t *layout.Tree, r image.Rectangle) {}
