// SPDX-License-Identifier: Unlicense OR MIT

// Package outline draws laid out widget trees for debugging and tests.
package outline

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"widgetry.org/layout"
	"widgetry.org/widget"
	"widgetry.org/widget/palette"
)

// Colors are the outline colors, cycled by tree depth.
var Colors = []color.RGBA{
	colornames.Steelblue,
	colornames.Darkorange,
	colornames.Seagreen,
	colornames.Crimson,
	colornames.Slateblue,
}

var (
	background = colornames.White
	headerFill = colornames.Gainsboro
	ink        = colornames.Black
)

// Options control Paint.
type Options struct {
	// IndicatorSize is the size of expander arrows in pixels. Arrows
	// are never larger than their expander.
	IndicatorSize int
}

// Paint clears dst and draws the allocation of every mapped widget
// below root, the text of labels and the headers of palette groups.
// Children are clipped to their parent's allocation.
func Paint(dst *image.RGBA, t *layout.Tree, root layout.Handle, opts Options) {
	fill(dst, dst.Bounds(), background)
	paint(dst, t, root, 0, dst.Bounds(), opts)
}

func paint(dst *image.RGBA, t *layout.Tree, h layout.Handle, depth int, clip image.Rectangle, opts Options) {
	if !t.Mapped(h) {
		return
	}
	r := t.Allocation(h)
	switch w := t.Widget(h).(type) {
	case *palette.Group:
		fill(dst, w.HeaderRect().Intersect(clip), headerFill)
		arrow(dst, w.ExpanderRect(), w.ExpanderState(), opts.IndicatorSize, clip)
	case *widget.Label:
		text(dst, r.Intersect(clip), r.Min, w)
	}
	stroke(dst, r, Colors[depth%len(Colors)], clip)
	clip = clip.Intersect(r)
	for _, c := range t.Children(h) {
		paint(dst, t, c, depth+1, clip, opts)
	}
}

func fill(dst *image.RGBA, r image.Rectangle, c color.RGBA) {
	draw.Draw(dst, r, image.NewUniform(c), image.Point{}, draw.Src)
}

// stroke draws the 1px border just inside r.
func stroke(dst *image.RGBA, r image.Rectangle, c color.RGBA, clip image.Rectangle) {
	edges := [...]image.Rectangle{
		{Min: r.Min, Max: image.Pt(r.Max.X, r.Min.Y+1)},
		{Min: image.Pt(r.Min.X, r.Max.Y-1), Max: r.Max},
		{Min: r.Min, Max: image.Pt(r.Min.X+1, r.Max.Y)},
		{Min: image.Pt(r.Max.X-1, r.Min.Y), Max: r.Max},
	}
	for _, e := range edges {
		fill(dst, e.Intersect(clip), c)
	}
}

func text(dst *image.RGBA, visible image.Rectangle, origin image.Point, l *widget.Label) {
	if visible.Empty() {
		return
	}
	face := l.Face()
	m := face.Metrics()
	d := font.Drawer{
		Dst:  dst.SubImage(visible).(*image.RGBA),
		Src:  image.NewUniform(ink),
		Face: face,
	}
	for i, line := range strings.Split(l.Text(), "\n") {
		d.Dot = fixed.Point26_6{
			X: fixed.I(origin.X),
			Y: fixed.I(origin.Y) + m.Ascent + fixed.Int26_6(i)*m.Height,
		}
		d.DrawString(line)
	}
}

type point struct{ x, y float64 }

// arrow fills the expander triangle for state, centered in box.
func arrow(dst *image.RGBA, box image.Rectangle, state palette.ExpanderState, size int, clip image.Rectangle) {
	if m := layout.Min(box.Dx(), box.Dy()); size <= 0 || size > m {
		size = m
	}
	o := box.Min.Add(box.Size().Sub(image.Pt(size, size)).Div(2))
	s := float64(size)
	var tri [3]point
	switch state {
	case palette.Collapsed:
		tri = [3]point{{s / 4, 0}, {s / 4, s}, {3 * s / 4, s / 2}}
	case palette.Expanded:
		tri = [3]point{{0, s / 4}, {s, s / 4}, {s / 2, 3 * s / 4}}
	default:
		tri = [3]point{{3 * s / 4, s / 4}, {3 * s / 4, 3 * s / 4}, {s / 4, 3 * s / 4}}
	}
	area := image.Rectangle{Min: o, Max: o.Add(image.Pt(size, size))}.Intersect(clip)
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			p := point{float64(x-o.X) + .5, float64(y-o.Y) + .5}
			if inside(p, tri) {
				dst.SetRGBA(x, y, ink)
			}
		}
	}
}

func inside(p point, tri [3]point) bool {
	var neg, pos bool
	for i := range tri {
		a, b := tri[i], tri[(i+1)%3]
		d := (p.x-b.x)*(a.y-b.y) - (a.x-b.x)*(p.y-b.y)
		neg = neg || d < 0
		pos = pos || d > 0
	}
	return !(neg && pos)
}

// Dump writes the widgets below root with their allocations, one per
// line and indented by depth.
func Dump(w io.Writer, t *layout.Tree, root layout.Handle) error {
	var err error
	t.Walk(root, func(h layout.Handle, depth int) bool {
		if err != nil {
			return false
		}
		state := ""
		if !t.Mapped(h) {
			state = " unmapped"
		}
		_, err = fmt.Fprintf(w, "%s%s %v%s\n", strings.Repeat("  ", depth), Name(t.Widget(h)), t.Allocation(h), state)
		return true
	})
	return err
}

// Name returns a short description of w.
func Name(w layout.Widget) string {
	switch w := w.(type) {
	case *widget.Table:
		rows, cols := w.Size()
		return fmt.Sprintf("Table %dx%d", rows, cols)
	case *widget.Alignment:
		return "Alignment"
	case *widget.AspectFrame:
		return "AspectFrame"
	case *widget.Viewport:
		return "Viewport"
	case *widget.Space:
		return "Space"
	case *widget.Label:
		return fmt.Sprintf("Label %q", w.Text())
	case *palette.Palette:
		return "Palette"
	case *palette.Group:
		return fmt.Sprintf("Group %q %v", w.Label(), w.ExpanderState())
	default:
		return fmt.Sprintf("%T", w)
	}
}
