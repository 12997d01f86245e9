// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"fmt"
	"image"
	"log"
	"time"

	"widgetry.org/layout"
	"widgetry.org/unit"
	"widgetry.org/widget"
	"widgetry.org/widget/palette"
)

type config struct {
	metric     unit.Metric
	rtl        bool
	horizontal bool
	animate    bool
	logger     *log.Logger
}

// demo is a window with a title, a scrolled tool palette and a preview
// area kept at a 4:3 ratio.
type demo struct {
	tree    *layout.Tree
	theme   *widget.Theme
	root    *widget.Table
	view    *widget.Viewport
	palette *palette.Palette
	groups  map[string]*palette.Group
}

func newDemo(cfg config) (*demo, error) {
	tree := &layout.Tree{Metric: cfg.metric, Logger: cfg.logger}
	if cfg.rtl {
		tree.Direction = layout.RTL
	}
	th := widget.NewTheme()
	th.BorderWidth = 2
	th.RowSpacing = 4
	th.ColumnSpacing = 4
	th.Animate = cfg.animate
	d := &demo{
		tree:   tree,
		theme:  th,
		groups: make(map[string]*palette.Group),
	}

	d.root = widget.NewTable(tree, th, 2, 2)
	title := widget.NewAlignment(tree, th, .5, .5, 0, 0)
	if err := title.SetChild(widget.NewLabel(tree, th, "widgetry layout").Handle()); err != nil {
		return nil, err
	}
	if err := d.root.Attach(title.Handle(), 0, 2, 0, 1, widget.Fill, 0, 0, 2); err != nil {
		return nil, err
	}

	d.palette = palette.NewPalette(tree, th)
	if cfg.horizontal {
		d.palette.SetOrientation(layout.Horizontal)
	}
	if err := d.addGroups(); err != nil {
		return nil, err
	}
	d.view = widget.NewViewport(tree, th)
	if err := d.view.SetChild(d.palette.Handle()); err != nil {
		return nil, err
	}
	all := widget.Expand | widget.Shrink | widget.Fill
	if err := d.root.Attach(d.view.Handle(), 0, 1, 1, 2, all, all, 0, 0); err != nil {
		return nil, err
	}

	preview := widget.NewAspectFrame(tree, th, .5, 0, 4./3, false)
	if err := preview.SetChild(widget.NewSpace(tree, 40, 30).Handle()); err != nil {
		return nil, err
	}
	if err := d.root.Attach(preview.Handle(), 1, 2, 1, 2, widget.Fill, all, 0, 0); err != nil {
		return nil, err
	}

	d.settle()
	return d, nil
}

func (d *demo) addGroups() error {
	groups := []struct {
		name      string
		items     int
		size      int
		exclusive bool
		collapsed bool
		extra     string
	}{
		{name: "Shapes", items: 8, size: 24},
		{name: "Tools", items: 5, size: 24, extra: "Zoom to fit"},
		{name: "Colors", items: 12, size: 16, exclusive: true},
		{name: "Brushes", items: 6, size: 20, exclusive: true, collapsed: true},
	}
	for _, gs := range groups {
		g := palette.NewGroup(d.tree, d.theme, gs.name)
		if err := d.palette.Add(g); err != nil {
			return err
		}
		for i := 0; i < gs.items; i++ {
			if err := g.Add(widget.NewSpace(d.tree, gs.size, gs.size).Handle()); err != nil {
				return err
			}
		}
		if gs.extra != "" {
			l := widget.NewLabel(d.tree, d.theme, gs.extra)
			item := palette.Item{
				Widget:  l.Handle(),
				Packing: palette.Packing{Expand: true, NewRow: true},
			}
			if err := g.Insert(item, -1); err != nil {
				return err
			}
		}
		g.SetCollapsed(gs.collapsed)
		if err := d.palette.SetExclusive(g, gs.exclusive); err != nil {
			return err
		}
		d.groups[gs.name] = g
	}
	return nil
}

// toggle collapses or expands the named groups.
func (d *demo) toggle(names []string) error {
	for _, name := range names {
		g, ok := d.groups[name]
		if !ok {
			return fmt.Errorf("no palette group %q", name)
		}
		g.SetCollapsed(!g.Collapsed())
	}
	return nil
}

// tick advances the palette animations to elapsed past the epoch used by
// settle and lays out the result.
func (d *demo) tick(elapsed time.Duration) bool {
	more := d.palette.Tick(epoch.Add(elapsed))
	d.tree.Flush()
	return more
}

// settle finishes every running animation.
func (d *demo) settle() {
	d.tick(0)
	d.tick(d.theme.AnimationDuration)
}

var epoch = time.Unix(0, 0)

func (d *demo) layout(size image.Point) {
	d.tree.Layout(d.root.Handle(), image.Rectangle{Max: size})
	// The palette learns its width during the first pass.
	d.tree.Flush()
}
