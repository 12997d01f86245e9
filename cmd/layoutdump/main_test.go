// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"

	"widgetry.org/layout"
	"widgetry.org/unit"
)

func TestParseSizes(t *testing.T) {
	tests := []struct {
		in   string
		want []image.Point
		err  bool
	}{
		{in: "640x480", want: []image.Point{{640, 480}}},
		{in: "320x240, 1x1", want: []image.Point{{320, 240}, {1, 1}}},
		{in: "640", err: true},
		{in: "ax480", err: true},
		{in: "0x480", err: true},
		{in: "", err: true},
	}
	for _, tc := range tests {
		got, err := parseSizes(tc.in)
		if tc.err {
			if err == nil {
				t.Errorf("%q: expected error, got %v", tc.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if len(got) != len(tc.want) {
			t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("%q: got %v, want %v", tc.in, got, tc.want)
				break
			}
		}
	}
	if _, err := parseSizes("0x0"); !errors.Is(err, errEmptySize) {
		t.Errorf("0x0: got %v, want %v", err, errEmptySize)
	}
}

func testConfig() config {
	return config{metric: unit.Metric{PxPerDp: 1}}
}

func TestDemoLayout(t *testing.T) {
	d, err := newDemo(testConfig())
	if err != nil {
		t.Fatal(err)
	}
	size := image.Pt(640, 480)
	d.layout(size)
	if got := d.tree.Allocation(d.root.Handle()); got != (image.Rectangle{Max: size}) {
		t.Errorf("root allocation: got %v", got)
	}
	view := d.tree.Allocation(d.view.Handle())
	for name, g := range d.groups {
		r := d.tree.Allocation(g.Handle())
		if r.Dx() > view.Dx() {
			t.Errorf("group %s wider than the viewport: %v in %v", name, r, view)
		}
	}
	if d.groups["Brushes"].Collapsed() == d.groups["Colors"].Collapsed() {
		t.Error("exclusive groups both expanded or both collapsed")
	}
}

func TestDemoToggle(t *testing.T) {
	cfg := testConfig()
	cfg.animate = true
	d, err := newDemo(cfg)
	if err != nil {
		t.Fatal(err)
	}
	d.layout(image.Pt(400, 300))
	if err := d.toggle([]string{"Brushes"}); err != nil {
		t.Fatal(err)
	}
	if d.groups["Colors"].Collapsed() != true {
		t.Error("expanding Brushes didn't collapse Colors")
	}
	d.tick(0)
	if !d.tick(d.theme.AnimationDuration / 2) {
		t.Error("animation finished early")
	}
	if d.tick(d.theme.AnimationDuration) {
		t.Error("animation still running")
	}
	if err := d.toggle([]string{"Missing"}); err == nil {
		t.Error("toggled a missing group")
	}
}

func TestRunOutput(t *testing.T) {
	var b bytes.Buffer
	if err := run(&b, testConfig(), image.Pt(320, 240), nil); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.HasPrefix(out, "== 320x240 ==\nTable 2x2 (0,0)-(320,240)\n") {
		t.Errorf("unexpected output:\n%s", out)
	}
	for _, name := range []string{"Shapes", "Tools", "Colors", "Brushes"} {
		if !strings.Contains(out, "Group \""+name+"\"") {
			t.Errorf("missing group %s in:\n%s", name, out)
		}
	}
}

func TestDemoRTL(t *testing.T) {
	cfg := testConfig()
	cfg.rtl = true
	d, err := newDemo(cfg)
	if err != nil {
		t.Fatal(err)
	}
	if d.tree.Direction != layout.RTL {
		t.Fatal("tree not right to left")
	}
	d.layout(image.Pt(640, 480))
	// The palette column is the first column, so it ends up on the right.
	view := d.tree.Allocation(d.view.Handle())
	preview := d.tree.Allocation(d.tree.Children(d.root.Handle())[2])
	if view.Min.X < preview.Max.X {
		t.Errorf("viewport %v not right of the preview %v", view, preview)
	}
}
