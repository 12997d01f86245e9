// SPDX-License-Identifier: Unlicense OR MIT

// Command layoutdump lays out a demo widget tree at one or more window
// sizes and prints the resulting allocations. It optionally writes a
// PNG outline of every layout.
package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"widgetry.org/internal/outline"
	"widgetry.org/unit"
)

var (
	sizes      = flag.String("size", "", "comma separated window sizes, such as 320x240,640x480. Defaults to the terminal size.")
	destDir    = flag.String("o", "", "write a PNG outline of every layout to this directory.")
	scale      = flag.Float64("scale", 1, "scale factor of the PNG outlines.")
	pxPerDp    = flag.Float64("dp", 1, "pixels per dp.")
	rtl        = flag.Bool("rtl", false, "lay out right to left.")
	horizontal = flag.Bool("horizontal", false, "stack the palette groups horizontally.")
	toggle     = flag.String("toggle", "", "comma separated palette groups to collapse or expand after the first layout.")
	frames     = flag.Int("frames", 0, "print this many animation frames of the toggled groups.")
	verbose    = flag.Bool("v", false, "log over-constrained layouts.")
)

const defaultSize = "640x480"

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, mainUsage)
		flag.PrintDefaults()
	}
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("layoutdump: ")
	if err := mainErr(); err != nil {
		fmt.Fprintf(os.Stderr, "layoutdump: %v\n", err)
		os.Exit(1)
	}
}

const mainUsage = `The layoutdump command prints the layout of a demo widget tree.

Usage:

	layoutdump [flags]

`

func mainErr() error {
	list := *sizes
	if list == "" {
		list = defaultSize
		if sz, ok := terminalSize(); ok {
			list = fmt.Sprintf("%dx%d", sz.X, sz.Y)
		}
	}
	szs, err := parseSizes(list)
	if err != nil {
		return err
	}
	if *scale <= 0 {
		return fmt.Errorf("invalid -scale %g", *scale)
	}
	if *frames < 0 {
		return fmt.Errorf("invalid -frames %d", *frames)
	}
	if *destDir != "" {
		if err := os.MkdirAll(*destDir, 0755); err != nil {
			return err
		}
	}
	cfg := config{
		metric:     unit.Metric{PxPerDp: float32(*pxPerDp)},
		rtl:        *rtl,
		horizontal: *horizontal,
		animate:    *frames > 0,
	}
	if *verbose {
		cfg.logger = log.Default()
	}
	var names []string
	if *toggle != "" {
		names = strings.Split(*toggle, ",")
	}

	// Every size gets its own tree, so the layouts can run
	// concurrently.
	outputs := make([]bytes.Buffer, len(szs))
	var layouts errgroup.Group
	for i, sz := range szs {
		i, sz := i, sz
		layouts.Go(func() error {
			return run(&outputs[i], cfg, sz, names)
		})
	}
	err = layouts.Wait()
	for i := range outputs {
		if _, werr := io.Copy(os.Stdout, &outputs[i]); werr != nil && err == nil {
			err = werr
		}
	}
	return err
}

func run(w io.Writer, cfg config, size image.Point, toggled []string) error {
	d, err := newDemo(cfg)
	if err != nil {
		return err
	}
	d.layout(size)
	fmt.Fprintf(w, "== %dx%d ==\n", size.X, size.Y)
	if err := outline.Dump(w, d.tree, d.root.Handle()); err != nil {
		return err
	}
	if len(toggled) > 0 {
		if err := d.toggle(toggled); err != nil {
			return err
		}
		d.tick(0)
		dur := d.theme.AnimationDuration
		for f := 1; f <= *frames; f++ {
			elapsed := dur * time.Duration(f) / time.Duration(*frames)
			d.tick(elapsed)
			fmt.Fprintf(w, "-- frame %d/%d (%v) --\n", f, *frames, elapsed)
			if err := outline.Dump(w, d.tree, d.root.Handle()); err != nil {
				return err
			}
		}
		d.settle()
		if *frames == 0 {
			fmt.Fprintf(w, "-- toggled %s --\n", strings.Join(toggled, ","))
			if err := outline.Dump(w, d.tree, d.root.Handle()); err != nil {
				return err
			}
		}
	}
	if *destDir == "" {
		return nil
	}
	return writePNG(d, size)
}

func writePNG(d *demo, size image.Point) (err error) {
	img := image.NewRGBA(image.Rectangle{Max: size})
	outline.Paint(img, d.tree, d.root.Handle(), outline.Options{
		IndicatorSize: d.tree.Dp(d.theme.IndicatorSize),
	})
	var out image.Image = img
	if *scale != 1 {
		sz := image.Pt(int(float64(size.X)**scale+.5), int(float64(size.Y)**scale+.5))
		scaled := image.NewNRGBA(image.Rectangle{Max: sz})
		draw.CatmullRom.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		out = scaled
	}
	path := filepath.Join(*destDir, fmt.Sprintf("layout-%dx%d.png", size.X, size.Y))
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return png.Encode(f, out)
}

// parseSizes parses a comma separated list of WxH sizes.
func parseSizes(list string) ([]image.Point, error) {
	var szs []image.Point
	for _, s := range strings.Split(list, ",") {
		w, h, ok := strings.Cut(strings.TrimSpace(s), "x")
		if !ok {
			return nil, fmt.Errorf("invalid size %q", s)
		}
		x, err := strconv.Atoi(w)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", s, err)
		}
		y, err := strconv.Atoi(h)
		if err != nil {
			return nil, fmt.Errorf("invalid size %q: %w", s, err)
		}
		if x < 1 || y < 1 {
			return nil, fmt.Errorf("invalid size %q: %w", s, errEmptySize)
		}
		szs = append(szs, image.Pt(x, y))
	}
	return szs, nil
}

var errEmptySize = errors.New("width and height must be positive")
