// SPDX-License-Identifier: Unlicense OR MIT

//go:build darwin || dragonfly || freebsd || linux || netbsd || openbsd
// +build darwin dragonfly freebsd linux netbsd openbsd

package main

import (
	"image"
	"os"

	"golang.org/x/sys/unix"
)

// Character cell size of the basic font, used when the terminal doesn't
// report its size in pixels.
const cellWidth, cellHeight = 7, 13

// terminalSize returns the size of the terminal on standard output.
func terminalSize() (image.Point, bool) {
	ws, err := unix.IoctlGetWinsize(int(os.Stdout.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return image.Point{}, false
	}
	if ws.Xpixel > 0 && ws.Ypixel > 0 {
		return image.Pt(int(ws.Xpixel), int(ws.Ypixel)), true
	}
	if ws.Col == 0 || ws.Row == 0 {
		return image.Point{}, false
	}
	return image.Pt(int(ws.Col)*cellWidth, int(ws.Row)*cellHeight), true
}
