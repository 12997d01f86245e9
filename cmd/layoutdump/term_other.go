// SPDX-License-Identifier: Unlicense OR MIT

//go:build !darwin && !dragonfly && !freebsd && !linux && !netbsd && !openbsd
// +build !darwin,!dragonfly,!freebsd,!linux,!netbsd,!openbsd

package main

import "image"

func terminalSize() (image.Point, bool) {
	return image.Point{}, false
}
