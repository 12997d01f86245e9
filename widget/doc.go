// SPDX-License-Identifier: Unlicense OR MIT

// Package widget implements the containers and leaf widgets of a
// layout.Tree: tables, alignments, aspect frames, viewports, labels and
// fixed size spaces. Widgets read their style parameters from a Theme
// when they are created.
package widget
