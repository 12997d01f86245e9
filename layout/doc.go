// SPDX-License-Identifier: Unlicense OR MIT

/*
Package layout implements the widget tree and the two phase layout
protocol shared by all widgets.

A Tree owns its widgets and refers to them with generational Handles.
Layout runs in two passes: Measure asks every widget for its minimum
size, bottom up, and caches the result; Allocate hands every widget its
final rectangle, top down. A parent decides where its children go; a
widget never positions itself.

Invalidation

A widget whose content changes calls Tree.QueueResize. The cached
requisitions of the widget and its ancestors are dropped and the
outermost ancestor is queued. Tree.Flush re-measures and re-allocates
the queued widgets within their previous allocation.

Directions

Widgets inherit their reading direction from the nearest ancestor that
sets one, or from Tree.Direction. Containers mirror the horizontal
positions of their children when the direction is RTL.
*/
package layout
