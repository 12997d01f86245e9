// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"

	"widgetry.org/unit"
)

// Theme holds the style parameters the containers and leaves read
// when they are created. A Theme is constructed explicitly and passed
// to every constructor that needs it; there is no process-wide default.
type Theme struct {
	// BorderWidth is the space containers leave around their children.
	BorderWidth unit.Dp
	// RowSpacing and ColumnSpacing are the initial gaps between table
	// tracks.
	RowSpacing    unit.Dp
	ColumnSpacing unit.Dp
	// ExpanderSize is the size of the expander arrow in group headers.
	ExpanderSize unit.Dp
	// HeaderSpacing is the gap between a group's expander and label.
	HeaderSpacing unit.Dp
	// IndicatorSize is the size of the arrow drawn inside an expander.
	IndicatorSize unit.Dp

	// Animate enables collapse and expand animations.
	Animate bool
	// AnimationDuration is the length of a collapse or expand.
	AnimationDuration time.Duration

	// Face measures label text.
	Face font.Face
}

// NewTheme returns a Theme with the documented defaults.
func NewTheme() *Theme {
	return &Theme{
		ExpanderSize:      16,
		HeaderSpacing:     2,
		IndicatorSize:     12,
		Animate:           true,
		AnimationDuration: 200 * time.Millisecond,
		Face:              basicfont.Face7x13,
	}
}
