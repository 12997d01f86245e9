// SPDX-License-Identifier: Unlicense OR MIT

package palette

import "time"

// ExpanderState is the look of a group's expander arrow.
type ExpanderState uint8

const (
	Expanded ExpanderState = iota
	SemiExpanded
	SemiCollapsed
	Collapsed
)

// Animation is an expand or collapse of a group. It holds no clock:
// callers pass the time elapsed since the animation started.
type Animation struct {
	// Collapse is set for animations toward the collapsed state.
	Collapse bool
	Duration time.Duration
}

// At returns the fraction of the items shown at elapsed, the expander
// state and whether the animation has finished. The expander turns
// through its semi state during the first half of the animation.
func (a Animation) At(elapsed time.Duration) (expansion float32, state ExpanderState, done bool) {
	if a.Duration <= 0 || elapsed >= a.Duration {
		if a.Collapse {
			return 0, Collapsed, true
		}
		return 1, Expanded, true
	}
	if elapsed < 0 {
		elapsed = 0
	}
	f := float32(elapsed) / float32(a.Duration)
	early := 2*elapsed < a.Duration
	if a.Collapse {
		switch {
		case elapsed == 0:
			state = Expanded
		case early:
			state = SemiCollapsed
		default:
			state = Collapsed
		}
		return 1 - f, state, false
	}
	switch {
	case elapsed == 0:
		state = Collapsed
	case early:
		state = SemiExpanded
	default:
		state = Expanded
	}
	return f, state, false
}

// Interpolate returns the extent at elapsed, between the collapsed and
// the expanded extent. Both ends are exact.
func (a Animation) Interpolate(elapsed time.Duration, collapsed, expanded int) int {
	if a.Duration <= 0 || elapsed >= a.Duration {
		if a.Collapse {
			return collapsed
		}
		return expanded
	}
	if elapsed < 0 {
		elapsed = 0
	}
	shown := elapsed
	if a.Collapse {
		shown = a.Duration - elapsed
	}
	return collapsed + int(int64(expanded-collapsed)*int64(shown)/int64(a.Duration))
}

func (s ExpanderState) String() string {
	switch s {
	case Expanded:
		return "Expanded"
	case SemiExpanded:
		return "SemiExpanded"
	case SemiCollapsed:
		return "SemiCollapsed"
	case Collapsed:
		return "Collapsed"
	default:
		panic("unreachable")
	}
}
