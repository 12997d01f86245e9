// SPDX-License-Identifier: Unlicense OR MIT

package widget

// Track is the layout state of a single table row or column.
type Track struct {
	// Requisition is the minimum extent resolved by the measure pass.
	Requisition int
	// Allocation is the extent resolved by the allocate pass.
	Allocation int
	// Spacing is the gap after the track, before the next one.
	Spacing int
	// Expand and Shrink report whether the track may grow beyond or
	// shrink below its requisition.
	Expand bool
	Shrink bool
	// Empty is set when no visible child occupies the track.
	Empty bool

	needExpand bool
	needShrink bool
}

// span is the footprint of a visible child along one axis.
type span struct {
	start, end int
	// size is the child's requisition plus twice its padding.
	size int
	opts AttachOptions
}

func (s span) single() bool {
	return s.end-s.start == 1
}

// spanSize returns the extent of tracks [start; end) including the
// spacing between them.
func spanSize(tracks []Track, start, end int, alloc bool) int {
	size := 0
	for i := start; i < end; i++ {
		if alloc {
			size += tracks[i].Allocation
		} else {
			size += tracks[i].Requisition
		}
		if i+1 < end {
			size += tracks[i].Spacing
		}
	}
	return size
}

// totalSpacing returns the spacing between tracks, excluding the
// spacing after the last.
func totalSpacing(tracks []Track) int {
	total := 0
	for i := 0; i+1 < len(tracks); i++ {
		total += tracks[i].Spacing
	}
	return total
}

// requestTracks resolves the requisition of every track and returns
// the sum of requisitions and spacings.
func requestTracks(tracks []Track, spans []span, homogeneous bool) int {
	for i := range tracks {
		tracks[i].Requisition = 0
		tracks[i].Expand = false
	}
	for _, s := range spans {
		if s.single() && s.opts&Expand != 0 {
			tracks[s.start].Expand = true
		}
	}
	for _, s := range spans {
		if s.single() && s.size > tracks[s.start].Requisition {
			tracks[s.start].Requisition = s.size
		}
	}
	homogenize(tracks, homogeneous)
	distributeSpans(tracks, spans)
	// Spanning children may have grown tracks unevenly.
	homogenize(tracks, homogeneous)
	return spanSize(tracks, 0, len(tracks), false)
}

func homogenize(tracks []Track, homogeneous bool) {
	if !homogeneous {
		return
	}
	max := 0
	for _, t := range tracks {
		if t.Requisition > max {
			max = t.Requisition
		}
	}
	for i := range tracks {
		tracks[i].Requisition = max
	}
}

// distributeSpans grows the tracks covered by multi-track spans until
// every span fits its child. The shortfall goes to expanding tracks if
// the span covers any, and to all covered tracks otherwise. Integer
// remainders carry over to the following tracks.
func distributeSpans(tracks []Track, spans []span) {
	for _, s := range spans {
		if s.single() {
			continue
		}
		short := s.size - spanSize(tracks, s.start, s.end, false)
		if short <= 0 {
			continue
		}
		nexpand := 0
		for i := s.start; i < s.end; i++ {
			if tracks[i].Expand {
				nexpand++
			}
		}
		for i := s.start; i < s.end; i++ {
			switch {
			case nexpand == 0:
				extra := short / (s.end - i)
				tracks[i].Requisition += extra
				short -= extra
			case tracks[i].Expand:
				extra := short / nexpand
				tracks[i].Requisition += extra
				short -= extra
				nexpand--
			}
		}
	}
}

// classifyTracks resets allocations to requisitions and derives the
// expand, shrink and empty flags from the children.
func classifyTracks(tracks []Track, spans []span) {
	for i := range tracks {
		t := &tracks[i]
		t.Allocation = t.Requisition
		t.needExpand = false
		t.needShrink = true
		t.Expand = false
		t.Shrink = true
		t.Empty = true
	}
	for _, s := range spans {
		if !s.single() {
			continue
		}
		t := &tracks[s.start]
		if s.opts&Expand != 0 {
			t.Expand = true
		}
		if s.opts&Shrink == 0 {
			t.Shrink = false
		}
		t.Empty = false
	}
	for _, s := range spans {
		if s.single() {
			continue
		}
		for i := s.start; i < s.end; i++ {
			tracks[i].Empty = false
		}
		if s.opts&Expand != 0 {
			hasExpand := false
			for i := s.start; i < s.end; i++ {
				if tracks[i].Expand {
					hasExpand = true
					break
				}
			}
			if !hasExpand {
				for i := s.start; i < s.end; i++ {
					tracks[i].needExpand = true
				}
			}
		}
		if s.opts&Shrink == 0 {
			hasShrink := true
			for i := s.start; i < s.end; i++ {
				if !tracks[i].Shrink {
					hasShrink = false
					break
				}
			}
			if hasShrink {
				for i := s.start; i < s.end; i++ {
					tracks[i].needShrink = false
				}
			}
		}
	}
	for i := range tracks {
		t := &tracks[i]
		if t.Empty {
			t.Expand = false
			t.Shrink = false
			continue
		}
		if t.needExpand {
			t.Expand = true
		}
		if !t.needShrink {
			t.Shrink = false
		}
	}
}

// allocateTracks distributes size among the tracks. It reports the
// amount by which the tracks still exceed size when every shrinkable
// track reached the 1 pixel floor.
func allocateTracks(tracks []Track, size int, homogeneous, hasChildren bool) (overflow int) {
	n := len(tracks)
	if n == 0 {
		return 0
	}
	if homogeneous {
		nexpand := 0
		if !hasChildren {
			nexpand = 1
		} else {
			for _, t := range tracks {
				if t.Expand {
					nexpand++
					break
				}
			}
		}
		if nexpand > 0 {
			avail := size - totalSpacing(tracks)
			for i := range tracks {
				extra := avail / (n - i)
				tracks[i].Allocation = extra
				if extra < 1 {
					tracks[i].Allocation = 1
				}
				avail -= extra
			}
		}
		return overflowOf(tracks, size)
	}

	total, nexpand, nshrink := totalSpacing(tracks), 0, 0
	for _, t := range tracks {
		total += t.Requisition
		if t.Expand {
			nexpand++
		}
		if t.Shrink {
			nshrink++
		}
	}
	if total < size && nexpand > 0 {
		surplus := size - total
		for i := range tracks {
			if !tracks[i].Expand {
				continue
			}
			extra := surplus / nexpand
			tracks[i].Allocation += extra
			surplus -= extra
			nexpand--
		}
	}
	if total > size {
		deficit := total - size
		for nshrink > 0 && deficit > 0 {
			remaining := nshrink
			for i := range tracks {
				t := &tracks[i]
				if !t.Shrink {
					continue
				}
				before := t.Allocation
				t.Allocation -= deficit / remaining
				if t.Allocation < 1 {
					t.Allocation = 1
				}
				deficit -= before - t.Allocation
				remaining--
				if t.Allocation < 2 {
					nshrink--
					t.Shrink = false
				}
			}
		}
	}
	return overflowOf(tracks, size)
}

func overflowOf(tracks []Track, size int) int {
	if over := spanSize(tracks, 0, len(tracks), true) - size; over > 0 {
		return over
	}
	return 0
}
