// SPDX-License-Identifier: Unlicense OR MIT

package widget

import (
	"bytes"
	"errors"
	"image"
	"log"
	"math/rand"
	"strings"
	"testing"

	"widgetry.org/layout"
)

func newTable(rows, cols int) (*layout.Tree, *Table) {
	tree := new(layout.Tree)
	return tree, NewTable(tree, NewTheme(), rows, cols)
}

func requisitions(tracks []Track) []int {
	var reqs []int
	for _, t := range tracks {
		reqs = append(reqs, t.Requisition)
	}
	return reqs
}

func allocations(tracks []Track) []int {
	var allocs []int
	for _, t := range tracks {
		allocs = append(allocs, t.Allocation)
	}
	return allocs
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestTableHomogeneous2x2(t *testing.T) {
	tree, tbl := newTable(2, 2)
	tbl.SetHomogeneous(true)
	var spaces []*Space
	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			s := NewSpace(tree, 10, 10)
			if err := tbl.AttachDefaults(s.Handle(), col, col+1, row, row+1); err != nil {
				t.Fatal(err)
			}
			spaces = append(spaces, s)
		}
	}
	tree.Layout(tbl.Handle(), image.Rect(0, 0, 100, 100))
	want := []image.Rectangle{
		image.Rect(0, 0, 50, 50),
		image.Rect(50, 0, 100, 50),
		image.Rect(0, 50, 50, 100),
		image.Rect(50, 50, 100, 100),
	}
	for i, s := range spaces {
		if got := tree.Allocation(s.Handle()); got != want[i] {
			t.Errorf("child %d: got %v, want %v", i, got, want[i])
		}
	}
}

func TestTableSpanningChild(t *testing.T) {
	tree, tbl := newTable(1, 3)
	s := NewSpace(tree, 90, 10)
	if err := tbl.AttachDefaults(s.Handle(), 0, 3, 0, 1); err != nil {
		t.Fatal(err)
	}
	req := tree.Measure(tbl.Handle())
	if got, want := requisitions(tbl.Cols()), []int{30, 30, 30}; !equalInts(got, want) {
		t.Errorf("column requisitions %v, want %v", got, want)
	}
	if got, want := req, image.Pt(90, 10); got != want {
		t.Errorf("table requisition %v, want %v", got, want)
	}
}

func TestTableSpanRemainder(t *testing.T) {
	tree, tbl := newTable(1, 3)
	s := NewSpace(tree, 100, 10)
	tbl.AttachDefaults(s.Handle(), 0, 3, 0, 1)
	tree.Measure(tbl.Handle())
	if got, want := requisitions(tbl.Cols()), []int{33, 33, 34}; !equalInts(got, want) {
		t.Errorf("column requisitions %v, want %v", got, want)
	}
}

func TestTableSpanPrefersExpandingTracks(t *testing.T) {
	tree, tbl := newTable(1, 3)
	a := NewSpace(tree, 10, 10)
	b := NewSpace(tree, 10, 10)
	wide := NewSpace(tree, 80, 10)
	// Column 0 expands, column 1 doesn't.
	tbl.Attach(a.Handle(), 0, 1, 0, 1, Expand|Fill, Fill, 0, 0)
	tbl.Attach(b.Handle(), 1, 2, 0, 1, Fill, Fill, 0, 0)
	tbl.Attach(wide.Handle(), 0, 2, 0, 1, Fill, Fill, 0, 0)
	tree.Measure(tbl.Handle())
	if got, want := requisitions(tbl.Cols()), []int{70, 10, 0}; !equalInts(got, want) {
		t.Errorf("column requisitions %v, want %v", got, want)
	}
}

func TestTableHomogeneousAfterSpan(t *testing.T) {
	tree, tbl := newTable(1, 2)
	tbl.SetHomogeneous(true)
	a := NewSpace(tree, 10, 10)
	wide := NewSpace(tree, 50, 10)
	tbl.AttachDefaults(a.Handle(), 0, 1, 0, 1)
	tbl.AttachDefaults(wide.Handle(), 0, 2, 0, 1)
	tree.Measure(tbl.Handle())
	cols := requisitions(tbl.Cols())
	if cols[0] != cols[1] {
		t.Errorf("homogeneous columns differ: %v", cols)
	}
	if got := cols[0] + cols[1]; got < 50 {
		t.Errorf("columns %v do not fit spanning child", cols)
	}
}

func TestTableExpandConservation(t *testing.T) {
	tree, tbl := newTable(1, 3)
	if err := tbl.SetColSpacings(5); err != nil {
		t.Fatal(err)
	}
	for i, w := range []int{10, 20, 30} {
		s := NewSpace(tree, w, 10)
		tbl.AttachDefaults(s.Handle(), i, i+1, 0, 1)
	}
	tree.Layout(tbl.Handle(), image.Rect(0, 0, 101, 10))
	got := allocations(tbl.Cols())
	if want := []int{20, 30, 41}; !equalInts(got, want) {
		t.Errorf("column allocations %v, want %v", got, want)
	}
}

func TestTableShrink(t *testing.T) {
	tree, tbl := newTable(1, 3)
	var hs []layout.Handle
	for i := 0; i < 3; i++ {
		s := NewSpace(tree, 10, 10)
		tbl.Attach(s.Handle(), i, i+1, 0, 1, Shrink|Fill, Fill, 0, 0)
		hs = append(hs, s.Handle())
	}
	tree.Layout(tbl.Handle(), image.Rect(0, 0, 5, 10))
	got := allocations(tbl.Cols())
	if want := []int{2, 2, 1}; !equalInts(got, want) {
		t.Errorf("column allocations %v, want %v", got, want)
	}
	for i := 0; i < 50; i++ {
		tree.Layout(tbl.Handle(), image.Rect(0, 0, i, i))
		for _, tr := range tbl.Cols() {
			if tr.Allocation < 1 {
				t.Fatalf("width %d: column allocation %d < 1", i, tr.Allocation)
			}
		}
		for _, h := range hs {
			if r := tree.Allocation(h); r.Dx() < 1 || r.Dy() < 1 {
				t.Fatalf("width %d: child allocation %v", i, r)
			}
		}
	}
}

func TestTableShrinkOverflowLogged(t *testing.T) {
	tree, tbl := newTable(1, 2)
	var buf bytes.Buffer
	tree.Logger = log.New(&buf, "", 0)
	for i := 0; i < 2; i++ {
		s := NewSpace(tree, 20, 10)
		tbl.Attach(s.Handle(), i, i+1, 0, 1, Fill, Fill, 0, 0)
	}
	tree.Layout(tbl.Handle(), image.Rect(0, 0, 30, 10))
	if got, want := allocations(tbl.Cols()), []int{20, 20}; !equalInts(got, want) {
		t.Errorf("non-shrinkable columns %v, want %v", got, want)
	}
	if !strings.Contains(buf.String(), "overflow allocation by 10 px") {
		t.Errorf("missing overflow report, log: %q", buf.String())
	}
}

func TestTableEmptyTracksDontExpand(t *testing.T) {
	tree, tbl := newTable(1, 3)
	s := NewSpace(tree, 10, 10)
	tbl.AttachDefaults(s.Handle(), 1, 2, 0, 1)
	tree.Layout(tbl.Handle(), image.Rect(0, 0, 100, 10))
	if got, want := allocations(tbl.Cols()), []int{0, 100, 0}; !equalInts(got, want) {
		t.Errorf("column allocations %v, want %v", got, want)
	}
	cols := tbl.Cols()
	if !cols[0].Empty || cols[1].Empty || !cols[2].Empty {
		t.Errorf("empty flags: %v %v %v", cols[0].Empty, cols[1].Empty, cols[2].Empty)
	}
}

func TestTableMultiSpanForcesExpand(t *testing.T) {
	tree, tbl := newTable(1, 2)
	a := NewSpace(tree, 10, 10)
	b := NewSpace(tree, 10, 10)
	wide := NewSpace(tree, 20, 10)
	tbl.Attach(a.Handle(), 0, 1, 0, 1, Fill, Fill, 0, 0)
	tbl.Attach(b.Handle(), 1, 2, 0, 1, Fill, Fill, 0, 0)
	tbl.Attach(wide.Handle(), 0, 2, 1, 2, Expand|Fill, Fill, 0, 0)
	tree.Layout(tbl.Handle(), image.Rect(0, 0, 60, 20))
	cols := tbl.Cols()
	if !cols[0].Expand || !cols[1].Expand {
		t.Errorf("spanning expand child did not mark its columns expandable")
	}
	if got, want := allocations(cols), []int{30, 30}; !equalInts(got, want) {
		t.Errorf("column allocations %v, want %v", got, want)
	}
}

func TestTablePaddingAndFill(t *testing.T) {
	tree, tbl := newTable(1, 2)
	padded := NewSpace(tree, 10, 10)
	centered := NewSpace(tree, 10, 10)
	tbl.Attach(padded.Handle(), 0, 1, 0, 1, Expand|Fill, Fill, 5, 0)
	tbl.Attach(centered.Handle(), 1, 2, 0, 1, Expand, Fill, 0, 0)
	req := tree.Layout(tbl.Handle(), image.Rect(0, 0, 100, 10))
	if got, want := req.X, 30; got != want {
		t.Errorf("requisition width %d, want %d", got, want)
	}
	// Columns get 20+35 and 10+35.
	if got, want := tree.Allocation(padded.Handle()), image.Rect(5, 0, 50, 10); got != want {
		t.Errorf("padded child %v, want %v", got, want)
	}
	if got, want := tree.Allocation(centered.Handle()), image.Rect(72, 0, 82, 10); got != want {
		t.Errorf("centered child %v, want %v", got, want)
	}
}

func TestTableRTL(t *testing.T) {
	tree, tbl := newTable(1, 2)
	a := NewSpace(tree, 30, 10)
	b := NewSpace(tree, 70, 10)
	tbl.Attach(a.Handle(), 0, 1, 0, 1, Fill, Fill, 0, 0)
	tbl.Attach(b.Handle(), 1, 2, 0, 1, Fill, Fill, 0, 0)
	tree.SetDirection(tbl.Handle(), layout.RTL)
	tree.Layout(tbl.Handle(), image.Rect(10, 0, 110, 10))
	if got, want := tree.Allocation(a.Handle()), image.Rect(80, 0, 110, 10); got != want {
		t.Errorf("first column child %v, want %v", got, want)
	}
	if got, want := tree.Allocation(b.Handle()), image.Rect(10, 0, 80, 10); got != want {
		t.Errorf("second column child %v, want %v", got, want)
	}
}

func TestTableBorder(t *testing.T) {
	tree, tbl := newTable(1, 1)
	s := NewSpace(tree, 10, 10)
	tbl.AttachDefaults(s.Handle(), 0, 1, 0, 1)
	if err := tbl.SetBorderWidth(4); err != nil {
		t.Fatal(err)
	}
	req := tree.Layout(tbl.Handle(), image.Rect(0, 0, 50, 50))
	if got, want := req, image.Pt(18, 18); got != want {
		t.Errorf("requisition %v, want %v", got, want)
	}
	if got, want := tree.Allocation(s.Handle()), image.Rect(4, 4, 46, 46); got != want {
		t.Errorf("child %v, want %v", got, want)
	}
}

func TestTableAttachErrors(t *testing.T) {
	tree, tbl := newTable(2, 2)
	s := NewSpace(tree, 10, 10)
	for _, p := range []Placement{
		{Left: 1, Right: 1, Top: 0, Bottom: 1},
		{Left: 2, Right: 1, Top: 0, Bottom: 1},
		{Left: 0, Right: 1, Top: 1, Bottom: 0},
		{Left: -1, Right: 1, Top: 0, Bottom: 1},
	} {
		err := tbl.Attach(s.Handle(), p.Left, p.Right, p.Top, p.Bottom, Fill, Fill, 0, 0)
		if !errors.Is(err, ErrBadAttach) {
			t.Errorf("attach %+v: got %v, want ErrBadAttach", p, err)
		}
	}
	if err := tbl.Attach(s.Handle(), 0, 1, 0, 1, Fill, Fill, -1, 0); !errors.Is(err, ErrBadAttach) {
		t.Errorf("negative padding: got %v, want ErrBadAttach", err)
	}
	if rows, cols := tbl.Size(); rows != 2 || cols != 2 {
		t.Errorf("rejected attach resized table to %dx%d", rows, cols)
	}
	if len(tbl.Children()) != 0 || tree.Parent(s.Handle()).Valid() {
		t.Errorf("rejected attach modified state")
	}
	if err := tbl.AttachDefaults(layout.Handle{}, 0, 1, 0, 1); !errors.Is(err, layout.ErrInvalidHandle) {
		t.Errorf("zero handle: got %v, want ErrInvalidHandle", err)
	}
	if err := tbl.AttachDefaults(s.Handle(), 0, 1, 0, 1); err != nil {
		t.Fatal(err)
	}
	other := NewTable(tree, NewTheme(), 1, 1)
	if err := other.AttachDefaults(s.Handle(), 0, 1, 0, 1); !errors.Is(err, layout.ErrParented) {
		t.Errorf("attach to second table: got %v, want ErrParented", err)
	}
	if err := other.Remove(s.Handle()); !errors.Is(err, layout.ErrNotChild) {
		t.Errorf("remove foreign child: got %v, want ErrNotChild", err)
	}
}

func TestTableGrowAndResize(t *testing.T) {
	tree, tbl := newTable(1, 1)
	s := NewSpace(tree, 10, 10)
	if err := tbl.AttachDefaults(s.Handle(), 2, 4, 0, 3); err != nil {
		t.Fatal(err)
	}
	if rows, cols := tbl.Size(); rows != 3 || cols != 4 {
		t.Errorf("size after attach %dx%d, want 3x4", rows, cols)
	}
	if err := tbl.Resize(1, 1); err != nil {
		t.Fatal(err)
	}
	if rows, cols := tbl.Size(); rows != 3 || cols != 4 {
		t.Errorf("resize shrank below attachments: %dx%d", rows, cols)
	}
	if err := tbl.Resize(5, 6); err != nil {
		t.Fatal(err)
	}
	if rows, cols := tbl.Size(); rows != 5 || cols != 6 {
		t.Errorf("size after resize %dx%d, want 5x6", rows, cols)
	}
	if err := tbl.Resize(0, 2); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("resize to 0 rows: got %v, want ErrOutOfRange", err)
	}
	tbl.Remove(s.Handle())
	tbl.Resize(1, 1)
	if rows, cols := tbl.Size(); rows != 1 || cols != 1 {
		t.Errorf("size after remove and resize %dx%d, want 1x1", rows, cols)
	}
}

func TestTableAttachDetachRoundTrip(t *testing.T) {
	tree, tbl := newTable(2, 2)
	a := NewSpace(tree, 10, 15)
	tbl.AttachDefaults(a.Handle(), 0, 1, 0, 1)
	tree.Measure(tbl.Handle())
	rows, cols := requisitions(tbl.Rows()), requisitions(tbl.Cols())

	b := NewSpace(tree, 40, 40)
	tbl.AttachDefaults(b.Handle(), 0, 2, 0, 2)
	tree.Measure(tbl.Handle())
	if equalInts(cols, requisitions(tbl.Cols())) {
		t.Fatalf("attaching a wide child left columns unchanged")
	}
	if err := tbl.Remove(b.Handle()); err != nil {
		t.Fatal(err)
	}
	tree.Measure(tbl.Handle())
	if got := requisitions(tbl.Rows()); !equalInts(got, rows) {
		t.Errorf("rows after detach %v, want %v", got, rows)
	}
	if got := requisitions(tbl.Cols()); !equalInts(got, cols) {
		t.Errorf("columns after detach %v, want %v", got, cols)
	}
}

func TestTableHiddenChild(t *testing.T) {
	tree, tbl := newTable(1, 2)
	a := NewSpace(tree, 10, 10)
	b := NewSpace(tree, 25, 10)
	tbl.AttachDefaults(a.Handle(), 0, 1, 0, 1)
	tbl.AttachDefaults(b.Handle(), 1, 2, 0, 1)
	tree.SetVisible(b.Handle(), false)
	if got, want := tree.Measure(tbl.Handle()), image.Pt(10, 10); got != want {
		t.Errorf("requisition %v, want %v", got, want)
	}
}

func TestTableMeasureIdempotent(t *testing.T) {
	tree, tbl := newTable(2, 3)
	for i := 0; i < 3; i++ {
		s := NewSpace(tree, 7*i+3, 11)
		tbl.AttachDefaults(s.Handle(), i, 3, i%2, 2)
	}
	first := tree.Measure(tbl.Handle())
	cols := requisitions(tbl.Cols())
	tree.QueueResize(tbl.Handle())
	if second := tree.Measure(tbl.Handle()); first != second {
		t.Errorf("measure not idempotent: %v != %v", first, second)
	}
	if got := requisitions(tbl.Cols()); !equalInts(got, cols) {
		t.Errorf("tracks differ after second measure: %v != %v", got, cols)
	}
}

func TestTableEdit(t *testing.T) {
	tree, tbl := newTable(2, 2)
	tree.Layout(tbl.Handle(), image.Rect(0, 0, 10, 10))
	err := tbl.Edit().RowSpacings(3).ColSpacing(5, 1).Commit()
	if !errors.Is(err, ErrOutOfRange) {
		t.Errorf("got %v, want ErrOutOfRange", err)
	}
	if got := tbl.RowSpacing(0); got != 0 {
		t.Errorf("rejected edit applied row spacing %d", got)
	}
	if n := len(tree.Pending()); n != 0 {
		t.Errorf("rejected edit queued %d resizes", n)
	}
	err = tbl.Edit().
		Homogeneous(layout.Horizontal, true).
		RowSpacings(3).
		ColSpacing(0, 7).
		Commit()
	if err != nil {
		t.Fatal(err)
	}
	if got := tree.Pending(); len(got) != 1 || got[0] != tbl.Handle() {
		t.Errorf("pending %v, want [%v]", got, tbl.Handle())
	}
	if !tbl.Homogeneous(layout.Horizontal) || tbl.Homogeneous(layout.Vertical) {
		t.Errorf("homogeneous flags not applied per axis")
	}
	if got := tbl.RowSpacing(1); got != 3 {
		t.Errorf("row spacing %d, want 3", got)
	}
	if got := tbl.ColSpacing(0); got != 7 {
		t.Errorf("column spacing %d, want 7", got)
	}
	if err := tbl.SetRowSpacing(2, 1); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("out of range row: got %v", err)
	}
}

func TestTableProperties(t *testing.T) {
	rnd := rand.New(rand.NewSource(7))
	opts := []AttachOptions{Fill, Expand | Fill, Shrink | Fill, Expand | Shrink | Fill, Expand, 0}
	for iter := 0; iter < 200; iter++ {
		tree, tbl := newTable(1, 1)
		tbl.SetHomogeneous(rnd.Intn(3) == 0)
		tbl.SetColSpacings(rnd.Intn(3))
		tbl.SetRowSpacings(rnd.Intn(3))
		n := 1 + rnd.Intn(6)
		var children []*Space
		for i := 0; i < n; i++ {
			s := NewSpace(tree, 1+rnd.Intn(40), 1+rnd.Intn(40))
			l, tp := rnd.Intn(4), rnd.Intn(4)
			r, b := l+1+rnd.Intn(3), tp+1+rnd.Intn(3)
			if err := tbl.Attach(s.Handle(), l, r, tp, b, opts[rnd.Intn(len(opts))], opts[rnd.Intn(len(opts))], rnd.Intn(3), rnd.Intn(3)); err != nil {
				t.Fatal(err)
			}
			children = append(children, s)
		}
		req := tree.Measure(tbl.Handle())
		size := req.Add(image.Pt(rnd.Intn(50), rnd.Intn(50)))
		tree.Layout(tbl.Handle(), image.Rectangle{Max: size})

		cols, rows := tbl.Cols(), tbl.Rows()
		for _, s := range children {
			p, _ := tbl.Placement(s.Handle())
			r := tree.Allocation(s.Handle())
			if r.Dx() < 1 || r.Dy() < 1 {
				t.Fatalf("iteration %d: child allocation %v", iter, r)
			}
			need := s.size.Add(image.Pt(2*p.XPadding, 2*p.YPadding))
			if got := spanSize(cols, p.Left, p.Right, true); got < need.X {
				t.Fatalf("iteration %d: columns [%d;%d) allocated %d < %d", iter, p.Left, p.Right, got, need.X)
			}
			if got := spanSize(rows, p.Top, p.Bottom, true); got < need.Y {
				t.Fatalf("iteration %d: rows [%d;%d) allocated %d < %d", iter, p.Top, p.Bottom, got, need.Y)
			}
		}
		if tbl.Homogeneous(layout.Horizontal) {
			for _, c := range requisitions(cols) {
				if c != cols[0].Requisition {
					t.Fatalf("iteration %d: homogeneous columns %v", iter, requisitions(cols))
				}
			}
		}
		expands := false
		for _, c := range cols {
			expands = expands || c.Expand
		}
		if expands && size.X > req.X {
			if got := spanSize(cols, 0, len(cols), true); got != size.X {
				t.Fatalf("iteration %d: columns sum to %d, want %d", iter, got, size.X)
			}
		}
	}
}

func BenchmarkTableLayout(b *testing.B) {
	tree, tbl := newTable(8, 8)
	for i := 0; i < 64; i++ {
		s := NewSpace(tree, 10+i%7, 10+i%5)
		tbl.AttachDefaults(s.Handle(), i%8, i%8+1+i%2, i/8, i/8+1)
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		tree.QueueResize(tbl.Handle())
		tree.Layout(tbl.Handle(), image.Rect(0, 0, 400, 300))
	}
}
