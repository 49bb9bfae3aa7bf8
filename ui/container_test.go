package ui

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestContainer_QueuedResizeCoalesces(t *testing.T) {
	app := newTestApp()
	win := NewWindow(app)
	box := NewVBox()
	labels := []*Label{NewLabel("one"), NewLabel("two"), NewLabel("three")}
	win.Add(box)
	for _, l := range labels {
		box.PackStart(l, false, true, 0)
	}
	if err := win.ShowAll(); err != nil {
		t.Fatal(err)
	}
	drain(app)

	checks := 0
	win.Connect(EventCheckResize, func(Signal) bool {
		checks++
		return false
	})
	for i, l := range labels {
		l.SetText(l.Text() + string(rune('!'+i)))
	}
	if checks != 0 {
		t.Errorf("check-resize ran %d times before the drain, want 0", checks)
	}
	drain(app)
	if checks != 1 {
		t.Errorf("check-resize ran %d times after the drain, want 1", checks)
	}

	// the new texts are allocated
	if r, _ := labels[2].Allocation(); r.W != 80 || r.Y != 2 {
		t.Errorf("third label allocation = %v, want row 2 full width", r)
	}
}

func TestContainer_ResizeImmediate(t *testing.T) {
	app := newTestApp()
	win := NewWindow(app)
	box := NewHBox()
	box.SetResizeMode(ResizeImmediate)
	label := NewLabel("ab")
	win.Add(box)
	box.PackStart(label, false, false, 0)
	if err := win.ShowAll(); err != nil {
		t.Fatal(err)
	}
	drain(app)

	boxChecks, winChecks := 0, 0
	box.Connect(EventCheckResize, func(Signal) bool {
		boxChecks++
		return false
	})
	win.Connect(EventCheckResize, func(Signal) bool {
		winChecks++
		return false
	})

	label.SetText("abcd")
	if boxChecks != 1 {
		t.Errorf("box check-resize ran %d times, want 1", boxChecks)
	}
	if r, _ := label.Allocation(); r.W != 4 {
		t.Errorf("label width after SetText = %d, want 4", r.W)
	}
	drain(app)
	if winChecks != 0 {
		t.Errorf("window check-resize ran %d times, want 0", winChecks)
	}
}

func TestContainer_ResizeParentOverflow(t *testing.T) {
	app := newTestApp()
	win := NewWindow(app)
	outer := NewVBox()
	inner := NewHBox()
	label := NewLabel("x")
	win.Add(outer)
	outer.PackStart(inner, false, true, 0)
	inner.Add(label)
	if err := win.ShowAll(); err != nil {
		t.Fatal(err)
	}
	drain(app)

	// inner is one row high; a two-line label no longer fits
	label.SetText("x\ny")
	inner.CheckResize()
	queued := 0
	win.Connect(EventCheckResize, func(Signal) bool {
		queued++
		return false
	})
	drain(app)
	if queued != 1 {
		t.Errorf("window check-resize ran %d times, want 1", queued)
	}
	if r, _ := inner.Allocation(); r.H != 2 {
		t.Errorf("inner height = %d, want 2", r.H)
	}
}

func TestContainer_HiddenResizeContainer(t *testing.T) {
	app := newTestApp()
	win := NewWindow(app)
	label := NewLabel("x")
	win.Add(label)

	label.Show()
	label.SetText("xy")
	if !win.needResize {
		t.Errorf("needResize = false for a hidden window")
	}
	if drained := app.Loop().Iteration(false); drained {
		t.Errorf("Iteration() dispatched work for a hidden window")
	}
	if err := win.Show(); err != nil {
		t.Fatal(err)
	}
	if win.needResize {
		t.Errorf("needResize = true after Show")
	}
	if r, _ := label.Allocation(); r.W != 80 || r.H != 24 {
		t.Errorf("label allocation = %v, want the whole screen", r)
	}
}

func TestResizeContainer(t *testing.T) {
	app := newTestApp()
	win := NewWindow(app)
	outer := NewVBox()
	inner := NewHBox()
	label := NewLabel("x")
	win.Add(outer)
	outer.Add(inner)
	inner.Add(label)

	if got := resizeContainer(label); got != Container(win) {
		t.Errorf("resizeContainer() = %v, want the window", got)
	}
	outer.SetResizeMode(ResizeImmediate)
	if got := resizeContainer(label); got != Container(outer) {
		t.Errorf("resizeContainer() = %v, want the outer box", got)
	}

	loose := NewVBox()
	if got := resizeContainer(loose); got != nil {
		t.Errorf("resizeContainer() of a detached box = %v, want nil", got)
	}
}

func TestResizeMode_String(t *testing.T) {
	tests := []struct {
		mode ResizeMode
		want string
	}{
		{ResizeParent, "parent"},
		{ResizeQueue, "queue"},
		{ResizeImmediate, "immediate"},
		{ResizeMode(9), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestBin(t *testing.T) {
	bin := NewBin()
	bin.SetBorderWidth(2)
	a, b := NewLabel("abc"), NewLabel("d")

	if err := bin.Add(a); err != nil {
		t.Fatal(err)
	}
	if err := bin.Add(b); !errors.Is(err, ErrBinFull) {
		t.Errorf("second Add() error = %v, want ErrBinFull", err)
	}
	if b.Parent() != nil {
		t.Errorf("rejected child has parent %v", b.Parent())
	}

	a.Show()
	if got := bin.SizeRequest(); got != (Requisition{7, 5}) {
		t.Errorf("SizeRequest() = %v, want {7 5}", got)
	}
	bin.SizeAllocate(Rect{0, 0, 10, 6})
	if got, _ := a.Allocation(); got != (Rect{2, 2, 6, 2}) {
		t.Errorf("child Allocation() = %v, want (2,2 6x2)", got)
	}

	var removed []Widget
	bin.Connect(EventRemove, func(s Signal) bool {
		removed = append(removed, s.Child)
		return false
	})
	if err := bin.Remove(b); !errors.Is(err, ErrNotChild) {
		t.Errorf("Remove() of a stranger error = %v, want ErrNotChild", err)
	}
	if err := bin.Remove(a); err != nil {
		t.Fatal(err)
	}
	if bin.Child() != nil || a.Parent() != nil {
		t.Errorf("after Remove: child %v, parent %v", bin.Child(), a.Parent())
	}
	if len(removed) != 1 || removed[0] != Widget(a) {
		t.Errorf("remove signals carried %v, want the removed label", removed)
	}
	if err := bin.Add(b); err != nil {
		t.Errorf("Add() after Remove = %v", err)
	}
}

func TestContainer_RedrawOnSession(t *testing.T) {
	screen := NewTextScreen(io.Discard, nil, 20, 3)
	app := NewApp(screen, DefaultConfig())
	win := NewWindow(app)
	label := NewLabel("hi")
	win.Add(label)
	if err := win.ShowAll(); err != nil {
		t.Fatal(err)
	}
	drain(app)

	want := []string{
		"                    ",
		"         hi         ",
		"                    ",
	}
	if diff := cmp.Diff(want, screen.Lines()); diff != "" {
		t.Errorf("Lines() mismatch (-want +got):\n%s", diff)
	}

	label.SetText("hey")
	drain(app)
	want[1] = "        hey         "
	if diff := cmp.Diff(want, screen.Lines()); diff != "" {
		t.Errorf("Lines() after SetText mismatch (-want +got):\n%s", diff)
	}
}
