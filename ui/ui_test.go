package ui

import (
	"io"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

// eventScreen is a text screen fed from a channel.
type eventScreen struct {
	*TextScreen
	events chan tcell.Event
}

func (s *eventScreen) Events() <-chan tcell.Event { return s.events }

func newEventScreen(cols, rows int) *eventScreen {
	return &eventScreen{
		TextScreen: NewTextScreen(io.Discard, nil, cols, rows),
		events:     make(chan tcell.Event, 4),
	}
}

func TestApp_DispatchResize(t *testing.T) {
	screen := newEventScreen(20, 5)
	app := NewApp(screen, DefaultConfig())
	win := NewWindow(app)
	label := NewLabel("x")
	win.Add(label)
	if err := win.ShowAll(); err != nil {
		t.Fatal(err)
	}
	drain(app)

	screen.events <- tcell.NewEventResize(30, 10)
	if !app.poll(0) {
		t.Fatalf("poll() = false with an event queued")
	}
	if got, _ := win.Allocation(); got != (Rect{0, 0, 30, 10}) {
		t.Errorf("window Allocation() = %v, want (0,0 30x10)", got)
	}
	if got, _ := label.Allocation(); got != (Rect{0, 0, 30, 10}) {
		t.Errorf("label Allocation() = %v, want (0,0 30x10)", got)
	}
	if got := win.Canvas().Area(); got != (Rect{0, 0, 30, 10}) {
		t.Errorf("window canvas Area() = %v, want (0,0 30x10)", got)
	}
}

func TestApp_DispatchKeys(t *testing.T) {
	screen := newEventScreen(10, 2)
	app := NewApp(screen, DefaultConfig())

	var keys []tcell.Key
	app.OnKey(func(ev *tcell.EventKey) bool {
		keys = append(keys, ev.Key())
		return true
	})
	screen.events <- tcell.NewEventKey(tcell.KeyCtrlY, 0, tcell.ModCtrl)
	screen.events <- tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)
	if !app.poll(time.Millisecond) {
		t.Fatalf("poll() = false with events queued")
	}
	if len(keys) != 1 || keys[0] != tcell.KeyCtrlY {
		t.Errorf("OnKey saw %v, want only Ctrl+Y", keys)
	}
	if !app.Loop().quit {
		t.Errorf("Escape did not quit the loop")
	}
}

func TestApp_PollTimeout(t *testing.T) {
	app := NewApp(newEventScreen(10, 2), DefaultConfig())
	start := time.Now()
	if app.poll(5 * time.Millisecond) {
		t.Errorf("poll() = true without events")
	}
	if d := time.Since(start); d < 5*time.Millisecond {
		t.Errorf("poll() returned after %v, want at least 5ms", d)
	}
	if app.poll(0) {
		t.Errorf("poll(0) = true without events")
	}
}

func TestApp_Toplevels(t *testing.T) {
	app := newTestApp()
	a, b := NewWindow(app), NewWindow(app)
	got := app.Toplevels()
	if len(got) != 2 || got[0] != a || got[1] != b {
		t.Errorf("Toplevels() = %v, want both windows in creation order", got)
	}
	if cols, rows := app.screenSize(); cols != 80 || rows != 24 {
		t.Errorf("screenSize() without a screen = %d, %d, want 80, 24", cols, rows)
	}
}

func TestApp_QueueDrawCoalesces(t *testing.T) {
	app := NewApp(newEventScreen(10, 2), DefaultConfig())
	win := NewWindow(app)
	if err := win.Show(); err != nil {
		t.Fatal(err)
	}
	drain(app)

	redraws := 0
	app.Loop().IdleAdd(PriorityRedraw+1, func() bool {
		redraws++
		return false
	})
	app.QueueDraw()
	app.QueueDraw()
	if n := app.Loop().idle.Len(); n != 2 {
		t.Errorf("idle sources after two QueueDraw calls = %d, want 2", n)
	}
	drain(app)
	if redraws != 1 {
		t.Errorf("later idle ran %d times, want 1", redraws)
	}
}
