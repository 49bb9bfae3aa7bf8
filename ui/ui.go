package ui

import (
	"slices"
	"time"

	"github.com/gdamore/tcell/v2"
)

// App is a session: it owns the main loop, the screen, the toplevel
// windows and the queue of containers waiting for a resize.
type App struct {
	cfg       Config
	screen    Screen
	loop      *MainContext
	toplevels []*Window

	resizeQueue     []Container
	resizeScheduled bool
	drawScheduled   bool

	onKey   func(*tcell.EventKey) bool
	QuitKey tcell.Key // key to quit the app, default is Escape
}

func NewApp(screen Screen, cfg Config) *App {
	a := &App{
		cfg:     cfg,
		screen:  screen,
		loop:    NewMainContext(),
		QuitKey: tcell.KeyEscape,
	}
	a.loop.SetMaxWait(cfg.PollInterval)
	a.loop.SetPoller(a.poll)
	return a
}

func (a *App) Loop() *MainContext { return a.loop }
func (a *App) Screen() Screen     { return a.screen }
func (a *App) Config() Config     { return a.cfg }

// Toplevels returns the registered windows in creation order.
func (a *App) Toplevels() []*Window { return slices.Clone(a.toplevels) }

func (a *App) addToplevel(w *Window) {
	a.toplevels = append(a.toplevels, w)
}

// OnKey sets the handler of key events not consumed by the app. It
// returns true when it handled the key.
func (a *App) OnKey(fn func(*tcell.EventKey) bool) {
	a.onKey = fn
}

func (a *App) screenSize() (int, int) {
	if a.screen == nil {
		return a.cfg.Cols, a.cfg.Rows
	}
	cols, rows := a.screen.Size()
	if cols <= 0 || rows <= 0 {
		return a.cfg.Cols, a.cfg.Rows
	}
	return cols, rows
}

// queueResize appends c to the resize queue unless it is already
// waiting. The queue is drained by one idle callback.
func (a *App) queueResize(c Container) {
	cb := c.containerBase()
	if cb.resizePending {
		return
	}
	cb.resizePending = true
	a.resizeQueue = append(a.resizeQueue, c)
	if !a.resizeScheduled {
		a.resizeScheduled = true
		a.loop.IdleAdd(PriorityResize, a.drainResizes)
	}
}

// drainResizes checks the queued containers in FIFO order. Containers
// queued while draining are checked in the same pass.
func (a *App) drainResizes() bool {
	logger.Printf("drain %d queued resizes", len(a.resizeQueue))
	for len(a.resizeQueue) > 0 {
		c := a.resizeQueue[0]
		a.resizeQueue = a.resizeQueue[1:]
		c.containerBase().resizePending = false
		c.CheckResize()
	}
	a.resizeScheduled = false
	return false
}

// QueueDraw schedules a redraw of the mapped toplevels.
func (a *App) QueueDraw() {
	if a.drawScheduled || a.screen == nil {
		return
	}
	a.drawScheduled = true
	a.loop.IdleAdd(PriorityRedraw, func() bool {
		a.drawScheduled = false
		if err := a.Redraw(); err != nil {
			logger.Printf("redraw: %v", err)
		}
		return false
	})
}

// Redraw writes the changed regions of every mapped toplevel.
func (a *App) Redraw() error {
	for _, w := range a.toplevels {
		if !w.mapped {
			continue
		}
		if err := a.screen.Draw(w.canvas.Changes()); err != nil {
			return err
		}
	}
	return nil
}

// Run starts the screen, redraws the mapped toplevels and runs the loop
// until Quit.
func (a *App) Run() error {
	if err := a.screen.Start(); err != nil {
		return err
	}
	defer a.screen.Stop()
	for _, w := range a.toplevels {
		if w.mapped {
			w.canvas.Invalidate()
		}
	}
	a.QueueDraw()
	a.loop.Run()
	return nil
}

func (a *App) Quit() { a.loop.Quit() }

// poll waits up to timeout for screen events and dispatches them.
func (a *App) poll(timeout time.Duration) bool {
	if a.screen == nil {
		return false
	}
	events := a.screen.Events()
	if events == nil {
		if timeout > 0 {
			time.Sleep(timeout)
		}
		return false
	}

	var ev tcell.Event
	if timeout <= 0 {
		select {
		case ev = <-events:
		default:
			return false
		}
	} else {
		timer := time.NewTimer(timeout)
		defer timer.Stop()
		select {
		case ev = <-events:
		case <-timer.C:
			return false
		}
	}
	a.dispatch(ev)
	for {
		select {
		case ev := <-events:
			a.dispatch(ev)
		default:
			return true
		}
	}
}

// dispatch handles one input event on the loop goroutine.
func (a *App) dispatch(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		cols, rows := ev.Size()
		logger.Printf("screen resized to %dx%d", cols, rows)
		for _, w := range a.toplevels {
			if w.visible {
				w.Resize(cols, rows)
			}
		}
	case *tcell.EventKey:
		if ev.Key() == a.QuitKey {
			a.Quit()
			return
		}
		if a.onKey != nil {
			a.onKey(ev)
		}
	}
}
