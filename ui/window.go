package ui

// Window is a toplevel bin covering the screen of its session. Its
// resizes are queued and drained by the session loop.
type Window struct {
	Bin
}

// NewWindow returns a hidden window registered with app.
func NewWindow(app *App) *Window {
	w := &Window{}
	w.Init(w)
	w.toplevel = true
	w.app = app
	w.resizeMode = ResizeQueue
	w.attr = "window"
	app.addToplevel(w)
	return w
}

// Show negotiates the size of the window against the screen, realizes it
// and maps it with its visible descendants.
func (w *Window) Show() error {
	if w.visible {
		return nil
	}
	w.visible = true
	need := w.needResize || !w.realized
	w.needResize = false
	if need {
		w.SizeRequest()
		cols, rows := w.app.screenSize()
		w.SizeAllocate(Rect{W: cols, H: rows})
		if !w.realized {
			if err := w.Realize(); err != nil {
				w.visible = false
				return err
			}
		}
	}
	w.CheckResize()
	logger.Printf("%s: show", w.Path())
	w.emit(Signal{Event: EventShow})
	return w.Map()
}

// CheckResize measures and allocates the window again as far as queued
// resizes require, then schedules a redraw.
func (w *Window) CheckResize() {
	logger.Printf("%s: check resize", w.Path())
	if w.visible {
		if w.requestNeeded {
			w.SizeRequest()
		}
		if alloc, ok := w.Allocation(); ok && w.allocNeeded {
			w.reallocate(alloc)
		}
		w.app.QueueDraw()
	}
	w.emit(Signal{Event: EventCheckResize})
}

// Resize allocates the window to a new screen size.
func (w *Window) Resize(cols, rows int) {
	w.SizeAllocate(Rect{W: cols, H: rows})
	w.QueueDraw()
}
