package ui

import (
	"errors"
	"iter"
)

var ErrNotChild = errors.New("not a child of this container")

// ResizeMode selects how a container reacts to a queued resize of one of
// its descendants.
type ResizeMode int

const (
	// ResizeParent passes the request on to the nearest ancestor with
	// another mode.
	ResizeParent ResizeMode = iota
	// ResizeQueue defers the check to an idle callback of the session;
	// repeated requests before it runs are coalesced.
	ResizeQueue
	// ResizeImmediate checks the sizes synchronously.
	ResizeImmediate
)

func (m ResizeMode) String() string {
	switch m {
	case ResizeParent:
		return "parent"
	case ResizeQueue:
		return "queue"
	case ResizeImmediate:
		return "immediate"
	}
	return "unknown"
}

// Container is a widget holding other widgets.
type Container interface {
	Widget
	Add(w Widget) error
	Remove(w Widget) error
	// Children returns the children in layout order.
	Children() []Widget
	CheckResize()

	containerBase() *ContainerBase
}

// ContainerBase is embedded by containers. Its canvas is filled with the
// container attribute.
type ContainerBase struct {
	Base
	attr          Attr
	borderWidth   int
	resizeMode    ResizeMode
	needResize    bool
	resizePending bool
}

func (c *ContainerBase) containerBase() *ContainerBase { return c }

func (c *ContainerBase) BorderWidth() int       { return c.borderWidth }
func (c *ContainerBase) ResizeMode() ResizeMode { return c.resizeMode }

// SetBorderWidth sets the empty space kept around the children.
func (c *ContainerBase) SetBorderWidth(n int) {
	n = max(n, 0)
	if n != c.borderWidth {
		c.borderWidth = n
		c.QueueResize()
	}
}

func (c *ContainerBase) SetResizeMode(m ResizeMode) {
	c.resizeMode = m
}

// SetAttr sets the attribute of the container background.
func (c *ContainerBase) SetAttr(a Attr) {
	if a != c.attr {
		c.attr = a
		c.QueueDraw()
	}
}

func (c *ContainerBase) Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row] {
	return Blank{Attr: c.attr}.Rows(left, top, cols, rows, attrs)
}

// CheckResize measures the container again. A request that no longer fits
// the allocation is passed on to the parent in ResizeParent mode;
// otherwise the children are arranged again inside the current
// allocation.
func (c *ContainerBase) CheckResize() {
	logger.Printf("%s: check resize", c.Path())
	req := c.SizeRequest()
	alloc, ok := c.Allocation()
	if ok && (req.W > alloc.W || req.H > alloc.H) && c.resizeMode == ResizeParent && c.parent != nil {
		c.parent.QueueResize()
	} else {
		c.resizeChildren()
	}
	c.emit(Signal{Event: EventCheckResize})
}

func (c *ContainerBase) resizeChildren() {
	if alloc, ok := c.Allocation(); ok {
		c.reallocate(alloc)
	}
}

// resizeContainer returns the container handling resizes for w: w itself
// or its nearest ancestor not in ResizeParent mode, or else the root when
// that is a toplevel container.
func resizeContainer(w Widget) Container {
	for n := w; n != nil; n = n.Parent() {
		if c, ok := n.(Container); ok && c.containerBase().resizeMode != ResizeParent {
			return c
		}
	}
	if c, ok := w.base().Root().(Container); ok && c.base().toplevel {
		return c
	}
	return nil
}

// QueueResize flags the widget and its ancestors up to the resize
// container for a new size negotiation and schedules it according to the
// container's mode.
func (b *Base) QueueResize() {
	rc := resizeContainer(b.this())
	for w := b.this(); w != nil; w = w.Parent() {
		wb := w.base()
		wb.requestNeeded = true
		wb.allocNeeded = true
		if rc != nil && wb == rc.base() {
			break
		}
	}
	if rc == nil {
		return
	}

	cb := rc.containerBase()
	if !cb.visible || !(cb.toplevel || cb.realized) {
		cb.needResize = true
		return
	}
	switch cb.resizeMode {
	case ResizeQueue:
		app := cb.session()
		if app == nil {
			logger.Printf("%s: queued resize without a session", cb.Path())
			cb.needResize = true
			return
		}
		app.queueResize(rc)
	default:
		rc.CheckResize()
	}
}
