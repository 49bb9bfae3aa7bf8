package ui

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
)

var (
	ErrNoParent         = errors.New("widget has no parent")
	ErrNoRealizedParent = errors.New("no realized parent")
	ErrAlreadyParented  = errors.New("widget already has a parent")
	ErrToplevel         = errors.New("widget is a toplevel")
	ErrNotContainer     = errors.New("parent is not a container")
	ErrCycle            = errors.New("widget is an ancestor of its new parent")
)

// Widget is a node of the widget tree.
//
// Concrete widgets embed Base, call Init with themselves and override
// Measure and Arrange to implement their layout policy. A widget that also
// implements ContentSource supplies the cells of its canvas.
type Widget interface {
	Name() string
	Path() string
	Parent() Widget

	Show() error
	Hide()
	Map() error
	Unmap()
	Realize() error
	Unrealize()
	SetParent(p Widget) error
	Unparent()

	SizeRequest() Requisition
	SizeAllocate(r Rect)
	QueueResize()

	Connect(ev Event, h Handler) (HandlerID, error)
	Disconnect(id HandlerID) error

	// Measure returns the preferred size. It is called by SizeRequest when
	// the cached requisition is stale.
	Measure() Requisition
	// Arrange positions the children inside the allocation r.
	Arrange(r Rect)

	base() *Base
}

// Base carries the state shared by all widgets. The zero value is a usable
// widget without layout or content.
type Base struct {
	self     Widget
	name     string
	parent   Widget
	canvas   *Canvas
	req      *Requisition
	alloc    *Rect
	visible  bool
	mapped   bool
	realized bool
	toplevel bool
	app      *App // set on toplevels

	requestNeeded bool
	allocNeeded   bool

	events handlerTable
}

// Init binds the base to the widget embedding it, so that overridden
// methods are reached from the shared code. The default name is the type
// name of self.
func (b *Base) Init(self Widget) {
	b.self = self
	t := reflect.TypeOf(self)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	b.name = t.Name()
}

func (b *Base) base() *Base { return b }

func (b *Base) this() Widget {
	if b.self == nil {
		return b
	}
	return b.self
}

func (b *Base) Name() string {
	if b.name == "" {
		return "Widget"
	}
	return b.name
}

func (b *Base) SetName(name string) { b.name = name }

func (b *Base) Parent() Widget   { return b.parent }
func (b *Base) Canvas() *Canvas  { return b.canvas }
func (b *Base) Visible() bool    { return b.visible }
func (b *Base) Mapped() bool     { return b.mapped }
func (b *Base) Realized() bool   { return b.realized }
func (b *Base) IsToplevel() bool { return b.toplevel }

// Allocation returns the last allocated rectangle.
func (b *Base) Allocation() (Rect, bool) {
	if b.alloc == nil {
		return Rect{}, false
	}
	return *b.alloc, true
}

// Requisition returns the cached preferred size.
func (b *Base) Requisition() (Requisition, bool) {
	if b.req == nil {
		return Requisition{}, false
	}
	return *b.req, true
}

// Root returns the topmost ancestor, or the widget itself.
func (b *Base) Root() Widget {
	w := b.this()
	for w.Parent() != nil {
		w = w.Parent()
	}
	return w
}

// Path returns the dotted names from the root down to the widget.
func (b *Base) Path() string {
	names := []string{b.Name()}
	for p := b.parent; p != nil; p = p.Parent() {
		names = append(names, p.Name())
	}
	slices.Reverse(names)
	return strings.Join(names, ".")
}

func (b *Base) session() *App {
	return b.Root().base().app
}

// children returns the children still linked to b.
func (b *Base) children() []Widget {
	c, ok := b.this().(Container)
	if !ok {
		return nil
	}
	var out []Widget
	for _, child := range c.Children() {
		if p := child.Parent(); p != nil && p.base() == b {
			out = append(out, child)
		}
	}
	return out
}

func (b *Base) errorf(op string, err error) error {
	err = fmt.Errorf("%s: %s: %w", b.Path(), op, err)
	logger.Print(err)
	return err
}

func (b *Base) emit(s Signal) bool {
	s.Widget = b.this()
	return b.events.emit(s)
}

// Connect adds h to the handlers of ev. Handlers run after the default
// action, in connection order.
func (b *Base) Connect(ev Event, h Handler) (HandlerID, error) {
	id, err := b.events.connect(ev, h)
	if err != nil {
		return 0, b.errorf("connect", err)
	}
	return id, nil
}

func (b *Base) Disconnect(id HandlerID) error {
	if err := b.events.disconnect(id); err != nil {
		return b.errorf("disconnect", err)
	}
	return nil
}

func (b *Base) Measure() Requisition { return Requisition{} }
func (b *Base) Arrange(Rect)         {}

// Show marks the widget visible and maps it when its parent is mapped.
func (b *Base) Show() error {
	if b.visible {
		return nil
	}
	b.visible = true
	if b.toplevel || (b.parent != nil && b.parent.base().mapped) {
		if err := b.this().Map(); err != nil {
			b.visible = false
			return err
		}
	}
	logger.Printf("%s: show", b.Path())
	b.emit(Signal{Event: EventShow})
	if b.parent != nil {
		b.parent.QueueResize()
	}
	return nil
}

// Hide unmaps the widget and marks it hidden.
func (b *Base) Hide() {
	if !b.visible {
		return
	}
	if b.mapped {
		b.this().Unmap()
	}
	b.visible = false
	logger.Printf("%s: hide", b.Path())
	b.emit(Signal{Event: EventHide})
	if b.parent != nil {
		b.parent.QueueResize()
	}
}

// Map makes a visible widget contribute to the display, realizing it
// first if needed. A widget whose parent is not mapped stays unmapped
// until the parent maps its children.
func (b *Base) Map() error {
	if !b.visible || b.mapped {
		return nil
	}
	if !b.toplevel && (b.parent == nil || !b.parent.base().mapped) {
		return nil
	}
	if !b.realized {
		if err := b.this().Realize(); err != nil {
			return err
		}
	}
	b.mapped = true
	b.canvas.Show()
	logger.Printf("%s: map", b.Path())
	b.emit(Signal{Event: EventMap})
	for _, child := range b.children() {
		cb := child.base()
		if cb.visible && !cb.mapped {
			if err := child.Map(); err != nil {
				return err
			}
		}
	}
	b.redraw()
	return nil
}

// Unmap removes the widget and its children from the display.
func (b *Base) Unmap() {
	if !b.mapped {
		return
	}
	for _, child := range b.children() {
		child.Unmap()
	}
	b.canvas.Hide()
	b.mapped = false
	logger.Printf("%s: unmap", b.Path())
	b.emit(Signal{Event: EventUnmap})
	b.redraw()
}

// Realize creates the canvas of the widget and attaches it under the
// parent's canvas. Non-toplevel ancestors are realized first; the
// toplevel itself must already be realized.
func (b *Base) Realize() error {
	if b.realized {
		return nil
	}
	if b.parent == nil && !b.toplevel {
		return b.errorf("realize", ErrNoParent)
	}
	if b.parent != nil {
		root := b.Root().base()
		if !root.toplevel {
			return b.errorf("realize", fmt.Errorf("%s is not a toplevel: %w", root.Path(), ErrNoParent))
		}
		if !root.realized {
			return b.errorf("realize", fmt.Errorf("%s: %w", root.Path(), ErrNoRealizedParent))
		}
		if !b.parent.base().realized {
			if err := b.parent.Realize(); err != nil {
				return err
			}
			// the parent realizes its visible children
			if b.realized {
				return nil
			}
		}
	}

	area, _ := b.Allocation()
	var src ContentSource
	if s, ok := b.this().(ContentSource); ok {
		src = s
	}
	b.canvas = NewCanvas(area, src)
	if b.parent != nil {
		b.parent.base().canvas.AddChild(b.canvas)
	}
	b.realized = true
	logger.Printf("%s: realize %v", b.Path(), area)
	b.emit(Signal{Event: EventRealize})

	for _, child := range b.children() {
		cb := child.base()
		if cb.visible && !cb.realized {
			if err := child.Realize(); err != nil {
				return err
			}
		}
	}
	return nil
}

// Unrealize destroys the canvas of the widget and of all its descendants.
func (b *Base) Unrealize() {
	if b.mapped {
		b.this().Unmap()
	}
	if !b.realized {
		return
	}
	for _, child := range b.children() {
		child.Unrealize()
	}
	b.canvas.Detach()
	b.canvas = nil
	b.realized = false
	logger.Printf("%s: unrealize", b.Path())
	b.emit(Signal{Event: EventUnrealize})
}

// SetParent links the widget below the container p. A container not yet
// listing the widget adds it through its own Add, so the child list and
// the parent link always change together. A widget is realized and
// mapped along with an already realized and mapped parent.
func (b *Base) SetParent(p Widget) error {
	if b.parent != nil {
		return b.errorf("set parent", ErrAlreadyParented)
	}
	if b.toplevel {
		return b.errorf("set parent", ErrToplevel)
	}
	if p == nil {
		return b.errorf("set parent", ErrNoParent)
	}
	c, ok := p.(Container)
	if !ok {
		return b.errorf("set parent", fmt.Errorf("%s: %w", p.Path(), ErrNotContainer))
	}
	for a := p; a != nil; a = a.Parent() {
		if a.base() == b {
			return b.errorf("set parent", fmt.Errorf("%s: %w", p.Path(), ErrCycle))
		}
	}
	if !listsChild(c, b.this()) {
		return c.Add(b.this())
	}

	b.parent = p
	b.emit(Signal{Event: EventParentSet})

	pb := p.base()
	if pb.realized {
		if err := b.this().Realize(); err != nil {
			return err
		}
	}
	if pb.visible && pb.mapped && b.visible {
		return b.this().Map()
	}
	return nil
}

// Unparent unrealizes the widget and clears its parent link. A parent
// still listing the widget removes it through its own Remove.
func (b *Base) Unparent() {
	if b.parent == nil {
		return
	}
	if c, ok := b.parent.(Container); ok && listsChild(c, b.this()) {
		c.Remove(b.this())
		return
	}
	if b.realized {
		b.this().Unrealize()
	}
	old := b.parent
	b.parent = nil
	b.emit(Signal{Event: EventParentSet, OldParent: old})
}

func listsChild(c Container, w Widget) bool {
	return slices.ContainsFunc(c.Children(), func(child Widget) bool {
		return child.base() == w.base()
	})
}

// ShowAll shows the widget and all its descendants.
func (b *Base) ShowAll() error {
	for _, child := range b.children() {
		if err := child.base().ShowAll(); err != nil {
			return err
		}
	}
	return b.this().Show()
}

// HideAll hides the widget and all its descendants.
func (b *Base) HideAll() {
	b.this().Hide()
	for _, child := range b.children() {
		child.base().HideAll()
	}
}

// SizeRequest returns the preferred size, measuring the widget again only
// when a resize was queued since the last request.
func (b *Base) SizeRequest() Requisition {
	if b.req != nil && !b.requestNeeded {
		return *b.req
	}
	req := b.this().Measure()
	b.req = &req
	b.requestNeeded = false
	logger.Printf("%s: size request %dx%d", b.Path(), req.W, req.H)
	b.emit(Signal{Event: EventSizeRequest, Requisition: req})
	return req
}

// SizeAllocate assigns r to the widget. Width and height are at least 1.
// Allocating the same rectangle again does nothing unless a resize was
// queued in between.
func (b *Base) SizeAllocate(r Rect) {
	r.W, r.H = max(r.W, 1), max(r.H, 1)
	if b.alloc != nil && *b.alloc == r && !b.allocNeeded {
		return
	}
	b.reallocate(r)
}

// reallocate stores r, moves the canvas and arranges the children even
// when r equals the current allocation.
func (b *Base) reallocate(r Rect) {
	b.alloc = &r
	b.allocNeeded = false
	logger.Printf("%s: size allocate %v", b.Path(), r)
	if b.realized {
		b.canvas.MoveResize(r)
		b.redraw()
	}
	b.this().Arrange(r)
	b.emit(Signal{Event: EventSizeAllocate, Allocation: r})
}

// QueueDraw invalidates the whole allocation of the widget.
func (b *Base) QueueDraw() {
	if r, ok := b.Allocation(); ok {
		b.QueueDrawArea(r)
	}
}

// QueueDrawArea invalidates r, in toplevel coordinates, when the widget
// and all its ancestors are realized.
func (b *Base) QueueDrawArea(r Rect) {
	if !b.realized {
		return
	}
	for p := b.parent; p != nil; p = p.Parent() {
		if !p.base().realized {
			return
		}
	}
	b.canvas.InvalidateArea(r)
	b.redraw()
}

func (b *Base) redraw() {
	if app := b.session(); app != nil {
		app.QueueDraw()
	}
}
