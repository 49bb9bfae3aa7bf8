package ui

import "errors"

var ErrBinFull = errors.New("bin already has a child")

// Bin is a container with at most one child, inset by the border width.
type Bin struct {
	ContainerBase
	child Widget
}

func NewBin() *Bin {
	b := &Bin{}
	b.Init(b)
	return b
}

// Child returns the child, or nil.
func (b *Bin) Child() Widget { return b.child }

func (b *Bin) Children() []Widget {
	if b.child == nil {
		return nil
	}
	return []Widget{b.child}
}

func (b *Bin) Add(w Widget) error {
	if b.child != nil {
		return b.errorf("add "+w.Name(), ErrBinFull)
	}
	b.child = w
	if err := w.SetParent(b.this()); err != nil {
		b.child = nil
		return err
	}
	b.emit(Signal{Event: EventAdd, Child: w})
	b.QueueResize()
	return nil
}

func (b *Bin) Remove(w Widget) error {
	if w == nil || b.child == nil || b.child.base() != w.base() {
		return b.errorf("remove", ErrNotChild)
	}
	b.child = nil
	w.Unparent()
	b.emit(Signal{Event: EventRemove, Child: w})
	b.QueueResize()
	return nil
}

func (b *Bin) Measure() Requisition {
	bw := 2 * b.borderWidth
	if b.child == nil || !b.child.base().visible {
		return Requisition{W: bw, H: bw}
	}
	req := b.child.SizeRequest()
	return Requisition{W: req.W + bw, H: req.H + bw}
}

func (b *Bin) Arrange(r Rect) {
	if b.child == nil || !b.child.base().visible {
		return
	}
	b.child.SizeAllocate(r.Inset(b.borderWidth))
}
