package ui

import "slices"

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

type PackType int

const (
	PackStart PackType = iota
	PackEnd
)

type boxChild struct {
	widget  Widget
	expand  bool
	fill    bool
	padding int
	pack    PackType
}

// Box arranges its children in a single row or column. Children packed at
// the start are placed from the left (top), children packed at the end
// from the right (bottom).
type Box struct {
	ContainerBase
	orientation Orientation
	spacing     int
	homogeneous bool
	children    []boxChild
}

func NewBox(o Orientation) *Box {
	b := &Box{orientation: o}
	b.Init(b)
	return b
}

// NewHBox returns a box organizing its children into a single row.
func NewHBox() *Box {
	b := NewBox(Horizontal)
	b.SetName("HBox")
	return b
}

// NewVBox returns a box organizing its children into a single column.
func NewVBox() *Box {
	b := NewBox(Vertical)
	b.SetName("VBox")
	return b
}

func (b *Box) Orientation() Orientation { return b.orientation }

// Spacing sets the number of cells between children.
func (b *Box) Spacing(n int) *Box {
	n = max(n, 0)
	if n != b.spacing {
		b.spacing = n
		b.QueueResize()
	}
	return b
}

// Homogeneous gives every visible child the same size.
func (b *Box) Homogeneous(h bool) *Box {
	if h != b.homogeneous {
		b.homogeneous = h
		b.QueueResize()
	}
	return b
}

// PackStart adds w after the children already packed at the start.
// Expanding children share the extra space; fill gives that space to the
// child rather than padding it. padding is kept on both sides of w.
func (b *Box) PackStart(w Widget, expand, fill bool, padding int) error {
	return b.pack(w, expand, fill, padding, PackStart)
}

// PackEnd adds w before the children already packed at the end.
func (b *Box) PackEnd(w Widget, expand, fill bool, padding int) error {
	return b.pack(w, expand, fill, padding, PackEnd)
}

// Add packs w at the start, expanding and filling.
func (b *Box) Add(w Widget) error {
	return b.PackStart(w, true, true, 0)
}

func (b *Box) pack(w Widget, expand, fill bool, padding int, pt PackType) error {
	b.children = append(b.children, boxChild{
		widget:  w,
		expand:  expand,
		fill:    fill,
		padding: max(padding, 0),
		pack:    pt,
	})
	if err := w.SetParent(b.this()); err != nil {
		b.children = b.children[:len(b.children)-1]
		return err
	}
	b.emit(Signal{Event: EventAdd, Child: w})
	b.QueueResize()
	return nil
}

func (b *Box) Remove(w Widget) error {
	i := slices.IndexFunc(b.children, func(c boxChild) bool {
		return w != nil && c.widget.base() == w.base()
	})
	if i < 0 {
		return b.errorf("remove", ErrNotChild)
	}
	b.children = slices.Delete(b.children, i, i+1)
	w.Unparent()
	b.emit(Signal{Event: EventRemove, Child: w})
	b.QueueResize()
	return nil
}

// Children returns the start children in packing order followed by the
// end children from the last packed to the first.
func (b *Box) Children() []Widget {
	var out []Widget
	for _, c := range b.children {
		if c.pack == PackStart {
			out = append(out, c.widget)
		}
	}
	for _, c := range slices.Backward(b.children) {
		if c.pack == PackEnd {
			out = append(out, c.widget)
		}
	}
	return out
}

func (b *Box) along(r Requisition) (main, cross int) {
	if b.orientation == Horizontal {
		return r.W, r.H
	}
	return r.H, r.W
}

func (b *Box) Measure() Requisition {
	var main, cross, n int
	for _, c := range b.children {
		if !c.widget.base().visible {
			continue
		}
		m, x := b.along(c.widget.SizeRequest())
		m += 2 * c.padding
		if b.homogeneous {
			main = max(main, m)
		} else {
			main += m
		}
		cross = max(cross, x)
		n++
	}
	if n > 0 {
		if b.homogeneous {
			main *= n
		}
		main += (n - 1) * b.spacing
	}
	main += 2 * b.borderWidth
	cross += 2 * b.borderWidth
	if b.orientation == Horizontal {
		return Requisition{W: main, H: cross}
	}
	return Requisition{W: cross, H: main}
}

// sizes returns the main-axis size of every visible child, in packing
// order. Leftover space is divided with the largest remainder going to
// the first children: each of n sharing children gets extra/n and the
// first extra%n of them one cell more.
func (b *Box) sizes(r Rect, visible []boxChild) []int {
	sizes := make([]int, len(visible))
	n := len(visible)
	if b.homogeneous {
		total, _ := b.along(Requisition{W: r.W, H: r.H})
		total -= 2*b.borderWidth + (n-1)*b.spacing
		total = max(total, 0)
		for i := range sizes {
			sizes[i] = total / n
			if i < total%n {
				sizes[i]++
			}
		}
		return sizes
	}

	expanders := 0
	for i, c := range visible {
		m, _ := b.along(c.widget.SizeRequest())
		sizes[i] = m + 2*c.padding
		if c.expand {
			expanders++
		}
	}
	have, _ := b.along(Requisition{W: r.W, H: r.H})
	want, _ := b.along(b.SizeRequest())
	extra := have - want
	if expanders == 0 || extra <= 0 {
		return sizes
	}
	k := 0
	for i, c := range visible {
		if !c.expand {
			continue
		}
		sizes[i] += extra / expanders
		if k < extra%expanders {
			sizes[i]++
		}
		k++
	}
	return sizes
}

func (b *Box) Arrange(r Rect) {
	var visible []boxChild
	for _, c := range b.children {
		if c.widget.base().visible {
			visible = append(visible, c)
		}
	}
	if len(visible) == 0 {
		return
	}
	inner := r.Inset(b.borderWidth)
	sizes := b.sizes(r, visible)

	start, _ := b.along(Requisition{W: inner.X, H: inner.Y})
	length, _ := b.along(Requisition{W: inner.W, H: inner.H})
	end := start + length
	for i, c := range visible {
		size := sizes[i]
		var slot int
		if c.pack == PackStart {
			slot = start
			start += size + b.spacing
		} else {
			end -= size
			slot = end
			end -= b.spacing
		}

		pos, n := slot+c.padding, max(size-2*c.padding, 1)
		if !c.fill {
			req, _ := b.along(c.widget.SizeRequest())
			n = min(req, n)
			pos = slot + (size-n)/2
		}
		if b.orientation == Horizontal {
			c.widget.SizeAllocate(Rect{X: pos, Y: inner.Y, W: n, H: inner.H})
		} else {
			c.widget.SizeAllocate(Rect{X: inner.X, Y: pos, W: inner.W, H: n})
		}
	}
}
