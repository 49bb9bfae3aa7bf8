package ui

import (
	"fmt"
	"slices"
)

// Canvas is a rectangular drawing surface in the rendering tree.
//
// A canvas owns its children; a child has at most one parent. Areas of all
// canvases in a tree share one coordinate space. Children are composited
// in insertion order, later children covering earlier ones.
//
// Only the root canvas keeps the set of invalid rectangles; every other
// canvas forwards invalidations to its parent.
type Canvas struct {
	area     Rect
	source   ContentSource
	parent   *Canvas
	children []*Canvas
	pending  []Rect
	visible  bool
	dirty    bool
	shards   []Shard
}

// NewCanvas returns a hidden canvas covering area whose cells come from
// src. A nil src renders as blank.
func NewCanvas(area Rect, src ContentSource) *Canvas {
	c := &Canvas{area: area, source: src}
	c.Invalidate()
	return c
}

func (c *Canvas) String() string {
	return fmt.Sprintf("Canvas%v", c.area)
}

func (c *Canvas) Area() Rect          { return c.area }
func (c *Canvas) Parent() *Canvas     { return c.parent }
func (c *Canvas) Visible() bool       { return c.visible }
func (c *Canvas) Dirty() bool         { return c.dirty }
func (c *Canvas) Children() []*Canvas { return slices.Clone(c.children) }

// Source returns the content source, Blank when none was set.
func (c *Canvas) Source() ContentSource {
	if c.source == nil {
		return Blank{}
	}
	return c.source
}

// SetSource replaces the content source and invalidates the canvas.
func (c *Canvas) SetSource(src ContentSource) {
	c.source = src
	c.Invalidate()
}

// AddChild appends child on top of the existing children and takes
// ownership of it, detaching it from any previous parent first. Adding a
// canvas under itself or one of its descendants panics with an error
// wrapping ErrCycle.
func (c *Canvas) AddChild(child *Canvas) {
	for a := c; a != nil; a = a.parent {
		if a == child {
			panic(fmt.Errorf("add %v under %v: %w", child, c, ErrCycle))
		}
	}
	child.Detach()
	child.parent = c
	if len(child.pending) > 0 {
		pending := child.pending
		child.pending = nil
		for _, r := range pending {
			c.InvalidateArea(r)
		}
	}
	c.children = append(c.children, child)
	c.InvalidateArea(child.area)
}

// RemoveChild detaches child and invalidates the area it vacated.
// Removing a canvas that is not a child is a no-op.
func (c *Canvas) RemoveChild(child *Canvas) {
	i := slices.Index(c.children, child)
	if i < 0 {
		return
	}
	c.children = slices.Delete(c.children, i, i+1)
	child.parent = nil
	c.InvalidateArea(child.area)
}

// Detach removes c from its parent, if any.
func (c *Canvas) Detach() {
	if c.parent != nil {
		c.parent.RemoveChild(c)
	}
}

// MoveTo moves the canvas keeping its size.
func (c *Canvas) MoveTo(x, y int) {
	c.MoveResize(Rect{X: x, Y: y, W: c.area.W, H: c.area.H})
}

// Resize changes the size of the canvas keeping its position.
func (c *Canvas) Resize(w, h int) {
	c.MoveResize(Rect{X: c.area.X, Y: c.area.Y, W: w, H: h})
}

// MoveResize sets the area of the canvas. The union of the old and the
// new area is invalidated; an unchanged area does nothing.
func (c *Canvas) MoveResize(r Rect) {
	old := c.area
	if old == r {
		return
	}
	c.area = r
	c.dirty = true
	if c.parent != nil {
		c.parent.InvalidateArea(old.Union(r))
	} else {
		c.InvalidateArea(old.Union(r))
	}
}

// InvalidateArea records r as needing a redraw and marks the path to the
// root dirty.
func (c *Canvas) InvalidateArea(r Rect) {
	if c.parent != nil {
		c.parent.InvalidateArea(r)
	} else if !r.Empty() && !slices.Contains(c.pending, r) {
		c.pending = append(c.pending, r)
	}
	for n := c; n != nil; n = n.parent {
		n.dirty = true
	}
}

// Invalidate invalidates the whole canvas area.
func (c *Canvas) Invalidate() {
	c.InvalidateArea(c.area)
}

// Show makes the canvas take part in compositing.
func (c *Canvas) Show() {
	c.visible = true
	c.Invalidate()
}

// Hide removes the canvas from compositing without detaching it.
func (c *Canvas) Hide() {
	c.visible = false
	c.Invalidate()
}

// Pending returns a copy of the invalid rectangles recorded on the root.
func (c *Canvas) Pending() []Rect {
	return slices.Clone(c.pending)
}

// TakePending returns the recorded invalid rectangles and clears them.
func (c *Canvas) TakePending() []Rect {
	p := c.pending
	c.pending = nil
	return p
}

// Shards returns the row partition of the canvas, recomputing it when the
// canvas or one of its descendants changed since the last call.
func (c *Canvas) Shards() []Shard {
	if c.dirty {
		shards, err := computeShards(c)
		if err != nil {
			panic(err)
		}
		c.shards = shards
		c.dirty = false
	}
	return c.shards
}
