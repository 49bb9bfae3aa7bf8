package ui

import "fmt"

// Rect is a rectangle in character cells.
// A rectangle with a non-positive width or height is empty.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) String() string {
	return fmt.Sprintf("(%d,%d %dx%d)", r.X, r.Y, r.W, r.H)
}

func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

func (r Rect) Right() int  { return r.X + r.W }
func (r Rect) Bottom() int { return r.Y + r.H }

// Contains reports whether the cell (x, y) lies inside r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && y >= r.Y && x < r.Right() && y < r.Bottom()
}

// Intersect returns the common area of r and o,
// or the zero Rect if they do not overlap.
func (r Rect) Intersect(o Rect) Rect {
	x1, y1 := max(r.X, o.X), max(r.Y, o.Y)
	x2, y2 := min(r.Right(), o.Right()), min(r.Bottom(), o.Bottom())
	if x2 <= x1 || y2 <= y1 {
		return Rect{}
	}
	return Rect{X: x1, Y: y1, W: x2 - x1, H: y2 - y1}
}

// Overlaps reports whether r and o share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return !r.Intersect(o).Empty()
}

// Union returns the smallest rectangle containing both r and o.
// Empty rectangles do not contribute.
func (r Rect) Union(o Rect) Rect {
	if r.Empty() {
		return o
	}
	if o.Empty() {
		return r
	}
	x, y := min(r.X, o.X), min(r.Y, o.Y)
	return Rect{
		X: x,
		Y: y,
		W: max(r.Right(), o.Right()) - x,
		H: max(r.Bottom(), o.Bottom()) - y,
	}
}

// Difference returns r minus o as up to four non-overlapping bands:
// above, left of, right of and below the intersection.
func (r Rect) Difference(o Rect) []Rect {
	in := r.Intersect(o)
	if in.Empty() {
		if r.Empty() {
			return nil
		}
		return []Rect{r}
	}
	if in == r {
		return nil
	}
	parts := []Rect{
		{X: r.X, Y: r.Y, W: r.W, H: in.Y - r.Y},
		{X: r.X, Y: in.Y, W: in.X - r.X, H: in.H},
		{X: in.Right(), Y: in.Y, W: r.Right() - in.Right(), H: in.H},
		{X: r.X, Y: in.Bottom(), W: r.W, H: r.Bottom() - in.Bottom()},
	}
	var out []Rect
	for _, p := range parts {
		if !p.Empty() {
			out = append(out, p)
		}
	}
	return out
}

// Inset shrinks r by n cells on every side, never below zero size.
func (r Rect) Inset(n int) Rect {
	return Rect{X: r.X + n, Y: r.Y + n, W: max(r.W-2*n, 0), H: max(r.H-2*n, 0)}
}

// Requisition is the preferred size of a widget.
type Requisition struct {
	W, H int
}
