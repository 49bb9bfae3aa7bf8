package ui

import (
	"errors"
	"fmt"
)

var (
	// ErrTrim is returned for negative or overflowing trims.
	ErrTrim = errors.New("trim out of range")
	// ErrInconsistent reports a broken shard partition. It is a defect in
	// the compositor and surfaces as a panic.
	ErrInconsistent = errors.New("inconsistent shards")
)

func inconsistent(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInconsistent)
}

// CanvasView is a window into the content of a canvas. Left and Top are
// relative to the canvas. Views are values; trimming returns a new view.
type CanvasView struct {
	Left, Top  int
	Cols, Rows int
	Attrs      AttrMap
	canvas     *Canvas
}

// Canvas returns the canvas supplying the view's cells.
func (v CanvasView) Canvas() *Canvas { return v.canvas }

// Area returns the cells covered by the view, in the canvas coordinate
// space.
func (v CanvasView) Area() Rect {
	if v.canvas == nil {
		return Rect{X: v.Left, Y: v.Top, W: v.Cols, H: v.Rows}
	}
	return Rect{X: v.canvas.area.X + v.Left, Y: v.canvas.area.Y + v.Top, W: v.Cols, H: v.Rows}
}

// TrimTop drops the first n rows.
func (v CanvasView) TrimTop(n int) (CanvasView, error) {
	if n < 0 || n > v.Rows {
		return v, fmt.Errorf("trim top %d of %d rows: %w", n, v.Rows, ErrTrim)
	}
	v.Top += n
	v.Rows -= n
	return v, nil
}

// TrimRows keeps only the first n rows.
func (v CanvasView) TrimRows(n int) (CanvasView, error) {
	if n < 0 || n > v.Rows {
		return v, fmt.Errorf("keep %d of %d rows: %w", n, v.Rows, ErrTrim)
	}
	v.Rows = n
	return v, nil
}

// TrimLeft drops the first n columns.
func (v CanvasView) TrimLeft(n int) (CanvasView, error) {
	if n < 0 || n > v.Cols {
		return v, fmt.Errorf("trim left %d of %d cols: %w", n, v.Cols, ErrTrim)
	}
	v.Left += n
	v.Cols -= n
	return v, nil
}

// TrimCols keeps only the first n columns.
func (v CanvasView) TrimCols(n int) (CanvasView, error) {
	if n < 0 || n > v.Cols {
		return v, fmt.Errorf("keep %d of %d cols: %w", n, v.Cols, ErrTrim)
	}
	v.Cols = n
	return v, nil
}

// Shard is a band of Rows rows. Every view of a shard spans exactly Rows
// rows and the views, left to right, cover the full canvas width.
type Shard struct {
	Rows  int
	Views []CanvasView
}

// Width returns the sum of the view widths.
func (s Shard) Width() int {
	w := 0
	for _, v := range s.Views {
		w += v.Cols
	}
	return w
}

// computeShards composites c's visible children over c itself. Children
// are spliced in insertion order, so a later child covers earlier ones.
func computeShards(c *Canvas) ([]Shard, error) {
	if c.area.H <= 0 {
		return nil, nil
	}
	shards := []Shard{{
		Rows:  c.area.H,
		Views: []CanvasView{{Cols: c.area.W, Rows: c.area.H, canvas: c}},
	}}
	for _, child := range c.children {
		if !child.visible {
			continue
		}
		clip := child.area.Intersect(c.area)
		if clip.Empty() {
			continue
		}
		inner := child.Shards()
		if clip != child.area {
			var err error
			inner, err = shardsWindow(inner, Rect{
				X: clip.X - child.area.X,
				Y: clip.Y - child.area.Y,
				W: clip.W,
				H: clip.H,
			})
			if err != nil {
				return nil, fmt.Errorf("clip %v to %v: %w", child, c, err)
			}
		}
		rel := Rect{X: clip.X - c.area.X, Y: clip.Y - c.area.Y, W: clip.W, H: clip.H}
		var err error
		shards, err = spliceShards(shards, inner, rel, c.area.W, c.area.H)
		if err != nil {
			return nil, fmt.Errorf("splice %v into %v: %w", child, c, err)
		}
	}
	return shards, nil
}

// spliceShards replaces the region r of a cols x rows shard list with
// inner, whose rows sum to r.H and whose shards are r.W wide.
func spliceShards(shards, inner []Shard, r Rect, cols, rows int) ([]Shard, error) {
	top, bottom := r.Y, rows-r.Bottom()
	left, right := r.X, cols-r.Right()

	var above, below []Shard
	middle := shards
	var err error
	if top > 0 {
		if above, err = shardsKeepRows(shards, top); err != nil {
			return nil, err
		}
		if middle, err = shardsTrimTop(shards, top); err != nil {
			return nil, err
		}
	}
	if bottom > 0 {
		if below, err = shardsTrimTop(middle, r.H); err != nil {
			return nil, err
		}
		if middle, err = shardsKeepRows(middle, r.H); err != nil {
			return nil, err
		}
	}

	bands := make([][]Shard, 0, 3)
	if left > 0 {
		band, err := shardsColumns(middle, 0, left)
		if err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}
	bands = append(bands, inner)
	if right > 0 {
		band, err := shardsColumns(middle, r.Right(), right)
		if err != nil {
			return nil, err
		}
		bands = append(bands, band)
	}
	if len(bands) > 1 {
		if middle, err = shardsJoin(bands...); err != nil {
			return nil, err
		}
	} else {
		middle = inner
	}

	out := make([]Shard, 0, len(above)+len(middle)+len(below))
	out = append(out, above...)
	out = append(out, middle...)
	return append(out, below...), nil
}

// shardsWindow cuts the region r, relative to the shard list, out of
// shards.
func shardsWindow(shards []Shard, r Rect) ([]Shard, error) {
	var err error
	if shards, err = shardsTrimTop(shards, r.Y); err != nil {
		return nil, err
	}
	if shards, err = shardsKeepRows(shards, r.H); err != nil {
		return nil, err
	}
	return shardsColumns(shards, r.X, r.W)
}

// shardsTrimTop returns shards without their first top rows.
func shardsTrimTop(shards []Shard, top int) ([]Shard, error) {
	if top < 0 {
		return nil, fmt.Errorf("trim top %d rows: %w", top, ErrTrim)
	}
	for i, s := range shards {
		if top >= s.Rows {
			top -= s.Rows
			continue
		}
		if top == 0 {
			return shards[i:], nil
		}
		views := make([]CanvasView, len(s.Views))
		for j, v := range s.Views {
			tv, err := v.TrimTop(top)
			if err != nil {
				return nil, inconsistent("shard of %d rows: %v", s.Rows, err)
			}
			views[j] = tv
		}
		out := make([]Shard, 0, len(shards)-i)
		out = append(out, Shard{Rows: s.Rows - top, Views: views})
		return append(out, shards[i+1:]...), nil
	}
	if top > 0 {
		return nil, fmt.Errorf("trim top %d rows past the last shard: %w", top, ErrTrim)
	}
	return nil, nil
}

// shardsKeepRows returns the first n rows of shards.
func shardsKeepRows(shards []Shard, n int) ([]Shard, error) {
	if n < 0 {
		return nil, fmt.Errorf("keep %d rows: %w", n, ErrTrim)
	}
	var out []Shard
	done := 0
	for _, s := range shards {
		if done >= n {
			break
		}
		if done+s.Rows <= n {
			out = append(out, s)
			done += s.Rows
			continue
		}
		keep := n - done
		views := make([]CanvasView, len(s.Views))
		for j, v := range s.Views {
			tv, err := v.TrimRows(keep)
			if err != nil {
				return nil, inconsistent("shard of %d rows: %v", s.Rows, err)
			}
			views[j] = tv
		}
		out = append(out, Shard{Rows: keep, Views: views})
		done = n
	}
	if done < n {
		return nil, fmt.Errorf("keep %d rows of %d: %w", n, done, ErrTrim)
	}
	return out, nil
}

// shardsColumns returns the column window [left, left+cols) of every
// shard. Views straddling an edge are trimmed, views outside are dropped.
func shardsColumns(shards []Shard, left, cols int) ([]Shard, error) {
	if left < 0 || cols <= 0 {
		return nil, fmt.Errorf("column window %d+%d: %w", left, cols, ErrTrim)
	}
	right := left + cols
	out := make([]Shard, 0, len(shards))
	for _, s := range shards {
		var views []CanvasView
		col := 0
		for _, v := range s.Views {
			next := col + v.Cols
			if next <= left || col >= right {
				col = next
				continue
			}
			var err error
			if col < left {
				if v, err = v.TrimLeft(left - col); err != nil {
					return nil, inconsistent("%v", err)
				}
				col = left
			}
			if next > right {
				if v, err = v.TrimCols(right - col); err != nil {
					return nil, inconsistent("%v", err)
				}
			}
			views = append(views, v)
			col = next
		}
		if col < right || len(views) == 0 {
			return nil, inconsistent("shard %d cols wide has no columns %d..%d", col, left, right)
		}
		out = append(out, Shard{Rows: s.Rows, Views: views})
	}
	return out, nil
}

// shardsJoin places shard lists side by side. All lists must cover the
// same number of rows; the result is split wherever any input is.
func shardsJoin(lists ...[]Shard) ([]Shard, error) {
	type cursor struct {
		shards []Shard
		i      int
		done   int // rows of shards[i] already emitted
	}
	cs := make([]cursor, len(lists))
	for i, l := range lists {
		cs[i].shards = l
	}

	var out []Shard
	for {
		ended := 0
		n := -1
		for _, c := range cs {
			if c.i == len(c.shards) {
				ended++
				continue
			}
			if left := c.shards[c.i].Rows - c.done; n < 0 || left < n {
				n = left
			}
		}
		if ended == len(cs) {
			return out, nil
		}
		if ended > 0 {
			return nil, inconsistent("joined shard lists differ in rows")
		}

		var views []CanvasView
		for k := range cs {
			c := &cs[k]
			s := c.shards[c.i]
			for _, v := range s.Views {
				if c.done > 0 || n < s.Rows {
					var err error
					if v, err = v.TrimTop(c.done); err != nil {
						return nil, inconsistent("%v", err)
					}
					if v, err = v.TrimRows(n); err != nil {
						return nil, inconsistent("%v", err)
					}
				}
				views = append(views, v)
			}
			c.done += n
			if c.done == s.Rows {
				c.i++
				c.done = 0
			}
		}
		out = append(out, Shard{Rows: n, Views: views})
	}
}
