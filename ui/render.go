package ui

import (
	"iter"
)

// rowPuller pulls rows from a content source one at a time.
type rowPuller struct {
	next func() (Row, bool)
	stop func()
}

func pullRows(v CanvasView) *rowPuller {
	next, stop := iter.Pull(v.canvas.Source().Rows(v.Left, v.Top, v.Cols, v.Rows, v.Attrs))
	return &rowPuller{next: next, stop: stop}
}

// shardBody is the per-view state while the rows of one shard are emitted.
// A nil puller emits unchanged columns.
type shardBody struct {
	done int
	rows *rowPuller
	view CanvasView
}

// shardTail carries a view that was not exhausted by its shard into the
// next one. gap is the width of the new views expected before it.
//
// Shards built by Canvas.Shards hold views spanning exactly the shard's
// rows, so their tails are always empty. Tails only arise from view lists
// with taller views, and a gap the next shard cannot fill exactly is an
// ErrInconsistent failure.
type shardTail struct {
	gap  int
	done int
	rows *rowPuller
	view CanvasView
}

// newShardBody merges the tail left by the previous shard with the views
// of the current one. New views fill the gaps between tail entries.
func newShardBody(views []CanvasView, tail []shardTail, open func(CanvasView) *rowPuller) ([]shardBody, error) {
	body := make([]shardBody, 0, len(views)+len(tail))
	i := 0
	for _, t := range tail {
		gap := t.gap
		for gap > 0 {
			if i >= len(views) {
				return nil, inconsistent("tail gap of %d cols not covered by views", t.gap)
			}
			v := views[i]
			i++
			gap -= v.Cols
			if gap < 0 {
				return nil, inconsistent("view of %d cols overflows tail gap of %d", v.Cols, t.gap)
			}
			body = append(body, shardBody{rows: open(v), view: v})
		}
		body = append(body, shardBody{done: t.done, rows: t.rows, view: t.view})
	}
	for _, v := range views[i:] {
		body = append(body, shardBody{rows: open(v), view: v})
	}
	return body, nil
}

// bodyRow pulls the next output row out of every body entry.
func bodyRow(body []shardBody) (Row, error) {
	var row Row
	for _, b := range body {
		if b.rows == nil {
			if n := len(row); n > 0 && row[n-1].Skip > 0 {
				row[n-1].Skip += b.view.Cols
			} else {
				row = append(row, Segment{Skip: b.view.Cols})
			}
			continue
		}
		r, ok := b.rows.next()
		if !ok {
			return nil, inconsistent("%v ran out of rows for a %dx%d view", b.view.canvas, b.view.Cols, b.view.Rows)
		}
		row = append(row, r...)
	}
	return row, nil
}

// bodyTail advances every entry by rows and returns the entries that still
// have rows left. Exhausted entries widen the gap of the next survivor.
func bodyTail(rows int, body []shardBody) ([]shardTail, error) {
	var tail []shardTail
	gap := 0
	for _, b := range body {
		done := b.done + rows
		if done > b.view.Rows {
			return nil, inconsistent("view of %d rows consumed %d", b.view.Rows, done)
		}
		if done == b.view.Rows {
			if b.rows != nil {
				b.rows.stop()
			}
			gap += b.view.Cols
			continue
		}
		tail = append(tail, shardTail{gap: gap, done: done, rows: b.rows, view: b.view})
		gap = 0
	}
	return tail, nil
}

// Content lazily yields every row of the composited canvas.
func (c *Canvas) Content() iter.Seq[Row] {
	return c.rows(nil)
}

// Changes yields the rows of the composited canvas with every view that
// does not touch a pending rectangle replaced by unchanged columns. The
// pending set is taken when Changes is called.
func (c *Canvas) Changes() iter.Seq[Row] {
	pending := c.TakePending()
	return c.rows(func(v CanvasView) bool {
		area := v.Area()
		for _, r := range pending {
			if area.Overlaps(r) {
				return false
			}
		}
		return true
	})
}

// rows walks the shards. Views for which skip reports true get no puller.
// A broken partition panics with an error wrapping ErrInconsistent.
func (c *Canvas) rows(skip func(CanvasView) bool) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		var open []*rowPuller
		defer func() {
			for _, p := range open {
				p.stop()
			}
		}()
		pull := func(v CanvasView) *rowPuller {
			if skip != nil && skip(v) {
				return nil
			}
			p := pullRows(v)
			open = append(open, p)
			return p
		}

		var tail []shardTail
		for _, s := range c.Shards() {
			body, err := newShardBody(s.Views, tail, pull)
			if err != nil {
				panic(err)
			}
			for range s.Rows {
				row, err := bodyRow(body)
				if err != nil {
					panic(err)
				}
				if !yield(row) {
					return
				}
			}
			if tail, err = bodyTail(s.Rows, body); err != nil {
				panic(err)
			}
		}
		if len(tail) > 0 {
			panic(inconsistent("%d views left unfinished by the last shard", len(tail)))
		}
	}
}
