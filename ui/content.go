package ui

import (
	"iter"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Attr names a palette entry. The empty Attr is the default attribute.
type Attr string

// AttrMap replaces attributes while a canvas is rendered through a view.
type AttrMap map[Attr]Attr

func (m AttrMap) apply(a Attr) Attr {
	if to, ok := m[a]; ok {
		return to
	}
	return a
}

// Charset selects how a run of text is interpreted by the backend.
type Charset uint8

const (
	CharsetDefault Charset = iota
	// CharsetDEC is the DEC special graphics set used for line drawing:
	// 'q' is a horizontal line, 'x' a vertical one, and so on.
	CharsetDEC
)

// Segment is one run of a row. A segment with Skip > 0 carries no text and
// marks Skip columns as unchanged since the last draw.
type Segment struct {
	Attr    Attr
	Charset Charset
	Text    string
	Skip    int
}

// Width returns the number of columns the segment covers.
func (s Segment) Width() int {
	if s.Skip > 0 {
		return s.Skip
	}
	return runewidth.StringWidth(s.Text)
}

// Row is one output line, a sequence of segments from left to right.
type Row []Segment

// Width returns the number of columns the row covers.
func (r Row) Width() int {
	w := 0
	for _, s := range r {
		w += s.Width()
	}
	return w
}

// String returns the row text, with unchanged columns shown as '.'.
func (r Row) String() string {
	var sb strings.Builder
	for _, s := range r {
		if s.Skip > 0 {
			sb.WriteString(strings.Repeat(".", s.Skip))
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// ContentSource produces the cells of a canvas.
//
// Rows yields exactly rows rows, each exactly cols columns wide, taken from
// the content window whose top-left corner is (left, top).
type ContentSource interface {
	Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row]
}

// Blank fills its area with spaces.
type Blank struct {
	Attr Attr
}

func (b Blank) Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row] {
	line := Row{{Attr: attrs.apply(b.Attr), Text: strings.Repeat(" ", cols)}}
	return repeatRow(line, rows)
}

// Solid fills its area with a single one-column character.
type Solid struct {
	Char    rune
	Attr    Attr
	Charset Charset
}

func (s Solid) Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row] {
	ch := s.Char
	if runewidth.RuneWidth(ch) != 1 {
		ch = ' '
	}
	line := Row{{Attr: attrs.apply(s.Attr), Charset: s.Charset, Text: strings.Repeat(string(ch), cols)}}
	return repeatRow(line, rows)
}

func repeatRow(line Row, rows int) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for range rows {
			if !yield(line) {
				return
			}
		}
	}
}

// Text holds pre-laid-out lines of styled runs. Lines narrower than the
// window are padded with spaces, missing lines are blank.
type Text struct {
	Lines []Row
	Attr  Attr // used for padding
}

// NewText returns a Text with one plain run per line.
func NewText(attr Attr, lines ...string) *Text {
	t := &Text{Attr: attr}
	for _, l := range lines {
		t.Lines = append(t.Lines, Row{{Attr: attr, Text: l}})
	}
	return t
}

func (t *Text) Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row] {
	return func(yield func(Row) bool) {
		for i := top; i < top+rows; i++ {
			var line Row
			if i >= 0 && i < len(t.Lines) {
				line = sliceRow(t.Lines[i], left, left+cols)
			}
			if w := line.Width(); w < cols {
				line = append(line, Segment{Attr: t.Attr, Text: strings.Repeat(" ", cols-w)})
			}
			for j := range line {
				line[j].Attr = attrs.apply(line[j].Attr)
			}
			if !yield(line) {
				return
			}
		}
	}
}

// sliceRow returns the columns [from, to) of row. A wide character cut by
// either edge is replaced by spaces so the result keeps its width.
func sliceRow(row Row, from, to int) Row {
	var out Row
	col := 0
	for _, seg := range row {
		if col >= to {
			break
		}
		var sb strings.Builder
		// kept reports whether the last base rune was written as itself
		kept := false
		for _, r := range seg.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				// combining marks follow the rune they modify
				if kept {
					sb.WriteRune(r)
				}
				continue
			}
			start, end := col, col+w
			col = end
			kept = false
			if end <= from || start >= to {
				continue
			}
			if start < from || end > to {
				sb.WriteString(strings.Repeat(" ", min(end, to)-max(start, from)))
				continue
			}
			sb.WriteRune(r)
			kept = true
		}
		if sb.Len() > 0 {
			out = append(out, Segment{Attr: seg.Attr, Charset: seg.Charset, Text: sb.String()})
		}
	}
	return out
}
