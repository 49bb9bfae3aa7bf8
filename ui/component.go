package ui

import (
	"iter"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Misc holds the alignment and padding of simple leaf widgets.
// Alignments range from 0 (left, top) to 1 (right, bottom).
type Misc struct {
	Base
	xalign, yalign float64
	xpad, ypad     int
}

func (m *Misc) Alignment() (x, y float64) { return m.xalign, m.yalign }
func (m *Misc) Padding() (x, y int)       { return m.xpad, m.ypad }

// SetAlignment places the content inside a larger allocation.
func (m *Misc) SetAlignment(x, y float64) {
	x, y = min(max(x, 0), 1), min(max(y, 0), 1)
	if x != m.xalign || y != m.yalign {
		m.xalign, m.yalign = x, y
		m.QueueDraw()
	}
}

// SetPadding sets the empty columns kept left and right of the content
// and the empty rows above and below it.
func (m *Misc) SetPadding(x, y int) {
	x, y = max(x, 0), max(y, 0)
	if x != m.xpad || y != m.ypad {
		m.xpad, m.ypad = x, y
		m.QueueResize()
	}
}

// origin returns the offset of a w x h block inside the allocation,
// relative to the allocation.
func (m *Misc) origin(w, h int) (x, y int) {
	alloc, _ := m.Allocation()
	availW, availH := max(alloc.W-2*m.xpad, 0), max(alloc.H-2*m.ypad, 0)
	x = m.xpad + int(float64(availW-w)*m.xalign)
	y = m.ypad + int(float64(availH-h)*m.yalign)
	return x, y
}

// Label displays a short, possibly multi-line, text.
type Label struct {
	Misc
	text    string
	attr    Attr
	justify Align
	layout  TextLayout
}

func NewLabel(text string) *Label {
	l := &Label{text: text, layout: ClipLayout{}}
	l.Init(l)
	l.xalign, l.yalign = 0.5, 0.5
	return l
}

func (l *Label) Text() string { return l.text }

// SetText replaces the text and renegotiates the size of the label.
func (l *Label) SetText(text string) {
	if text == l.text {
		return
	}
	l.text = text
	l.QueueResize()
	l.QueueDraw()
}

// Attr sets the attribute the text is drawn with.
func (l *Label) Attr(a Attr) *Label {
	l.attr = a
	l.QueueDraw()
	return l
}

// Justify sets the alignment of the lines relative to each other.
func (l *Label) Justify(a Align) *Label {
	l.justify = a
	l.QueueDraw()
	return l
}

// Layout replaces the text layout. Layouts not supporting clipping with
// the current justification are ignored.
func (l *Label) Layout(tl TextLayout) *Label {
	if tl != nil && tl.Supports(l.justify, WrapClip) {
		l.layout = tl
		l.QueueDraw()
	}
	return l
}

func (l *Label) textSize() (w, h int) {
	lines := strings.Split(l.text, "\n")
	for _, line := range lines {
		w = max(w, runewidth.StringWidth(line))
	}
	return w, len(lines)
}

func (l *Label) Measure() Requisition {
	w, h := l.textSize()
	return Requisition{W: w + 2*l.xpad, H: h + 2*l.ypad}
}

func (l *Label) Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row] {
	return l.content().Rows(left, top, cols, rows, attrs)
}

// content lays the text out inside the current allocation.
func (l *Label) content() *Text {
	alloc, _ := l.Allocation()
	tw, th := l.textSize()
	w := min(tw, max(alloc.W-2*l.xpad, 0))
	h := min(th, max(alloc.H-2*l.ypad, 0))
	x0, y0 := l.origin(w, h)

	t := &Text{Attr: l.attr, Lines: make([]Row, y0+h)}
	for i, line := range l.layout.Layout(l.text, w, l.justify, WrapClip) {
		if i >= h {
			break
		}
		var row Row
		if x0 > 0 {
			row = append(row, Segment{Attr: l.attr, Text: strings.Repeat(" ", x0)})
		}
		for _, seg := range line {
			text := seg.Text
			if text == "" {
				text = strings.Repeat(" ", seg.Width)
			}
			row = append(row, Segment{Attr: l.attr, Text: text})
		}
		t.Lines[y0+i] = row
	}
	return t
}

// Separator is a horizontal or vertical line drawn with the DEC line
// characters in the "border" attribute. A horizontal separator draws its
// line on the last row of its allocation, a vertical one on the last column.
type Separator struct {
	Base
	vertical bool
}

func NewHSeparator() *Separator {
	s := &Separator{}
	s.Init(s)
	s.SetName("HSeparator")
	return s
}

func NewVSeparator() *Separator {
	s := &Separator{vertical: true}
	s.Init(s)
	s.SetName("VSeparator")
	return s
}

func (s *Separator) Measure() Requisition { return Requisition{W: 1, H: 1} }

func (s *Separator) Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row] {
	alloc, _ := s.Allocation()
	t := &Text{Lines: make([]Row, alloc.H)}
	if alloc.W == 0 || alloc.H == 0 {
		return t.Rows(left, top, cols, rows, attrs)
	}
	if !s.vertical {
		t.Lines[alloc.H-1] = Row{{Attr: "border", Charset: CharsetDEC, Text: strings.Repeat("q", alloc.W)}}
		return t.Rows(left, top, cols, rows, attrs)
	}
	for i := range t.Lines {
		t.Lines[i] = Row{
			{Text: strings.Repeat(" ", alloc.W-1)},
			{Attr: "border", Charset: CharsetDEC, Text: "x"},
		}
	}
	return t.Rows(left, top, cols, rows, attrs)
}
