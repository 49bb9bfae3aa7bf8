package ui

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

type Wrap int

const (
	WrapClip Wrap = iota
	WrapAny
	WrapSpace
)

// LayoutSegment is a run of a laid out line. A segment without text is
// Width columns of padding; otherwise Offset is the byte offset of Text
// in the source string.
type LayoutSegment struct {
	Width  int
	Offset int
	Text   string
}

// TextLayout splits text into lines of at most width columns.
type TextLayout interface {
	Supports(align Align, wrap Wrap) bool
	Layout(text string, width int, align Align, wrap Wrap) [][]LayoutSegment
}

// ClipLayout keeps one line per source line and cuts what does not fit.
// Every returned line is exactly width columns wide.
type ClipLayout struct{}

func (ClipLayout) Supports(align Align, wrap Wrap) bool {
	return wrap == WrapClip && align >= AlignLeft && align <= AlignRight
}

func (ClipLayout) Layout(text string, width int, align Align, wrap Wrap) [][]LayoutSegment {
	var lines [][]LayoutSegment
	offset := 0
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, clipLine(line, offset, width, align))
		offset += len(line) + 1
	}
	return lines
}

func clipLine(line string, offset, width int, align Align) []LayoutSegment {
	if width <= 0 {
		return nil
	}
	if runewidth.StringWidth(line) > width {
		line = runewidth.Truncate(line, width, "")
	}
	w := runewidth.StringWidth(line)
	pad := width - w
	var lead int
	switch align {
	case AlignCenter:
		lead = pad / 2
	case AlignRight:
		lead = pad
	}

	var segs []LayoutSegment
	if lead > 0 {
		segs = append(segs, LayoutSegment{Width: lead})
	}
	if w > 0 {
		segs = append(segs, LayoutSegment{Width: w, Offset: offset, Text: line})
	}
	if pad-lead > 0 {
		segs = append(segs, LayoutSegment{Width: pad - lead})
	}
	return segs
}
