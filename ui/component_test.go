package ui

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClipLayout(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		width int
		align Align
		want  [][]LayoutSegment
	}{
		{
			name:  "right",
			text:  "hello\nhi",
			width: 4,
			align: AlignRight,
			want: [][]LayoutSegment{
				{{Width: 4, Offset: 0, Text: "hell"}},
				{{Width: 2}, {Width: 2, Offset: 6, Text: "hi"}},
			},
		},
		{
			name:  "left",
			text:  "ab",
			width: 5,
			align: AlignLeft,
			want:  [][]LayoutSegment{{{Width: 2, Text: "ab"}, {Width: 3}}},
		},
		{
			name:  "center",
			text:  "ab",
			width: 5,
			align: AlignCenter,
			want:  [][]LayoutSegment{{{Width: 1}, {Width: 2, Text: "ab"}, {Width: 2}}},
		},
		{
			name:  "empty line",
			text:  "a\n\nb",
			width: 1,
			align: AlignLeft,
			want: [][]LayoutSegment{
				{{Width: 1, Text: "a"}},
				{{Width: 1}},
				{{Width: 1, Offset: 3, Text: "b"}},
			},
		},
		{
			name:  "wide runes",
			text:  "日本語",
			width: 5,
			align: AlignLeft,
			want:  [][]LayoutSegment{{{Width: 4, Text: "日本"}, {Width: 1}}},
		},
		{
			name:  "zero width",
			text:  "abc",
			width: 0,
			align: AlignLeft,
			want:  [][]LayoutSegment{nil},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClipLayout{}.Layout(tt.text, tt.width, tt.align, WrapClip)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Layout() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClipLayout_Supports(t *testing.T) {
	var l ClipLayout
	if !l.Supports(AlignCenter, WrapClip) {
		t.Errorf("Supports(AlignCenter, WrapClip) = false")
	}
	if l.Supports(AlignLeft, WrapSpace) {
		t.Errorf("Supports(AlignLeft, WrapSpace) = true")
	}
}

func labelRows(l *Label) []string {
	r, _ := l.Allocation()
	var out []string
	for row := range l.Rows(0, 0, r.W, r.H, nil) {
		out = append(out, row.String())
	}
	return out
}

func TestLabel_Content(t *testing.T) {
	tests := []struct {
		name  string
		setup func(l *Label)
		text  string
		alloc Rect
		want  []string
	}{
		{
			name:  "centered",
			text:  "ab\ncdef",
			alloc: Rect{0, 0, 8, 4},
			want:  []string{"        ", "  ab    ", "  cdef  ", "        "},
		},
		{
			name: "top left with padding",
			setup: func(l *Label) {
				l.SetAlignment(0, 0)
				l.SetPadding(1, 1)
			},
			text:  "ab",
			alloc: Rect{0, 0, 5, 3},
			want:  []string{"     ", " ab  ", "     "},
		},
		{
			name: "bottom right justified",
			setup: func(l *Label) {
				l.SetAlignment(1, 1)
				l.Justify(AlignRight)
			},
			text:  "a\nbcd",
			alloc: Rect{0, 0, 6, 3},
			want:  []string{"      ", "     a", "   bcd"},
		},
		{
			name:  "clipped",
			text:  "abcdef\n1\n2",
			alloc: Rect{0, 0, 3, 2},
			want:  []string{"abc", "1  "},
		},
		{
			name: "alignment clamped",
			setup: func(l *Label) {
				l.SetAlignment(-3, 7)
			},
			text:  "x",
			alloc: Rect{0, 0, 3, 2},
			want:  []string{"   ", "x  "},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLabel(tt.text)
			if tt.setup != nil {
				tt.setup(l)
			}
			l.SizeAllocate(tt.alloc)
			if diff := cmp.Diff(tt.want, labelRows(l)); diff != "" {
				t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLabel_Measure(t *testing.T) {
	l := NewLabel("ab\n日本語")
	if got := l.SizeRequest(); got != (Requisition{6, 2}) {
		t.Errorf("SizeRequest() = %v, want {6 2}", got)
	}
	l.SetPadding(2, 1)
	if got := l.SizeRequest(); got != (Requisition{10, 4}) {
		t.Errorf("SizeRequest() with padding = %v, want {10 4}", got)
	}
}

func TestLabel_Attr(t *testing.T) {
	l := NewLabel("a").Attr("status")
	l.SizeAllocate(Rect{0, 0, 3, 1})
	var got []Attr
	for row := range l.Rows(0, 0, 3, 1, AttrMap{"status": "highlight"}) {
		for _, seg := range row {
			got = append(got, seg.Attr)
		}
	}
	for _, a := range got {
		if a != "highlight" {
			t.Errorf("segment attrs = %v, want all highlight", got)
			break
		}
	}
}

func TestSeparator(t *testing.T) {
	tests := []struct {
		name  string
		sep   *Separator
		alloc Rect
		want  []string
	}{
		{"horizontal", NewHSeparator(), Rect{0, 0, 4, 2}, []string{"    ", "qqqq"}},
		{"vertical", NewVSeparator(), Rect{2, 1, 3, 2}, []string{"  x", "  x"}},
		{"vertical one column", NewVSeparator(), Rect{0, 0, 1, 1}, []string{"x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.sep.SizeAllocate(tt.alloc)
			var got []string
			for row := range tt.sep.Rows(0, 0, tt.alloc.W, tt.alloc.H, nil) {
				got = append(got, row.String())
				for _, seg := range row {
					if strings.TrimSpace(seg.Text) != "" && (seg.Charset != CharsetDEC || seg.Attr != "border") {
						t.Errorf("line segment %+v, want DEC in the border attribute", seg)
					}
				}
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Rows() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSeparator_Measure(t *testing.T) {
	h, v := NewHSeparator(), NewVSeparator()
	if got := h.SizeRequest(); got != (Requisition{1, 1}) {
		t.Errorf("SizeRequest() = %v, want {1 1}", got)
	}
	if h.Name() != "HSeparator" || v.Name() != "VSeparator" {
		t.Errorf("Name() = %q, %q", h.Name(), v.Name())
	}
}
