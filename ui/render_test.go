package ui

import (
	"errors"
	"iter"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCanvas_Changes(t *testing.T) {
	root := NewCanvas(Rect{0, 0, 10, 3}, Solid{Char: '#'})
	child := newVisibleChild(root, Rect{2, 1, 3, 1}, Solid{Char: 'x'})
	root.TakePending()

	child.MoveTo(5, 1)
	if diff := cmp.Diff([]Rect{{2, 1, 6, 1}}, root.Pending()); diff != "" {
		t.Errorf("Pending() mismatch (-want +got):\n%s", diff)
	}

	var got []Row
	for row := range root.Changes() {
		got = append(got, row)
	}
	want := []Row{
		{{Skip: 10}},
		{{Text: "#####"}, {Text: "xxx"}, {Skip: 2}},
		{{Skip: 10}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Changes() mismatch (-want +got):\n%s", diff)
	}
	if p := root.Pending(); len(p) != 0 {
		t.Errorf("Pending() after Changes() = %v, want none", p)
	}
}

func TestCanvas_ChangesNothingPending(t *testing.T) {
	root := NewCanvas(Rect{0, 0, 4, 2}, Solid{Char: '#'})
	newVisibleChild(root, Rect{1, 0, 2, 1}, Solid{Char: 'x'})
	root.TakePending()

	var got []string
	for row := range root.Changes() {
		got = append(got, row.String())
	}
	if diff := cmp.Diff([]string{"....", "...."}, got); diff != "" {
		t.Errorf("Changes() mismatch (-want +got):\n%s", diff)
	}
}

func TestCanvas_ContentAttrs(t *testing.T) {
	root := NewCanvas(Rect{0, 0, 3, 1}, Blank{Attr: "window"})
	newVisibleChild(root, Rect{1, 0, 1, 1}, NewText("title", "T"))

	var got Row
	for row := range root.Content() {
		got = append(got, row...)
	}
	want := Row{
		{Attr: "window", Text: " "},
		{Attr: "title", Text: "T"},
		{Attr: "window", Text: " "},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Content() mismatch (-want +got):\n%s", diff)
	}
}

func TestCanvas_ContentStopEarly(t *testing.T) {
	root := NewCanvas(Rect{0, 0, 4, 5}, Solid{Char: '#'})
	newVisibleChild(root, Rect{1, 1, 2, 3}, Solid{Char: 'x'})

	n := 0
	for range root.Content() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("rows before break = %d, want 2", n)
	}
}

func TestNewShardBody(t *testing.T) {
	open := func(CanvasView) *rowPuller { return nil }
	tests := []struct {
		name  string
		views []CanvasView
		tail  []shardTail
		want  int
		err   error
	}{
		{"no tail", []CanvasView{{Cols: 2}, {Cols: 3}}, nil, 2, nil},
		{"gap filled", []CanvasView{{Cols: 2}, {Cols: 1}}, []shardTail{{gap: 2}}, 3, nil},
		{"gap overflow", []CanvasView{{Cols: 3}}, []shardTail{{gap: 2}}, 0, ErrInconsistent},
		{"gap uncovered", nil, []shardTail{{gap: 2}}, 0, ErrInconsistent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, err := newShardBody(tt.views, tt.tail, open)
			if tt.err != nil {
				if !errors.Is(err, tt.err) {
					t.Errorf("newShardBody() error = %v, want %v", err, tt.err)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if len(body) != tt.want {
				t.Errorf("len(newShardBody()) = %d, want %d", len(body), tt.want)
			}
		})
	}
}

func TestBodyRowMergesSkips(t *testing.T) {
	body := []shardBody{
		{view: CanvasView{Cols: 2, Rows: 1}},
		{view: CanvasView{Cols: 3, Rows: 1}},
	}
	row, err := bodyRow(body)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Row{{Skip: 5}}, row); diff != "" {
		t.Errorf("bodyRow() mismatch (-want +got):\n%s", diff)
	}
}

// shortSource yields a single row whatever is asked.
type shortSource struct{}

func (shortSource) Rows(left, top, cols, rows int, attrs AttrMap) iter.Seq[Row] {
	return Solid{Char: 's'}.Rows(left, top, cols, 1, attrs)
}

func TestCanvas_ContentShortSource(t *testing.T) {
	root := NewCanvas(Rect{0, 0, 3, 2}, shortSource{})
	defer func() {
		err, _ := recover().(error)
		if !errors.Is(err, ErrInconsistent) {
			t.Errorf("recovered %v, want ErrInconsistent", err)
		}
	}()
	for range root.Content() {
	}
	t.Errorf("Content() of a short source did not panic")
}
