package ui

import (
	"bufio"
	"fmt"
	"io"
	"iter"
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"
)

// TextScreen writes rows as ANSI escape sequences to an io.Writer and
// keeps a copy of the cells. It has no input.
type TextScreen struct {
	out        io.Writer
	palette    Palette
	cols, rows int
	cells      []cell
	started    bool
}

type cell struct {
	ch   rune
	attr Attr
}

// NewTextScreen returns a screen writing to w. The size is taken from the
// terminal when w is one, otherwise it is cols x rows.
func NewTextScreen(w io.Writer, p Palette, cols, rows int) *TextScreen {
	if p == nil {
		p = DefaultPalette(false)
	}
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			cols, rows = tw, th
		}
	}
	s := &TextScreen{out: w, palette: p, cols: cols, rows: rows}
	s.cells = make([]cell, cols*rows)
	s.reset()
	return s
}

func (s *TextScreen) reset() {
	for i := range s.cells {
		s.cells[i] = cell{ch: ' '}
	}
}

func (s *TextScreen) Start() error {
	s.started = true
	_, err := io.WriteString(s.out, "\033[?1049h\033[2J\033[H\033[?25l")
	return err
}

func (s *TextScreen) Stop() {
	if !s.started {
		return
	}
	s.started = false
	io.WriteString(s.out, "\033[0m\033[?25h\033[?1049l")
}

func (s *TextScreen) Clear() {
	s.reset()
	io.WriteString(s.out, "\033[0m\033[2J")
}

func (s *TextScreen) Size() (int, int) { return s.cols, s.rows }

func (s *TextScreen) Events() <-chan tcell.Event { return nil }

// Draw updates the cells and writes the changed runs. Unchanged segments
// move the cursor instead of writing.
func (s *TextScreen) Draw(rows iter.Seq[Row]) error {
	buf := bufio.NewWriter(s.out)
	y := 0
	for row := range rows {
		if y >= s.rows {
			break
		}
		x := 0
		for _, seg := range row {
			if seg.Skip > 0 {
				x += seg.Skip
				continue
			}
			if x >= s.cols {
				break
			}
			fmt.Fprintf(buf, "\033[%d;%dH%s", y+1, x+1, styleToANSI(s.palette.Style(seg.Attr)))
			for _, r := range seg.Text {
				if seg.Charset == CharsetDEC {
					r = decRune(r)
				}
				w := runewidth.RuneWidth(r)
				if w == 0 || x+w > s.cols {
					continue
				}
				s.cells[y*s.cols+x] = cell{ch: r, attr: seg.Attr}
				for i := 1; i < w; i++ {
					s.cells[y*s.cols+x+i] = cell{attr: seg.Attr}
				}
				buf.WriteRune(r)
				x += w
			}
		}
		y++
	}
	buf.WriteString("\033[0m")
	return buf.Flush()
}

// Lines returns the text of the cells, one string per row.
func (s *TextScreen) Lines() []string {
	lines := make([]string, s.rows)
	var sb strings.Builder
	for y := range s.rows {
		sb.Reset()
		for _, c := range s.cells[y*s.cols : (y+1)*s.cols] {
			if c.ch != 0 {
				sb.WriteRune(c.ch)
			}
		}
		lines[y] = sb.String()
	}
	return lines
}

// styleToANSI returns the SGR sequence selecting st.
func styleToANSI(st Style) string {
	codes := []string{"0"}
	if c := tcell.GetColor(st.FG); st.FG != "" && c.Valid() {
		r, g, b := c.RGB()
		codes = append(codes, fmt.Sprintf("38;2;%d;%d;%d", r, g, b))
	}
	if c := tcell.GetColor(st.BG); st.BG != "" && c.Valid() {
		r, g, b := c.RGB()
		codes = append(codes, fmt.Sprintf("48;2;%d;%d;%d", r, g, b))
	}
	if st.Bold {
		codes = append(codes, "1")
	}
	if st.Italic {
		codes = append(codes, "3")
	}
	if st.Underline {
		codes = append(codes, "4")
	}
	if st.Reverse {
		codes = append(codes, "7")
	}
	return "\033[" + strings.Join(codes, ";") + "m"
}
