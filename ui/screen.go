package ui

import (
	"iter"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Screen is the character-cell backend a session draws to.
type Screen interface {
	Start() error
	Stop()
	Clear()
	Size() (cols, rows int)
	// Draw writes rows from the top of the screen. Columns of unchanged
	// segments keep their previous content.
	Draw(rows iter.Seq[Row]) error
	// Events delivers input and resize events while the screen is
	// started.
	Events() <-chan tcell.Event
}

// TcellScreen draws through a tcell.Screen.
type TcellScreen struct {
	screen  tcell.Screen
	palette Palette
	events  chan tcell.Event
	quit    chan struct{}
}

// NewTcellScreen wraps s, typically from tcell.NewScreen or
// tcell.NewSimulationScreen.
func NewTcellScreen(s tcell.Screen, p Palette) *TcellScreen {
	if p == nil {
		p = DefaultPalette(false)
	}
	return &TcellScreen{screen: s, palette: p}
}

// Tcell returns the wrapped screen.
func (t *TcellScreen) Tcell() tcell.Screen { return t.screen }

func (t *TcellScreen) Start() error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	t.screen.SetStyle(t.palette.Style("").Apply())
	t.screen.HideCursor()
	t.events = make(chan tcell.Event, 16)
	t.quit = make(chan struct{})
	go t.pump(t.events, t.quit)
	return nil
}

// pump forwards events until the screen is finalized.
func (t *TcellScreen) pump(events chan<- tcell.Event, quit <-chan struct{}) {
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-quit:
			return
		}
	}
}

func (t *TcellScreen) Stop() {
	if t.quit == nil {
		return
	}
	close(t.quit)
	t.quit = nil
	t.screen.Fini()
}

func (t *TcellScreen) Clear() {
	t.screen.Clear()
	t.screen.Show()
}

func (t *TcellScreen) Size() (int, int) { return t.screen.Size() }

func (t *TcellScreen) Events() <-chan tcell.Event { return t.events }

func (t *TcellScreen) Draw(rows iter.Seq[Row]) error {
	y := 0
	for row := range rows {
		x := 0
		for _, seg := range row {
			if seg.Skip > 0 {
				x += seg.Skip
				continue
			}
			st := t.palette.Style(seg.Attr).Apply()
			// a base rune is set once its combining marks are known
			var base rune
			var comb []rune
			flush := func() {
				if base != 0 {
					t.screen.SetContent(x, y, base, comb, st)
					x += runewidth.RuneWidth(base)
				}
				base, comb = 0, nil
			}
			for _, r := range seg.Text {
				if seg.Charset == CharsetDEC {
					r = decRune(r)
				}
				if runewidth.RuneWidth(r) == 0 {
					if base != 0 {
						comb = append(comb, r)
					}
					continue
				}
				flush()
				base = r
			}
			flush()
		}
		y++
	}
	t.screen.Show()
	return nil
}

// decGraphics maps the DEC special graphics set to line drawing runes.
var decGraphics = map[rune]rune{
	'`': tcell.RuneDiamond,
	'a': tcell.RuneCkBoard,
	'f': tcell.RuneDegree,
	'g': tcell.RunePlMinus,
	'j': tcell.RuneLRCorner,
	'k': tcell.RuneURCorner,
	'l': tcell.RuneULCorner,
	'm': tcell.RuneLLCorner,
	'n': tcell.RunePlus,
	'o': tcell.RuneS1,
	'q': tcell.RuneHLine,
	's': tcell.RuneS9,
	't': tcell.RuneLTee,
	'u': tcell.RuneRTee,
	'v': tcell.RuneBTee,
	'w': tcell.RuneTTee,
	'x': tcell.RuneVLine,
	'~': tcell.RuneBullet,
}

func decRune(r rune) rune {
	if g, ok := decGraphics[r]; ok {
		return g
	}
	return r
}
