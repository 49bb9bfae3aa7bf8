package ui

import (
	"os"
	"strings"

	"github.com/gdamore/tcell/v2"
)

// Style is how an attribute looks on screen. Colors are tcell color names
// or "#rrggbb"; empty means the terminal default.
type Style struct {
	FG        string `yaml:"fg"`
	BG        string `yaml:"bg"`
	Bold      bool   `yaml:"bold"`
	Italic    bool   `yaml:"italic"`
	Underline bool   `yaml:"underline"`
	Reverse   bool   `yaml:"reverse"`
}

func (s Style) Apply() tcell.Style {
	st := tcell.StyleDefault
	if s.FG != "" {
		st = st.Foreground(tcell.GetColor(s.FG))
	}
	if s.BG != "" {
		st = st.Background(tcell.GetColor(s.BG))
	}
	if s.Bold {
		st = st.Bold(true)
	}
	if s.Italic {
		st = st.Italic(true)
	}
	if s.Underline {
		st = st.Underline(true)
	}
	if s.Reverse {
		st = st.Reverse(true)
	}
	return st
}

// Merge returns child with its unset colors taken from s and the
// attributes of both combined.
func (s Style) Merge(child Style) Style {
	if child.FG == "" {
		child.FG = s.FG
	}
	if child.BG == "" {
		child.BG = s.BG
	}
	child.Bold = child.Bold || s.Bold
	child.Italic = child.Italic || s.Italic
	child.Underline = child.Underline || s.Underline
	child.Reverse = child.Reverse || s.Reverse
	return child
}

// Palette maps attributes to styles.
type Palette map[Attr]Style

// Style returns the style of a, merged over the default attribute "".
func (p Palette) Style(a Attr) Style {
	def := p[""]
	if a == "" {
		return def
	}
	st, ok := p[a]
	if !ok {
		return def
	}
	return def.Merge(st)
}

// DefaultPalette returns the built-in palette for a dark or light
// terminal background.
func DefaultPalette(light bool) Palette {
	if light {
		return Palette{
			"":          {FG: "#333333", BG: "#fbffff"},
			"window":    {FG: "#333333", BG: "#fbffff"},
			"border":    {FG: "#d9e0e4"},
			"title":     {FG: "#5fb3b3", Bold: true},
			"highlight": {BG: "#dae0e2"},
			"status":    {FG: "#999999"},
		}
	}
	return Palette{
		"":          {FG: "#d8dee9", BG: "#303841"},
		"window":    {FG: "#d8dee9", BG: "#303841"},
		"border":    {FG: "#65737e"},
		"title":     {FG: "#fac863", Bold: true},
		"highlight": {BG: "#4e5a65"},
		"status":    {FG: "#a7adba"},
	}
}

// detectLightTerminal detects if terminal has a light background via COLORFGBG.
// iTerm2 and other terminals set this as "foreground;background".
// Background 7 or 15 indicates light, 0-6 and 8 indicate dark.
func detectLightTerminal() bool {
	colorfgbg := os.Getenv("COLORFGBG")
	if colorfgbg == "" {
		return false
	}
	parts := strings.Split(colorfgbg, ";")
	if len(parts) != 2 {
		return false
	}
	bg := parts[1]
	return bg == "7" || bg == "15"
}
