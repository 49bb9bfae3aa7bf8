package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/cansyan/ctk/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-isatty"
	"golang.design/x/clipboard"
)

func main() {
	cfg := ui.DefaultConfig()
	if path := os.Getenv("CTK_CONFIG"); path != "" {
		var err error
		if cfg, err = ui.LoadConfig(path); err != nil {
			log.Fatal(err)
		}
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		log.SetOutput(f)
		ui.SetLogOutput(f)
	}

	palette := cfg.ResolvePalette()
	interactive := isatty.IsTerminal(os.Stdout.Fd()) && isatty.IsTerminal(os.Stdin.Fd())

	var screen ui.Screen
	if interactive {
		s, err := tcell.NewScreen()
		if err != nil {
			log.Fatal(err)
		}
		screen = ui.NewTcellScreen(s, palette)
	} else {
		screen = ui.NewTextScreen(os.Stdout, palette, cfg.Cols, cfg.Rows)
	}

	app := ui.NewApp(screen, cfg)
	win, clock := buildWindow(app)

	app.Loop().TimeoutAdd(time.Second, func() bool {
		clock.SetText(time.Now().Format(time.TimeOnly))
		return true
	})

	if !interactive {
		// one frame, then exit
		if err := win.ShowAll(); err != nil {
			log.Fatal(err)
		}
		for app.Loop().Iteration(false) {
		}
		fmt.Println()
		return
	}

	clipboardOK := clipboard.Init() == nil
	app.OnKey(func(ev *tcell.EventKey) bool {
		if ev.Key() != tcell.KeyCtrlY || !clipboardOK {
			return false
		}
		var sb strings.Builder
		for row := range win.Canvas().Content() {
			sb.WriteString(strings.TrimRight(row.String(), " "))
			sb.WriteByte('\n')
		}
		clipboard.Write(clipboard.FmtText, []byte(sb.String()))
		return true
	})

	if err := win.ShowAll(); err != nil {
		log.Fatal(err)
	}
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}

func buildWindow(app *ui.App) (*ui.Window, *ui.Label) {
	win := ui.NewWindow(app)
	win.SetBorderWidth(1)

	title := ui.NewLabel("ctk demo").Attr("title")
	left := ui.NewLabel("Esc quits\nCtrl+Y copies the screen")
	left.SetAlignment(0, 0)
	left.SetPadding(1, 0)
	right := ui.NewLabel("packed at the end").Justify(ui.AlignRight)
	right.SetAlignment(1, 0)
	clock := ui.NewLabel(time.Now().Format(time.TimeOnly)).Attr("status")

	body := ui.NewHBox().Spacing(1)
	body.PackStart(left, true, true, 0)
	body.PackStart(ui.NewVSeparator(), false, true, 0)
	body.PackEnd(right, true, true, 1)

	vbox := ui.NewVBox()
	vbox.PackStart(title, false, false, 0)
	vbox.PackStart(ui.NewHSeparator(), false, true, 0)
	vbox.PackStart(body, true, true, 0)
	vbox.PackEnd(clock, false, true, 0)
	win.Add(vbox)
	return win, clock
}
