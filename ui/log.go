package ui

import (
	"io"
	"log"
)

// logger is silent until SetLogOutput is called; a terminal UI cannot log
// to the screen it draws on.
var logger = log.New(io.Discard, "ctk: ", log.LstdFlags|log.Lshortfile)

// SetLogOutput redirects the toolkit's debug log, typically to a file.
func SetLogOutput(w io.Writer) {
	logger.SetOutput(w)
}
