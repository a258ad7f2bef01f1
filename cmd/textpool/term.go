// ABOUTME: Terminal width detection via golang.org/x/term
// ABOUTME: Falls back to 80 columns when stdout is not a terminal

package main

import (
	"os"

	"golang.org/x/term"
)

const defaultWidth = 80

func terminalWidth() int {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return defaultWidth
	}
	w, _, err := term.GetSize(fd)
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}
