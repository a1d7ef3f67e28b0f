// Package util holds small terminal helpers.
package util

import (
	"os"

	"golang.org/x/term"
)

// TerminalSize returns the character dimensions of the terminal on stdout.
func TerminalSize() (width, height int, err error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// TerminalSizeOr is TerminalSize with a fallback for when stdout is not a terminal.
func TerminalSizeOr(width, height int) (int, int) {
	w, h, err := TerminalSize()
	if err != nil || w <= 0 || h <= 0 {
		return width, height
	}
	return w, h
}
