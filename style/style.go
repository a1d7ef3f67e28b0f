// Package style provides small lipgloss helpers for rendering text.
package style

import (
	"github.com/anisan-cli/reel/color"
	"github.com/charmbracelet/lipgloss"
)

// New returns an empty style.
func New() lipgloss.Style {
	return lipgloss.NewStyle()
}

// Fg returns a function that paints a string with the foreground color c.
func Fg(c lipgloss.Color) func(string) string {
	return func(s string) string { return New().Foreground(c).Render(s) }
}

var (
	Faint  = func(s string) string { return New().Faint(true).Render(s) }
	Bold   = func(s string) string { return New().Bold(true).Render(s) }
	Italic = func(s string) string { return New().Italic(true).Render(s) }
)

// Title renders a padded banner.
var Title = func(s string) string {
	return New().Foreground(color.New("230")).Background(AccentColor).Padding(0, 1).Render(s)
}

// ErrorTitle renders a padded banner in the error colors.
var ErrorTitle = func(s string) string {
	return New().Foreground(color.New("230")).Background(ErrorColor).Padding(0, 1).Render(s)
}
