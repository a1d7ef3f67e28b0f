package render

import (
	"strings"

	"github.com/anisan-cli/reel/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var (
	surfaceStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(style.BorderColor)
	errorStyle   = lipgloss.NewStyle().Foreground(style.ErrorColor)
)

// Render draws v centered in a boxW by boxH area. spinner is the current
// frame of the loading animation.
func Render(v View, boxW, boxH int, spinner string) string {
	var body string

	switch v.Kind {
	case KindLoading:
		body = strings.TrimSpace(spinner + " " + v.Text)
	case KindError:
		width := boxW
		if width <= 0 || width > 40 {
			width = 40
		}
		body = lipgloss.JoinVertical(
			lipgloss.Center,
			style.ErrorTitle("error"),
			errorStyle.Render(wordwrap.String(v.Text, width)),
		)
	case KindVideo:
		body = renderSurface(v)
	}

	if boxW <= 0 || boxH <= 0 {
		return body
	}
	return lipgloss.Place(boxW, boxH, lipgloss.Center, lipgloss.Center, body)
}

func renderSurface(v View) string {
	state := style.Fg(style.WarningColor)("❚❚ paused")
	if v.Playing {
		state = style.Fg(style.SuccessColor)("▶ playing")
	}
	label := lipgloss.JoinVertical(lipgloss.Center, state, style.Faint(v.Text))

	// the border takes one cell on each side
	w, h := max(v.Width-2, 0), max(v.Height-2, 0)
	return surfaceStyle.Render(lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, label))
}
