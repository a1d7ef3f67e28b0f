package tui

import (
	"fmt"

	"github.com/anisan-cli/reel/constant"
	"github.com/anisan-cli/reel/icon"
	"github.com/anisan-cli/reel/phase"
	"github.com/anisan-cli/reel/render"
	"github.com/anisan-cli/reel/style"
	"github.com/charmbracelet/lipgloss"
)

var paddingStyle = lipgloss.NewStyle().Padding(0, 1)

func (b *bubble) View() string {
	if b.quitting {
		return ""
	}

	header := style.Title(constant.App) + " " + b.status() + " " + style.Faint(b.cfg.URL)
	if b.sequencer != nil {
		state := style.Fg(style.SuccessColor)("story running")
		if b.sequencer.Paused() {
			state = style.Fg(style.WarningColor)("story paused")
		}
		header += "  " + icon.Get(icon.Story) + " " + state + style.Faint(fmt.Sprintf(" · item %d", b.sequencer.Position()+1))
	}
	footer := b.helpC.View(b.keymap)

	boxH := b.height - lipgloss.Height(header) - lipgloss.Height(footer)
	boxW := b.width - 2

	view := render.Project(b.current, b.cfg, boxW, boxH)
	body := render.Render(view, boxW, boxH, b.spinnerC.View())

	return paddingStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, body, footer))
}

// status is the phase icon, or the playback icon once the media is ready.
func (b *bubble) status() string {
	switch b.current.Phase {
	case phase.Loading:
		return icon.Get(icon.Loading)
	case phase.Failed:
		return style.Fg(style.ErrorColor)(icon.Get(icon.Failed))
	}

	if b.current.Playing {
		return style.Fg(style.SuccessColor)(icon.Get(icon.Playing))
	}
	return style.Fg(style.WarningColor)(icon.Get(icon.Paused))
}
