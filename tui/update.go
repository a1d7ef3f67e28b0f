package tui

import (
	"github.com/anisan-cli/reel/story"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

func (b *bubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
		b.helpC.Width = msg.Width
		return b, nil
	case updateMsg:
		b.current = story.Update(msg)
		return b, b.waitForUpdate()
	case refreshMsg:
		if b.quitting {
			return b, nil
		}
		b.current = b.controller.Snapshot()
		return b, refresh()
	case spinner.TickMsg:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	case tea.KeyMsg:
		return b.handleKey(msg)
	}

	return b, nil
}

func (b *bubble) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, b.keymap.quit):
		b.quitting = true
		b.controller.Dispose()
		return b, tea.Quit
	case key.Matches(msg, b.keymap.toggle):
		b.controller.OnTap()
	case key.Matches(msg, b.keymap.pause):
		b.sequencer.Pause()
	case key.Matches(msg, b.keymap.resume):
		b.sequencer.Resume()
	case key.Matches(msg, b.keymap.next):
		b.sequencer.Next()
	case key.Matches(msg, b.keymap.previous):
		b.sequencer.Previous()
	default:
		return b, nil
	}

	b.current = b.controller.Snapshot()
	return b, nil
}
