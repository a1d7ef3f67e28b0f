package tui

import "github.com/charmbracelet/bubbles/key"

type keymap struct {
	toggle, pause, resume, next, previous, quit key.Binding
}

func newKeymap(withSequencer bool) *keymap {
	k := &keymap{
		toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "play/pause"),
		),
		pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause story"),
		),
		resume: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "resume story"),
		),
		next: key.NewBinding(
			key.WithKeys("n", "right"),
			key.WithHelp("→", "next"),
		),
		previous: key.NewBinding(
			key.WithKeys("b", "left"),
			key.WithHelp("←", "previous"),
		),
		quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}

	if !withSequencer {
		for _, b := range []*key.Binding{&k.pause, &k.resume, &k.next, &k.previous} {
			b.SetEnabled(false)
		}
	}
	return k
}

// ShortHelp implements help.KeyMap.
func (k *keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.toggle, k.pause, k.resume, k.previous, k.next, k.quit}
}

// FullHelp implements help.KeyMap.
func (k *keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
