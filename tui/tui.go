// Package tui shows a single story item in the terminal and forwards key presses to its controller.
package tui

import (
	"context"

	"github.com/anisan-cli/reel/sequencer"
	"github.com/anisan-cli/reel/story"
	tea "github.com/charmbracelet/bubbletea"
)

// Options are the collaborators the interface drives.
type Options struct {
	Controller *story.Controller
	// Sequencer may be nil when the item plays standalone.
	Sequencer *sequencer.Sequencer
}

// Run starts the controller and blocks until the user quits.
// The controller is disposed before Run returns.
func Run(ctx context.Context, options *Options) error {
	b := newBubble(options)

	stopObserving := options.Controller.Observe(b.push)
	defer stopObserving()

	done := options.Controller.Start(ctx)

	_, err := tea.NewProgram(b, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	close(b.done)

	options.Controller.Dispose()
	<-done
	return err
}
