package tui

import (
	"time"

	"github.com/anisan-cli/reel/log"
	"github.com/anisan-cli/reel/sequencer"
	"github.com/anisan-cli/reel/story"
	"github.com/anisan-cli/reel/util"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

const refreshInterval = 250 * time.Millisecond

// updateMsg carries a phase change from the controller.
type updateMsg story.Update

// refreshMsg asks for a fresh snapshot; playback can change without a phase change.
type refreshMsg struct{}

type bubble struct {
	controller *story.Controller
	sequencer  *sequencer.Sequencer
	cfg        story.Config

	// phase changes arrive on the controller's goroutine
	updatesChannel chan story.Update
	current        story.Update
	// closed by Run once the program has exited
	done chan struct{}

	keymap   *keymap
	spinnerC spinner.Model
	helpC    help.Model

	width, height int
	quitting      bool
}

func newBubble(options *Options) *bubble {
	s := spinner.New()
	s.Spinner = spinner.Dot

	// bubbletea reports the real size with the first WindowSizeMsg
	width, height := util.TerminalSizeOr(80, 24)

	return &bubble{
		controller:     options.Controller,
		sequencer:      options.Sequencer,
		cfg:            options.Controller.Config(),
		updatesChannel: make(chan story.Update, 8),
		done:           make(chan struct{}),
		current:        options.Controller.Snapshot(),
		keymap:         newKeymap(options.Sequencer != nil),
		spinnerC:       s,
		helpC:          help.New(),
		width:          width,
		height:         height,
	}
}

// push is the controller observer. It runs under the controller's lock, so it
// must never wait for the program.
func (b *bubble) push(u story.Update) {
	select {
	case b.updatesChannel <- u:
	default:
		log.Warnf("dropping render update for phase %s", u.Phase)
	}
}

func (b *bubble) waitForUpdate() tea.Cmd {
	return func() tea.Msg {
		select {
		case u := <-b.updatesChannel:
			return updateMsg(u)
		case <-b.done:
			return nil
		}
	}
}

func refresh() tea.Cmd {
	return tea.Tick(refreshInterval, func(time.Time) tea.Msg {
		return refreshMsg{}
	})
}

func (b *bubble) Init() tea.Cmd {
	return tea.Batch(b.spinnerC.Tick, b.waitForUpdate(), refresh())
}
