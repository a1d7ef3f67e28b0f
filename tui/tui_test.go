package tui

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anisan-cli/reel/phase"
	"github.com/anisan-cli/reel/sequencer"
	"github.com/anisan-cli/reel/story"
	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"
)

type stubAsset struct {
	mu      sync.Mutex
	ready   bool
	playing bool
}

func (a *stubAsset) Initialize(context.Context) error {
	a.mu.Lock()
	a.ready = true
	a.mu.Unlock()
	return nil
}

func (a *stubAsset) Play() error {
	a.mu.Lock()
	a.playing = true
	a.mu.Unlock()
	return nil
}

func (a *stubAsset) Pause() error {
	a.mu.Lock()
	a.playing = false
	a.mu.Unlock()
	return nil
}

func (a *stubAsset) Dispose() error { return nil }

func (a *stubAsset) IsInitialized() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.ready
}

func (a *stubAsset) IsPlaying() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.playing
}

func (a *stubAsset) Size() story.Size     { return story.Size{Width: 1080, Height: 1920} }
func (a *stubAsset) AspectRatio() float64 { return 0.5625 }

type stubEngine struct {
	asset *stubAsset
}

func (e stubEngine) Open(string, map[string]string) (story.Asset, error) {
	return e.asset, nil
}

// eventually polls cond for up to a second.
func eventually(cond func() bool) bool {
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return cond()
}

func keyPress(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBubble(t *testing.T) {
	Convey("Given a bubble over a loading controller", t, func() {
		asset := &stubAsset{}
		seq := sequencer.New()
		defer seq.Close()

		c := story.New(stubEngine{asset: asset}, seq, story.DefaultConfig("https://x/video.mp4"))
		b := newBubble(&Options{Controller: c, Sequencer: seq})
		c.Observe(b.push)
		b.Update(tea.WindowSizeMsg{Width: 60, Height: 20})

		So(b.current.Phase, ShouldEqual, phase.Loading)
		So(b.View(), ShouldContainSubstring, "reel")

		Convey("When the controller becomes ready", func() {
			c.Initialize(context.Background())

			// ready, then the settled state after autoplay
			So(len(b.updatesChannel), ShouldEqual, 2)
			msg := b.waitForUpdate()()
			_, cmd := b.Update(msg)
			So(cmd, ShouldNotBeNil)
			So(b.current.Phase, ShouldEqual, phase.Ready)

			b.Update(b.waitForUpdate()())
			So(b.current.Playing, ShouldBeTrue)
			So(b.View(), ShouldContainSubstring, "playing")

			Convey("Space toggles playback through the controller", func() {
				b.Update(keyPress(" "))
				So(asset.IsPlaying(), ShouldBeFalse)
				So(seq.Paused(), ShouldBeTrue)
				So(b.View(), ShouldContainSubstring, "paused")

				b.Update(keyPress(" "))
				So(seq.Paused(), ShouldBeFalse)
				// the sequencer echoes both commands back asynchronously
				So(eventually(asset.IsPlaying), ShouldBeTrue)
			})

			Convey("Sequencer keys drive the sequencer", func() {
				b.Update(keyPress("n"))
				So(seq.Position(), ShouldEqual, 1)
				b.Update(keyPress("p"))
				So(seq.Paused(), ShouldBeTrue)
			})

			Convey("Quitting disposes the controller", func() {
				_, cmd := b.Update(keyPress("q"))
				So(cmd, ShouldNotBeNil)
				So(b.View(), ShouldEqual, "")

				b.Update(keyPress(" "))
				So(asset.IsPlaying(), ShouldBeTrue)
			})
		})
	})

	Convey("Given a bubble whose program has exited", t, func() {
		c := story.New(stubEngine{asset: &stubAsset{}}, nil, story.DefaultConfig("https://x/video.mp4"))
		b := newBubble(&Options{Controller: c})

		got := make(chan tea.Msg, 1)
		go func() { got <- b.waitForUpdate()() }()
		close(b.done)

		select {
		case msg := <-got:
			So(msg, ShouldBeNil)
		case <-time.After(time.Second):
			So("waitForUpdate still blocked", ShouldBeEmpty)
		}
	})

	Convey("Given a bubble without a sequencer", t, func() {
		c := story.New(stubEngine{asset: &stubAsset{}}, nil, story.DefaultConfig("https://x/video.mp4"))
		b := newBubble(&Options{Controller: c})

		So(func() { b.Update(keyPress("n")) }, ShouldNotPanic)
		So(strings.Contains(b.View(), "story paused"), ShouldBeFalse)
	})
}
