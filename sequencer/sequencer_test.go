package sequencer

import (
	"testing"
	"time"

	"github.com/anisan-cli/reel/story"
	. "github.com/smartystreets/goconvey/convey"
)

// receive waits briefly for the next delivered signal.
func receive(ch <-chan story.Signal) (story.Signal, bool) {
	select {
	case sig := <-ch:
		return sig, true
	case <-time.After(time.Second):
		return 0, false
	}
}

func TestSequencer(t *testing.T) {
	Convey("Given a sequencer with one subscriber", t, func() {
		seq := New()
		defer seq.Close()

		got := make(chan story.Signal, 16)
		sub := seq.Subscribe(func(sig story.Signal) { got <- sig })

		Convey("Commands are delivered in order", func() {
			seq.Pause()
			seq.Resume()
			seq.Next()
			seq.Previous()

			for _, want := range []story.Signal{story.SignalPause, story.SignalResume, story.SignalNext, story.SignalPrevious} {
				sig, ok := receive(got)
				So(ok, ShouldBeTrue)
				So(sig, ShouldEqual, want)
			}
			So(seq.Position(), ShouldEqual, 0)
		})

		Convey("State follows the commands", func() {
			So(seq.Paused(), ShouldBeFalse)
			seq.Pause()
			So(seq.Paused(), ShouldBeTrue)
			seq.Resume()
			So(seq.Paused(), ShouldBeFalse)

			seq.Previous()
			So(seq.Position(), ShouldEqual, 0)
			seq.Next()
			seq.Next()
			So(seq.Position(), ShouldEqual, 2)
		})

		Convey("A cancelled subscription receives nothing", func() {
			sub.Cancel()
			sub.Cancel()
			seq.Pause()

			_, ok := receive(got)
			So(ok, ShouldBeFalse)
		})

		Convey("A handler may issue commands without blocking", func() {
			reentrant := make(chan story.Signal, 16)
			seq.Subscribe(func(sig story.Signal) {
				if sig == story.SignalNext {
					seq.Pause()
				}
				reentrant <- sig
			})

			seq.Next()
			first, ok := receive(reentrant)
			So(ok, ShouldBeTrue)
			So(first, ShouldEqual, story.SignalNext)
			second, ok := receive(reentrant)
			So(ok, ShouldBeTrue)
			So(second, ShouldEqual, story.SignalPause)
		})
	})

	Convey("Given a closed sequencer", t, func() {
		seq := New()
		seq.Close()

		got := make(chan story.Signal, 1)
		sub := seq.Subscribe(func(sig story.Signal) { got <- sig })
		seq.Resume()

		_, ok := receive(got)
		So(ok, ShouldBeFalse)
		So(func() { sub.Cancel() }, ShouldNotPanic)
	})
}
