package player

import (
	"context"
	"testing"
	"time"

	"github.com/anisan-cli/reel/filesystem"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("sanitizeMediaTarget", t, func() {
		Convey("Accepts http(s) URLs unchanged", func() {
			target, err := sanitizeMediaTarget("  https://x/video.mp4 ")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "https://x/video.mp4")
		})

		Convey("Resolves file URLs and paths", func() {
			target, err := sanitizeMediaTarget("file:///tmp/a/../clip.mp4")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "/tmp/clip.mp4")

			target, err = sanitizeMediaTarget("clips//intro.webm")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "clips/intro.webm")
		})

		Convey("Rejects unsafe input", func() {
			for _, bad := range []string{"", "--script=evil.lua", "https://x/\nvideo", "rtmp://x/live"} {
				_, err := sanitizeMediaTarget(bad)
				So(err, ShouldNotBeNil)
			}
		})
	})
}

func TestHeaderFields(t *testing.T) {
	Convey("headerFields", t, func() {
		So(headerFields(nil), ShouldEqual, "")
		So(headerFields(map[string]string{
			"Referer": "https://x",
			"Cookie":  "a=1,b=2",
		}), ShouldEqual, "Cookie: a=1%2Cb=2,Referer: https://x")
	})
}

func TestEngine(t *testing.T) {
	Convey("Given an engine", t, func() {
		engine := NewEngine("reel-test-missing-mpv", "Story\n1")

		Convey("Open rejects invalid targets", func() {
			_, err := engine.Open("-flag", nil)
			So(err, ShouldNotBeNil)
		})

		Convey("Open prepares an unstarted asset", func() {
			asset, err := engine.Open("https://x/video.mp4", map[string]string{"Referer": "https://x"})
			So(err, ShouldBeNil)

			m := asset.(*MPV)
			So(m.IsInitialized(), ShouldBeFalse)
			So(m.IsPlaying(), ShouldBeFalse)
			So(m.AspectRatio(), ShouldEqual, 1)
			So(m.args(), ShouldContain, "--pause=yes")
			So(m.args(), ShouldContain, "--http-header-fields=Referer: https://x")
			So(m.args(), ShouldContain, "--title=Story 1")
			So(m.args()[len(m.args())-1], ShouldEqual, "https://x/video.mp4")

			Convey("Playback commands fail before initialization", func() {
				So(m.Play(), ShouldNotBeNil)
				So(m.Pause(), ShouldNotBeNil)
			})

			Convey("Initialize reports a missing binary", func() {
				err := m.Initialize(context.Background())
				So(err, ShouldNotBeNil)
				So(err.Error(), ShouldContainSubstring, "start mpv")

				Convey("And Dispose returns without waiting for a process", func() {
					So(m.cmd, ShouldBeNil)

					start := time.Now()
					So(m.Dispose(), ShouldBeNil)
					So(time.Since(start), ShouldBeLessThan, time.Second)
				})
			})

			Convey("Dispose before initialization is a no-op", func() {
				So(m.Dispose(), ShouldBeNil)
				So(m.Dispose(), ShouldBeNil)
				So(m.Initialize(context.Background()), ShouldEqual, errDisposed)
			})
		})
	})
}

func TestEvents(t *testing.T) {
	Convey("Given an asset fed by an event listener", t, func() {
		m := newMPV("mpv", "https://x/video.mp4", "", "")
		el := NewEventListener("", m.handleProperty, "pause", "width", "height")

		Convey("Property changes update the cached state", func() {
			rest := el.consume([]byte(
				`{"event":"property-change","id":2,"name":"width","data":1080}` + "\n" +
					`{"request_id":0,"error":"success"}` + "\n" +
					`{"event":"property-change","id":3,"name":"height","data":1920}` + "\n" +
					`{"event":"property-change","id":1,"name":"pause","data":false}` + "\n" +
					`{"event":"prop`))

			So(string(rest), ShouldEqual, `{"event":"prop`)
			So(m.Size().Width, ShouldEqual, 1080)
			So(m.Size().Height, ShouldEqual, 1920)
			So(m.AspectRatio(), ShouldAlmostEqual, 0.5625)
			So(m.playing, ShouldBeTrue)

			Convey("And reaching the end stops playback", func() {
				el.consume([]byte(`{"event":"property-change","name":"eof-reached","data":true}` + "\n"))
				So(m.playing, ShouldBeFalse)
			})
		})

		Convey("Other events are forwarded by name", func() {
			var names []string
			listener := NewEventListener("", func(name string, _ interface{}) { names = append(names, name) })
			listener.processEvent([]byte(`{"event":"end-file","reason":"eof"}`))
			listener.processEvent([]byte(`not json`))
			So(names, ShouldResemble, []string{"end-file"})
		})
	})
}

func TestDecodeResponse(t *testing.T) {
	Convey("decodeResponse", t, func() {
		data, err := decodeResponse([]byte(`{"data":1920,"error":"success"}`))
		So(err, ShouldBeNil)
		So(data, ShouldEqual, 1920.0)

		_, err = decodeResponse([]byte(`{"error":"property unavailable"}`))
		So(err, ShouldHaveSameTypeAs, &mpvError{})
		So(unavailable(err), ShouldBeTrue)

		So(string(firstLine([]byte("{}\n{\"event\":\"idle\"}"))), ShouldEqual, "{}")
	})
}
