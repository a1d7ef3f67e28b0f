package phase

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestHolder(t *testing.T) {
	Convey("Given a fresh holder", t, func() {
		var h Holder

		Convey("It should start in Loading", func() {
			So(h.Get(), ShouldEqual, Loading)
		})

		Convey("When an observer is registered", func() {
			var seen []Phase
			cancel := h.Observe(func(p Phase) { seen = append(seen, p) })

			Convey("Then a change is reported once", func() {
				So(h.Set(Ready), ShouldBeTrue)
				So(h.Get(), ShouldEqual, Ready)
				So(seen, ShouldResemble, []Phase{Ready})
			})

			Convey("Then setting the same value does not notify", func() {
				So(h.Set(Loading), ShouldBeFalse)
				So(seen, ShouldBeEmpty)
			})

			Convey("Then a cancelled observer is not called", func() {
				cancel()
				h.Set(Failed)
				So(seen, ShouldBeEmpty)
				So(h.Get(), ShouldEqual, Failed)
			})
		})
	})
}

func TestPhaseString(t *testing.T) {
	Convey("Phase labels", t, func() {
		So(Loading.String(), ShouldEqual, "loading")
		So(Ready.String(), ShouldEqual, "ready")
		So(Failed.String(), ShouldEqual, "failed")
		So(Phase(42).String(), ShouldEqual, "unknown")
	})
}
