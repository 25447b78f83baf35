package brick

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestMix(t *testing.T) {
	Convey("straight ahead drives both tracks equally", t, func() {
		l, r := Mix(0, 1)
		So(l, ShouldEqual, 100)
		So(r, ShouldEqual, 100)

		l, r = Mix(0, -0.5)
		So(l, ShouldEqual, -50)
		So(r, ShouldEqual, -50)
	})

	Convey("steering on the spot counter rotates", t, func() {
		l, r := Mix(1, 0)
		So(l, ShouldEqual, 100)
		So(r, ShouldEqual, -100)
	})

	Convey("turning at speed is scaled instead of saturating", t, func() {
		l, r := Mix(0.5, 1)
		So(l, ShouldEqual, 100)
		So(r, ShouldEqual, 33)

		l, r = Mix(0.25, 0.5)
		So(l, ShouldEqual, 75)
		So(r, ShouldEqual, 25)
	})

	Convey("inputs are clamped", t, func() {
		l, r := Mix(0, 4)
		So(l, ShouldEqual, 100)
		So(r, ShouldEqual, 100)
	})

	Convey("centre is stopped", t, func() {
		l, r := Mix(0, 0)
		So(l, ShouldEqual, 0)
		So(r, ShouldEqual, 0)
	})
}
