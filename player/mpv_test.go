package player

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeMediaTarget(t *testing.T) {
	Convey("Media targets", t, func() {
		Convey("Local paths are cleaned", func() {
			target, err := sanitizeMediaTarget("./clips//HELLO.mp4")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "clips/HELLO.mp4")
		})

		Convey("HTTP URLs pass through", func() {
			target, err := sanitizeMediaTarget("https://bank.example/clips/NAME.mp4")
			So(err, ShouldBeNil)
			So(target, ShouldEqual, "https://bank.example/clips/NAME.mp4")
		})

		Convey("Flag shaped strings are rejected", func() {
			_, err := sanitizeMediaTarget("--script=evil.lua")
			So(err, ShouldNotBeNil)
		})

		Convey("Control characters are rejected", func() {
			_, err := sanitizeMediaTarget("clip\n.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Unsupported schemes are rejected", func() {
			_, err := sanitizeMediaTarget("ftp://bank.example/clip.mp4")
			So(err, ShouldNotBeNil)
		})

		Convey("Empty sources are rejected", func() {
			_, err := sanitizeMediaTarget("   ")
			So(err, ShouldNotBeNil)
		})
	})
}

func TestMPVRate(t *testing.T) {
	Convey("Non positive rates are rejected before touching IPC", t, func() {
		mpv := NewMPV()
		So(mpv.SetRate(0), ShouldNotBeNil)
		So(mpv.SetRate(-1), ShouldNotBeNil)
	})
}
