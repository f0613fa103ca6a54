package custom

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	lua "github.com/yuin/gopher-lua"
)

func TestClipFromTable(t *testing.T) {
	Convey("Given a Lua state", t, func() {
		L := lua.NewState()
		defer L.Close()

		Convey("A url-only table inherits the looked-up word", func() {
			table := L.NewTable()
			table.RawSetString("url", lua.LString("https://bank.example/hello.mp4"))

			clip, err := clipFromTable(table, "HELLO")
			So(err, ShouldBeNil)
			So(clip.Word, ShouldEqual, "HELLO")
			So(clip.Source, ShouldEqual, "https://bank.example/hello.mp4")
		})

		Convey("A script-provided word overrides the looked-up one", func() {
			table := L.NewTable()
			table.RawSetString("url", lua.LString("https://bank.example/not.mp4"))
			table.RawSetString("word", lua.LString("NOT"))

			clip, err := clipFromTable(table, "DON'T")
			So(err, ShouldBeNil)
			So(clip.Word, ShouldEqual, "NOT")
		})

		Convey("A table without url is rejected", func() {
			table := L.NewTable()
			table.RawSetString("word", lua.LString("HELLO"))

			_, err := clipFromTable(table, "HELLO")
			So(err, ShouldNotBeNil)
		})
	})
}
