package signbank

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/signtutor-cli/signtutor/filesystem"
)

func TestLocalBank(t *testing.T) {
	Convey("Given a clips directory", t, func() {
		filesystem.SetMemMapFs()
		defer filesystem.SetOsFs()

		dir := "/clips"
		So(filesystem.API().MkdirAll(dir, 0755), ShouldBeNil)
		for _, name := range []string{"hello.mp4", "Name.webm", "my.mov", "notes.txt"} {
			So(filesystem.API().WriteFile(dir+"/"+name, []byte("x"), 0644), ShouldBeNil)
		}

		bank := NewLocalBankAt(dir)

		Convey("Words are the uppercased clip stems, sorted", func() {
			words, err := bank.Words()
			So(err, ShouldBeNil)
			So(words, ShouldResemble, []string{"HELLO", "MY", "NAME"})
		})

		Convey("Lookup is case-stable against mixed-case filenames", func() {
			clip, err := bank.Lookup("NAME")
			So(err, ShouldBeNil)
			So(clip, ShouldNotBeNil)
			So(clip.Source, ShouldEqual, "/clips/Name.webm")
			So(clip.SignbankID, ShouldEqual, LocalBankID)
		})

		Convey("An undemonstrable word yields nil clip and nil error", func() {
			clip, err := bank.Lookup("UNICORN")
			So(err, ShouldBeNil)
			So(clip, ShouldBeNil)
		})

		Convey("Non-clip files are ignored", func() {
			clip, err := bank.Lookup("NOTES")
			So(err, ShouldBeNil)
			So(clip, ShouldBeNil)
		})
	})
}
