package history

import (
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/sign"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestHistory(t *testing.T) {
	Convey("Given a resolved sentence", t, func() {
		sentence := &sign.Sentence{
			Utterance: "Hello, my name!",
			Clips: []sign.Clip{
				{Word: "HELLO", Source: "hello.mp4"},
				{Word: "MY", Source: "my.mp4"},
				{Word: "NAME", Source: "name.mp4"},
			},
		}

		Convey("When saving a practice run", func() {
			err := Save(sentence)
			So(err, ShouldBeNil)

			Convey("Then the sentence should be recorded", func() {
				saved, err := Get()
				So(err, ShouldBeNil)
				record := saved["hello, my name!"]
				So(record, ShouldNotBeNil)
				So(record.Words, ShouldResemble, []string{"HELLO", "MY", "NAME"})
				So(record.TimesPracticed, ShouldBeGreaterThanOrEqualTo, 1)
			})

			Convey("And saving again increments the practice count", func() {
				before, _ := Get()
				count := before["hello, my name!"].TimesPracticed

				So(Save(sentence), ShouldBeNil)

				after, _ := Get()
				So(after["hello, my name!"].TimesPracticed, ShouldEqual, count+1)
			})
		})

		Convey("Since filters by last practice time", func() {
			So(Save(sentence), ShouldBeNil)

			recent, err := Since(time.Now().Add(-time.Hour))
			So(err, ShouldBeNil)
			So(len(recent), ShouldBeGreaterThan, 0)

			none, err := Since(time.Now().Add(time.Hour))
			So(err, ShouldBeNil)
			So(len(none), ShouldEqual, 0)
		})

		Convey("Remove deletes the record", func() {
			So(Save(sentence), ShouldBeNil)
			saved, _ := Get()
			record := saved["hello, my name!"]
			So(record, ShouldNotBeNil)

			So(Remove(record), ShouldBeNil)
			saved, _ = Get()
			So(saved["hello, my name!"], ShouldBeNil)
		})
	})
}
