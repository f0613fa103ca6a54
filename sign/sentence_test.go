package sign

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSentence(t *testing.T) {
	Convey("Given a partially resolved sentence", t, func() {
		sentence := Sentence{
			Utterance: "hello my name",
			Clips: []Clip{
				{Word: "HELLO", Source: "/clips/HELLO.mp4"},
				{Word: "NAME", Source: "/clips/NAME.mp4"},
			},
			Unresolved: []string{"MY"},
		}

		Convey("It is playable", func() {
			So(sentence.Playable(), ShouldBeTrue)
		})

		Convey("Words preserves clip order", func() {
			So(sentence.Words(), ShouldResemble, []string{"HELLO", "NAME"})
		})

		Convey("String joins the resolved words", func() {
			So(sentence.String(), ShouldEqual, "HELLO NAME")
		})
	})

	Convey("Given a sentence with no resolved clips", t, func() {
		sentence := Sentence{Utterance: "xyzzy", Unresolved: []string{"XYZZY"}}

		Convey("It is not playable", func() {
			So(sentence.Playable(), ShouldBeFalse)
		})
	})
}
