package inline

import (
	"bytes"
	"encoding/json"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/signtutor-cli/signtutor/sign"
)

func TestWriteJson(t *testing.T) {
	Convey("writeJson", t, func() {
		Convey("Should produce valid JSON for an empty result", func() {
			var buf bytes.Buffer
			opts := &Options{Utterance: "test", Json: true}
			err := writeJson(&buf, nil, nil, opts)
			So(err, ShouldBeNil)

			var output Output
			err = json.Unmarshal(buf.Bytes(), &output)
			So(err, ShouldBeNil)
			So(output.Utterance, ShouldEqual, "test")
			So(output.Clips, ShouldHaveLength, 0)
		})

		Convey("Should carry unresolved words through", func() {
			var buf bytes.Buffer
			sentence := &sign.Sentence{
				Utterance:  "hello xyzzy",
				Clips:      []sign.Clip{{Word: "HELLO", Source: "/clips/hello.mp4"}},
				Unresolved: []string{"XYZZY"},
			}
			opts := &Options{Utterance: "hello xyzzy", Json: true}

			err := writeJson(&buf, sentence, sentence.Clips, opts)
			So(err, ShouldBeNil)

			var output Output
			So(json.Unmarshal(buf.Bytes(), &output), ShouldBeNil)
			So(output.Clips, ShouldHaveLength, 1)
			So(output.Unresolved, ShouldResemble, []string{"XYZZY"})
		})
	})
}

func TestParseClipsFilter(t *testing.T) {
	Convey("ParseClipsFilter", t, func() {
		clips := []sign.Clip{
			{Word: "HELLO"},
			{Word: "MY"},
			{Word: "NAME"},
		}

		Convey("first keeps only the leading clip", func() {
			filter, err := ParseClipsFilter("first")
			So(err, ShouldBeNil)

			filtered, err := filter(clips)
			So(err, ShouldBeNil)
			So(filtered, ShouldHaveLength, 1)
			So(filtered[0].Word, ShouldEqual, "HELLO")
		})

		Convey("last keeps only the trailing clip", func() {
			filter, err := ParseClipsFilter("last")
			So(err, ShouldBeNil)

			filtered, err := filter(clips)
			So(err, ShouldBeNil)
			So(filtered, ShouldHaveLength, 1)
			So(filtered[0].Word, ShouldEqual, "NAME")
		})

		Convey("ranges are inclusive and clamped", func() {
			filter, err := ParseClipsFilter("1-5")
			So(err, ShouldBeNil)

			filtered, err := filter(clips)
			So(err, ShouldBeNil)
			So(filtered, ShouldHaveLength, 2)
			So(filtered[0].Word, ShouldEqual, "MY")
		})

		Convey("substring matches case insensitively", func() {
			filter, err := ParseClipsFilter("@name@")
			So(err, ShouldBeNil)

			filtered, err := filter(clips)
			So(err, ShouldBeNil)
			So(filtered, ShouldHaveLength, 1)
			So(filtered[0].Word, ShouldEqual, "NAME")
		})

		Convey("out-of-range index yields an empty result", func() {
			filter, err := ParseClipsFilter("9")
			So(err, ShouldBeNil)

			filtered, err := filter(clips)
			So(err, ShouldBeNil)
			So(filtered, ShouldBeEmpty)
		})

		Convey("garbage is rejected", func() {
			_, err := ParseClipsFilter("every other one")
			So(err, ShouldNotBeNil)
		})
	})
}
