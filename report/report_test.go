package report

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/history"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/sign"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestGenerate(t *testing.T) {
	viper.Set(key.ReportPeriodDays, 7)

	first := &sign.Sentence{
		Utterance: "hello my name",
		Clips: []sign.Clip{
			{Word: "HELLO"}, {Word: "MY"}, {Word: "NAME"},
		},
	}
	second := &sign.Sentence{
		Utterance:  "hello unicorn",
		Clips:      []sign.Clip{{Word: "HELLO"}},
		Unresolved: []string{"UNICORN"},
	}

	// Convey reruns the surrounding block for every leaf while the history
	// store keeps its state, so seed it exactly once.
	for _, sentence := range []*sign.Sentence{first, first, second} {
		if err := history.Save(sentence); err != nil {
			t.Fatal(err)
		}
	}

	Convey("Given practiced sentences", t, func() {
		Convey("The report aggregates counts and vocabulary", func() {
			r, err := Generate()
			So(err, ShouldBeNil)

			So(len(r.Sentences), ShouldEqual, 2)
			So(r.TotalPractices, ShouldEqual, 3)
			So(r.UniqueWords, ShouldEqual, 3)

			So(r.TopWords[0].Word, ShouldEqual, "HELLO")
			So(r.TopWords[0].Count, ShouldEqual, 3)

			So(r.Unresolved, ShouldResemble, []string{"UNICORN"})
		})

		Convey("The rendered report names the practiced sentences", func() {
			r, err := Generate()
			So(err, ShouldBeNil)

			out := r.Render()
			So(out, ShouldContainSubstring, "hello my name")
			So(out, ShouldContainSubstring, "HELLO: 3")
			So(out, ShouldContainSubstring, "UNICORN")
		})

		Convey("Save writes the report to disk", func() {
			r, err := Generate()
			So(err, ShouldBeNil)

			path, err := r.Save()
			So(err, ShouldBeNil)

			content, err := filesystem.API().ReadFile(path)
			So(err, ShouldBeNil)
			So(string(content), ShouldContainSubstring, "Practice report")
		})
	})
}
