package query

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/key"
)

func init() {
	filesystem.SetMemMapFs()
	viper.Set(key.InputShowSuggestions, true)
}

func TestQuery(t *testing.T) {
	Convey("Given sentence history", t, func() {
		Convey("When remembering sentences", func() {
			So(Remember("hello my name", 1), ShouldBeNil)
			So(Remember("how are you", 10), ShouldBeNil)

			Convey("Then suggestions should be sorted by rank", func() {
				// Clear the in-memory layer to force a read from disk
				suggestionCache = make(map[string][]*queryRecord)

				s := SuggestMany("how")
				So(len(s), ShouldBeGreaterThanOrEqualTo, 1)
				So(s[0], ShouldEqual, "how are you")
			})

			Convey("Suggest returns the top match", func() {
				suggestionCache = make(map[string][]*queryRecord)

				So(Suggest("hello").MustGet(), ShouldEqual, "hello my name")
				So(Suggest("zzz").IsAbsent(), ShouldBeTrue)
			})

			Convey("It sanitizes input", func() {
				So(sanitize("  HELLO My Name  "), ShouldEqual, "hello my name")
			})
		})
	})
}
