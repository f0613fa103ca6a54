package where

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/signtutor-cli/signtutor/filesystem"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestPaths(t *testing.T) {
	Convey("Directory resolvers", t, func() {
		for name, resolver := range map[string]func() string{
			"Config":    Config,
			"Logs":      Logs,
			"Signbanks": Signbanks,
			"Clips":     Clips,
			"Reports":   Reports,
			"Temp":      Temp,
		} {
			Convey(name+" returns a non-empty existing directory", func() {
				path := resolver()
				So(path, ShouldNotBeEmpty)

				exists, err := filesystem.API().DirExists(path)
				So(err, ShouldBeNil)
				So(exists, ShouldBeTrue)
			})
		}
	})

	Convey("File resolvers return non-empty paths", t, func() {
		So(History(), ShouldNotBeEmpty)
		So(Queries(), ShouldNotBeEmpty)
	})
}
