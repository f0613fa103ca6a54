package config

import (
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/spf13/viper"
)

func init() {
	filesystem.SetMemMapFs()
}

func TestSetup(t *testing.T) {
	Convey("Setup", t, func() {
		viper.Reset()

		Convey("Succeeds without a config file present", func() {
			So(Setup(), ShouldBeNil)
		})

		Convey("Applies registered defaults", func() {
			So(Setup(), ShouldBeNil)

			for k, field := range Default {
				So(viper.Get(k), ShouldNotBeNil)
				So(field.Key, ShouldEqual, k)
			}
		})
	})
}

func TestField(t *testing.T) {
	Convey("Field", t, func() {
		Convey("Env is uppercased with the application prefix", func() {
			for _, field := range Default {
				env := field.Env()
				So(env, ShouldStartWith, "SIGNTUTOR_")
				So(env, ShouldEqual, strings.ToUpper(env))
				So(env, ShouldNotContainSubstring, ".")
			}
		})

		Convey("Every default has a description", func() {
			for _, field := range Default {
				So(field.Description, ShouldNotBeEmpty)
			}
		})
	})
}
