package version

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestCompare(t *testing.T) {
	Convey("Compare", t, func() {
		Convey("orders by major, minor, patch", func() {
			for _, c := range []struct {
				a, b string
				want int
			}{
				{"1.0.0", "1.0.0", 0},
				{"2.0.0", "1.9.9", 1},
				{"1.2.0", "1.10.0", -1},
				{"1.0.1", "1.0.0", 1},
				{"v1.0.0", "1.0.0", 0},
			} {
				got, err := Compare(c.a, c.b)
				So(err, ShouldBeNil)
				So(got, ShouldEqual, c.want)
			}
		})

		Convey("rejects malformed versions", func() {
			_, err := Compare("banana", "1.0.0")
			So(err, ShouldNotBeNil)
		})
	})
}
