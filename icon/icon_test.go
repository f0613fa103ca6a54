package icon

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/spf13/viper"
)

func TestGet(t *testing.T) {
	Convey("Given a registered icon", t, func() {
		target := Sign

		Convey("It renders correctly for each variant", func() {
			for _, variant := range AvailableVariants() {
				Convey("variant="+variant, func() {
					viper.Set(key.IconsVariant, variant)
					result := Get(target)
					So(result, ShouldNotBeEmpty)
				})
			}
		})

		Convey("Unknown variant yields an empty symbol", func() {
			viper.Set(key.IconsVariant, "unknown")
			So(Get(target), ShouldBeEmpty)
		})
	})
}
