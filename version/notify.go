// Package version tracks the application version and discovers newer releases.
package version

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/color"
	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/style"
	"github.com/signtutor-cli/signtutor/util"
)

// Notify prints an alert when a newer stable release is available.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err == nil {
		comp, err := Compare(version, constant.Version)
		if err == nil && comp <= 0 {
			return
		}
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint("https://github.com/signtutor-cli/signtutor/releases/tag/v"+version),
	)
}
