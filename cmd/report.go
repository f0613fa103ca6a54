// Package cmd implements the command-line interface for signtutor.
package cmd

import (
	"fmt"
	"os"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/report"
	"github.com/signtutor-cli/signtutor/tutor"
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().BoolP("save", "s", false, "Write the rendered report to the reports directory")
	reportCmd.Flags().BoolP("feedback", "f", false, "Request tutor feedback on the report (requires the tutor to be enabled)")

	reportCmd.SetOut(os.Stdout)
}

// reportCmd assembles and prints a practice report for the configured period.
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Assemble a practice report for the configured trailing period",
	Run: func(cmd *cobra.Command, args []string) {
		r, err := report.Generate()
		handleErr(err)

		cmd.Println(r.Render())

		if lo.Must(cmd.Flags().GetBool("save")) {
			path, err := r.Save()
			handleErr(err)
			fmt.Printf("%s report saved to %s\n", icon.Get(icon.Success), path)
		}

		if lo.Must(cmd.Flags().GetBool("feedback")) {
			if !tutor.Enabled() {
				handleErr(fmt.Errorf("tutor is disabled; enable it with 'signtutor config set -k tutor.enable -v true'"))
			}

			feedback, err := report.Feedback(r)
			if err != nil {
				// The prompt is queued for background reconciliation.
				log.Warn(err)
				fmt.Printf("%s tutor unreachable; feedback queued for retry\n", icon.Get(icon.Fail))
				return
			}

			cmd.Println()
			cmd.Println(feedback)
		}
	},
}
