// Package cmd implements the command-line interface for signtutor.
package cmd

import (
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/signtutor-cli/signtutor/mini"
)

func init() {
	rootCmd.AddCommand(miniCmd)

	miniCmd.Flags().BoolP("continue", "c", false, "Resume practice from the saved sentence history")
}

// miniCmd launches the application in a lightweight, prompt-driven interface.
var miniCmd = &cobra.Command{
	Use:   "mini",
	Short: "Launch the application in a lightweight, prompt-driven interface",
	Long:  `Initialize a streamlined prompt interface for sentence entry and clip playback.`,
	Run: func(cmd *cobra.Command, args []string) {
		CheckDependencies()

		options := mini.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
		}
		err := mini.Run(&options)

		if err != nil && err.Error() != "interrupt" {
			handleErr(err)
		}
	},
}
