// Package cmd implements the command-line interface for signtutor.
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/signtutor-cli/signtutor/signbank/custom"
)

func init() {
	rootCmd.AddCommand(runCmd)
}

// runCmd facilitates the execution of local Lua signbank files for development
// and debugging.
var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Execute a local Lua signbank file",
	Long: `Initialize the Lua 5.1 virtual machine to load and validate a signbank script.
Useful for signbank development and debugging.`,
	Args:    cobra.ExactArgs(1),
	Example: "  signtutor run ./asl.lua",
	Run: func(cmd *cobra.Command, args []string) {
		sourcePath := args[0]

		// Load the script and validate the required global functions.
		_, err := custom.LoadBank(sourcePath)
		handleErr(err)
	},
}
