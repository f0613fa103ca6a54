// Package cmd implements the command-line interface for signtutor.
package cmd

import (
	"fmt"
	"os"
	"strings"

	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/color"
	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/style"
	"github.com/signtutor-cli/signtutor/tui"
	"github.com/signtutor-cli/signtutor/util"
	"github.com/signtutor-cli/signtutor/version"
	"github.com/signtutor-cli/signtutor/where"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, plain)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.PersistentFlags().BoolP("write-history", "H", true, "Persist practice progress to the localized history")
	lo.Must0(viper.BindPFlag(key.HistorySaveOnSign, rootCmd.PersistentFlags().Lookup("write-history")))

	rootCmd.PersistentFlags().StringSliceP("signbank", "B", []string{}, "Specify the default signbanks to resolve words against")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("signbank", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		var banks []string

		for _, b := range signbank.Builtins() {
			banks = append(banks, b.Name)
		}

		for _, b := range signbank.Customs() {
			banks = append(banks, b.Name)
		}

		return banks, cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.DefaultSignbanks, rootCmd.PersistentFlags().Lookup("signbank")))

	rootCmd.Flags().BoolP("continue", "c", false, "Resume practice from the saved sentence history")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the signtutor application.
var rootCmd = &cobra.Command{
	Use:   constant.Signtutor,
	Short: "A command-line tutor that plays sign language clips for your sentences",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A command-line tutor that plays sign language clips for your sentences"),
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		CheckDependencies()

		options := tui.Options{
			Continue: lo.Must(cmd.Flags().GetBool("continue")),
		}
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
