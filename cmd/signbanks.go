// Package cmd implements the command-line interface for signtutor.
package cmd

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/signtutor-cli/signtutor/color"
	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/style"
	"github.com/signtutor-cli/signtutor/util"
	"github.com/signtutor-cli/signtutor/where"
)

func init() {
	rootCmd.AddCommand(signbanksCmd)
}

// signbanksCmd provides a parent command for managing signbanks.
var signbanksCmd = &cobra.Command{
	Use:   "signbanks",
	Short: "Manage built-in and custom signbanks",
}

func init() {
	signbanksCmd.AddCommand(signbanksListCmd)

	signbanksListCmd.Flags().BoolP("raw", "r", false, "Suppress header and metadata descriptions in the output")
	signbanksListCmd.Flags().BoolP("custom", "c", false, "Display only user-installed custom Lua signbanks")
	signbanksListCmd.Flags().BoolP("builtin", "b", false, "Display only pre-compiled built-in signbanks")

	signbanksListCmd.MarkFlagsMutuallyExclusive("custom", "builtin")
	signbanksListCmd.SetOut(os.Stdout)
}

// signbanksListCmd displays a summary of all registered signbanks.
var signbanksListCmd = &cobra.Command{
	Use:   "list",
	Short: "Display a collection of all registered signbanks",
	Run: func(cmd *cobra.Command, args []string) {
		printHeader := !lo.Must(cmd.Flags().GetBool("raw"))
		headerStyle := style.New().Foreground(color.HiBlue).Bold(true).Render
		h := func(s string) {
			if printHeader {
				cmd.Println(headerStyle(s))
			}
		}

		printBuiltin := func() {
			h("Builtin:")
			for _, b := range signbank.Builtins() {
				cmd.Println(b.Name)
			}
		}

		printCustom := func() {
			h("Custom:")
			for _, b := range signbank.Customs() {
				cmd.Println(b.Name)
			}
		}

		switch {
		case lo.Must(cmd.Flags().GetBool("builtin")):
			printBuiltin()
		case lo.Must(cmd.Flags().GetBool("custom")):
			printCustom()
		default:
			printBuiltin()
			if printHeader {
				cmd.Println()
			}
			printCustom()
		}
	},
}

func init() {
	signbanksCmd.AddCommand(signbanksWordsCmd)

	signbanksWordsCmd.Flags().StringP("name", "n", "", "The signbank to enumerate words for")
	lo.Must0(signbanksWordsCmd.MarkFlagRequired("name"))
	signbanksWordsCmd.SetOut(os.Stdout)
}

// signbanksWordsCmd enumerates every word a signbank can demonstrate.
var signbanksWordsCmd = &cobra.Command{
	Use:   "words",
	Short: "Enumerate every word a specified signbank can demonstrate",
	Run: func(cmd *cobra.Command, args []string) {
		name := lo.Must(cmd.Flags().GetString("name"))

		bank, ok := signbank.Get(name)
		if !ok {
			handleErr(fmt.Errorf("unknown signbank: %s", name))
		}

		created, err := bank.CreateBank()
		handleErr(err)

		words, err := created.Words()
		handleErr(err)

		for _, word := range words {
			cmd.Println(word)
		}
	},
}

func init() {
	signbanksCmd.AddCommand(signbanksRemoveCmd)

	signbanksRemoveCmd.Flags().StringArrayP("name", "n", []string{}, "Specify the name of the custom signbank(s) to uninstall")
	lo.Must0(signbanksRemoveCmd.RegisterFlagCompletionFunc("name", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		scripts, err := filesystem.API().ReadDir(where.Signbanks())
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		return lo.FilterMap(scripts, func(item os.FileInfo, _ int) (string, bool) {
			name := item.Name()
			if !strings.HasSuffix(name, ".lua") {
				return "", false
			}

			return util.FileStem(filepath.Base(name)), true
		}), cobra.ShellCompDirectiveNoFileComp
	}))
}

// signbanksRemoveCmd facilitates the uninstallation of custom Lua signbanks.
var signbanksRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Permanently uninstall specified custom Lua signbanks from the system",
	Run: func(cmd *cobra.Command, args []string) {
		for _, name := range lo.Must(cmd.Flags().GetStringArray("name")) {
			path := filepath.Join(where.Signbanks(), name+".lua")
			handleErr(filesystem.API().Remove(path))
			fmt.Printf("%s successfully removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(name))
		}
	},
}

func init() {
	signbanksCmd.AddCommand(signbanksUpdateCmd)
}

// signbanksUpdateCmd fetches over-the-air updates for the bundled bank scripts.
var signbanksUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Fetch over-the-air updates for the bundled signbank scripts",
	Run: func(cmd *cobra.Command, args []string) {
		e := util.PrintErasable(fmt.Sprintf("%s Checking for signbank updates...", icon.Get(icon.Progress)))
		msg := signbank.UpdateBanks()()
		e()

		if _, updated := msg.(signbank.BanksUpdatedMsg); updated {
			fmt.Printf("%s signbank scripts updated\n", icon.Get(icon.Success))
			return
		}

		fmt.Printf("%s signbank scripts are up to date\n", icon.Get(icon.Success))
	},
}

func init() {
	signbanksCmd.AddCommand(signbanksGenCmd)

	signbanksGenCmd.Flags().StringP("name", "n", "", "The display name of the new signbank")
	signbanksGenCmd.Flags().StringP("url", "u", "", "The base URL of the clip host the signbank resolves against")

	lo.Must0(signbanksGenCmd.MarkFlagRequired("name"))
	lo.Must0(signbanksGenCmd.MarkFlagRequired("url"))
}

// signbanksGenCmd scaffolds a boilerplate Lua signbank script.
var signbanksGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Scaffold a new Lua signbank script using a predefined template",
	Long:  `Generate a boilerplate Lua signbank script with the required lookup functions and metadata.`,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.SetOut(os.Stdout)

		var author string
		usr, err := user.Current()
		if err == nil {
			author = usr.Username
		} else {
			author = "Anonymous"
		}

		s := struct {
			Name         string
			URL          string
			LookupSignFn string
			SignWordsFn  string
			Author       string
		}{
			Name:         lo.Must(cmd.Flags().GetString("name")),
			URL:          lo.Must(cmd.Flags().GetString("url")),
			LookupSignFn: constant.LookupSignFn,
			SignWordsFn:  constant.SignWordsFn,
			Author:       author,
		}

		funcMap := template.FuncMap{
			"repeat": strings.Repeat,
			"plus":   func(a, b int) int { return a + b },
			"max":    util.Max[int],
		}

		tmpl, err := template.New("signbank").Funcs(funcMap).Parse(constant.SignbankTemplate)
		handleErr(err)

		target := filepath.Join(where.Signbanks(), util.SanitizeFilename(s.Name)+".lua")
		f, err := filesystem.API().Create(target)
		handleErr(err)

		defer util.Ignore(f.Close)

		err = tmpl.Execute(f, s)
		handleErr(err)

		cmd.Println(target)
	},
}
