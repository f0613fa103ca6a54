// Package cmd implements the command-line interface for signtutor.
package cmd

import (
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/cobra"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/inline"
	"github.com/signtutor-cli/signtutor/query"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/signbank"
)

func init() {
	rootCmd.AddCommand(signCmd)

	signCmd.Flags().StringP("sentence", "s", "", "The sentence to resolve into sign clips")
	signCmd.Flags().StringP("clips", "e", "", "Criteria for selecting specific clips from the resolved sentence")
	signCmd.Flags().BoolP("json", "j", false, "Format the command output as a JSON object")
	signCmd.Flags().BoolP("clip-sources", "u", false, "Print clip source paths instead of words")
	signCmd.Flags().StringP("output", "o", "", "Specify a file path to write the command output")

	lo.Must0(signCmd.RegisterFlagCompletionFunc("sentence", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return query.SuggestMany(toComplete), cobra.ShellCompDirectiveNoFileComp
	}))
}

// signCmd resolves a sentence into sign clips in non-interactive mode.
var signCmd = &cobra.Command{
	Use:   "sign",
	Short: "Resolve a sentence into sign clips in non-interactive, scriptable mode",
	Long: `Resolve a sentence against the configured signbanks and print the clips without launching the TUI.

Clip selectors:
  first - first clip in the sentence
  last - last clip in the sentence
  all - all clips in the sentence
  [number] - select a clip by index (starting from 0)
  [from]-[to] - select clips by range
  @[substring]@ - select clips by word substring`,
	Example: `  signtutor sign -s "hello my name" --json`,
	PreRun: func(cmd *cobra.Command, args []string) {
		sentence, _ := cmd.Flags().GetString("sentence")

		if sentence == "" && len(args) == 0 {
			handleErr(errors.New("a sentence is required as arguments or the --sentence flag"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		var banks []sign.Signbank

		for _, b := range signbank.Defaults() {
			created, err := b.CreateBank()
			handleErr(err)

			banks = append(banks, created)
		}

		utterance := lo.Must(cmd.Flags().GetString("sentence"))
		if utterance == "" {
			utterance = strings.Join(args, " ")
		}

		output := lo.Must(cmd.Flags().GetString("output"))
		var writer io.Writer
		if output != "" {
			f, err := filesystem.API().Create(output)
			handleErr(err)
			writer = f
		} else {
			writer = os.Stdout
		}

		clipsFlag := lo.Must(cmd.Flags().GetString("clips"))
		clipsFilter := mo.None[inline.ClipsFilter]()
		if clipsFlag != "" {
			fn, err := inline.ParseClipsFilter(clipsFlag)
			handleErr(err)
			clipsFilter = mo.Some(fn)
		}

		options := &inline.Options{
			Banks:       banks,
			Json:        lo.Must(cmd.Flags().GetBool("json")),
			Utterance:   utterance,
			ClipsFilter: clipsFilter,
			Out:         writer,
			Sources:     lo.Must(cmd.Flags().GetBool("clip-sources")),
		}

		handleErr(inline.Run(options))
	},
}

func init() {
	signCmd.AddCommand(signSchemaCmd)
}

// signSchemaCmd generates JSON schemas for structured sign command outputs.
var signSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Generate the JSON schema for structured sign command outputs",
	Run: func(cmd *cobra.Command, args []string) {
		reflector := new(jsonschema.Reflector)
		reflector.Anonymous = true
		reflector.Namer = func(t reflect.Type) string {
			name := t.Name()
			switch strings.ToLower(name) {
			case "clip", "sentence", "output":
				return filepath.Base(t.PkgPath()) + "." + name
			}

			return name
		}

		schema := reflector.Reflect(&inline.Output{})

		handleErr(json.NewEncoder(os.Stdout).Encode(schema))
	},
}
