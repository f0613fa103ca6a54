// Package cmd implements the command-line interface for signtutor.
package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/signtutor-cli/signtutor/auth"
	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/tutor"
)

func init() {
	rootCmd.AddCommand(chatCmd)

	chatCmd.Flags().StringP("word", "w", "", "Ask for an explanation of a single sign instead of free-form chat")
}

// chatCmd sends a one-shot question to the LLM tutor.
var chatCmd = &cobra.Command{
	Use:     "chat [question]",
	Short:   "Ask the sign language tutor a one-shot question",
	Example: `  signtutor chat "How do I sign a question?"`,
	PreRun: func(cmd *cobra.Command, args []string) {
		word, _ := cmd.Flags().GetString("word")

		if word == "" && len(args) == 0 {
			handleErr(errors.New("a question is required as arguments or the --word flag"))
		}
	},
	Run: func(cmd *cobra.Command, args []string) {
		if !tutor.Enabled() {
			handleErr(errors.New("tutor is disabled; enable it with 'signtutor config set -k tutor.enable -v true'"))
		}

		word := lo.Must(cmd.Flags().GetString("word"))

		var (
			reply string
			err   error
		)

		if word != "" {
			reply, err = tutor.Explain(word)
		} else {
			reply, err = tutor.Chat([]tutor.Message{
				{Role: "user", Content: strings.Join(args, " ")},
			})
		}

		handleErr(err)
		fmt.Println(reply)
	},
}

func init() {
	chatCmd.AddCommand(chatAuthCmd)
}

// chatAuthCmd manages the tutor backend API credential.
var chatAuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API credential used by the tutor backend",
}

func init() {
	chatAuthCmd.AddCommand(chatAuthSetCmd)
}

// chatAuthSetCmd stores the tutor API key in the system keyring.
var chatAuthSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the tutor API key in the system keyring",
	Run: func(cmd *cobra.Command, args []string) {
		var token string
		prompt := &survey.Password{
			Message: "Tutor API key:",
		}
		handleErr(survey.AskOne(prompt, &token, survey.WithValidator(survey.Required)))

		handleErr(auth.SetToken(token))
		fmt.Printf("%s tutor API key stored\n", icon.Get(icon.Success))
	},
}

func init() {
	chatAuthCmd.AddCommand(chatAuthDeleteCmd)
}

// chatAuthDeleteCmd removes the tutor API key from the system keyring.
var chatAuthDeleteCmd = &cobra.Command{
	Use:     "delete",
	Short:   "Remove the tutor API key from the system keyring",
	Aliases: []string{"remove"},
	Run: func(cmd *cobra.Command, args []string) {
		var confirmed bool
		confirm := &survey.Confirm{
			Message: "Remove the stored tutor API key?",
			Default: false,
		}
		handleErr(survey.AskOne(confirm, &confirmed))

		if !confirmed {
			return
		}

		handleErr(auth.DeleteToken())
		fmt.Printf("%s tutor API key removed\n", icon.Get(icon.Success))
	},
}
