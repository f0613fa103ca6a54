// Package mini implements a lightweight, prompt-driven interface for signing
// practice without the full-screen TUI.
package mini

import (
	"errors"
	"fmt"

	"github.com/AlecAivazis/survey/v2"

	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/style"
	"github.com/signtutor-cli/signtutor/util"
)

func title(s string) {
	fmt.Println(style.Title(style.Truncate(truncateAt)(s)))
}

func fail(s string) {
	fmt.Printf("%s %s\n", icon.Get(icon.Fail), s)
}

func progress(s string) func() {
	return util.PrintErasable(fmt.Sprintf("%s %s", icon.Get(icon.Progress), s))
}

func menu(message string, options []string) (string, error) {
	var choice string
	prompt := &survey.Select{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	err := survey.AskOne(prompt, &choice)
	return choice, err
}

func multiMenu(message string, options []string) ([]string, error) {
	var choices []string
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  options,
		PageSize: 15,
	}
	err := survey.AskOne(prompt, &choices)
	return choices, err
}

func getInput(message string, validate func(string) bool) (string, error) {
	var value string
	prompt := &survey.Input{Message: message}
	err := survey.AskOne(prompt, &value, survey.WithValidator(func(answer interface{}) error {
		s, _ := answer.(string)
		if !validate(s) {
			return errors.New("invalid input")
		}
		return nil
	}))
	return value, err
}
