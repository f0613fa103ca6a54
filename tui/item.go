// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/signtutor-cli/signtutor/history"
	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/style"
	"github.com/signtutor-cli/signtutor/util"
)

// listItem implements the list.Item interface, wrapping domain models for
// terminal display.
type listItem struct {
	internal interface{}
	marked   bool
}

func (t *listItem) toggleMark() {
	t.marked = !t.marked
}

func (t *listItem) getMark() string {
	switch t.internal.(type) {
	case *signbank.Bank:
		return lipgloss.NewStyle().Bold(true).Foreground(style.AccentColor).Render(icon.Get(icon.Success))
	default:
		return ""
	}
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() (title string) {
	switch e := t.internal.(type) {
	case *history.SavedSentence:
		title = e.Utterance
	case *signbank.Bank:
		title = e.Name
		if e.IsCustom {
			title = fmt.Sprintf("%s %s", title, icon.Get(icon.Lua))
		}
	case string:
		title = e
	default:
		title = t.FilterValue()
	}

	if title != "" && t.marked {
		title = fmt.Sprintf("%s %s", title, t.getMark())
	}

	return
}

// Description retrieves the secondary metadata for the list item.
func (t *listItem) Description() (description string) {
	switch e := t.internal.(type) {
	case *history.SavedSentence:
		var parts []string

		parts = append(parts, fmt.Sprintf("%s, practiced %s",
			util.Quantify(len(e.Words), "word", "words"),
			util.Quantify(e.TimesPracticed, "time", "times"),
		))

		if !e.LastPracticed.IsZero() {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.FaintColor).
				Render(e.LastPracticed.Format("2006-01-02")))
		}

		if len(e.Unresolved) > 0 {
			parts = append(parts, lipgloss.NewStyle().Foreground(style.Yellow).
				Render(fmt.Sprintf("%d unresolved", len(e.Unresolved))))
		}

		description = strings.Join(parts, " • ")
	case *signbank.Bank:
		if e.IsCustom {
			description = "Lua Extension"
		} else {
			description = "Built-in Signbank"
		}
	case string:
		description = ""
	}

	return
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	switch e := t.internal.(type) {
	case *history.SavedSentence:
		return e.Utterance
	case *signbank.Bank:
		return e.Name
	case string:
		return e
	default:
		return ""
	}
}
