// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/signbank"
)

// Init initializes the terminal user interface, triggering initial data
// loads and the background bank update check.
func (b *statefulBubble) Init() tea.Cmd {
	// Auto-select banks if a default set is configured
	if names := viper.GetStringSlice(key.DefaultSignbanks); b.state != historyState && len(names) != 0 {
		for _, name := range names {
			bank, ok := signbank.Get(name)
			if !ok {
				b.raiseError(fmt.Errorf("signbank %s not found", name))
				return nil
			}

			b.selectedBanks[bank] = struct{}{}
		}

		b.setState(inputState)
		return tea.Batch(textinput.Blink, b.buildResolver(), signbank.UpdateBanks())
	}

	return tea.Batch(textinput.Blink, b.loadBanks(), signbank.UpdateBanks())
}
