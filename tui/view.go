// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/icon"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/style"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)

	currentWordStyle = lipgloss.NewStyle().Bold(true).
				Foreground(style.Base).Background(style.AccentColor).Padding(0, 1)
	playedWordStyle   = lipgloss.NewStyle().Foreground(style.FaintColor).Padding(0, 1)
	upcomingWordStyle = lipgloss.NewStyle().Foreground(style.Text).Padding(0, 1)
	fuzzyMarkStyle    = lipgloss.NewStyle().Foreground(style.Yellow)
	unresolvedStyle   = lipgloss.NewStyle().Foreground(style.Red).Strikethrough(true).Padding(0, 1)
)

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case loadingState:
		output = b.viewLoading()
	case historyState:
		output = b.viewHistory()
	case banksState:
		output = b.viewBanks()
	case inputState:
		output = b.viewInput()
	case signingState:
		output = b.viewSigning()
	case chatState:
		output = b.viewChat()
	case reportState:
		output = b.viewReport()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) viewLoading() string {
	return b.renderLines(
		true,
		[]string{
			style.Title("Loading"),
			"",
			b.spinnerC.View() + " " + b.progressStatus,
		},
	)
}

func (b *statefulBubble) viewHistory() string {
	return listExtraPaddingStyle.Render(b.historyC.View())
}

func (b *statefulBubble) viewBanks() string {
	return listExtraPaddingStyle.Render(b.banksC.View())
}

func (b *statefulBubble) viewInput() string {
	lines := []string{
		style.Title("Sign a Sentence"),
		"",
		b.inputC.View(),
	}

	if suggestion, ok := b.inputSuggestion.Get(); ok && suggestion != b.inputC.Value() {
		lines = append(lines, "", style.Faint(fmt.Sprintf("%s (tab to accept)", suggestion)))
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewSigning() string {
	if b.sentence == nil || b.playerState.Len == 0 {
		return b.viewLoading()
	}

	state := b.playerState

	lines := []string{
		style.Title("Now Signing"),
		"",
		style.Truncate(b.width)(b.wordChips()),
	}

	if viper.GetBool(key.TUIShowClipPaths) && state.Cursor < len(b.sentence.Clips) {
		source := b.sentence.Clips[state.Cursor].Source
		lines = append(lines, style.Truncate(b.width)(style.Faint(source)))
	}

	lines = append(lines,
		"",
		b.progressC.ViewAs(float64(state.Cursor+1)/float64(state.Len)),
		"",
		style.Truncate(b.width)(b.playbackStatus()),
	)

	return b.renderLines(true, lines)
}

// wordChips renders the sentence with the clip under the cursor highlighted.
func (b *statefulBubble) wordChips() string {
	var chips []string

	for i, clip := range b.sentence.Clips {
		word := clip.Word
		if clip.Fuzzy {
			word += fuzzyMarkStyle.Render("~")
		}

		switch {
		case i == b.playerState.Cursor:
			chips = append(chips, currentWordStyle.Render(word))
		case i < b.playerState.Cursor:
			chips = append(chips, playedWordStyle.Render(word))
		default:
			chips = append(chips, upcomingWordStyle.Render(word))
		}
	}

	for _, word := range b.sentence.Unresolved {
		chips = append(chips, unresolvedStyle.Render(word))
	}

	return strings.Join(chips, " ")
}

func (b *statefulBubble) playbackStatus() string {
	var parts []string

	switch {
	case b.playerState.Transitioning:
		parts = append(parts, b.spinnerC.View()+" loading clip")
	case b.playerState.Paused:
		parts = append(parts, icon.Get(icon.Pause)+" paused")
	default:
		parts = append(parts, icon.Get(icon.Play)+" playing")
	}

	parts = append(parts, fmt.Sprintf("%d/%d %s",
		b.playerState.Cursor+1, b.playerState.Len,
		style.Fg(style.AccentColor)(b.playerState.Word)))

	if b.slowMotion {
		parts = append(parts, style.Faint("slow motion"))
	}

	return strings.Join(parts, "  ")
}

func (b *statefulBubble) viewChat() string {
	lines := []string{
		style.Title("Tutor"),
		"",
	}

	for _, message := range b.chatHistory {
		var prefix string
		switch message.Role {
		case "user":
			prefix = style.Fg(style.AccentColor)("You: ")
		case "assistant":
			prefix = style.Fg(style.SuccessColor)("Tutor: ")
		default:
			continue
		}

		wrapped := wrap.String(prefix+message.Content, max(b.width-4, 20))
		lines = append(lines, strings.Split(wrapped, "\n")...)
		lines = append(lines, "")
	}

	if b.chatWaiting {
		lines = append(lines, b.spinnerC.View()+" thinking", "")
	}

	lines = append(lines, b.chatInputC.View())

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewReport() string {
	lines := []string{
		style.Title("Practice Report"),
		"",
	}

	if b.lastReport != nil {
		rendered := wrap.String(b.lastReport.Render(), max(b.width-4, 20))
		lines = append(lines, strings.Split(rendered, "\n")...)
	}

	if b.lastFeedback != "" {
		lines = append(lines, "", style.Fg(style.SuccessColor)("Tutor feedback"), "")
		wrapped := wrap.String(b.lastFeedback, max(b.width-4, 20))
		lines = append(lines, strings.Split(wrapped, "\n")...)
	}

	return b.renderLines(true, lines)
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(style.ErrorColor).Bold(true)

	var body string
	if b.lastError != nil {
		body = errorStyle.Render(b.lastError.Error())
	}

	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			wrap.String(body, max(b.width-4, 20)),
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
