// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/history"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/open"
	"github.com/signtutor-cli/signtutor/query"
	"github.com/signtutor-cli/signtutor/sequence"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/tutor"
	"github.com/signtutor-cli/signtutor/util"
)

func (b *statefulBubble) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		b.resize(msg.Width, msg.Height)
		return b, nil

	case tea.KeyMsg:
		if bubblesKey.Matches(msg, b.keymap.forceQuit) {
			b.stopSigning()
			return b, tea.Quit
		}

	case error:
		b.stopLoading()
		b.raiseError(msg)
		return b, nil

	case spinner.TickMsg:
		if b.loading || b.chatWaiting || b.state == signingState {
			var cmd tea.Cmd
			b.spinnerC, cmd = b.spinnerC.Update(msg)
			return b, cmd
		}
		return b, nil

	case signbank.BanksUpdatedMsg:
		// Pick up freshly updated bank scripts next time a resolver is built.
		cmd := b.loadBanks()
		return b, tea.Batch(cmd, b.notifier.Update("Signbanks updated"))

	case resolverReadyMsg:
		b.stopLoading()
		b.inputC.Focus()
		b.newState(inputState)
		return b, nil

	case sentenceResolvedMsg:
		b.stopLoading()
		cmd, err := b.startSigning(msg.sentence)
		if err != nil {
			b.raiseError(err)
			return b, nil
		}
		b.newState(signingState)

		var fuzzyNote tea.Cmd
		if word, ok := firstFuzzyWord(msg.sentence); ok {
			fuzzyNote = b.notifier.Update("Approximate match: " + word)
		}
		return b, tea.Batch(cmd, fuzzyNote)

	case renderStateMsg:
		b.playerState = sequence.RenderState(msg)
		return b, tea.Batch(b.waitForRenderState(), b.maybeSavePractice(b.playerState))

	case chatReplyMsg:
		b.chatWaiting = false
		b.chatHistory = append(b.chatHistory, tutor.Message{Role: "assistant", Content: msg.reply})
		return b, nil

	case reportReadyMsg:
		b.stopLoading()
		b.lastReport = msg.report
		b.lastFeedback = ""
		b.newState(reportState)

		if tutor.Enabled() {
			return b, tea.Batch(b.requestFeedback(msg.report), b.waitForFeedback())
		}
		return b, nil

	case feedbackMsg:
		b.lastFeedback = msg.feedback
		return b, nil
	}

	if cmd := b.notifier.Update(msg); cmd != nil {
		return b, cmd
	}

	switch b.state {
	case historyState:
		return b.updateHistory(msg)
	case banksState:
		return b.updateBanks(msg)
	case inputState:
		return b.updateInput(msg)
	case signingState:
		return b.updateSigning(msg)
	case chatState:
		return b.updateChat(msg)
	case reportState:
		return b.updateReport(msg)
	case errorState:
		return b.updateError(msg)
	case loadingState:
		var cmd tea.Cmd
		b.spinnerC, cmd = b.spinnerC.Update(msg)
		return b, cmd
	}

	return b, nil
}

func (b *statefulBubble) updateHistory(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				break
			}
			saved := item.internal.(*history.SavedSentence)

			b.setState(loadingState)
			b.progressStatus = "Resolving sentence"
			return b, tea.Batch(
				b.startLoading(),
				b.resolveSentence(saved.Utterance),
				b.waitForSentenceResolved(),
			)

		case bubblesKey.Matches(msg, b.keymap.remove):
			item, ok := b.historyC.SelectedItem().(*listItem)
			if !ok {
				break
			}
			saved := item.internal.(*history.SavedSentence)

			if err := history.Remove(saved); err != nil {
				b.raiseError(err)
				return b, nil
			}

			cmd, err := b.loadHistory()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, cmd

		case bubblesKey.Matches(msg, b.keymap.reportKey):
			b.setState(loadingState)
			b.progressStatus = "Assembling report"
			return b, tea.Batch(b.startLoading(), b.generateReport(), b.waitForReport())

		case bubblesKey.Matches(msg, b.keymap.back):
			b.newState(banksState)
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.historyC, cmd = b.historyC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateBanks(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.selectOne):
			item, ok := b.banksC.SelectedItem().(*listItem)
			if !ok {
				break
			}
			bank := item.internal.(*signbank.Bank)

			item.toggleMark()
			if item.marked {
				b.selectedBanks[bank] = struct{}{}
			} else {
				delete(b.selectedBanks, bank)
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.selectAll):
			for _, it := range b.banksC.Items() {
				item := it.(*listItem)
				if !item.marked {
					item.toggleMark()
					b.selectedBanks[item.internal.(*signbank.Bank)] = struct{}{}
				}
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.clearSelection):
			for _, it := range b.banksC.Items() {
				item := it.(*listItem)
				if item.marked {
					item.toggleMark()
				}
			}
			b.selectedBanks = make(map[*signbank.Bank]struct{})
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.saveAsDefault):
			names := make([]string, 0, len(b.selectedBanks))
			for bank := range b.selectedBanks {
				names = append(names, bank.Name)
			}
			viper.Set(key.DefaultSignbanks, names)
			if err := viper.WriteConfig(); err != nil {
				if _, ok := err.(viper.ConfigFileNotFoundError); ok {
					err = viper.SafeWriteConfig()
				}
				if err != nil {
					b.raiseError(err)
					return b, nil
				}
			}
			return b, b.notifier.Update(fmt.Sprintf("Saved %s as default", util.Quantify(len(names), "bank", "banks")))

		case bubblesKey.Matches(msg, b.keymap.confirm):
			// With nothing marked, use the bank under the cursor.
			if len(b.selectedBanks) == 0 {
				item, ok := b.banksC.SelectedItem().(*listItem)
				if !ok {
					break
				}
				b.selectedBanks[item.internal.(*signbank.Bank)] = struct{}{}
			}

			b.setState(loadingState)
			b.progressStatus = "Loading signbanks"
			return b, tea.Batch(b.startLoading(), b.buildResolver())

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.banksC, cmd = b.banksC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.sign):
			utterance := strings.TrimSpace(b.inputC.Value())
			if utterance == "" {
				break
			}

			if err := query.Remember(utterance, 1); err != nil {
				log.Error(err)
			}

			b.setState(loadingState)
			b.progressStatus = "Resolving sentence"
			return b, tea.Batch(
				b.startLoading(),
				b.resolveSentence(utterance),
				b.waitForSentenceResolved(),
			)

		case bubblesKey.Matches(msg, b.keymap.acceptSuggestion):
			if suggestion, ok := b.inputSuggestion.Get(); ok {
				b.inputC.SetValue(suggestion)
				b.inputC.CursorEnd()
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.chat):
			b.chatInputC.Focus()
			b.newState(chatState)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.inputC, cmd = b.inputC.Update(msg)

	if value := strings.TrimSpace(b.inputC.Value()); value != "" {
		b.inputSuggestion = query.Suggest(value)
	} else {
		b.inputSuggestion = mo.None[string]()
	}

	return b, cmd
}

func (b *statefulBubble) updateSigning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.playPause):
			b.seqPlayer.TogglePause()
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.restart):
			b.seqPlayer.Restart()
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.nextWord):
			b.seqPlayer.JumpTo((b.playerState.Cursor + 1) % b.playerState.Len)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.prevWord):
			b.seqPlayer.JumpTo((b.playerState.Cursor - 1 + b.playerState.Len) % b.playerState.Len)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.jumpToWord):
			// Digit keys address words directly; out of range presses are
			// ignored by the player.
			n := int(msg.Runes[0] - '0')
			b.seqPlayer.JumpTo(n - 1)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.slowMotion):
			b.toggleSlowMotion()
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.openClip):
			clip := b.sentence.Clips[b.playerState.Cursor]
			if err := open.Run(clip.Source); err != nil {
				log.Error(err)
			}
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.explain):
			if !tutor.Enabled() {
				return b, b.notifier.Update("Tutor is disabled; enable it with 'signtutor config set -k tutor.enable -v true'")
			}
			return b, tea.Batch(
				b.notifier.Update("Asking the tutor about "+b.playerState.Word),
				b.explainCurrentWord(),
				b.waitForChatReply(),
			)

		case bubblesKey.Matches(msg, b.keymap.chat):
			b.chatInputC.Focus()
			b.newState(chatState)
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.back), bubblesKey.Matches(msg, b.keymap.quit):
			b.stopSigning()
			b.setState(inputState)
			b.inputC.Focus()
			return b, nil
		}
	}

	return b, nil
}

func (b *statefulBubble) updateChat(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			content := strings.TrimSpace(b.chatInputC.Value())
			if content == "" || b.chatWaiting {
				break
			}

			if !tutor.Enabled() {
				return b, b.notifier.Update("Tutor is disabled; enable it with 'signtutor config set -k tutor.enable -v true'")
			}

			b.chatInputC.Reset()
			b.chatWaiting = true
			return b, tea.Batch(b.spinnerC.Tick, b.askTutor(content), b.waitForChatReply())

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		}
	}

	var cmd tea.Cmd
	b.chatInputC, cmd = b.chatInputC.Update(msg)
	return b, cmd
}

func (b *statefulBubble) updateReport(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.confirm):
			path, err := b.lastReport.Save()
			if err != nil {
				b.raiseError(err)
				return b, nil
			}
			return b, b.notifier.Update("Report saved to " + path)

		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil

		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	return b, nil
}

func (b *statefulBubble) updateError(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case bubblesKey.Matches(msg, b.keymap.back):
			b.previousState()
			return b, nil
		case bubblesKey.Matches(msg, b.keymap.quit):
			return b, tea.Quit
		}
	}

	return b, nil
}

func firstFuzzyWord(sentence *sign.Sentence) (string, bool) {
	for _, clip := range sentence.Clips {
		if clip.Fuzzy {
			return clip.Word, true
		}
	}
	return "", false
}
