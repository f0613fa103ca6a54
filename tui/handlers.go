// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/history"
	"github.com/signtutor-cli/signtutor/internal/ui"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/player"
	"github.com/signtutor-cli/signtutor/report"
	"github.com/signtutor-cli/signtutor/resolver"
	"github.com/signtutor-cli/signtutor/sequence"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/tutor"
)

// Channel-fed messages. Async work publishes to the bubble's channels and a
// matching waitFor command relays the value into the Bubble Tea loop.
type (
	resolverReadyMsg    struct{}
	sentenceResolvedMsg struct{ sentence *sign.Sentence }
	renderStateMsg      sequence.RenderState
	chatReplyMsg        struct{ reply string }
	reportReadyMsg      struct{ report *report.Report }
	feedbackMsg         struct{ feedback string }
)

func (b *statefulBubble) waitForSentenceResolved() tea.Cmd {
	return func() tea.Msg {
		return sentenceResolvedMsg{<-b.resolvedChannel}
	}
}

func (b *statefulBubble) waitForRenderState() tea.Cmd {
	return func() tea.Msg {
		return renderStateMsg(<-b.renderChannel)
	}
}

func (b *statefulBubble) waitForChatReply() tea.Cmd {
	return func() tea.Msg {
		return chatReplyMsg{<-b.chatChannel}
	}
}

func (b *statefulBubble) waitForReport() tea.Cmd {
	return func() tea.Msg {
		return reportReadyMsg{<-b.reportChannel}
	}
}

func (b *statefulBubble) waitForFeedback() tea.Cmd {
	return func() tea.Msg {
		return feedbackMsg{<-b.feedbackChannel}
	}
}

// loadBanks fills the bank selection list with built-in and Lua banks.
func (b *statefulBubble) loadBanks() tea.Cmd {
	banks := signbank.Builtins()
	customBanks := signbank.Customs()

	var items []list.Item
	for _, bank := range banks {
		items = append(items, &listItem{internal: bank})
	}

	var customItems []list.Item
	for _, bank := range customBanks {
		customItems = append(customItems, &listItem{internal: bank})
	}
	sort.Slice(customItems, func(i, j int) bool {
		return strings.Compare(customItems[i].FilterValue(), customItems[j].FilterValue()) < 0
	})

	return b.banksC.SetItems(append(items, customItems...))
}

// loadHistory fills the history list with practiced sentences, most recent first.
func (b *statefulBubble) loadHistory() (tea.Cmd, error) {
	saved, err := history.Get()
	if err != nil {
		return nil, err
	}

	entries := lo.Values(saved)
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].LastPracticed.After(entries[j].LastPracticed)
	})

	var items []list.Item
	for _, e := range entries {
		items = append(items, &listItem{internal: e})
	}

	return tea.Batch(b.historyC.SetItems(items), b.loadBanks()), nil
}

// buildResolver instantiates the selected banks off the main loop; Lua banks
// may hit the network on first load.
func (b *statefulBubble) buildResolver() tea.Cmd {
	selected := lo.Keys(b.selectedBanks)

	return func() tea.Msg {
		var banks []sign.Signbank

		for _, bank := range selected {
			log.Info("loading signbank " + bank.ID)
			instance, err := bank.CreateBank()
			if err != nil {
				log.Error(err)
				return err
			}
			banks = append(banks, instance)
		}

		b.wordResolver = resolver.New(banks...)
		return resolverReadyMsg{}
	}
}

// resolveSentence resolves the utterance in the background and publishes the
// result. When no banks were explicitly selected the configured defaults are
// instantiated lazily, which covers the history re-practice path.
func (b *statefulBubble) resolveSentence(utterance string) tea.Cmd {
	return func() tea.Msg {
		if b.wordResolver == nil {
			b.wordResolver = resolver.FromConfig()
		}

		sentence, err := b.wordResolver.Resolve(utterance)
		if err != nil {
			return err
		}

		if !sentence.Playable() {
			return fmt.Errorf(
				"none of your signbanks can demonstrate %q",
				strings.Join(sentence.Unresolved, " "),
			)
		}

		b.resolvedChannel <- sentence
		return nil
	}
}

// startSigning builds the playback session for a resolved sentence. The
// bubble owns the player handle until stopSigning.
func (b *statefulBubble) startSigning(sentence *sign.Sentence) (tea.Cmd, error) {
	seq, err := sequence.NewSequence(sentence.Clips)
	if err != nil {
		return nil, err
	}

	b.sentence = sentence
	b.surface = player.NewMPV()
	b.seqPlayer = sequence.NewPlayer(b.surface, seq)
	b.seqPlayer.SetLoadTimeout(time.Duration(viper.GetInt(key.PlayerLoadTimeout)) * time.Second)
	b.seqPlayer.SetRenderFunc(func(st sequence.RenderState) {
		select {
		case b.renderChannel <- st:
		default:
			// The loop is behind; dropping a snapshot is fine because the
			// next one supersedes it.
		}
	})

	b.playerState = b.seqPlayer.State()
	b.slowMotion = false
	b.practiceSaved = false

	epsilon := viper.GetFloat64(key.PlayerEndEpsilon)
	interval := time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Millisecond
	b.watcher = sequence.NewWatcher(b.seqPlayer, epsilon, interval)

	b.seqPlayer.Start()
	b.watcher.Start()

	return b.waitForRenderState(), nil
}

// maybeSavePractice records the sentence in the practice history once the
// session has covered enough of it. The threshold keeps abandoned sessions
// out of the history.
func (b *statefulBubble) maybeSavePractice(st sequence.RenderState) tea.Cmd {
	if b.practiceSaved || b.sentence == nil || st.Len == 0 {
		return nil
	}
	if !viper.GetBool(key.HistorySaveOnSign) {
		return nil
	}

	threshold := viper.GetInt(key.PlayerCompletionPercentage)
	if (st.Cursor+1)*100 < st.Len*threshold {
		return nil
	}

	b.practiceSaved = true
	sentence := b.sentence
	return func() tea.Msg {
		if err := history.Save(sentence); err != nil {
			log.Error(err)
		}
		return nil
	}
}

// stopSigning tears the playback session down.
func (b *statefulBubble) stopSigning() {
	if b.watcher != nil {
		b.watcher.Stop()
		b.watcher = nil
	}
	if b.surface != nil {
		if err := b.surface.Close(); err != nil {
			log.Error(err)
		}
		b.surface = nil
	}
	b.seqPlayer = nil
	b.sentence = nil
}

// toggleSlowMotion switches the surface between normal speed and the
// configured slow-motion rate.
func (b *statefulBubble) toggleSlowMotion() {
	if b.seqPlayer == nil {
		return
	}

	rate := 1.0
	if !b.slowMotion {
		rate = viper.GetFloat64(key.PlayerSlowMotionRate)
	}

	if err := b.seqPlayer.SetRate(rate); err != nil {
		log.Error(err)
		return
	}
	b.slowMotion = !b.slowMotion
}

// askTutor sends a chat turn to the tutor in the background.
func (b *statefulBubble) askTutor(content string) tea.Cmd {
	b.chatHistory = append(b.chatHistory, tutor.Message{Role: "user", Content: content})
	conversation := make([]tutor.Message, len(b.chatHistory))
	copy(conversation, b.chatHistory)

	return func() tea.Msg {
		reply, err := tutor.Chat(conversation)
		if err != nil {
			return err
		}

		b.chatChannel <- reply
		return nil
	}
}

// explainCurrentWord asks the tutor about the word under the cursor.
func (b *statefulBubble) explainCurrentWord() tea.Cmd {
	word := b.playerState.Word

	return func() tea.Msg {
		explanation, err := tutor.Explain(word)
		if err != nil {
			return err
		}

		b.chatChannel <- fmt.Sprintf("%s: %s", word, explanation)
		return nil
	}
}

// generateReport assembles the practice report in the background and, when
// the tutor is enabled, requests feedback on it.
func (b *statefulBubble) generateReport() tea.Cmd {
	return func() tea.Msg {
		r, err := report.Generate()
		if err != nil {
			return err
		}

		b.reportChannel <- r
		return nil
	}
}

func (b *statefulBubble) requestFeedback(r *report.Report) tea.Cmd {
	return func() tea.Msg {
		feedback, err := report.Feedback(r)
		if err != nil {
			// Queued for retry; not fatal for the report view.
			log.Warn(err)
			return ui.NotifyFeedbackQueued()()
		}

		b.feedbackChannel <- feedback
		return nil
	}
}
