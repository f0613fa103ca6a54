// Package mini implements a lightweight, prompt-driven interface for signing
// practice without the full-screen TUI.
package mini

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"

	"github.com/signtutor-cli/signtutor/history"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/player"
	"github.com/signtutor-cli/signtutor/query"
	"github.com/signtutor-cli/signtutor/resolver"
	"github.com/signtutor-cli/signtutor/sequence"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/util"
)

type state int

const (
	bankSelectState state = iota + 1
	sentenceInputState
	playState
	historySelectState
	quitState
)

func (m *mini) handleBankSelectState() error {
	if defaults := viper.GetStringSlice(key.DefaultSignbanks); len(defaults) > 0 {
		m.wordResolver = resolver.FromConfig()
		m.newState(sentenceInputState)
		return nil
	}

	var banks []*signbank.Bank
	banks = append(banks, signbank.Builtins()...)
	banks = append(banks, signbank.Customs()...)

	slices.SortFunc(banks, func(a, b *signbank.Bank) int {
		return strings.Compare(a.Name, b.Name)
	})

	title("Select Signbanks")
	names := lo.Map(banks, func(b *signbank.Bank, _ int) string { return b.Name })
	chosen, err := multiMenu("Which signbanks should resolve your words?", names)
	if err != nil {
		return err
	}

	if len(chosen) == 0 {
		fail("No signbanks selected")
		return nil
	}

	var resolved []sign.Signbank
	erase := progress("Loading Signbanks..")
	for _, name := range chosen {
		bank, ok := signbank.Get(name)
		if !ok {
			continue
		}

		created, err := bank.CreateBank()
		if err != nil {
			log.Warnf("failed to load signbank %s: %v", name, err)
			continue
		}
		resolved = append(resolved, created)
	}
	erase()

	if len(resolved) == 0 {
		return errors.New("none of the selected signbanks could be loaded")
	}

	m.wordResolver = resolver.New(resolved...)
	m.newState(sentenceInputState)
	return nil
}

func (m *mini) handleSentenceInputState() error {
	title("Sign a Sentence")

	in, err := getInput("Sentence:", func(s string) bool {
		words := util.Words(s)
		if len(words) == 0 {
			return false
		}

		if limit := viper.GetInt(key.MiniWordLimit); limit > 0 && len(words) > limit {
			return false
		}

		return true
	})
	if err != nil {
		return err
	}

	if err := query.Remember(in, 1); err != nil {
		log.Error(err)
	}

	erase := progress("Resolving Sentence..")
	sentence, err := m.wordResolver.Resolve(in)
	erase()

	if err != nil {
		if errors.Is(err, resolver.ErrNothingToSign) {
			fail("Nothing to sign in that sentence")
			return nil
		}
		return err
	}

	if !sentence.Playable() {
		fail("None of your signbanks can demonstrate those words")
		return nil
	}

	for _, word := range sentence.Unresolved {
		fail(fmt.Sprintf("No clip for %s", word))
	}

	m.utterance = in
	m.sentence = sentence

	if viper.GetBool(key.HistorySaveOnSign) {
		if err := history.Save(sentence); err != nil {
			log.Error(err)
		}
	}

	m.newState(playState)
	return nil
}

func (m *mini) handlePlayState() error {
	if m.seqPlayer == nil {
		if err := m.startPlayback(); err != nil {
			m.stopPlayback()
			fail("Playback failed: " + err.Error())
			m.newState(sentenceInputState)
			return nil
		}
	}

	st := m.seqPlayer.State()
	title(fmt.Sprintf("Signing %s (%d/%d)", m.sentence, st.Cursor+1, st.Len))

	const (
		choicePause    = "Pause / Resume"
		choiceRestart  = "Restart"
		choiceNext     = "Next word"
		choicePrev     = "Previous word"
		choiceSlow     = "Toggle slow motion"
		choiceSentence = "New sentence"
		choiceQuit     = "Quit"
	)

	choice, err := menu("Playback:", []string{
		choicePause, choiceRestart, choiceNext, choicePrev,
		choiceSlow, choiceSentence, choiceQuit,
	})
	if err != nil {
		return err
	}

	switch choice {
	case choicePause:
		m.seqPlayer.TogglePause()
	case choiceRestart:
		m.seqPlayer.Restart()
	case choiceNext:
		st := m.seqPlayer.State()
		m.seqPlayer.JumpTo((st.Cursor + 1) % st.Len)
	case choicePrev:
		st := m.seqPlayer.State()
		m.seqPlayer.JumpTo((st.Cursor - 1 + st.Len) % st.Len)
	case choiceSlow:
		rate := 1.0
		if !m.slow {
			rate = viper.GetFloat64(key.PlayerSlowMotionRate)
		}
		if err := m.seqPlayer.SetRate(rate); err != nil {
			log.Error(err)
		} else {
			m.slow = !m.slow
		}
	case choiceSentence:
		m.stopPlayback()
		m.newState(sentenceInputState)
	case choiceQuit:
		m.newState(quitState)
	}

	return nil
}

func (m *mini) handleHistorySelectState() error {
	saved, err := history.Get()
	if err != nil {
		return err
	}

	if len(saved) == 0 {
		fail("No practice history yet")
		m.newState(bankSelectState)
		return nil
	}

	sentences := lo.Values(saved)
	slices.SortFunc(sentences, func(a, b *history.SavedSentence) int {
		return b.LastPracticed.Compare(a.LastPracticed)
	})

	title("Practice History")
	labels := lo.Map(sentences, func(s *history.SavedSentence, _ int) string { return s.String() })
	choice, err := menu("Pick a sentence to practice again:", labels)
	if err != nil {
		return err
	}

	idx := lo.IndexOf(labels, choice)
	if idx < 0 {
		return nil
	}

	if m.wordResolver == nil {
		m.wordResolver = resolver.FromConfig()
	}

	erase := progress("Resolving Sentence..")
	sentence, err := m.wordResolver.Resolve(sentences[idx].Utterance)
	erase()
	if err != nil {
		return err
	}

	m.utterance = sentences[idx].Utterance
	m.sentence = sentence
	m.newState(playState)
	return nil
}

func (m *mini) startPlayback() error {
	seq, err := sequence.NewSequence(m.sentence.Clips)
	if err != nil {
		return err
	}

	m.surface = player.NewMPV()
	m.seqPlayer = sequence.NewPlayer(m.surface, seq)
	m.seqPlayer.SetLoadTimeout(time.Duration(viper.GetInt(key.PlayerLoadTimeout)) * time.Second)

	epsilon := viper.GetFloat64(key.PlayerEndEpsilon)
	interval := time.Duration(viper.GetInt(key.PlayerPollInterval)) * time.Millisecond
	m.watcher = sequence.NewWatcher(m.seqPlayer, epsilon, interval)

	m.seqPlayer.Start()
	m.watcher.Start()
	m.slow = false
	return nil
}

func (m *mini) stopPlayback() {
	if m.watcher != nil {
		m.watcher.Stop()
		m.watcher = nil
	}

	if m.surface != nil {
		if err := m.surface.Close(); err != nil {
			log.Error(err)
		}
		m.surface = nil
	}

	m.seqPlayer = nil
	m.sentence = nil
}
