// Package mini implements a lightweight, prompt-driven interface for signing
// practice without the full-screen TUI.
package mini

import (
	"os"

	"github.com/samber/lo"

	"github.com/signtutor-cli/signtutor/player"
	"github.com/signtutor-cli/signtutor/resolver"
	"github.com/signtutor-cli/signtutor/sequence"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/util"
)

var truncateAt = 100

type Options struct {
	Continue bool
}

type mini struct {
	width, height int

	state         state
	statesHistory util.Stack[state]

	wordResolver *resolver.Resolver

	utterance string
	sentence  *sign.Sentence

	surface   *player.MPV
	seqPlayer *sequence.Player
	watcher   *sequence.Watcher
	slow      bool
}

func newMini() *mini {
	return &mini{
		statesHistory: util.Stack[state]{},
	}
}

func (m *mini) previousState() {
	if m.statesHistory.Len() > 0 {
		m.setState(m.statesHistory.Pop())
	}
}

func (m *mini) setState(s state) {
	m.state = s
}

func (m *mini) newState(s state) {
	if m.state == s {
		return
	}

	if !lo.Contains([]state{playState}, m.state) {
		m.statesHistory.Push(m.state)
	}

	m.setState(s)
}

func Run(options *Options) error {
	m := newMini()
	m.state = bankSelectState
	if options.Continue {
		m.state = historySelectState
	}

	if w, h, err := util.TerminalSize(); err == nil {
		m.width, m.height = w, h
		truncateAt = w
	}

	for {
		if err := m.handleState(); err != nil {
			m.stopPlayback()
			return err
		}
	}
}

func (m *mini) handleState() error {
	switch m.state {
	case historySelectState:
		return m.handleHistorySelectState()
	case bankSelectState:
		return m.handleBankSelectState()
	case sentenceInputState:
		return m.handleSentenceInputState()
	case playState:
		return m.handlePlayState()
	case quitState:
		m.stopPlayback()
		os.Exit(0)
	}

	return nil
}
