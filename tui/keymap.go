// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"

	"github.com/signtutor-cli/signtutor/color"
	"github.com/signtutor-cli/signtutor/style"
)

// statefulKeymap defines the keyboard interactions available within various application states.
type statefulKeymap struct {
	state state

	quit, forceQuit,
	selectOne, selectAll, clearSelection,
	acceptSuggestion,
	remove,
	confirm,
	openClip,
	sign,
	back,
	up, down, left, right,
	top, bottom,
	playPause, restart, nextWord, prevWord, jumpToWord, slowMotion,
	explain, chat, reportKey, saveAsDefault,
	showHelp key.Binding
}

// setState updates the active keymap configuration to match the specified application state.
func (k *statefulKeymap) setState(newState state) {
	k.state = newState
}

func newStatefulKeymap() *statefulKeymap {
	return &statefulKeymap{
		quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		forceQuit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+d"),
			key.WithHelp("ctrl+c", "quit"),
		),
		remove: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "remove"),
		),
		selectOne: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select one"),
		),
		selectAll: key.NewBinding(
			key.WithKeys("ctrl+a", "tab", "*"),
			key.WithHelp("tab", "select all"),
		),
		clearSelection: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "clear selection"),
		),
		confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "confirm"),
		),
		openClip: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open clip"),
		),
		sign: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp(style.Fg(color.Orange)("enter"), style.Fg(color.Orange)("sign")),
		),
		acceptSuggestion: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "accept suggestion"),
		),
		back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑", "up"),
		),
		down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓", "down"),
		),
		left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←", "left"),
		),
		right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→", "right"),
		),
		top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "top"),
		),
		bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "bottom"),
		),
		playPause: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "pause/resume"),
		),
		restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		nextWord: key.NewBinding(
			key.WithKeys("right", "l", "n"),
			key.WithHelp("→", "next word"),
		),
		prevWord: key.NewBinding(
			key.WithKeys("left", "h", "p"),
			key.WithHelp("←", "prev word"),
		),
		jumpToWord: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to word"),
		),
		slowMotion: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "slow motion"),
		),
		explain: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "explain sign"),
		),
		chat: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "ask tutor"),
		),
		reportKey: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "report"),
		),
		saveAsDefault: key.NewBinding(
			key.WithKeys("S", "ctrl+s"),
			key.WithHelp("S", "save as default"),
		),
		showHelp: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
	}
}

func (k *statefulKeymap) help() ([]key.Binding, []key.Binding) {
	h := func(bindings ...key.Binding) []key.Binding {
		return bindings
	}

	to2 := func(a []key.Binding) ([]key.Binding, []key.Binding) {
		return a, a
	}

	switch k.state {
	case loadingState:
		return to2(h(k.forceQuit, k.back))
	case historyState:
		return to2(h(k.confirm, k.remove, k.reportKey, k.back))
	case banksState:
		use := withDescription(k.confirm, "sign with selected")
		return h(k.selectOne, k.selectAll, use, k.saveAsDefault), h(k.selectOne, k.selectAll, k.clearSelection, use, k.saveAsDefault)
	case inputState:
		return to2(h(k.sign, k.acceptSuggestion, k.chat, k.forceQuit))
	case signingState:
		return h(k.playPause, k.restart, k.slowMotion, k.back),
			h(k.playPause, k.restart, k.nextWord, k.prevWord, k.jumpToWord, k.slowMotion, k.explain, k.chat, k.back)
	case chatState:
		return to2(h(k.confirm, k.back, k.forceQuit))
	case reportState:
		return to2(h(k.confirm, k.back, k.quit))
	case errorState:
		return to2(h(k.back, k.quit))
	default:
		return to2(h())
	}
}

func (k *statefulKeymap) ShortHelp() []key.Binding {
	short, _ := k.help()
	return short
}

func (k *statefulKeymap) FullHelp() [][]key.Binding {
	_, full := k.help()
	return [][]key.Binding{full}
}

func (k *statefulKeymap) forList() list.KeyMap {
	return list.KeyMap{
		CursorUp:             k.up,
		CursorDown:           k.down,
		NextPage:             k.right,
		PrevPage:             k.left,
		GoToStart:            k.top,
		GoToEnd:              k.bottom,
		ClearFilter:          k.back,
		CancelWhileFiltering: k.back,
		AcceptWhileFiltering: k.confirm,
		ShowFullHelp:         k.showHelp,
		CloseFullHelp:        k.showHelp,
		Quit:                 k.quit,
		ForceQuit:            k.forceQuit,
	}
}

func withDescription(k key.Binding, description string) key.Binding {
	return key.NewBinding(
		key.WithKeys(k.Keys()...),
		key.WithHelp(k.Help().Key, description),
	)
}
