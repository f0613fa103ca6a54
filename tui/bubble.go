// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/samber/mo"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/constant"
	"github.com/signtutor-cli/signtutor/internal/ui"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/player"
	"github.com/signtutor-cli/signtutor/report"
	"github.com/signtutor-cli/signtutor/resolver"
	"github.com/signtutor-cli/signtutor/sequence"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/style"
	"github.com/signtutor-cli/signtutor/tutor"
	"github.com/signtutor-cli/signtutor/util"
)

// statefulBubble encapsulates the comprehensive application state, including
// component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]
	loading       bool
	busy          bool // Protects against rapid input during async ops

	keymap *statefulKeymap

	// components
	spinnerC   spinner.Model
	inputC     textinput.Model
	chatInputC textinput.Model
	historyC   list.Model
	banksC     list.Model
	progressC  progress.Model
	helpC      help.Model

	selectedBanks map[*signbank.Bank]struct{}
	wordResolver  *resolver.Resolver

	resolvedChannel chan *sign.Sentence
	renderChannel   chan sequence.RenderState
	chatChannel     chan string
	reportChannel   chan *report.Report
	feedbackChannel chan string

	progressStatus string

	// playback session; the bubble exclusively owns the player handle and
	// discards it when the signing view is left
	sentence    *sign.Sentence
	seqPlayer   *sequence.Player
	watcher     *sequence.Watcher
	surface     *player.MPV
	playerState   sequence.RenderState
	slowMotion    bool
	practiceSaved bool

	chatHistory  []tutor.Message
	chatWaiting  bool
	lastReport   *report.Report
	lastFeedback string
	lastError    error

	width, height   int
	inputSuggestion mo.Option[string]
	notifier        *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState facilitates an idempotent transition to a target state, recording
// the previous state in the navigation history when appropriate.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	// Do not push these states to history
	if b.state != loadingState && b.state != signingState {
		b.statesHistory.Push(b.state)
	}

	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if b.statesHistory.Len() > 0 {
		s := b.statesHistory.Pop()
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	styledWidth := width - x
	styledHeight := height - y

	listWidth := width - xx
	listHeight := height - yy

	b.historyC.SetSize(listWidth, listHeight)
	b.historyC.Help.Width = listWidth

	b.banksC.SetSize(listWidth, listHeight)
	b.banksC.Help.Width = listWidth

	b.progressC.Width = listWidth

	b.width = styledWidth
	b.height = styledHeight
	b.helpC.Width = listWidth
}

// startLoading enters a concurrent loading state, initializing visual indicators.
func (b *statefulBubble) startLoading() tea.Cmd {
	b.loading = true
	b.busy = true
	return b.spinnerC.Tick
}

// stopLoading exits the loading state.
func (b *statefulBubble) stopLoading() {
	b.loading = false
	b.busy = false
}

// newBubble performs a complete initialization of the application's primary UI model.
func newBubble(options *Options) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,

		resolvedChannel: make(chan *sign.Sentence),
		renderChannel:   make(chan sequence.RenderState, 64),
		chatChannel:     make(chan string),
		reportChannel:   make(chan *report.Report),
		feedbackChannel: make(chan string),

		selectedBanks: make(map[*signbank.Bank]struct{}),

		notifier: &ui.Model{},
	}

	type listOptions struct {
		TitleStyle mo.Option[lipgloss.Style]
	}

	makeList := func(title string, description bool, options *listOptions) list.Model {
		delegate := list.NewDefaultDelegate()
		delegate.SetSpacing(viper.GetInt(key.TUIItemSpacing))
		delegate.ShowDescription = description
		delegate.Styles.SelectedTitle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder(), false, false, false, true).
			BorderForeground(style.AccentColor).
			Foreground(style.AccentColor).
			Padding(0, 0, 0, 1)
		delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
		delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

		listC := list.New([]list.Item{}, delegate, 0, 0)
		listC.KeyMap = bubble.keymap.forList()
		listC.AdditionalShortHelpKeys = bubble.keymap.ShortHelp
		listC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
			return bubble.keymap.FullHelp()[0]
		}
		listC.Title = title
		listC.Styles.NoItems = paddingStyle
		if titleStyle, ok := options.TitleStyle.Get(); ok {
			listC.Styles.Title = titleStyle
		}
		listC.StatusMessageLifetime = time.Hour * 999
		listC.SetShowPagination(false)
		listC.SetShowStatusBar(false)

		return listC
	}

	bubble.helpC = help.New()

	bubble.spinnerC = spinner.New()
	bubble.spinnerC.Spinner = spinner.Dot
	bubble.spinnerC.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	bubble.inputC = textinput.New()
	bubble.inputC.Placeholder = fmt.Sprintf("Type a sentence to sign (v%s)", constant.Version)
	bubble.inputC.CharLimit = 120
	bubble.inputC.Prompt = viper.GetString(key.TUISearchPromptString)

	bubble.chatInputC = textinput.New()
	bubble.chatInputC.Placeholder = "Ask the tutor anything about signing"
	bubble.chatInputC.CharLimit = 300
	bubble.chatInputC.Prompt = "> "

	bubble.progressC = progress.New(progress.WithDefaultGradient())

	bubble.banksC = makeList("Signbanks", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.AccentColor).Padding(0, 1),
		),
	})
	bubble.banksC.SetStatusBarItemName("signbank", "signbanks")

	bubble.historyC = makeList("Practice History", true, &listOptions{
		TitleStyle: mo.Some(
			lipgloss.NewStyle().Foreground(style.Base).Background(style.Yellow).Padding(0, 1),
		),
	})
	bubble.historyC.SetStatusBarItemName("sentence", "sentences")

	bubble.options = options

	if w, h, err := util.TerminalSize(); err == nil {
		bubble.resize(w, h)
	}

	bubble.inputC.Focus()

	return &bubble
}
