package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/signtutor-cli/signtutor/sequence"
	"github.com/signtutor-cli/signtutor/sign"
)

// idleSurface satisfies sequence.Surface without doing anything, enough to
// drive the player through key handling tests.
type idleSurface struct{}

func (idleSurface) Load(string) error          { return nil }
func (idleSurface) Play() error                { return nil }
func (idleSurface) Pause() error               { return nil }
func (idleSurface) Position() (float64, error) { return 0, nil }
func (idleSurface) Duration() (float64, error) { return 0, nil }
func (idleSurface) SetRate(float64) error      { return nil }
func (idleSurface) Ended() <-chan struct{}     { return nil }

func digit(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestSigningDigitJump(t *testing.T) {
	Convey("Given a signing session over three words", t, func() {
		clips := []sign.Clip{
			{Word: "HELLO", Source: "hello.mp4"},
			{Word: "MY", Source: "my.mp4"},
			{Word: "NAME", Source: "name.mp4"},
		}
		seq, err := sequence.NewSequence(clips)
		So(err, ShouldBeNil)

		bubble := &statefulBubble{
			state:     signingState,
			keymap:    newStatefulKeymap(),
			sentence:  &sign.Sentence{Clips: clips},
			seqPlayer: sequence.NewPlayer(idleSurface{}, seq),
		}
		bubble.keymap.setState(signingState)
		bubble.playerState = bubble.seqPlayer.State()

		Convey("A digit key jumps straight to that word", func() {
			bubble.updateSigning(digit('3'))
			So(bubble.seqPlayer.State().Cursor, ShouldEqual, 2)
			So(bubble.seqPlayer.State().Word, ShouldEqual, "NAME")
		})

		Convey("A digit past the last word is ignored", func() {
			bubble.updateSigning(digit('2'))
			bubble.updateSigning(digit('9'))
			So(bubble.seqPlayer.State().Cursor, ShouldEqual, 1)
		})
	})
}
