package history

import (
	"fmt"
	"strings"
	"time"

	"github.com/signtutor-cli/signtutor/sign"
)

// SavedSentence represents a single practiced sentence preserved in the
// user's history.
type SavedSentence struct {
	Utterance      string    `json:"utterance"`
	Words          []string  `json:"words"`
	Unresolved     []string  `json:"unresolved,omitempty"`
	TimesPracticed int       `json:"times_practiced"`
	FirstPracticed time.Time `json:"first_practiced"`
	LastPracticed  time.Time `json:"last_practiced"`
}

func (s *SavedSentence) encode() string {
	return strings.ToLower(strings.TrimSpace(s.Utterance))
}

func (s *SavedSentence) String() string {
	return fmt.Sprintf("%s : practiced %d times", s.Utterance, s.TimesPracticed)
}

func newSavedSentence(sentence *sign.Sentence) *SavedSentence {
	return &SavedSentence{
		Utterance:  sentence.Utterance,
		Words:      sentence.Words(),
		Unresolved: sentence.Unresolved,
	}
}
