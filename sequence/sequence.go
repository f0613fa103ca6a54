// Package sequence implements the multi-clip sequence player.
package sequence

import (
	"errors"
	"sync/atomic"

	"github.com/signtutor-cli/signtutor/sign"
)

// ErrEmptySequence is returned when a sequence is constructed without clips.
// The clip resolver must never start a player for an utterance that resolved
// to nothing; the constructor enforces that contract.
var ErrEmptySequence = errors.New("sequence: clip list is empty")

// nextID assigns unique sequence identifiers within the process.
var nextID atomic.Int64

// Sequence is the unit of playback: an ordered, immutable clip list plus the
// player's cursor and guard state. Clip order is playback order.
type Sequence struct {
	id    int64
	clips []sign.Clip

	// cursor denotes the clip currently loaded/loading/playing.
	// Invariant: 0 <= cursor < len(clips).
	cursor int

	// paused suppresses automatic advancement even when the surface
	// reports end-of-stream.
	paused bool

	// transitioning is the re-entrancy guard: true from the moment an
	// advance decision is made until the new clip's load-and-play attempt
	// resolves, success or failure.
	transitioning bool
}

// NewSequence validates the clip list and returns a fresh sequence parked at
// clip zero.
func NewSequence(clips []sign.Clip) (*Sequence, error) {
	if len(clips) == 0 {
		return nil, ErrEmptySequence
	}

	owned := make([]sign.Clip, len(clips))
	copy(owned, clips)

	return &Sequence{
		id:    nextID.Add(1),
		clips: owned,
	}, nil
}

// ID returns the opaque identifier assigned at creation.
func (s *Sequence) ID() int64 {
	return s.id
}

// Len returns the number of clips in the sequence.
func (s *Sequence) Len() int {
	return len(s.clips)
}

// Clip returns the clip at the given index.
func (s *Sequence) Clip(index int) sign.Clip {
	return s.clips[index]
}

// Clips returns a copy of the ordered clip list.
func (s *Sequence) Clips() []sign.Clip {
	out := make([]sign.Clip, len(s.clips))
	copy(out, s.clips)
	return out
}
