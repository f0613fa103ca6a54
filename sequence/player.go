// Package sequence implements the multi-clip sequence player.
package sequence

import (
	"errors"
	"sync"
	"time"

	"github.com/signtutor-cli/signtutor/log"
)

// errLoadTimeout marks a clip load that never resolved within the configured window.
var errLoadTimeout = errors.New("sequence: clip load timed out")

// RenderState is the snapshot exposed to the UI host after every transition,
// sufficient to render "word N of M", highlight the active chip and size a
// progress indicator as (Cursor+1)/Len.
type RenderState struct {
	Cursor        int
	Len           int
	Paused        bool
	Transitioning bool
	Word          string
}

// Player drives a single playback surface through an ordered sequence of
// clips. All reentrancy hazards come from its multiple asynchronous callers
// (position poll, end-of-stream event, user transport controls) racing an
// unresolved load; the transitioning guard plus a monotonically increasing
// load token serialize them.
//
// A finished sequence loops back to clip zero rather than stopping: the
// machine has no terminal state and only goes quiet when the host discards it.
type Player struct {
	mu      sync.Mutex
	seq     *Sequence
	surface Surface

	// token identifies the most recent load request. A load resolution
	// carrying an older token was superseded by Restart/JumpTo and must
	// not touch state.
	token   uint64
	pending bool

	loadTimeout time.Duration
	renderFn    func(RenderState)
}

// NewPlayer binds a surface and a sequence. The surface is exclusively owned
// by this player until the host discards it.
func NewPlayer(surface Surface, seq *Sequence) *Player {
	return &Player{
		surface: surface,
		seq:     seq,
	}
}

// SetRenderFunc registers the host callback invoked with a state snapshot
// after every transition. The callback runs outside the player lock and may
// call back into the player.
func (p *Player) SetRenderFunc(fn func(RenderState)) {
	p.mu.Lock()
	p.renderFn = fn
	p.mu.Unlock()
}

// SetLoadTimeout bounds how long an unresolved load may keep the player in
// its transitioning state; zero disables the bound.
func (p *Player) SetLoadTimeout(d time.Duration) {
	p.mu.Lock()
	p.loadTimeout = d
	p.mu.Unlock()
}

// Sequence returns the sequence this player drives.
func (p *Player) Sequence() *Sequence {
	return p.seq
}

// Surface returns the playback surface this player owns.
func (p *Player) Surface() Surface {
	return p.surface
}

// Start loads and plays the first clip.
func (p *Player) Start() {
	p.mu.Lock()
	p.seq.cursor = 0
	p.seq.paused = false
	p.beginLoadLocked()
	st := p.stateLocked()
	p.mu.Unlock()

	p.notify(st)
}

// OnEndOfClip is the single advance entry point, fed by both end-of-clip
// triggers: the position poll reaching the end epsilon and the surface's
// discrete end-of-stream event. It is idempotent under near-simultaneous
// firing of both triggers for the same clip boundary: while a transition is
// already in flight, or while paused, the call is dropped, not queued.
func (p *Player) OnEndOfClip() {
	p.mu.Lock()
	if p.seq.paused || p.seq.transitioning {
		p.mu.Unlock()
		return
	}

	p.seq.cursor = (p.seq.cursor + 1) % len(p.seq.clips)
	p.beginLoadLocked()
	st := p.stateLocked()
	p.mu.Unlock()

	p.notify(st)
}

// TogglePause suspends or resumes playback of the current clip. Resuming
// continues from the held position and clears any stale transition guard;
// the cursor never moves.
func (p *Player) TogglePause() {
	p.mu.Lock()

	var err error
	if p.seq.paused {
		p.seq.paused = false
		p.seq.transitioning = false
		// Supersede any load still in flight so its resolution cannot
		// re-touch state the user just reset.
		p.token++
		p.pending = false
		err = p.surface.Play()
	} else {
		p.seq.paused = true
		err = p.surface.Pause()
	}

	st := p.stateLocked()
	p.mu.Unlock()

	if err != nil {
		log.Warnf("sequence %d: pause toggle: %v", p.seq.id, err)
	}
	p.notify(st)
}

// Restart unconditionally resets the sequence to clip zero and plays it from
// the top, overriding whatever state the player was in, including a load
// still in flight. It represents explicit user intent and always wins.
func (p *Player) Restart() {
	p.mu.Lock()
	p.jumpLocked(0)
	st := p.stateLocked()
	p.mu.Unlock()

	p.notify(st)
}

// JumpTo behaves like Restart but targets the given clip, used for random
// access when the user picks a specific word chip. An out-of-range index is
// rejected as a no-op rather than clamped or wrapped.
func (p *Player) JumpTo(index int) {
	p.mu.Lock()
	if index < 0 || index >= len(p.seq.clips) {
		p.mu.Unlock()
		return
	}

	p.jumpLocked(index)
	st := p.stateLocked()
	p.mu.Unlock()

	p.notify(st)
}

// SetRate adjusts the surface playback speed; used by the slow-motion toggle.
func (p *Player) SetRate(rate float64) error {
	return p.surface.SetRate(rate)
}

// State returns the current render-state snapshot.
func (p *Player) State() RenderState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

// jumpLocked implements the shared Restart/JumpTo semantics: clear pause,
// move the cursor and begin a fresh load that supersedes any in-flight one.
func (p *Player) jumpLocked(index int) {
	p.seq.paused = false
	p.seq.transitioning = false
	p.seq.cursor = index
	p.beginLoadLocked()
}

// beginLoadLocked issues the asynchronous load-and-play of the clip at the
// current cursor. At most one load is in flight per player; superseded loads
// are identified by their stale token at resolution time.
func (p *Player) beginLoadLocked() {
	p.seq.transitioning = true
	p.token++
	p.pending = true

	token := p.token
	clip := p.seq.clips[p.seq.cursor]

	if p.loadTimeout > 0 {
		timeout := p.loadTimeout
		time.AfterFunc(timeout, func() {
			p.resolveLoad(token, errLoadTimeout)
		})
	}

	go func() {
		err := p.surface.Load(clip.Source)
		if err == nil {
			err = p.surface.Play()
		}
		p.resolveLoad(token, err)
	}()
}

// resolveLoad finishes the load identified by token. Whatever the outcome,
// the transition guard is cleared so future signals are never permanently
// blocked; a failed load leaves the sequence parked at the failed cursor
// until the user intervenes (no automatic retry or skip).
func (p *Player) resolveLoad(token uint64, err error) {
	p.mu.Lock()
	if token != p.token || !p.pending {
		// Superseded by a newer load or already resolved by the timeout.
		p.mu.Unlock()
		return
	}

	p.pending = false
	p.seq.transitioning = false
	st := p.stateLocked()
	word := p.seq.clips[p.seq.cursor].Word
	p.mu.Unlock()

	if err != nil {
		log.Warnf("sequence %d: load %q: %v", p.seq.id, word, err)
	}
	p.notify(st)
}

func (p *Player) stateLocked() RenderState {
	return RenderState{
		Cursor:        p.seq.cursor,
		Len:           len(p.seq.clips),
		Paused:        p.seq.paused,
		Transitioning: p.seq.transitioning,
		Word:          p.seq.clips[p.seq.cursor].Word,
	}
}

func (p *Player) notify(st RenderState) {
	p.mu.Lock()
	fn := p.renderFn
	p.mu.Unlock()

	if fn != nil {
		fn(st)
	}
}
