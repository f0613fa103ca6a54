package sequence

import (
	"sync"
	"time"
)

// Watcher detects clip completion for a player using both available triggers
// and funnels them into Player.OnEndOfClip. The periodic position poll covers
// surfaces whose end event is unreliable, and the discrete end-of-stream
// signal covers clips shorter than one poll interval; the player's own guard
// makes the redundancy safe.
type Watcher struct {
	player   *Player
	epsilon  float64
	interval time.Duration

	once sync.Once
	done chan struct{}
}

// NewWatcher builds a watcher polling every interval and treating positions
// within epsilon seconds of the clip duration as complete.
func NewWatcher(player *Player, epsilon float64, interval time.Duration) *Watcher {
	return &Watcher{
		player:   player,
		epsilon:  epsilon,
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start launches the watch loop. Stop it with Stop; starting twice is a
// no-op for the second caller.
func (w *Watcher) Start() {
	go w.watch()
}

// Stop terminates the watch loop. Safe to call more than once.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
	})
}

func (w *Watcher) watch() {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	var ended <-chan struct{}
	if s, ok := w.player.Surface().(EndSignaler); ok {
		ended = s.Ended()
	}

	for {
		select {
		case <-w.done:
			return
		case <-ended:
			w.player.OnEndOfClip()
		case <-ticker.C:
			w.poll()
		}
	}
}

// poll reads the playback position and duration and reports end-of-clip when
// the position is inside the end epsilon. Read errors are skipped silently;
// the next tick or the end signal will catch up.
func (w *Watcher) poll() {
	pos, err := w.player.Surface().Position()
	if err != nil {
		return
	}
	dur, err := w.player.Surface().Duration()
	if err != nil || dur <= 0 {
		return
	}

	if pos >= dur-w.epsilon {
		w.player.OnEndOfClip()
	}
}
