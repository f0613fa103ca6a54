package sequence

import (
	"errors"
	"sync"
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/signtutor-cli/signtutor/sign"
)

// fakeSurface is a controllable Surface. Loads can be held in flight via the
// gate channel and end-of-stream events are fired manually.
type fakeSurface struct {
	mu     sync.Mutex
	loads  []string
	plays  int
	pauses int

	pos, dur float64
	rate     float64

	gate    chan struct{}
	loadErr error
	ended   chan struct{}
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{ended: make(chan struct{})}
}

func (f *fakeSurface) Load(source string) error {
	f.mu.Lock()
	gate := f.gate
	f.mu.Unlock()

	if gate != nil {
		<-gate
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, source)
	return f.loadErr
}

func (f *fakeSurface) Play() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.plays++
	return nil
}

func (f *fakeSurface) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakeSurface) Position() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pos, nil
}

func (f *fakeSurface) Duration() (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.dur, nil
}

func (f *fakeSurface) SetRate(rate float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rate = rate
	return nil
}

func (f *fakeSurface) Ended() <-chan struct{} {
	return f.ended
}

func (f *fakeSurface) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.loads)
}

func (f *fakeSurface) playCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.plays
}

func (f *fakeSurface) lastLoad() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loads) == 0 {
		return ""
	}
	return f.loads[len(f.loads)-1]
}

func testClips(words ...string) []sign.Clip {
	clips := make([]sign.Clip, len(words))
	for i, w := range words {
		clips[i] = sign.Clip{Word: w, Source: w + ".mp4"}
	}
	return clips
}

// newTestPlayer wires a player to a buffered state channel so tests can wait
// for transitions deterministically.
func newTestPlayer(surface *fakeSurface, words ...string) (*Player, chan RenderState) {
	seq, err := NewSequence(testClips(words...))
	So(err, ShouldBeNil)

	player := NewPlayer(surface, seq)
	states := make(chan RenderState, 64)
	player.SetRenderFunc(func(st RenderState) {
		states <- st
	})

	return player, states
}

func waitFor(states <-chan RenderState, pred func(RenderState) bool) (RenderState, bool) {
	timeout := time.After(2 * time.Second)
	for {
		select {
		case st := <-states:
			if pred(st) {
				return st, true
			}
		case <-timeout:
			return RenderState{}, false
		}
	}
}

func settled(cursor int) func(RenderState) bool {
	return func(st RenderState) bool {
		return st.Cursor == cursor && !st.Transitioning
	}
}

func TestNewSequence(t *testing.T) {
	Convey("An empty clip list is rejected", t, func() {
		_, err := NewSequence(nil)
		So(err, ShouldEqual, ErrEmptySequence)
	})

	Convey("The clip list is copied, not aliased", t, func() {
		clips := testClips("HELLO", "NAME")
		seq, err := NewSequence(clips)
		So(err, ShouldBeNil)

		clips[0].Word = "MUTATED"
		So(seq.Clip(0).Word, ShouldEqual, "HELLO")
		So(seq.Len(), ShouldEqual, 2)
	})

	Convey("Each sequence gets a distinct id", t, func() {
		a, _ := NewSequence(testClips("A"))
		b, _ := NewSequence(testClips("B"))
		So(a.ID(), ShouldNotEqual, b.ID())
	})
}

func TestPlayerAdvance(t *testing.T) {
	Convey("Given a playing three clip sequence", t, func() {
		surface := newFakeSurface()
		player, states := newTestPlayer(surface, "HELLO", "MY", "NAME")

		player.Start()
		_, ok := waitFor(states, settled(0))
		So(ok, ShouldBeTrue)

		Convey("Both end triggers firing together advance exactly once", func() {
			gate := make(chan struct{})
			surface.mu.Lock()
			surface.gate = gate
			surface.mu.Unlock()

			player.OnEndOfClip()
			// The second trigger lands while the first advance is still
			// transitioning and must be dropped.
			player.OnEndOfClip()
			close(gate)

			st, ok := waitFor(states, settled(1))
			So(ok, ShouldBeTrue)
			So(st.Cursor, ShouldEqual, 1)
			So(st.Word, ShouldEqual, "MY")
			So(surface.loadCount(), ShouldEqual, 2)
		})

		Convey("The last clip wraps back to the first", func() {
			for _, want := range []int{1, 2, 0} {
				player.OnEndOfClip()
				st, ok := waitFor(states, settled(want))
				So(ok, ShouldBeTrue)
				So(st.Cursor, ShouldEqual, want)
			}
			So(surface.lastLoad(), ShouldEqual, "HELLO.mp4")
		})
	})
}

func TestPlayerPause(t *testing.T) {
	Convey("Given a playing sequence", t, func() {
		surface := newFakeSurface()
		player, states := newTestPlayer(surface, "HELLO", "MY", "NAME")

		player.Start()
		_, ok := waitFor(states, settled(0))
		So(ok, ShouldBeTrue)

		Convey("End signals are suppressed while paused", func() {
			player.TogglePause()
			So(player.State().Paused, ShouldBeTrue)

			loads := surface.loadCount()
			player.OnEndOfClip()
			player.OnEndOfClip()

			st := player.State()
			So(st.Cursor, ShouldEqual, 0)
			So(surface.loadCount(), ShouldEqual, loads)
		})

		Convey("Resume continues the held clip without reloading it", func() {
			player.TogglePause()
			loads := surface.loadCount()

			player.TogglePause()
			st := player.State()
			So(st.Paused, ShouldBeFalse)
			So(st.Cursor, ShouldEqual, 0)
			So(surface.loadCount(), ShouldEqual, loads)
			So(surface.playCount(), ShouldBeGreaterThanOrEqualTo, 2)
		})
	})
}

func TestPlayerOverrides(t *testing.T) {
	Convey("Given a playing sequence", t, func() {
		surface := newFakeSurface()
		player, states := newTestPlayer(surface, "HELLO", "MY", "NAME")

		player.Start()
		_, ok := waitFor(states, settled(0))
		So(ok, ShouldBeTrue)

		Convey("Restart wins over a load still in flight", func() {
			gate := make(chan struct{})
			surface.mu.Lock()
			surface.gate = gate
			surface.mu.Unlock()

			player.OnEndOfClip()
			So(player.State().Transitioning, ShouldBeTrue)

			player.Restart()
			close(gate)

			st, ok := waitFor(states, settled(0))
			So(ok, ShouldBeTrue)
			So(st.Cursor, ShouldEqual, 0)
			So(st.Paused, ShouldBeFalse)

			// The superseded advance must not move the cursor afterwards.
			time.Sleep(50 * time.Millisecond)
			So(player.State().Cursor, ShouldEqual, 0)
		})

		Convey("Restart clears a pause", func() {
			player.TogglePause()
			player.Restart()

			// The pause notification precedes the restart's, so wait for
			// the first settled snapshot that is actually unpaused.
			st, ok := waitFor(states, func(st RenderState) bool {
				return st.Cursor == 0 && !st.Transitioning && !st.Paused
			})
			So(ok, ShouldBeTrue)
			So(st.Paused, ShouldBeFalse)
			So(player.State().Paused, ShouldBeFalse)
		})

		Convey("JumpTo targets an arbitrary clip", func() {
			player.JumpTo(2)

			st, ok := waitFor(states, settled(2))
			So(ok, ShouldBeTrue)
			So(st.Word, ShouldEqual, "NAME")
			So(surface.lastLoad(), ShouldEqual, "NAME.mp4")
		})

		Convey("Out of range jumps are ignored", func() {
			loads := surface.loadCount()
			player.JumpTo(-1)
			player.JumpTo(3)

			st := player.State()
			So(st.Cursor, ShouldEqual, 0)
			So(surface.loadCount(), ShouldEqual, loads)
		})
	})
}

func TestPlayerLoadFailure(t *testing.T) {
	Convey("Given a surface whose loads fail", t, func() {
		surface := newFakeSurface()
		player, states := newTestPlayer(surface, "HELLO", "MY")

		player.Start()
		_, ok := waitFor(states, settled(0))
		So(ok, ShouldBeTrue)

		surface.mu.Lock()
		surface.loadErr = errors.New("gone")
		surface.mu.Unlock()

		Convey("A failed load clears the transition guard and holds position", func() {
			player.OnEndOfClip()

			st, ok := waitFor(states, settled(1))
			So(ok, ShouldBeTrue)
			So(st.Cursor, ShouldEqual, 1)
			So(st.Transitioning, ShouldBeFalse)

			// Manual control still works after the failure.
			surface.mu.Lock()
			surface.loadErr = nil
			surface.mu.Unlock()

			player.Restart()
			st, ok = waitFor(states, settled(0))
			So(ok, ShouldBeTrue)
			So(st.Cursor, ShouldEqual, 0)
		})
	})
}

func TestPlayerLoadTimeout(t *testing.T) {
	Convey("A load that never resolves is timed out", t, func() {
		surface := newFakeSurface()
		player, states := newTestPlayer(surface, "HELLO", "MY")
		player.SetLoadTimeout(50 * time.Millisecond)

		gate := make(chan struct{})
		surface.mu.Lock()
		surface.gate = gate
		surface.mu.Unlock()

		player.Start()

		st, ok := waitFor(states, settled(0))
		So(ok, ShouldBeTrue)
		So(st.Transitioning, ShouldBeFalse)

		// Releasing the stuck load afterwards must not re-enter the
		// transitioning state.
		close(gate)
		time.Sleep(50 * time.Millisecond)
		So(player.State().Transitioning, ShouldBeFalse)
	})
}

func TestWatcher(t *testing.T) {
	Convey("Given a watched player", t, func() {
		surface := newFakeSurface()
		player, states := newTestPlayer(surface, "HELLO", "MY", "NAME")

		player.Start()
		_, ok := waitFor(states, settled(0))
		So(ok, ShouldBeTrue)

		watcher := NewWatcher(player, 0.25, 10*time.Millisecond)
		watcher.Start()
		defer watcher.Stop()

		Convey("The position poll advances inside the end epsilon", func() {
			surface.mu.Lock()
			surface.pos = 1.8
			surface.dur = 2.0
			surface.mu.Unlock()

			st, ok := waitFor(states, settled(1))
			So(ok, ShouldBeTrue)
			So(st.Word, ShouldEqual, "MY")
		})

		Convey("The end of stream signal advances without polling", func() {
			surface.ended <- struct{}{}

			st, ok := waitFor(states, settled(1))
			So(ok, ShouldBeTrue)
			So(st.Word, ShouldEqual, "MY")
		})
	})
}

func TestPlayerLoop(t *testing.T) {
	Convey("A full pass over HELLO MY NAME loops back to HELLO", t, func() {
		surface := newFakeSurface()
		player, states := newTestPlayer(surface, "HELLO", "MY", "NAME")

		player.Start()
		_, ok := waitFor(states, settled(0))
		So(ok, ShouldBeTrue)

		watcher := NewWatcher(player, 0.25, time.Hour)
		watcher.Start()
		defer watcher.Stop()

		words := []string{"MY", "NAME", "HELLO"}
		for i, want := range words {
			surface.ended <- struct{}{}
			st, ok := waitFor(states, settled((1+i)%3))
			So(ok, ShouldBeTrue)
			So(st.Word, ShouldEqual, want)
		}
	})
}
