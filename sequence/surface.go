// Package sequence implements the multi-clip sequence player that plays an
// ordered list of sign clips back-to-back, gaplessly and looping, on top of a
// single playback surface.
package sequence

// Surface encapsulates the required capabilities for a playback backend
// driven by the sequence player. One surface is exclusively owned by one
// player at a time.
type Surface interface {
	// Load begins fetching/decoding the referenced clip, replacing any prior source.
	Load(source string) error

	// Play starts or resumes playback of the loaded source from its current position.
	Play() error

	// Pause suspends playback, holding the current position.
	Pause() error

	// Position retrieves the current absolute playback position in seconds.
	Position() (float64, error)

	// Duration retrieves the total temporal length of the loaded clip in seconds.
	Duration() (float64, error)

	// SetRate adjusts the playback speed multiplier (1.0 is normal speed).
	SetRate(rate float64) error
}

// EndSignaler is implemented by surfaces that emit a discrete end-of-stream
// event. The watcher consumes it as the second end-of-clip trigger alongside
// position polling; surfaces without it are driven by polling alone.
type EndSignaler interface {
	// Ended returns a channel that receives once per end-of-stream event.
	Ended() <-chan struct{}
}
