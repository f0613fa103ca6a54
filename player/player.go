// Package player provides media playback backends for sign clip sequences.
// The primary implementation drives a single long-lived 'mpv' process over
// its JSON-IPC interface, replacing the loaded file per clip so consecutive
// clips play back to back without window churn.
package player

// Backend extends the playback surface with process lifecycle control that
// the sequence core does not need but the TUI host does.
type Backend interface {
	// Load replaces the current media with the given file or URL,
	// starting the playback process if it is not running yet.
	Load(source string) error

	// Play resumes playback of the loaded media.
	Play() error

	// Pause suspends playback, holding the current position.
	Pause() error

	// Position retrieves the current playback position in seconds.
	Position() (float64, error)

	// Duration retrieves the length of the loaded media in seconds.
	Duration() (float64, error)

	// SetRate sets the playback speed multiplier, 1.0 being normal.
	SetRate(rate float64) error

	// Ended yields a signal each time the loaded media plays to its end.
	Ended() <-chan struct{}

	// Seek transitions the playback position to an absolute timestamp in seconds.
	Seek(seconds float64) error

	// PercentWatched calculates the relative playback completion percentage (0-100).
	PercentWatched() (float64, error)

	// IsRunning validates the liveness of the underlying playback process.
	IsRunning() bool

	// Close terminates the playback engine and releases all associated resources.
	Close() error

	// Socket retrieves the identifier of the IPC channel.
	Socket() string

	// Wait returns a channel that is closed when the playback process terminates.
	Wait() <-chan struct{}
}
