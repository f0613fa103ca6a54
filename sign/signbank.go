// Package sign defines the domain models and interfaces for sign clip discovery and resolution.
package sign

// Signbank defines the required capabilities for a sign clip provider.
type Signbank interface {
	// Name returns the human-readable identifier for the signbank.
	Name() string

	// ID returns the unique identifier of the signbank.
	ID() string

	// Lookup resolves a single normalized word to a playable clip.
	// A nil clip with a nil error means the word is not demonstrable.
	Lookup(word string) (*Clip, error)

	// Words enumerates every word the signbank can demonstrate.
	Words() ([]string, error)
}
