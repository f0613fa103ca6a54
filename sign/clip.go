// Package sign defines the domain models and interfaces for sign clip discovery and resolution.
package sign

// Clip represents one playable sign-demonstration video plus its display label.
type Clip struct {
	// Word is the spoken/written token this clip demonstrates (e.g. "HELLO").
	Word string `json:"word"`
	// Source is a path or URL the playback surface can load.
	Source string `json:"source"`
	// SignbankID identifies the signbank the clip was resolved from.
	SignbankID string `json:"signbank_id,omitempty"`
	// Fuzzy marks a clip that was matched approximately rather than exactly.
	Fuzzy bool `json:"fuzzy,omitempty"`
}

// String returns the canonical string representation of the clip.
func (c Clip) String() string {
	return c.Word
}
