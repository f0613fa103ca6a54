// Package sign defines the domain models and interfaces for sign clip discovery and resolution.
package sign

import "strings"

// Sentence represents a user utterance after clip resolution: the ordered
// clips that could be demonstrated plus the words that could not.
type Sentence struct {
	// Utterance is the raw text the user asked to have signed.
	Utterance string `json:"utterance"`
	// Clips holds the resolved clips in spoken order.
	Clips []Clip `json:"clips"`
	// Unresolved lists the normalized words no signbank could demonstrate.
	Unresolved []string `json:"unresolved,omitempty"`
}

// Playable reports whether at least one clip resolved. A sentence with no
// playable clips must never reach the sequence player.
func (s *Sentence) Playable() bool {
	return len(s.Clips) > 0
}

// Words returns the display labels of the resolved clips in order.
func (s *Sentence) Words() []string {
	words := make([]string, len(s.Clips))
	for i, c := range s.Clips {
		words[i] = c.Word
	}
	return words
}

// String returns the resolved portion of the sentence as a space-joined phrase.
func (s *Sentence) String() string {
	return strings.Join(s.Words(), " ")
}
