// Package inline implements the non-interactive, scriptable execution mode.
package inline

import (
	"encoding/json"

	"github.com/signtutor-cli/signtutor/sign"
)

// Output is the structured result of an inline resolution.
type Output struct {
	Utterance  string      `json:"utterance"`
	Clips      []sign.Clip `json:"clips"`
	Unresolved []string    `json:"unresolved,omitempty"`
}

func asJson(sentence *sign.Sentence, clips []sign.Clip, utterance string) ([]byte, error) {
	output := &Output{
		Utterance: utterance,
		Clips:     clips,
	}
	if sentence != nil {
		output.Unresolved = sentence.Unresolved
	}
	if output.Clips == nil {
		output.Clips = []sign.Clip{}
	}

	return json.Marshal(output)
}
