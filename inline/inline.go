// Package inline implements the non-interactive, scriptable execution mode.
package inline

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/resolver"
	"github.com/signtutor-cli/signtutor/sign"
)

// Run resolves the utterance against the configured signbanks and writes the
// selected clips to the output writer.
func Run(options *Options) error {
	if options.Out == nil {
		options.Out = os.Stdout
	}

	sentence, err := resolver.New(options.Banks...).Resolve(options.Utterance)
	if err != nil {
		if errors.Is(err, resolver.ErrNothingToSign) && options.Json {
			return writeJson(options.Out, nil, nil, options)
		}
		return err
	}

	clips := sentence.Clips
	if options.ClipsFilter.IsPresent() {
		filter := options.ClipsFilter.MustGet()
		clips, err = filter(clips)
		if err != nil {
			return err
		}
	}

	if options.Json {
		return writeJson(options.Out, sentence, clips, options)
	}

	for _, clip := range clips {
		log.Info("Resolved " + clip.Word)
		if options.Sources {
			fmt.Fprintln(options.Out, clip.Source)
		} else {
			fmt.Fprintln(options.Out, clip.Word)
		}
	}

	for _, word := range sentence.Unresolved {
		log.Warnf("no signbank can demonstrate %q", word)
	}

	return nil
}

func writeJson(out io.Writer, sentence *sign.Sentence, clips []sign.Clip, options *Options) error {
	data, err := asJson(sentence, clips, options.Utterance)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}
