// Package inline implements the non-interactive, scriptable execution mode.
package inline

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/samber/lo"
	"github.com/samber/mo"

	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/util"
)

// ClipsFilter narrows the resolved clips down to the subset requested on the
// command line.
type ClipsFilter func([]sign.Clip) ([]sign.Clip, error)

type Options struct {
	Out         io.Writer
	Banks       []sign.Signbank
	Json        bool
	Utterance   string
	ClipsFilter mo.Option[ClipsFilter]
	// Sources prints the clip source for each word instead of the word itself.
	Sources bool
}

// ParseClipsFilter parses a clip selector.
// Format: "first", "last", "all", "[index]", "[from]-[to]", "@substring@"
func ParseClipsFilter(description string) (ClipsFilter, error) {
	if description == "first" {
		return func(clips []sign.Clip) ([]sign.Clip, error) {
			if len(clips) == 0 {
				return clips, nil
			}
			return clips[:1], nil
		}, nil
	}
	if description == "last" {
		return func(clips []sign.Clip) ([]sign.Clip, error) {
			if len(clips) == 0 {
				return clips, nil
			}
			return clips[len(clips)-1:], nil
		}, nil
	}
	if description == "all" {
		return func(clips []sign.Clip) ([]sign.Clip, error) {
			return clips, nil
		}, nil
	}

	// Range: "1-5"
	if strings.Contains(description, "-") {
		parts := strings.Split(description, "-")
		if len(parts) == 2 {
			from, err1 := strconv.ParseUint(parts[0], 10, 16)
			to, err2 := strconv.ParseUint(parts[1], 10, 16)
			if err1 == nil && err2 == nil {
				return func(clips []sign.Clip) ([]sign.Clip, error) {
					start := util.Min(from, uint64(len(clips)))
					end := util.Min(to+1, uint64(len(clips)))
					if start > end {
						return []sign.Clip{}, nil
					}
					return clips[start:end], nil
				}, nil
			}
		}
	}

	// Substring: "@text@"
	if strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := description[1 : len(description)-1]
		return func(clips []sign.Clip) ([]sign.Clip, error) {
			return lo.Filter(clips, func(c sign.Clip, _ int) bool {
				return strings.Contains(strings.ToLower(c.Word), strings.ToLower(sub))
			}), nil
		}, nil
	}

	// Single index: "5"
	if idx, err := strconv.ParseUint(description, 10, 16); err == nil {
		return func(clips []sign.Clip) ([]sign.Clip, error) {
			if uint64(len(clips)) <= idx {
				return []sign.Clip{}, nil
			}
			return []sign.Clip{clips[idx]}, nil
		}, nil
	}

	return nil, fmt.Errorf("invalid clip filter: %s", description)
}
