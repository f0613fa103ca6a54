// Package resolver turns raw utterances into ordered, playable sign sentences.
package resolver

import (
	"errors"
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/signbank"
	"github.com/signtutor-cli/signtutor/util"
)

// ErrNothingToSign is returned when an utterance contains no sign-able words.
var ErrNothingToSign = errors.New("nothing to sign in the given sentence")

// Resolver maps normalized words to clips by querying its banks in priority
// order. The first bank that demonstrates a word wins.
type Resolver struct {
	banks []sign.Signbank
}

// New builds a resolver over an explicit bank list.
func New(banks ...sign.Signbank) *Resolver {
	return &Resolver{banks: banks}
}

// FromConfig instantiates the configured default banks. A bank that fails to
// load is skipped with a warning rather than failing the whole resolver.
func FromConfig() *Resolver {
	var banks []sign.Signbank
	for _, b := range signbank.Defaults() {
		bank, err := b.CreateBank()
		if err != nil {
			log.Warnf("signbank %s failed to load: %v", b.Name, err)
			continue
		}
		banks = append(banks, bank)
	}
	return New(banks...)
}

// Resolve tokenizes the utterance and looks every word up, preserving spoken
// order. Words no bank can demonstrate land in Unresolved; the caller decides
// whether a partially resolved sentence is worth playing.
func (r *Resolver) Resolve(utterance string) (*sign.Sentence, error) {
	words := util.Words(utterance)
	if len(words) == 0 {
		return nil, ErrNothingToSign
	}

	sentence := &sign.Sentence{Utterance: utterance}

	for _, word := range words {
		clip := r.lookup(word)
		if clip == nil && viper.GetBool(key.ResolverFuzzy) {
			clip = r.fuzzyLookup(word)
		}

		if clip == nil {
			sentence.Unresolved = append(sentence.Unresolved, word)
			continue
		}
		sentence.Clips = append(sentence.Clips, *clip)
	}

	return sentence, nil
}

// lookup queries the banks in priority order for an exact match.
func (r *Resolver) lookup(word string) *sign.Clip {
	for _, bank := range r.banks {
		clip, err := bank.Lookup(word)
		if err != nil {
			log.Warnf("bank %s: lookup %q: %v", bank.Name(), word, err)
			continue
		}
		if clip != nil {
			return clip
		}
	}
	return nil
}

// fuzzyLookup finds the closest demonstrable word within the configured edit
// distance and resolves that instead, marking the clip as fuzzy so the UI
// can flag the substitution.
func (r *Resolver) fuzzyLookup(word string) *sign.Clip {
	maxDistance := viper.GetInt(key.ResolverMaxDistance)

	for _, bank := range r.banks {
		vocabulary, err := bank.Words()
		if err != nil {
			log.Warnf("bank %s: words: %v", bank.Name(), err)
			continue
		}

		candidates := lo.Filter(vocabulary, func(candidate string, _ int) bool {
			return fuzzy.MatchFold(word, candidate) ||
				levenshtein.Distance(word, candidate) <= maxDistance
		})
		if len(candidates) == 0 {
			continue
		}

		// Levenshtein distance picks the most relevant candidate.
		closest := lo.MinBy(candidates, func(a, b string) bool {
			return levenshtein.Distance(word, a) < levenshtein.Distance(word, b)
		})

		if levenshtein.Distance(word, closest) > maxDistance {
			continue
		}

		clip, err := bank.Lookup(closest)
		if err != nil || clip == nil {
			continue
		}

		log.Infof("fuzzy resolved %q as %q via %s", word, closest, bank.Name())
		clip.Fuzzy = true
		return clip
	}

	return nil
}

// Suggestions returns vocabulary entries starting with the given prefix,
// pooled across all banks, for the input screen's completion hints.
func (r *Resolver) Suggestions(prefix string, limit int) []string {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	if prefix == "" {
		return nil
	}

	var suggestions []string
	seen := make(map[string]bool)

	for _, bank := range r.banks {
		vocabulary, err := bank.Words()
		if err != nil {
			continue
		}
		for _, w := range vocabulary {
			if !seen[w] && strings.HasPrefix(w, prefix) {
				seen[w] = true
				suggestions = append(suggestions, w)
				if len(suggestions) >= limit {
					return suggestions
				}
			}
		}
	}

	return suggestions
}
