package tutor

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/metafates/gache"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/where"
)

// explainCacher keeps per-word explanations on disk; sign descriptions do not
// change, so there is no reason to pay for the same completion twice.
var explainCacher = gache.New[map[string]string](
	&gache.Options{
		Path:       filepath.Join(where.Cache(), "explanations.json"),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Explain asks the tutor how the given word is signed, serving repeated
// requests from the disk cache.
func Explain(word string) (string, error) {
	word = strings.ToUpper(strings.TrimSpace(word))

	cached, expired, err := explainCacher.Get()
	if err == nil && !expired && cached != nil {
		if explanation, ok := cached[word]; ok {
			return explanation, nil
		}
	}

	explanation, err := Chat([]Message{
		{Role: "user", Content: fmt.Sprintf("How do I sign %q?", word)},
	})
	if err != nil {
		return "", err
	}

	if cached == nil {
		cached = make(map[string]string)
	}
	cached[word] = explanation
	_ = explainCacher.Set(cached)

	return explanation, nil
}
