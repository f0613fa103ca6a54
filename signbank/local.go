package signbank

import (
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/util"
	"github.com/signtutor-cli/signtutor/where"
)

// LocalBankID names the built-in directory-backed bank.
const LocalBankID = "local"

// clipExtensions lists the file extensions treated as playable clips.
var clipExtensions = map[string]bool{
	".mp4":  true,
	".webm": true,
	".mkv":  true,
	".mov":  true,
}

// LocalBank serves clips from a flat directory where each file stem is the
// word it demonstrates, e.g. HELLO.mp4.
type LocalBank struct {
	dir string
}

// NewLocalBank builds a bank over the configured clips directory.
func NewLocalBank() *LocalBank {
	dir := viper.GetString(key.SignbankClipsDir)
	if dir == "" {
		dir = where.Clips()
	}
	return &LocalBank{dir: dir}
}

// NewLocalBankAt builds a bank over an explicit directory.
func NewLocalBankAt(dir string) *LocalBank {
	return &LocalBank{dir: dir}
}

func (b *LocalBank) Name() string {
	return LocalBankID
}

func (b *LocalBank) ID() string {
	return LocalBankID
}

// Lookup resolves a word to its clip file. A missing file is not an error,
// just an undemonstrable word.
func (b *LocalBank) Lookup(word string) (*sign.Clip, error) {
	files, err := filesystem.API().ReadDir(b.dir)
	if err != nil {
		return nil, err
	}

	for _, f := range files {
		if f.IsDir() || !clipExtensions[strings.ToLower(filepath.Ext(f.Name()))] {
			continue
		}

		if strings.ToUpper(util.FileStem(f.Name())) == word {
			return &sign.Clip{
				Word:       word,
				Source:     filepath.Join(b.dir, f.Name()),
				SignbankID: b.ID(),
			}, nil
		}
	}

	return nil, nil
}

// Words enumerates every demonstrable word, sorted for stable suggestion
// ordering.
func (b *LocalBank) Words() ([]string, error) {
	files, err := filesystem.API().ReadDir(b.dir)
	if err != nil {
		return nil, err
	}

	var words []string
	for _, f := range files {
		if f.IsDir() || !clipExtensions[strings.ToLower(filepath.Ext(f.Name()))] {
			continue
		}
		words = append(words, strings.ToUpper(util.FileStem(f.Name())))
	}

	sort.Strings(words)
	return words, nil
}
