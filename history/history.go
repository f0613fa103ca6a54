// Package history tracks and persists the sentences the user has practiced.
package history

import (
	"time"

	"github.com/metafates/gache"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/sign"
	"github.com/signtutor-cli/signtutor/where"
)

// cacher provides an abstracted, disk-backed registry for practice records.
var cacher = gache.New[map[string]*SavedSentence](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns the complete collection of practice records from the
// persistent store.
func Get() (map[string]*SavedSentence, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*SavedSentence), nil
	}
	return cached, nil
}

// Save persists one practice run of the given sentence, incrementing its
// practice count if it was seen before.
func Save(sentence *sign.Sentence) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := newSavedSentence(sentence)
	now := time.Now()

	if existing, exists := saved[record.encode()]; exists {
		record.TimesPracticed = existing.TimesPracticed + 1
		record.FirstPracticed = existing.FirstPracticed
	} else {
		record.TimesPracticed = 1
		record.FirstPracticed = now
	}
	record.LastPracticed = now

	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove permanently deletes a practice record from the history registry.
func Remove(sentence *SavedSentence) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, sentence.encode())
	return cacher.Set(saved)
}

// Since returns the records last practiced within the given window,
// used to assemble progress reports.
func Since(t time.Time) ([]*SavedSentence, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	var records []*SavedSentence
	for _, record := range saved {
		if record.LastPracticed.After(t) {
			records = append(records, record)
		}
	}
	return records, nil
}
