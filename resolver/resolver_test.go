package resolver

import (
	"errors"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/sign"
)

// mapBank is an in-memory bank for resolver tests.
type mapBank struct {
	name  string
	clips map[string]string
	err   error
}

func (b *mapBank) Name() string { return b.name }
func (b *mapBank) ID() string   { return b.name }

func (b *mapBank) Lookup(word string) (*sign.Clip, error) {
	if b.err != nil {
		return nil, b.err
	}
	source, ok := b.clips[word]
	if !ok {
		return nil, nil
	}
	return &sign.Clip{Word: word, Source: source, SignbankID: b.name}, nil
}

func (b *mapBank) Words() ([]string, error) {
	if b.err != nil {
		return nil, b.err
	}
	words := make([]string, 0, len(b.clips))
	for w := range b.clips {
		words = append(words, w)
	}
	return words, nil
}

func TestResolve(t *testing.T) {
	Convey("Given a resolver over two banks", t, func() {
		viper.Set(key.ResolverFuzzy, false)

		primary := &mapBank{
			name:  "primary",
			clips: map[string]string{"HELLO": "p/hello.mp4", "NAME": "p/name.mp4"},
		}
		secondary := &mapBank{
			name:  "secondary",
			clips: map[string]string{"HELLO": "s/hello.mp4", "MY": "s/my.mp4"},
		}
		r := New(primary, secondary)

		Convey("Words resolve in spoken order", func() {
			sentence, err := r.Resolve("Hello, my name!")
			So(err, ShouldBeNil)
			So(sentence.Words(), ShouldResemble, []string{"HELLO", "MY", "NAME"})
			So(sentence.Playable(), ShouldBeTrue)
		})

		Convey("The first bank wins for shared words", func() {
			sentence, err := r.Resolve("hello")
			So(err, ShouldBeNil)
			So(sentence.Clips[0].Source, ShouldEqual, "p/hello.mp4")
		})

		Convey("Undemonstrable words are reported, not dropped silently", func() {
			sentence, err := r.Resolve("hello unicorn")
			So(err, ShouldBeNil)
			So(sentence.Words(), ShouldResemble, []string{"HELLO"})
			So(sentence.Unresolved, ShouldResemble, []string{"UNICORN"})
		})

		Convey("A sentence with nothing to sign is an error", func() {
			_, err := r.Resolve("... !!!")
			So(err, ShouldEqual, ErrNothingToSign)
		})

		Convey("A failing bank is skipped, not fatal", func() {
			primary.err = errors.New("bank offline")
			sentence, err := r.Resolve("hello my")
			So(err, ShouldBeNil)
			So(sentence.Words(), ShouldResemble, []string{"HELLO", "MY"})
			So(sentence.Clips[0].Source, ShouldEqual, "s/hello.mp4")
		})
	})
}

func TestFuzzyResolve(t *testing.T) {
	Convey("Given a resolver with fuzzy matching enabled", t, func() {
		viper.Set(key.ResolverFuzzy, true)
		viper.Set(key.ResolverMaxDistance, 2)
		defer viper.Set(key.ResolverFuzzy, false)

		bank := &mapBank{
			name:  "primary",
			clips: map[string]string{"HELLO": "p/hello.mp4", "WORLD": "p/world.mp4"},
		}
		r := New(bank)

		Convey("A near miss resolves to the closest word and is flagged", func() {
			sentence, err := r.Resolve("helo")
			So(err, ShouldBeNil)
			So(sentence.Words(), ShouldResemble, []string{"HELLO"})
			So(sentence.Clips[0].Fuzzy, ShouldBeTrue)
		})

		Convey("A word beyond the distance budget stays unresolved", func() {
			sentence, err := r.Resolve("xylophone")
			So(err, ShouldBeNil)
			So(sentence.Playable(), ShouldBeFalse)
			So(sentence.Unresolved, ShouldResemble, []string{"XYLOPHONE"})
		})
	})
}

func TestSuggestions(t *testing.T) {
	Convey("Suggestions are prefix matches across banks", t, func() {
		bank := &mapBank{
			name:  "primary",
			clips: map[string]string{"HELLO": "a", "HELP": "b", "NAME": "c"},
		}
		r := New(bank)

		got := r.Suggestions("hel", 10)
		So(len(got), ShouldEqual, 2)
		So(got, ShouldContain, "HELLO")
		So(got, ShouldContain, "HELP")

		So(r.Suggestions("", 10), ShouldBeNil)
	})
}
