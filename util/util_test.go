package util

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestSanitizeFilename(t *testing.T) {
	Convey("SanitizeFilename", t, func() {
		So(SanitizeFilename("hello world.mp4"), ShouldEqual, "hello_world.mp4")
		So(SanitizeFilename("a/b\\c"), ShouldEqual, "a_b_c")
		So(SanitizeFilename("__trimmed__"), ShouldEqual, "trimmed")
	})
}

func TestWords(t *testing.T) {
	Convey("Words", t, func() {
		Convey("Splits and uppercases", func() {
			So(Words("Hello, my name!"), ShouldResemble, []string{"HELLO", "MY", "NAME"})
		})

		Convey("Preserves inner apostrophes", func() {
			So(Words("don't stop"), ShouldResemble, []string{"DON'T", "STOP"})
		})

		Convey("Empty utterance yields no words", func() {
			So(Words("  ...  "), ShouldBeEmpty)
		})
	})
}

func TestQuantify(t *testing.T) {
	Convey("Quantify", t, func() {
		So(Quantify(1, "word", "words"), ShouldEqual, "1 word")
		So(Quantify(3, "word", "words"), ShouldEqual, "3 words")
	})
}

func TestStack(t *testing.T) {
	Convey("Stack", t, func() {
		var s Stack[int]

		Convey("Pop on empty returns zero value", func() {
			So(s.Pop(), ShouldEqual, 0)
		})

		Convey("LIFO ordering", func() {
			s.Push(1)
			s.Push(2)
			So(s.Peek(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 2)
			So(s.Pop(), ShouldEqual, 1)
			So(s.Len(), ShouldEqual, 0)
		})

		Convey("Clear empties the stack", func() {
			s.Push(42)
			s.Clear()
			So(s.Len(), ShouldEqual, 0)
		})
	})
}
