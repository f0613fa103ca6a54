package tutor

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/key"
)

func init() {
	filesystem.SetMemMapFs()
	keyring.MockInit()
}

func TestChat(t *testing.T) {
	Convey("Given a chat completions endpoint", t, func() {
		var (
			mu         sync.Mutex
			gotRequest chatRequest
		)

		// The handler runs on the server's goroutine, so it must not use
		// convey assertions. Failures are reported through t instead.
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			err := json.NewDecoder(r.Body).Decode(&gotRequest)
			mu.Unlock()
			if err != nil {
				t.Error(err)
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			resp := map[string]interface{}{
				"choices": []map[string]interface{}{
					{"message": map[string]string{"role": "assistant", "content": "Wave your open hand."}},
				},
			}
			if err := json.NewEncoder(w).Encode(resp); err != nil {
				t.Error(err)
			}
		}))
		defer server.Close()

		viper.Set(key.TutorEndpoint, server.URL)
		viper.Set(key.TutorModel, "test-model")

		Convey("Chat returns the assistant reply", func() {
			reply, err := Chat([]Message{{Role: "user", Content: "How do I sign HELLO?"}})
			So(err, ShouldBeNil)
			So(reply, ShouldEqual, "Wave your open hand.")

			Convey("And the system prompt is prepended", func() {
				mu.Lock()
				defer mu.Unlock()
				So(gotRequest.Model, ShouldEqual, "test-model")
				So(len(gotRequest.Messages), ShouldEqual, 2)
				So(gotRequest.Messages[0].Role, ShouldEqual, "system")
			})
		})

		Convey("Explain caches per word", func() {
			first, err := Explain("hello")
			So(err, ShouldBeNil)
			So(first, ShouldEqual, "Wave your open hand.")

			// Point at a dead endpoint; the cached answer must still serve.
			viper.Set(key.TutorEndpoint, "http://127.0.0.1:1")
			second, err := Explain("HELLO")
			So(err, ShouldBeNil)
			So(second, ShouldEqual, first)
		})
	})

	Convey("A non-200 response is an error", t, func() {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		viper.Set(key.TutorEndpoint, server.URL)

		_, err := Chat([]Message{{Role: "user", Content: "hi"}})
		So(err, ShouldNotBeNil)
	})
}

func TestEnabled(t *testing.T) {
	Convey("Enabled mirrors the configuration flag", t, func() {
		viper.Set(key.TutorEnable, true)
		So(Enabled(), ShouldBeTrue)

		viper.Set(key.TutorEnable, false)
		So(Enabled(), ShouldBeFalse)
	})
}
