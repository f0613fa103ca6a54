// Package sync implements asynchronous background retries and offline
// queuing for tutor feedback requests.
package sync

import (
	"bytes"
	"encoding/json"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/tutor"
	"github.com/signtutor-cli/signtutor/where"
)

// QueuedFeedback encapsulates a single failed feedback request for deferred
// delivery.
type QueuedFeedback struct {
	Timestamp int64  `json:"timestamp"`
	Prompt    string `json:"prompt"`
}

func getQueueFile() string {
	return filepath.Join(where.Config(), "failed_feedback.json")
}

// QueueFeedback persists a failed feedback request to a local JSON-log for
// deferred reconciliation.
func QueueFeedback(prompt string) error {
	f, err := os.OpenFile(getQueueFile(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	entry := QueuedFeedback{
		Timestamp: time.Now().Unix(),
		Prompt:    prompt,
	}

	// Stream JSON directly to disk buffer
	encoder := json.NewEncoder(f)
	return encoder.Encode(entry)
}

// ReconcileFailures initializes an asynchronous background process to retry
// previously failed feedback requests. Replies recovered here are logged
// rather than surfaced; the user has moved on.
func ReconcileFailures() {
	go func() {
		path := getQueueFile()
		info, err := os.Stat(path)
		if err != nil || info.Size() == 0 {
			return
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return
		}

		var entries []QueuedFeedback
		decoder := json.NewDecoder(bytes.NewReader(content))
		for decoder.More() {
			var e QueuedFeedback
			if err := decoder.Decode(&e); err == nil {
				entries = append(entries, e)
			}
		}

		if len(entries) == 0 {
			return
		}

		successCount := 0

		for i, e := range entries {
			// Incremental delay with randomized jitter to manage throttling.
			backoff := time.Duration((1<<i)*100)*time.Millisecond + time.Duration(rand.Intn(100))*time.Millisecond
			time.Sleep(backoff)

			reply, err := tutor.Chat([]tutor.Message{{Role: "user", Content: e.Prompt}})
			if err != nil {
				continue
			}

			log.Infof("recovered queued tutor feedback from %s: %s",
				time.Unix(e.Timestamp, 0).Format("2006-01-02"), reply)
			successCount++
		}

		// Truncate the failure log only once every entry was delivered.
		if successCount == len(entries) {
			_ = os.Truncate(path, 0)
		}
	}()
}
