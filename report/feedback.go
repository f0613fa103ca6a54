package report

import (
	"fmt"

	"github.com/signtutor-cli/signtutor/internal/sync"
	"github.com/signtutor-cli/signtutor/log"
	"github.com/signtutor-cli/signtutor/tutor"
)

// Feedback asks the tutor to comment on the report. When the endpoint is
// unreachable the request is queued for a later retry so the user's report
// run still succeeds offline.
func Feedback(r *Report) (string, error) {
	prompt := fmt.Sprintf(
		"Here is my sign language practice summary for the last %d days:\n\n%s\n"+
			"Give me short, encouraging feedback and suggest what to practice next.",
		r.PeriodDays, r.Render(),
	)

	reply, err := tutor.Chat([]tutor.Message{{Role: "user", Content: prompt}})
	if err != nil {
		log.Warnf("tutor feedback failed, queueing for retry: %v", err)
		if qErr := sync.QueueFeedback(prompt); qErr != nil {
			log.Error(qErr)
		}
		return "", err
	}

	return reply, nil
}
