// Package report assembles periodic practice progress reports from the
// stored history.
package report

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/spf13/viper"

	"github.com/signtutor-cli/signtutor/filesystem"
	"github.com/signtutor-cli/signtutor/history"
	"github.com/signtutor-cli/signtutor/key"
	"github.com/signtutor-cli/signtutor/where"
)

// WordCount pairs a practiced word with how often it appeared.
type WordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// Report summarizes one practice period.
type Report struct {
	GeneratedAt    time.Time                `json:"generated_at"`
	PeriodDays     int                      `json:"period_days"`
	Sentences      []*history.SavedSentence `json:"sentences"`
	TotalPractices int                      `json:"total_practices"`
	UniqueWords    int                      `json:"unique_words"`
	TopWords       []WordCount              `json:"top_words"`
	Unresolved     []string                 `json:"unresolved,omitempty"`
}

// Generate builds a report over the configured period.
func Generate() (*Report, error) {
	periodDays := viper.GetInt(key.ReportPeriodDays)
	since := time.Now().AddDate(0, 0, -periodDays)

	sentences, err := history.Since(since)
	if err != nil {
		return nil, err
	}

	sort.Slice(sentences, func(i, j int) bool {
		return sentences[i].LastPracticed.After(sentences[j].LastPracticed)
	})

	report := &Report{
		GeneratedAt: time.Now(),
		PeriodDays:  periodDays,
		Sentences:   sentences,
	}

	counts := make(map[string]int)
	unresolved := make(map[string]bool)

	for _, s := range sentences {
		report.TotalPractices += s.TimesPracticed
		for _, w := range s.Words {
			counts[w] += s.TimesPracticed
		}
		for _, w := range s.Unresolved {
			unresolved[w] = true
		}
	}

	report.UniqueWords = len(counts)

	for word, count := range counts {
		report.TopWords = append(report.TopWords, WordCount{Word: word, Count: count})
	}
	sort.Slice(report.TopWords, func(i, j int) bool {
		if report.TopWords[i].Count != report.TopWords[j].Count {
			return report.TopWords[i].Count > report.TopWords[j].Count
		}
		return report.TopWords[i].Word < report.TopWords[j].Word
	})
	if len(report.TopWords) > 10 {
		report.TopWords = report.TopWords[:10]
	}

	report.Unresolved = lo.Keys(unresolved)
	sort.Strings(report.Unresolved)

	return report, nil
}

// Render formats the report as plain markdown.
func (r *Report) Render() string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Practice report, last %d days\n\n", r.PeriodDays)
	fmt.Fprintf(&b, "Generated %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04"))
	fmt.Fprintf(&b, "- Sentences practiced: %d\n", len(r.Sentences))
	fmt.Fprintf(&b, "- Total practice runs: %d\n", r.TotalPractices)
	fmt.Fprintf(&b, "- Unique words signed: %d\n\n", r.UniqueWords)

	if len(r.TopWords) > 0 {
		b.WriteString("## Most practiced words\n\n")
		for _, wc := range r.TopWords {
			fmt.Fprintf(&b, "- %s: %d\n", wc.Word, wc.Count)
		}
		b.WriteString("\n")
	}

	if len(r.Unresolved) > 0 {
		b.WriteString("## Words your banks could not demonstrate\n\n")
		for _, w := range r.Unresolved {
			fmt.Fprintf(&b, "- %s\n", w)
		}
		b.WriteString("\n")
	}

	if len(r.Sentences) > 0 {
		b.WriteString("## Sentences\n\n")
		for _, s := range r.Sentences {
			fmt.Fprintf(&b, "- %s\n", s.String())
		}
	}

	return b.String()
}

// Save writes the rendered report into the reports directory and returns the
// file path.
func (r *Report) Save() (string, error) {
	name := fmt.Sprintf("report-%s.md", r.GeneratedAt.Format("2006-01-02"))
	path := filepath.Join(where.Reports(), name)

	if err := filesystem.API().WriteFile(path, []byte(r.Render()), 0644); err != nil {
		return "", err
	}

	return path, nil
}
