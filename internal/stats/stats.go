// Package stats aggregates token usage and run outcomes from the research
// history into a small dashboard for the stats subcommand.
package stats

import (
	"time"

	"github.com/arin/askr/internal/history"
)

// Summary is the aggregated usage dashboard.
type Summary struct {
	TotalRuns        int
	SuccessRate      float64
	PromptTokens     uint
	CompletionTokens uint
	TotalTokens      uint
	AvgTokensPerRun  uint
	TodayCount       int
	ThisWeekCount    int
}

// Summarize computes aggregated stats from history entries.
func Summarize(entries []history.Entry) *Summary {
	s := &Summary{TotalRuns: len(entries)}
	if len(entries) == 0 {
		return s
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekAgo := now.AddDate(0, 0, -7)

	successes := 0
	for _, e := range entries {
		if e.Success {
			successes++
		}
		s.PromptTokens += e.PromptTokens
		s.CompletionTokens += e.CompletionTokens
		s.TotalTokens += e.TotalTokens

		if !e.Timestamp.Before(today) {
			s.TodayCount++
		}
		if e.Timestamp.After(weekAgo) {
			s.ThisWeekCount++
		}
	}

	s.SuccessRate = float64(successes) / float64(len(entries)) * 100
	s.AvgTokensPerRun = s.TotalTokens / uint(len(entries))

	return s
}
