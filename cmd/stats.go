package cmd

import (
	"fmt"

	"github.com/arin/askr/internal/history"
	"github.com/arin/askr/internal/stats"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and run statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := history.Load(0)
		if err != nil {
			return fmt.Errorf("failed to load history: %w", err)
		}

		s := stats.Summarize(entries)
		if s.TotalRuns == 0 {
			fmt.Println("No research runs yet.")
			return nil
		}

		bold := color.New(color.Bold)
		cyan := color.New(color.FgCyan)

		bold.Println("Research stats")
		fmt.Printf("  Runs:         %d (%d today, %d this week)\n", s.TotalRuns, s.TodayCount, s.ThisWeekCount)
		fmt.Printf("  Success rate: %.0f%%\n", s.SuccessRate)
		cyan.Printf("  Tokens:       prompt %d, completion %d, total %d\n", s.PromptTokens, s.CompletionTokens, s.TotalTokens)
		cyan.Printf("  Avg per run:  %d tokens\n", s.AvgTokensPerRun)
		return nil
	},
}
