package cmd

import (
	"github.com/spf13/cobra"
)

var (
	resultCount int
	quiet       bool
)

var rootCmd = &cobra.Command{
	Use:   "askr [question]",
	Short: "A web-research assistant for your terminal",
	Long: `askr answers questions using live web research.

It asks an OpenRouter model for search keywords, runs them through the
Exa search API, and streams a final answer synthesized from the results.

Examples:
  askr how does the Go scheduler preempt goroutines
  askr "what changed in HTTP/3 vs HTTP/2?"
  askr --results 5 --quiet latest postgres 17 features

Keys: set OPENROUTER_API_KEY and EXA_API_KEY in the environment, a .env
file, or via "askr config".`,
	RunE:          research,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.Flags().IntVarP(&resultCount, "results", "r", 10, "Number of web search results to fetch")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Print the answer only when complete instead of streaming it")

	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(statsCmd)
}

// SetVersion wires the build-time version into cobra's --version flag.
func SetVersion(v string) {
	rootCmd.Version = v
}

// Execute is the entry point called from main.
func Execute() error {
	return rootCmd.Execute()
}
