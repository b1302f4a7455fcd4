package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arin/askr/internal/config"
	"github.com/arin/askr/internal/exa"
	"github.com/arin/askr/internal/history"
	"github.com/arin/askr/internal/openrouter"
	"github.com/arin/askr/internal/ui"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// research runs the three-phase pipeline: keywords, web search, answer.
func research(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		query = promptForQuery()
	}
	if query == "" {
		return fmt.Errorf("please provide a question\n\nUsage: askr <your question>\nExample: askr how does raft leader election work")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}
	if cfg.OpenRouterKey == "" {
		return fmt.Errorf("OPENROUTER_API_KEY is not set — export it, add it to .env, or run: askr config set-openrouter-key <key>")
	}
	if cfg.ExaKey == "" {
		return fmt.Errorf("EXA_API_KEY is not set — export it, add it to .env, or run: askr config set-exa-key <key>")
	}

	ctx := cmd.Context()
	orClient := openrouter.NewClient(cfg)
	exaClient := exa.NewClient(cfg.ExaKey)

	blue := color.New(color.FgHiBlue, color.Bold)

	// Phase 1: search keywords.
	blue.Fprintln(os.Stderr, "🔍 Phase 1: Generating search keywords")
	sp := ui.NewSpinner(fmt.Sprintf("Asking %s for search keywords...", cfg.SearchModel))
	sp.Start()
	keywords, keywordUsage, err := orClient.Keywords(ctx, query)
	if err != nil {
		sp.Fail("Keyword generation failed")
		recordRun(query, "", "", keywordUsage, nil, false)
		return err
	}
	keywords = strings.TrimSpace(keywords)
	sp.Success("Search keywords: " + keywords)
	printUsage("Keyword generation", keywordUsage)

	// Phase 2: web search.
	blue.Fprintln(os.Stderr, "\n🌐 Phase 2: Fetching search results (Exa)")
	sp = ui.NewSpinner(fmt.Sprintf("Searching with Exa: %q", keywords))
	sp.Start()
	results, err := exaClient.Search(ctx, keywords, resultCount)
	if err != nil {
		sp.Fail("Exa search failed")
		recordRun(query, keywords, "", keywordUsage, nil, false)
		return err
	}
	sp.UpdateMessage("Fetching detailed content (via Exa /contents)...")

	var ids []string
	for _, r := range results {
		if r.ID != "" {
			ids = append(ids, r.ID)
		}
	}
	contents, err := exaClient.Contents(ctx, ids)
	if err != nil {
		// Non-fatal: the summary falls back to the search snippets.
		sp.Warn(fmt.Sprintf("Could not fetch detailed content: %v", err))
		contents = nil
	} else {
		sp.Success(fmt.Sprintf("Exa returned %d results", len(results)))
	}
	summary := exa.BuildSummary(results, contents)

	// Phase 3: final answer.
	blue.Fprintln(os.Stderr, "\n💡 Phase 3: Generating final answer")
	sp = ui.NewSpinner(fmt.Sprintf("Waiting for %s...", cfg.AnswerModel))
	sp.Start()

	// The spinner would fight the streamed text for the terminal, so it is
	// stopped as soon as the first fragment arrives.
	var sink *ui.Stream
	var liveSink io.Writer
	if !quiet {
		sink = ui.NewStream(&spinnerStoppingWriter{sp: sp, w: os.Stdout}, "")
		liveSink = sink
	}

	answer, answerUsage, err := orClient.Answer(ctx, query, summary, liveSink)
	if err != nil {
		sp.Fail("Answer generation failed")
		recordRun(query, keywords, "", keywordUsage, answerUsage, false)
		return err
	}

	if sink != nil && sink.Wrote() {
		sink.Finish()
		sp.Stop()
	} else {
		sp.Success("Answer received")
		green := color.New(color.FgGreen, color.Bold)
		green.Println("\nAnswer:")
		fmt.Println(strings.TrimSpace(answer))
	}
	printUsage("Final answer", answerUsage)

	recordRun(query, keywords, answer, keywordUsage, answerUsage, true)
	return nil
}

// spinnerStoppingWriter stops the spinner before the first byte of the
// live answer reaches stdout.
type spinnerStoppingWriter struct {
	sp      *ui.Spinner
	w       *os.File
	stopped bool
}

func (s *spinnerStoppingWriter) Write(p []byte) (int, error) {
	if !s.stopped {
		s.sp.Stop()
		s.stopped = true
	}
	return s.w.Write(p)
}

func promptForQuery() string {
	yellow := color.New(color.FgYellow)
	yellow.Fprintln(os.Stderr, "What do you want to research?")
	reader := bufio.NewReader(os.Stdin)
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

func printUsage(label string, usage *openrouter.Usage) {
	if usage == nil {
		return
	}
	var completion uint
	if usage.CompletionTokens != nil {
		completion = *usage.CompletionTokens
	}
	cyan := color.New(color.FgCyan)
	cyan.Fprintf(os.Stderr, "  %s token usage — prompt: %d, completion: %d, total: %d\n",
		label, usage.PromptTokens, completion, usage.TotalTokens)
}

// recordRun persists the outcome; history failures never break the run.
func recordRun(query, keywords, answer string, keywordUsage, answerUsage *openrouter.Usage, success bool) {
	entry := history.Entry{
		Query:    query,
		Keywords: keywords,
		Answer:   answer,
		Success:  success,
	}

	for _, u := range []*openrouter.Usage{keywordUsage, answerUsage} {
		if u == nil {
			continue
		}
		entry.PromptTokens += u.PromptTokens
		if u.CompletionTokens != nil {
			entry.CompletionTokens += *u.CompletionTokens
		}
		entry.TotalTokens += u.TotalTokens
	}

	if err := history.Save(entry); err != nil {
		dim := color.New(color.FgHiBlack)
		dim.Fprintf(os.Stderr, "  (failed to save history: %v)\n", err)
	}
}
