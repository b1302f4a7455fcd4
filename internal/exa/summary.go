// Package exa — summary.go formats search results into the plain-text
// block handed to the answer model.
package exa

import (
	"fmt"
	"strings"
)

// snippetLimit caps how much page text each result contributes.
const snippetLimit = 500

// BuildSummary renders results into a numbered plain-text summary. For
// each result it prefers the detailed text from contents (keyed by result
// ID), falls back to the text captured by the initial search, and notes
// when neither is available.
func BuildSummary(results []Result, contents map[string]string) string {
	var b strings.Builder
	b.WriteString("Summary of relevant web search results:\n")

	for i, r := range results {
		fmt.Fprintf(&b, "\nResult %d\nTitle: %s\nURL: %s\n", i+1, r.Title, r.URL)

		text, fromContents := "", false
		if r.ID != "" {
			if full, ok := contents[r.ID]; ok {
				text, fromContents = full, true
			}
		}
		if !fromContents {
			text = r.Text
		}

		snippet := snippet(text)
		switch {
		case snippet != "" && fromContents:
			fmt.Fprintf(&b, "Summary:\n%s...\n", snippet)
		case snippet != "":
			fmt.Fprintf(&b, "Summary (from initial search):\n%s...\n", snippet)
		default:
			b.WriteString("Summary: (no text content available)\n")
		}
	}

	return b.String()
}

// snippet strips blank lines and truncates to snippetLimit runes.
func snippet(text string) string {
	if text == "" {
		return ""
	}

	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			kept = append(kept, line)
		}
	}
	cleaned := strings.Join(kept, "\n")

	runes := []rune(cleaned)
	if len(runes) > snippetLimit {
		return string(runes[:snippetLimit])
	}
	return cleaned
}
