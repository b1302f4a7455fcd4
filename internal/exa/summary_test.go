package exa

import (
	"strings"
	"testing"
)

func TestBuildSummary_PrefersDetailedContents(t *testing.T) {
	results := []Result{{Title: "Go", URL: "https://go.dev", ID: "r1", Text: "search text"}}
	contents := map[string]string{"r1": "detailed page text"}

	summary := BuildSummary(results, contents)

	if !strings.Contains(summary, "detailed page text") {
		t.Errorf("expected detailed text, got:\n%s", summary)
	}
	if strings.Contains(summary, "from initial search") {
		t.Error("should not mark detailed contents as fallback")
	}
	if !strings.Contains(summary, "Title: Go") || !strings.Contains(summary, "URL: https://go.dev") {
		t.Errorf("expected title and URL, got:\n%s", summary)
	}
}

func TestBuildSummary_FallsBackToSearchText(t *testing.T) {
	results := []Result{{Title: "Go", URL: "https://go.dev", ID: "r1", Text: "search text"}}

	summary := BuildSummary(results, nil)

	if !strings.Contains(summary, "search text") {
		t.Errorf("expected fallback text, got:\n%s", summary)
	}
	if !strings.Contains(summary, "from initial search") {
		t.Errorf("fallback should be labeled, got:\n%s", summary)
	}
}

func TestBuildSummary_NoTextAvailable(t *testing.T) {
	results := []Result{{Title: "Empty", URL: "https://example.com"}}

	summary := BuildSummary(results, nil)

	if !strings.Contains(summary, "(no text content available)") {
		t.Errorf("expected placeholder, got:\n%s", summary)
	}
}

func TestBuildSummary_NumbersResults(t *testing.T) {
	results := []Result{
		{Title: "One", URL: "u1"},
		{Title: "Two", URL: "u2"},
		{Title: "Three", URL: "u3"},
	}

	summary := BuildSummary(results, nil)

	for _, want := range []string{"Result 1", "Result 2", "Result 3"} {
		if !strings.Contains(summary, want) {
			t.Errorf("expected %q in summary:\n%s", want, summary)
		}
	}
}

func TestSnippet_StripsBlankLinesAndTruncates(t *testing.T) {
	text := "first line\n\n   \nsecond line"
	got := snippet(text)
	if got != "first line\nsecond line" {
		t.Errorf("expected blank lines stripped, got %q", got)
	}

	long := strings.Repeat("é", snippetLimit+100)
	got = snippet(long)
	if len([]rune(got)) != snippetLimit {
		t.Errorf("expected %d runes, got %d", snippetLimit, len([]rune(got)))
	}
	// Truncation must not split the multi-byte rune.
	if !strings.HasSuffix(got, "é") {
		t.Error("truncation broke a rune boundary")
	}
}

func TestSnippet_Empty(t *testing.T) {
	if snippet("") != "" {
		t.Error("empty text should yield empty snippet")
	}
	if snippet("\n  \n\t\n") != "" {
		t.Error("whitespace-only text should yield empty snippet")
	}
}
