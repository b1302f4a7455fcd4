package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func setupTestDir(t *testing.T) func() {
	t.Helper()
	dir := t.TempDir()
	origHome := os.Getenv("HOME")
	os.Setenv("HOME", dir)
	os.MkdirAll(filepath.Join(dir, ".askr"), 0o700)
	return func() { os.Setenv("HOME", origHome) }
}

func TestSave_SingleEntry(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	err := Save(Entry{
		Query:       "how do goroutines work",
		Keywords:    "goroutines, go scheduler",
		Answer:      "Goroutines are lightweight threads.",
		TotalTokens: 120,
		Success:     true,
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := Load(10)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Query != "how do goroutines work" {
		t.Errorf("unexpected query: %q", entries[0].Query)
	}
	if entries[0].Keywords != "goroutines, go scheduler" {
		t.Errorf("unexpected keywords: %q", entries[0].Keywords)
	}
	if entries[0].TotalTokens != 120 {
		t.Errorf("unexpected token total: %d", entries[0].TotalTokens)
	}
	if !entries[0].Success {
		t.Error("expected success=true")
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("expected non-zero timestamp")
	}
}

func TestSave_TrimsLongAnswers(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	long := strings.Repeat("x", answerLimit+200)
	if err := Save(Entry{Query: "q", Answer: long, Success: true}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, _ := Load(1)
	if len(entries[0].Answer) != answerLimit+len("...") {
		t.Errorf("expected trimmed answer, got %d bytes", len(entries[0].Answer))
	}
	if !strings.HasSuffix(entries[0].Answer, "...") {
		t.Error("trimmed answer should end with ellipsis")
	}
}

func TestLoad_RespectsLimit(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	for i := 0; i < 5; i++ {
		Save(Entry{Query: "q", Success: true})
	}

	entries, err := Load(3)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("expected 3 entries, got %d", len(entries))
	}

	all, err := Load(0)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(all) != 5 {
		t.Errorf("expected all 5 entries, got %d", len(all))
	}
}

func TestLoad_NoFile(t *testing.T) {
	cleanup := setupTestDir(t)
	defer cleanup()

	entries, err := Load(10)
	if err != nil {
		t.Fatalf("Load should tolerate a missing file: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected no entries, got %d", len(entries))
	}
}
