// Package history manages the research history for askr.
// History is stored as a JSON file in the user's config directory.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/arin/askr/internal/config"
)

const (
	fileName   = "history.json"
	maxEntries = 500

	// answerLimit trims stored answers so the history file stays small.
	answerLimit = 500
)

// fileMu guards concurrent access to the history file.
var fileMu sync.Mutex

// Entry records one completed research run.
type Entry struct {
	Timestamp        time.Time `json:"timestamp"`
	Query            string    `json:"query"`
	Keywords         string    `json:"keywords,omitempty"`
	Answer           string    `json:"answer,omitempty"`
	PromptTokens     uint      `json:"prompt_tokens,omitempty"`
	CompletionTokens uint      `json:"completion_tokens,omitempty"`
	TotalTokens      uint      `json:"total_tokens,omitempty"`
	Success          bool      `json:"success"`
}

func historyPath() string {
	return filepath.Join(config.Dir(), fileName)
}

// Save appends a new entry to the history file.
func Save(entry Entry) error {
	fileMu.Lock()
	defer fileMu.Unlock()

	entry.Timestamp = time.Now()
	if len(entry.Answer) > answerLimit {
		entry.Answer = entry.Answer[:answerLimit] + "..."
	}

	entries, _ := loadAll()
	entries = append(entries, entry)

	// Trim to max entries, keeping the most recent.
	if len(entries) > maxEntries {
		entries = entries[len(entries)-maxEntries:]
	}

	if err := os.MkdirAll(config.Dir(), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(historyPath(), data, 0o600)
}

// Load returns the most recent n history entries. A non-positive limit
// returns everything.
func Load(limit int) ([]Entry, error) {
	entries, err := loadAll()
	if err != nil {
		return nil, err
	}

	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	return entries, nil
}

func loadAll() ([]Entry, error) {
	data, err := os.ReadFile(historyPath())
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}

	return entries, nil
}
