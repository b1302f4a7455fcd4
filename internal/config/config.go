// Package config handles loading and persisting user configuration for
// askr. Configuration is stored in ~/.askr/config.json; API keys are read
// from the environment or a .env file in the working directory.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	dirName  = ".askr"
	fileName = "config.json"

	defaultSearchModel = "deepseek/deepseek-chat-v3-0324:free"
	defaultAnswerModel = "google/gemini-2.5-pro-exp-03-25"

	envOpenRouterKey = "OPENROUTER_API_KEY"
	envExaKey        = "EXA_API_KEY"
	envSearchModel   = "ASKR_SEARCH_MODEL"
	envAnswerModel   = "ASKR_ANSWER_MODEL"
)

// Config holds the user's configuration.
type Config struct {
	OpenRouterKey string `json:"openrouter_key,omitempty"`
	ExaKey        string `json:"exa_key,omitempty"`
	SearchModel   string `json:"search_model"`
	AnswerModel   string `json:"answer_model"`
}

// Dir returns the configuration directory path.
func Dir() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, dirName)
}

func configPath() string {
	return filepath.Join(Dir(), fileName)
}

// Load reads the configuration from disk, a .env file, and environment
// variables. Environment values take precedence over the config file.
// Missing API keys are not an error here; callers validate what they need.
func Load() (*Config, error) {
	// Best-effort: a missing .env file is fine.
	_ = godotenv.Load()

	cfg := &Config{
		SearchModel: defaultSearchModel,
		AnswerModel: defaultAnswerModel,
	}

	data, err := os.ReadFile(configPath())
	if err == nil {
		_ = json.Unmarshal(data, cfg)
	}

	if key := os.Getenv(envOpenRouterKey); key != "" {
		cfg.OpenRouterKey = key
	}
	if key := os.Getenv(envExaKey); key != "" {
		cfg.ExaKey = key
	}
	if model := os.Getenv(envSearchModel); model != "" {
		cfg.SearchModel = model
	}
	if model := os.Getenv(envAnswerModel); model != "" {
		cfg.AnswerModel = model
	}

	if cfg.SearchModel == "" {
		cfg.SearchModel = defaultSearchModel
	}
	if cfg.AnswerModel == "" {
		cfg.AnswerModel = defaultAnswerModel
	}

	return cfg, nil
}

// save persists the config to disk.
func save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0o700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(configPath(), data, 0o600)
}

// update loads the stored config, applies fn, and saves the result.
func update(fn func(*Config)) error {
	cfg := &Config{
		SearchModel: defaultSearchModel,
		AnswerModel: defaultAnswerModel,
	}

	data, err := os.ReadFile(configPath())
	if err == nil {
		_ = json.Unmarshal(data, cfg)
	}

	fn(cfg)
	return save(cfg)
}

// SetOpenRouterKey saves the OpenRouter API key to the config file.
func SetOpenRouterKey(key string) error {
	return update(func(c *Config) { c.OpenRouterKey = key })
}

// SetExaKey saves the Exa API key to the config file.
func SetExaKey(key string) error {
	return update(func(c *Config) { c.ExaKey = key })
}

// SetSearchModel saves the keyword-generation model preference.
func SetSearchModel(model string) error {
	return update(func(c *Config) { c.SearchModel = model })
}

// SetAnswerModel saves the answer-generation model preference.
func SetAnswerModel(model string) error {
	return update(func(c *Config) { c.AnswerModel = model })
}
