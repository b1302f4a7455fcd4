// Package openrouter handles communication with the OpenRouter
// chat-completion API to derive search keywords from a user query and to
// synthesize a final answer from web search results.
package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/arin/askr/internal/config"
)

const (
	defaultAPIURL = "https://openrouter.ai/api/v1/chat/completions"
	referer       = "https://github.com/arin/askr"
	appName       = "askr"
	timeout       = 300 * time.Second
)

// Client communicates with the OpenRouter API.
type Client struct {
	apiKey      string
	searchModel string
	answerModel string
	apiURL      string
	httpClient  *http.Client
	diag        io.Writer
}

// NewClient creates a client from the loaded configuration.
func NewClient(cfg *config.Config) *Client {
	return &Client{
		apiKey:      cfg.OpenRouterKey,
		searchModel: cfg.SearchModel,
		answerModel: cfg.AnswerModel,
		apiURL:      defaultAPIURL,
		httpClient:  &http.Client{Timeout: timeout},
		diag:        os.Stderr,
	}
}

// Keywords asks the search model for 3-5 comma-separated web search
// keywords derived from the user's query. The stream is consumed silently;
// only the assembled text and usage are returned.
func (c *Client) Keywords(ctx context.Context, query string) (string, *Usage, error) {
	prompt := fmt.Sprintf(
		"Based on the following user query, generate 3-5 concise search keywords suitable for a web search engine. Return only the keywords, comma-separated. User query: %q",
		query,
	)
	return c.complete(ctx, c.searchModel, prompt, "keyword generation", nil)
}

// Answer asks the answer model to synthesize a final answer from the
// user's query and the web search summary. When sink is non-nil, content
// fragments are echoed to it as they arrive.
func (c *Client) Answer(ctx context.Context, query, searchSummary string, sink io.Writer) (string, *Usage, error) {
	prompt := fmt.Sprintf(
		"Based on your existing knowledge and the following web search results, please provide a comprehensive answer to the user's original query.\n\nUser Query: %q\n\nWeb Search Results:\n%s\n\nYour Answer:",
		query, searchSummary,
	)
	return c.complete(ctx, c.answerModel, prompt, "final answer generation", sink)
}

func (c *Client) complete(ctx context.Context, model, prompt, phase string, sink io.Writer) (string, *Usage, error) {
	reqBody := chatRequest{
		Model:    model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
		Stream:   true,
	}
	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("HTTP-Referer", referer)
	req.Header.Set("X-Title", appName)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("failed to send request to OpenRouter for %s: %w", phase, err)
	}
	defer resp.Body.Close()

	cons := &consumer{phase: phase, sink: sink, diag: c.diag}
	out, err := cons.consume(resp)
	if err != nil {
		return "", nil, err
	}
	return out.Text, out.Usage, nil
}
