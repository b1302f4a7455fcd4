// Package exa handles communication with the Exa search API to fetch web
// search results and their page contents for a set of keywords.
package exa

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultSearchURL   = "https://api.exa.ai/search"
	defaultContentsURL = "https://api.exa.ai/contents"
	timeout            = 300 * time.Second

	// DefaultResultCount is how many results a search asks for when the
	// caller does not override it.
	DefaultResultCount = 10
)

// Client communicates with the Exa API.
type Client struct {
	apiKey      string
	searchURL   string
	contentsURL string
	httpClient  *http.Client
}

// NewClient creates an Exa client with the given API key.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:      apiKey,
		searchURL:   defaultSearchURL,
		contentsURL: defaultContentsURL,
		httpClient:  &http.Client{Timeout: timeout},
	}
}

// Result is a single web search hit.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	ID    string `json:"id,omitempty"`
	Text  string `json:"text,omitempty"`
}

type searchRequest struct {
	Query         string `json:"query"`
	NumResults    int    `json:"num_results"`
	UseAutoprompt bool   `json:"use_autoprompt"`
	Text          bool   `json:"text"`
}

type searchResponse struct {
	Results []Result `json:"results"`
}

type contentsRequest struct {
	IDs []string `json:"ids"`
}

type contentsResponse struct {
	Results []contentResult `json:"results"`
}

type contentResult struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Search issues the keywords to Exa and returns the result list. An empty
// result list is an error: the pipeline has nothing to summarize.
func (c *Client) Search(ctx context.Context, keywords string, numResults int) ([]Result, error) {
	if numResults <= 0 {
		numResults = DefaultResultCount
	}
	payload := searchRequest{
		Query:         keywords,
		NumResults:    numResults,
		UseAutoprompt: false,
		Text:          true,
	}

	var parsed searchResponse
	if err := c.post(ctx, c.searchURL, payload, &parsed); err != nil {
		return nil, fmt.Errorf("Exa search failed: %w", err)
	}
	if len(parsed.Results) == 0 {
		return nil, fmt.Errorf("Exa returned no results for %q — try more general keywords", keywords)
	}
	return parsed.Results, nil
}

// Contents fetches detailed page text for the given result IDs, keyed by
// ID. Callers treat a failure here as non-fatal and fall back to the text
// captured during the initial search.
func (c *Client) Contents(ctx context.Context, ids []string) (map[string]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	var parsed contentsResponse
	if err := c.post(ctx, c.contentsURL, contentsRequest{IDs: ids}, &parsed); err != nil {
		return nil, fmt.Errorf("Exa contents fetch failed: %w", err)
	}

	contents := make(map[string]string, len(parsed.Results))
	for _, r := range parsed.Results {
		contents[r.ID] = r.Text
	}
	return contents, nil
}

func (c *Client) post(ctx context.Context, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, respBody)
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}
