package exa

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func newTestClient(searchURL, contentsURL string) *Client {
	return &Client{
		apiKey:      "exa-test-key",
		searchURL:   searchURL,
		contentsURL: contentsURL,
		httpClient:  &http.Client{Timeout: 5 * time.Second},
	}
}

func TestSearch_ReturnsResults(t *testing.T) {
	var gotReq searchRequest
	var gotKey string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("x-api-key")
		json.NewDecoder(r.Body).Decode(&gotReq)
		io.WriteString(w, `{"results":[{"title":"Go","url":"https://go.dev","id":"r1","text":"golang"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	results, err := client.Search(context.Background(), "go language", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 || results[0].Title != "Go" || results[0].ID != "r1" {
		t.Errorf("unexpected results: %+v", results)
	}
	if gotKey != "exa-test-key" {
		t.Errorf("expected x-api-key header, got %q", gotKey)
	}
	if gotReq.Query != "go language" || gotReq.NumResults != 5 {
		t.Errorf("unexpected request payload: %+v", gotReq)
	}
	if !gotReq.Text || gotReq.UseAutoprompt {
		t.Errorf("expected text=true use_autoprompt=false, got %+v", gotReq)
	}
}

func TestSearch_DefaultResultCount(t *testing.T) {
	var gotReq searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		io.WriteString(w, `{"results":[{"title":"t","url":"u"}]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	if _, err := client.Search(context.Background(), "q", 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotReq.NumResults != DefaultResultCount {
		t.Errorf("expected default count %d, got %d", DefaultResultCount, gotReq.NumResults)
	}
}

func TestSearch_EmptyResultsIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"results":[]}`)
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	_, err := client.Search(context.Background(), "obscure terms", 10)
	if err == nil {
		t.Fatal("expected an error for empty results")
	}
	if !strings.Contains(err.Error(), "no results") {
		t.Errorf("expected 'no results' in error, got: %v", err)
	}
}

func TestSearch_APIErrorIncludesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		io.WriteString(w, "invalid api key")
	}))
	defer srv.Close()

	client := newTestClient(srv.URL, "")
	_, err := client.Search(context.Background(), "q", 10)
	if err == nil {
		t.Fatal("expected an error")
	}
	if !strings.Contains(err.Error(), "invalid api key") {
		t.Errorf("expected body in error, got: %v", err)
	}
}

func TestContents_KeysByID(t *testing.T) {
	var gotReq contentsRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotReq)
		io.WriteString(w, `{"results":[{"id":"a","text":"alpha"},{"id":"b","text":"beta"}]}`)
	}))
	defer srv.Close()

	client := newTestClient("", srv.URL)
	contents, err := client.Contents(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contents["a"] != "alpha" || contents["b"] != "beta" {
		t.Errorf("unexpected contents map: %+v", contents)
	}
	if len(gotReq.IDs) != 2 {
		t.Errorf("expected 2 ids in request, got %+v", gotReq.IDs)
	}
}

func TestContents_NoIDsNoRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be sent for an empty id list")
	}))
	defer srv.Close()

	client := newTestClient("", srv.URL)
	contents, err := client.Contents(context.Background(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if contents != nil {
		t.Errorf("expected nil map, got %+v", contents)
	}
}

func TestContents_MalformedResponseIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "not json")
	}))
	defer srv.Close()

	client := newTestClient("", srv.URL)
	if _, err := client.Contents(context.Background(), []string{"a"}); err == nil {
		t.Fatal("expected a parse error")
	}
}
