package websearch

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearch(t *testing.T) {
	var gotAuth string
	var gotReq searchRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(searchResponse{
			Results: []searchResult{
				{Title: "Refund rules", URL: "https://example.com/refunds", Content: "30 day window", Score: 0.9},
				{URL: "https://example.com/other", Content: "untitled snippet", Score: 0.4},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 2)
	docs, err := c.Search(context.Background(), "refund policy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q, want bearer key", gotAuth)
	}
	if gotReq.Query != "refund policy" || gotReq.MaxResults != 2 {
		t.Errorf("request = %+v, want query and max_results forwarded", gotReq)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].Source != "https://example.com/refunds" {
		t.Errorf("source = %q, want the result URL", docs[0].Source)
	}
	if docs[0].Content != "Refund rules\n30 day window" {
		t.Errorf("content = %q, want title prepended", docs[0].Content)
	}
	if docs[1].Content != "untitled snippet" {
		t.Errorf("content = %q, want bare content when untitled", docs[1].Content)
	}
}

func TestSearchHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", 3)
	if _, err := c.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected an error for a non-200 response")
	}
}

func TestSearchMissingAPIKey(t *testing.T) {
	c := NewClient("http://unused", "", 3)
	if _, err := c.Search(context.Background(), "q"); err == nil {
		t.Fatal("expected an error when the API key is unset")
	}
}
