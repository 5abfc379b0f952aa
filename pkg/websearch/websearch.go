// Package websearch is the live web-search collaborator, a thin client for a
// Tavily-compatible JSON search API.
package websearch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mikeboe/workplace-chat/pkg/chat"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	maxResults int
}

func NewClient(baseURL, apiKey string, maxResults int) *Client {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
		maxResults: maxResults,
	}
}

type searchRequest struct {
	Query      string `json:"query"`
	MaxResults int    `json:"max_results"`
}

type searchResult struct {
	Title   string  `json:"title"`
	URL     string  `json:"url"`
	Content string  `json:"content"`
	Score   float64 `json:"score"`
}

type searchResponse struct {
	Results []searchResult `json:"results"`
}

// Search runs one query against the search API and maps the results into the
// shared document shape, with the result URL as the source.
func (c *Client) Search(ctx context.Context, query string) ([]chat.Document, error) {
	if c.apiKey == "" {
		return nil, fmt.Errorf("SEARCH_API_KEY is not set")
	}

	jsonBody, err := json.Marshal(searchRequest{
		Query:      query,
		MaxResults: c.maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewBuffer(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make API request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status: %s, body: %s", resp.Status, string(body))
	}

	var searchResp searchResponse
	if err := json.Unmarshal(body, &searchResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal search response: %w", err)
	}

	docs := make([]chat.Document, 0, len(searchResp.Results))
	for _, r := range searchResp.Results {
		content := r.Content
		if r.Title != "" {
			content = r.Title + "\n" + content
		}
		docs = append(docs, chat.Document{
			Content: content,
			Source:  r.URL,
			Score:   r.Score,
		})
	}
	return docs, nil
}
