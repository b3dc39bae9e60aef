package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// SearchClient queries a SerpAPI-style web search endpoint. Besides
// searching, the same account exposes a remaining-quota counter that the
// presentation shell displays.
type SearchClient struct {
	APIKey  string
	BaseURL string

	client *http.Client
}

// NewSearchClient builds a search client. baseURL may be empty to use the
// public service.
func NewSearchClient(apiKey, baseURL string) *SearchClient {
	if baseURL == "" {
		baseURL = "https://serpapi.com"
	}
	return &SearchClient{APIKey: apiKey, BaseURL: baseURL, client: newHTTPClient()}
}

// Configured reports whether the client holds an API key.
func (s *SearchClient) Configured() bool {
	return s != nil && s.APIKey != ""
}

// Search runs a web search and returns the organic results in order.
// An empty result set is reported as ErrNoResults.
func (s *SearchClient) Search(ctx context.Context, query string) ([]SearchResult, error) {
	if !s.Configured() {
		return nil, ErrUnconfigured
	}

	endpoint := fmt.Sprintf("%s/search.json?engine=google&q=%s&api_key=%s",
		s.BaseURL, url.QueryEscape(query), url.QueryEscape(s.APIKey))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: "search", Code: resp.StatusCode, Body: string(raw)}
	}

	var payload struct {
		OrganicResults []SearchResult `json:"organic_results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	if len(payload.OrganicResults) == 0 {
		return nil, ErrNoResults
	}

	return payload.OrganicResults, nil
}

// AccountUsage returns the number of searches left on the account, or
// "N/A" when the account endpoint cannot be reached. The widget is
// advisory, so failures here are soft.
func (s *SearchClient) AccountUsage(ctx context.Context) string {
	if !s.Configured() {
		return "N/A"
	}

	endpoint := fmt.Sprintf("%s/account.json?api_key=%s", s.BaseURL, url.QueryEscape(s.APIKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "N/A"
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return "N/A"
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "N/A"
	}

	var payload struct {
		TotalSearchesLeft *int `json:"total_searches_left"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil || payload.TotalSearchesLeft == nil {
		return "N/A"
	}
	return fmt.Sprintf("%d", *payload.TotalSearchesLeft)
}
