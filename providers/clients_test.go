package providers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Philberto99/philbot/providers"
)

func TestChatClientParsesCompletion(t *testing.T) {
	var gotPath, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"model": "gpt-4o-mini",
			"choices": [{"message": {"role": "assistant", "content": "hello there"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 12, "completion_tokens": 3, "total_tokens": 15}
		}`))
	}))
	defer ts.Close()

	client := providers.NewChatClient("test-key", ts.URL, "", "", "gpt-4o-mini")
	result, err := client.Chat(context.Background(), []providers.Message{
		{Role: "user", Content: "hi"},
	})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if result.Text != "hello there" {
		t.Errorf("unexpected text: %q", result.Text)
	}
	if result.TotalTokens != 15 {
		t.Errorf("expected 15 total tokens, got %d", result.TotalTokens)
	}
	if gotPath != "/v1/chat/completions" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("unexpected auth header: %s", gotAuth)
	}
}

func TestChatClientAzureDeploymentPath(t *testing.T) {
	var gotPath, gotKey, gotVersion string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("api-key")
		gotVersion = r.URL.Query().Get("api-version")
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}], "usage": {"total_tokens": 7}}`))
	}))
	defer ts.Close()

	client := providers.NewChatClient("azure-key", ts.URL, "gpt-35", "2024-02-01", "")
	result, err := client.Chat(context.Background(), []providers.Message{{Role: "user", Content: "hi"}})
	if err != nil {
		t.Fatalf("Chat failed: %v", err)
	}

	if result.Text != "ok" || result.TotalTokens != 7 {
		t.Errorf("unexpected result: %+v", result)
	}
	if gotPath != "/openai/deployments/gpt-35/chat/completions" {
		t.Errorf("unexpected path: %s", gotPath)
	}
	if gotKey != "azure-key" {
		t.Errorf("expected api-key header, got %q", gotKey)
	}
	if gotVersion != "2024-02-01" {
		t.Errorf("unexpected api-version: %s", gotVersion)
	}
}

func TestChatClientUnconfigured(t *testing.T) {
	client := providers.NewChatClient("", "", "", "", "")
	_, err := client.Chat(context.Background(), nil)
	if !errors.Is(err, providers.ErrUnconfigured) {
		t.Fatalf("expected ErrUnconfigured, got %v", err)
	}
}

func TestChatClientStatusError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error": "quota exceeded"}`, http.StatusTooManyRequests)
	}))
	defer ts.Close()

	client := providers.NewChatClient("key", ts.URL, "", "", "m")
	_, err := client.Chat(context.Background(), []providers.Message{{Role: "user", Content: "hi"}})

	var statusErr *providers.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.Code != http.StatusTooManyRequests {
		t.Errorf("unexpected status code %d", statusErr.Code)
	}
}

func TestSearchClientParsesOrganicResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "go routers" {
			t.Errorf("unexpected query: %q", got)
		}
		w.Write([]byte(`{"organic_results": [
			{"title": "First", "link": "https://a.example"},
			{"title": "Second", "link": "https://b.example"}
		]}`))
	}))
	defer ts.Close()

	client := providers.NewSearchClient("key", ts.URL)
	results, err := client.Search(context.Background(), "go routers")
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Title != "First" || results[1].Link != "https://b.example" {
		t.Errorf("unexpected results: %+v", results)
	}
}

func TestSearchClientEmptyIsNoResults(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"organic_results": []}`))
	}))
	defer ts.Close()

	client := providers.NewSearchClient("key", ts.URL)
	_, err := client.Search(context.Background(), "nothing")
	if !errors.Is(err, providers.ErrNoResults) {
		t.Fatalf("expected ErrNoResults, got %v", err)
	}
}

func TestSearchClientAccountUsage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/account.json" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"total_searches_left": 87}`))
	}))
	defer ts.Close()

	client := providers.NewSearchClient("key", ts.URL)
	if got := client.AccountUsage(context.Background()); got != "87" {
		t.Errorf("expected 87, got %q", got)
	}

	unconfigured := providers.NewSearchClient("", ts.URL)
	if got := unconfigured.AccountUsage(context.Background()); got != "N/A" {
		t.Errorf("expected N/A for unconfigured client, got %q", got)
	}
}

func TestGeoClientLocate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "success", "city": "Paris", "lat": 48.85, "lon": 2.35}`))
	}))
	defer ts.Close()

	client := providers.NewGeoClient(ts.URL)
	loc, err := client.Locate(context.Background())
	if err != nil {
		t.Fatalf("Locate failed: %v", err)
	}
	if loc.City != "Paris" || loc.Lat != 48.85 || loc.Lon != 2.35 {
		t.Errorf("unexpected location: %+v", loc)
	}
}

func TestGeoClientNoCoordinates(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "fail"}`))
	}))
	defer ts.Close()

	client := providers.NewGeoClient(ts.URL)
	_, err := client.Locate(context.Background())
	if !errors.Is(err, providers.ErrNoLocation) {
		t.Fatalf("expected ErrNoLocation, got %v", err)
	}
}

func TestWeatherClientCurrent(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("expected metric units, got %q", got)
		}
		w.Write([]byte(`{"weather": [{"description": "clear sky"}], "main": {"temp": 18.0}}`))
	}))
	defer ts.Close()

	client := providers.NewWeatherClient("key", ts.URL)
	obs, err := client.Current(context.Background(), 48.85, 2.35)
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if obs.TempC != 18.0 || obs.Description != "clear sky" {
		t.Errorf("unexpected observation: %+v", obs)
	}
}
