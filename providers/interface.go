// Package providers wraps the third-party HTTP services the assistant
// depends on: chat completion, web search, IP geolocation and weather.
// Each client owns one HTTP call and returns either a typed result or an
// error from the taxonomy below; none of them retry.
package providers

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// Sentinel errors shared by all clients. ErrUnconfigured is a routing
// branch, not a fault: a client constructed without credentials returns
// it without touching the network.
var (
	ErrUnconfigured = errors.New("provider not configured")
	ErrNoResults    = errors.New("no results")
	ErrNoLocation   = errors.New("location unavailable")
)

// defaultTimeout bounds every outbound call. The upstream services have
// no SLA; without this a stalled provider stalls the whole session.
const defaultTimeout = 10 * time.Second

// Message is a single chat-completion message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatResult is the outcome of one generation call.
type ChatResult struct {
	Text         string
	TotalTokens  int
	Model        string
	FinishReason string
}

// SearchResult is one web search hit.
type SearchResult struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}

// Location is the result of IP-based geolocation.
type Location struct {
	City string
	Lat  float64
	Lon  float64
}

// Observation is a current-weather reading.
type Observation struct {
	TempC       float64
	Description string
}

// StatusError reports a non-200 response from a provider, keeping the
// body so the router can surface a human-readable failure.
type StatusError struct {
	Provider string
	Code     int
	Body     string
}

func (e *StatusError) Error() string {
	body := e.Body
	if len(body) > 200 {
		body = body[:200]
	}
	return fmt.Sprintf("%s: status %d: %s", e.Provider, e.Code, body)
}

// newHTTPClient builds the client every provider shares the shape of.
func newHTTPClient() *http.Client {
	return &http.Client{Timeout: defaultTimeout}
}
