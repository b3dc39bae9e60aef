package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// GeoClient resolves the caller's approximate position from its public
// IP. No key is needed; the free ip-api.com tier is used by default.
type GeoClient struct {
	BaseURL string

	client *http.Client
}

// NewGeoClient builds a geolocation client.
func NewGeoClient(baseURL string) *GeoClient {
	if baseURL == "" {
		baseURL = "http://ip-api.com"
	}
	return &GeoClient{BaseURL: baseURL, client: newHTTPClient()}
}

// Locate returns the city and coordinates for the current public IP.
// A response without usable coordinates is ErrNoLocation.
func (g *GeoClient) Locate(ctx context.Context) (*Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.BaseURL+"/json", nil)
	if err != nil {
		return nil, err
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geolocation request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Provider: "geolocation", Code: resp.StatusCode}
	}

	var payload struct {
		Status string  `json:"status"`
		City   string  `json:"city"`
		Lat    float64 `json:"lat"`
		Lon    float64 `json:"lon"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode geolocation response: %w", err)
	}
	if payload.Status != "success" || (payload.Lat == 0 && payload.Lon == 0) {
		return nil, ErrNoLocation
	}

	return &Location{City: payload.City, Lat: payload.Lat, Lon: payload.Lon}, nil
}
