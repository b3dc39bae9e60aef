package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// WeatherClient fetches current conditions from an OpenWeatherMap-style
// endpoint, metric units.
type WeatherClient struct {
	APIKey  string
	BaseURL string

	client *http.Client
}

// NewWeatherClient builds a weather client.
func NewWeatherClient(apiKey, baseURL string) *WeatherClient {
	if baseURL == "" {
		baseURL = "https://api.openweathermap.org"
	}
	return &WeatherClient{APIKey: apiKey, BaseURL: baseURL, client: newHTTPClient()}
}

// Configured reports whether the client holds an API key.
func (w *WeatherClient) Configured() bool {
	return w != nil && w.APIKey != ""
}

// Current returns the current observation at the given coordinates.
func (w *WeatherClient) Current(ctx context.Context, lat, lon float64) (*Observation, error) {
	if !w.Configured() {
		return nil, ErrUnconfigured
	}

	endpoint := fmt.Sprintf("%s/data/2.5/weather?lat=%f&lon=%f&units=metric&appid=%s",
		w.BaseURL, lat, lon, w.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Provider: "weather", Code: resp.StatusCode, Body: string(raw)}
	}

	var payload struct {
		Weather []struct {
			Description string `json:"description"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode weather response: %w", err)
	}

	obs := &Observation{TempC: payload.Main.Temp}
	if len(payload.Weather) > 0 {
		obs.Description = payload.Weather[0].Description
	}
	return obs, nil
}
