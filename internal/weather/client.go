package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5"

var ErrNoAPIKey = errors.New("weather: api key not configured")

// Client calls the OpenWeatherMap current-conditions endpoint.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// NewClient returns a client with the given request timeout. baseURL may be empty.
func NewClient(apiKey, baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

type owmResponse struct {
	Name string `json:"name"`
	Dt   int64  `json:"dt"`
	Main struct {
		Temp     float64 `json:"temp"`
		Humidity int     `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Rain map[string]float64 `json:"rain"`
}

// Fetch returns live conditions for city in metric units with French descriptions.
func (c *Client) Fetch(ctx context.Context, city string) (*Report, error) {
	if c.apiKey == "" {
		return nil, ErrNoAPIKey
	}
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")
	q.Set("lang", "fr")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/weather?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("weather: build request: %w", err)
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather: do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("weather: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var r owmResponse
	if err := json.Unmarshal(body, &r); err != nil {
		return nil, fmt.Errorf("weather: unmarshal response: %w", err)
	}
	if len(r.Weather) == 0 {
		return nil, fmt.Errorf("weather: empty conditions for %s", city)
	}

	name := r.Name
	if name == "" {
		name = city
	}
	return &Report{
		City:            name,
		TemperatureC:    r.Main.Temp,
		Condition:       r.Weather[0].Description,
		Humidity:        r.Main.Humidity,
		WindSpeedKmh:    r.Wind.Speed * 3.6,
		PrecipitationMM: r.Rain["1h"],
		ObservedAt:      time.Unix(r.Dt, 0).UTC(),
		Source:          SourceLive,
	}, nil
}
