// Package recommend aggregates the data behind the dashboard's
// recommendations panel: reverse geocoding and current weather from
// OpenWeatherMap, and nearby restaurant/event suggestions from a chat
// completion. Without API keys both clients run in stub mode and serve
// canned data, so the panel works in development.
package recommend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/codeGROOVE-dev/retry"
)

const defaultWeatherBaseURL = "https://api.openweathermap.org"

// WeatherClient calls the OpenWeatherMap geocoding and current-weather APIs
type WeatherClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	stubMode   bool
}

// NewWeatherClient creates a weather client. An empty apiKey enables stub
// mode.
func NewWeatherClient(apiKey string) *WeatherClient {
	return &WeatherClient{
		baseURL:    defaultWeatherBaseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		stubMode:   apiKey == "",
	}
}

// ReverseGeocode resolves coordinates to a "City, Country" address string.
func (c *WeatherClient) ReverseGeocode(ctx context.Context, lat, lon float64) (string, error) {
	if c.stubMode {
		return "Amherst, US", nil
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("limit", "1")
	q.Set("appid", c.apiKey)

	var places []struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	}
	if err := c.getJSON(ctx, "/geo/1.0/reverse?"+q.Encode(), &places); err != nil {
		return "", fmt.Errorf("reverse geocode failed: %w", err)
	}
	if len(places) == 0 {
		return "", fmt.Errorf("no place found for %f,%f", lat, lon)
	}

	return places[0].Name + ", " + places[0].Country, nil
}

// CurrentWeather returns the current conditions at the coordinates in metric
// units.
func (c *WeatherClient) CurrentWeather(ctx context.Context, lat, lon float64) (*Weather, error) {
	if c.stubMode {
		return &Weather{Location: "Amherst", Temperature: 21.5, Condition: "Clear"}, nil
	}

	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))
	q.Set("units", "metric")
	q.Set("appid", c.apiKey)

	var body struct {
		Name    string `json:"name"`
		Weather []struct {
			Main string `json:"main"`
		} `json:"weather"`
		Main struct {
			Temp float64 `json:"temp"`
		} `json:"main"`
	}
	if err := c.getJSON(ctx, "/data/2.5/weather?"+q.Encode(), &body); err != nil {
		return nil, fmt.Errorf("weather lookup failed: %w", err)
	}

	w := &Weather{
		Location:    body.Name,
		Temperature: body.Main.Temp,
	}
	if len(body.Weather) > 0 {
		w.Condition = body.Weather[0].Main
	}
	return w, nil
}

// getJSON performs a GET with retries and decodes the JSON response into out.
// Client errors (4xx) are not retried.
func (c *WeatherClient) getJSON(ctx context.Context, path string, out any) error {
	return retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
			if err != nil {
				return retry.Unrecoverable(err)
			}

			resp, err := c.httpClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				err := fmt.Errorf("unexpected status %d", resp.StatusCode)
				if resp.StatusCode >= 400 && resp.StatusCode < 500 {
					return retry.Unrecoverable(err)
				}
				return err
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(err)
			}
			return nil
		},
		retry.Attempts(3),
		retry.Delay(time.Second),
		retry.MaxDelay(10*time.Second),
		retry.Context(ctx),
	)
}
