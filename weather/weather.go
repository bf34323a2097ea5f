// Package weather fetches current conditions from the Open-Meteo forecast
// API and normalizes them into the internal Weather shape. No API key needed.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"go-firewatch/cache"
	"go-firewatch/types"
)

const (
	openMeteoBase = "https://api.open-meteo.com/v1/forecast"
	cacheTTL      = 60 * time.Second
)

// Fallback keeps the decision pipeline running through an upstream outage.
// Representative dry-and-windy California afternoon.
var Fallback = types.Weather{
	WindSpeedMps: 8.2,
	WindGustMps:  12.7,
	WindDirDeg:   245,
	TemperatureC: 29,
	HumidityPct:  18,
}

// Client fetches and caches weather observations.
type Client struct {
	httpClient *http.Client
	baseURL    string
	cache      *cache.Cache[types.Weather]
}

// NewClient builds a weather client with a 60 second observation cache.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    openMeteoBase,
		cache:      cache.New[types.Weather](cacheTTL, nil),
	}
}

type openMeteoResponse struct {
	Current struct {
		WindSpeed10m       *float64 `json:"wind_speed_10m"`
		WindGusts10m       *float64 `json:"wind_gusts_10m"`
		WindDirection10m   *float64 `json:"wind_direction_10m"`
		Temperature2m      *float64 `json:"temperature_2m"`
		RelativeHumidity2m *float64 `json:"relative_humidity_2m"`
	} `json:"current"`
}

// FetchWeather returns current conditions at the given coordinates. On any
// upstream failure it logs and returns the static fallback; the caller never
// sees an error from this path.
func (c *Client) FetchWeather(ctx context.Context, lat, lon float64) types.Weather {
	key := fmt.Sprintf("weather_%.3f_%.3f", lat, lon)

	w, err := c.cache.Do(key, func() (types.Weather, error) {
		return c.fetch(ctx, lat, lon)
	})
	if err != nil {
		log.Printf("[Weather] fetch failed, using fallback: %v", err)
		return Fallback
	}
	return w
}

func (c *Client) fetch(ctx context.Context, lat, lon float64) (types.Weather, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%g", lat))
	params.Set("longitude", fmt.Sprintf("%g", lon))
	params.Set("current", "wind_speed_10m,wind_gusts_10m,wind_direction_10m,temperature_2m,relative_humidity_2m")
	params.Set("wind_speed_unit", "ms")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return types.Weather{}, fmt.Errorf("building weather request: %w", err)
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return types.Weather{}, fmt.Errorf("fetching weather: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return types.Weather{}, fmt.Errorf("weather API error: %d", res.StatusCode)
	}

	var data openMeteoResponse
	if err := json.NewDecoder(res.Body).Decode(&data); err != nil {
		return types.Weather{}, fmt.Errorf("decoding weather response: %w", err)
	}

	return normalize(data), nil
}

// normalize fills missing fields with mild defaults so a partial response
// still yields a usable observation.
func normalize(data openMeteoResponse) types.Weather {
	orDefault := func(v *float64, d float64) float64 {
		if v == nil {
			return d
		}
		return *v
	}
	return types.Weather{
		WindSpeedMps: orDefault(data.Current.WindSpeed10m, 5),
		WindGustMps:  orDefault(data.Current.WindGusts10m, 8),
		WindDirDeg:   orDefault(data.Current.WindDirection10m, 245),
		TemperatureC: orDefault(data.Current.Temperature2m, 25),
		HumidityPct:  orDefault(data.Current.RelativeHumidity2m, 30),
	}
}
