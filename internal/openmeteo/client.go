package openmeteo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"
	"golang.org/x/time/rate"

	"github.com/aerosky/aerosky/internal/geo"
)

const (
	currentFields = "temperature_2m,relative_humidity_2m,wind_speed_10m,wind_direction_10m,weather_code,visibility,uv_index,surface_pressure"
	dailyFields   = "weather_code,temperature_2m_max,temperature_2m_min,precipitation_sum"
	forecastDays  = 7
)

// StatusError reports a non-2xx response from an Open-Meteo endpoint.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Endpoint, e.Code)
}

// Client talks to the Open-Meteo forecast and geocoding APIs. All outbound
// calls share one rate limiter.
type Client struct {
	forecastURL string
	geocodeURL  string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// Options tunes a Client; zero values get sensible defaults.
type Options struct {
	ForecastURL string
	GeocodeURL  string
	Timeout     time.Duration
	RPS         float64
	Burst       int
}

// New constructs an Open-Meteo client.
func New(opts Options) *Client {
	if opts.ForecastURL == "" {
		opts.ForecastURL = "https://api.open-meteo.com/v1/forecast"
	}
	if opts.GeocodeURL == "" {
		opts.GeocodeURL = "https://geocoding-api.open-meteo.com/v1/search"
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	if opts.RPS <= 0 {
		opts.RPS = 2
	}
	if opts.Burst <= 0 {
		opts.Burst = 4
	}
	return &Client{
		forecastURL: opts.ForecastURL,
		geocodeURL:  opts.GeocodeURL,
		httpClient:  &http.Client{Timeout: opts.Timeout},
		limiter:     rate.NewLimiter(rate.Limit(opts.RPS), opts.Burst),
	}
}

// ForecastResponse models the forecast payload. The daily block is parallel
// arrays indexed by day, today first.
type ForecastResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone"`
	Current   struct {
		Time            string  `json:"time"`
		Temperature     float64 `json:"temperature_2m"`
		Humidity        float64 `json:"relative_humidity_2m"`
		WindSpeed       float64 `json:"wind_speed_10m"`
		WindDirection   float64 `json:"wind_direction_10m"`
		WeatherCode     int     `json:"weather_code"`
		Visibility      float64 `json:"visibility"`
		UVIndex         float64 `json:"uv_index"`
		SurfacePressure float64 `json:"surface_pressure"`
	} `json:"current"`
	Daily struct {
		Time          []string  `json:"time"`
		WeatherCode   []int     `json:"weather_code"`
		TempMax       []float64 `json:"temperature_2m_max"`
		TempMin       []float64 `json:"temperature_2m_min"`
		Precipitation []float64 `json:"precipitation_sum"`
	} `json:"daily"`
}

// Forecast fetches current conditions and the 7-day daily forecast for the
// given position.
func (c *Client) Forecast(ctx context.Context, coord geo.Coordinate) (ForecastResponse, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", coord.Latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", coord.Longitude))
	params.Set("current", currentFields)
	params.Set("daily", dailyFields)
	params.Set("timezone", "auto")
	params.Set("forecast_days", fmt.Sprintf("%d", forecastDays))

	var payload ForecastResponse
	if err := c.getJSON(ctx, c.forecastURL, params, &payload); err != nil {
		return ForecastResponse{}, err
	}
	return payload, nil
}

type searchResponse struct {
	Results []struct {
		ID          int64   `json:"id"`
		Name        string  `json:"name"`
		Country     string  `json:"country"`
		CountryCode string  `json:"country_code"`
		Latitude    float64 `json:"latitude"`
		Longitude   float64 `json:"longitude"`
		Admin1      string  `json:"admin1"`
	} `json:"results"`
}

// SearchPlaces resolves a free-text name to up to limit place candidates in
// the requested language. Zero matches is not an error; the slice is empty.
func (c *Client) SearchPlaces(ctx context.Context, query string, limit int, language string) ([]geo.PlaceSuggestion, error) {
	params := url.Values{}
	params.Set("name", query)
	params.Set("count", fmt.Sprintf("%d", limit))
	params.Set("language", language)
	params.Set("format", "json")

	var payload searchResponse
	if err := c.getJSON(ctx, c.geocodeURL, params, &payload); err != nil {
		return nil, err
	}

	suggestions := make([]geo.PlaceSuggestion, 0, len(payload.Results))
	for _, r := range payload.Results {
		suggestions = append(suggestions, geo.PlaceSuggestion{
			ID:          r.ID,
			Name:        r.Name,
			Country:     r.Country,
			CountryCode: r.CountryCode,
			Latitude:    r.Latitude,
			Longitude:   r.Longitude,
			AdminRegion: r.Admin1,
		})
	}
	return suggestions, nil
}

func (c *Client) getJSON(ctx context.Context, endpoint string, params url.Values, out any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait canceled: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}
	return nil
}
