package bigdatacloud

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/goccy/go-json"

	"github.com/aerosky/aerosky/internal/geo"
)

// Client resolves coordinates to a locality name via the BigDataCloud
// reverse-geocode endpoint. Callers treat any failure as best-effort.
type Client struct {
	baseURL    string
	language   string
	httpClient *http.Client
}

// New constructs a reverse-geocoding client.
func New(baseURL, language string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = "https://api.bigdatacloud.net/data/reverse-geocode-client"
	}
	if language == "" {
		language = "fr"
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		language:   language,
		httpClient: &http.Client{Timeout: timeout},
	}
}

type reverseResponse struct {
	City     string `json:"city"`
	Locality string `json:"locality"`
}

// ReverseGeocode returns the best-effort city or locality name for a
// position. An empty name with nil error means the provider knew nothing.
func (c *Client) ReverseGeocode(ctx context.Context, coord geo.Coordinate) (string, error) {
	params := url.Values{}
	params.Set("latitude", fmt.Sprintf("%.4f", coord.Latitude))
	params.Set("longitude", fmt.Sprintf("%.4f", coord.Longitude))
	params.Set("localityLanguage", c.language)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return "", err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request reverse geocode: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	var payload reverseResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", fmt.Errorf("decode payload: %w", err)
	}

	if payload.City != "" {
		return payload.City, nil
	}
	return payload.Locality, nil
}
