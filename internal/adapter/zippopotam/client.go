// Package zippopotam implements postal-code geocoding against the
// zippopotam.us API.
package zippopotam

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/couchcryptid/ac-cost-service/internal/observability"
)

// Client implements domain.Geocoder using the zippopotam.us API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a zippopotam geocoding client. baseURL should include
// the country segment, e.g. "https://api.zippopotam.us/us".
func NewClient(baseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		metrics:    metrics,
		logger:     logger,
	}
}

// Geocode resolves a US ZIP code to coordinates, state, and display name.
// Unknown ZIP codes return domain.ErrNotFound; transport and decoding
// failures return domain.ErrUnavailable.
func (c *Client) Geocode(ctx context.Context, postalCode string) (domain.GeocodeResult, error) {
	start := time.Now()
	result, err := c.geocode(ctx, postalCode)
	c.metrics.ProviderDuration.WithLabelValues("geocode").Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.ProviderRequests.WithLabelValues("geocode", "error").Inc()
	default:
		c.metrics.ProviderRequests.WithLabelValues("geocode", "success").Inc()
	}
	return result, err
}

func (c *Client) geocode(ctx context.Context, postalCode string) (domain.GeocodeResult, error) {
	u := fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(postalCode))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("geocode request: %w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.GeocodeResult{}, fmt.Errorf("postal code %q: %w", postalCode, domain.ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return domain.GeocodeResult{}, fmt.Errorf("geocode API status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}

	var zippoResp response
	if err := json.NewDecoder(resp.Body).Decode(&zippoResp); err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("decode response: %w: %w", domain.ErrUnavailable, err)
	}
	if len(zippoResp.Places) == 0 {
		return domain.GeocodeResult{}, fmt.Errorf("postal code %q has no places: %w", postalCode, domain.ErrNotFound)
	}

	p := zippoResp.Places[0]
	lat, err := strconv.ParseFloat(p.Latitude, 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("parse latitude %q: %w", p.Latitude, domain.ErrUnavailable)
	}
	lon, err := strconv.ParseFloat(p.Longitude, 64)
	if err != nil {
		return domain.GeocodeResult{}, fmt.Errorf("parse longitude %q: %w", p.Longitude, domain.ErrUnavailable)
	}

	return domain.GeocodeResult{
		Lat:         lat,
		Lon:         lon,
		RegionCode:  p.StateAbbreviation,
		DisplayName: fmt.Sprintf("%s, %s", p.PlaceName, p.StateAbbreviation),
	}, nil
}

// zippopotam.us API response types. Coordinates arrive as strings.

type response struct {
	PostCode string  `json:"post code"`
	Places   []place `json:"places"`
}

type place struct {
	PlaceName         string `json:"place name"`
	StateAbbreviation string `json:"state abbreviation"`
	Latitude          string `json:"latitude"`
	Longitude         string `json:"longitude"`
}
