// Package openmeteo implements the weather providers against the
// Open-Meteo forecast and archive APIs.
package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/couchcryptid/ac-cost-service/internal/observability"
)

// Client implements domain.WeatherProvider and
// domain.HistoricalWeatherProvider using Open-Meteo. Both APIs are keyless.
type Client struct {
	httpClient      *http.Client
	forecastBaseURL string
	archiveBaseURL  string
	metrics         *observability.Metrics
	logger          *slog.Logger
}

// NewClient creates an Open-Meteo client. forecastBaseURL and
// archiveBaseURL are the API roots (".../v1"), separate because Open-Meteo
// serves current and historical data from different hosts.
func NewClient(forecastBaseURL, archiveBaseURL string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	return &Client{
		httpClient:      &http.Client{Timeout: timeout},
		forecastBaseURL: forecastBaseURL,
		archiveBaseURL:  archiveBaseURL,
		metrics:         metrics,
		logger:          logger,
	}
}

// CurrentConditions fetches the current temperature and relative humidity,
// rounded to whole values as the rest of the model expects.
func (c *Client) CurrentConditions(ctx context.Context, lat, lon float64) (domain.CurrentConditions, error) {
	start := time.Now()
	cond, err := c.currentConditions(ctx, lat, lon)
	c.metrics.ProviderDuration.WithLabelValues("weather").Observe(time.Since(start).Seconds())

	if err != nil {
		c.metrics.ProviderRequests.WithLabelValues("weather", "error").Inc()
		return domain.CurrentConditions{}, err
	}
	c.metrics.ProviderRequests.WithLabelValues("weather", "success").Inc()
	return cond, nil
}

func (c *Client) currentConditions(ctx context.Context, lat, lon float64) (domain.CurrentConditions, error) {
	params := url.Values{
		"latitude":         {fmt.Sprintf("%.4f", lat)},
		"longitude":        {fmt.Sprintf("%.4f", lon)},
		"current":          {"temperature_2m,relative_humidity_2m"},
		"temperature_unit": {"fahrenheit"},
		"timezone":         {"auto"},
	}

	var body forecastResponse
	if err := c.getJSON(ctx, c.forecastBaseURL+"/forecast?"+params.Encode(), &body); err != nil {
		return domain.CurrentConditions{}, fmt.Errorf("current conditions: %w", err)
	}

	return domain.CurrentConditions{
		Temperature: math.Round(body.Current.Temperature2m),
		Humidity:    math.Round(body.Current.RelativeHumidity2m),
	}, nil
}

// MonthlyHighs fetches the trailing year of daily high temperatures and
// averages them per calendar month, January first, each rounded to a whole
// degree. Any gap month fails the whole series so the caller falls back to
// the synthetic curve rather than trusting a partial year.
func (c *Client) MonthlyHighs(ctx context.Context, lat, lon float64) ([]float64, error) {
	start := time.Now()
	highs, err := c.monthlyHighs(ctx, lat, lon)
	c.metrics.ProviderDuration.WithLabelValues("historical").Observe(time.Since(start).Seconds())

	switch {
	case err != nil:
		c.metrics.ProviderRequests.WithLabelValues("historical", "error").Inc()
	case len(highs) == 0:
		c.metrics.ProviderRequests.WithLabelValues("historical", "empty").Inc()
	default:
		c.metrics.ProviderRequests.WithLabelValues("historical", "success").Inc()
	}
	return highs, err
}

func (c *Client) monthlyHighs(ctx context.Context, lat, lon float64) ([]float64, error) {
	end := domain.Now()
	begin := end.AddDate(-1, 0, 0)

	params := url.Values{
		"latitude":         {fmt.Sprintf("%.4f", lat)},
		"longitude":        {fmt.Sprintf("%.4f", lon)},
		"start_date":       {begin.Format("2006-01-02")},
		"end_date":         {end.Format("2006-01-02")},
		"daily":            {"temperature_2m_max"},
		"temperature_unit": {"fahrenheit"},
		"timezone":         {"auto"},
	}

	var body archiveResponse
	if err := c.getJSON(ctx, c.archiveBaseURL+"/archive?"+params.Encode(), &body); err != nil {
		return nil, fmt.Errorf("historical highs: %w", err)
	}
	if len(body.Daily.Time) != len(body.Daily.Temperature2mMax) {
		return nil, fmt.Errorf("historical highs: mismatched series lengths: %w", domain.ErrUnavailable)
	}

	var sums, counts [domain.MonthsPerYear]float64
	for i, day := range body.Daily.Time {
		d, err := time.Parse("2006-01-02", day)
		if err != nil {
			return nil, fmt.Errorf("historical highs: parse date %q: %w", day, domain.ErrUnavailable)
		}
		m := int(d.Month()) - 1
		sums[m] += body.Daily.Temperature2mMax[i]
		counts[m]++
	}

	highs := make([]float64, domain.MonthsPerYear)
	for m := 0; m < domain.MonthsPerYear; m++ {
		if counts[m] == 0 {
			return nil, fmt.Errorf("historical highs: no samples for month %d: %w", m+1, domain.ErrUnavailable)
		}
		highs[m] = math.Round(sums[m] / counts[m])
	}
	return highs, nil
}

func (c *Client) getJSON(ctx context.Context, fullURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API status %d: %w", resp.StatusCode, domain.ErrUnavailable)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w: %w", domain.ErrUnavailable, err)
	}
	return nil
}

// Open-Meteo API response types.

type forecastResponse struct {
	Current struct {
		Temperature2m      float64 `json:"temperature_2m"`
		RelativeHumidity2m float64 `json:"relative_humidity_2m"`
	} `json:"current"`
}

type archiveResponse struct {
	Daily struct {
		Time             []string  `json:"time"`
		Temperature2mMax []float64 `json:"temperature_2m_max"`
	} `json:"daily"`
}
