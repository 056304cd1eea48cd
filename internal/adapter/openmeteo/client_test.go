package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/couchcryptid/ac-cost-service/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(forecastURL, archiveURL string) *Client {
	return NewClient(
		forecastURL,
		archiveURL,
		5*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestCurrentConditions_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		assert.Equal(t, "fahrenheit", r.URL.Query().Get("temperature_unit"))
		assert.Equal(t, "temperature_2m,relative_humidity_2m", r.URL.Query().Get("current"))
		_, _ = w.Write([]byte(`{"current":{"temperature_2m":95.4,"relative_humidity_2m":47.6}}`))
	}))
	defer srv.Close()

	cond, err := newTestClient(srv.URL, srv.URL).CurrentConditions(context.Background(), 30.27, -97.74)
	require.NoError(t, err)

	// Readings are rounded to whole values.
	assert.Equal(t, 95.0, cond.Temperature)
	assert.Equal(t, 48.0, cond.Humidity)
}

func TestCurrentConditions_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).CurrentConditions(context.Background(), 30.27, -97.74)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

// archiveBody builds a year of daily highs where every day in month m
// (1-based) has temperature base+m.
func archiveBody(t *testing.T, start time.Time, days int, base float64) []byte {
	t.Helper()
	var times []string
	var temps []float64
	for i := 0; i < days; i++ {
		d := start.AddDate(0, 0, i)
		times = append(times, d.Format("2006-01-02"))
		temps = append(temps, base+float64(d.Month()))
	}
	body, err := json.Marshal(map[string]any{
		"daily": map[string]any{"time": times, "temperature_2m_max": temps},
	})
	require.NoError(t, err)
	return body
}

func TestMonthlyHighs_AveragesByCalendarMonth(t *testing.T) {
	fixed := clockwork.NewFakeClockAt(time.Date(2026, 6, 15, 12, 0, 0, 0, time.UTC))
	domain.SetClock(fixed)
	defer domain.SetClock(nil)

	start := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/archive", r.URL.Path)
		assert.Equal(t, "2025-06-15", r.URL.Query().Get("start_date"))
		assert.Equal(t, "2026-06-15", r.URL.Query().Get("end_date"))
		_, _ = w.Write(archiveBody(t, start, 366, 60))
	}))
	defer srv.Close()

	highs, err := newTestClient(srv.URL, srv.URL).MonthlyHighs(context.Background(), 30.27, -97.74)
	require.NoError(t, err)

	require.Len(t, highs, 12)
	// Every day in month m was base+m, so the average is exact.
	for m := 0; m < 12; m++ {
		assert.Equal(t, 60+float64(m+1), highs[m], "month %d", m+1)
	}
}

func TestMonthlyHighs_GapMonthFailsWholeSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		// Only 30 days of data: most months have no samples.
		_, _ = w.Write(archiveBody(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 30, 50))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).MonthlyHighs(context.Background(), 30.27, -97.74)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestMonthlyHighs_MismatchedSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"daily":{"time":["2026-01-01","2026-01-02"],"temperature_2m_max":[50]}}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).MonthlyHighs(context.Background(), 30.27, -97.74)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestMonthlyHighs_ProviderDown(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).MonthlyHighs(context.Background(), 30.27, -97.74)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestMonthlyHighs_BadDate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(fmt.Sprintf(`{"daily":{"time":["yesterday"],"temperature_2m_max":[%v]}}`, 80.0)))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL, srv.URL).MonthlyHighs(context.Background(), 30.27, -97.74)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
