package zippopotam

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/couchcryptid/ac-cost-service/internal/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const austinJSON = `{
	"post code": "78701",
	"country": "United States",
	"places": [
		{"place name": "Austin", "state": "Texas", "state abbreviation": "TX",
		 "latitude": "30.2713", "longitude": "-97.7426"}
	]
}`

func testClient(baseURL string) *Client {
	return NewClient(
		baseURL,
		5*time.Second,
		observability.NewMetricsForTesting(),
		slog.New(slog.NewTextHandler(io.Discard, nil)),
	)
}

func TestGeocode_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/78701", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(austinJSON))
	}))
	defer srv.Close()

	result, err := testClient(srv.URL).Geocode(context.Background(), "78701")
	require.NoError(t, err)

	assert.Equal(t, 30.2713, result.Lat)
	assert.Equal(t, -97.7426, result.Lon)
	assert.Equal(t, "TX", result.RegionCode)
	assert.Equal(t, "Austin, TX", result.DisplayName)
}

func TestGeocode_UnknownZIPIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "00000")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeocode_ServerErrorIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "78701")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestGeocode_MalformedBodyIsUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "78701")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}

func TestGeocode_NoPlacesIsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"post code": "78701", "places": []}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "78701")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGeocode_UnparseableCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"places":[{"place name":"X","state abbreviation":"TX","latitude":"north","longitude":"-97"}]}`))
	}))
	defer srv.Close()

	_, err := testClient(srv.URL).Geocode(context.Background(), "78701")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUnavailable)
}
