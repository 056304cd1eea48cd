package domain

import (
	"context"
	"errors"
)

// Provider failure kinds. Adapters wrap transport errors with one of these
// so the caller can show a remediation message specific to what failed.
var (
	// ErrNotFound means a postal code was not recognized by the geocoder.
	ErrNotFound = errors.New("not found")
	// ErrUnavailable means a provider could not be reached or answered
	// with an error.
	ErrUnavailable = errors.New("provider unavailable")
)

// Geocoder resolves a postal code to coordinates and a region.
type Geocoder interface {
	// Geocode returns ErrNotFound (wrapped) when the postal code is unknown.
	Geocode(ctx context.Context, postalCode string) (GeocodeResult, error)
}

// WeatherProvider supplies a current single-point reading.
type WeatherProvider interface {
	// CurrentConditions returns ErrUnavailable (wrapped) on provider failure.
	CurrentConditions(ctx context.Context, lat, lon float64) (CurrentConditions, error)
}

// HistoricalWeatherProvider supplies per-month average daily-high
// temperatures for the trailing year.
type HistoricalWeatherProvider interface {
	// MonthlyHighs returns 12 values, January first. Errors and short
	// series both route the caller to the synthetic fallback; they are a
	// degradation, not a failure.
	MonthlyHighs(ctx context.Context, lat, lon float64) ([]float64, error)
}

// RateProvider supplies a regional electricity rate in currency per kWh.
type RateProvider interface {
	// Rate looks up the rate for a region code. Implementations fall back
	// to DefaultElectricityRate for absent or unknown regions rather than
	// returning an error for them.
	Rate(ctx context.Context, regionCode string) (float64, error)
}

// DefaultElectricityRate is used when no regional rate can be resolved.
const DefaultElectricityRate = 0.13
