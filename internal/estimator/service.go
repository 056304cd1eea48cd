// Package estimator orchestrates one cost-estimate request: validation,
// provider resolution, projection, aggregation, persistence, and the
// optional event publication.
package estimator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/ac-cost-service/internal/catalog"
	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/couchcryptid/ac-cost-service/internal/observability"
)

// History persists completed calculations (bounded, newest-first).
type History interface {
	Save(ctx context.Context, calc domain.Calculation) error
	Recent(ctx context.Context, limit int) ([]domain.Calculation, error)
	Get(ctx context.Context, id string) (domain.Calculation, error)
}

// EventPublisher emits completed calculations to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, calc domain.Calculation) error
}

// Service wires the providers to the projection engine. It holds no
// per-request state; every estimate is a pure function of its inputs and
// whatever the providers return at that instant.
type Service struct {
	geocoder   domain.Geocoder
	weather    domain.WeatherProvider
	historical domain.HistoricalWeatherProvider
	rates      domain.RateProvider
	history    History
	publisher  EventPublisher // nil when the event stream is disabled
	logger     *slog.Logger
	metrics    *observability.Metrics
}

// New creates a Service. publisher may be nil to disable event publication.
func New(
	geocoder domain.Geocoder,
	weather domain.WeatherProvider,
	historical domain.HistoricalWeatherProvider,
	rates domain.RateProvider,
	history History,
	publisher EventPublisher,
	logger *slog.Logger,
	metrics *observability.Metrics,
) *Service {
	return &Service{
		geocoder:   geocoder,
		weather:    weather,
		historical: historical,
		rates:      rates,
		history:    history,
		publisher:  publisher,
		logger:     logger,
		metrics:    metrics,
	}
}

// CheckReadiness reports whether the service can serve estimates: the
// history store must answer, and at least the static providers must be
// wired.
func (s *Service) CheckReadiness(ctx context.Context) error {
	if s.geocoder == nil || s.weather == nil || s.rates == nil {
		return errors.New("providers not configured")
	}
	if _, err := s.history.Recent(ctx, 1); err != nil {
		return fmt.Errorf("history store: %w", err)
	}
	return nil
}

// Estimate runs one full calculation. Validation failures return
// domain.ValidationErrors; geocoding and weather failures return errors
// wrapping domain.ErrNotFound or domain.ErrUnavailable. A historical-data
// failure is not an error: the projection silently falls back to the
// synthetic seasonal series, recorded in the result's TemperatureSource.
func (s *Service) Estimate(ctx context.Context, inputs domain.EstimateInputs) (domain.Calculation, error) {
	start := time.Now()

	equipment, verrs := s.resolveEquipment(inputs)
	if inputs.UnitID != "" && len(verrs) == 0 {
		// Catalog units carry the authoritative rating.
		inputs.SEER2 = equipment.SEER2
	}
	verrs = append(verrs, domain.ValidateInputs(inputs)...)
	if len(verrs) > 0 {
		s.metrics.EstimateErrors.WithLabelValues("validation").Inc()
		return domain.Calculation{}, verrs
	}
	equipment.SEER2 = inputs.SEER2

	location, err := s.geocoder.Geocode(ctx, inputs.PostalCode)
	if err != nil {
		s.metrics.EstimateErrors.WithLabelValues("geocode").Inc()
		return domain.Calculation{}, fmt.Errorf("geocode %q: %w", inputs.PostalCode, err)
	}

	conditions, err := s.weather.CurrentConditions(ctx, location.Lat, location.Lon)
	if err != nil {
		s.metrics.EstimateErrors.WithLabelValues("weather").Inc()
		return domain.Calculation{}, fmt.Errorf("current conditions for %s: %w", location.DisplayName, err)
	}

	// Degradations below here never fail the request.
	highs := s.fetchMonthlyHighs(ctx, location)
	rate := s.fetchRate(ctx, location.RegionCode)

	home := domain.HomeProfile{
		SquareFootage:        inputs.SquareFootage,
		Insulation:           inputs.Insulation,
		ThermostatSetpoint:   inputs.ThermostatSetpoint,
		OperatingHoursPerDay: inputs.OperatingHoursPerDay,
	}
	climate := domain.ClimateContext{
		CurrentTemperature: conditions.Temperature,
		Humidity:           conditions.Humidity,
		MonthlyHighs:       highs,
		RatePerKWh:         rate,
	}

	projections, source := domain.ProjectAnnualCosts(home, equipment, climate)
	s.metrics.TemperatureSource.WithLabelValues(string(source)).Inc()

	calc := domain.Calculation{
		ID:                uuid.NewString(),
		CreatedAt:         domain.Now(),
		Home:              home,
		Equipment:         equipment,
		Location:          location,
		Conditions:        conditions,
		RatePerKWh:        rate,
		TemperatureSource: source,
		Projections:       projections,
		Summary:           domain.Summarize(projections),
		BTURequirement: domain.EstimateCoolingLoad(
			home.SquareFootage,
			home.Insulation,
			conditions.Temperature,
			home.ThermostatSetpoint,
			conditions.Humidity,
		),
	}

	s.persist(ctx, calc)
	s.publish(ctx, calc)

	s.metrics.EstimatesComputed.Inc()
	s.metrics.EstimateDuration.Observe(time.Since(start).Seconds())

	s.logger.Info("estimate completed",
		"calculation_id", calc.ID,
		"location", location.DisplayName,
		"temperature_source", source,
		"annual_cost", calc.Summary.AnnualCost,
	)
	return calc, nil
}

// Recent returns the latest calculations, newest first.
func (s *Service) Recent(ctx context.Context, limit int) ([]domain.Calculation, error) {
	return s.history.Recent(ctx, limit)
}

// Get returns one saved calculation by ID.
func (s *Service) Get(ctx context.Context, id string) (domain.Calculation, error) {
	return s.history.Get(ctx, id)
}

// resolveEquipment maps an optional catalog unit ID onto an equipment
// profile. An unknown ID is a validation error, collected like any other.
func (s *Service) resolveEquipment(inputs domain.EstimateInputs) (domain.EquipmentProfile, domain.ValidationErrors) {
	if inputs.UnitID == "" {
		return domain.EquipmentProfile{SEER2: inputs.SEER2}, nil
	}
	unit, ok := catalog.Lookup(inputs.UnitID)
	if !ok {
		return domain.EquipmentProfile{}, domain.ValidationErrors{
			{Field: "unit_id", Message: fmt.Sprintf("unknown unit %q", inputs.UnitID)},
		}
	}
	return domain.EquipmentProfile{SEER2: unit.SEER2, Brand: unit.Brand, Model: unit.Model}, nil
}

// fetchMonthlyHighs wraps the historical provider's failure modes into the
// degradation policy: any error or wrong-length series yields nil, which
// routes the projection to the synthetic fallback.
func (s *Service) fetchMonthlyHighs(ctx context.Context, location domain.GeocodeResult) []float64 {
	if s.historical == nil {
		return nil
	}
	highs, err := s.historical.MonthlyHighs(ctx, location.Lat, location.Lon)
	if err != nil {
		s.logger.Warn("historical weather unavailable, using synthetic seasonal series",
			"location", location.DisplayName,
			"error", err,
		)
		return nil
	}
	return highs
}

func (s *Service) fetchRate(ctx context.Context, regionCode string) float64 {
	rate, err := s.rates.Rate(ctx, regionCode)
	if err != nil {
		s.logger.Warn("rate lookup failed, using default",
			"region", regionCode,
			"error", err,
		)
		return domain.DefaultElectricityRate
	}
	return rate
}

func (s *Service) persist(ctx context.Context, calc domain.Calculation) {
	if err := s.history.Save(ctx, calc); err != nil {
		s.logger.Warn("save calculation failed", "calculation_id", calc.ID, "error", err)
		return
	}
	s.metrics.HistorySaves.Inc()
}

func (s *Service) publish(ctx context.Context, calc domain.Calculation) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.Publish(ctx, calc); err != nil {
		s.logger.Warn("publish estimate event failed", "calculation_id", calc.ID, "error", err)
		return
	}
	s.metrics.EventsPublished.Inc()
}
