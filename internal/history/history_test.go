package history

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, limit int) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "history.db"), limit)
	require.NoError(t, err)
	return s
}

func testCalculation(id string) domain.Calculation {
	return domain.Calculation{
		ID:        id,
		CreatedAt: time.Date(2026, 7, 1, 12, 0, 0, 0, time.UTC),
		Home: domain.HomeProfile{
			SquareFootage:        2000,
			Insulation:           domain.InsulationAverage,
			ThermostatSetpoint:   75,
			OperatingHoursPerDay: 8,
		},
		Equipment:         domain.EquipmentProfile{SEER2: 16, Brand: "Trane", Model: "XR16"},
		Location:          domain.GeocodeResult{Lat: 30.27, Lon: -97.74, RegionCode: "TX", DisplayName: "Austin, TX"},
		Conditions:        domain.CurrentConditions{Temperature: 95, Humidity: 50},
		RatePerKWh:        0.120,
		TemperatureSource: domain.TemperatureSourceSynthetic,
		Projections: []domain.MonthlyProjection{
			{Month: "Jan", Cost: 10, EnergyUsage: 80},
		},
		Summary:        domain.Summary{AnnualCost: 120, AnnualEnergyUsage: 960},
		BTURequirement: 60500,
	}
}

func TestSaveAndRecent_RoundTrip(t *testing.T) {
	s := newTestStore(t, 10)
	ctx := context.Background()

	want := testCalculation("calc-1")
	require.NoError(t, s.Save(ctx, want))

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, want, got[0])
}

func TestRecent_NewestFirst(t *testing.T) {
	s := newTestStore(t, 10)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		require.NoError(t, s.Save(ctx, testCalculation(fmt.Sprintf("calc-%d", i))))
	}

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "calc-3", got[0].ID)
	assert.Equal(t, "calc-1", got[2].ID)
}

func TestSave_EvictsOldestBeyondLimit(t *testing.T) {
	s := newTestStore(t, 10)
	ctx := context.Background()

	for i := 1; i <= 13; i++ {
		require.NoError(t, s.Save(ctx, testCalculation(fmt.Sprintf("calc-%d", i))))
	}

	got, err := s.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 10)
	assert.Equal(t, "calc-13", got[0].ID)
	assert.Equal(t, "calc-4", got[9].ID)

	// The evicted entries are gone entirely, not just hidden by the limit.
	_, err = s.Get(ctx, "calc-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRecent_LimitClamped(t *testing.T) {
	s := newTestStore(t, 5)
	ctx := context.Background()

	for i := 1; i <= 5; i++ {
		require.NoError(t, s.Save(ctx, testCalculation(fmt.Sprintf("calc-%d", i))))
	}

	got, err := s.Recent(ctx, 100)
	require.NoError(t, err)
	assert.Len(t, got, 5)

	got, err = s.Recent(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	got, err = s.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, 5)
}

func TestGet_ByID(t *testing.T) {
	s := newTestStore(t, 10)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, testCalculation("calc-a")))
	require.NoError(t, s.Save(ctx, testCalculation("calc-b")))

	got, err := s.Get(ctx, "calc-a")
	require.NoError(t, err)
	assert.Equal(t, "calc-a", got.ID)

	_, err = s.Get(ctx, "calc-z")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	ctx := context.Background()

	s1, err := New(path, 10)
	require.NoError(t, err)
	require.NoError(t, s1.Save(ctx, testCalculation("calc-1")))

	s2, err := New(path, 10)
	require.NoError(t, err)
	got, err := s2.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "calc-1", got[0].ID)
}
