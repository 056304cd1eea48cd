package domain

// seasonalOffsets is the fallback seasonal curve: per-month deltas applied
// to the current temperature when no historical series is available,
// January first. It encodes a generic north-temperate climate and does not
// adapt to climate zone.
var seasonalOffsets = [MonthsPerYear]float64{-20, -15, -5, 5, 10, 15, 20, 18, 12, 2, -10, -18}

// Synthetic temperatures are clamped to this range.
const (
	syntheticMinTemp = 40
	syntheticMaxTemp = 110
)

// daysPerMonth is the fixed month length used for monthly totals.
const daysPerMonth = 30

// ResolveMonthlyTemperatures picks the temperature series for a projection.
// A historical series is used only when it contains exactly twelve values;
// anything else is discarded whole and a synthetic series is built from the
// current reading plus the seasonal offset table, clamped to 40–110°F.
func ResolveMonthlyTemperatures(historical []float64, currentTemp float64) ([]float64, TemperatureSource) {
	if len(historical) == MonthsPerYear {
		return historical, TemperatureSourceHistorical
	}

	temps := make([]float64, MonthsPerYear)
	for i, offset := range seasonalOffsets {
		temps[i] = clamp(currentTemp+offset, syntheticMinTemp, syntheticMaxTemp)
	}
	return temps, TemperatureSourceSynthetic
}

// ProjectAnnualCosts runs the load and energy models once per calendar
// month and applies the electricity rate, producing exactly twelve entries
// in January..December order. Humidity is held at the current reading for
// every month.
//
// The function is pure: all provider data arrives resolved inside climate.
// The returned TemperatureSource reports whether the historical series or
// the synthetic fallback backed the projection.
func ProjectAnnualCosts(home HomeProfile, equipment EquipmentProfile, climate ClimateContext) ([]MonthlyProjection, TemperatureSource) {
	temps, source := ResolveMonthlyTemperatures(climate.MonthlyHighs, climate.CurrentTemperature)

	projections := make([]MonthlyProjection, MonthsPerYear)
	for i := 0; i < MonthsPerYear; i++ {
		monthTemp := temps[i]

		btu := EstimateCoolingLoad(
			home.SquareFootage,
			home.Insulation,
			monthTemp,
			home.ThermostatSetpoint,
			climate.Humidity,
		)
		dailyKWh := EstimateEnergyUsage(
			btu,
			equipment.SEER2,
			home.OperatingHoursPerDay,
			monthTemp,
			home.ThermostatSetpoint,
		)

		projections[i] = MonthlyProjection{
			Month:       monthNames[i],
			Cost:        dailyKWh * climate.RatePerKWh * daysPerMonth,
			EnergyUsage: dailyKWh * daysPerMonth,
		}
	}
	return projections, source
}
