package domain

import "time"

// Insulation grades a home's thermal envelope.
type Insulation string

const (
	InsulationPoor      Insulation = "poor"
	InsulationAverage   Insulation = "average"
	InsulationGood      Insulation = "good"
	InsulationExcellent Insulation = "excellent"
)

// Insulations lists the recognized grades in ascending quality order.
var Insulations = []Insulation{InsulationPoor, InsulationAverage, InsulationGood, InsulationExcellent}

// Valid reports whether the insulation grade is one of the recognized values.
func (i Insulation) Valid() bool {
	switch i {
	case InsulationPoor, InsulationAverage, InsulationGood, InsulationExcellent:
		return true
	}
	return false
}

// HomeProfile describes the home being cooled. Values are assumed to be
// pre-validated (see ValidateInputs); the engine performs no range checks.
type HomeProfile struct {
	SquareFootage        float64    `json:"square_footage"`
	Insulation           Insulation `json:"insulation"`
	ThermostatSetpoint   float64    `json:"thermostat_setpoint"`
	OperatingHoursPerDay float64    `json:"operating_hours_per_day"`
}

// EquipmentProfile describes the candidate cooling unit. Only the SEER2
// rating feeds the engine; brand and model are display-only.
type EquipmentProfile struct {
	SEER2 float64 `json:"seer2"`
	Brand string  `json:"brand,omitempty"`
	Model string  `json:"model,omitempty"`
}

// GeocodeResult is a resolved postal code.
type GeocodeResult struct {
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	RegionCode  string  `json:"region_code"` // two-letter state abbreviation
	DisplayName string  `json:"display_name"`
}

// CurrentConditions is a single-point weather reading.
type CurrentConditions struct {
	Temperature float64 `json:"temperature"` // °F
	Humidity    float64 `json:"humidity"`    // percent, 0–100
}

// ClimateContext bundles the resolved climate inputs for a projection.
// MonthlyHighs carries the historical series when available; leave it empty
// to trigger the synthetic seasonal fallback.
type ClimateContext struct {
	CurrentTemperature float64
	Humidity           float64
	MonthlyHighs       []float64
	RatePerKWh         float64
}

// TemperatureSource records which temperature series backed a projection.
type TemperatureSource string

const (
	// TemperatureSourceHistorical means per-month averages from the
	// historical weather provider were used.
	TemperatureSourceHistorical TemperatureSource = "historical"
	// TemperatureSourceSynthetic means the seasonal offset fallback was used.
	TemperatureSourceSynthetic TemperatureSource = "synthetic"
)

// MonthsPerYear is the length of every projection series.
const MonthsPerYear = 12

// monthNames holds the display labels, calendar order.
var monthNames = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// MonthlyProjection is one month of projected cost and energy usage.
type MonthlyProjection struct {
	Month       string  `json:"month"`
	Cost        float64 `json:"cost"`         // currency
	EnergyUsage float64 `json:"energy_usage"` // kWh for the month
}

// Summary holds the aggregate display figures derived from a monthly series.
// Daily and monthly values are divisions of the annual totals so every
// displayed number is additively consistent.
type Summary struct {
	DailyCost         float64 `json:"daily_cost"`
	MonthlyCost       float64 `json:"monthly_cost"`
	AnnualCost        float64 `json:"annual_cost"`
	DailyEnergyUsage  float64 `json:"daily_energy_usage"`
	AnnualEnergyUsage float64 `json:"annual_energy_usage"`
}

// Calculation is one completed estimate: the inputs, the resolved context,
// the monthly series, and the derived aggregates. It is what the history
// store persists and the report exporter consumes.
type Calculation struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Home      HomeProfile      `json:"home"`
	Equipment EquipmentProfile `json:"equipment"`
	Location  GeocodeResult    `json:"location"`

	Conditions CurrentConditions `json:"conditions"`
	RatePerKWh float64           `json:"rate_per_kwh"`

	TemperatureSource TemperatureSource   `json:"temperature_source"`
	Projections       []MonthlyProjection `json:"projections"`
	Summary           Summary             `json:"summary"`

	// BTURequirement is the system-sizing figure computed from the current
	// (not seasonal) conditions, for display only. It is intentionally
	// decoupled from the annual projection.
	BTURequirement float64 `json:"btu_requirement"`
}
