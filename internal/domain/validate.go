package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// EstimateInputs is the raw calculation request as supplied by a caller,
// before validation.
type EstimateInputs struct {
	PostalCode           string     `json:"postal_code"`
	SquareFootage        float64    `json:"square_footage"`
	Insulation           Insulation `json:"insulation"`
	ThermostatSetpoint   float64    `json:"thermostat_setpoint"`
	SEER2                float64    `json:"seer2"`
	OperatingHoursPerDay float64    `json:"operating_hours_per_day"`

	// UnitID optionally references a catalog unit for display; when set the
	// catalog's SEER2 rating is used.
	UnitID string `json:"unit_id,omitempty"`
}

// FieldError is a single validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors collects every violated field rule. All fields are
// checked; validation never stops at the first failure.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	msgs := make([]string, len(v))
	for i, fe := range v {
		msgs[i] = fmt.Sprintf("%s: %s", fe.Field, fe.Message)
	}
	return "invalid inputs: " + strings.Join(msgs, "; ")
}

// US ZIP: five digits with an optional +4 extension.
var zipPattern = regexp.MustCompile(`^\d{5}(-\d{4})?$`)

// ValidateInputs checks every field rule and returns the collected
// violations, or nil when the inputs are clean. The engine itself assumes
// pre-validated values; this is the boundary that guarantees it.
func ValidateInputs(in EstimateInputs) ValidationErrors {
	var errs ValidationErrors

	switch {
	case strings.TrimSpace(in.PostalCode) == "":
		errs = append(errs, FieldError{"postal_code", "ZIP code is required"})
	case !zipPattern.MatchString(in.PostalCode):
		errs = append(errs, FieldError{"postal_code", "must be a valid US ZIP code (e.g. 12345 or 12345-6789)"})
	}

	if in.SquareFootage <= 0 {
		errs = append(errs, FieldError{"square_footage", "must be greater than 0"})
	} else if in.SquareFootage > 10000 {
		errs = append(errs, FieldError{"square_footage", "unusually large, please verify"})
	}

	if !in.Insulation.Valid() {
		errs = append(errs, FieldError{"insulation", "must be one of poor, average, good, excellent"})
	}

	if in.ThermostatSetpoint < 60 || in.ThermostatSetpoint > 90 {
		errs = append(errs, FieldError{"thermostat_setpoint", "must be between 60°F and 90°F"})
	}

	if in.SEER2 < 13 || in.SEER2 > 25 {
		errs = append(errs, FieldError{"seer2", "must be between 13 and 25"})
	}

	if in.OperatingHoursPerDay < 1 || in.OperatingHoursPerDay > 24 {
		errs = append(errs, FieldError{"operating_hours_per_day", "must be between 1 and 24"})
	}

	return errs
}
