// Package rates provides the regional electricity rate lookup.
//
// The built-in table holds average residential rates per state in USD/kWh
// (EIA retail-sales averages, 2024 snapshot). It satisfies
// domain.RateProvider so it can be swapped for a live EIA API client
// without touching the engine.
package rates

import (
	"context"
	"strings"

	"github.com/couchcryptid/ac-cost-service/internal/domain"
)

var stateRates = map[string]float64{
	"AL": 0.127, "AK": 0.228, "AZ": 0.128, "AR": 0.103, "CA": 0.234,
	"CO": 0.123, "CT": 0.214, "DE": 0.131, "FL": 0.117, "GA": 0.119,
	"HI": 0.334, "ID": 0.108, "IL": 0.129, "IN": 0.134, "IA": 0.122,
	"KS": 0.135, "KY": 0.111, "LA": 0.095, "ME": 0.164, "MD": 0.138,
	"MA": 0.229, "MI": 0.168, "MN": 0.135, "MS": 0.115, "MO": 0.113,
	"MT": 0.115, "NE": 0.108, "NV": 0.127, "NH": 0.198, "NJ": 0.164,
	"NM": 0.134, "NY": 0.186, "NC": 0.115, "ND": 0.109, "OH": 0.128,
	"OK": 0.108, "OR": 0.113, "PA": 0.143, "RI": 0.234, "SC": 0.130,
	"SD": 0.124, "TN": 0.115, "TX": 0.120, "UT": 0.109, "VT": 0.181,
	"VA": 0.123, "WA": 0.098, "WV": 0.119, "WI": 0.148, "WY": 0.109,
}

// Static implements domain.RateProvider from the built-in table.
type Static struct{}

// New returns the table-backed rate provider.
func New() *Static {
	return &Static{}
}

// Rate returns the state's average rate, or domain.DefaultElectricityRate
// when the region code is absent or unrecognized. It never fails.
func (s *Static) Rate(_ context.Context, regionCode string) (float64, error) {
	if rate, ok := stateRates[strings.ToUpper(strings.TrimSpace(regionCode))]; ok {
		return rate, nil
	}
	return domain.DefaultElectricityRate, nil
}
