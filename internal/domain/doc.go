// Package domain models residential air-conditioning operating cost.
//
// # Model
//
// The estimation pipeline is three pure stages:
//
//  1. Thermal load: home characteristics plus outdoor conditions produce a
//     required cooling capacity in BTU/hr (see [EstimateCoolingLoad]).
//     The base rate of 25 BTU/hr per square foot is an empirical constant
//     standing in for ceiling height and window ratio assumptions; the
//     result never falls below 12,000 BTU/hr.
//  2. Energy: BTU demand divided by the SEER2 rating yields power draw,
//     derated under large indoor/outdoor temperature differentials
//     (see [EstimateEnergyUsage]). SEER2 is treated dimensionally as
//     BTU per watt-hour, an intentional simplification.
//  3. Projection: stages 1 and 2 run once per calendar month against a
//     12-month outdoor temperature series, and a regional electricity rate
//     converts energy to dollars (see [ProjectAnnualCosts]).
//
// # Temperature series
//
// The projection prefers per-month average daily highs from a historical
// weather provider. When that series is unavailable, fails, or does not
// contain exactly twelve values it is discarded whole and a synthetic
// series is built from the current reading plus a fixed north-temperate
// seasonal offset table, clamped to 40–110°F. Which source was used is
// reported via [TemperatureSource] so callers can surface the degradation.
//
// # Units
//
// Imperial throughout: °F, square feet, BTU/hr, kWh. Cooling only.
package domain
