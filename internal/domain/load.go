package domain

// MinimumBTU is the floor on any cooling load estimate. Residential units
// are not sold below one ton of capacity.
const MinimumBTU = 12000

// baseBTUPerSqFt assumes 8–9 ft ceilings and a typical window ratio.
const baseBTUPerSqFt = 25

// EstimateCoolingLoad converts home characteristics and outdoor conditions
// into a required cooling capacity in BTU/hr. The result is never below
// MinimumBTU.
//
// Multipliers compose in a fixed order: insulation, humidity, temperature
// differential, then a 10% safety margin.
func EstimateCoolingLoad(squareFootage float64, insulation Insulation, outdoorTemp, indoorTemp, humidity float64) float64 {
	btu := squareFootage * baseBTUPerSqFt
	delta := abs(outdoorTemp - indoorTemp)

	btu *= insulationFactor(insulation, delta)

	// Higher humidity means more latent load. ±0.3% per point away from
	// 50%, clamped to [0.9, 1.2].
	humidityFactor := 1 + (humidity-50)*0.003
	btu *= clamp(humidityFactor, 0.9, 1.2)

	// 4% per degree of differential beyond 20°F, floored at 0.8 with no
	// upper bound.
	tempFactor := 1 + (delta-20)*0.04
	if tempFactor < 0.8 {
		tempFactor = 0.8
	}
	btu *= tempFactor

	// Safety margin.
	btu *= 1.10

	if btu < MinimumBTU {
		return MinimumBTU
	}
	return btu
}

// insulationFactor modulates the base multiplier by the temperature
// differential. An unrecognized grade gets the legacy 1.1 fallback without
// modulation; ValidateInputs rejects such grades at the boundary, so this
// path only carries unchecked callers.
func insulationFactor(insulation Insulation, delta float64) float64 {
	switch insulation {
	case InsulationPoor:
		if delta > 20 {
			return 1.5
		}
		return 1.3
	case InsulationAverage:
		if delta > 20 {
			return 1.2
		}
		return 1.1
	case InsulationGood:
		return 1.0
	case InsulationExcellent:
		if delta > 25 {
			return 0.80
		}
		return 0.85
	default:
		return 1.1
	}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
