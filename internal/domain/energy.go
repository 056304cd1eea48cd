package domain

// EstimateEnergyUsage returns the energy in kWh drawn to deliver
// btuRequirement over operatingHours (typically one day's runtime).
//
// The SEER2 rating is derated under large indoor/outdoor differentials to
// model compressor performance degradation: 5% beyond 20°F, 10% beyond 25°F.
func EstimateEnergyUsage(btuRequirement, seer2, operatingHours, outdoorTemp, indoorTemp float64) float64 {
	delta := abs(outdoorTemp - indoorTemp)

	effective := seer2
	switch {
	case delta > 25:
		effective *= 0.90
	case delta > 20:
		effective *= 0.95
	}

	// SEER2 treated as BTU/Wh, so BTU demand over rating gives watts.
	watts := btuRequirement / effective

	return watts / 1000 * operatingHours
}
