package domain

// Summarize reduces a monthly series to the aggregate display figures.
// Daily and monthly values are derived from the annual totals, not averaged
// independently, so they stay additively consistent with the series.
func Summarize(projections []MonthlyProjection) Summary {
	var annualCost, annualUsage float64
	for _, p := range projections {
		annualCost += p.Cost
		annualUsage += p.EnergyUsage
	}

	return Summary{
		DailyCost:         annualCost / 365,
		MonthlyCost:       annualCost / 12,
		AnnualCost:        annualCost,
		DailyEnergyUsage:  annualUsage / 365,
		AnnualEnergyUsage: annualUsage,
	}
}
