package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEstimateCoolingLoad_ReferenceScenario(t *testing.T) {
	// 2000 sqft, average insulation, 95°F out / 75°F in, 50% humidity.
	// Δ=20 exactly: no insulation bump, humidity multiplier 1.0,
	// temp factor 1.0, so 2000×25×1.1×1.10 = 60,500.
	btu := EstimateCoolingLoad(2000, InsulationAverage, 95, 75, 50)
	assert.InDelta(t, 60500, btu, 0.01)
}

func TestEstimateCoolingLoad_MinimumFloor(t *testing.T) {
	tests := []struct {
		name       string
		sqft       float64
		insulation Insulation
	}{
		{"tiny home", 100, InsulationExcellent},
		{"zero footage", 0, InsulationGood},
		{"small well insulated", 400, InsulationExcellent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			btu := EstimateCoolingLoad(tt.sqft, tt.insulation, 80, 75, 50)
			assert.Equal(t, float64(MinimumBTU), btu)
		})
	}
}

func TestEstimateCoolingLoad_InsulationOrdering(t *testing.T) {
	// Better insulation never increases the load, all else fixed.
	var prev float64
	for i, ins := range []Insulation{InsulationExcellent, InsulationGood, InsulationAverage, InsulationPoor} {
		btu := EstimateCoolingLoad(2500, ins, 95, 72, 60)
		if i > 0 {
			assert.Greater(t, btu, prev, "insulation %s should load more than the previous grade", ins)
		}
		prev = btu
	}
}

func TestEstimateCoolingLoad_InsulationModulation(t *testing.T) {
	t.Run("poor bumps above 20 degree differential", func(t *testing.T) {
		at20 := EstimateCoolingLoad(2000, InsulationPoor, 95, 75, 50)
		at21 := EstimateCoolingLoad(2000, InsulationPoor, 96, 75, 50)
		// 1.3 → 1.5 plus the temp factor step.
		assert.Greater(t, at21/at20, 1.5/1.3*0.999)
	})

	t.Run("excellent drops above 25 degree differential", func(t *testing.T) {
		// Isolate the insulation factor by comparing against good, which
		// has no modulation.
		ratio26 := EstimateCoolingLoad(2000, InsulationExcellent, 101, 75, 50) /
			EstimateCoolingLoad(2000, InsulationGood, 101, 75, 50)
		ratio25 := EstimateCoolingLoad(2000, InsulationExcellent, 100, 75, 50) /
			EstimateCoolingLoad(2000, InsulationGood, 100, 75, 50)
		assert.InDelta(t, 0.80, ratio26, 1e-9)
		assert.InDelta(t, 0.85, ratio25, 1e-9)
	})

	t.Run("unrecognized grade falls back to 1.1", func(t *testing.T) {
		unknown := EstimateCoolingLoad(2000, Insulation("cardboard"), 95, 75, 50)
		average := EstimateCoolingLoad(2000, InsulationAverage, 95, 75, 50)
		// At Δ=20 average has no bump, so the legacy fallback matches it.
		assert.InDelta(t, average, unknown, 1e-9)

		// Beyond Δ=20 average bumps to 1.2 but the fallback stays at 1.1.
		unknownHot := EstimateCoolingLoad(2000, Insulation("cardboard"), 100, 75, 50)
		averageHot := EstimateCoolingLoad(2000, InsulationAverage, 100, 75, 50)
		assert.Less(t, unknownHot, averageHot)
	})
}

func TestEstimateCoolingLoad_HumidityClamping(t *testing.T) {
	base := EstimateCoolingLoad(3000, InsulationGood, 95, 75, 50)

	t.Run("upper clamp at 1.2", func(t *testing.T) {
		// humidity=120 would give 1.21 unclamped; 100 gives 1.15.
		at100 := EstimateCoolingLoad(3000, InsulationGood, 95, 75, 100)
		assert.InDelta(t, 1.15, at100/base, 1e-9)
	})

	t.Run("lower clamp at 0.9", func(t *testing.T) {
		// humidity=0 gives 0.85 unclamped, clamped to 0.9.
		at0 := EstimateCoolingLoad(3000, InsulationGood, 95, 75, 0)
		assert.InDelta(t, 0.9, at0/base, 1e-9)
	})
}

func TestEstimateCoolingLoad_TempFactorFloor(t *testing.T) {
	// Δ=0 gives 1+(0−20)×0.04 = 0.2 unfloored; the floor holds it at 0.8.
	atZeroDelta := EstimateCoolingLoad(3000, InsulationGood, 75, 75, 50)
	atTwenty := EstimateCoolingLoad(3000, InsulationGood, 95, 75, 50)
	assert.InDelta(t, 0.8, atZeroDelta/atTwenty, 1e-9)
}

func TestEstimateCoolingLoad_AlwaysAtLeastMinimum(t *testing.T) {
	for _, sqft := range []float64{0, 100, 500, 2000, 10000} {
		for _, ins := range append(Insulations, Insulation("bogus")) {
			for _, out := range []float64{40, 75, 95, 110} {
				btu := EstimateCoolingLoad(sqft, ins, out, 75, 50)
				assert.GreaterOrEqual(t, btu, float64(MinimumBTU))
			}
		}
	}
}
