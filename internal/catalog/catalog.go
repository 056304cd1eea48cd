// Package catalog holds the built-in list of candidate cooling units.
// Brand, model, and price are display data only; the engine consumes
// nothing but the SEER2 rating.
package catalog

// Unit is one purchasable AC unit.
type Unit struct {
	ID             string  `json:"id"`
	Brand          string  `json:"brand"`
	Model          string  `json:"model"`
	SEER2          float64 `json:"seer2"`
	BTU            float64 `json:"btu"`
	EstimatedPrice float64 `json:"estimated_price"` // USD, 2024 street prices
}

// units is ordered by brand, then ascending efficiency.
var units = []Unit{
	{ID: "carrier-1", Brand: "Carrier", Model: "Comfort 13", SEER2: 13, BTU: 24000, EstimatedPrice: 3200},
	{ID: "carrier-2", Brand: "Carrier", Model: "Performance 16", SEER2: 16, BTU: 24000, EstimatedPrice: 4100},
	{ID: "carrier-3", Brand: "Carrier", Model: "Infinity 20", SEER2: 20, BTU: 24000, EstimatedPrice: 5800},

	{ID: "trane-1", Brand: "Trane", Model: "XR13", SEER2: 13, BTU: 24000, EstimatedPrice: 3100},
	{ID: "trane-2", Brand: "Trane", Model: "XR16", SEER2: 16, BTU: 24000, EstimatedPrice: 4200},
	{ID: "trane-3", Brand: "Trane", Model: "XV20i", SEER2: 21, BTU: 24000, EstimatedPrice: 6200},

	{ID: "lennox-1", Brand: "Lennox", Model: "Merit 13ACX", SEER2: 13, BTU: 24000, EstimatedPrice: 3000},
	{ID: "lennox-2", Brand: "Lennox", Model: "Elite 16ACX", SEER2: 16, BTU: 24000, EstimatedPrice: 4000},
	{ID: "lennox-3", Brand: "Lennox", Model: "Signature XC25", SEER2: 20, BTU: 24000, EstimatedPrice: 5900},

	{ID: "goodman-1", Brand: "Goodman", Model: "GSX13", SEER2: 13, BTU: 24000, EstimatedPrice: 2800},
	{ID: "goodman-2", Brand: "Goodman", Model: "GSX16", SEER2: 16, BTU: 24000, EstimatedPrice: 3600},
	{ID: "goodman-3", Brand: "Goodman", Model: "GSXC18", SEER2: 18, BTU: 24000, EstimatedPrice: 4800},

	{ID: "rheem-1", Brand: "Rheem", Model: "Classic 13PJL", SEER2: 13, BTU: 24000, EstimatedPrice: 2900},
	{ID: "rheem-2", Brand: "Rheem", Model: "Prestige 16PJL", SEER2: 16, BTU: 24000, EstimatedPrice: 3800},
	{ID: "rheem-3", Brand: "Rheem", Model: "Prestige 20PJL", SEER2: 20, BTU: 24000, EstimatedPrice: 5600},

	{ID: "american-1", Brand: "American Standard", Model: "Silver 13", SEER2: 13, BTU: 24000, EstimatedPrice: 3150},
	{ID: "american-2", Brand: "American Standard", Model: "Gold 16", SEER2: 16, BTU: 24000, EstimatedPrice: 4050},
	{ID: "american-3", Brand: "American Standard", Model: "Platinum 20", SEER2: 20, BTU: 24000, EstimatedPrice: 5750},
}

// All returns every cataloged unit. The returned slice is a copy.
func All() []Unit {
	out := make([]Unit, len(units))
	copy(out, units)
	return out
}

// Lookup finds a unit by ID.
func Lookup(id string) (Unit, bool) {
	for _, u := range units {
		if u.ID == id {
			return u, true
		}
	}
	return Unit{}, false
}
