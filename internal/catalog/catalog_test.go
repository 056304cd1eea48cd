package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookup(t *testing.T) {
	u, ok := Lookup("trane-3")
	require.True(t, ok)
	assert.Equal(t, "Trane", u.Brand)
	assert.Equal(t, 21.0, u.SEER2)

	_, ok = Lookup("nonexistent")
	assert.False(t, ok)
}

func TestAll_RatingsWithinValidRange(t *testing.T) {
	all := All()
	require.NotEmpty(t, all)

	seen := make(map[string]bool)
	for _, u := range all {
		assert.False(t, seen[u.ID], "duplicate unit id %s", u.ID)
		seen[u.ID] = true
		assert.GreaterOrEqual(t, u.SEER2, 13.0, "%s", u.ID)
		assert.LessOrEqual(t, u.SEER2, 25.0, "%s", u.ID)
		assert.Greater(t, u.EstimatedPrice, 0.0, "%s", u.ID)
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	a := All()
	a[0].Brand = "mutated"
	b := All()
	assert.NotEqual(t, "mutated", b[0].Brand)
}
