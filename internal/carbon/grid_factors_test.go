package carbon

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGridEmissionFactors_AllWithinValidRange validates that all grid presets
// fall within a physically reasonable range of kg CO2e per kWh. A value above
// 2.0 would mean the table was written in the wrong unit.
func TestGridEmissionFactors_AllWithinValidRange(t *testing.T) {
	const minValidFactor = 0.0
	const maxValidFactor = 2.0

	for region, factor := range GridEmissionFactors {
		t.Run(region, func(t *testing.T) {
			assert.GreaterOrEqual(t, factor, minValidFactor)
			assert.LessOrEqual(t, factor, maxValidFactor)
		})
	}
}

func TestGetGridFactor(t *testing.T) {
	tests := []struct {
		name   string
		region string
		want   float64
		wantOK bool
	}{
		{"exact match", "eu-north-1", 0.0088, true},
		{"case and whitespace insensitive", "  US-East-1 ", 0.379, true},
		{"reference preset", "reference", GridEmissionFactor, true},
		{"unknown region", "mars-central-1", 0, false},
		{"empty", "", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := GetGridFactor(tt.region)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestGridRegions_Sorted(t *testing.T) {
	regions := GridRegions()
	require.Len(t, regions, len(GridEmissionFactors))
	assert.True(t, sort.StringsAreSorted(regions))
}
