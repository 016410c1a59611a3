package aggregate

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lca-carbon/internal/scenario"
)

func ptr(v float64) *float64 { return &v }

func TestSavings(t *testing.T) {
	tests := []struct {
		name     string
		baseline float64
		total    float64
		wantAbs  float64
		wantPct  float64
		wantOK   bool
	}{
		{"half", 200, 100, 100, 50, true},
		{"same", 200, 200, 0, 0, true},
		{"worse", 100, 150, -50, -50, true},
		{"zero baseline", 0, 10, -10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			abs, pct, ok := Savings(tt.baseline, tt.total)
			assert.Equal(t, tt.wantAbs, abs)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.wantPct, pct, 1e-9)

			_, p := SavingsPct(tt.baseline, tt.total)
			assert.Equal(t, tt.wantOK, p != nil)
		})
	}
}

func TestCompare(t *testing.T) {
	summaries := []LifetimeSummary{
		{Scenario: "baseline", TotalKgCO2: 1000},
		{Scenario: "sleep", TotalKgCO2: 700},
		{Scenario: "tie-b", TotalKgCO2: 900},
		{Scenario: "tie-a", TotalKgCO2: 900},
		{Scenario: "worse", TotalKgCO2: 1100},
	}

	got, err := Compare(summaries, "baseline")
	require.NoError(t, err)

	want := []Comparison{
		{Scenario: "sleep", LifetimeTotalKgCO2: 700, SavingsKgCO2: 300, SavingsPct: ptr(30)},
		{Scenario: "tie-a", LifetimeTotalKgCO2: 900, SavingsKgCO2: 100, SavingsPct: ptr(10)},
		{Scenario: "tie-b", LifetimeTotalKgCO2: 900, SavingsKgCO2: 100, SavingsPct: ptr(10)},
		{Scenario: "baseline", LifetimeTotalKgCO2: 1000, SavingsKgCO2: 0, SavingsPct: ptr(0)},
		{Scenario: "worse", LifetimeTotalKgCO2: 1100, SavingsKgCO2: -100, SavingsPct: ptr(-10)},
	}
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)); diff != "" {
		t.Errorf("Compare() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompare_ZeroBaseline(t *testing.T) {
	got, err := Compare([]LifetimeSummary{
		{Scenario: "baseline"},
		{Scenario: "other", TotalKgCO2: 5},
	}, "baseline")
	require.NoError(t, err)
	for _, c := range got {
		assert.Nil(t, c.SavingsPct, c.Scenario)
	}
}

func TestCompare_MissingBaseline(t *testing.T) {
	_, err := Compare([]LifetimeSummary{{Scenario: "sleep", TotalKgCO2: 1}}, "baseline")
	assert.True(t, errors.Is(err, scenario.ErrUnknownScenario))
}

func TestCompare_ReferenceSavings(t *testing.T) {
	got, err := Compare(Summaries(referenceTables(t, false)...), "baseline")
	require.NoError(t, err)

	require.Equal(t, "sleep+renewable", got[0].Scenario)
	require.NotNil(t, got[0].SavingsPct)
	assert.InDelta(t, 282090.0-33963.0, got[0].SavingsKgCO2, 1e-6)
	assert.InDelta(t, (282090.0-33963.0)/282090.0*100, *got[0].SavingsPct, 1e-9)
	assert.Equal(t, "baseline", got[len(got)-1].Scenario)
}
