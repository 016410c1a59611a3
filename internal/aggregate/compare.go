package aggregate

import (
	"fmt"
	"sort"

	"github.com/rshade/lca-carbon/internal/scenario"
)

// Comparison is the lifetime saving of one scenario against a baseline.
type Comparison struct {
	Scenario           string  `json:"scenario"`
	LifetimeTotalKgCO2 float64 `json:"lifetime_total_kgco2"`
	SavingsKgCO2       float64 `json:"savings_kgco2"`
	// SavingsPct is nil when the baseline lifetime total is zero.
	SavingsPct *float64 `json:"savings_pct"`
}

// Savings returns the absolute saving of total against baseline and the
// saving as a percentage of baseline. The percentage is not applicable, and
// the boolean false, when the baseline is zero.
func Savings(baseline, total float64) (abs, pct float64, ok bool) {
	abs = baseline - total
	if baseline == 0 {
		return abs, 0, false
	}
	return abs, abs / baseline * 100.0, true
}

// SavingsPct is Savings returning the percentage as a pointer, nil when not
// applicable.
func SavingsPct(baseline, total float64) (float64, *float64) {
	abs, pct, ok := Savings(baseline, total)
	if !ok {
		return abs, nil
	}
	return abs, &pct
}

// Compare computes the saving of every summary against the summary named
// baselineName. The result is sorted by saving, highest first; ties keep
// name order. An absent baseline fails with scenario.ErrUnknownScenario.
func Compare(summaries []LifetimeSummary, baselineName string) ([]Comparison, error) {
	baseline, ok := find(summaries, baselineName)
	if !ok {
		return nil, fmt.Errorf("%w: baseline %q is not among the compared scenarios", scenario.ErrUnknownScenario, baselineName)
	}

	out := make([]Comparison, len(summaries))
	for i, s := range summaries {
		abs, pct := SavingsPct(baseline.TotalKgCO2, s.TotalKgCO2)
		out[i] = Comparison{
			Scenario:           s.Scenario,
			LifetimeTotalKgCO2: s.TotalKgCO2,
			SavingsKgCO2:       abs,
			SavingsPct:         pct,
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SavingsKgCO2 != out[j].SavingsKgCO2 {
			return out[i].SavingsKgCO2 > out[j].SavingsKgCO2
		}
		return out[i].Scenario < out[j].Scenario
	})
	return out, nil
}

func find(summaries []LifetimeSummary, name string) (LifetimeSummary, bool) {
	for _, s := range summaries {
		if s.Scenario == name {
			return s, true
		}
	}
	return LifetimeSummary{}, false
}
