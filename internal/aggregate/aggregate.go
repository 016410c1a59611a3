// Package aggregate derives cumulative series, lifetime summaries and
// baseline comparisons from scenario tables.
//
// Tables handed to this package are assumed valid and complete; all
// validation happens when they are built.
package aggregate

import (
	"sort"

	"gonum.org/v1/gonum/floats"

	"github.com/rshade/lca-carbon/internal/scenario"
)

// CumulativeRecord is a yearly record extended with running sums over the
// years of its own scenario.
type CumulativeRecord struct {
	scenario.YearRecord
	CumulativeManufacturingKgCO2 float64 `json:"cumulative_manufacturing_kgco2"`
	CumulativeOperationalKgCO2   float64 `json:"cumulative_operational_kgco2"`
	CumulativeEOLKgCO2           float64 `json:"cumulative_eol_kgco2"`
	CumulativeTotalKgCO2         float64 `json:"cumulative_total_kgco2"`
}

// LifetimeSummary is the column-wise sum of one scenario table.
type LifetimeSummary struct {
	Scenario           string  `json:"scenario"`
	ManufacturingKgCO2 float64 `json:"manufacturing_life_kgco2"`
	OperationalKgCO2   float64 `json:"operational_life_kgco2"`
	EOLKgCO2           float64 `json:"eol_life_kgco2"`
	TotalKgCO2         float64 `json:"total_life_kgco2"`
}

// Records flattens tables into a single record slice in (scenario, year) order.
func Records(tables ...scenario.Table) []scenario.YearRecord {
	n := 0
	for _, t := range tables {
		n += len(t.Records)
	}
	records := make([]scenario.YearRecord, 0, n)
	for _, t := range tables {
		records = append(records, t.Records...)
	}
	SortRecords(records)
	return records
}

// SortRecords sorts records by scenario then year. The sort is stable.
func SortRecords(records []scenario.YearRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].Scenario != records[j].Scenario {
			return records[i].Scenario < records[j].Scenario
		}
		return records[i].Year < records[j].Year
	})
}

// Cumulative computes running sums for every table. Each table is summed on
// its own, so the sums restart at every table even when two tables share a
// scenario name. The result is ordered by scenario name, then table order,
// then year.
func Cumulative(tables ...scenario.Table) []CumulativeRecord {
	ordered := make([]scenario.Table, len(tables))
	copy(ordered, tables)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Name() < ordered[j].Name()
	})

	n := 0
	for _, t := range tables {
		n += len(t.Records)
	}
	out := make([]CumulativeRecord, 0, n)
	for _, t := range ordered {
		records := make([]scenario.YearRecord, len(t.Records))
		copy(records, t.Records)
		sort.SliceStable(records, func(i, j int) bool {
			return records[i].Year < records[j].Year
		})
		out = append(out, cumulateGroup(records)...)
	}
	return out
}

// CumulativeRecords computes running sums over a concatenation of records of
// possibly several scenarios. Records are grouped by scenario name and summed
// in increasing year order; the result is sorted by (scenario, year). Records
// carry no table identity, so names must be unique; use Cumulative when
// tables are at hand.
func CumulativeRecords(records []scenario.YearRecord) []CumulativeRecord {
	sorted := make([]scenario.YearRecord, len(records))
	copy(sorted, records)
	SortRecords(sorted)

	out := make([]CumulativeRecord, 0, len(sorted))
	for start := 0; start < len(sorted); {
		end := start
		for end < len(sorted) && sorted[end].Scenario == sorted[start].Scenario {
			end++
		}
		out = append(out, cumulateGroup(sorted[start:end])...)
		start = end
	}
	return out
}

func cumulateGroup(group []scenario.YearRecord) []CumulativeRecord {
	manufacturing := column(group, func(r scenario.YearRecord) float64 { return r.ManufacturingKgCO2 })
	operational := column(group, func(r scenario.YearRecord) float64 { return r.OperationalKgCO2 })
	eol := column(group, func(r scenario.YearRecord) float64 { return r.EOLKgCO2 })
	total := column(group, func(r scenario.YearRecord) float64 { return r.TotalKgCO2 })

	floats.CumSum(manufacturing, manufacturing)
	floats.CumSum(operational, operational)
	floats.CumSum(eol, eol)
	floats.CumSum(total, total)

	out := make([]CumulativeRecord, len(group))
	for i, r := range group {
		out[i] = CumulativeRecord{
			YearRecord:                   r,
			CumulativeManufacturingKgCO2: manufacturing[i],
			CumulativeOperationalKgCO2:   operational[i],
			CumulativeEOLKgCO2:           eol[i],
			CumulativeTotalKgCO2:         total[i],
		}
	}
	return out
}

// Summarize sums every column of one scenario table.
func Summarize(t scenario.Table) LifetimeSummary {
	return LifetimeSummary{
		Scenario:           t.Name(),
		ManufacturingKgCO2: floats.Sum(column(t.Records, func(r scenario.YearRecord) float64 { return r.ManufacturingKgCO2 })),
		OperationalKgCO2:   floats.Sum(column(t.Records, func(r scenario.YearRecord) float64 { return r.OperationalKgCO2 })),
		EOLKgCO2:           floats.Sum(column(t.Records, func(r scenario.YearRecord) float64 { return r.EOLKgCO2 })),
		TotalKgCO2:         floats.Sum(column(t.Records, func(r scenario.YearRecord) float64 { return r.TotalKgCO2 })),
	}
}

// Summaries returns the lifetime summary of every table, in table order.
func Summaries(tables ...scenario.Table) []LifetimeSummary {
	out := make([]LifetimeSummary, len(tables))
	for i, t := range tables {
		out[i] = Summarize(t)
	}
	return out
}

// SortByTotal sorts summaries by lifetime total, lowest first.
func SortByTotal(summaries []LifetimeSummary) {
	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].TotalKgCO2 < summaries[j].TotalKgCO2
	})
}

func column(records []scenario.YearRecord, field func(scenario.YearRecord) float64) []float64 {
	col := make([]float64, len(records))
	for i, r := range records {
		col[i] = field(r)
	}
	return col
}
