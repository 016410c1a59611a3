package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/goccy/go-json"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/scenario"
	"github.com/rshade/lca-carbon/internal/sweep"
)

// NotApplicable is written in CSV for a savings percentage against a zero
// baseline.
const NotApplicable = "N/A"

// Write encodes one table of r, or all of them, to w. CSV holds a single
// table; asking for all tables in CSV fails with ErrUnsupported.
func Write(w io.Writer, format Format, table Table, r *Report) error {
	if _, err := ParseTable(string(table)); err != nil {
		return err
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r.only(table))
	case FormatCSV:
		return writeCSV(w, table, r)
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

func writeCSV(w io.Writer, table Table, r *Report) error {
	var rows [][]string
	switch table {
	case TableAnnual:
		rows = annualRows(r.Annual)
	case TableCumulative:
		rows = cumulativeRows(r.Cumulative)
	case TableSummary:
		rows = summaryRows(r.Summaries)
	case TableComparison:
		rows = comparisonRows(r.Comparison)
	case TableSweep:
		var cells []sweep.Cell
		if r.Sweep != nil && r.Sweep.Result != nil {
			cells = r.Sweep.Cells()
		}
		rows = sweepRows(cells)
	default:
		return fmt.Errorf("%w: csv holds one table, not %q", ErrUnsupported, table)
	}

	cw := csv.NewWriter(w)
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

var (
	annualHeader     = []string{"year", "manufacturing_kgco2", "operational_kgco2", "eol_kgco2", "total_kgco2", "scenario"}
	cumulativeHeader = append(append([]string(nil), annualHeader...),
		"cumulative_manufacturing_kgco2", "cumulative_operational_kgco2", "cumulative_eol_kgco2", "cumulative_total_kgco2")
	summaryHeader    = []string{"scenario", "manufacturing_life_kgco2", "operational_life_kgco2", "eol_life_kgco2", "total_life_kgco2"}
	comparisonHeader = []string{"scenario", "lifetime_total_kgco2", "savings_kgco2", "savings_pct"}
	sweepHeader      = []string{"sleep_fraction", "renewable_share", "lifetime_total_kgco2", "savings_abs_kgco2", "savings_pct"}
)

func annualRow(rec scenario.YearRecord) []string {
	return []string{
		strconv.Itoa(rec.Year),
		formatFloat(rec.ManufacturingKgCO2),
		formatFloat(rec.OperationalKgCO2),
		formatFloat(rec.EOLKgCO2),
		formatFloat(rec.TotalKgCO2),
		rec.Scenario,
	}
}

func annualRows(records []scenario.YearRecord) [][]string {
	rows := [][]string{annualHeader}
	for _, rec := range records {
		rows = append(rows, annualRow(rec))
	}
	return rows
}

func cumulativeRows(records []aggregate.CumulativeRecord) [][]string {
	rows := [][]string{cumulativeHeader}
	for _, rec := range records {
		rows = append(rows, append(annualRow(rec.YearRecord),
			formatFloat(rec.CumulativeManufacturingKgCO2),
			formatFloat(rec.CumulativeOperationalKgCO2),
			formatFloat(rec.CumulativeEOLKgCO2),
			formatFloat(rec.CumulativeTotalKgCO2),
		))
	}
	return rows
}

func summaryRows(summaries []aggregate.LifetimeSummary) [][]string {
	rows := [][]string{summaryHeader}
	for _, s := range summaries {
		rows = append(rows, []string{
			s.Scenario,
			formatFloat(s.ManufacturingKgCO2),
			formatFloat(s.OperationalKgCO2),
			formatFloat(s.EOLKgCO2),
			formatFloat(s.TotalKgCO2),
		})
	}
	return rows
}

func comparisonRows(comparisons []aggregate.Comparison) [][]string {
	rows := [][]string{comparisonHeader}
	for _, c := range comparisons {
		rows = append(rows, []string{
			c.Scenario,
			formatFloat(c.LifetimeTotalKgCO2),
			formatFloat(c.SavingsKgCO2),
			formatPct(c.SavingsPct),
		})
	}
	return rows
}

func sweepRows(cells []sweep.Cell) [][]string {
	rows := [][]string{sweepHeader}
	for _, c := range cells {
		rows = append(rows, []string{
			formatFloat(c.SleepFraction),
			formatFloat(c.RenewableShare),
			formatFloat(c.LifetimeTotalKgCO2),
			formatFloat(c.SavingsAbsKgCO2),
			formatPct(c.SavingsPct),
		})
	}
	return rows
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatPct(p *float64) string {
	if p == nil {
		return NotApplicable
	}
	return formatFloat(*p)
}
