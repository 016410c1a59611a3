// Package export writes model results as JSON or CSV.
package export

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/carbon"
	"github.com/rshade/lca-carbon/internal/scenario"
	"github.com/rshade/lca-carbon/internal/sweep"
)

var (
	// ErrUnknownFormat is returned for an output format other than json or csv.
	ErrUnknownFormat = errors.New("unknown output format")

	// ErrUnknownTable is returned for a table name that is not exported.
	ErrUnknownTable = errors.New("unknown table")

	// ErrUnsupported is returned when a table cannot be written in the
	// requested format.
	ErrUnsupported = errors.New("unsupported export")
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat parses a format name, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case FormatJSON, FormatCSV:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q (want json or csv)", ErrUnknownFormat, s)
}

// Table selects which part of a report is written.
type Table string

// Exported tables.
const (
	TableAnnual     Table = "annual"
	TableCumulative Table = "cumulative"
	TableSummary    Table = "summary"
	TableComparison Table = "comparison"
	TableSweep      Table = "sweep"
	TableAll        Table = "all"
)

// Tables lists every table name.
var Tables = []Table{TableAnnual, TableCumulative, TableSummary, TableComparison, TableSweep, TableAll}

// ParseTable parses a table name, case-insensitively.
func ParseTable(s string) (Table, error) {
	t := Table(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tables {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownTable, s)
}

// SweepReport is a sweep result with the cell nearest to the default
// sleep fraction and renewable share.
type SweepReport struct {
	*sweep.Result
	AtDefaults *sweep.Cell `json:"at_defaults,omitempty"`
}

// NewSweepReport wraps res with the cell nearest to (sleep, renewable).
func NewSweepReport(res *sweep.Result, sleep, renewable float64) *SweepReport {
	r := &SweepReport{Result: res}
	if cell, ok := res.At(sleep, renewable); ok {
		r.AtDefaults = &cell
	}
	return r
}

// Report collects the results of one run.
type Report struct {
	RunID       uuid.UUID                    `json:"run_id"`
	GeneratedAt time.Time                    `json:"generated_at"`
	Profile     carbon.EquipmentProfile      `json:"profile"`
	Factors     carbon.EmissionFactors       `json:"factors"`
	Scenarios   []scenario.Params            `json:"scenarios,omitempty"`
	Annual      []scenario.YearRecord        `json:"annual,omitempty"`
	Cumulative  []aggregate.CumulativeRecord `json:"cumulative,omitempty"`
	Summaries   []aggregate.LifetimeSummary  `json:"summaries,omitempty"`
	Comparison  []aggregate.Comparison       `json:"comparison,omitempty"`
	Sweep       *SweepReport                 `json:"sweep,omitempty"`
}

// NewReport returns an empty report for one run.
func NewReport(runID uuid.UUID, profile carbon.EquipmentProfile, factors carbon.EmissionFactors) *Report {
	return &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		Profile:     profile,
		Factors:     factors,
	}
}

// AddTables fills the scenario, annual, cumulative and summary sections
// from built tables.
func (r *Report) AddTables(tables []scenario.Table) {
	for _, t := range tables {
		r.Scenarios = append(r.Scenarios, t.Params)
	}
	r.Annual = aggregate.Records(tables...)
	r.Cumulative = aggregate.Cumulative(tables...)
	r.Summaries = aggregate.Summaries(tables...)
}

// only returns a copy of r holding just the given table.
func (r *Report) only(t Table) *Report {
	out := &Report{
		RunID:       r.RunID,
		GeneratedAt: r.GeneratedAt,
		Profile:     r.Profile,
		Factors:     r.Factors,
	}
	switch t {
	case TableAnnual:
		out.Annual = r.Annual
	case TableCumulative:
		out.Cumulative = r.Cumulative
	case TableSummary:
		out.Summaries = r.Summaries
	case TableComparison:
		out.Comparison = r.Comparison
	case TableSweep:
		out.Sweep = r.Sweep
	case TableAll:
		return r
	}
	return out
}
