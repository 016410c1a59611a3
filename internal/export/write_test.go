package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"strconv"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/carbon"
	"github.com/rshade/lca-carbon/internal/scenario"
	"github.com/rshade/lca-carbon/internal/sweep"
)

func referenceReport(t *testing.T) *Report {
	t.Helper()
	m, err := scenario.NewModel(carbon.ReferenceProfile(), carbon.ReferenceFactors())
	require.NoError(t, err)
	reg, err := scenario.NewRegistry(scenario.ReferenceDefaults(), false)
	require.NoError(t, err)
	tables, err := m.BuildAll(reg.All())
	require.NoError(t, err)

	r := NewReport(uuid.New(), m.Profile(), m.Factors())
	r.AddTables(tables)
	r.Comparison, err = aggregate.Compare(r.Summaries, "baseline")
	require.NoError(t, err)

	res, err := sweep.Run(context.Background(), sweep.Request{
		SleepFractions:  []float64{0, 0.3},
		RenewableShares: []float64{0, 0.3, 1},
		Profile:         m.Profile(),
		Factors:         m.Factors(),
	})
	require.NoError(t, err)
	r.Sweep = NewSweepReport(res, 0.3, 0.3)
	return r
}

func readCSV(t *testing.T, data []byte) [][]string {
	t.Helper()
	rows, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	return rows
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"json", FormatJSON, false},
		{" CSV ", FormatCSV, false},
		{"xlsx", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrUnknownFormat))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTable("pivot")
	assert.True(t, errors.Is(err, ErrUnknownTable))
	tbl, err := ParseTable("Summary")
	require.NoError(t, err)
	assert.Equal(t, TableSummary, tbl)
}

func TestWrite_CSVShapes(t *testing.T) {
	r := referenceReport(t)

	tests := []struct {
		table  Table
		header []string
		rows   int
	}{
		{TableAnnual, annualHeader, 5 * 11},
		{TableCumulative, cumulativeHeader, 5 * 11},
		{TableSummary, summaryHeader, 5},
		{TableComparison, comparisonHeader, 5},
		{TableSweep, sweepHeader, 2 * 3},
	}

	for _, tt := range tests {
		t.Run(string(tt.table), func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Write(&buf, FormatCSV, tt.table, r))

			rows := readCSV(t, buf.Bytes())
			require.Len(t, rows, tt.rows+1)
			assert.Equal(t, tt.header, rows[0])
			for _, row := range rows[1:] {
				assert.Len(t, row, len(tt.header))
			}
		})
	}
}

func TestWrite_CSVValues(t *testing.T) {
	r := referenceReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, TableAnnual, r))
	rows := readCSV(t, buf.Bytes())

	// Records are ordered by scenario then year; "baseline" sorts first.
	first := rows[1]
	assert.Equal(t, "0", first[0])
	assert.Equal(t, "baseline", first[5])
	want := []float64{16500, 24090, 0, 40590}
	for i, w := range want {
		got, err := strconv.ParseFloat(first[i+1], 64)
		require.NoError(t, err)
		assert.InDelta(t, w, got, 1e-6, annualHeader[i+1])
	}

	buf.Reset()
	require.NoError(t, Write(&buf, FormatCSV, TableSummary, r))
	rows = readCSV(t, buf.Bytes())
	total, err := strconv.ParseFloat(rows[1][4], 64)
	require.NoError(t, err)
	assert.Equal(t, "baseline", rows[1][0])
	assert.InDelta(t, 282090.0, total, 1e-6)
}

func TestWrite_CSVNotApplicable(t *testing.T) {
	r := &Report{
		Comparison: []aggregate.Comparison{
			{Scenario: "baseline"},
			{Scenario: "other", LifetimeTotalKgCO2: 2, SavingsKgCO2: -2},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, TableComparison, r))
	rows := readCSV(t, buf.Bytes())
	require.Len(t, rows, 3)
	assert.Equal(t, NotApplicable, rows[1][3])
	assert.Equal(t, []string{"other", "2", "-2", NotApplicable}, rows[2])
}

func TestWrite_CSVEmptySweep(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatCSV, TableSweep, &Report{}))
	assert.Equal(t, strings.Join(sweepHeader, ",")+"\n", buf.String())
}

func TestWrite_JSON(t *testing.T) {
	r := referenceReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, TableAll, r))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	for _, key := range []string{"run_id", "generated_at", "profile", "factors", "scenarios", "annual", "cumulative", "summaries", "comparison", "sweep"} {
		assert.Contains(t, decoded, key)
	}

	var sweepSection struct {
		BaselineKgCO2 float64        `json:"baseline_kgco2"`
		Grid          [][]sweep.Cell `json:"grid"`
		AtDefaults    *sweep.Cell    `json:"at_defaults"`
	}
	require.NoError(t, json.Unmarshal(decoded["sweep"], &sweepSection))
	assert.InDelta(t, 282090.0, sweepSection.BaselineKgCO2, 1e-6)
	require.Len(t, sweepSection.Grid, 2)
	require.NotNil(t, sweepSection.AtDefaults)
	assert.Equal(t, 0.3, sweepSection.AtDefaults.SleepFraction)

	var runID string
	require.NoError(t, json.Unmarshal(decoded["run_id"], &runID))
	assert.Equal(t, r.RunID.String(), runID)
}

func TestWrite_JSONSingleTable(t *testing.T) {
	r := referenceReport(t)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, FormatJSON, TableSummary, r))

	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Contains(t, decoded, "summaries")
	assert.Contains(t, decoded, "run_id")
	assert.NotContains(t, decoded, "annual")
	assert.NotContains(t, decoded, "sweep")

	buf.Reset()
	require.NoError(t, Write(&buf, FormatJSON, TableComparison, &Report{Comparison: []aggregate.Comparison{{Scenario: "baseline"}}}))
	var wrapper struct {
		Comparison []aggregate.Comparison `json:"comparison"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &wrapper))
	require.Len(t, wrapper.Comparison, 1)
	assert.Nil(t, wrapper.Comparison[0].SavingsPct)
	assert.Contains(t, buf.String(), `"savings_pct": null`)
}

func TestWrite_Errors(t *testing.T) {
	r := &Report{}

	err := Write(&bytes.Buffer{}, FormatCSV, TableAll, r)
	assert.True(t, errors.Is(err, ErrUnsupported))

	err = Write(&bytes.Buffer{}, Format("yaml"), TableSummary, r)
	assert.True(t, errors.Is(err, ErrUnknownFormat))

	err = Write(&bytes.Buffer{}, FormatJSON, Table("pivot"), r)
	assert.True(t, errors.Is(err, ErrUnknownTable))
}
