package scenario

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/rshade/lca-carbon/internal/carbon"
)

// YearRecord is the emissions breakdown of one scenario in one year, in kg CO2.
// TotalKgCO2 is always the sum of the three components.
type YearRecord struct {
	Year               int     `json:"year"`
	ManufacturingKgCO2 float64 `json:"manufacturing_kgco2"`
	OperationalKgCO2   float64 `json:"operational_kgco2"`
	EOLKgCO2           float64 `json:"eol_kgco2"`
	TotalKgCO2         float64 `json:"total_kgco2"`
	Scenario           string  `json:"scenario"`
}

func newYearRecord(scenario string, year int, manufacturing, operational, eol float64) YearRecord {
	return YearRecord{
		Year:               year,
		ManufacturingKgCO2: manufacturing,
		OperationalKgCO2:   operational,
		EOLKgCO2:           eol,
		TotalKgCO2:         manufacturing + operational + eol,
		Scenario:           scenario,
	}
}

// Table holds one record per year 0..LifetimeYears for one scenario, in
// strictly increasing year order.
type Table struct {
	Params  Params       `json:"params"`
	Records []YearRecord `json:"records"`
}

// Name returns the scenario name of the table.
func (t Table) Name() string {
	return t.Params.Name
}

// Totals is the lifetime emissions of one scenario, in kg CO2.
type Totals struct {
	ManufacturingKgCO2 float64 `json:"manufacturing_kgco2"`
	OperationalKgCO2   float64 `json:"operational_kgco2"`
	EOLKgCO2           float64 `json:"eol_kgco2"`
	TotalKgCO2         float64 `json:"total_kgco2"`
}

// Model evaluates scenarios for one equipment profile and one set of
// emission factors. A Model holds no mutable state and is safe for
// concurrent use.
type Model struct {
	profile        carbon.EquipmentProfile
	factors        carbon.EmissionFactors
	clampFractions bool
	logger         zerolog.Logger
}

// ModelOption configures a Model.
type ModelOption func(*Model)

// WithClampFractions makes the model clamp out-of-range fractions to [0, 1]
// with a warning instead of rejecting the scenario.
func WithClampFractions(clamp bool) ModelOption {
	return func(m *Model) {
		m.clampFractions = clamp
	}
}

// WithLogger sets the logger used for warnings.
func WithLogger(logger zerolog.Logger) ModelOption {
	return func(m *Model) {
		m.logger = logger
	}
}

// NewModel validates the profile and factors and returns a Model for them.
func NewModel(profile carbon.EquipmentProfile, factors carbon.EmissionFactors, opts ...ModelOption) (*Model, error) {
	if err := profile.Validate(); err != nil {
		return nil, err
	}
	if err := factors.Validate(); err != nil {
		return nil, err
	}

	m := &Model{
		profile: profile,
		factors: factors,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Profile returns the equipment profile of the model.
func (m *Model) Profile() carbon.EquipmentProfile {
	return m.profile
}

// Factors returns the emission factors of the model.
func (m *Model) Factors() carbon.EmissionFactors {
	return m.factors
}

// BuildTable computes the per-year emissions of one scenario.
//
// For every year y in [0, LifetimeYears]:
//   - manufacturing follows the allocation policy of p, at the grid factor
//   - operational is the annual operational energy after sleep reduction at
//     the blended grid/renewable factor, identical for every year
//   - end-of-life is booked in the final year only
//   - total is the sum of the three
//
// Fractions outside [0, 1] are rejected with carbon.ErrInvalidFraction unless
// the model clamps them.
func (m *Model) BuildTable(p Params) (Table, error) {
	p, err := m.prepare(p)
	if err != nil {
		return Table{}, err
	}

	alloc := p.Allocation()
	operational := carbon.AnnualOperationalKgCO2(m.profile, m.factors, p.SleepFraction, p.RenewableShare)

	records := make([]YearRecord, 0, m.profile.Years())
	for year := 0; year <= m.profile.LifetimeYears; year++ {
		records = append(records, newYearRecord(
			p.Name,
			year,
			alloc.ForYear(year, m.profile, m.factors),
			operational,
			carbon.EndOfLifeKgCO2(year, m.profile, m.factors),
		))
	}

	return Table{Params: p, Records: records}, nil
}

// LifetimeTotals computes the lifetime column sums of a scenario in closed
// form, without building the yearly records. It agrees with summing the
// columns of BuildTable up to floating point rounding.
func (m *Model) LifetimeTotals(p Params) (Totals, error) {
	p, err := m.prepare(p)
	if err != nil {
		return Totals{}, err
	}

	manufacturing := p.Allocation().LifetimeTotal(m.profile, m.factors)
	operational := carbon.AnnualOperationalKgCO2(m.profile, m.factors, p.SleepFraction, p.RenewableShare) *
		float64(m.profile.Years())
	eol := carbon.EndOfLifeKgCO2(m.profile.LifetimeYears, m.profile, m.factors)

	return Totals{
		ManufacturingKgCO2: manufacturing,
		OperationalKgCO2:   operational,
		EOLKgCO2:           eol,
		TotalKgCO2:         manufacturing + operational + eol,
	}, nil
}

// BuildAll builds a table for every parameter set. Each scenario is built
// independently: an invalid scenario is left out of the result and reported
// in the returned error, which joins one error per rejected scenario.
func (m *Model) BuildAll(params []Params) ([]Table, error) {
	tables := make([]Table, 0, len(params))
	var errs []error
	for _, p := range params {
		table, err := m.BuildTable(p)
		if err != nil {
			m.logger.Warn().
				Str("scenario", p.Name).
				Err(err).
				Msg("scenario rejected")
			errs = append(errs, fmt.Errorf("scenario %q: %w", p.Name, err))
			continue
		}
		tables = append(tables, table)
	}
	return tables, errors.Join(errs...)
}

func (m *Model) prepare(p Params) (Params, error) {
	if m.clampFractions {
		clamped, changed := p.Clamped()
		if changed {
			m.logger.Warn().
				Str("scenario", p.Name).
				Float64("sleep_fraction", p.SleepFraction).
				Float64("renewable_share", p.RenewableShare).
				Float64("clamped_sleep_fraction", clamped.SleepFraction).
				Float64("clamped_renewable_share", clamped.RenewableShare).
				Msg("fractions clamped to [0, 1]")
		}
		p = clamped
	}
	if err := p.Validate(); err != nil {
		return Params{}, err
	}
	return p, nil
}
