// Package sweep evaluates the lifetime savings of every (sleep fraction,
// renewable share) pair of a grid against the (0, 0) baseline.
package sweep

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/carbon"
	"github.com/rshade/lca-carbon/internal/scenario"
)

// ErrEmptyGrid is returned when either sweep dimension has no values.
var ErrEmptyGrid = errors.New("sweep grid is empty")

// Request describes one sweep.
type Request struct {
	SleepFractions      []float64
	RenewableShares     []float64
	Profile             carbon.EquipmentProfile
	Factors             carbon.EmissionFactors
	ManufacturingSpread bool
}

// Cell is the result for one grid point.
type Cell struct {
	SleepFraction      float64 `json:"sleep_fraction"`
	RenewableShare     float64 `json:"renewable_share"`
	LifetimeTotalKgCO2 float64 `json:"lifetime_total_kgco2"`
	SavingsAbsKgCO2    float64 `json:"savings_abs_kgco2"`
	// SavingsPct is nil when the baseline lifetime total is zero.
	SavingsPct *float64 `json:"savings_pct"`
}

// Result holds the sweep grid. Grid[i][j] is the cell for SleepFractions[i]
// and RenewableShares[j].
type Result struct {
	SleepFractions  []float64 `json:"sleep_fractions"`
	RenewableShares []float64 `json:"renewable_shares"`
	BaselineKgCO2   float64   `json:"baseline_kgco2"`
	Grid            [][]Cell  `json:"grid"`
}

// At returns the cell nearest to the given sleep fraction and renewable share.
func (r *Result) At(sleepFraction, renewableShare float64) (Cell, bool) {
	i := Nearest(r.SleepFractions, sleepFraction)
	j := Nearest(r.RenewableShares, renewableShare)
	if i < 0 || j < 0 {
		return Cell{}, false
	}
	return r.Grid[i][j], true
}

// Cells returns every cell in row-major order.
func (r *Result) Cells() []Cell {
	out := make([]Cell, 0, len(r.SleepFractions)*len(r.RenewableShares))
	for _, row := range r.Grid {
		out = append(out, row...)
	}
	return out
}

type options struct {
	concurrency int
	logger      zerolog.Logger
}

// Option configures Run.
type Option func(*options)

// WithConcurrency limits the number of rows evaluated at once. Values below
// one evaluate rows sequentially.
func WithConcurrency(n int) Option {
	return func(o *options) {
		o.concurrency = n
	}
}

// WithLogger sets the logger used for progress.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Run evaluates every grid cell. Both grids must be non-empty and contain
// only fractions in [0, 1]. The result does not depend on the concurrency.
func Run(ctx context.Context, req Request, opts ...Option) (*Result, error) {
	o := options{
		concurrency: runtime.GOMAXPROCS(0),
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.concurrency < 1 {
		o.concurrency = 1
	}

	if err := validate(req); err != nil {
		return nil, err
	}

	model, err := scenario.NewModel(req.Profile, req.Factors)
	if err != nil {
		return nil, err
	}

	baseline, err := model.LifetimeTotals(scenario.Params{
		Kind:                scenario.KindBaseline,
		Name:                scenario.KindBaseline.String(),
		ManufacturingSpread: req.ManufacturingSpread,
	})
	if err != nil {
		return nil, err
	}

	res := &Result{
		SleepFractions:  append([]float64(nil), req.SleepFractions...),
		RenewableShares: append([]float64(nil), req.RenewableShares...),
		BaselineKgCO2:   baseline.TotalKgCO2,
		Grid:            make([][]Cell, len(req.SleepFractions)),
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)
	for i, sleep := range res.SleepFractions {
		i, sleep := i, sleep
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			row, err := evaluateRow(model, res, sleep, req.ManufacturingSpread)
			if err != nil {
				return err
			}
			res.Grid[i] = row
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	o.logger.Debug().
		Int("rows", len(res.SleepFractions)).
		Int("cols", len(res.RenewableShares)).
		Float64("baseline_kgco2", res.BaselineKgCO2).
		Msg("sweep complete")

	return res, nil
}

func evaluateRow(model *scenario.Model, res *Result, sleep float64, spread bool) ([]Cell, error) {
	row := make([]Cell, len(res.RenewableShares))
	for j, renewable := range res.RenewableShares {
		totals, err := model.LifetimeTotals(scenario.Custom("sweep", sleep, renewable, spread))
		if err != nil {
			return nil, err
		}
		abs, pct := aggregate.SavingsPct(res.BaselineKgCO2, totals.TotalKgCO2)
		row[j] = Cell{
			SleepFraction:      sleep,
			RenewableShare:     renewable,
			LifetimeTotalKgCO2: totals.TotalKgCO2,
			SavingsAbsKgCO2:    abs,
			SavingsPct:         pct,
		}
	}
	return row, nil
}

func validate(req Request) error {
	if len(req.SleepFractions) == 0 {
		return fmt.Errorf("%w: no sleep fractions", ErrEmptyGrid)
	}
	if len(req.RenewableShares) == 0 {
		return fmt.Errorf("%w: no renewable shares", ErrEmptyGrid)
	}
	for _, v := range req.SleepFractions {
		if err := carbon.ValidateFraction("sleep_fraction", v); err != nil {
			return err
		}
	}
	for _, v := range req.RenewableShares {
		if err := carbon.ValidateFraction("renewable_share", v); err != nil {
			return err
		}
	}
	return nil
}
