// Package metrics exposes model results as Prometheus gauges.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rshade/lca-carbon/internal/aggregate"
	"github.com/rshade/lca-carbon/internal/sweep"
)

const namespace = "lca"

// Lifecycle phases used as the phase label.
const (
	PhaseManufacturing = "manufacturing"
	PhaseOperational   = "operational"
	PhaseEOL           = "eol"
	PhaseTotal         = "total"
)

// Collector owns a registry with the model gauges. It does not use the
// global Prometheus registry.
type Collector struct {
	registry *prometheus.Registry

	lifetime *prometheus.GaugeVec
	savings  *prometheus.GaugeVec
	sweepPct *prometheus.GaugeVec
	baseline prometheus.Gauge
}

// NewCollector returns a Collector with every gauge registered.
func NewCollector() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		lifetime: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "lifetime_emissions_kgco2",
				Help:      "Lifetime emissions of a scenario by lifecycle phase, in kg CO2.",
			},
			[]string{"scenario", "phase"},
		),
		savings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "scenario_savings_kgco2",
				Help:      "Lifetime savings of a scenario against the baseline, in kg CO2.",
			},
			[]string{"scenario"},
		),
		sweepPct: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "sweep_savings_pct",
				Help:      "Lifetime savings against the baseline for a sweep grid point, in percent.",
			},
			[]string{"sleep_fraction", "renewable_share"},
		),
		baseline: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "baseline_lifetime_kgco2",
				Help:      "Lifetime emissions of the sweep baseline, in kg CO2.",
			},
		),
	}
	c.registry.MustRegister(c.lifetime, c.savings, c.sweepPct, c.baseline)
	return c
}

// Registry returns the registry holding the gauges.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// ObserveSummaries sets the lifetime gauges of every scenario.
func (c *Collector) ObserveSummaries(summaries []aggregate.LifetimeSummary) {
	for _, s := range summaries {
		c.lifetime.WithLabelValues(s.Scenario, PhaseManufacturing).Set(s.ManufacturingKgCO2)
		c.lifetime.WithLabelValues(s.Scenario, PhaseOperational).Set(s.OperationalKgCO2)
		c.lifetime.WithLabelValues(s.Scenario, PhaseEOL).Set(s.EOLKgCO2)
		c.lifetime.WithLabelValues(s.Scenario, PhaseTotal).Set(s.TotalKgCO2)
	}
}

// ObserveComparison sets the savings gauge of every scenario.
func (c *Collector) ObserveComparison(comparisons []aggregate.Comparison) {
	for _, cmp := range comparisons {
		c.savings.WithLabelValues(cmp.Scenario).Set(cmp.SavingsKgCO2)
	}
}

// ObserveSweep sets the baseline gauge and one savings gauge per grid point.
// Points without a savings percentage are skipped.
func (c *Collector) ObserveSweep(res *sweep.Result) {
	c.baseline.Set(res.BaselineKgCO2)
	for _, cell := range res.Cells() {
		if cell.SavingsPct == nil {
			continue
		}
		c.sweepPct.WithLabelValues(label(cell.SleepFraction), label(cell.RenewableShare)).Set(*cell.SavingsPct)
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

func label(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
