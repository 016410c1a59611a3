// Package config loads the model configuration. Values are layered in
// increasing precedence: embedded defaults, the YAML file, LCA_* environment
// variables, then explicit key=value overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rshade/lca-carbon/internal/carbon"
	"github.com/rshade/lca-carbon/internal/scenario"
	"github.com/rshade/lca-carbon/internal/sweep"
	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var rawDefaults []byte

var (
	defaultsOnce sync.Once
	defaults     Config
	defaultsErr  error
)

// MaxSweepCount bounds the number of points in each sweep dimension.
const MaxSweepCount = 1001

// ErrInvalidConfig is returned when the configuration cannot be parsed or
// describes a non-physical model.
var ErrInvalidConfig = errors.New("invalid configuration")

// Range is an evenly spaced grid from Start to Stop with Count points.
type Range struct {
	Start float64 `yaml:"start" mapstructure:"start"`
	Stop  float64 `yaml:"stop" mapstructure:"stop"`
	Count int     `yaml:"count" mapstructure:"count"`
}

// Values returns the grid points of the range.
func (r Range) Values() []float64 {
	return sweep.Linspace(r.Start, r.Stop, r.Count)
}

// SweepConfig holds the two sweep dimensions.
type SweepConfig struct {
	SleepFractions  Range `yaml:"sleep_fractions" mapstructure:"sleep_fractions"`
	RenewableShares Range `yaml:"renewable_shares" mapstructure:"renewable_shares"`
}

// CustomScenario is a user-defined scenario. ManufacturingSpread falls back
// to the global setting when unset.
type CustomScenario struct {
	Name                string  `yaml:"name" mapstructure:"name"`
	SleepFraction       float64 `yaml:"sleep_fraction" mapstructure:"sleep_fraction"`
	RenewableShare      float64 `yaml:"renewable_share" mapstructure:"renewable_share"`
	ManufacturingSpread *bool   `yaml:"manufacturing_spread,omitempty" mapstructure:"manufacturing_spread"`
}

// Config is the full model configuration.
type Config struct {
	LifetimeYears          int     `yaml:"lifetime_years" mapstructure:"lifetime_years"`
	ManufacturingEnergyKWh float64 `yaml:"manufacturing_energy_kwh" mapstructure:"manufacturing_energy_kwh"`
	EOLEnergyKWh           float64 `yaml:"eol_energy_kwh" mapstructure:"eol_energy_kwh"`
	BasePowerKW            float64 `yaml:"base_power_kw" mapstructure:"base_power_kw"`

	// GridFactor is ignored when GridRegion names a known region.
	GridFactor      float64 `yaml:"grid_factor" mapstructure:"grid_factor"`
	GridRegion      string  `yaml:"grid_region" mapstructure:"grid_region"`
	RenewableFactor float64 `yaml:"renewable_factor" mapstructure:"renewable_factor"`
	RecyclingFactor float64 `yaml:"recycling_factor" mapstructure:"recycling_factor"`

	DefaultSleepReduction   float64 `yaml:"default_sleep_reduction" mapstructure:"default_sleep_reduction"`
	DefaultPartialRenewable float64 `yaml:"default_partial_renewable" mapstructure:"default_partial_renewable"`

	ManufacturingSpread bool `yaml:"manufacturing_spread" mapstructure:"manufacturing_spread"`
	ClampFractions      bool `yaml:"clamp_fractions" mapstructure:"clamp_fractions"`

	Sweep           SweepConfig      `yaml:"sweep" mapstructure:"sweep"`
	CustomScenarios []CustomScenario `yaml:"custom_scenarios" mapstructure:"custom_scenarios"`
}

// Default returns the embedded reference configuration.
func Default() Config {
	defaultsOnce.Do(func() {
		defaultsErr = yaml.Unmarshal(rawDefaults, &defaults)
	})
	if defaultsErr != nil {
		// The embedded file is part of the binary; failing to parse it is a
		// build defect.
		panic(fmt.Sprintf("config: parse embedded defaults: %v", defaultsErr))
	}
	cfg := defaults
	cfg.CustomScenarios = append([]CustomScenario(nil), defaults.CustomScenarios...)
	return cfg
}

// Profile returns the equipment profile.
func (c Config) Profile() carbon.EquipmentProfile {
	return carbon.EquipmentProfile{
		LifetimeYears:          c.LifetimeYears,
		ManufacturingEnergyKWh: c.ManufacturingEnergyKWh,
		EOLEnergyKWh:           c.EOLEnergyKWh,
		BasePowerKW:            c.BasePowerKW,
	}
}

// Factors returns the emission factors. A non-empty GridRegion replaces
// GridFactor with the region's preset.
func (c Config) Factors() (carbon.EmissionFactors, error) {
	grid := c.GridFactor
	if c.GridRegion != "" {
		f, ok := carbon.GetGridFactor(c.GridRegion)
		if !ok {
			return carbon.EmissionFactors{}, fmt.Errorf("%w: unknown grid_region %q (known: %s)",
				ErrInvalidConfig, c.GridRegion, strings.Join(carbon.GridRegions(), ", "))
		}
		grid = f
	}
	return carbon.EmissionFactors{
		Grid:      grid,
		Renewable: c.RenewableFactor,
		Recycling: c.RecyclingFactor,
	}, nil
}

// ScenarioDefaults returns the fractions of the built-in scenarios.
func (c Config) ScenarioDefaults() scenario.Defaults {
	return scenario.Defaults{
		SleepReduction:   c.DefaultSleepReduction,
		PartialRenewable: c.DefaultPartialRenewable,
	}
}

// Registry returns the built-in scenarios plus the configured custom ones.
func (c Config) Registry() (*scenario.Registry, error) {
	custom := make([]scenario.Params, len(c.CustomScenarios))
	for i, cs := range c.CustomScenarios {
		spread := c.ManufacturingSpread
		if cs.ManufacturingSpread != nil {
			spread = *cs.ManufacturingSpread
		}
		custom[i] = scenario.Custom(cs.Name, cs.SleepFraction, cs.RenewableShare, spread)
	}
	return scenario.NewRegistry(c.ScenarioDefaults(), c.ManufacturingSpread, custom...)
}

// ModelOptions returns the scenario model options implied by the config.
func (c Config) ModelOptions() []scenario.ModelOption {
	return []scenario.ModelOption{scenario.WithClampFractions(c.ClampFractions)}
}

// SweepRequest returns a sweep over the configured grids.
func (c Config) SweepRequest() (sweep.Request, error) {
	factors, err := c.Factors()
	if err != nil {
		return sweep.Request{}, err
	}
	return sweep.Request{
		SleepFractions:      c.Sweep.SleepFractions.Values(),
		RenewableShares:     c.Sweep.RenewableShares.Values(),
		Profile:             c.Profile(),
		Factors:             factors,
		ManufacturingSpread: c.ManufacturingSpread,
	}, nil
}

// Validate checks that the configuration describes a physical model. Every
// error wraps ErrInvalidConfig. Custom scenario fractions are checked when
// the scenario is built, not here.
func (c Config) Validate() error {
	if err := c.Profile().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	factors, err := c.Factors()
	if err != nil {
		return err
	}
	if err := factors.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	fractions := []struct {
		name  string
		value float64
	}{
		{"default_sleep_reduction", c.DefaultSleepReduction},
		{"default_partial_renewable", c.DefaultPartialRenewable},
		{"sweep.sleep_fractions.start", c.Sweep.SleepFractions.Start},
		{"sweep.sleep_fractions.stop", c.Sweep.SleepFractions.Stop},
		{"sweep.renewable_shares.start", c.Sweep.RenewableShares.Start},
		{"sweep.renewable_shares.stop", c.Sweep.RenewableShares.Stop},
	}
	for _, f := range fractions {
		if err := carbon.ValidateFraction(f.name, f.value); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	counts := []struct {
		name  string
		value int
	}{
		{"sweep.sleep_fractions.count", c.Sweep.SleepFractions.Count},
		{"sweep.renewable_shares.count", c.Sweep.RenewableShares.Count},
	}
	for _, n := range counts {
		if n.value < 1 || n.value > MaxSweepCount {
			return fmt.Errorf("%w: %s must be in [1, %d], got %d", ErrInvalidConfig, n.name, MaxSweepCount, n.value)
		}
	}

	for i, cs := range c.CustomScenarios {
		if cs.Name == "" {
			return fmt.Errorf("%w: custom_scenarios[%d]: name is required", ErrInvalidConfig, i)
		}
	}
	return nil
}
