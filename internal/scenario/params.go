// Package scenario builds per-year emission tables for one parameter set and
// keeps the registry of named scenarios.
package scenario

import (
	"errors"
	"fmt"

	"github.com/rshade/lca-carbon/internal/carbon"
)

var (
	// ErrUnknownScenario is returned when a scenario name is not registered.
	ErrUnknownScenario = errors.New("unknown scenario")

	// ErrDuplicateScenario is returned when two scenarios share a name.
	ErrDuplicateScenario = errors.New("duplicate scenario")

	// ErrUnnamedScenario is returned when a scenario has an empty name.
	ErrUnnamedScenario = errors.New("scenario name is required")
)

// Params is one scenario parameter set. It is a value object; the name is
// unique within a run.
type Params struct {
	Kind                Kind    `json:"kind"`
	Name                string  `json:"name"`
	SleepFraction       float64 `json:"sleep_fraction"`
	RenewableShare      float64 `json:"renewable_share"`
	ManufacturingSpread bool    `json:"manufacturing_spread"`
}

// Custom returns a KindCustom parameter set.
func Custom(name string, sleepFraction, renewableShare float64, spread bool) Params {
	return Params{
		Kind:                KindCustom,
		Name:                name,
		SleepFraction:       sleepFraction,
		RenewableShare:      renewableShare,
		ManufacturingSpread: spread,
	}
}

// Validate checks the name and that both fractions lie in [0, 1].
func (p Params) Validate() error {
	if p.Name == "" {
		return ErrUnnamedScenario
	}
	if err := carbon.ValidateFraction("sleep_fraction", p.SleepFraction); err != nil {
		return err
	}
	return carbon.ValidateFraction("renewable_share", p.RenewableShare)
}

// Clamped returns p with both fractions clamped to [0, 1] and whether any of
// them changed.
func (p Params) Clamped() (Params, bool) {
	sleep, sleepChanged := carbon.ClampFraction(p.SleepFraction)
	renewable, renewableChanged := carbon.ClampFraction(p.RenewableShare)
	p.SleepFraction = sleep
	p.RenewableShare = renewable
	return p, sleepChanged || renewableChanged
}

// Allocation returns the manufacturing allocation policy of the scenario.
func (p Params) Allocation() carbon.ManufacturingAllocation {
	return carbon.ManufacturingAllocation{Spread: p.ManufacturingSpread}
}

func (p Params) String() string {
	return fmt.Sprintf("%s(sleep=%.2f, renewable=%.2f, manufacturing=%s)",
		p.Name, p.SleepFraction, p.RenewableShare, p.Allocation())
}
