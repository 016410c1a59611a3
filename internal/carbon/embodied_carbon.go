package carbon

import "fmt"

// ManufacturingAllocation decides in which years the one-time manufacturing
// (embodied) emissions are booked.
//
// Manufacturing energy is always grid sourced, so it is converted at the grid
// factor regardless of the renewable share of a scenario.
type ManufacturingAllocation struct {
	// Spread amortizes manufacturing over the lifetime: every year, including
	// year 0, receives ManufacturingEnergyKWh / LifetimeYears. When false the
	// whole amount is booked in year 0.
	Spread bool
}

// ForYear returns the manufacturing emissions in kg CO2 booked in the given year.
func (a ManufacturingAllocation) ForYear(year int, p EquipmentProfile, f EmissionFactors) float64 {
	if a.Spread {
		return EmissionsFromEnergy(p.ManufacturingEnergyKWh/float64(p.LifetimeYears), f.Grid)
	}
	if year == 0 {
		return EmissionsFromEnergy(p.ManufacturingEnergyKWh, f.Grid)
	}
	return 0
}

// LifetimeTotal returns the sum of ForYear over years 0..LifetimeYears
// without building the yearly series.
//
// With Spread the amortized share is booked in LifetimeYears+1 years, so the
// total is (LifetimeYears+1)/LifetimeYears of the year-0 amount.
func (a ManufacturingAllocation) LifetimeTotal(p EquipmentProfile, f EmissionFactors) float64 {
	if a.Spread {
		return a.ForYear(0, p, f) * float64(p.Years())
	}
	return a.ForYear(0, p, f)
}

// String returns a human-readable description of the allocation policy.
func (a ManufacturingAllocation) String() string {
	if a.Spread {
		return "spread"
	}
	return "year-0"
}

// Describe explains how the manufacturing emissions of p are booked.
func (a ManufacturingAllocation) Describe(p EquipmentProfile, f EmissionFactors) string {
	if a.Spread {
		return fmt.Sprintf("Manufacturing: %.0f kWh / %d years at %.3f kgCO2/kWh = %.2f kgCO2 in each of years 0..%d",
			p.ManufacturingEnergyKWh, p.LifetimeYears, f.Grid, a.ForYear(0, p, f), p.LifetimeYears)
	}
	return fmt.Sprintf("Manufacturing: %.0f kWh at %.3f kgCO2/kWh = %.2f kgCO2 in year 0",
		p.ManufacturingEnergyKWh, f.Grid, a.ForYear(0, p, f))
}
