// Package carbon provides the emission primitives of the equipment life cycle
// assessment: physical constants, emission factors, the equipment profile, and
// the single energy to emissions conversion rule.
package carbon

const (
	// HoursPerYear is the number of operating hours in one (non-leap) year.
	HoursPerYear = 24 * 365

	// ReferenceLifetimeYears is the operational lifetime of the reference equipment.
	ReferenceLifetimeYears = 10

	// ReferenceManufacturingEnergyKWh is the total energy consumed to manufacture
	// one unit of the reference equipment.
	ReferenceManufacturingEnergyKWh = 30000.0

	// ReferenceEOLEnergyKWh is the energy required for end-of-life processing
	// and recycling of the reference equipment.
	ReferenceEOLEnergyKWh = 2000.0

	// ReferenceBasePowerKW is the average operational power draw of the
	// reference equipment.
	ReferenceBasePowerKW = 5.0

	// GridEmissionFactor is the carbon intensity of standard grid electricity
	// in kg CO2 per kWh.
	GridEmissionFactor = 0.55

	// RenewableEmissionFactor is the life cycle carbon intensity of renewable
	// electricity in kg CO2 per kWh.
	RenewableEmissionFactor = 0.05

	// RecyclingEmissionFactor is the carbon intensity of recycling and
	// end-of-life processing energy in kg CO2 per kWh.
	RecyclingEmissionFactor = 0.30

	// DefaultSleepModeReduction is the fractional reduction of operational
	// energy when sleep mode is enabled (30%).
	DefaultSleepModeReduction = 0.30

	// DefaultPartialRenewable is the renewable share used by the mixed-grid
	// scenario (30%).
	DefaultPartialRenewable = 0.30
)
