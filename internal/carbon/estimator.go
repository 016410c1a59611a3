package carbon

// EmissionsFromEnergy converts an amount of energy into kg CO2 using the given
// emission factor (kg CO2 per kWh).
func EmissionsFromEnergy(energyKWh, emissionFactor float64) float64 {
	return energyKWh * emissionFactor
}

// Operational returns the effective emission factor of operational energy
// when renewableShare of it comes from renewables and the rest from the grid.
//
// The blend is linear:
//
//	ef = renewableShare × Renewable + (1 − renewableShare) × Grid
func (f EmissionFactors) Operational(renewableShare float64) float64 {
	return renewableShare*f.Renewable + (1.0-renewableShare)*f.Grid
}

// AnnualOperationalKgCO2 returns the emissions of one year of operation. The
// value is the same for every year of the lifetime; sleep and renewable policy
// do not ramp up.
func AnnualOperationalKgCO2(p EquipmentProfile, f EmissionFactors, sleepFraction, renewableShare float64) float64 {
	return EmissionsFromEnergy(p.AnnualOperationalEnergyKWh(sleepFraction), f.Operational(renewableShare))
}

// EndOfLifeKgCO2 returns the end-of-life emissions booked in the given year.
// The whole recycling energy is assigned to the final year of the lifetime.
func EndOfLifeKgCO2(year int, p EquipmentProfile, f EmissionFactors) float64 {
	if year != p.LifetimeYears {
		return 0
	}
	return EmissionsFromEnergy(p.EOLEnergyKWh, f.Recycling)
}
