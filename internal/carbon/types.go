package carbon

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidFraction is returned when a sleep fraction or renewable share
	// lies outside [0, 1] or is not a number.
	ErrInvalidFraction = errors.New("fraction out of range [0, 1]")

	// ErrInvalidProfile is returned when an equipment profile describes a
	// physically meaningless piece of equipment.
	ErrInvalidProfile = errors.New("invalid equipment profile")

	// ErrInvalidFactor is returned when an emission factor is negative or not finite.
	ErrInvalidFactor = errors.New("invalid emission factor")
)

// EmissionFactors holds the carbon intensities used for one run, in kg CO2 per kWh.
type EmissionFactors struct {
	// Grid is the intensity of grid electricity. Manufacturing energy is
	// always converted at this factor.
	Grid float64 `json:"grid_kgco2_per_kwh"`

	// Renewable is the life cycle intensity of renewable electricity.
	Renewable float64 `json:"renewable_kgco2_per_kwh"`

	// Recycling is the intensity of end-of-life processing energy.
	Recycling float64 `json:"recycling_kgco2_per_kwh"`
}

// EquipmentProfile defines the physical quantities of the equipment for its
// whole lifetime.
type EquipmentProfile struct {
	// LifetimeYears is the operational lifetime. Tables cover years 0..LifetimeYears.
	LifetimeYears int `json:"lifetime_years"`

	// ManufacturingEnergyKWh is the one-time manufacturing energy.
	ManufacturingEnergyKWh float64 `json:"manufacturing_energy_kwh"`

	// EOLEnergyKWh is the one-time end-of-life processing energy.
	EOLEnergyKWh float64 `json:"eol_energy_kwh"`

	// BasePowerKW is the average operational power draw without sleep mode.
	BasePowerKW float64 `json:"base_power_kw"`
}

// ReferenceProfile returns the profile of the reference equipment.
func ReferenceProfile() EquipmentProfile {
	return EquipmentProfile{
		LifetimeYears:          ReferenceLifetimeYears,
		ManufacturingEnergyKWh: ReferenceManufacturingEnergyKWh,
		EOLEnergyKWh:           ReferenceEOLEnergyKWh,
		BasePowerKW:            ReferenceBasePowerKW,
	}
}

// ReferenceFactors returns the reference grid, renewable and recycling factors.
func ReferenceFactors() EmissionFactors {
	return EmissionFactors{
		Grid:      GridEmissionFactor,
		Renewable: RenewableEmissionFactor,
		Recycling: RecyclingEmissionFactor,
	}
}

// Validate reports whether the profile can be used to build emission tables.
// The lifetime must be at least one year because spread manufacturing is
// divided by it.
func (p EquipmentProfile) Validate() error {
	if p.LifetimeYears < 1 {
		return fmt.Errorf("%w: lifetime_years must be >= 1, got %d", ErrInvalidProfile, p.LifetimeYears)
	}
	quantities := []struct {
		name  string
		value float64
	}{
		{"manufacturing_energy_kwh", p.ManufacturingEnergyKWh},
		{"eol_energy_kwh", p.EOLEnergyKWh},
		{"base_power_kw", p.BasePowerKW},
	}
	for _, q := range quantities {
		if !nonNegative(q.value) {
			return fmt.Errorf("%w: %s must be a finite value >= 0, got %v", ErrInvalidProfile, q.name, q.value)
		}
	}
	return nil
}

// Validate reports whether every factor is finite and non-negative.
func (f EmissionFactors) Validate() error {
	factors := []struct {
		name  string
		value float64
	}{
		{"grid", f.Grid},
		{"renewable", f.Renewable},
		{"recycling", f.Recycling},
	}
	for _, ef := range factors {
		if !nonNegative(ef.value) {
			return fmt.Errorf("%w: %s must be a finite value >= 0, got %v", ErrInvalidFactor, ef.name, ef.value)
		}
	}
	return nil
}

// AnnualOperationalEnergyKWh returns the energy drawn in one year of operation
// with the given sleep-mode reduction applied.
func (p EquipmentProfile) AnnualOperationalEnergyKWh(sleepFraction float64) float64 {
	return p.BasePowerKW * HoursPerYear * (1.0 - sleepFraction)
}

// Years returns the number of yearly records in a table for this profile.
func (p EquipmentProfile) Years() int {
	return p.LifetimeYears + 1
}

func nonNegative(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
