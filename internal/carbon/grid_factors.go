package carbon

import (
	"sort"
	"strings"
)

// GridEmissionFactors maps grid region codes to grid carbon intensity.
// Values are in kg CO2eq per kWh.
//
// Source: Cloud Carbon Footprint methodology
// Data vintage: 2024
// Reference: https://www.cloudcarbonfootprint.org/docs/methodology
var GridEmissionFactors = map[string]float64{
	"us-east-1":      0.379,  // Virginia (SERC)
	"us-east-2":      0.411,  // Ohio (RFC)
	"us-west-1":      0.322,  // N. California (WECC)
	"us-west-2":      0.322,  // Oregon (WECC)
	"ca-central-1":   0.12,   // Canada
	"eu-west-1":      0.2786, // Ireland
	"eu-north-1":     0.0088, // Sweden (very low carbon)
	"ap-southeast-1": 0.408,  // Singapore
	"ap-southeast-2": 0.79,   // Sydney
	"ap-northeast-1": 0.506,  // Tokyo
	"ap-south-1":     0.708,  // Mumbai
	"sa-east-1":      0.0617, // São Paulo (very low carbon)
	"reference":      GridEmissionFactor,
}

// GetGridFactor returns the grid emission factor for the given region code in
// kg CO2 per kWh. Lookup is case-insensitive. The boolean is false when the
// region is not listed in GridEmissionFactors.
func GetGridFactor(region string) (float64, bool) {
	factor, ok := GridEmissionFactors[strings.ToLower(strings.TrimSpace(region))]
	return factor, ok
}

// GridRegions returns the known region codes in sorted order.
func GridRegions() []string {
	regions := make([]string, 0, len(GridEmissionFactors))
	for region := range GridEmissionFactors {
		regions = append(regions, region)
	}
	sort.Strings(regions)
	return regions
}
