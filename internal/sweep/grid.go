package sweep

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Linspace returns n evenly spaced values from start to stop inclusive.
// It returns nil for n <= 0 and [start] for n == 1.
func Linspace(start, stop float64, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n == 1:
		return []float64{start}
	}
	return floats.Span(make([]float64, n), start, stop)
}

// DefaultSleepGrid returns 17 sleep fractions from 0 to 0.8 in steps of 0.05.
func DefaultSleepGrid() []float64 {
	return Linspace(0, 0.8, 17)
}

// DefaultRenewableGrid returns 11 renewable shares from 0 to 1 in steps of 0.1.
func DefaultRenewableGrid() []float64 {
	return Linspace(0, 1, 11)
}

// Nearest returns the index of the grid value closest to target. Ties go to
// the first occurrence. An empty grid returns -1.
func Nearest(grid []float64, target float64) int {
	best := -1
	bestDist := math.Inf(1)
	for i, v := range grid {
		if d := math.Abs(v - target); d < bestDist {
			best, bestDist = i, d
		}
	}
	return best
}
