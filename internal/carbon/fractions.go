package carbon

import (
	"fmt"
	"math"
)

// ValidateFraction checks that v is a number in [0, 1]. The name identifies
// the parameter in the returned error, which wraps ErrInvalidFraction.
func ValidateFraction(name string, v float64) error {
	if math.IsNaN(v) || v < 0 || v > 1 {
		return fmt.Errorf("%w: %s = %v", ErrInvalidFraction, name, v)
	}
	return nil
}

// ClampFraction restricts v to [0, 1] and reports whether it was changed.
// NaN is left untouched so that ValidateFraction still rejects it.
func ClampFraction(v float64) (float64, bool) {
	c := Clamp(v, 0.0, 1.0)
	return c, c != v && !math.IsNaN(v)
}

// Clamp restricts a value to the range [min, max].
func Clamp(v, min, max float64) float64 {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
