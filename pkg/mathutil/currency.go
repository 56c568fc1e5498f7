// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/flipforge/flip-forecast/pkg/constants"
)

// Round rounds a value to two decimals, i.e. to represent real currency.
// Used for making logical comparisons.
func Round(val float64) float64 {
	return math.Round(val*constants.DecimalPrecision) / constants.DecimalPrecision
}

// IsZero checks if a value is effectively zero (within tolerance)
func IsZero(val float64) bool {
	return math.Abs(val) <= constants.CurrencyTolerance
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// Max returns the maximum of two float64 values
func Max(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// FloorZero clamps a value to be non-negative.
func FloorZero(val float64) float64 {
	if val < 0 {
		return 0
	}
	return val
}

// PercentOf applies percentage points to an amount, e.g. PercentOf(200000, 2)
// is 4000. Negative percentage points yield a signed result (a credit).
func PercentOf(amount, percentPoints float64) float64 {
	return amount * percentPoints / constants.PercentageMultiplier
}

// MonthlyRate converts an annual percentage rate to a monthly decimal rate.
func MonthlyRate(annualPercent float64) float64 {
	return annualPercent / constants.PercentageMultiplier / constants.MonthsPerYear
}

// Ratio divides value by divisor, returning exactly 0 when the divisor is
// zero or negative. Degenerate inputs therefore never surface as NaN or Inf.
func Ratio(value, divisor float64) float64 {
	if divisor <= 0 {
		return 0
	}
	return value / divisor
}

// RatioPercent expresses value as a percentage of divisor with the same
// zero-guard as Ratio.
func RatioPercent(value, divisor float64) float64 {
	return Ratio(value, divisor) * constants.PercentageMultiplier
}
