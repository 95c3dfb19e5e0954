// Package mathutil provides common mathematical utility functions.
package mathutil

import (
	"math"

	"github.com/iwvelando/loan-calculator/pkg/constants"
	"github.com/shopspring/decimal"
)

// centPlaces is the number of decimal places in a currency amount.
const centPlaces = 2

// Round rounds a value to two decimals, i.e. to represent real currency.
// Halves round away from zero. NaN and infinities are returned unchanged.
func Round(val float64) float64 {
	return RoundTo(val, centPlaces)
}

// RoundTo rounds a value to the given number of decimal places using the
// shortest decimal representation of val, so 2.675 rounds to 2.68.
// Halves round away from zero. NaN and infinities are returned unchanged.
func RoundTo(val float64, places int) float64 {
	if !IsFinite(val) {
		return val
	}
	return decimal.NewFromFloat(val).Round(int32(places)).InexactFloat64()
}

// IsFinite reports whether a value is neither NaN nor infinite.
func IsFinite(val float64) bool {
	return !math.IsNaN(val) && !math.IsInf(val, 0)
}

// WithinTolerance checks if two values are within a specified tolerance
func WithinTolerance(val1, val2, tolerance float64) bool {
	return math.Abs(val1-val2) <= tolerance
}

// FromPercent converts a percentage into a decimal fraction.
func FromPercent(percentage float64) float64 {
	return percentage / constants.PercentageMultiplier
}
