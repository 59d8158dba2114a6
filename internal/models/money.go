package models

import "math"

// MaxMinorUnits is the largest amount, in cents, the invoices.amount column can hold
const MaxMinorUnits = math.MaxInt32

// ToMinorUnits converts a major-unit amount to cents, rounding half away
// from zero so binary float error (0.29*100 = 28.999...) never drops a cent.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts cents back to a major-unit amount
func FromMinorUnits(cents int64) float64 {
	return float64(cents) / 100
}
