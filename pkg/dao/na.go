// Package dao holds read-only records of legacy CSS3.0 tables.
//
// CSS marks missing values with sentinels instead of NULL. Records are
// validated once when they are read, and converters interpret sentinels
// with IsNA without validating the records again.
package dao

import "math"

const (
	// NA marks a missing physical value.
	NA = -1.0
	// NAID marks a missing id or count.
	NAID = -1
	// NAMag marks a missing magnitude.
	NAMag = -999.0
	// NACov marks a missing evtcontrol conversion factor.
	NACov = -999.0
	// NARes marks a missing residual or model correction, values that
	// may be negative.
	NARes = -999.0
	// NAString marks a missing string.
	NAString = "-"
	// NATime marks a missing epoch time.
	NATime = -9999999999.999

	// AllowableDelta is the tolerance of comparisons with sentinels.
	AllowableDelta = 1e-4

	// MagnitudeMin is the lowest valid CSS magnitude.
	MagnitudeMin = -9.99
	// MagnitudeMax is the highest valid CSS magnitude.
	MagnitudeMax = 50.0
)

// IsNA is true when v equals the na sentinel within AllowableDelta.
func IsNA(v, na float64) bool {
	return math.Abs(v-na) < AllowableDelta
}

// Value returns a pointer to v, or nil if v is the na sentinel.
func Value(v, na float64) *float64 {
	if IsNA(v, na) {
		return nil
	}
	return &v
}

// IsNAString is true for empty strings and the "-" sentinel.
func IsNAString(s string) bool {
	return s == "" || s == NAString
}
