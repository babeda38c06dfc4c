// Package coi holds the common object model produced from legacy CSS
// records: location uncertainty geometry, restraints, feature
// measurements and predictions, magnitudes and signal detections.
//
// Every value with invariants is created by a New... function that
// validates all fields before returning. A non-nil error always comes with
// a zero value, so a malformed object is never observable.
package coi

import (
	"math"
	"time"
)

// Units of a numeric value.
type Units int

const (
	UnknownUnits Units = iota
	Degrees
	SecondsPerDegree
	Seconds
	Decibels
	Unitless
	Nanometers
	Kilometers
)

var unitsNames = map[Units]string{
	UnknownUnits:     "UNKNOWN",
	Degrees:          "DEGREES",
	SecondsPerDegree: "SECONDS_PER_DEGREE",
	Seconds:          "SECONDS",
	Decibels:         "DECIBELS",
	Unitless:         "UNITLESS",
	Nanometers:       "NANOMETERS",
	Kilometers:       "KILOMETERS",
}

func (u Units) String() string {
	if s, ok := unitsNames[u]; ok {
		return s
	}
	return unitsNames[UnknownUnits]
}

// MarshalText encodes Units by name.
func (u Units) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// DoubleValue is a number with optional standard deviation and units.
type DoubleValue struct {
	Value             float64  `json:"value"`
	StandardDeviation *float64 `json:"standardDeviation,omitempty"`
	Units             Units    `json:"units"`
}

// InstantValue is a point in time with optional standard deviation.
type InstantValue struct {
	Value             time.Time      `json:"value"`
	StandardDeviation *time.Duration `json:"standardDeviation,omitempty"`
}

// Ptr returns a pointer to a copy of v.
func Ptr[T any](v T) *T {
	return &v
}

// EpochToTime converts CSS epoch seconds to UTC time keeping
// sub-second precision down to microseconds.
func EpochToTime(epoch float64) time.Time {
	sec := math.Floor(epoch)
	usec := math.Round((epoch - sec) * 1e6)
	return time.Unix(int64(sec), int64(usec)*int64(time.Microsecond)).UTC()
}

// SecondsToDuration converts fractional seconds to a Duration.
func SecondsToDuration(sec float64) time.Duration {
	return time.Duration(sec * float64(time.Second))
}
