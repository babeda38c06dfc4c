package coi

import (
	"errors"
	"fmt"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
)

var (
	ErrNaN               = errors.New("value is not a number")
	ErrConfidence        = errors.New("confidence level is out of range")
	ErrKWeight           = errors.New("kWeight does not match scaling factor type")
	ErrTimeUncertainty   = errors.New("time uncertainty is negative")
	ErrDuplicateEllipse  = errors.New("duplicate confidence level and scaling factor type")
	ErrRestraint         = errors.New("restraint type does not match restraint value")
	ErrMagnitudeRange    = errors.New("magnitude value is out of range")
	ErrMeasurementValue  = errors.New("measurement value does not match its type")
	ErrHypothesisData    = errors.New("hypothesis data is incomplete")
	ErrSignalDetection   = errors.New("signal detection is inconsistent")
	ErrUnknownEnumString = errors.New("unknown enum string")
)

// NaNError reports a numeric field that holds NaN.
func NaNError(field string) error {
	msg := "The validated <em>%s</em> is not a number"
	vars := []any{field}
	return &gn.Error{
		Code: errcode.ValidationNaNError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", field, ErrNaN),
	}
}

// ConfidenceError reports a confidence level outside [0.5, 1.0].
func ConfidenceError(val float64) error {
	msg := "Confidence level must be in [0.5, 1.0], got <em>%v</em>"
	vars := []any{val}
	return &gn.Error{
		Code: errcode.ValidationConfidenceError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("confidence level %v: %w", val, ErrConfidence),
	}
}

// KWeightError reports a kWeight that contradicts the scaling factor type.
func KWeightError(sft ScalingFactorType, k float64, cond string) error {
	msg := "Scaling factor type <em>%s</em> requires kWeight %s, got <em>%v</em>"
	vars := []any{sft, cond, k}
	return &gn.Error{
		Code: errcode.ValidationKWeightError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s kWeight %v: %w", sft, k, ErrKWeight),
	}
}

// TimeUncertaintyError reports a negative time uncertainty.
func TimeUncertaintyError(val fmt.Stringer) error {
	msg := "Time uncertainty must be non-negative, got <em>%s</em>"
	vars := []any{val.String()}
	return &gn.Error{
		Code: errcode.ValidationTimeUncertaintyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("time uncertainty %s: %w", val, ErrTimeUncertainty),
	}
}

// DuplicateEllipseError reports ellipses or ellipsoids that share
// confidence level and scaling factor type.
func DuplicateEllipseError(kind string) error {
	msg := "%s have a duplicate(s) with the same Confidence Level and " +
		"Scaling Factor Type."
	vars := []any{kind}
	return &gn.Error{
		Code: errcode.ValidationDuplicateEllipseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", kind, ErrDuplicateEllipse),
	}
}

// RestraintError reports a restraint type that disagrees with presence
// of its reason or value.
func RestraintError(axis string, rt RestraintType, present bool) error {
	state := "absent"
	if present {
		state = "present"
	}
	msg := "<em>%s</em> restraint of type <em>%s</em> cannot have its value %s"
	vars := []any{axis, rt, state}
	return &gn.Error{
		Code: errcode.ValidationRestraintError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%s restraint %s with value %s: %w",
			axis, rt, state, ErrRestraint),
	}
}

// RangeError reports a magnitude related value outside its range.
func RangeError(field string, val float64, cond string) error {
	msg := "<em>%s</em> must be %s, got <em>%v</em>"
	vars := []any{field, cond, val}
	return &gn.Error{
		Code: errcode.ValidationMagnitudeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s %v: %w", field, val, ErrMagnitudeRange),
	}
}

// MeasurementError reports a feature measurement that cannot be built.
func MeasurementError(typ FeatureMeasurementType, reason string) error {
	msg := "Feature measurement <em>%s</em> is invalid: %s"
	vars := []any{typ, reason}
	return &gn.Error{
		Code: errcode.ValidationMeasurementError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s %s: %w", typ, reason, ErrMeasurementValue),
	}
}

// HypothesisDataError reports incomplete signal detection hypothesis data.
func HypothesisDataError(reason string) error {
	msg := "Signal detection hypothesis data is invalid: %s"
	vars := []any{reason}
	return &gn.Error{
		Code: errcode.ValidationHypothesisError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", reason, ErrHypothesisData),
	}
}

// SignalDetectionError reports a signal detection that cannot be built.
func SignalDetectionError(reason string) error {
	msg := "Signal detection is invalid: %s"
	vars := []any{reason}
	return &gn.Error{
		Code: errcode.ValidationDetectionError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", reason, ErrSignalDetection),
	}
}
