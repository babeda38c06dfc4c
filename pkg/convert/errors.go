package convert

import (
	"errors"
	"fmt"

	"github.com/gnames/cssbridge/pkg/coi"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
)

var (
	ErrNullArgument    = errors.New("required argument is missing")
	ErrAridMismatch    = errors.New("assoc arid does not match arrival arid")
	ErrStationMismatch = errors.New("channel does not belong to station")
	ErrUnsupportedType = errors.New("unsupported feature measurement type")
	ErrMissingData     = errors.New("hypothesis has no data")
	ErrUnknownStage    = errors.New("stage has no legacy account")
)

// NullArgumentError reports a missing required input.
func NullArgumentError(name string) error {
	msg := "Required <em>%s</em> is missing"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.ConvertNullArgumentError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", name, ErrNullArgument),
	}
}

// AridMismatchError reports an assoc that belongs to another arrival.
func AridMismatchError(arrivalArid, assocArid int64) error {
	msg := "Assoc arid <em>%d</em> does not match arrival arid <em>%d</em>"
	vars := []any{assocArid, arrivalArid}
	return &gn.Error{
		Code: errcode.ConvertAridMismatchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("assoc arid %d, arrival arid %d: %w",
			assocArid, arrivalArid, ErrAridMismatch),
	}
}

// StationMismatchError reports a channel of a different station.
func StationMismatchError(channel, station string) error {
	msg := "Channel <em>%s</em> does not belong to station <em>%s</em>"
	vars := []any{channel, station}
	return &gn.Error{
		Code: errcode.ConvertStationMismatchError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("channel %s, station %s: %w", channel, station, ErrStationMismatch),
	}
}

// UnsupportedTypeError reports a measurement type without a converter.
func UnsupportedTypeError(typ coi.FeatureMeasurementType) error {
	msg := "Converter not found for measurement type <em>%s</em>"
	vars := []any{typ}
	return &gn.Error{
		Code: errcode.ConvertUnsupportedTypeError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", typ, ErrUnsupportedType),
	}
}

// MissingDataError reports an entity reference where full data is
// required.
func MissingDataError(what string) error {
	msg := "Hypothesis for <em>%s</em> must contain data"
	vars := []any{what}
	return &gn.Error{
		Code: errcode.ConvertMissingDataError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", what, ErrMissingData),
	}
}

// UnknownStageError reports a stage missing from the stage to account
// mapping.
func UnknownStageError(stage string) error {
	msg := "Stage <em>%s</em> has no legacy database account"
	vars := []any{stage}
	return &gn.Error{
		Code: errcode.ConvertUnknownStageError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%s: %w", stage, ErrUnknownStage),
	}
}
