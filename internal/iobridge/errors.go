package iobridge

import (
	"fmt"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
)

// LoadError is returned when records of a stage cannot be loaded.
func LoadError(stage, table string, err error) error {
	msg := "Cannot load <em>%s</em> records of stage <em>%s</em>"

	return &gn.Error{
		Code: errcode.BridgeLoadError,
		Msg:  msg,
		Vars: []any{table, stage},
		Err:  fmt.Errorf("failed to load %s of %s: %w", table, stage, err),
	}
}

// MetricsError is returned when metrics cannot be written.
func MetricsError(path string, err error) error {
	msg := "Cannot write conversion metrics to <em>%s</em>"

	return &gn.Error{
		Code: errcode.BridgeMetricsError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to write metrics %s: %w", path, err),
	}
}

// EncodeError is returned when conversion results cannot be encoded.
func EncodeError(err error) error {
	msg := "Cannot encode conversion results to JSON"

	return &gn.Error{
		Code: errcode.BridgeEncodeError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to encode output: %w", err),
	}
}
