package ioreader

import (
	"fmt"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError is returned when reading before the operator is
// connected.
func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Legacy records requested without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

// QueryError is returned when a legacy table cannot be queried.
func QueryError(table string, err error) error {
	msg := `Cannot read legacy table <em>%s</em>

<em>How to fix:</em>
  1. Check that the table exists: <em>cssbridge create</em>
  2. Check that the stage account in config.yaml is correct`

	return &gn.Error{
		Code: errcode.DBQueryError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to query %s: %w", table, err),
	}
}
