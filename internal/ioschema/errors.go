package ioschema

import (
	"fmt"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// InvalidAccountError is returned for an account name that cannot be
// a schema or a table prefix.
func InvalidAccountError(account string) error {
	msg := `Account <em>%s</em> is not a valid legacy account name

Use lowercase letters, digits and underscores, starting with a letter.`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{account},
		Err:  fmt.Errorf("invalid account %q", account),
	}
}

// CreateSchemaError creates an error for a postgres schema that
// cannot be created.
func CreateSchemaError(account string, err error) error {
	msg := `Cannot create schema for account <em>%s</em>

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{account},
		Err:  fmt.Errorf("failed to create schema %s: %w", account, err),
	}
}

// CreateTableError creates an error for table creation failures.
func CreateTableError(table string, err error) error {
	msg := `Cannot create legacy table <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - An existing table with incompatible columns`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to create table %s: %w", table, err),
	}
}
