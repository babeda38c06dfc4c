package iodb

import (
	"fmt"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/gnames/gnlib"
)

// ConnectionFailure is a connection error that also carries a
// troubleshooting message for the user.
type ConnectionFailure struct {
	error
	gnlib.MessageBase
}

// Unwrap gives access to the underlying *gn.Error.
func (e ConnectionFailure) Unwrap() error { return e.error }

// ConnectionError is returned when PostgreSQL connection fails.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	hint := gnlib.NewMessage(
		`<title>Database Connection Failed</title>

<warning>Could not connect to the legacy PostgreSQL database.</warning>

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify the database exists:
     <em>psql -h %s -U %s -l</em>

  3. Review connection settings in
     <em>~/.config/cssbridge/config.yaml</em>
     Host: %s
     Port: %d
     Database: %s
     User: %s
`,
		[]any{
			host, port,
			host, user,
			host, port, database, user,
		},
	)

	return ConnectionFailure{
		error: &gn.Error{
			Code: errcode.DBConnectionError,
			Msg:  "Cannot connect to PostgreSQL database <em>%s</em> at <em>%s:%d</em>",
			Vars: []any{database, host, port},
			Err: fmt.Errorf("failed to connect to %s:%d/%s: %w",
				host, port, database, err),
		},
		MessageBase: hint,
	}
}

// SQLiteOpenError is returned when a sqlite store cannot be opened.
func SQLiteOpenError(path string, err error) error {
	msg := `Cannot open sqlite legacy store <em>%s</em>

<em>How to fix:</em>
  1. Check that the file exists and is readable
  2. Set <em>database.path</em> in the config or use <em>--db-path</em>`

	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: []any{path},
		Err:  fmt.Errorf("failed to open sqlite %q: %w", path, err),
	}
}

// UnknownDriverError is returned for a driver other than postgres or
// sqlite.
func UnknownDriverError(driver string) error {
	msg := "Unknown database driver <em>%s</em>, use postgres or sqlite"

	return &gn.Error{
		Code: errcode.DBUnknownDriverError,
		Msg:  msg,
		Vars: []any{driver},
		Err:  fmt.Errorf("unknown database driver %q", driver),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// TableExistsCheckError is returned when the table lookup fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"

	return &gn.Error{
		Code: errcode.DBTableExistsCheckError,
		Msg:  msg,
		Vars: []any{table},
		Err:  fmt.Errorf("failed to check table %s: %w", table, err),
	}
}
