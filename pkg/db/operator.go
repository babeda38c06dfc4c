package db

import (
	"context"

	"github.com/gnames/cssbridge/pkg/config"
	"gorm.io/gorm"
)

// Supported legacy store drivers.
const (
	Postgres = "postgres"
	SQLite   = "sqlite"
)

// Operator manages the connection to a legacy CSS store.
// Higher level components (schema manager, legacy reader) get the
// GORM handle from it and run their own queries.
type Operator interface {
	// Connect opens the store described by the config. For the sqlite
	// driver cfg.Path must already be resolved.
	Connect(context.Context, *config.DatabaseConfig) error

	// Close releases the underlying connections.
	Close() error

	// GORM returns the connected handle, nil before Connect.
	GORM() *gorm.DB

	// Driver returns the driver name given to Connect.
	Driver() string

	// TableExists checks for a table. On postgres a name of the form
	// "account.table" is looked up in the account schema.
	TableExists(ctx context.Context, table string) (bool, error)
}
