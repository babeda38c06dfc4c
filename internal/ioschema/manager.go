// Package ioschema implements legacy.SchemaManager with GORM
// AutoMigrate. This is an impure I/O package.
package ioschema

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gnames/cssbridge/pkg/db"
	"github.com/gnames/cssbridge/pkg/legacy"
	"github.com/gnames/cssbridge/pkg/schema"
)

// manager implements the legacy.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) legacy.SchemaManager {
	return &manager{operator: op}
}

// Create makes legacy tables for every account. On postgres each
// account gets its own schema.
func (m *manager) Create(ctx context.Context, accounts []string) error {
	gdb := m.operator.GORM()
	if gdb == nil {
		return NotConnectedError()
	}
	driver := m.operator.Driver()

	for _, account := range accounts {
		if !schema.ValidAccount(account) {
			return InvalidAccountError(account)
		}

		if driver == db.Postgres {
			q := fmt.Sprintf("CREATE SCHEMA IF NOT EXISTS %s", account)
			if err := gdb.WithContext(ctx).Exec(q).Error; err != nil {
				return CreateSchemaError(account, err)
			}
		}

		for _, model := range schema.Models() {
			table := schema.Table(driver, account, model.TableName())
			err := gdb.WithContext(ctx).Table(table).AutoMigrate(model)
			if err != nil {
				return CreateTableError(table, err)
			}
		}
		slog.Info("Legacy tables are ready", "account", account,
			"tables", len(schema.Models()))
	}

	return nil
}
