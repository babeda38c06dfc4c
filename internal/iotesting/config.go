// Package iotesting provides shared test utilities for store tests.
// This is an internal package for test infrastructure only.
package iotesting

import (
	"context"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/gnames/cssbridge/internal/iodb"
	"github.com/gnames/cssbridge/internal/ioschema"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/db"
	"github.com/gnames/cssbridge/pkg/schema"
)

const (
	// TestDatabaseName is the database name used for all postgres
	// integration tests, so they never touch a production store.
	TestDatabaseName = "css_test"
)

// SQLiteConfig returns a database config that points to a fresh sqlite
// file inside a temporary test directory.
func SQLiteConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()

	cfg := config.New().Database
	cfg.Driver = db.SQLite
	cfg.Path = filepath.Join(t.TempDir(), "legacy.sqlite")
	return &cfg
}

// PostgresConfig returns the default postgres settings, optionally
// overridden by CSSBRIDGE_DATABASE_* variables. The database name is
// always TestDatabaseName.
//
// Usage in integration tests:
//
//	func TestSomething(t *testing.T) {
//	    if testing.Short() {
//	        t.Skip("Skipping integration test")
//	    }
//	    cfg := iotesting.PostgresConfig()
//	    // ... use cfg for database operations
//	}
func PostgresConfig() *config.DatabaseConfig {
	cfg := config.New().Database
	if v := os.Getenv("CSSBRIDGE_DATABASE_HOST"); v != "" {
		cfg.Host = v
	}
	if v := os.Getenv("CSSBRIDGE_DATABASE_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Port = port
		}
	}
	if v := os.Getenv("CSSBRIDGE_DATABASE_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("CSSBRIDGE_DATABASE_PASSWORD"); v != "" {
		cfg.Password = v
	}
	cfg.Database = TestDatabaseName
	return &cfg
}

// SQLiteStore connects to a temporary sqlite store with legacy tables
// of all accounts created. The connection is closed on test cleanup.
func SQLiteStore(t *testing.T, accounts ...string) db.Operator {
	t.Helper()

	ctx := context.Background()
	op := iodb.NewOperator()
	if err := op.Connect(ctx, SQLiteConfig(t)); err != nil {
		t.Fatalf("Failed to open sqlite store: %v", err)
	}
	t.Cleanup(func() { op.Close() })

	if err := ioschema.NewManager(op).Create(ctx, accounts); err != nil {
		t.Fatalf("Failed to create legacy tables: %v", err)
	}
	return op
}

// Seed inserts records into tables of the account. Records are written
// as is, without validation, so tests can store invalid rows too.
func Seed(t *testing.T, op db.Operator, account string, records ...dao.Record) {
	t.Helper()

	for _, r := range records {
		table := schema.Table(op.Driver(), account, r.TableName())
		if err := op.GORM().Table(table).Create(r).Error; err != nil {
			t.Fatalf("Failed to seed %s: %v", table, err)
		}
	}
}

// SetupTempHome creates a temporary home directory for tests that need
// config, cache or log directories. It is removed after the test.
func SetupTempHome(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	for _, dir := range []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.LogDir(home),
	} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatalf("Failed to create %s: %v", dir, err)
		}
	}
	return home
}
