// Package iodb implements db.Operator on top of GORM.
// PostgreSQL connections go through a pgxpool, sqlite files are opened
// with the pure Go modernc driver.
package iodb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/db"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// gormOperator implements db.Operator for both supported drivers.
type gormOperator struct {
	driver string
	pool   *pgxpool.Pool
	sqlDB  *sql.DB
	gdb    *gorm.DB
}

// NewOperator creates a new database operator (without connecting).
func NewOperator() db.Operator {
	return &gormOperator{}
}

// Connect opens the legacy store and verifies the connection.
func (o *gormOperator) Connect(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	var err error
	switch cfg.Driver {
	case db.Postgres:
		err = o.connectPostgres(ctx, cfg)
	case db.SQLite:
		err = o.connectSQLite(ctx, cfg)
	default:
		return UnknownDriverError(cfg.Driver)
	}
	if err != nil {
		return err
	}

	o.driver = cfg.Driver
	slog.Info("Connected to legacy store", "driver", cfg.Driver)
	return nil
}

func (o *gormOperator) connectPostgres(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	dsn := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.Database,
		cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	poolConfig.MaxConns = 10
	poolConfig.MinConns = 2
	poolConfig.MaxConnLifetime = 0
	poolConfig.MaxConnIdleTime = 0

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	sqlDB := stdlib.OpenDBFromPool(pool)
	gdb, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		sqlDB.Close()
		pool.Close()
		return ConnectionError(cfg.Host, cfg.Port,
			cfg.Database, cfg.User, err)
	}

	o.pool = pool
	o.sqlDB = sqlDB
	o.gdb = gdb
	return nil
}

func (o *gormOperator) connectSQLite(
	ctx context.Context,
	cfg *config.DatabaseConfig,
) error {
	if cfg.Path == "" {
		return SQLiteOpenError(cfg.Path, fmt.Errorf("empty sqlite path"))
	}

	sqlDB, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return SQLiteOpenError(cfg.Path, err)
	}
	// sqlite serializes writers, one connection avoids SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)

	if err = sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return SQLiteOpenError(cfg.Path, err)
	}

	gdb, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		sqlDB.Close()
		return SQLiteOpenError(cfg.Path, err)
	}

	o.sqlDB = sqlDB
	o.gdb = gdb
	return nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

// Close releases all database connections.
func (o *gormOperator) Close() error {
	var err error
	if o.sqlDB != nil {
		err = o.sqlDB.Close()
	}
	if o.pool != nil {
		o.pool.Close()
	}
	o.sqlDB = nil
	o.pool = nil
	o.gdb = nil
	return err
}

// GORM returns the connected handle.
func (o *gormOperator) GORM() *gorm.DB {
	return o.gdb
}

// Driver returns the name of the connected driver.
func (o *gormOperator) Driver() string {
	return o.driver
}

// TableExists checks if a table exists in the store.
func (o *gormOperator) TableExists(
	ctx context.Context,
	table string,
) (bool, error) {
	if o.gdb == nil {
		return false, NotConnectedError()
	}

	switch o.driver {
	case db.Postgres:
		schemaName, name := "public", table
		if s, t, ok := strings.Cut(table, "."); ok {
			schemaName, name = s, t
		}
		query := `
		SELECT EXISTS (
			SELECT FROM information_schema.tables
			WHERE table_schema = ?
			AND table_name = ?
		)`
		var exists bool
		err := o.gdb.WithContext(ctx).
			Raw(query, schemaName, name).Scan(&exists).Error
		if err != nil {
			return false, TableExistsCheckError(table, err)
		}
		return exists, nil
	default:
		query := `
		SELECT count(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?`
		var count int64
		err := o.gdb.WithContext(ctx).Raw(query, table).Scan(&count).Error
		if err != nil {
			return false, TableExistsCheckError(table, err)
		}
		return count > 0, nil
	}
}
