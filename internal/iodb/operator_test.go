package iodb_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/cssbridge/internal/iodb"
	"github.com/gnames/cssbridge/internal/iotesting"
	"github.com/gnames/cssbridge/pkg/config"
	"github.com/gnames/cssbridge/pkg/db"
	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteOperator(t *testing.T) {
	ctx := context.Background()
	op := iodb.NewOperator()

	err := op.Connect(ctx, iotesting.SQLiteConfig(t))
	require.NoError(t, err)
	defer op.Close()

	assert.Equal(t, db.SQLite, op.Driver())
	require.NotNil(t, op.GORM())

	exists, err := op.TableExists(ctx, "al1_arrival")
	require.NoError(t, err)
	assert.False(t, exists)

	err = op.GORM().Exec("CREATE TABLE al1_arrival (arid INTEGER)").Error
	require.NoError(t, err)

	exists, err = op.TableExists(ctx, "al1_arrival")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestOperatorErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown driver", func(t *testing.T) {
		op := iodb.NewOperator()
		err := op.Connect(ctx, &config.DatabaseConfig{Driver: "oracle"})
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBUnknownDriverError, gnErr.Code)
	})

	t.Run("empty sqlite path", func(t *testing.T) {
		op := iodb.NewOperator()
		err := op.Connect(ctx, &config.DatabaseConfig{Driver: db.SQLite})
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	})

	t.Run("missing directory", func(t *testing.T) {
		op := iodb.NewOperator()
		path := filepath.Join(t.TempDir(), "no", "such", "dir", "x.sqlite")
		err := op.Connect(ctx, &config.DatabaseConfig{Driver: db.SQLite, Path: path})
		assert.Error(t, err)
	})

	t.Run("not connected", func(t *testing.T) {
		op := iodb.NewOperator()
		_, err := op.TableExists(ctx, "arrival")
		gnErr, ok := err.(*gn.Error)
		require.True(t, ok)
		assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	})
}

func TestPostgresOperator(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	op := iodb.NewOperator()
	if err := op.Connect(ctx, iotesting.PostgresConfig()); err != nil {
		t.Skipf("PostgreSQL is not available: %v", err)
	}
	defer op.Close()

	assert.Equal(t, db.Postgres, op.Driver())
	exists, err := op.TableExists(ctx, "al1.nonexistent_table")
	require.NoError(t, err)
	assert.False(t, exists)
}
