package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnectionError(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "css", "postgres", originalErr)
	require.Error(t, err)

	var cf ConnectionFailure
	require.True(t, errors.As(err, &cf))
	assert.NotEmpty(t, cf.MessageBase.Msg)

	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.Equal(t, []any{"css", "localhost", 5432}, gnErr.Vars)
	assert.ErrorIs(t, err, originalErr)
}

func TestErrors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		v0   any
	}{
		{"sqlite", SQLiteOpenError("/tmp/x.sqlite", cause),
			errcode.DBConnectionError, "/tmp/x.sqlite"},
		{"driver", UnknownDriverError("oracle"),
			errcode.DBUnknownDriverError, "oracle"},
		{"table", TableExistsCheckError("al1.arrival", cause),
			errcode.DBTableExistsCheckError, "al1.arrival"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, v.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			require.NotEmpty(t, gnErr.Vars)
			assert.Equal(t, v.v0, gnErr.Vars[0])
		})
	}

	gnErr, ok := NotConnectedError().(*gn.Error)
	require.True(t, ok)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
}
