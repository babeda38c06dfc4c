package ioschema

import (
	"errors"
	"testing"

	"github.com/gnames/cssbridge/pkg/errcode"
	"github.com/gnames/gn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	cause := errors.New("permission denied")
	tests := []struct {
		msg  string
		err  error
		code gn.ErrorCode
		vars []any
	}{
		{"not connected", NotConnectedError(), errcode.DBNotConnectedError, nil},
		{"account", InvalidAccountError("AL1"), errcode.SchemaCreateError,
			[]any{"AL1"}},
		{"schema", CreateSchemaError("al1", cause), errcode.SchemaCreateError,
			[]any{"al1"}},
		{"table", CreateTableError("al1.arrival", cause), errcode.SchemaCreateError,
			[]any{"al1.arrival"}},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			gnErr, ok := v.err.(*gn.Error)
			require.True(t, ok, "Error should be of type *gn.Error")
			assert.Equal(t, v.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.Equal(t, v.vars, gnErr.Vars)
		})
	}

	gnErr := CreateTableError("al1.arrival", cause).(*gn.Error)
	assert.ErrorIs(t, gnErr.Err, cause)
}
