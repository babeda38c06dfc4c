package schema_test

import (
	"testing"

	"github.com/gnames/cssbridge/pkg/db"
	"github.com/gnames/cssbridge/pkg/schema"
	"github.com/stretchr/testify/assert"
)

func TestTable(t *testing.T) {
	tests := []struct {
		msg, driver, account, table, res string
	}{
		{"postgres", db.Postgres, "al1", "arrival", "al1.arrival"},
		{"sqlite", db.SQLite, "al2", "ar_info", "al2_ar_info"},
		{"no account", db.Postgres, "", "assoc", "assoc"},
	}

	for _, v := range tests {
		t.Run(v.msg, func(t *testing.T) {
			assert.Equal(t, v.res, schema.Table(v.driver, v.account, v.table))
		})
	}
}

func TestValidAccount(t *testing.T) {
	tests := []struct {
		account string
		ok      bool
	}{
		{"al1", true},
		{"_seis", true},
		{"AL1", false},
		{"1al", false},
		{"al1; drop", false},
		{"", false},
	}

	for _, v := range tests {
		assert.Equal(t, v.ok, schema.ValidAccount(v.account), v.account)
	}
}

func TestModels(t *testing.T) {
	seen := make(map[string]bool)
	for _, v := range schema.Models() {
		assert.False(t, seen[v.TableName()], v.TableName())
		seen[v.TableName()] = true
	}
	assert.Len(t, seen, 10)
	assert.True(t, seen["arrival"])
	assert.True(t, seen["evtcontrol"])
}
