// Package schema names the tables of a legacy CSS store.
//
// Every processing stage keeps its records under its own account. On
// PostgreSQL an account is a schema and tables are addressed as
// "account.table". A sqlite file has no schemas, so the account becomes
// a table prefix, "account_table".
package schema

import (
	"regexp"

	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/db"
)

var accountRe = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,30}$`)

// ValidAccount reports if the account can be used as a schema name
// or a table prefix without quoting.
func ValidAccount(account string) bool {
	return accountRe.MatchString(account)
}

// Table returns the name of a legacy table of an account.
func Table(driver, account, table string) string {
	if account == "" {
		return table
	}
	if driver == db.SQLite {
		return account + "_" + table
	}
	return account + "." + table
}

// Models returns all legacy tables known to the bridge in the order
// they are created.
func Models() []dao.Record {
	return []dao.Record{
		&dao.EventDao{},
		&dao.OriginDao{},
		&dao.OrigerrDao{},
		&dao.EventControlDao{},
		&dao.ArrivalDao{},
		&dao.AssocDao{},
		&dao.ArInfoDao{},
		&dao.AmplitudeDao{},
		&dao.NetMagDao{},
		&dao.StaMagDao{},
	}
}
