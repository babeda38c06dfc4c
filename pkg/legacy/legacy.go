// Package legacy defines contracts for access to a legacy CSS store.
// Implementations live in internal packages.
package legacy

import (
	"context"

	"github.com/gnames/cssbridge/pkg/dao"
)

// SchemaManager creates legacy tables.
type SchemaManager interface {
	// Create makes all legacy tables for every account. Existing tables
	// are migrated in place.
	Create(ctx context.Context, accounts []string) error
}

// Reader loads validated records of one account. Records that fail
// validation are skipped, so a result may be shorter than the set of
// requested ids.
type Reader interface {
	Arrivals(ctx context.Context, account string, arids []int64) ([]dao.ArrivalDao, error)
	AssocsByArids(ctx context.Context, account string, arids []int64) ([]dao.AssocDao, error)
	AssocsByOrid(ctx context.Context, account string, orid int64) ([]dao.AssocDao, error)
	Amplitudes(ctx context.Context, account string, arids []int64) ([]dao.AmplitudeDao, error)
	ArInfos(ctx context.Context, account string, orid int64) ([]dao.ArInfoDao, error)

	// Origin, Origerr and EventControl return nil without error when the
	// orid has no valid row.
	Origin(ctx context.Context, account string, orid int64) (*dao.OriginDao, error)
	Origerr(ctx context.Context, account string, orid int64) (*dao.OrigerrDao, error)
	EventControl(ctx context.Context, account string, orid int64) (*dao.EventControlDao, error)

	NetMags(ctx context.Context, account string, orid int64) ([]dao.NetMagDao, error)
	StaMags(ctx context.Context, account string, orid int64) ([]dao.StaMagDao, error)
}
