// Package ioreader implements legacy.Reader with GORM. Every row is
// validated before it leaves the package, rows that fail validation
// are logged and skipped.
package ioreader

import (
	"context"
	"log/slog"
	"slices"

	"github.com/gnames/cssbridge/pkg/dao"
	"github.com/gnames/cssbridge/pkg/db"
	"github.com/gnames/cssbridge/pkg/legacy"
	"github.com/gnames/cssbridge/pkg/schema"
	"gorm.io/gorm"
)

const defaultBatchSize = 1_000

type reader struct {
	op        db.Operator
	batchSize int
}

// New creates a legacy reader on top of a connected operator.
// Id lists longer than batchSize are split into several queries.
func New(op db.Operator, batchSize int) legacy.Reader {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &reader{op: op, batchSize: batchSize}
}

// record is a pointer to a legacy row type.
type record[T any] interface {
	*T
	dao.Record
}

// find loads rows of T from the account table limited by scopes.
func find[T any, PT record[T]](
	ctx context.Context,
	r *reader,
	account string,
	scopes ...func(*gorm.DB) *gorm.DB,
) ([]T, error) {
	gdb := r.op.GORM()
	if gdb == nil {
		return nil, NotConnectedError()
	}

	var zero T
	table := schema.Table(r.op.Driver(), account, PT(&zero).TableName())

	var rows []T
	err := gdb.WithContext(ctx).Table(table).Scopes(scopes...).Find(&rows).Error
	if err != nil {
		return nil, QueryError(table, err)
	}

	res := rows[:0]
	for i := range rows {
		if err = PT(&rows[i]).Validate(); err != nil {
			slog.Warn("Skipping invalid legacy record",
				"table", table, "error", err)
			continue
		}
		res = append(res, rows[i])
	}
	return res, nil
}

// findByIDs runs find for every chunk of ids.
func findByIDs[T any, PT record[T]](
	ctx context.Context,
	r *reader,
	account, column string,
	ids []int64,
	scopes ...func(*gorm.DB) *gorm.DB,
) ([]T, error) {
	var res []T
	for chunk := range slices.Chunk(ids, r.batchSize) {
		sc := append([]func(*gorm.DB) *gorm.DB{inIDs(column, chunk)}, scopes...)
		rows, err := find[T, PT](ctx, r, account, sc...)
		if err != nil {
			return nil, err
		}
		res = append(res, rows...)
	}
	return res, nil
}

// findOne returns the first valid row or nil.
func findOne[T any, PT record[T]](
	ctx context.Context,
	r *reader,
	account string,
	scopes ...func(*gorm.DB) *gorm.DB,
) (*T, error) {
	rows, err := find[T, PT](ctx, r, account, scopes...)
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func inIDs(column string, ids []int64) func(*gorm.DB) *gorm.DB {
	return func(d *gorm.DB) *gorm.DB {
		return d.Where(column+" IN ?", ids)
	}
}

func byOrid(orid int64) func(*gorm.DB) *gorm.DB {
	return func(d *gorm.DB) *gorm.DB {
		return d.Where("orid = ?", orid)
	}
}

func orderBy(columns string) func(*gorm.DB) *gorm.DB {
	return func(d *gorm.DB) *gorm.DB {
		return d.Order(columns)
	}
}

func (r *reader) Arrivals(
	ctx context.Context, account string, arids []int64,
) ([]dao.ArrivalDao, error) {
	return findByIDs[dao.ArrivalDao](ctx, r, account, "arid", arids,
		orderBy("arid"))
}

func (r *reader) AssocsByArids(
	ctx context.Context, account string, arids []int64,
) ([]dao.AssocDao, error) {
	return findByIDs[dao.AssocDao](ctx, r, account, "arid", arids,
		orderBy("arid, orid"))
}

func (r *reader) AssocsByOrid(
	ctx context.Context, account string, orid int64,
) ([]dao.AssocDao, error) {
	return find[dao.AssocDao](ctx, r, account, byOrid(orid), orderBy("arid"))
}

func (r *reader) Amplitudes(
	ctx context.Context, account string, arids []int64,
) ([]dao.AmplitudeDao, error) {
	return findByIDs[dao.AmplitudeDao](ctx, r, account, "arid", arids,
		orderBy("arid, ampid"))
}

func (r *reader) ArInfos(
	ctx context.Context, account string, orid int64,
) ([]dao.ArInfoDao, error) {
	return find[dao.ArInfoDao](ctx, r, account, byOrid(orid), orderBy("arid"))
}

func (r *reader) Origin(
	ctx context.Context, account string, orid int64,
) (*dao.OriginDao, error) {
	return findOne[dao.OriginDao](ctx, r, account, byOrid(orid))
}

func (r *reader) Origerr(
	ctx context.Context, account string, orid int64,
) (*dao.OrigerrDao, error) {
	return findOne[dao.OrigerrDao](ctx, r, account, byOrid(orid))
}

func (r *reader) EventControl(
	ctx context.Context, account string, orid int64,
) (*dao.EventControlDao, error) {
	return findOne[dao.EventControlDao](ctx, r, account, byOrid(orid))
}

func (r *reader) NetMags(
	ctx context.Context, account string, orid int64,
) ([]dao.NetMagDao, error) {
	return find[dao.NetMagDao](ctx, r, account, byOrid(orid), orderBy("magid"))
}

func (r *reader) StaMags(
	ctx context.Context, account string, orid int64,
) ([]dao.StaMagDao, error) {
	return find[dao.StaMagDao](ctx, r, account, byOrid(orid),
		orderBy("magid, arid"))
}
