package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is the query surface shared by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DB is a DBTX that can also open transactions, such as *pgxpool.Pool.
type DB interface {
	DBTX
	Begin(ctx context.Context) (pgx.Tx, error)
}

// BaseRepository provides common functionality for all repositories bound to a unit of work.
type BaseRepository struct {
	uow *UnitOfWork
}

// conn returns the open transaction if there is one, otherwise the pool.
func (r *BaseRepository) conn() DBTX {
	return r.uow.conn()
}

// track appends a pending write to the unit of work's change set.
func (r *BaseRepository) track(description string, apply func(ctx context.Context, q DBTX) error) {
	r.uow.track(description, apply)
}
