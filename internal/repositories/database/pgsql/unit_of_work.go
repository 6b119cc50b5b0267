package pgsql

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fxrates_backend/internal/apperrors"
	portsrepo "github.com/SscSPs/fxrates_backend/internal/core/ports/repositories"
	"github.com/SscSPs/fxrates_backend/internal/middleware"
	"github.com/jackc/pgx/v5"
)

type pendingChange struct {
	description string
	apply       func(ctx context.Context, q DBTX) error
}

// UnitOfWork implements portsrepo.UnitOfWork over a pgx pool.
// Repository writes are buffered until SaveChanges, Commit or ExecuteTransaction flushes them.
// A UnitOfWork must not be shared between concurrent operations.
type UnitOfWork struct {
	db      DB
	tx      pgx.Tx
	changes []pendingChange

	currencies *PgxCurrencyRepository
	rates      *PgxExchangeRateRepository
}

// NewUnitOfWork creates a unit of work with its own change set over db.
func NewUnitOfWork(db DB) *UnitOfWork {
	u := &UnitOfWork{db: db}
	u.currencies = &PgxCurrencyRepository{BaseRepository: BaseRepository{uow: u}}
	u.rates = &PgxExchangeRateRepository{BaseRepository: BaseRepository{uow: u}}
	return u
}

var _ portsrepo.UnitOfWork = (*UnitOfWork)(nil)

// Currencies returns the currency store bound to this unit of work.
func (u *UnitOfWork) Currencies() portsrepo.CurrencyReader {
	return u.currencies
}

// ExchangeRates returns the rate repository bound to this unit of work.
func (u *UnitOfWork) ExchangeRates() portsrepo.ExchangeRateRepositoryFacade {
	return u.rates
}

// PendingChanges reports how many writes are waiting to be flushed.
func (u *UnitOfWork) PendingChanges() int {
	return len(u.changes)
}

// InTransaction reports whether an explicit transaction is open.
func (u *UnitOfWork) InTransaction() bool {
	return u.tx != nil
}

func (u *UnitOfWork) conn() DBTX {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWork) track(description string, apply func(ctx context.Context, q DBTX) error) {
	u.changes = append(u.changes, pendingChange{description: description, apply: apply})
}

// flush applies and drains the change set in insertion order, stopping at the first failure.
func (u *UnitOfWork) flush(ctx context.Context, q DBTX) error {
	changes := u.changes
	u.changes = nil
	for _, change := range changes {
		if err := ctx.Err(); err != nil {
			return err
		}
		middleware.GetLoggerFromCtx(ctx).Debug("Applying pending change", slog.String("change", change.description))
		if err := change.apply(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// release drops the transaction handle and rolls back anything not committed.
// It runs on every exit path of Commit and ExecuteTransaction.
func (u *UnitOfWork) release(ctx context.Context, tx pgx.Tx, committed bool) {
	u.tx = nil
	if committed {
		return
	}
	u.changes = nil
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to roll back transaction", slog.String("error", err.Error()))
	}
}

// BeginTransaction starts a new database transaction
func (u *UnitOfWork) BeginTransaction(ctx context.Context) error {
	if u.tx != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", apperrors.ErrTransactionAlreadyOpen)
	}
	tx, err := u.db.Begin(ctx)
	if err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to begin transaction", err)
	}
	u.tx = tx
	return nil
}

// Commit flushes pending changes and commits the open transaction
func (u *UnitOfWork) Commit(ctx context.Context) error {
	tx := u.tx
	if tx == nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", apperrors.ErrTransactionNotOpen)
	}
	committed := false
	defer func() { u.release(ctx, tx, committed) }()

	if err := u.flush(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(context.WithoutCancel(ctx)); err != nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err)
	}
	committed = true
	return nil
}

// Rollback rolls back the open transaction and discards pending changes
func (u *UnitOfWork) Rollback(ctx context.Context) error {
	tx := u.tx
	if tx == nil {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", apperrors.ErrTransactionNotOpen)
	}
	u.tx = nil
	u.changes = nil
	if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
		return apperrors.NewAppError(http.StatusInternalServerError, "failed to rollback transaction", err)
	}
	return nil
}

// ExecuteTransaction runs fn in a new transaction, then flushes and commits.
// Cancellation of ctx is honoured until the commit is issued, not during it.
func (u *UnitOfWork) ExecuteTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := u.BeginTransaction(ctx); err != nil {
		return apperrors.NewTransactionError(err)
	}
	tx := u.tx
	committed := false
	defer func() { u.release(ctx, tx, committed) }()

	if err := fn(ctx); err != nil {
		return apperrors.NewTransactionError(err)
	}
	if err := u.flush(ctx, tx); err != nil {
		return apperrors.NewTransactionError(err)
	}
	if err := ctx.Err(); err != nil {
		return apperrors.NewTransactionError(err)
	}
	if err := tx.Commit(context.WithoutCancel(ctx)); err != nil {
		return apperrors.NewTransactionError(apperrors.NewAppError(http.StatusInternalServerError, "failed to commit transaction", err))
	}
	committed = true
	return nil
}

// SaveChanges flushes pending changes. Without an open transaction the flush
// gets an implicit one so that the change set is applied all-or-nothing.
func (u *UnitOfWork) SaveChanges(ctx context.Context) error {
	if u.tx != nil {
		return u.flush(ctx, u.tx)
	}
	if len(u.changes) == 0 {
		return nil
	}
	if err := u.BeginTransaction(ctx); err != nil {
		return err
	}
	return u.Commit(ctx)
}

// UnitOfWorkFactory hands out a fresh UnitOfWork per logical operation.
type UnitOfWorkFactory struct {
	db DB
}

// NewUnitOfWorkFactory creates a factory backed by db, normally a *pgxpool.Pool.
func NewUnitOfWorkFactory(db DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

var _ portsrepo.UnitOfWorkFactory = (*UnitOfWorkFactory)(nil)

// NewUnitOfWork returns a new, idle unit of work.
func (f *UnitOfWorkFactory) NewUnitOfWork() portsrepo.UnitOfWork {
	return NewUnitOfWork(f.db)
}
