package repositories

import (
	"context"
)

// TransactionManager defines the transaction boundary owned by a unit of work.
type TransactionManager interface {
	// BeginTransaction opens an explicit transaction. It fails with
	// apperrors.ErrTransactionAlreadyOpen if one is already open.
	BeginTransaction(ctx context.Context) error

	// Commit flushes pending changes and commits the open transaction.
	// The transaction handle is released whether or not the commit succeeds.
	Commit(ctx context.Context) error

	// Rollback discards the open transaction and any pending changes.
	Rollback(ctx context.Context) error

	// ExecuteTransaction runs fn inside a new transaction, flushes pending
	// changes and commits. Any error from fn or the flush rolls the
	// transaction back and is returned wrapped in apperrors.ErrTransactionFailed.
	ExecuteTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// SaveChanges flushes pending changes. Outside an explicit transaction the
	// flush runs in its own implicit transaction.
	SaveChanges(ctx context.Context) error
}

// UnitOfWork binds one logical business operation to one database session.
// It is not safe for concurrent use; obtain one per operation from a UnitOfWorkFactory.
type UnitOfWork interface {
	RepositoryProvider
	TransactionManager
}

// UnitOfWorkFactory creates a fresh UnitOfWork for each logical operation.
type UnitOfWorkFactory interface {
	NewUnitOfWork() UnitOfWork
}
