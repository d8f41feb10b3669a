package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction. Calling Begin on a unit of work
	// that is already in a transaction is a no-op.
	Begin(ctx context.Context) error

	// Commit commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	// InTransaction reports whether Begin was called without a matching Commit/Rollback.
	InTransaction() bool

	// SortableRepository returns the position store bound to the current transaction.
	SortableRepository() SortableRepository

	// ItemRepository returns an ItemRepository instance bound to the current transaction.
	ItemRepository() ItemRepository
}
