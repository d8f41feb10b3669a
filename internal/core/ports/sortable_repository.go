package ports

import (
	"context"

	"sortable/internal/core/domain/model/sortable"
)

// SortableRepository is the storage contract of the ordering engine for one
// configured record type. Keys and restriction values are passed through as
// the adapter returned them; adapters compare them in canonical form.
type SortableRepository interface {
	// MaxPosition returns the highest position among records matching filter,
	// 0 when none match or none has a position.
	MaxPosition(ctx context.Context, filter sortable.Filter) (int, error)

	// Find returns records matching filter ordered by position in dir, ties broken by key.
	// With filter.ForUpdate the rows stay locked until the transaction ends.
	Find(ctx context.Context, filter sortable.Filter, dir sortable.Direction) ([]sortable.Entry, error)

	// Get loads one record by key. A missing key yields errs.ErrObjectNotFound.
	Get(ctx context.Context, key any) (sortable.Entry, error)

	// SetPosition writes the position of one record. A missing key yields errs.ErrObjectNotFound.
	SetPosition(ctx context.Context, key any, position int) error

	// LockScope serializes writers of the same scope until the transaction ends.
	// Outside a transaction the lock is released immediately.
	LockScope(ctx context.Context, restrictions sortable.Restrictions) error
}
