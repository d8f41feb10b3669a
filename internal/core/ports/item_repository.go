package ports

import (
	"context"

	"sortable/internal/core/domain/model/item"
	"sortable/internal/core/domain/model/kernel"
)

// ItemRepository defines the persistence contract for item aggregates.
// Positions are written by Add (the value set by the create hook) and
// afterwards only through SortableRepository.
type ItemRepository interface {
	// Add persists a new, already positioned item.
	Add(ctx context.Context, aggregate *item.Item) error

	// Get retrieves an item by its identifier, with its stored position.
	Get(ctx context.Context, id kernel.UUID) (*item.Item, error)

	// Delete removes an item. A missing item yields errs.ErrObjectNotFound.
	Delete(ctx context.Context, id kernel.UUID) error

	// ListByCategory returns the category's items ordered by position ascending.
	ListByCategory(ctx context.Context, categoryID int64) ([]*item.Item, error)
}
