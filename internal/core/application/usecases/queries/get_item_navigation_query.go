package queries

import (
	"errors"

	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/guard"
)

var ErrGetItemNavigationQueryIsNotConstructed = errors.New(
	"GetItemNavigationQuery must be created via NewGetItemNavigationQuery constructor",
)

// GetItemNavigationQuery asks where an item sits within its category.
type GetItemNavigationQuery struct {
	itemID    kernel.UUID
	direction sortable.Direction

	guard guard.ConstructorGuard
}

// NewGetItemNavigationQuery builds the query. A zero direction means Ascending.
func NewGetItemNavigationQuery(itemID kernel.UUID, direction sortable.Direction) (GetItemNavigationQuery, error) {
	if err := itemID.Validate(); err != nil {
		return GetItemNavigationQuery{}, err
	}
	if direction == 0 {
		direction = sortable.Ascending
	}
	if !direction.Valid() {
		return GetItemNavigationQuery{}, ErrDirectionIsInvalid
	}

	return GetItemNavigationQuery{
		itemID:    itemID,
		direction: direction,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetItemNavigationQuery) Validate() error {
	return q.guard.Validate(ErrGetItemNavigationQueryIsNotConstructed)
}

func (q GetItemNavigationQuery) ItemID() kernel.UUID {
	return q.itemID
}

func (q GetItemNavigationQuery) Direction() sortable.Direction {
	return q.direction
}

// GetItemNavigationQueryResponse describes the item's place in its category.
// Prev and Next follow the query direction and are nil at the ends.
type GetItemNavigationQueryResponse struct {
	ID              kernel.UUID
	Position        int
	ReversePosition int
	IsFirst         bool
	IsLast          bool
	Prev            *kernel.UUID
	Next            *kernel.UUID
}
