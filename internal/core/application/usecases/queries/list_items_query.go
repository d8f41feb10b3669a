// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/guard"
)

var (
	ErrListItemsQueryIsNotConstructed = errors.New(
		"ListItemsQuery must be created via NewListItemsQuery constructor",
	)
	ErrCategoryIDIsInvalid = errors.New("category id must not be negative")
	ErrDirectionIsInvalid  = errors.New("direction must be ascending or descending")
)

// ListItemsQuery lists one category's items in display order.
//
// Example:
//
//	query, err := NewListItemsQuery(7, sortable.Descending)
//	if err != nil {
//	    return err
//	}
//	items, err := handler.Handle(ctx, query)
type ListItemsQuery struct {
	categoryID int64
	direction  sortable.Direction

	guard guard.ConstructorGuard
}

// NewListItemsQuery builds the query. A zero direction means Ascending.
func NewListItemsQuery(categoryID int64, direction sortable.Direction) (ListItemsQuery, error) {
	if categoryID < 0 {
		return ListItemsQuery{}, ErrCategoryIDIsInvalid
	}
	if direction == 0 {
		direction = sortable.Ascending
	}
	if !direction.Valid() {
		return ListItemsQuery{}, ErrDirectionIsInvalid
	}

	return ListItemsQuery{
		categoryID: categoryID,
		direction:  direction,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q ListItemsQuery) Validate() error {
	return q.guard.Validate(ErrListItemsQueryIsNotConstructed)
}

func (q ListItemsQuery) CategoryID() int64 {
	return q.categoryID
}

func (q ListItemsQuery) Direction() sortable.Direction {
	return q.direction
}

// ListItemsQueryResponse is one listed item.
type ListItemsQueryResponse struct {
	ID         kernel.UUID
	CategoryID int64
	Title      string
	Position   int
}
