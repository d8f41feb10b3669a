package commands

import (
	"errors"
	"fmt"

	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/guard"
)

var (
	ErrReorderItemsCommandIsNotConstructed = errors.New(
		"ReorderItemsCommand must be created via NewReorderItemsCommand constructor",
	)
	ErrItemIDsAreRequired  = errors.New("at least one item id is required")
	ErrItemIDsMustBeUnique = errors.New("item ids must be unique")
	ErrDirectionIsInvalid  = errors.New("direction must be ascending or descending")
)

// ReorderItemsCommand carries a client-submitted order of item IDs. With
// Descending the first ID ends up with the highest position.
//
// Example:
//
//	cmd, err := NewReorderItemsCommand([]kernel.UUID{c, a, b}, sortable.Descending)
//	if err != nil {
//	    return err
//	}
//	err = handler.Handle(ctx, cmd)
type ReorderItemsCommand struct { //nolint:recvcheck //using for validation
	itemIDs   []kernel.UUID
	direction sortable.Direction

	guard guard.ConstructorGuard
}

func NewReorderItemsCommand(itemIDs []kernel.UUID, direction sortable.Direction) (ReorderItemsCommand, error) {
	cmd := ReorderItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemIDs(itemIDs),
		cmd.setDirection(direction),
	); err != nil {
		return ReorderItemsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ReorderItemsCommand) Validate() error {
	return c.guard.Validate(ErrReorderItemsCommandIsNotConstructed)
}

func (c ReorderItemsCommand) ItemIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.itemIDs...)
}

func (c ReorderItemsCommand) Direction() sortable.Direction {
	return c.direction
}

// Keys returns the item IDs in the form the position store is keyed by.
func (c ReorderItemsCommand) Keys() []any {
	keys := make([]any, len(c.itemIDs))
	for i, id := range c.itemIDs {
		keys[i] = id.String()
	}
	return keys
}

func (c *ReorderItemsCommand) setItemIDs(itemIDs []kernel.UUID) error {
	if len(itemIDs) == 0 {
		return ErrItemIDsAreRequired
	}

	seen := make(map[kernel.UUID]struct{}, len(itemIDs))
	for i, id := range itemIDs {
		if err := id.Validate(); err != nil {
			return fmt.Errorf("item id #%d: %w", i, err)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrItemIDsMustBeUnique, id)
		}
		seen[id] = struct{}{}
	}

	c.itemIDs = append([]kernel.UUID(nil), itemIDs...)
	return nil
}

func (c *ReorderItemsCommand) setDirection(direction sortable.Direction) error {
	if direction == 0 {
		direction = sortable.Descending
	}
	if !direction.Valid() {
		return ErrDirectionIsInvalid
	}

	c.direction = direction
	return nil
}
