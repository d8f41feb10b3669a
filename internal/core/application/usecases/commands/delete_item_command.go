package commands

import (
	"errors"

	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/pkg/guard"
)

var ErrDeleteItemCommandIsNotConstructed = errors.New(
	"DeleteItemCommand must be created via NewDeleteItemCommand constructor",
)

// DeleteItemCommand represents a request to remove an item. The remaining
// items of its category are renumbered afterwards.
type DeleteItemCommand struct { //nolint:recvcheck //using for validation
	itemID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteItemCommand(itemID kernel.UUID) (DeleteItemCommand, error) {
	cmd := DeleteItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := cmd.setItemID(itemID); err != nil {
		return DeleteItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c DeleteItemCommand) Validate() error {
	return c.guard.Validate(ErrDeleteItemCommandIsNotConstructed)
}

func (c DeleteItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c *DeleteItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}
