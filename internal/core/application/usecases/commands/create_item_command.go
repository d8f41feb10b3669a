package commands

import (
	"errors"
	"strings"

	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/pkg/guard"
)

var (
	ErrCreateItemCommandIsNotConstructed = errors.New(
		"CreateItemCommand must be created via NewCreateItemCommand constructor",
	)
	ErrTitleIsRequired     = errors.New("title is required")
	ErrCategoryIDIsInvalid = errors.New("category id must not be negative")
)

// CreateItemCommand represents a request to add an item at the end of its category.
//
// Example:
//
//	cmd, err := NewCreateItemCommand(kernel.NewUUID(), 7, "Holiday photos")
//	if err != nil {
//	    return fmt.Errorf("invalid item data: %w", err)
//	}
//	position, err := handler.Handle(ctx, cmd)
type CreateItemCommand struct { //nolint:recvcheck //using for validation
	itemID     kernel.UUID
	categoryID int64
	title      string

	guard guard.ConstructorGuard
}

// NewCreateItemCommand validates the item fields and returns the command.
func NewCreateItemCommand(itemID kernel.UUID, categoryID int64, title string) (CreateItemCommand, error) {
	cmd := CreateItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setCategoryID(categoryID),
		cmd.setTitle(title),
	); err != nil {
		return CreateItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateItemCommand) Validate() error {
	return c.guard.Validate(ErrCreateItemCommandIsNotConstructed)
}

func (c CreateItemCommand) ItemID() kernel.UUID {
	return c.itemID
}

func (c CreateItemCommand) CategoryID() int64 {
	return c.categoryID
}

func (c CreateItemCommand) Title() string {
	return c.title
}

func (c *CreateItemCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}

	c.itemID = itemID
	return nil
}

func (c *CreateItemCommand) setCategoryID(categoryID int64) error {
	if categoryID < 0 {
		return ErrCategoryIDIsInvalid
	}

	c.categoryID = categoryID
	return nil
}

func (c *CreateItemCommand) setTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return ErrTitleIsRequired
	}

	c.title = title
	return nil
}
