package commands

import (
	"context"

	"sortable/internal/core/application/ordering"
	"sortable/internal/core/domain/model/item"
)

// CreateItemCommandHandler inserts an item at the end of its category.
// The position is assigned by the ordering engine inside the insert transaction.
//
// Example:
//
//	handler := NewCreateItemCommandHandler(uowFactory, engine)
//	cmd, _ := NewCreateItemCommand(kernel.NewUUID(), 7, "Holiday photos")
//
//	position, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("item creation failed: %w", err)
//	}
type CreateItemCommandHandler struct {
	uowFactory ItemUoWFactory
	engine     *ordering.Engine
}

func NewCreateItemCommandHandler(uowFactory ItemUoWFactory, engine *ordering.Engine) CreateItemCommandHandler {
	return CreateItemCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle creates the item and returns the position it was stored with.
func (h *CreateItemCommandHandler) Handle(ctx context.Context, cmd CreateItemCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	it, err := item.NewItem(cmd.ItemID(), cmd.CategoryID(), cmd.Title())
	if err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	position, err := h.engine.OnBeforeCreate(ctx, uow, it)
	if err != nil {
		return 0, err
	}
	if err = it.AssignPosition(position); err != nil {
		return 0, err
	}

	if err = uow.ItemRepository().Add(ctx, it); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return position, nil
}
