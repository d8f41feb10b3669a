package commands

import (
	"context"

	"sortable/internal/core/application/ordering"
)

// DeleteItemCommandHandler removes an item and closes the gap it leaves.
//
// The delete commits first; the repack runs in its own transaction. If the
// repack fails the item stays deleted and the gap remains until the next
// repack, and the error is returned.
type DeleteItemCommandHandler struct {
	uowFactory ItemUoWFactory
	engine     *ordering.Engine
}

func NewDeleteItemCommandHandler(uowFactory ItemUoWFactory, engine *ordering.Engine) DeleteItemCommandHandler {
	return DeleteItemCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle deletes the item and returns how many positions the repack rewrote.
func (h *DeleteItemCommandHandler) Handle(ctx context.Context, cmd DeleteItemCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ItemRepository()
	it, err := repo.Get(ctx, cmd.ItemID())
	if err != nil {
		return 0, err
	}

	if err = repo.Delete(ctx, cmd.ItemID()); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return h.engine.OnAfterDelete(ctx, uow, it)
}
