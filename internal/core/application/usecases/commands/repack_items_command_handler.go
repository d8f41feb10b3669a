package commands

import (
	"context"

	"sortable/internal/core/application/ordering"
	"sortable/internal/core/domain/model/item"
)

// RepackItemsCommandHandler closes gaps and ties left by direct writes or
// failed repacks.
type RepackItemsCommandHandler struct {
	uowFactory OrderingUoWFactory
	engine     *ordering.Engine
}

func NewRepackItemsCommandHandler(uowFactory OrderingUoWFactory, engine *ordering.Engine) RepackItemsCommandHandler {
	return RepackItemsCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

// Handle returns the number of positions rewritten.
func (h *RepackItemsCommandHandler) Handle(ctx context.Context, cmd RepackItemsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if cmd.IsAll() {
		return h.engine.RepackAll(ctx, uow)
	}

	restrictions := h.engine.Config().NewRestrictions()
	for _, id := range cmd.CategoryIDs() {
		restrictions.Add(item.AttrCategoryID, id)
	}
	return h.engine.Repack(ctx, uow, restrictions)
}
