package commands

import (
	"context"

	"sortable/internal/core/application/ordering"
)

// ReorderItemsCommandHandler applies a client-submitted order. The engine
// owns the transaction: the whole permutation commits or nothing does.
type ReorderItemsCommandHandler struct {
	uowFactory OrderingUoWFactory
	engine     *ordering.Engine
}

func NewReorderItemsCommandHandler(uowFactory OrderingUoWFactory, engine *ordering.Engine) ReorderItemsCommandHandler {
	return ReorderItemsCommandHandler{
		uowFactory: uowFactory,
		engine:     engine,
	}
}

func (h *ReorderItemsCommandHandler) Handle(ctx context.Context, cmd ReorderItemsCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.engine.ApplyOrder(ctx, h.uowFactory.Create(), cmd.Keys(), cmd.Direction())
}
