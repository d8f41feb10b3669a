package queries

import (
	"context"

	"sortable/internal/core/application/ordering"
	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"
)

// GetItemNavigationQueryHandler answers first/last/neighbour/rank questions
// through the ordering engine's navigator. Each call reads current state.
type GetItemNavigationQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	engine     *ordering.Engine
}

func NewGetItemNavigationQueryHandler(uowFactory ports.UnitOfWorkFactory, engine *ordering.Engine) GetItemNavigationQueryHandler {
	return GetItemNavigationQueryHandler{uowFactory: uowFactory, engine: engine}
}

func (h GetItemNavigationQueryHandler) Handle(
	ctx context.Context,
	query GetItemNavigationQuery,
) (GetItemNavigationQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetItemNavigationQueryResponse{}, err
	}

	uow := h.uowFactory.Create()
	it, err := uow.ItemRepository().Get(ctx, query.ItemID())
	if err != nil {
		return GetItemNavigationQueryResponse{}, err
	}

	nav := h.engine.Navigator(uow, it)
	dir := query.Direction()
	resp := GetItemNavigationQueryResponse{ID: it.ID()}

	if resp.Position, err = nav.CurrentPosition(ctx, false); err != nil {
		return GetItemNavigationQueryResponse{}, err
	}
	if resp.ReversePosition, err = nav.CurrentPosition(ctx, true); err != nil {
		return GetItemNavigationQueryResponse{}, err
	}
	if resp.IsFirst, err = nav.IsFirst(ctx, dir); err != nil {
		return GetItemNavigationQueryResponse{}, err
	}
	if resp.IsLast, err = nav.IsLast(ctx, dir); err != nil {
		return GetItemNavigationQueryResponse{}, err
	}

	prev, ok, err := nav.Prev(ctx, dir)
	if err != nil {
		return GetItemNavigationQueryResponse{}, err
	}
	if resp.Prev, err = neighbourID(prev, ok); err != nil {
		return GetItemNavigationQueryResponse{}, err
	}

	next, ok, err := nav.Next(ctx, dir)
	if err != nil {
		return GetItemNavigationQueryResponse{}, err
	}
	if resp.Next, err = neighbourID(next, ok); err != nil {
		return GetItemNavigationQueryResponse{}, err
	}

	return resp, nil
}

func neighbourID(key any, ok bool) (*kernel.UUID, error) {
	if !ok {
		return nil, nil //nolint:nilnil // no neighbour
	}
	id, err := kernel.UUIDFromString(sortable.CanonicalKey(key))
	if err != nil {
		return nil, err
	}
	return &id, nil
}
