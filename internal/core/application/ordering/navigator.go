package ordering

import (
	"context"
	"fmt"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"
)

// Navigator answers positional questions about one record within its scope.
// Every call re-reads the scope; nothing is cached between calls.
type Navigator struct {
	engine *Engine
	uow    UnitOfWork
	owner  sortable.Record
}

// Navigator returns a navigator for owner. A zero direction passed to its
// methods means Ascending.
func (e *Engine) Navigator(uow UnitOfWork, owner sortable.Record) *Navigator {
	return &Navigator{engine: e, uow: uow, owner: owner}
}

// IsFirst reports whether the owner leads its scope in dir.
func (n *Navigator) IsFirst(ctx context.Context, dir sortable.Direction) (bool, error) {
	keys, ownerKey, err := n.sorted(ctx, dir)
	if err != nil || len(keys) == 0 {
		return false, err
	}
	return sortable.SameKey(keys[0], ownerKey), nil
}

// IsLast reports whether the owner closes its scope in dir.
func (n *Navigator) IsLast(ctx context.Context, dir sortable.Direction) (bool, error) {
	keys, ownerKey, err := n.sorted(ctx, dir)
	if err != nil || len(keys) == 0 {
		return false, err
	}
	return sortable.SameKey(keys[len(keys)-1], ownerKey), nil
}

// Prev returns the key just before the owner in dir. ok is false when the
// owner is first or not in the scope.
func (n *Navigator) Prev(ctx context.Context, dir sortable.Direction) (any, bool, error) {
	return n.neighbour(ctx, dir, -1)
}

// Next returns the key just after the owner in dir. ok is false when the
// owner is last or not in the scope.
func (n *Navigator) Next(ctx context.Context, dir sortable.Direction) (any, bool, error) {
	return n.neighbour(ctx, dir, +1)
}

// CurrentPosition returns the owner's position, or with reversed its rank
// counted from the other end: max+1-position.
func (n *Navigator) CurrentPosition(ctx context.Context, reversed bool) (int, error) {
	position := n.engine.cfg.PositionOf(n.owner)
	if !reversed {
		return position, nil
	}

	maxPosition, err := n.uow.SortableRepository().MaxPosition(ctx, sortable.Filter{
		Restrictions: n.engine.Restrictions(n.owner),
	})
	if err != nil {
		return 0, errs.NewPersistenceError("read max position", err)
	}
	return maxPosition + 1 - position, nil
}

func (n *Navigator) neighbour(ctx context.Context, dir sortable.Direction, step int) (any, bool, error) {
	keys, ownerKey, err := n.sorted(ctx, dir)
	if err != nil {
		return nil, false, err
	}

	for i, key := range keys {
		if !sortable.SameKey(key, ownerKey) {
			continue
		}
		j := i + step
		if j < 0 || j >= len(keys) {
			return nil, false, nil
		}
		return keys[j], true, nil
	}
	return nil, false, nil
}

func (n *Navigator) sorted(ctx context.Context, dir sortable.Direction) ([]any, any, error) {
	ownerKey, ok := n.engine.cfg.KeyOf(n.owner)
	if !ok {
		return nil, nil, errs.NewConfigurationError("key",
			fmt.Sprintf("record has no `%s` attribute", n.engine.cfg.Key))
	}
	if dir == 0 {
		dir = sortable.Ascending
	}

	entries, err := n.uow.SortableRepository().Find(ctx, sortable.Filter{
		Restrictions: n.engine.Restrictions(n.owner),
	}, dir)
	if err != nil {
		return nil, nil, errs.NewPersistenceError("read scope", err)
	}

	keys := make([]any, len(entries))
	for i, entry := range entries {
		keys[i] = entry.Key
	}
	return keys, ownerKey, nil
}
