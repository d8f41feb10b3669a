package ordering

import (
	"context"
	"fmt"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"
	"sortable/internal/pkg/metrics"
)

// AssignInitialPosition returns the position a new record should be stored
// with: one past the highest position in the record's scope, 1 for an empty
// scope. Only attributes are read, so it works before storage assigns a key.
//
// Without Config.LockOnInsert two concurrent inserts into one scope can read the
// same maximum and both store it. With LockOnInsert the scope is locked first;
// uow must then be in a transaction that also performs the insert.
func (e *Engine) AssignInitialPosition(ctx context.Context, uow UnitOfWork, record sortable.Record) (int, error) {
	restrictions := e.Restrictions(record)
	repo := uow.SortableRepository()

	if e.cfg.LockOnInsert {
		if !uow.InTransaction() {
			return 0, errs.NewPreconditionError("assign initial position",
				"scope locking requires the insert transaction to be open")
		}
		if err := repo.LockScope(ctx, restrictions); err != nil {
			return 0, errs.NewPersistenceError("lock scope "+restrictions.Canonical(), err)
		}
	}

	maxPosition, err := repo.MaxPosition(ctx, sortable.Filter{Restrictions: restrictions})
	if err != nil {
		return 0, errs.NewPersistenceError("read max position", err)
	}
	metrics.RecordInsertPosition(e.cfg.LockOnInsert)

	return maxPosition + 1, nil
}

// OnBeforeCreate is the create hook: it checks the record type carries the
// position attribute and returns the initial position. The caller stores it on
// the record before the insert completes.
func (e *Engine) OnBeforeCreate(ctx context.Context, uow UnitOfWork, record sortable.Record) (int, error) {
	if _, ok := record.Attribute(e.cfg.Column); !ok {
		return 0, errs.NewConfigurationError("column",
			fmt.Sprintf("invalid sortable column `%s`", e.cfg.Column))
	}

	position, err := e.AssignInitialPosition(ctx, uow, record)
	if err != nil {
		return 0, err
	}

	e.logger.DebugContext(ctx, "initial position assigned",
		"position", position,
		"locked", e.cfg.LockOnInsert)
	return position, nil
}
