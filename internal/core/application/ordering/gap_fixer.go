package ordering

import (
	"context"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"
	"sortable/internal/pkg/errs"
	"sortable/internal/pkg/metrics"
)

// Repack renumbers every record matching restrictions to 1..N per scope,
// walking them in ascending position order, and returns how many rows it
// wrote. Rows already at the right position are not written, so a second run
// returns 0.
//
// Records are grouped by their own restriction attribute values before
// numbering: a restriction set spanning two categories packs each category
// separately, and an empty set packs every scope in the table.
func (e *Engine) Repack(ctx context.Context, uow UnitOfWork, restrictions sortable.Restrictions) (int, error) {
	updated := 0

	err := inTransaction(ctx, uow, func(repo ports.SortableRepository) error {
		entries, err := repo.Find(ctx, sortable.Filter{Restrictions: restrictions, ForUpdate: true}, sortable.Ascending)
		if err != nil {
			return errs.NewPersistenceError("read scope", err)
		}

		next := make(map[string]int)
		for _, entry := range entries {
			partition := sortable.PartitionKey(entry.Record, e.cfg.Restrictions)
			next[partition]++
			want := next[partition]

			if entry.Position == want {
				continue
			}
			if err = repo.SetPosition(ctx, entry.Key, want); err != nil {
				return errs.NewPersistenceError("repack", err)
			}
			updated++
		}
		return nil
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "repack failed",
			"scope", restrictions.Canonical(),
			"error", err)
		return 0, err
	}
	metrics.RecordPositionWrites("repack", updated)

	if updated > 0 {
		e.logger.InfoContext(ctx, "scope repacked",
			"scope", restrictions.Canonical(),
			"updated", updated)
	}
	return updated, nil
}

// RepackAll repacks every scope of the record type.
func (e *Engine) RepackAll(ctx context.Context, uow UnitOfWork) (int, error) {
	return e.Repack(ctx, uow, sortable.Restrictions{})
}

// OnAfterDelete is the delete hook: it repacks the scope the removed record
// belonged to. Call it after the delete is durable.
func (e *Engine) OnAfterDelete(ctx context.Context, uow UnitOfWork, record sortable.Record) (int, error) {
	return e.Repack(ctx, uow, e.Restrictions(record))
}
