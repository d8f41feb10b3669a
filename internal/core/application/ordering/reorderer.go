package ordering

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"
	"sortable/internal/pkg/errs"
	"sortable/internal/pkg/metrics"
)

// ApplyOrder rewrites the positions of the records named by keys so they
// follow the order of keys. The records keep the multiset of positions they
// already hold; only the assignment changes.
//
// With dir == Descending (also the zero value) the first key receives the
// largest of those positions; with Ascending it receives the smallest.
//
// The permutation is all-or-nothing: a missing key (errs.ErrObjectNotFound),
// a failed write (errs.ErrPersistence) or duplicate keys (errs.ErrPrecondition)
// roll the transaction back. After commit the touched scopes are repacked.
// Keys must be distinct; duplicates are not merged.
func (e *Engine) ApplyOrder(ctx context.Context, uow UnitOfWork, keys []any, dir sortable.Direction) (err error) {
	defer func() { metrics.RecordReorder(err) }()

	if len(keys) == 0 {
		return errs.NewPreconditionError("apply order", "no keys given")
	}
	if dir == 0 {
		dir = sortable.Descending
	}
	if !dir.Valid() {
		return errs.NewPreconditionError("apply order", fmt.Sprintf("unknown direction %d", dir))
	}

	restrictions := e.cfg.NewRestrictions()
	written := 0

	err = inTransaction(ctx, uow, func(repo ports.SortableRepository) error {
		var txErr error
		written, txErr = e.permute(ctx, repo, keys, dir, &restrictions)
		return txErr
	})
	if err != nil {
		e.logger.ErrorContext(ctx, "apply order failed",
			"keys", len(keys),
			"direction", dir.String(),
			"error", err)
		return err
	}
	metrics.RecordPositionWrites("reorder", written)

	e.logger.DebugContext(ctx, "order applied",
		"keys", len(keys),
		"direction", dir.String(),
		"written", written,
		"scope", restrictions.Canonical())

	if _, err = e.Repack(ctx, uow, restrictions); err != nil {
		return err
	}
	return nil
}

func (e *Engine) permute(
	ctx context.Context,
	repo ports.SortableRepository,
	keys []any,
	dir sortable.Direction,
	restrictions *sortable.Restrictions,
) (int, error) {
	targeted := sortable.Filter{Keys: keys}

	// Lock in ascending position order so overlapping reorders queue behind each other.
	if _, err := repo.Find(ctx, sortable.Filter{Keys: keys, ForUpdate: true}, sortable.Ascending); err != nil {
		return 0, errs.NewPersistenceError("lock targeted records", err)
	}

	maxPosition, err := repo.MaxPosition(ctx, targeted)
	if err != nil {
		return 0, errs.NewPersistenceError("read max position", err)
	}
	if maxPosition <= 0 {
		if err = e.resetPositions(ctx, repo, keys); err != nil {
			return 0, err
		}
	}

	current, err := repo.Find(ctx, targeted, dir)
	if err != nil {
		return 0, errs.NewPersistenceError("read current positions", err)
	}

	written := 0
	for i, key := range keys {
		entry, getErr := repo.Get(ctx, key)
		if getErr != nil {
			if errors.Is(getErr, errs.ErrObjectNotFound) {
				return 0, getErr
			}
			return 0, errs.NewPersistenceError("load record", getErr)
		}

		restrictions.Pull(entry.Record)

		if i >= len(current) {
			return 0, errs.NewPreconditionError("apply order",
				fmt.Sprintf("%d keys given but only %d distinct records matched; keys must be distinct", len(keys), len(current)))
		}

		target := current[i].Position
		if entry.Position == target {
			continue
		}
		if err = repo.SetPosition(ctx, entry.Key, target); err != nil {
			return 0, errs.NewPersistenceError("cannot set order", err)
		}
		written++
	}

	return written, nil
}

// resetPositions gives records without usable positions a deterministic
// starting order derived from their keys: integer keys become their own
// position, any other keys are ranked by their canonical text.
func (e *Engine) resetPositions(ctx context.Context, repo ports.SortableRepository, keys []any) error {
	fallback := fallbackPositions(keys)

	for _, key := range keys {
		if err := repo.SetPosition(ctx, key, fallback[sortable.CanonicalKey(key)]); err != nil {
			if errors.Is(err, errs.ErrObjectNotFound) {
				return err
			}
			return errs.NewPersistenceError("reset sort order", err)
		}
	}
	metrics.RecordPositionWrites("reset", len(keys))

	e.logger.WarnContext(ctx, "targeted records had no positions, reset from keys", "keys", len(keys))
	return nil
}

func fallbackPositions(keys []any) map[string]int {
	out := make(map[string]int, len(keys))

	numeric := true
	for _, key := range keys {
		n, ok := sortable.IntValue(key)
		if !ok || n <= 0 {
			numeric = false
			break
		}
		out[sortable.CanonicalKey(key)] = int(n)
	}
	if numeric {
		return out
	}

	canonical := make([]string, 0, len(keys))
	for _, key := range keys {
		canonical = append(canonical, sortable.CanonicalKey(key))
	}
	sort.Strings(canonical)

	out = make(map[string]int, len(keys))
	for i, k := range canonical {
		if _, seen := out[k]; !seen {
			out[k] = i + 1
		}
	}
	return out
}
