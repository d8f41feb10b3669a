package memory

import (
	"context"
	"sort"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"
)

// SortableRepository implements ports.SortableRepository over the memory table.
type SortableRepository struct {
	cfg    sortable.Config
	access accessFunc
}

func (r *SortableRepository) MaxPosition(ctx context.Context, filter sortable.Filter) (int, error) {
	maxPosition := 0
	err := r.access(ctx, false, func(rows map[string]sortable.Attributes) error {
		for _, row := range r.matching(rows, filter) {
			if p := r.cfg.PositionOf(row); p > maxPosition {
				maxPosition = p
			}
		}
		return nil
	})
	return maxPosition, err
}

// Find ignores filter.ForUpdate: the open transaction already excludes other writers.
func (r *SortableRepository) Find(ctx context.Context, filter sortable.Filter, dir sortable.Direction) ([]sortable.Entry, error) {
	var entries []sortable.Entry
	err := r.access(ctx, false, func(rows map[string]sortable.Attributes) error {
		matched := r.matching(rows, filter)
		entries = make([]sortable.Entry, 0, len(matched))
		for _, row := range matched {
			entries = append(entries, r.entry(row))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Position != b.Position {
			if dir.IsDescending() {
				return a.Position > b.Position
			}
			return a.Position < b.Position
		}
		return sortable.CanonicalKey(a.Key) < sortable.CanonicalKey(b.Key)
	})
	return entries, nil
}

func (r *SortableRepository) Get(ctx context.Context, key any) (sortable.Entry, error) {
	var entry sortable.Entry
	err := r.access(ctx, false, func(rows map[string]sortable.Attributes) error {
		row, ok := rows[sortable.CanonicalKey(key)]
		if !ok {
			return errs.NewObjectNotFoundError(r.cfg.Key, sortable.CanonicalKey(key))
		}
		entry = r.entry(row)
		return nil
	})
	return entry, err
}

func (r *SortableRepository) SetPosition(ctx context.Context, key any, position int) error {
	return r.access(ctx, true, func(rows map[string]sortable.Attributes) error {
		row, ok := rows[sortable.CanonicalKey(key)]
		if !ok {
			return errs.NewObjectNotFoundError(r.cfg.Key, sortable.CanonicalKey(key))
		}
		row[r.cfg.Column] = int64(position)
		return nil
	})
}

// LockScope is a no-op: transactions are already serialized store-wide.
func (r *SortableRepository) LockScope(_ context.Context, _ sortable.Restrictions) error {
	return nil
}

func (r *SortableRepository) matching(rows map[string]sortable.Attributes, filter sortable.Filter) []sortable.Attributes {
	var keys map[string]struct{}
	if len(filter.Keys) > 0 {
		keys = make(map[string]struct{}, len(filter.Keys))
		for _, k := range filter.Keys {
			keys[sortable.CanonicalKey(k)] = struct{}{}
		}
	}

	out := make([]sortable.Attributes, 0, len(rows))
	for k, row := range rows {
		if keys != nil {
			if _, ok := keys[k]; !ok {
				continue
			}
		}
		if !filter.Restrictions.IsEmpty() && !filter.Restrictions.Matches(row) {
			continue
		}
		out = append(out, row)
	}
	return out
}

func (r *SortableRepository) entry(row sortable.Attributes) sortable.Entry {
	key, _ := r.cfg.KeyOf(row)
	return sortable.Entry{
		Key:      key,
		Position: r.cfg.PositionOf(row),
		Record:   row.Clone(),
	}
}
