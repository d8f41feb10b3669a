package memory

import (
	"context"
	"fmt"
	"sort"

	"sortable/internal/core/domain/model/item"
	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"
)

var itemAttributes = []string{item.AttrID, item.AttrCategoryID, item.AttrTitle}

// ItemRepository implements ports.ItemRepository over the memory table. The
// store must be keyed by item.AttrID.
type ItemRepository struct {
	cfg    sortable.Config
	access accessFunc
}

func (r *ItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	row := make(sortable.Attributes, len(itemAttributes)+1)
	for _, attr := range itemAttributes {
		row[attr], _ = aggregate.Attribute(attr)
	}
	row[r.cfg.Column] = int64(aggregate.Position())

	return r.access(ctx, true, func(rows map[string]sortable.Attributes) error {
		key := aggregate.ID().String()
		if _, exists := rows[key]; exists {
			return fmt.Errorf("%w: item %s", ErrDuplicateKey, key)
		}
		rows[key] = row
		return nil
	})
}

func (r *ItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	var found *item.Item
	err := r.access(ctx, false, func(rows map[string]sortable.Attributes) error {
		row, ok := rows[id.String()]
		if !ok {
			return errs.NewObjectNotFoundError("item", id.String())
		}
		it, err := r.toDomain(row)
		if err != nil {
			return err
		}
		found = it
		return nil
	})
	return found, err
}

func (r *ItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	return r.access(ctx, true, func(rows map[string]sortable.Attributes) error {
		if _, ok := rows[id.String()]; !ok {
			return errs.NewObjectNotFoundError("item", id.String())
		}
		delete(rows, id.String())
		return nil
	})
}

func (r *ItemRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*item.Item, error) {
	var items []*item.Item
	err := r.access(ctx, false, func(rows map[string]sortable.Attributes) error {
		for _, row := range rows {
			cat, _ := sortable.IntValue(row[item.AttrCategoryID])
			if cat != categoryID {
				continue
			}
			it, err := r.toDomain(row)
			if err != nil {
				return err
			}
			items = append(items, it)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].Position() != items[j].Position() {
			return items[i].Position() < items[j].Position()
		}
		return items[i].ID().String() < items[j].ID().String()
	})
	return items, nil
}

func (r *ItemRepository) toDomain(row sortable.Attributes) (*item.Item, error) {
	id, err := kernel.UUIDFromString(sortable.CanonicalKey(row[item.AttrID]))
	if err != nil {
		return nil, err
	}
	categoryID, _ := sortable.IntValue(row[item.AttrCategoryID])
	title, _ := row[item.AttrTitle].(string)
	position, _ := sortable.IntValue(row[r.cfg.Column])

	return item.Restore(id, categoryID, title, int(position))
}
