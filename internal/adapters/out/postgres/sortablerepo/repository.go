// Package sortablerepo stores positions for any GORM-reachable table. It reads
// rows as plain attribute maps, so one implementation serves every record type
// the ordering engine is configured for.
package sortablerepo

import (
	"context"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormSortableRepository implements ports.SortableRepository for one table.
type GormSortableRepository struct {
	db    *gorm.DB
	table string
	cfg   sortable.Config
}

// NewGormSortableRepository binds the repository to db, which may be a
// transaction. cfg must be resolved (see ResolveConfig).
func NewGormSortableRepository(db *gorm.DB, table string, cfg sortable.Config) *GormSortableRepository {
	return &GormSortableRepository{db: db, table: table, cfg: cfg}
}

// MaxPosition returns the highest position among matching rows, 0 for none.
func (r *GormSortableRepository) MaxPosition(ctx context.Context, filter sortable.Filter) (int, error) {
	var maxPosition int64
	err := r.scoped(ctx, filter).
		Select("COALESCE(MAX(?), 0)", clause.Column{Name: r.cfg.Column}).
		Scan(&maxPosition).Error
	if err != nil {
		return 0, err
	}
	return int(maxPosition), nil
}

// Find returns matching rows ordered by position in dir, then key ascending.
func (r *GormSortableRepository) Find(ctx context.Context, filter sortable.Filter, dir sortable.Direction) ([]sortable.Entry, error) {
	q := r.scoped(ctx, filter).
		Order(clause.OrderByColumn{Column: clause.Column{Name: r.cfg.Column}, Desc: dir.IsDescending()}).
		Order(clause.OrderByColumn{Column: clause.Column{Name: r.cfg.Key}})
	if filter.ForUpdate {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var rows []map[string]any
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}

	entries := make([]sortable.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, r.entry(row))
	}
	return entries, nil
}

// Get loads one row by key.
func (r *GormSortableRepository) Get(ctx context.Context, key any) (sortable.Entry, error) {
	var rows []map[string]any
	err := r.db.WithContext(ctx).
		Table(r.table).
		Clauses(clause.Where{Exprs: []clause.Expression{r.keyEq(key)}}).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return sortable.Entry{}, err
	}
	if len(rows) == 0 {
		return sortable.Entry{}, errs.NewObjectNotFoundError(r.cfg.Key, sortable.CanonicalKey(key))
	}
	return r.entry(rows[0]), nil
}

// SetPosition writes one row's position.
func (r *GormSortableRepository) SetPosition(ctx context.Context, key any, position int) error {
	result := r.db.WithContext(ctx).
		Table(r.table).
		Clauses(clause.Where{Exprs: []clause.Expression{r.keyEq(key)}}).
		Update(r.cfg.Column, position)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause(r.cfg.Key, sortable.CanonicalKey(key), gorm.ErrRecordNotFound)
	}
	return nil
}

// LockScope takes a transaction-scoped advisory lock named after the table and
// the scope. Outside a transaction Postgres releases it when the statement ends.
func (r *GormSortableRepository) LockScope(ctx context.Context, restrictions sortable.Restrictions) error {
	return r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", r.table+":"+restrictions.Canonical()).
		Error
}

func (r *GormSortableRepository) scoped(ctx context.Context, filter sortable.Filter) *gorm.DB {
	var exprs []clause.Expression
	if len(filter.Keys) > 0 {
		exprs = append(exprs, clause.IN{Column: clause.Column{Name: r.cfg.Key}, Values: filter.Keys})
	}
	for _, attr := range filter.Restrictions.Attributes() {
		exprs = append(exprs, clause.IN{Column: clause.Column{Name: attr}, Values: filter.Restrictions.Values(attr)})
	}

	q := r.db.WithContext(ctx).Table(r.table)
	if len(exprs) > 0 {
		q = q.Clauses(clause.Where{Exprs: exprs})
	}
	return q
}

func (r *GormSortableRepository) keyEq(key any) clause.Expression {
	return clause.Eq{Column: clause.Column{Name: r.cfg.Key}, Value: key}
}

func (r *GormSortableRepository) entry(row map[string]any) sortable.Entry {
	attrs := sortable.Attributes(row)
	key, _ := r.cfg.KeyOf(attrs)
	return sortable.Entry{
		Key:      key,
		Position: r.cfg.PositionOf(attrs),
		Record:   attrs,
	}
}
