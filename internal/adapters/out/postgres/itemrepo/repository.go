package itemrepo

import (
	"context"
	"errors"

	"sortable/internal/core/domain/model/item"
	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormItemRepository implements ports.ItemRepository using GORM.
type GormItemRepository struct {
	db *gorm.DB
}

// NewGormItemRepository creates a repository bound to db, which may be a transaction.
func NewGormItemRepository(db *gorm.DB) *GormItemRepository {
	return &GormItemRepository{db: db}
}

// Add inserts a new item with its assigned position.
func (r *GormItemRepository) Add(ctx context.Context, aggregate *item.Item) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	return r.db.WithContext(ctx).Create(&dto).Error
}

// Get retrieves an item by ID.
func (r *GormItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ItemDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("item", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// Delete removes an item by ID.
func (r *GormItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).Delete(&ItemDTO{}, "id = ?", id.Bytes())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("item", id.String())
	}
	return nil
}

// ListByCategory returns the category's items by ascending position.
func (r *GormItemRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*item.Item, error) {
	var dtos []ItemDTO
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("sort_order ASC, id ASC").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	items := make([]*item.Item, 0, len(dtos))
	for _, dto := range dtos {
		it, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}

	return items, nil
}
