// Package itemrepo maps item aggregates to the items table.
package itemrepo

import (
	"sortable/internal/core/domain/model/item"
	"sortable/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// TableName is the items table. The ordering engine is configured against it.
const TableName = "items"

// ItemDTO is the row layout of the items table. Column names match the item
// attribute names the ordering engine reads.
type ItemDTO struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey"`
	CategoryID int64     `gorm:"not null;index:idx_items_category_sort,priority:1"`
	Title      string    `gorm:"size:255;not null"`
	SortOrder  int       `gorm:"not null;default:0;index:idx_items_category_sort,priority:2"`
}

func (ItemDTO) TableName() string {
	return TableName
}

func fromDomain(aggregate *item.Item) ItemDTO {
	return ItemDTO{
		ID:         aggregate.ID().Bytes(),
		CategoryID: aggregate.CategoryID(),
		Title:      aggregate.Title(),
		SortOrder:  aggregate.Position(),
	}
}

func toDomain(dto ItemDTO) (*item.Item, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return item.Restore(id, dto.CategoryID, dto.Title, dto.SortOrder)
}
