package queries

import (
	"context"
	"database/sql"

	"sortable/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListItemsQueryHandler reads a category's items straight from the items table.
//
// Example:
//
//	handler := NewListItemsQueryHandler(db)
//	query, _ := NewListItemsQuery(7, sortable.Ascending)
//
//	items, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return err
//	}
//	for _, it := range items {
//	    fmt.Printf("%d. %s\n", it.Position, it.Title)
//	}
type ListItemsQueryHandler struct {
	db *gorm.DB
}

func NewListItemsQueryHandler(db *gorm.DB) ListItemsQueryHandler {
	return ListItemsQueryHandler{db: db}
}

// Handle returns the items ordered by position in the query's direction,
// ties broken by id.
func (h ListItemsQueryHandler) Handle(ctx context.Context, query ListItemsQuery) ([]ListItemsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	order := "sort_order ASC, id ASC"
	if query.Direction().IsDescending() {
		order = "sort_order DESC, id ASC"
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			category_id,
			title,
			sort_order
		FROM items
		WHERE category_id = ?
		ORDER BY `+order, query.CategoryID()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]ListItemsQueryResponse, 0)
	for rows.Next() {
		var resp ListItemsQueryResponse
		var id uuid.UUID
		var position sql.NullInt64

		if err = rows.Scan(&id, &resp.CategoryID, &resp.Title, &position); err != nil {
			return nil, err
		}

		itemID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		resp.ID = itemID
		resp.Position = int(position.Int64)

		items = append(items, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
