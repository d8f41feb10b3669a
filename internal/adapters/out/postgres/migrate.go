package postgres

import (
	"sortable/internal/adapters/out/postgres/itemrepo"

	"gorm.io/gorm"
)

// Migrate creates or updates the tables this service owns.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&itemrepo.ItemDTO{})
}
