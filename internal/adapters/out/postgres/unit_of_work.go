// Package postgres provides the GORM-based Unit of Work for the items table
// and the schema migration it depends on.
//
// Usage:
//
//	cfg, err := sortablerepo.ResolveConfig(db, itemrepo.TableName, cfg)
//	if err != nil {
//	    return err
//	}
//	factory := postgres.NewGormUnitOfWorkFactory(db, cfg)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    if uow.InTransaction() {
//	        _ = uow.Rollback(ctx)
//	    }
//	}()
//
//	if err := uow.ItemRepository().Add(ctx, it); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance owns at most one transaction
//   - Multiple goroutines should use separate UnitOfWork instances
//   - Position writes lock rows FOR UPDATE; scope locks are advisory and end with the transaction
package postgres

import (
	"context"

	"sortable/internal/adapters/out/postgres/itemrepo"
	"sortable/internal/adapters/out/postgres/sortablerepo"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db  *gorm.DB
	cfg sortable.Config
}

// NewGormUnitOfWorkFactory creates a factory whose units of work order the
// items table according to cfg. cfg must already be resolved against the schema.
func NewGormUnitOfWorkFactory(db *gorm.DB, cfg sortable.Config) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, cfg: cfg}
}

// Create produces a new UnitOfWork without an open transaction.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db, cfg: f.cfg}
}

// GormUnitOfWork coordinates one database transaction across the item and
// position repositories.
type GormUnitOfWork struct {
	db  *gorm.DB
	cfg sortable.Config
	tx  *gorm.DB
}

// Begin opens a transaction. Calling it again while one is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit finalizes the transaction. It returns gorm.ErrInvalidTransaction
// without an open transaction.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	return err
}

// Rollback discards the transaction. It returns gorm.ErrInvalidTransaction
// without an open transaction.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) InTransaction() bool {
	return uow.tx != nil
}

// SortableRepository returns the position store for the items table, bound to
// the open transaction if there is one.
func (uow *GormUnitOfWork) SortableRepository() ports.SortableRepository {
	return sortablerepo.NewGormSortableRepository(uow.conn(), itemrepo.TableName, uow.cfg)
}

// ItemRepository returns the item store, bound to the open transaction if there is one.
func (uow *GormUnitOfWork) ItemRepository() ports.ItemRepository {
	return itemrepo.NewGormItemRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
