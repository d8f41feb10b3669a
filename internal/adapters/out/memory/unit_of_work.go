package memory

import (
	"context"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"
)

// UnitOfWorkFactory creates units of work over one Store.
type UnitOfWorkFactory struct {
	store *Store
}

func NewUnitOfWorkFactory(store *Store) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{store: store}
}

// Create returns a fresh unit of work without an open transaction.
func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{store: f.store}
}

// UnitOfWork is the memory implementation of ports.UnitOfWork. A single
// instance must not be shared between goroutines.
type UnitOfWork struct {
	store *Store
	tx    map[string]sortable.Attributes
}

// Begin takes the store's write token and snapshots the table. It blocks while
// another transaction is open, or until ctx is done.
func (u *UnitOfWork) Begin(ctx context.Context) error {
	if u.tx != nil {
		return nil
	}
	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	u.tx = u.store.snapshot()
	return nil
}

func (u *UnitOfWork) Commit(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.store.replace(u.tx)
	u.tx = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) Rollback(_ context.Context) error {
	if u.tx == nil {
		return ErrNoTransaction
	}
	u.tx = nil
	u.store.release()
	return nil
}

func (u *UnitOfWork) InTransaction() bool {
	return u.tx != nil
}

func (u *UnitOfWork) SortableRepository() ports.SortableRepository {
	return &SortableRepository{cfg: u.store.cfg, access: u.access}
}

func (u *UnitOfWork) ItemRepository() ports.ItemRepository {
	return &ItemRepository{cfg: u.store.cfg, access: u.access}
}

// access hands fn the rows to work on: the transaction copy when one is open,
// otherwise the committed table under the matching lock.
func (u *UnitOfWork) access(ctx context.Context, write bool, fn func(rows map[string]sortable.Attributes) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}

	if !write {
		u.store.mu.RLock()
		defer u.store.mu.RUnlock()
		return fn(u.store.rows)
	}

	if err := u.store.acquire(ctx); err != nil {
		return err
	}
	defer u.store.release()

	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(u.store.rows)
}

type accessFunc func(ctx context.Context, write bool, fn func(rows map[string]sortable.Attributes) error) error
