package memory_test

import (
	"context"
	"testing"
	"time"

	"sortable/internal/adapters/out/memory"
	"sortable/internal/core/domain/model/item"
	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *memory.Store {
	t.Helper()
	store, err := memory.NewStore(sortable.Config{Column: "position", Restrictions: []string{"category"}})
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(),
		sortable.Attributes{"id": "A", "category": int64(1), "position": int64(1)},
		sortable.Attributes{"id": "B", "category": int64(1), "position": int64(2)},
		sortable.Attributes{"id": "C", "category": int64(2), "position": int64(1)},
	))
	return store
}

func TestNewStore_DefaultsKey(t *testing.T) {
	store, err := memory.NewStore(sortable.Config{})
	require.NoError(t, err)
	assert.Equal(t, memory.DefaultKey, store.Config().Key)
	assert.Equal(t, sortable.DefaultColumn, store.Config().Column)
}

func TestNewStore_InvalidConfig(t *testing.T) {
	_, err := memory.NewStore(sortable.Config{Column: "position", Restrictions: []string{"position"}})
	assert.ErrorIs(t, err, errs.ErrConfiguration)
}

func TestStore_SeedRejectsDuplicates(t *testing.T) {
	store := newStore(t)
	err := store.Seed(context.Background(), sortable.Attributes{"id": "A"})
	assert.ErrorIs(t, err, memory.ErrDuplicateKey)
	assert.Equal(t, 3, store.Len())
}

func TestUnitOfWork_CommitPublishesChanges(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uow := memory.NewUnitOfWorkFactory(store).Create()

	require.NoError(t, uow.Begin(ctx))
	assert.True(t, uow.InTransaction())
	require.NoError(t, uow.SortableRepository().SetPosition(ctx, "A", 5))

	reader := memory.NewUnitOfWorkFactory(store).Create()
	before, err := reader.SortableRepository().Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, before.Position)

	require.NoError(t, uow.Commit(ctx))
	assert.False(t, uow.InTransaction())

	after, err := reader.SortableRepository().Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 5, after.Position)
}

func TestUnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	uow := memory.NewUnitOfWorkFactory(store).Create()

	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SortableRepository().SetPosition(ctx, "A", 9))
	require.NoError(t, uow.Rollback(ctx))

	entry, err := uow.SortableRepository().Get(ctx, "A")
	require.NoError(t, err)
	assert.Equal(t, 1, entry.Position)
}

func TestUnitOfWork_CommitWithoutTransaction(t *testing.T) {
	uow := memory.NewUnitOfWorkFactory(newStore(t)).Create()
	assert.ErrorIs(t, uow.Commit(context.Background()), memory.ErrNoTransaction)
	assert.ErrorIs(t, uow.Rollback(context.Background()), memory.ErrNoTransaction)
}

func TestUnitOfWork_BeginWaitsForOpenTransaction(t *testing.T) {
	store := newStore(t)
	factory := memory.NewUnitOfWorkFactory(store)

	first := factory.Create()
	require.NoError(t, first.Begin(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, factory.Create().Begin(ctx), context.DeadlineExceeded)

	require.NoError(t, first.Rollback(context.Background()))
	second := factory.Create()
	require.NoError(t, second.Begin(context.Background()))
	require.NoError(t, second.Rollback(context.Background()))
}

func TestSortableRepository_Find(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(newStore(t)).Create().SortableRepository()

	scope := sortable.NewRestrictions("category")
	scope.Add("category", 1)

	asc, err := repo.Find(ctx, sortable.Filter{Restrictions: scope}, sortable.Ascending)
	require.NoError(t, err)
	require.Len(t, asc, 2)
	assert.Equal(t, "A", asc[0].Key)
	assert.Equal(t, "B", asc[1].Key)

	desc, err := repo.Find(ctx, sortable.Filter{Restrictions: scope}, sortable.Descending)
	require.NoError(t, err)
	assert.Equal(t, "B", desc[0].Key)

	byKey, err := repo.Find(ctx, sortable.Filter{Keys: []any{"C", "A"}}, sortable.Ascending)
	require.NoError(t, err)
	require.Len(t, byKey, 2)
	assert.Equal(t, "A", byKey[0].Key, "ties on position break by key")
	assert.Equal(t, "C", byKey[1].Key)
}

func TestSortableRepository_MaxPosition(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(newStore(t)).Create().SortableRepository()

	scope := sortable.NewRestrictions("category")
	scope.Add("category", "1")
	got, err := repo.MaxPosition(ctx, sortable.Filter{Restrictions: scope})
	require.NoError(t, err)
	assert.Equal(t, 2, got)

	empty := sortable.NewRestrictions("category")
	empty.Add("category", 99)
	got, err = repo.MaxPosition(ctx, sortable.Filter{Restrictions: empty})
	require.NoError(t, err)
	assert.Equal(t, 0, got)
}

func TestSortableRepository_MissingKey(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(newStore(t)).Create().SortableRepository()

	_, err := repo.Get(ctx, "Z")
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.ErrorIs(t, repo.SetPosition(ctx, "Z", 1), errs.ErrObjectNotFound)
}

func TestItemRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := memory.NewStore(sortable.Config{
		Column:       item.AttrSortOrder,
		Key:          item.AttrID,
		Restrictions: []string{item.AttrCategoryID},
	})
	require.NoError(t, err)
	repo := memory.NewUnitOfWorkFactory(store).Create().ItemRepository()

	first, err := item.NewItem(kernel.NewUUID(), 3, "first")
	require.NoError(t, err)
	require.NoError(t, first.AssignPosition(2))
	second, err := item.NewItem(kernel.NewUUID(), 3, "second")
	require.NoError(t, err)
	require.NoError(t, second.AssignPosition(1))
	other, err := item.NewItem(kernel.NewUUID(), 4, "other")
	require.NoError(t, err)
	require.NoError(t, other.AssignPosition(1))

	for _, it := range []*item.Item{first, second, other} {
		require.NoError(t, repo.Add(ctx, it))
	}
	assert.ErrorIs(t, repo.Add(ctx, first), memory.ErrDuplicateKey)

	got, err := repo.Get(ctx, first.ID())
	require.NoError(t, err)
	assert.Equal(t, "first", got.Title())
	assert.Equal(t, int64(3), got.CategoryID())
	assert.Equal(t, 2, got.Position())

	listed, err := repo.ListByCategory(ctx, 3)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.True(t, listed[0].ID().IsEqual(second.ID()))
	assert.True(t, listed[1].ID().IsEqual(first.ID()))

	require.NoError(t, repo.Delete(ctx, first.ID()))
	_, err = repo.Get(ctx, first.ID())
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID()), errs.ErrObjectNotFound)
}

func TestSortableRepository_FindWholeTable(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewUnitOfWorkFactory(newStore(t)).Create().SortableRepository()

	all, err := repo.Find(ctx, sortable.Filter{Restrictions: sortable.NewRestrictions("category")}, sortable.Ascending)
	require.NoError(t, err)
	require.Len(t, all, 3)

	got, err := repo.MaxPosition(ctx, sortable.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}
