package commands_test

import (
	"context"
	"testing"

	"sortable/internal/adapters/out/memory"
	"sortable/internal/core/application/ordering"
	"sortable/internal/core/application/usecases/commands"
	"sortable/internal/core/domain/model/item"
	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockItemRepository struct{ mock.Mock }

func (m *MockItemRepository) Add(ctx context.Context, it *item.Item) error {
	args := m.Called(ctx, it)
	return args.Error(0)
}

func (m *MockItemRepository) Get(ctx context.Context, id kernel.UUID) (*item.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*item.Item), args.Error(1)
}

func (m *MockItemRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) ListByCategory(ctx context.Context, categoryID int64) ([]*item.Item, error) {
	args := m.Called(ctx, categoryID)
	return args.Get(0).([]*item.Item), args.Error(1)
}

type MockSortableRepository struct{ mock.Mock }

func (m *MockSortableRepository) MaxPosition(ctx context.Context, filter sortable.Filter) (int, error) {
	args := m.Called(ctx, filter)
	return args.Int(0), args.Error(1)
}

func (m *MockSortableRepository) Find(ctx context.Context, filter sortable.Filter, dir sortable.Direction) ([]sortable.Entry, error) {
	args := m.Called(ctx, filter, dir)
	return args.Get(0).([]sortable.Entry), args.Error(1)
}

func (m *MockSortableRepository) Get(ctx context.Context, key any) (sortable.Entry, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(sortable.Entry), args.Error(1)
}

func (m *MockSortableRepository) SetPosition(ctx context.Context, key any, position int) error {
	args := m.Called(ctx, key, position)
	return args.Error(0)
}

func (m *MockSortableRepository) LockScope(ctx context.Context, restrictions sortable.Restrictions) error {
	args := m.Called(ctx, restrictions)
	return args.Error(0)
}

type MockItemUoW struct{ mock.Mock }

func (m *MockItemUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockItemUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockItemUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockItemUoW) InTransaction() bool {
	args := m.Called()
	return args.Bool(0)
}

func (m *MockItemUoW) ItemRepository() ports.ItemRepository {
	args := m.Called()
	return args.Get(0).(ports.ItemRepository)
}

func (m *MockItemUoW) SortableRepository() ports.SortableRepository {
	args := m.Called()
	return args.Get(0).(ports.SortableRepository)
}

type MockItemUoWFactory struct{ mock.Mock }

func (m *MockItemUoWFactory) Create() commands.ItemUoW {
	args := m.Called()
	return args.Get(0).(commands.ItemUoW)
}

// memoryFactory serves both unit of work shapes from one in-memory store.
type memoryFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f memoryFactory) Create() commands.ItemUoW {
	return f.factory.Create()
}

type memoryOrderingFactory struct {
	factory *memory.UnitOfWorkFactory
}

func (f memoryOrderingFactory) Create() commands.OrderingUoW {
	return f.factory.Create()
}

type memoryFixture struct {
	store    *memory.Store
	engine   *ordering.Engine
	items    memoryFactory
	ordering memoryOrderingFactory
}

func newMemoryFixture(t *testing.T) *memoryFixture {
	t.Helper()

	store, err := memory.NewStore(sortable.Config{
		Column:       item.AttrSortOrder,
		Key:          item.AttrID,
		Restrictions: []string{item.AttrCategoryID},
	})
	require.NoError(t, err)

	engine, err := ordering.NewEngine(store.Config(), nil)
	require.NoError(t, err)

	factory := memory.NewUnitOfWorkFactory(store)
	return &memoryFixture{
		store:    store,
		engine:   engine,
		items:    memoryFactory{factory: factory},
		ordering: memoryOrderingFactory{factory: factory},
	}
}

func (f *memoryFixture) create(t *testing.T, categoryID int64, title string) kernel.UUID {
	t.Helper()

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateItemCommand(id, categoryID, title)
	require.NoError(t, err)

	h := commands.NewCreateItemCommandHandler(f.items, f.engine)
	_, err = h.Handle(context.Background(), cmd)
	require.NoError(t, err)
	return id
}

func (f *memoryFixture) positions(t *testing.T, categoryID int64) map[kernel.UUID]int {
	t.Helper()

	items, err := f.items.Create().ItemRepository().ListByCategory(context.Background(), categoryID)
	require.NoError(t, err)

	out := make(map[kernel.UUID]int, len(items))
	for _, it := range items {
		out[it.ID()] = it.Position()
	}
	return out
}

func mustEngine(t *testing.T, cfg sortable.Config) *ordering.Engine {
	t.Helper()
	engine, err := ordering.NewEngine(cfg, nil)
	require.NoError(t, err)
	return engine
}
