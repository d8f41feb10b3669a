package ordering_test

import (
	"context"
	"errors"
	"sort"
	"testing"

	"sortable/internal/adapters/out/memory"
	"sortable/internal/core/application/ordering"
	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"

	"github.com/stretchr/testify/require"
)

var errWriteFailed = errors.New("write failed")

var testConfig = sortable.Config{
	Column:       "position",
	Key:          "id",
	Restrictions: []string{"category"},
}

func row(id string, category int64, position int) sortable.Attributes {
	return sortable.Attributes{"id": id, "category": category, "position": int64(position)}
}

type fixture struct {
	engine  *ordering.Engine
	store   *memory.Store
	factory *memory.UnitOfWorkFactory
}

func newFixture(t *testing.T, cfg sortable.Config, rows ...sortable.Attributes) *fixture {
	t.Helper()

	store, err := memory.NewStore(cfg)
	require.NoError(t, err)
	require.NoError(t, store.Seed(context.Background(), rows...))

	engine, err := ordering.NewEngine(store.Config(), nil)
	require.NoError(t, err)

	return &fixture{engine: engine, store: store, factory: memory.NewUnitOfWorkFactory(store)}
}

// positions returns committed positions by key.
func (f *fixture) positions(t *testing.T) map[string]int {
	t.Helper()
	entries, err := f.factory.Create().SortableRepository().Find(context.Background(), sortable.Filter{}, sortable.Ascending)
	require.NoError(t, err)

	out := make(map[string]int, len(entries))
	for _, e := range entries {
		out[sortable.CanonicalKey(e.Key)] = e.Position
	}
	return out
}

func (f *fixture) record(t *testing.T, key string) sortable.Record {
	t.Helper()
	entry, err := f.factory.Create().SortableRepository().Get(context.Background(), key)
	require.NoError(t, err)
	return entry.Record
}

// requireDense checks every category holds exactly the positions 1..N.
func (f *fixture) requireDense(t *testing.T) {
	t.Helper()
	entries, err := f.factory.Create().SortableRepository().Find(context.Background(), sortable.Filter{}, sortable.Ascending)
	require.NoError(t, err)

	byCategory := make(map[string][]int)
	for _, e := range entries {
		cat, _ := e.Record.Attribute("category")
		k := sortable.CanonicalKey(cat)
		byCategory[k] = append(byCategory[k], e.Position)
	}
	for cat, got := range byCategory {
		sort.Ints(got)
		for i, p := range got {
			require.Equalf(t, i+1, p, "category %s is not dense: %v", cat, got)
		}
	}
}

// instrumentedUoW counts position writes and scope locks and can fail the nth write.
type instrumentedUoW struct {
	ports.UnitOfWork
	failOnWrite int
	writes      int
	locks       []string
}

func (u *instrumentedUoW) SortableRepository() ports.SortableRepository {
	return &instrumentedRepo{SortableRepository: u.UnitOfWork.SortableRepository(), uow: u}
}

type instrumentedRepo struct {
	ports.SortableRepository
	uow *instrumentedUoW
}

func (r *instrumentedRepo) SetPosition(ctx context.Context, key any, position int) error {
	r.uow.writes++
	if r.uow.failOnWrite > 0 && r.uow.writes == r.uow.failOnWrite {
		return errWriteFailed
	}
	return r.SortableRepository.SetPosition(ctx, key, position)
}

func (r *instrumentedRepo) LockScope(ctx context.Context, restrictions sortable.Restrictions) error {
	r.uow.locks = append(r.uow.locks, restrictions.Canonical())
	return r.SortableRepository.LockScope(ctx, restrictions)
}
