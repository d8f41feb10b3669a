package ordering_test

import (
	"context"
	"testing"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepack_ClosesGapsPerScope(t *testing.T) {
	f := newFixture(t, testConfig,
		row("A", 1, 2), row("B", 1, 5), row("C", 1, 9),
		row("D", 2, 3), row("E", 2, 7),
	)

	scope := sortable.NewRestrictions("category")
	scope.Add("category", int64(1))
	scope.Add("category", int64(2))

	updated, err := f.engine.Repack(context.Background(), f.factory.Create(), scope)
	require.NoError(t, err)
	assert.Equal(t, 5, updated)
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3, "D": 1, "E": 2}, f.positions(t))

	updated, err = f.engine.Repack(context.Background(), f.factory.Create(), scope)
	require.NoError(t, err)
	assert.Zero(t, updated)
}

func TestRepack_LeavesOtherScopesAlone(t *testing.T) {
	f := newFixture(t, testConfig,
		row("A", 1, 4), row("B", 1, 6),
		row("D", 2, 3), row("E", 2, 7),
	)

	scope := sortable.NewRestrictions("category")
	scope.Add("category", "2")

	updated, err := f.engine.Repack(context.Background(), f.factory.Create(), scope)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, map[string]int{"A": 4, "B": 6, "D": 1, "E": 2}, f.positions(t))
}

func TestRepack_BreaksTiesByKey(t *testing.T) {
	f := newFixture(t, testConfig, row("B", 1, 2), row("A", 1, 2), row("C", 1, 1))

	_, err := f.engine.RepackAll(context.Background(), f.factory.Create())
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"C": 1, "A": 2, "B": 3}, f.positions(t))
}

func TestRepack_FailureRollsBack(t *testing.T) {
	f := newFixture(t, testConfig, row("A", 1, 3), row("B", 1, 6))
	uow := &instrumentedUoW{UnitOfWork: f.factory.Create(), failOnWrite: 2}

	_, err := f.engine.RepackAll(context.Background(), uow)
	require.ErrorIs(t, err, errs.ErrPersistence)
	assert.Equal(t, map[string]int{"A": 3, "B": 6}, f.positions(t))
}

func TestRepackAll_WithoutRestrictions(t *testing.T) {
	f := newFixture(t, sortable.Config{Column: "position", Key: "id"},
		row("A", 1, 10), row("B", 2, 20), row("C", 3, 30),
	)

	updated, err := f.engine.RepackAll(context.Background(), f.factory.Create())
	require.NoError(t, err)
	assert.Equal(t, 3, updated)
	assert.Equal(t, map[string]int{"A": 1, "B": 2, "C": 3}, f.positions(t))
}

func TestOnAfterDelete_RepacksRemovedRecordScope(t *testing.T) {
	f := newFixture(t, testConfig,
		row("A", 1, 1), row("C", 1, 3), row("D", 1, 4),
		row("E", 2, 2),
	)
	removed := row("B", 1, 2)

	updated, err := f.engine.OnAfterDelete(context.Background(), f.factory.Create(), removed)
	require.NoError(t, err)
	assert.Equal(t, 2, updated)
	assert.Equal(t, map[string]int{"A": 1, "C": 2, "D": 3, "E": 2}, f.positions(t))
}
