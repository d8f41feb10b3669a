// Package ordering is the sort-order engine. It keeps positions dense ({1..N}
// per scope) across inserts, client-submitted permutations and deletions, and
// answers first/last/prev/next/rank questions within a scope.
//
// The engine holds no state besides its configuration. Every operation takes
// the unit of work it should run against, re-reads current positions, and
// either joins the unit's open transaction or opens, commits and (on any
// failure) rolls back its own.
package ordering

import (
	"context"
	"log/slog"

	"sortable/internal/core/domain/model/sortable"
	"sortable/internal/core/ports"
	"sortable/internal/pkg/errs"
	"sortable/internal/pkg/logging"
)

// UnitOfWork is the slice of ports.UnitOfWork the engine needs.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
	InTransaction() bool
	SortableRepository() ports.SortableRepository
}

// Engine applies the ordering rules for one record type.
type Engine struct {
	cfg    sortable.Config
	logger *slog.Logger
}

// NewEngine validates cfg (after defaults) and returns an engine.
// A nil logger discards output.
func NewEngine(cfg sortable.Config, logger *slog.Logger) (*Engine, error) {
	cfg = cfg.WithDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logging.Discard()
	}

	return &Engine{
		cfg:    cfg,
		logger: logger.With("component", "ordering_engine"),
	}, nil
}

// Config returns the effective configuration.
func (e *Engine) Config() sortable.Config {
	return e.cfg
}

// Restrictions derives the scope shared by records: per configured attribute,
// the distinct values the records carry.
func (e *Engine) Restrictions(records ...sortable.Record) sortable.Restrictions {
	r := e.cfg.NewRestrictions()
	for _, rec := range records {
		r.Pull(rec)
	}
	return r
}

// inTransaction runs fn in uow's transaction. If uow already has one, fn joins
// it and the caller keeps ownership of commit and rollback. Otherwise a new
// transaction is committed when fn succeeds and rolled back on every other path.
func inTransaction(ctx context.Context, uow UnitOfWork, fn func(repo ports.SortableRepository) error) error {
	if uow.InTransaction() {
		return fn(uow.SortableRepository())
	}

	if err := uow.Begin(ctx); err != nil {
		return errs.NewPersistenceError("begin transaction", err)
	}
	defer func() {
		if uow.InTransaction() {
			_ = uow.Rollback(ctx)
		}
	}()

	if err := fn(uow.SortableRepository()); err != nil {
		return err
	}

	if err := uow.Commit(ctx); err != nil {
		return errs.NewPersistenceError("commit transaction", err)
	}
	return nil
}
