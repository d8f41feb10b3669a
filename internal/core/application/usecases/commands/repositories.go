// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, transaction management, and persistence.
package commands

import (
	"context"

	"sortable/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
type (
	// TxManager handles database transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
		InTransaction() bool
	}

	// ItemRepoFactory provides access to the item repository within a transaction.
	ItemRepoFactory interface {
		ItemRepository() ports.ItemRepository
	}

	// SortableRepoFactory provides access to the position store within a transaction.
	SortableRepoFactory interface {
		SortableRepository() ports.SortableRepository
	}

	// OrderingUoW is what the ordering engine runs against. Used by commands
	// that only move positions.
	OrderingUoW interface {
		TxManager
		SortableRepoFactory
	}

	// OrderingUoWFactory creates new ordering unit of work instances.
	OrderingUoWFactory interface {
		Create() OrderingUoW
	}

	// ItemUoW manages transactions that write items and their positions together.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   pos, err := engine.OnBeforeCreate(ctx, uow, it)
	//   err = uow.ItemRepository().Add(ctx, it)
	//
	//   err = uow.Commit(ctx)
	ItemUoW interface {
		TxManager
		ItemRepoFactory
		SortableRepoFactory
	}

	// ItemUoWFactory creates new item unit of work instances.
	ItemUoWFactory interface {
		Create() ItemUoW
	}
)
