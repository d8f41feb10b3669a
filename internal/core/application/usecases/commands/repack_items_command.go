package commands

import (
	"errors"

	"sortable/internal/pkg/guard"
)

var ErrRepackItemsCommandIsNotConstructed = errors.New(
	"RepackItemsCommand must be created via NewRepackItemsCommand constructor",
)

// RepackItemsCommand renumbers the listed categories to 1..N. No categories
// means every category.
type RepackItemsCommand struct { //nolint:recvcheck //using for validation
	categoryIDs []int64

	guard guard.ConstructorGuard
}

func NewRepackItemsCommand(categoryIDs ...int64) (RepackItemsCommand, error) {
	cmd := RepackItemsCommand{
		guard: guard.NewConstructorGuard(),
	}

	for _, id := range categoryIDs {
		if id < 0 {
			return RepackItemsCommand{}, ErrCategoryIDIsInvalid
		}
	}
	cmd.categoryIDs = append([]int64(nil), categoryIDs...)

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RepackItemsCommand) Validate() error {
	return c.guard.Validate(ErrRepackItemsCommandIsNotConstructed)
}

func (c RepackItemsCommand) CategoryIDs() []int64 {
	return append([]int64(nil), c.categoryIDs...)
}

// IsAll reports whether every category is repacked.
func (c RepackItemsCommand) IsAll() bool {
	return len(c.categoryIDs) == 0
}
