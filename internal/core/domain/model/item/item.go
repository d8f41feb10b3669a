package item

import (
	"errors"
	"fmt"
	"strings"

	"sortable/internal/core/domain/model/kernel"
	"sortable/internal/pkg/errs"
)

// Attribute names shared by the domain, the ordering config and the storage columns.
const (
	AttrID         = "id"
	AttrCategoryID = "category_id"
	AttrTitle      = "title"
	AttrSortOrder  = "sort_order"
)

const maxTitleLength = 255

var (
	// ErrItemIsNotConstructed is returned when an Item was not created through NewItem or Restore.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem constructor")

	// ErrPositionAlreadyAssigned guards the single initial assignment.
	ErrPositionAlreadyAssigned = errors.New("item position is already assigned")
)

// Item is the aggregate root for one orderable entry.
//
// Invariants:
//   - id is a valid UUID
//   - categoryID >= 0
//   - title is non-empty and at most 255 characters
//   - position is 0 until AssignPosition, then >= 1
type Item struct {
	id         kernel.UUID
	categoryID int64
	title      string
	position   int

	isConstructed bool
}

// NewItem creates an unpositioned item. Run the ordering engine's create hook and
// AssignPosition before handing it to the repository.
//
// Example:
//
//	it, err := item.NewItem(kernel.NewUUID(), 7, "Holiday photos")
//	if err != nil {
//	    return err
//	}
//	pos, err := engine.OnBeforeCreate(ctx, uow, it)
//	if err != nil {
//	    return err
//	}
//	_ = it.AssignPosition(pos)
func NewItem(id kernel.UUID, categoryID int64, title string) (*Item, error) {
	it := &Item{isConstructed: true}

	if err := errors.Join(
		it.setID(id),
		it.setCategoryID(categoryID),
		it.setTitle(title),
	); err != nil {
		return nil, err
	}

	return it, nil
}

// Restore rebuilds a stored item, position included. Only repositories call it.
func Restore(id kernel.UUID, categoryID int64, title string, position int) (*Item, error) {
	it, err := NewItem(id, categoryID, title)
	if err != nil {
		return nil, err
	}
	if position < 0 {
		return nil, errs.NewValueIsOutOfRangeError("position", position, 0, "unbounded")
	}
	it.position = position
	return it, nil
}

// Validate ensures the item was built by a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

func (i *Item) ID() kernel.UUID {
	return i.id
}

func (i *Item) CategoryID() int64 {
	return i.categoryID
}

func (i *Item) Title() string {
	return i.title
}

// Position returns the sort order, 0 while unassigned. The stored value may
// have moved on since this item was loaded.
func (i *Item) Position() int {
	return i.position
}

// IsPositioned reports whether AssignPosition (or Restore) set a position.
func (i *Item) IsPositioned() bool {
	return i.position > 0
}

// AssignPosition sets the initial position. It can be called once.
func (i *Item) AssignPosition(position int) error {
	if i.IsPositioned() {
		return ErrPositionAlreadyAssigned
	}
	if position < 1 {
		return errs.NewValueIsOutOfRangeError("position", position, 1, "unbounded")
	}
	i.position = position
	return nil
}

// Attribute implements sortable.Record.
func (i *Item) Attribute(name string) (any, bool) {
	switch name {
	case AttrID:
		return i.id.String(), true
	case AttrCategoryID:
		return i.categoryID, true
	case AttrTitle:
		return i.title, true
	case AttrSortOrder:
		return int64(i.position), true
	default:
		return nil, false
	}
}

func (i *Item) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	i.id = id
	return nil
}

func (i *Item) setCategoryID(categoryID int64) error {
	if categoryID < 0 {
		return errs.NewValueIsInvalidErrorWithCause("category_id", fmt.Errorf("%d is negative", categoryID))
	}
	i.categoryID = categoryID
	return nil
}

func (i *Item) setTitle(title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errs.NewValueIsRequiredError("title")
	}
	if len([]rune(title)) > maxTitleLength {
		return errs.NewValueIsOutOfRangeError("title length", len([]rune(title)), 1, maxTitleLength)
	}
	i.title = title
	return nil
}
