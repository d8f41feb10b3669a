// Package guard detects zero-value structs that bypassed their constructor.
//
// Commands and value objects embed a ConstructorGuard and call Validate before
// use, so a `ReorderItemsCommand{}` literal is rejected instead of silently
// reordering nothing.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is set only by NewConstructorGuard; its zero value fails Validate.
//
// Example:
//
//	var ErrCommandNotConstructed = errors.New("ReorderItemsCommand must be created via NewReorderItemsCommand")
//
//	type ReorderItemsCommand struct {
//	    keys  []string
//	    guard guard.ConstructorGuard
//	}
//
//	func (c ReorderItemsCommand) Validate() error {
//	    return c.guard.Validate(ErrCommandNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owning object as constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
