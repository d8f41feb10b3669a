// Package item provides the Item aggregate: a titled entry inside a category
// whose place in the category list is kept by the ordering engine.
//
// Key business rules:
//   - Items have a valid identifier, a non-negative category and a title
//   - The position is assigned exactly once, before the item is first stored
//   - After that only the ordering engine rewrites positions, in storage
//
// Item implements sortable.Record so the engine can read its key, category
// and position through the same attribute names the storage adapters use.
package item
