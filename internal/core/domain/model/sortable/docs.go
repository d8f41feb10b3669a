// Package sortable holds the vocabulary of the ordering engine: records seen
// through an attribute accessor, the configuration naming the position, key
// and restriction attributes, sort directions and restriction sets (scopes).
//
// A scope is never stored. It is derived from concrete records each time it is
// needed: every configured restriction attribute that is set on a record
// contributes its value, and the resulting Restrictions are read as
// "attr1 IN (...) AND attr2 IN (...)".
//
// The package has no storage dependency. Adapters translate Filter and
// Restrictions into their own query language.
package sortable
