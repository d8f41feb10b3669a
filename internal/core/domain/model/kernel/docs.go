// Package kernel provides shared value objects for the sortable domain model.
//
// UUID identifies items. Its zero value is invalid, so an identifier that was
// never assigned is caught by Validate instead of reaching storage as the nil UUID.
package kernel
