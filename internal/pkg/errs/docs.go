// Package errs provides standardized error types for the sortable application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside allowed bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ConfigurationError: For an ordering setup that cannot work (missing column, no key)
//   - PreconditionError: For a request rejected before any storage mutation
//   - PersistenceError: For a failed write inside a transaction that was rolled back
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Callers classify failures with errors.Is against the sentinels, which keeps
// transport layers (HTTP status mapping, CLI exit codes) independent of the
// concrete error structs.
package errs
