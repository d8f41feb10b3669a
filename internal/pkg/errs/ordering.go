package errs

import (
	"errors"
	"fmt"
)

var (
	ErrConfiguration = errors.New("sortable configuration error")
	ErrPrecondition  = errors.New("precondition failed")
	ErrPersistence   = errors.New("persistence failed")
)

// ConfigurationError is raised at setup time or on first use when the ordering
// cannot work against the configured storage: a missing position column, a key
// attribute that cannot be resolved, an unknown restriction attribute.
type ConfigurationError struct {
	Setting string
	Reason  string
	Cause   error
}

func NewConfigurationError(setting, reason string) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Reason: reason}
}

func NewConfigurationErrorWithCause(setting, reason string, cause error) *ConfigurationError {
	return &ConfigurationError{Setting: setting, Reason: reason, Cause: cause}
}

func (e *ConfigurationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (cause: %v)", ErrConfiguration, e.Setting, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s: %s", ErrConfiguration, e.Setting, e.Reason)
}

func (e *ConfigurationError) Unwrap() error {
	return ErrConfiguration
}

// PreconditionError rejects a request before any storage mutation happens.
type PreconditionError struct {
	Operation string
	Reason    string
}

func NewPreconditionError(operation, reason string) *PreconditionError {
	return &PreconditionError{Operation: operation, Reason: reason}
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrPrecondition, e.Operation, e.Reason)
}

func (e *PreconditionError) Unwrap() error {
	return ErrPrecondition
}

// PersistenceError wraps a storage failure inside a transaction. The
// transaction has been rolled back by the time the caller sees it.
//
// Unwrap exposes both the sentinel and the underlying cause, so callers can
// test errors.Is(err, ErrPersistence) as well as match driver errors.
type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistence, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrPersistence, e.Operation)
}

func (e *PersistenceError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrPersistence}
	}
	return []error{ErrPersistence, e.Cause}
}
