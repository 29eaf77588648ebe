package store

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means the requested row does not exist. Entity-specific
	// variants such as ErrDeckNotFound wrap it.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate means a write collided with a unique key.
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity means the database rejected a row through a
	// constraint. The wrapped driver error has the specifics.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed means a transaction could not begin, commit or
	// roll back.
	ErrTransactionFailed = errors.New("transaction failed")

	// ErrDeckNotFound means no deck has the requested id.
	ErrDeckNotFound = fmt.Errorf("%w: deck", ErrNotFound)
)

// IsNotFoundError reports whether err is ErrNotFound or one of its
// entity-specific variants.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// StoreError records which store operation failed on which entity.
type StoreError struct {
	Entity    string
	Operation string
	Message   string
	Err       error
}

func (e *StoreError) Error() string {
	msg := e.Operation + " " + e.Entity + ": " + e.Message
	if e.Err != nil {
		return msg + ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError wraps err with the failing entity and operation.
func NewStoreError(entity, operation, message string, err error) *StoreError {
	return &StoreError{
		Entity:    entity,
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
