package service

import "fmt"

// DeckServiceError reports a deck operation that failed for a reason other
// than caller input, typically a store failure. The API layer maps it to an
// internal error.
type DeckServiceError struct {
	Operation string
	Message   string
	Err       error
}

// Error implements the error interface for DeckServiceError.
func (e *DeckServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("deck service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("deck service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *DeckServiceError) Unwrap() error {
	return e.Err
}

// NewDeckServiceError creates a new DeckServiceError.
func NewDeckServiceError(operation, message string, err error) *DeckServiceError {
	return &DeckServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
