package domain

import "errors"

var (
	ErrNotFound               = errors.New("not found")
	ErrInvalidAuctionStatus   = errors.New("invalid auction status")
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidInput           = errors.New("invalid input")
)

// ValidationError rejects input before it reaches the store.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func (e *ValidationError) Unwrap() error {
	if e.Err == nil {
		return ErrInvalidInput
	}
	return e.Err
}

// Invalid builds a ValidationError that unwraps to ErrInvalidInput.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
