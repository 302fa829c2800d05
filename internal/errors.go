package internal

import (
	"errors"
	"fmt"
)

// ErrCashierUsed is returned when Transact is called twice on one cashier.
var ErrCashierUsed = errors.New("cashier already transacted; create a new one per transaction")

// ValidationError is a missing or invalid field, detected before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// TransportError means the request never produced a readable response.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// GatewayError is a non-success HTTP status returned by the gateway.
type GatewayError struct {
	StatusCode int
	Body       string
}

func (e *GatewayError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("gateway status %d", e.StatusCode)
	}
	return fmt.Sprintf("gateway status %d: %s", e.StatusCode, e.Body)
}

// IsValidation reports whether err carries a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
