// internal/services/errors.go
package services

import (
	"errors"
	"fmt"
)

// ValidationError marks failures the client caused and can correct: malformed
// checkout requests, inactive products, insufficient inventory. Handlers map
// these to 4xx; everything else is treated as a transient 5xx.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

func IsValidationError(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// ErrInvalidSignature marks a webhook whose signature did not verify. The
// caller must respond 4xx so the provider stops redelivering it.
var ErrInvalidSignature = errors.New("invalid webhook signature")
