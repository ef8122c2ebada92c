package validators

import (
	"errors"
	"strings"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	// ErrInvalidAddress is wrapped by every address validation failure.
	ErrInvalidAddress = errors.New("invalid address")
)

// ValidationError lists the field messages of a failed validation.
// errors.Is matches it against the sentinel it was created for.
type ValidationError struct {
	sentinel error
	Messages []string
}

func (e *ValidationError) Error() string {
	return e.sentinel.Error() + ": " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return e.sentinel
}
