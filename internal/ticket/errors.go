package ticket

import (
	"errors"
	"fmt"
)

// Error kinds. Callers branch on these with errors.Is.
var (
	// ErrValidation marks user input that could not be turned into a domain value.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a lookup for an id the store does not hold.
	// Edit and delete report this as an outcome instead of returning it.
	ErrNotFound = errors.New("ticket not found")

	// ErrInternal marks failures of the store or its collaborators.
	ErrInternal = errors.New("internal error")
)

// Config errors.
var (
	ErrConfigFileNotFound = errors.New("config file not found")
	ErrConfigFileRead     = errors.New("cannot read config file")
	ErrConfigInvalid      = errors.New("invalid config file")
)

// ParsingError reports why a raw string was rejected by one of the field parsers.
type ParsingError struct {
	Field string
	Input string
	msg   string
}

func newParsingError(field, input, format string, args ...any) *ParsingError {
	return &ParsingError{Field: field, Input: input, msg: fmt.Sprintf(format, args...)}
}

func (e *ParsingError) Error() string {
	return e.msg
}

// Is makes every ParsingError match ErrValidation.
func (e *ParsingError) Is(target error) bool {
	return target == ErrValidation
}
