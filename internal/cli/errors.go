package cli

import (
	"errors"
	"fmt"

	"github.com/calvinalkan/ironjira/internal/ticket"
)

var (
	errEmptyValue   = errors.New("empty value not allowed")
	errIDRequired   = fmt.Errorf("%w: --id is required", ticket.ErrValidation)
	errUnexpectArgs = errors.New("unexpected argument")
)
