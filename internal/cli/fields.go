package cli

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/ironjira/internal/ticket"
)

// optionalField runs parse on the value of a string flag. A flag the user did
// not pass yields nil, which downstream means "not provided". A flag passed
// with an empty value is handed to parse like any other value.
func optionalField[T any](fs *flag.FlagSet, name string, parse func(string) (T, error)) (*T, error) {
	if !fs.Changed(name) {
		return nil, nil
	}

	raw, err := fs.GetString(name)
	if err != nil {
		return nil, err
	}

	value, err := parse(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}

	return &value, nil
}

// requiredID reads the --id flag.
func requiredID(fs *flag.FlagSet) (ticket.ID, error) {
	id, err := optionalField(fs, "id", ticket.ParseID)
	if err != nil {
		return "", err
	}

	if id == nil {
		return "", errIDRequired
	}

	return *id, nil
}

func noArgs(args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("%w: %q", errUnexpectArgs, args[0])
	}

	return nil
}
