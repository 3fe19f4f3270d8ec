package cli

import (
	"context"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/ironjira/internal/ticket"
)

// ShowCmd returns the show command.
func ShowCmd(a *app) *Command {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.String("id", "", "Id of the ticket to show (required)")

	return &Command{
		Flags: fs,
		Usage: "show --id <id>",
		Short: "Show ticket details",
		Long:  "Display the full contents of a ticket. Unlike edit and delete, an unknown id is an error.",
		Exec: func(_ context.Context, o *IO, args []string) error {
			return execShow(o, a, fs, args)
		},
	}
}

func execShow(o *IO, a *app, fs *flag.FlagSet, args []string) error {
	err := noArgs(args)
	if err != nil {
		return err
	}

	id, err := requiredID(fs)
	if err != nil {
		return err
	}

	t, ok := a.store.Get(id)
	if !ok {
		return fmt.Errorf("%w: %s", ticket.ErrNotFound, id)
	}

	return a.handler(o).Reporter.Show(t)
}
