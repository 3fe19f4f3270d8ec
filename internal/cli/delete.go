package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/ironjira/internal/command"
)

// DeleteCmd returns the delete command.
func DeleteCmd(a *app) *Command {
	fs := flag.NewFlagSet("delete", flag.ContinueOnError)
	fs.String("id", "", "Id of the ticket to delete (required)")

	return &Command{
		Flags: fs,
		Usage: "delete --id <id>",
		Short: "Delete a ticket, prints what was removed",
		Long: `Remove a ticket from the store and print its contents.

An unknown id is reported and is not an error.`,
		Build: func(*IO) (command.Command, error) {
			id, err := requiredID(fs)
			if err != nil {
				return nil, err
			}

			return command.Delete{ID: id}, nil
		},
		Handler: a.handlerFunc(),
	}
}
