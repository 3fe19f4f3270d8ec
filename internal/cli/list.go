package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/ironjira/internal/command"
)

// ListCmd returns the list command.
func ListCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("list", flag.ContinueOnError),
		Usage: "list",
		Short: "List all tickets",
		Long:  "List all tickets in the order they were created.",
		Build: func(*IO) (command.Command, error) {
			return command.List{}, nil
		},
		Handler: a.handlerFunc(),
	}
}
