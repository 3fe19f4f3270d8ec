package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/ironjira/internal/command"
	"github.com/calvinalkan/ironjira/internal/ticket"
)

// CreateCmd returns the create command.
func CreateCmd(a *app) *Command {
	fs := flag.NewFlagSet("create", flag.ContinueOnError)
	fs.StringP("title", "t", "", "Ticket title (required, at most 50 characters)")
	fs.StringP("description", "d", "", "Ticket description (required, at most 3000 characters)")

	return &Command{
		Flags: fs,
		Usage: "create --title <text> --description <text>",
		Short: "Create a ticket, prints its id",
		Long: `Create a new ticket with status ToDo.

Prints the id assigned by the store followed by the ticket.`,
		Build: func(*IO) (command.Command, error) {
			return buildCreate(fs)
		},
		Handler: a.handlerFunc(),
	}
}

// buildCreate leaves missing fields nil; the handler rejects them.
func buildCreate(fs *flag.FlagSet) (command.Command, error) {
	title, err := optionalField(fs, "title", ticket.ParseTitle)
	if err != nil {
		return nil, err
	}

	description, err := optionalField(fs, "description", ticket.ParseDescription)
	if err != nil {
		return nil, err
	}

	return command.Create{Title: title, Description: description}, nil
}
