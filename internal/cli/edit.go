package cli

import (
	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/ironjira/internal/command"
	"github.com/calvinalkan/ironjira/internal/ticket"
)

// EditCmd returns the edit command.
func EditCmd(a *app) *Command {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.String("id", "", "Id of the ticket to edit (required)")
	fs.StringP("status", "s", "", "New status: ToDo|InProgress|Blocked|Done")
	fs.StringP("title", "t", "", "New title")
	fs.StringP("description", "d", "", "New description")

	return &Command{
		Flags: fs,
		Usage: "edit --id <id> [--status <s>] [--title <t>] [--description <d>]",
		Short: "Change the given fields of a ticket",
		Long: `Update only the fields that are passed; the others are left unchanged.

Status names are matched ignoring case, spaces, '-' and '_'
(todo, in-progress, "In Progress", DONE all work).

An unknown id is reported and is not an error.`,
		Build: func(o *IO) (command.Command, error) {
			return buildEdit(o, fs)
		},
		Handler: a.handlerFunc(),
	}
}

func buildEdit(o *IO, fs *flag.FlagSet) (command.Command, error) {
	id, err := requiredID(fs)
	if err != nil {
		return nil, err
	}

	status, err := optionalField(fs, "status", ticket.ParseStatus)
	if err != nil {
		return nil, err
	}

	title, err := optionalField(fs, "title", ticket.ParseTitle)
	if err != nil {
		return nil, err
	}

	description, err := optionalField(fs, "description", ticket.ParseDescription)
	if err != nil {
		return nil, err
	}

	cmd := command.Edit{ID: id, Status: status, Title: title, Description: description}

	if cmd.Patch().IsEmpty() {
		o.Warn("no fields given (use --status, --title or --description); ticket left unchanged")
	}

	return cmd, nil
}
