package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/calvinalkan/ironjira/internal/command"
)

// Command is one jira subcommand: its flags, its help text and either a Build
// step producing a ticket command or a free-form Exec.
type Command struct {
	// Flags holds the subcommand flags. Its name is ignored.
	Flags *flag.FlagSet

	// Usage follows "jira" in help, starting with the command name,
	// e.g. "delete --id <id>".
	Usage string

	// Short is the one-line summary in the command listing.
	Short string

	// Long is shown by --help; Short is used when it is empty.
	Long string

	// Build turns the parsed flags into a ticket command, which Run passes
	// to the handler returned by Handler. Positional arguments are rejected
	// before Build is called.
	Build func(o *IO) (command.Command, error)

	// Handler supplies the handler for built commands.
	Handler func(o *IO) *command.Handler

	// Exec runs commands that do not go through the handler. It is used
	// only when Build is nil.
	Exec func(ctx context.Context, o *IO, args []string) error
}

// Name is the first word of Usage.
func (c *Command) Name() string {
	name, _, _ := strings.Cut(c.Usage, " ")
	return name
}

// HelpLine is the command's row in the command listing.
func (c *Command) HelpLine() string {
	return fmt.Sprintf("  %-58s %s", c.Usage, c.Short)
}

// PrintHelp writes the usage line, the description and the flag defaults.
func (c *Command) PrintHelp(o *IO) {
	o.Println("Usage: jira", c.Usage)
	o.Println()

	if c.Long != "" {
		o.Println(c.Long)
	} else {
		o.Println(c.Short)
	}

	if c.Flags == nil || !c.Flags.HasFlags() {
		return
	}

	var defaults strings.Builder

	c.Flags.SetOutput(&defaults)
	c.Flags.PrintDefaults()

	o.Println()
	o.Println("Flags:")
	o.Printf("%s", defaults.String())
}

// Run parses args and runs the command, printing any error to stderr.
// A flag error is followed by the help text. It returns the exit code.
func (c *Command) Run(ctx context.Context, o *IO, args []string) int {
	c.Flags.SetOutput(&strings.Builder{})

	err := c.Flags.Parse(args)

	switch {
	case errors.Is(err, flag.ErrHelp):
		c.PrintHelp(o)
		return 0
	case err != nil:
		o.ErrPrintln("error:", err)
		o.ErrPrintln()
		c.PrintHelp(NewIO(o.errOut, o.errOut))

		return 1
	}

	err = c.exec(ctx, o, c.Flags.Args())
	if err != nil {
		o.ErrPrintln("error:", err)
		return 1
	}

	return 0
}

func (c *Command) exec(ctx context.Context, o *IO, args []string) error {
	if c.Build == nil {
		return c.Exec(ctx, o, args)
	}

	err := noArgs(args)
	if err != nil {
		return err
	}

	cmd, err := c.Build(o)
	if err != nil {
		return err
	}

	return c.Handler(o).Handle(cmd)
}
