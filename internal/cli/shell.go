package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/samber/lo"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/calvinalkan/ironjira/internal/history"
)

// LineReader is the input side of the shell. *liner.State satisfies it for
// terminals; scannerReader covers pipes and tests.
type LineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(line string)
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
	Close() error
}

// ShellCmd returns the shell command.
func ShellCmd(a *app) *Command {
	return &Command{
		Flags: flag.NewFlagSet("shell", flag.ContinueOnError),
		Usage: "shell",
		Short: "Run commands interactively against one store",
		Long: `Start an interactive session. Each line is one command (create, edit,
delete, list, show) run against the same ticket store, so tickets live
for the whole session. Quote values with spaces: create -t "Fix bug" -d 'NPE'.

Type "help" for commands and "exit" (or Ctrl-D) to leave. A failing line
prints an error and the session continues.`,
		Exec: func(ctx context.Context, o *IO, args []string) error {
			err := noArgs(args)
			if err != nil {
				return err
			}

			reader := newLineReader(a.stdin)

			return runShell(ctx, o, a, reader)
		},
	}
}

// shellCommands are the commands available inside the shell. Built per line
// so every line starts from fresh flag values.
func shellCommands(a *app) []*Command {
	return []*Command{
		CreateCmd(a),
		EditCmd(a),
		DeleteCmd(a),
		ListCmd(a),
		ShowCmd(a),
	}
}

var shellBuiltins = []string{"help", "exit", "quit"}

func runShell(ctx context.Context, o *IO, a *app, reader LineReader) error {
	defer func() { _ = reader.Close() }()

	hist := history.File{Path: a.cfg.HistoryFile}

	n, err := hist.Load(reader)
	if err != nil {
		o.Warn(err.Error())
	}

	a.log.WithField("lines", n).Debug("history loaded")

	_, interactive := reader.(*liner.State)
	if interactive {
		o.Println("jira shell - type 'help' for commands, 'exit' to leave.")
	}

	for ctx.Err() == nil {
		line, err := reader.Prompt(a.cfg.Prompt)
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) || errors.Is(err, io.EOF) {
				break
			}

			return fmt.Errorf("reading input: %w", err)
		}

		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		reader.AppendHistory(line)

		if !runShellLine(ctx, o, a, line) {
			break
		}
	}

	err = hist.Save(reader)
	if err != nil {
		o.Warn(err.Error())
	}

	return nil
}

// runShellLine executes one line. Returns false when the user asked to leave.
func runShellLine(ctx context.Context, o *IO, a *app, line string) bool {
	words, err := splitWords(line)
	if err != nil {
		o.ErrPrintln("error:", err)

		return true
	}

	if len(words) == 0 {
		return true
	}

	name := words[0]

	switch name {
	case "exit", "quit":
		return false
	case "help", "?":
		printShellHelp(o, a)

		return true
	}

	cmd := findCommand(shellCommands(a), name)
	if cmd == nil {
		o.ErrPrintln("error: unknown command:", name, "(type 'help' for commands)")

		return true
	}

	a.log.WithField("line", line).Debug("shell command")

	cmd.Run(ctx, o, words[1:])
	o.Finish()

	return true
}

func printShellHelp(o *IO, a *app) {
	o.Println("Commands:")

	for _, c := range shellCommands(a) {
		o.Println(c.HelpLine())
	}

	o.Println(fmt.Sprintf("  %-58s %s", "help", "Show this list"))
	o.Println(fmt.Sprintf("  %-58s %s", "exit", "Leave the shell"))
}

// completeCommand offers command names matching the typed prefix.
func completeCommand(line string) []string {
	names := lo.Map(shellCommands(nil), func(c *Command, _ int) string { return c.Name() })
	names = append(names, shellBuiltins...)

	return lo.Filter(names, func(name string, _ int) bool {
		return strings.HasPrefix(name, line)
	})
}

// newLineReader picks liner for a terminal and a plain line scanner otherwise.
func newLineReader(stdin io.Reader) LineReader {
	if f, ok := stdin.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		state := liner.NewLiner()
		state.SetCtrlCAborts(true)
		state.SetCompleter(completeCommand)

		return state
	}

	if stdin == nil {
		stdin = strings.NewReader("")
	}

	return &scannerReader{scanner: bufio.NewScanner(stdin)}
}

// scannerReader reads lines from a non-terminal input. It prints no prompt.
type scannerReader struct {
	scanner *bufio.Scanner
	history []string
}

func (r *scannerReader) Prompt(string) (string, error) {
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}

	err := r.scanner.Err()
	if err != nil {
		return "", err
	}

	return "", io.EOF
}

func (r *scannerReader) AppendHistory(line string) {
	r.history = append(r.history, line)
}

func (r *scannerReader) ReadHistory(in io.Reader) (int, error) {
	scanner := bufio.NewScanner(in)
	n := 0

	for scanner.Scan() {
		r.history = append(r.history, scanner.Text())
		n++
	}

	return n, scanner.Err()
}

func (r *scannerReader) WriteHistory(w io.Writer) (int, error) {
	for i, line := range r.history {
		_, err := fmt.Fprintln(w, line)
		if err != nil {
			return i, err
		}
	}

	return len(r.history), nil
}

func (r *scannerReader) Close() error {
	return nil
}
