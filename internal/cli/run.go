// Package cli implements the jira command line: global flags, the per-command
// flag sets that turn user text into commands, and the interactive shell.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	flag "github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/calvinalkan/ironjira/internal/command"
	"github.com/calvinalkan/ironjira/internal/store"
	"github.com/calvinalkan/ironjira/internal/ticket"
)

// app is the state shared by all commands of one process: the resolved
// config, the logger and the single ticket store.
type app struct {
	cfg   ticket.Config
	log   *logrus.Logger
	store *store.Memory
	color bool
	stdin io.Reader
	env   map[string]string
}

// handler returns a command handler that reports into o.
func (a *app) handler(o *IO) *command.Handler {
	return &command.Handler{
		Store: a.store,
		Reporter: command.NewReporter(o, command.ReporterOptions{
			Format: a.cfg.Format,
			Color:  a.color,
		}),
		Logger: a.log,
	}
}

// handlerFunc defers to handler. a may be nil until the command runs.
func (a *app) handlerFunc() func(o *IO) *command.Handler {
	return func(o *IO) *command.Handler {
		return a.handler(o)
	}
}

// allCommands returns every command in help order. a may be nil when only
// the help text is needed.
func allCommands(a *app) []*Command {
	return []*Command{
		CreateCmd(a),
		EditCmd(a),
		DeleteCmd(a),
		ListCmd(a),
		ShowCmd(a),
		ShellCmd(a),
		PrintConfigCmd(a),
	}
}

func findCommand(cmds []*Command, name string) *Command {
	for _, c := range cmds {
		if c.Name() == name {
			return c
		}
	}

	return nil
}

// Run is the main entry point. Returns exit code.
func Run(stdin io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < 2 {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)
		fprintln(errOut)
		printUsage(errOut)

		return 1
	}

	if flags.help || len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	overrides := ticket.Config{Format: flags.format, Color: flags.color}
	if flags.verbose {
		overrides.LogLevel = "debug"
	}

	cfg, err := ticket.LoadConfig(ticket.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		Overrides:       overrides,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	logger := newLogger(errOut, cfg.LogLevel)

	a := &app{
		cfg:   cfg,
		log:   logger,
		store: store.NewMemory(store.Options{IDs: idGenerator(cfg.IDScheme), Logger: logger}),
		color: colorEnabled(cfg.Color, out),
		stdin: stdin,
		env:   env,
	}

	ctx, cancel := signalContext(sigCh)
	defer cancel()

	name := flags.remaining[0]

	cmd := findCommand(allCommands(a), name)
	if cmd == nil {
		fprintln(errOut, "error: unknown command:", name)
		fprintln(errOut)
		printUsage(errOut)

		return 1
	}

	o := NewIO(out, errOut)
	code := cmd.Run(ctx, o, flags.remaining[1:])
	o.Finish()

	return code
}

type globalFlags struct {
	workDir    string
	configPath string
	format     string
	color      string
	verbose    bool
	help       bool
	remaining  []string
}

func newGlobalFlagSet(flags *globalFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("jira", flag.ContinueOnError)
	fs.SetInterspersed(false)
	fs.SetOutput(io.Discard)

	fs.StringVarP(&flags.workDir, "cwd", "C", "", "Run as if started in `dir`")
	fs.StringVarP(&flags.configPath, "config", "c", "", "Use specified config `file`")
	fs.StringVar(&flags.format, "format", "", "Output format: text|json|yaml")
	fs.StringVar(&flags.color, "color", "", "Colour mode: auto|always|never")
	fs.BoolVarP(&flags.verbose, "verbose", "v", false, "Log debug output to stderr")
	fs.BoolVarP(&flags.help, "help", "h", false, "Show help")

	return fs
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	fs := newGlobalFlagSet(&flags)

	err := fs.Parse(args)
	if err != nil {
		return globalFlags{}, err
	}

	for _, name := range []string{"cwd", "config", "format", "color"} {
		if fs.Changed(name) && fs.Lookup(name).Value.String() == "" {
			return globalFlags{}, fmt.Errorf("%w: --%s", errEmptyValue, name)
		}
	}

	flags.remaining = fs.Args()

	return flags, nil
}

// signalContext returns a context that is cancelled when sigCh delivers.
// A nil sigCh never fires.
func signalContext(sigCh <-chan os.Signal) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	if sigCh != nil {
		go func() {
			select {
			case <-sigCh:
				cancel()
			case <-ctx.Done():
			}
		}()
	}

	return ctx, cancel
}

func idGenerator(scheme string) store.IDGenerator {
	if scheme == ticket.IDSchemeSequence {
		return &store.SequenceGenerator{}
	}

	return store.UUIDGenerator{}
}

// colorEnabled resolves the color mode. "auto" colours only a terminal.
func colorEnabled(mode string, out io.Writer) bool {
	switch mode {
	case ticket.ColorAlways:
		return true
	case ticket.ColorNever:
		return false
	}

	f, ok := out.(*os.File)

	return ok && term.IsTerminal(int(f.Fd()))
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func printUsage(w io.Writer) {
	fprintln(w, `jira - a small ticket tracker

Usage: jira [options] <command> [flags]

Global flags:`)

	var buf strings.Builder

	fs := newGlobalFlagSet(&globalFlags{})
	fs.SetOutput(&buf)
	fs.PrintDefaults()
	_, _ = io.WriteString(w, buf.String())

	fprintln(w)
	fprintln(w, "Commands:")

	for _, c := range allCommands(nil) {
		fprintln(w, c.HelpLine())
	}

	fprintln(w)
	fprintln(w, `Run "jira <command> --help" for command flags.`)
}
