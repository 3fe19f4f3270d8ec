package cli

import (
	"fmt"
	"io"
)

// IO handles command output and keeps warnings visible.
type IO struct {
	out      io.Writer
	errOut   io.Writer
	warnings []string
	started  bool
	wrote    bool
}

// NewIO creates a new IO instance.
func NewIO(out, errOut io.Writer) *IO {
	return &IO{out: out, errOut: errOut}
}

// Warn adds a warning for the user.
//
// Warnings are printed to stderr at both the START and END of output,
// so they survive truncation or piping (head/tail). They do not change
// the exit code: the command still succeeded.
func (o *IO) Warn(issue string) {
	o.warnings = append(o.warnings, issue)
}

// Write implements io.Writer on top of stdout, so reports can be rendered
// straight into the command's output.
func (o *IO) Write(p []byte) (int, error) {
	o.flushWarningsStart()
	o.wrote = true

	return o.out.Write(p)
}

// Println writes to stdout. On first call, any collected warnings
// are printed to stderr first.
func (o *IO) Println(a ...any) {
	o.flushWarningsStart()
	o.wrote = true
	_, _ = fmt.Fprintln(o.out, a...)
}

// Printf writes formatted output to stdout. On first call, any collected
// warnings are printed to stderr first.
func (o *IO) Printf(format string, a ...any) {
	o.flushWarningsStart()
	o.wrote = true
	_, _ = fmt.Fprintf(o.out, format, a...)
}

// ErrPrintln writes to stderr.
func (o *IO) ErrPrintln(a ...any) {
	_, _ = fmt.Fprintln(o.errOut, a...)
}

// Finish prints warnings to stderr a final time and resets the IO so it can
// be reused for the next command.
func (o *IO) Finish() {
	if o.wrote {
		for _, w := range o.warnings {
			_, _ = fmt.Fprintln(o.errOut, "warning:", w)
		}
	} else {
		// No output happened: print them once, at "start" position
		o.flushWarningsStart()
	}

	o.warnings = nil
	o.started = false
	o.wrote = false
}

func (o *IO) flushWarningsStart() {
	if !o.started && len(o.warnings) > 0 {
		for _, w := range o.warnings {
			_, _ = fmt.Fprintln(o.errOut, "warning:", w)
		}

		o.started = true
	}
}
