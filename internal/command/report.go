package command

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"

	"github.com/calvinalkan/ironjira/internal/ticket"
)

// Outcome actions, as they appear in json and yaml reports.
const (
	ActionCreated  = "created"
	ActionUpdated  = "updated"
	ActionDeleted  = "deleted"
	ActionNotFound = "not_found"
	ActionShown    = "shown"
)

// ReporterOptions configures a Reporter.
type ReporterOptions struct {
	// Format is one of ticket.FormatText, FormatJSON, FormatYAML. Empty means text.
	Format string

	// Color styles statuses in text output with ANSI colours.
	Color bool
}

// Reporter renders command outcomes for the user.
type Reporter struct {
	out    io.Writer
	format string
	styles map[ticket.Status]lipgloss.Style
}

// NewReporter returns a Reporter writing to out.
func NewReporter(out io.Writer, opts ReporterOptions) *Reporter {
	format := opts.Format
	if format == "" {
		format = ticket.FormatText
	}

	profile := termenv.Ascii
	if opts.Color {
		profile = termenv.ANSI256
	}

	renderer := lipgloss.NewRenderer(out, termenv.WithProfile(profile))
	renderer.SetColorProfile(profile)

	return &Reporter{
		out:    out,
		format: format,
		styles: statusStyles(renderer),
	}
}

func statusStyles(r *lipgloss.Renderer) map[ticket.Status]lipgloss.Style {
	return map[ticket.Status]lipgloss.Style{
		ticket.StatusToDo:       r.NewStyle().Foreground(lipgloss.Color("245")),
		ticket.StatusInProgress: r.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		ticket.StatusBlocked:    r.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
		ticket.StatusDone:       r.NewStyle().Foreground(lipgloss.Color("42")),
	}
}

type outcome struct {
	Action string         `json:"action"           yaml:"action"`
	ID     ticket.ID      `json:"id"               yaml:"id"`
	Ticket *ticket.Ticket `json:"ticket,omitempty" yaml:"ticket,omitempty"`
}

// Created reports a newly created ticket.
func (r *Reporter) Created(t ticket.Ticket) error {
	return r.single(ActionCreated, "Created ticket", t)
}

// Updated reports the state of a ticket after an edit.
func (r *Reporter) Updated(t ticket.Ticket) error {
	return r.single(ActionUpdated, "Updated ticket", t)
}

// Deleted reports the contents of a removed ticket.
func (r *Reporter) Deleted(t ticket.Ticket) error {
	return r.single(ActionDeleted, "Deleted ticket", t)
}

// Show reports a single ticket without a heading line.
func (r *Reporter) Show(t ticket.Ticket) error {
	if r.format == ticket.FormatText {
		return r.write(r.ticketBlock(t))
	}

	return r.structured(outcome{Action: ActionShown, ID: t.ID, Ticket: &t})
}

// NotFound reports that no ticket exists under id.
func (r *Reporter) NotFound(id ticket.ID) error {
	if r.format == ticket.FormatText {
		return r.write(fmt.Sprintf("No ticket found with id %s\n", id))
	}

	return r.structured(outcome{Action: ActionNotFound, ID: id})
}

// List reports tickets in the order given. An empty slice produces no text
// output and an empty list in json and yaml.
func (r *Reporter) List(tickets []ticket.Ticket) error {
	if r.format != ticket.FormatText {
		if tickets == nil {
			tickets = []ticket.Ticket{}
		}

		return r.structured(tickets)
	}

	lines := lo.Map(tickets, func(t ticket.Ticket, _ int) string {
		return r.ticketLine(t) + "\n"
	})

	return r.write(strings.Join(lines, ""))
}

func (r *Reporter) single(action, heading string, t ticket.Ticket) error {
	if r.format != ticket.FormatText {
		return r.structured(outcome{Action: action, ID: t.ID, Ticket: &t})
	}

	return r.write(heading + " " + t.ID.String() + "\n" + r.ticketBlock(t))
}

func (r *Reporter) structured(v any) error {
	switch r.format {
	case ticket.FormatJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("%w: encode json: %w", ticket.ErrInternal, err)
		}

		return nil
	case ticket.FormatYAML:
		enc := yaml.NewEncoder(r.out)
		enc.SetIndent(2)

		err := enc.Encode(v)
		if err != nil {
			return fmt.Errorf("%w: encode yaml: %w", ticket.ErrInternal, err)
		}

		err = enc.Close()
		if err != nil {
			return fmt.Errorf("%w: encode yaml: %w", ticket.ErrInternal, err)
		}

		return nil
	default:
		return fmt.Errorf("%w: unknown output format %q", ticket.ErrInternal, r.format)
	}
}

func (r *Reporter) write(s string) error {
	if s == "" {
		return nil
	}

	_, err := io.WriteString(r.out, s)
	if err != nil {
		return fmt.Errorf("%w: write report: %w", ticket.ErrInternal, err)
	}

	return nil
}

func (r *Reporter) status(s ticket.Status) string {
	style, ok := r.styles[s]
	if !ok {
		return s.String()
	}

	return style.Render(s.String())
}

// ticketLine formats one list entry: "<id> [<status>] - <title>".
func (r *Reporter) ticketLine(t ticket.Ticket) string {
	var builder strings.Builder

	builder.WriteString(t.ID.String())
	builder.WriteString(" [")
	builder.WriteString(r.status(t.Status))
	builder.WriteString("] - ")
	builder.WriteString(t.Title.String())

	return builder.String()
}

func (r *Reporter) ticketBlock(t ticket.Ticket) string {
	var builder strings.Builder

	field := func(name, value string) {
		fmt.Fprintf(&builder, "  %-12s %s\n", name+":", value)
	}

	field("id", t.ID.String())
	field("title", t.Title.String())
	field("status", r.status(t.Status))
	field("description", t.Description.String())
	field("created", t.CreatedAt.Format(time.RFC3339))
	field("updated", t.UpdatedAt.Format(time.RFC3339))

	return builder.String()
}
