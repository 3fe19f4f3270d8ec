package command

import (
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/calvinalkan/ironjira/internal/ticket"
)

// Store is the ticket store contract the handler relies on.
type Store interface {
	Create(draft ticket.Draft) (ticket.ID, error)
	Get(id ticket.ID) (ticket.Ticket, bool)
	Update(id ticket.ID, patch ticket.Patch) (ticket.Ticket, bool, error)
	Delete(id ticket.ID) (ticket.Ticket, bool, error)
	List() ([]ticket.Ticket, error)
}

// Handler dispatches commands to a store and reports the outcome.
// It keeps no state between calls. A nil Reporter discards reports and a
// nil Logger discards logs; Store is required.
type Handler struct {
	Store    Store
	Reporter *Reporter
	Logger   logrus.FieldLogger
}

// Handle runs cmd against s and writes a plain-text report to out.
func Handle(s Store, cmd Command, out io.Writer) error {
	h := Handler{Store: s, Reporter: NewReporter(out, ReporterOptions{})}

	return h.Handle(cmd)
}

// Handle carries out cmd.
//
// Unknown ids on edit and delete are reported to the user and are not errors.
// The returned error is ErrValidation for a Create missing a field and
// ErrInternal for store failures or a Command type the handler does not know.
func (h *Handler) Handle(cmd Command) error {
	log := h.logger()
	if cmd != nil {
		log = log.WithField("command", cmd.Name())
	}

	log.Debug("dispatching command")

	switch c := cmd.(type) {
	case Create:
		return h.create(c)
	case Edit:
		return h.edit(log, c)
	case Delete:
		return h.delete(log, c)
	case List:
		return h.list()
	default:
		return fmt.Errorf("%w: unhandled command %T", ticket.ErrInternal, cmd)
	}
}

func (h *Handler) create(c Create) error {
	if c.Title == nil {
		return fmt.Errorf("%w: title is required", ticket.ErrValidation)
	}

	if c.Description == nil {
		return fmt.Errorf("%w: description is required", ticket.ErrValidation)
	}

	id, err := h.Store.Create(ticket.Draft{Title: *c.Title, Description: *c.Description})
	if err != nil {
		return fmt.Errorf("%w: create ticket: %w", ticket.ErrInternal, err)
	}

	created, ok := h.Store.Get(id)
	if !ok {
		return fmt.Errorf("%w: created ticket %s is missing from the store", ticket.ErrInternal, id)
	}

	return h.reporter().Created(created)
}

func (h *Handler) edit(log logrus.FieldLogger, c Edit) error {
	patch := c.Patch()

	log.WithFields(logrus.Fields{
		"ticket_id":  c.ID,
		"fields_set": patch.Fields(),
	}).Debug("applying patch")

	updated, found, err := h.Store.Update(c.ID, patch)
	if err != nil {
		return fmt.Errorf("%w: update ticket %s: %w", ticket.ErrInternal, c.ID, err)
	}

	if !found {
		return h.reporter().NotFound(c.ID)
	}

	return h.reporter().Updated(updated)
}

func (h *Handler) delete(log logrus.FieldLogger, c Delete) error {
	log.WithField("ticket_id", c.ID).Debug("deleting ticket")

	deleted, found, err := h.Store.Delete(c.ID)
	if err != nil {
		return fmt.Errorf("%w: delete ticket %s: %w", ticket.ErrInternal, c.ID, err)
	}

	if !found {
		return h.reporter().NotFound(c.ID)
	}

	return h.reporter().Deleted(deleted)
}

func (h *Handler) list() error {
	tickets, err := h.Store.List()
	if err != nil {
		return fmt.Errorf("%w: list tickets: %w", ticket.ErrInternal, err)
	}

	return h.reporter().List(tickets)
}

func (h *Handler) reporter() *Reporter {
	if h.Reporter != nil {
		return h.Reporter
	}

	return NewReporter(io.Discard, ReporterOptions{})
}

func (h *Handler) logger() logrus.FieldLogger {
	if h.Logger != nil {
		return h.Logger
	}

	discard := logrus.New()
	discard.SetOutput(io.Discard)

	return discard
}
